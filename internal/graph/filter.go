package graph

// Filter narrows the visible subset of an already laid-out map. It only
// produces visibility flags; node positions are never touched, so
// toggling filters cannot shift the layout.
type Filter struct {
	ShowRelationships bool
	Roles             map[string]bool
	RelationshipTypes map[string]bool
}

func NewFilter() Filter {
	return Filter{
		ShowRelationships: true,
		Roles:             make(map[string]bool),
		RelationshipTypes: make(map[string]bool),
	}
}

// Visibility computes per-id visibility. Empty selection sets mean
// "show all". An edge is visible only when relationships are shown, its
// type passes, and both endpoints are visible.
func (f Filter) Visibility(nodes []Node, edges []Edge) (nodeVis map[string]bool, edgeVis map[string]bool) {
	nodeVis = make(map[string]bool, len(nodes))
	for _, n := range nodes {
		nodeVis[n.ID] = len(f.Roles) == 0 || f.Roles[n.Role]
	}
	edgeVis = make(map[string]bool, len(edges))
	for _, e := range edges {
		if !f.ShowRelationships {
			edgeVis[e.ID] = false
			continue
		}
		if len(f.RelationshipTypes) > 0 && !f.RelationshipTypes[e.Type] {
			edgeVis[e.ID] = false
			continue
		}
		edgeVis[e.ID] = nodeVis[e.SourceID] && nodeVis[e.TargetID]
	}
	return nodeVis, edgeVis
}
