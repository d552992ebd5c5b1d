package graph

import "testing"

func filterFixture() ([]Node, []Edge) {
	nodes := []Node{
		{ID: "a", Role: "protector", X: 10, Y: 10},
		{ID: "b", Role: "exile", X: 20, Y: 20},
		{ID: "c", Role: "", X: 30, Y: 30},
	}
	edges := []Edge{
		{ID: "r1", SourceID: "a", TargetID: "b", Type: "protects"},
		{ID: "r2", SourceID: "b", TargetID: "c", Type: "supports"},
	}
	return nodes, edges
}

func TestEmptyFilterShowsAll(t *testing.T) {
	nodes, edges := filterFixture()
	nodeVis, edgeVis := NewFilter().Visibility(nodes, edges)
	for id, vis := range nodeVis {
		if !vis {
			t.Fatalf("node %s hidden by empty filter", id)
		}
	}
	for id, vis := range edgeVis {
		if !vis {
			t.Fatalf("edge %s hidden by empty filter", id)
		}
	}
}

func TestRoleFilterHidesNodesAndTheirEdges(t *testing.T) {
	nodes, edges := filterFixture()
	f := NewFilter()
	f.Roles["protector"] = true
	f.Roles["exile"] = true

	nodeVis, edgeVis := f.Visibility(nodes, edges)
	if !nodeVis["a"] || !nodeVis["b"] || nodeVis["c"] {
		t.Fatalf("role filter wrong: %v", nodeVis)
	}
	if !edgeVis["r1"] {
		t.Fatalf("edge between visible nodes should show")
	}
	if edgeVis["r2"] {
		t.Fatalf("edge touching a hidden node should hide")
	}
}

func TestRelationshipTypeFilter(t *testing.T) {
	nodes, edges := filterFixture()
	f := NewFilter()
	f.RelationshipTypes["protects"] = true

	_, edgeVis := f.Visibility(nodes, edges)
	if !edgeVis["r1"] || edgeVis["r2"] {
		t.Fatalf("type filter wrong: %v", edgeVis)
	}
}

func TestShowRelationshipsToggle(t *testing.T) {
	nodes, edges := filterFixture()
	f := NewFilter()
	f.ShowRelationships = false

	nodeVis, edgeVis := f.Visibility(nodes, edges)
	for id, vis := range edgeVis {
		if vis {
			t.Fatalf("edge %s visible with relationships off", id)
		}
	}
	// Nodes are unaffected by the toggle.
	for id, vis := range nodeVis {
		if !vis {
			t.Fatalf("node %s hidden by relationship toggle", id)
		}
	}
}

func TestFilterNeverMovesNodes(t *testing.T) {
	nodes, edges := filterFixture()
	f := NewFilter()
	f.Roles["protector"] = true
	f.Visibility(nodes, edges)

	if nodes[0].X != 10 || nodes[1].X != 20 || nodes[2].X != 30 {
		t.Fatalf("filtering changed node positions")
	}
}
