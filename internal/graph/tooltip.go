package graph

import "time"

// DefaultTooltipGrace is how long the tooltip survives after the pointer
// leaves its node, so the cursor can cross the gap to the panel without
// flicker.
const DefaultTooltipGrace = 300 * time.Millisecond

// Tooltip tracks hover state with hysteresis. All hit-testing is explicit
// geometry over data the host supplies (node circles, last-known panel
// rect, pointer coordinates); nothing is queried from a live render tree.
type Tooltip struct {
	grace time.Duration

	visible   bool
	nodeID    string
	hideAfter time.Time
	pending   bool
}

func NewTooltip(grace time.Duration) *Tooltip {
	if grace <= 0 {
		grace = DefaultTooltipGrace
	}
	return &Tooltip{grace: grace}
}

func (t *Tooltip) Visible() bool  { return t.visible }
func (t *Tooltip) NodeID() string { return t.nodeID }

// PointerMoved feeds one pointer sample: position, the node circles, the
// tooltip panel rect (zero when hidden), and the sample time. It returns
// whether the tooltip should currently be shown.
func (t *Tooltip) PointerMoved(p Point, nodes map[string]Circle, panel Rect, now time.Time) bool {
	if over, id := overNode(p, nodes); over {
		// Entering (or re-entering) a node shows its tooltip and cancels
		// any pending hide.
		t.visible = true
		t.nodeID = id
		t.pending = false
		return t.visible
	}

	if t.visible && panel.Contains(p) {
		// Hovering the panel itself keeps it up.
		t.pending = false
		return t.visible
	}

	if t.visible && !t.pending {
		t.pending = true
		t.hideAfter = now.Add(t.grace)
	}
	return t.visible
}

// Advance applies the grace timer; the host calls it from its frame loop.
func (t *Tooltip) Advance(now time.Time) bool {
	if t.pending && now.After(t.hideAfter) {
		t.visible = false
		t.nodeID = ""
		t.pending = false
	}
	return t.visible
}

func overNode(p Point, nodes map[string]Circle) (bool, string) {
	for id, c := range nodes {
		if c.Contains(p) {
			return true, id
		}
	}
	return false, ""
}
