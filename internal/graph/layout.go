package graph

import (
	"math"
)

// Params are the force constants of the simulation. DefaultParams matches
// the production tuning; deployments may override via the tuning file.
type Params struct {
	Width           float64
	Height          float64
	Padding         float64
	LinkDistance    float64
	LinkStrength    float64
	ChargeStrength  float64
	CenterStrength  float64
	AxisStrength    float64
	CollisionRadius float64

	AlphaStart    float64
	AlphaMin      float64
	AlphaDecay    float64
	VelocityDecay float64
}

func DefaultParams() Params {
	return Params{
		Width:           1200,
		Height:          800,
		Padding:         50,
		LinkDistance:    150,
		LinkStrength:    0.1,
		ChargeStrength:  300,
		CenterStrength:  1.0,
		AxisStrength:    0.1,
		CollisionRadius: 60,
		AlphaStart:      1.0,
		AlphaMin:        0.001,
		AlphaDecay:      0.0228,
		VelocityDecay:   0.6,
	}
}

// Simulation advances node positions toward equilibrium. It holds no
// rendering state: the host drives Tick from its own animation loop and
// reads positions back.
type Simulation struct {
	params     Params
	nodes      []*Node
	edges      []Edge
	velX       []float64
	velY       []float64
	alpha      float64
	indexByID  map[string]int
	validEdges []Edge
}

// NewSimulation seeds unplaced nodes deterministically on a phyllotaxis
// spiral around the viewport center, so repeated layouts of the same
// snapshot reproduce the same positions. Nodes arriving with coordinates
// keep them.
func NewSimulation(params Params, nodes []Node, edges []Edge) *Simulation {
	sim := &Simulation{
		params:    params,
		nodes:     make([]*Node, len(nodes)),
		edges:     edges,
		velX:      make([]float64, len(nodes)),
		velY:      make([]float64, len(nodes)),
		alpha:     params.AlphaStart,
		indexByID: make(map[string]int, len(nodes)),
	}
	cx := params.Width / 2
	cy := params.Height / 2
	const initialRadiusStep = 10
	goldenAngle := math.Pi * (3 - math.Sqrt(5))
	for i := range nodes {
		n := nodes[i]
		if n.X == 0 && n.Y == 0 {
			radius := initialRadiusStep * math.Sqrt(0.5+float64(i))
			angle := float64(i) * goldenAngle
			n.X = cx + radius*math.Cos(angle)
			n.Y = cy + radius*math.Sin(angle)
		}
		sim.nodes[i] = &n
		sim.indexByID[n.ID] = i
	}

	// Edges with stale endpoints are excluded up front rather than
	// failing the whole layout.
	for _, e := range edges {
		if _, ok := sim.indexByID[e.SourceID]; !ok {
			continue
		}
		if _, ok := sim.indexByID[e.TargetID]; !ok {
			continue
		}
		if e.SourceID == e.TargetID {
			continue
		}
		sim.validEdges = append(sim.validEdges, e)
	}
	return sim
}

func (s *Simulation) Alpha() float64 { return s.alpha }

// Settled reports whether the simulation has decayed to equilibrium.
func (s *Simulation) Settled() bool { return s.alpha < s.params.AlphaMin }

// Reheat bumps alpha so the layout stays responsive during interaction.
func (s *Simulation) Reheat(alpha float64) {
	if alpha > s.alpha {
		s.alpha = alpha
	}
}

// Drag pins a node at the pointer position for the duration of a gesture.
func (s *Simulation) Drag(id string, x, y float64) {
	i, ok := s.indexByID[id]
	if !ok {
		return
	}
	s.nodes[i].X = x
	s.nodes[i].Y = y
	s.nodes[i].Pinned = true
	s.velX[i] = 0
	s.velY[i] = 0
	s.Reheat(0.3)
}

// Release unpins a node on pointer-up; alpha is left to decay naturally.
func (s *Simulation) Release(id string) {
	if i, ok := s.indexByID[id]; ok {
		s.nodes[i].Pinned = false
	}
}

// Tick advances the simulation one step: apply the four forces plus
// collision, integrate velocities, clamp to the padded viewport.
func (s *Simulation) Tick() {
	if s.Settled() {
		return
	}
	p := s.params

	s.applyLinkForce()
	s.applyChargeForce()
	s.applyAxisForce()
	s.applyCollision()
	s.applyCenterForce()

	for i, n := range s.nodes {
		if n.Pinned {
			s.velX[i] = 0
			s.velY[i] = 0
			continue
		}
		s.velX[i] *= p.VelocityDecay
		s.velY[i] *= p.VelocityDecay
		n.X += s.velX[i]
		n.Y += s.velY[i]
		s.clamp(n)
	}

	s.alpha += (0 - s.alpha) * p.AlphaDecay
}

// Run ticks until equilibrium or maxTicks, whichever comes first.
func (s *Simulation) Run(maxTicks int) {
	for i := 0; i < maxTicks && !s.Settled(); i++ {
		s.Tick()
	}
}

// Positions returns a copy of the current node states.
func (s *Simulation) Positions() []Node {
	out := make([]Node, len(s.nodes))
	for i, n := range s.nodes {
		out[i] = *n
	}
	return out
}

// applyLinkForce springs connected nodes toward the target link distance.
func (s *Simulation) applyLinkForce() {
	p := s.params
	for _, e := range s.validEdges {
		i := s.indexByID[e.SourceID]
		j := s.indexByID[e.TargetID]
		dx := s.nodes[j].X - s.nodes[i].X
		dy := s.nodes[j].Y - s.nodes[i].Y
		dist := math.Hypot(dx, dy)
		if dist == 0 {
			dist = 1e-6
			dx = 1e-6
		}
		strain := (dist - p.LinkDistance) / dist * p.LinkStrength * s.alpha
		fx := dx * strain
		fy := dy * strain
		s.velX[i] += fx
		s.velY[i] += fy
		s.velX[j] -= fx
		s.velY[j] -= fy
	}
}

// applyChargeForce repels every node pair with an inverse-square force,
// capped at the viewport width so detached nodes do not fly off.
func (s *Simulation) applyChargeForce() {
	p := s.params
	for i := 0; i < len(s.nodes); i++ {
		for j := i + 1; j < len(s.nodes); j++ {
			dx := s.nodes[j].X - s.nodes[i].X
			dy := s.nodes[j].Y - s.nodes[i].Y
			distSq := dx*dx + dy*dy
			if distSq == 0 {
				distSq = 1e-6
				dx = 1e-3
			}
			force := p.ChargeStrength / distSq * s.alpha
			if force > p.Width {
				force = p.Width
			}
			dist := math.Sqrt(distSq)
			fx := dx / dist * force
			fy := dy / dist * force
			s.velX[i] -= fx
			s.velY[i] -= fy
			s.velX[j] += fx
			s.velY[j] += fy
		}
	}
}

// applyAxisForce is the weak positional pull toward the horizontal and
// vertical center lines that keeps disconnected clusters from drifting.
func (s *Simulation) applyAxisForce() {
	p := s.params
	cx := p.Width / 2
	cy := p.Height / 2
	for i, n := range s.nodes {
		s.velX[i] += (cx - n.X) * p.AxisStrength * s.alpha
		s.velY[i] += (cy - n.Y) * p.AxisStrength * s.alpha
	}
}

// applyCenterForce translates the whole layout so its mean sits on the
// viewport center.
func (s *Simulation) applyCenterForce() {
	if len(s.nodes) == 0 {
		return
	}
	p := s.params
	var sx, sy float64
	for _, n := range s.nodes {
		sx += n.X
		sy += n.Y
	}
	dx := (p.Width/2 - sx/float64(len(s.nodes))) * p.CenterStrength
	dy := (p.Height/2 - sy/float64(len(s.nodes))) * p.CenterStrength
	for _, n := range s.nodes {
		if n.Pinned {
			continue
		}
		n.X += dx
		n.Y += dy
	}
}

// applyCollision pushes overlapping nodes apart to the collision radius.
func (s *Simulation) applyCollision() {
	r := s.params.CollisionRadius
	minDist := r
	for i := 0; i < len(s.nodes); i++ {
		for j := i + 1; j < len(s.nodes); j++ {
			dx := s.nodes[j].X - s.nodes[i].X
			dy := s.nodes[j].Y - s.nodes[i].Y
			dist := math.Hypot(dx, dy)
			if dist >= minDist {
				continue
			}
			if dist == 0 {
				dist = 1e-6
				dx = 1e-6
			}
			overlap := (minDist - dist) / dist * 0.5
			fx := dx * overlap
			fy := dy * overlap
			if !s.nodes[i].Pinned {
				s.velX[i] -= fx
				s.velY[i] -= fy
			}
			if !s.nodes[j].Pinned {
				s.velX[j] += fx
				s.velY[j] += fy
			}
		}
	}
}

func (s *Simulation) clamp(n *Node) {
	p := s.params
	if n.X < p.Padding {
		n.X = p.Padding
	}
	if n.X > p.Width-p.Padding {
		n.X = p.Width - p.Padding
	}
	if n.Y < p.Padding {
		n.Y = p.Padding
	}
	if n.Y > p.Height-p.Padding {
		n.Y = p.Height - p.Padding
	}
}
