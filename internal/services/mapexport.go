package services

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"math"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/inneratlas/inneratlas-backend/internal/config"
	"github.com/inneratlas/inneratlas-backend/internal/graph"
	"github.com/inneratlas/inneratlas-backend/internal/logger"
)

// MapExportService lays out a system snapshot: force layout plus curved
// multi-edge geometry, either as JSON for clients that render themselves
// or as a finished PNG with role-colored nodes and name labels.
type MapExportService interface {
	ComputeMap(ctx context.Context, snap *Snapshot, filter graph.Filter) (*MapLayout, error)
	RenderMap(ctx context.Context, snap *Snapshot) (bytes.Buffer, error)
}

// MapLayout is the positioned map. Filtered-out nodes and edges are
// omitted from the slices; positions of the remaining nodes are the same
// as in the unfiltered layout.
type MapLayout struct {
	Width      float64           `json:"width"`
	Height     float64           `json:"height"`
	NodeRadius float64           `json:"node_radius"`
	Nodes      []graph.Node      `json:"nodes"`
	Edges      []graph.EdgeCurve `json:"edges"`
}

type mapExportService struct {
	log      *logger.Logger
	tuning   config.Tuning
	fontFace font.Face
}

var roleColors = map[string]color.NRGBA{
	"protector":   {R: 0x4a, G: 0x90, B: 0xd9, A: 0xff},
	"manager":     {R: 0x35, G: 0x7a, B: 0x38, A: 0xff},
	"firefighter": {R: 0xd9, G: 0x6a, B: 0x2b, A: 0xff},
	"exile":       {R: 0x8e, G: 0x44, B: 0xad, A: 0xff},
	"self":        {R: 0xf2, G: 0xc1, B: 0x4e, A: 0xff},
}

var defaultRoleColor = color.NRGBA{R: 0x7f, G: 0x8c, B: 0x8d, A: 0xff}

func NewMapExportService(log *logger.Logger, tuning config.Tuning) MapExportService {
	serviceLog := log.With("service", "MapExportService")

	var face font.Face
	if fontPath := strings.TrimSpace(os.Getenv("MAP_FONT")); fontPath != "" {
		loaded, err := loadFontFace(fontPath, 14)
		if err != nil {
			serviceLog.Warn("failed to load map font, labels use the built-in face", "path", fontPath, "error", err)
		} else {
			face = loaded
		}
	}

	return &mapExportService{
		log:      serviceLog,
		tuning:   tuning,
		fontFace: face,
	}
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	return truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}

func (ms *mapExportService) layoutParams() graph.Params {
	p := graph.DefaultParams()
	l := ms.tuning.Layout
	p.Width = l.Width
	p.Height = l.Height
	p.Padding = l.Padding
	p.LinkDistance = l.LinkDistance
	p.ChargeStrength = l.ChargeStrength
	p.AxisStrength = l.AxisStrength
	p.CollisionRadius = l.CollisionRadius
	return p
}

func snapshotGraph(snap *Snapshot) ([]graph.Node, []graph.Edge) {
	nodes := make([]graph.Node, 0, len(snap.Parts))
	for _, p := range snap.Parts {
		nodes = append(nodes, graph.Node{
			ID:   p.ID.String(),
			Name: p.Name,
			Role: p.Role,
		})
	}
	edges := make([]graph.Edge, 0, len(snap.Relationships))
	for _, r := range snap.Relationships {
		edges = append(edges, graph.Edge{
			ID:       r.ID.String(),
			SourceID: r.SourceID.String(),
			TargetID: r.TargetID.String(),
			Type:     r.RelationshipType,
		})
	}
	return nodes, edges
}

func (ms *mapExportService) place(nodes []graph.Node, edges []graph.Edge) ([]graph.Node, []graph.EdgeCurve, graph.Params) {
	params := ms.layoutParams()
	sim := graph.NewSimulation(params, nodes, edges)
	sim.Run(300)
	placed := sim.Positions()
	curves := graph.ComputeEdgeGeometry(placed, edges, ms.tuning.Layout.NodeRadius, ms.tuning.Layout.CurveOffset)
	return placed, curves, params
}

// ComputeMap lays out the full snapshot, then applies the filter as a
// visibility pass. Filtering never re-runs the simulation, so toggling
// filters cannot move nodes.
func (ms *mapExportService) ComputeMap(_ context.Context, snap *Snapshot, filter graph.Filter) (*MapLayout, error) {
	if snap == nil {
		return nil, fmt.Errorf("%w: snapshot required", ErrInvalidInput)
	}

	nodes, edges := snapshotGraph(snap)
	placed, curves, params := ms.place(nodes, edges)
	nodeVis, edgeVis := filter.Visibility(placed, edges)

	layout := &MapLayout{
		Width:      params.Width,
		Height:     params.Height,
		NodeRadius: ms.tuning.Layout.NodeRadius,
		Nodes:      make([]graph.Node, 0, len(placed)),
		Edges:      make([]graph.EdgeCurve, 0, len(curves)),
	}
	for _, n := range placed {
		if nodeVis[n.ID] {
			layout.Nodes = append(layout.Nodes, n)
		}
	}
	for _, c := range curves {
		if edgeVis[c.EdgeID] {
			layout.Edges = append(layout.Edges, c)
		}
	}
	return layout, nil
}

func (ms *mapExportService) RenderMap(_ context.Context, snap *Snapshot) (bytes.Buffer, error) {
	var buf bytes.Buffer
	if snap == nil {
		return buf, fmt.Errorf("%w: snapshot required", ErrInvalidInput)
	}

	nodes, edges := snapshotGraph(snap)
	placed, curves, params := ms.place(nodes, edges)
	nodeRadius := ms.tuning.Layout.NodeRadius

	dc := gg.NewContext(int(params.Width), int(params.Height))
	dc.SetColor(color.NRGBA{R: 0xfa, G: 0xfa, B: 0xf7, A: 0xff})
	dc.Clear()
	if ms.fontFace != nil {
		dc.SetFontFace(ms.fontFace)
	}

	edgeColor := color.NRGBA{R: 0x9a, G: 0x9a, B: 0x94, A: 0xff}
	for _, c := range curves {
		dc.SetColor(edgeColor)
		dc.SetLineWidth(1.5)
		dc.MoveTo(c.Start.X, c.Start.Y)
		if c.Curved {
			dc.QuadraticTo(c.Control.X, c.Control.Y, c.End.X, c.End.Y)
		} else {
			dc.LineTo(c.End.X, c.End.Y)
		}
		dc.Stroke()
		ms.drawArrowhead(dc, c, edgeColor)
	}

	for _, n := range placed {
		fill, ok := roleColors[n.Role]
		if !ok {
			fill = defaultRoleColor
		}
		dc.SetColor(fill)
		dc.DrawCircle(n.X, n.Y, nodeRadius)
		dc.Fill()
		dc.SetColor(color.NRGBA{R: 0x2c, G: 0x2c, B: 0x2c, A: 0xff})
		dc.SetLineWidth(1)
		dc.DrawCircle(n.X, n.Y, nodeRadius)
		dc.Stroke()

		label := n.Name
		if label == "" {
			label = "Unknown"
		}
		tw, _ := dc.MeasureString(label)
		dc.SetColor(color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff})
		dc.DrawString(label, n.X-tw/2, n.Y+nodeRadius+16)
	}

	if err := dc.EncodePNG(&buf); err != nil {
		return buf, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf, nil
}

// drawArrowhead places a small chevron at the edge's end, aligned with
// the curve's direction just before the endpoint.
func (ms *mapExportService) drawArrowhead(dc *gg.Context, c graph.EdgeCurve, col color.NRGBA) {
	near := c.QuadraticPoint(0.95)
	dx := c.End.X - near.X
	dy := c.End.Y - near.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	dx /= length
	dy /= length

	const size = 8.0
	leftX := c.End.X - size*dx + size*0.5*dy
	leftY := c.End.Y - size*dy - size*0.5*dx
	rightX := c.End.X - size*dx - size*0.5*dy
	rightY := c.End.Y - size*dy + size*0.5*dx

	dc.SetColor(col)
	dc.MoveTo(c.End.X, c.End.Y)
	dc.LineTo(leftX, leftY)
	dc.LineTo(rightX, rightY)
	dc.ClosePath()
	dc.Fill()
}
