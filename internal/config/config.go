package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inneratlas/inneratlas-backend/internal/logger"
)

// Tuning carries the deploy-time knobs that are data, not code: the
// role / relationship-type vocabularies and the graph layout constants.
// Loaded from a YAML file when TUNING_PATH is set, otherwise defaults.
type Tuning struct {
	Vocabulary VocabularyConfig `yaml:"vocabulary"`
	Layout     LayoutConfig     `yaml:"layout"`
}

type VocabularyConfig struct {
	Roles             []string `yaml:"roles"`
	RelationshipTypes []string `yaml:"relationship_types"`
}

type LayoutConfig struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	Padding         float64 `yaml:"padding"`
	LinkDistance    float64 `yaml:"link_distance"`
	ChargeStrength  float64 `yaml:"charge_strength"`
	AxisStrength    float64 `yaml:"axis_strength"`
	CollisionRadius float64 `yaml:"collision_radius"`
	NodeRadius      float64 `yaml:"node_radius"`
	CurveOffset     float64 `yaml:"curve_offset"`
}

func Default() Tuning {
	return Tuning{
		Vocabulary: VocabularyConfig{
			Roles: []string{"protector", "exile", "manager", "firefighter", "self"},
			RelationshipTypes: []string{
				"protects", "triggered by", "blends with",
				"conflicts with", "supports", "manages",
			},
		},
		Layout: LayoutConfig{
			Width:           1200,
			Height:          800,
			Padding:         50,
			LinkDistance:    150,
			ChargeStrength:  300,
			AxisStrength:    0.1,
			CollisionRadius: 60,
			NodeRadius:      24,
			CurveOffset:     33,
		},
	}
}

// Load reads the tuning file at path, filling any field the file omits
// from the defaults. An empty path returns the defaults unchanged.
func Load(path string, log *logger.Logger) (Tuning, error) {
	tuning := Default()
	if path == "" {
		return tuning, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return tuning, fmt.Errorf("read tuning file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &tuning); err != nil {
		return Default(), fmt.Errorf("parse tuning file: %w", err)
	}
	fillDefaults(&tuning)
	if log != nil {
		log.Info("Tuning loaded", "path", path)
	}
	return tuning, nil
}

func fillDefaults(t *Tuning) {
	def := Default()
	if len(t.Vocabulary.Roles) == 0 {
		t.Vocabulary.Roles = def.Vocabulary.Roles
	}
	if len(t.Vocabulary.RelationshipTypes) == 0 {
		t.Vocabulary.RelationshipTypes = def.Vocabulary.RelationshipTypes
	}
	if t.Layout.Width <= 0 {
		t.Layout.Width = def.Layout.Width
	}
	if t.Layout.Height <= 0 {
		t.Layout.Height = def.Layout.Height
	}
	if t.Layout.Padding <= 0 {
		t.Layout.Padding = def.Layout.Padding
	}
	if t.Layout.LinkDistance <= 0 {
		t.Layout.LinkDistance = def.Layout.LinkDistance
	}
	if t.Layout.ChargeStrength <= 0 {
		t.Layout.ChargeStrength = def.Layout.ChargeStrength
	}
	if t.Layout.AxisStrength <= 0 {
		t.Layout.AxisStrength = def.Layout.AxisStrength
	}
	if t.Layout.CollisionRadius <= 0 {
		t.Layout.CollisionRadius = def.Layout.CollisionRadius
	}
	if t.Layout.NodeRadius <= 0 {
		t.Layout.NodeRadius = def.Layout.NodeRadius
	}
	if t.Layout.CurveOffset <= 0 {
		t.Layout.CurveOffset = def.Layout.CurveOffset
	}
}

// HasRole reports whether role is in the configured vocabulary. An empty
// role is always acceptable (role is optional on a part).
func (t Tuning) HasRole(role string) bool {
	if role == "" {
		return true
	}
	for _, r := range t.Vocabulary.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (t Tuning) HasRelationshipType(rt string) bool {
	for _, v := range t.Vocabulary.RelationshipTypes {
		if v == rt {
			return true
		}
	}
	return false
}
