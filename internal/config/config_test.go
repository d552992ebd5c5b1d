package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	tuning, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load(\"\") returned error: %v", err)
	}
	if tuning.Layout.LinkDistance != 150 {
		t.Fatalf("default link distance = %v, want 150", tuning.Layout.LinkDistance)
	}
	if !tuning.HasRelationshipType("protects") {
		t.Fatalf("default vocabulary missing 'protects'")
	}
}

func TestLoadPartialFileKeepsDefaultsForOmittedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	content := "layout:\n  link_distance: 200\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write tuning file: %v", err)
	}

	tuning, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if tuning.Layout.LinkDistance != 200 {
		t.Fatalf("link distance = %v, want 200", tuning.Layout.LinkDistance)
	}
	if tuning.Layout.CollisionRadius != 60 {
		t.Fatalf("collision radius = %v, want default 60", tuning.Layout.CollisionRadius)
	}
	if len(tuning.Vocabulary.Roles) == 0 {
		t.Fatalf("roles vocabulary should fall back to defaults")
	}
}

func TestHasRole(t *testing.T) {
	tuning := Default()
	cases := []struct {
		role string
		want bool
	}{
		{role: "", want: true},
		{role: "protector", want: true},
		{role: "villain", want: false},
	}
	for _, tc := range cases {
		if got := tuning.HasRole(tc.role); got != tc.want {
			t.Fatalf("HasRole(%q)=%v, want %v", tc.role, got, tc.want)
		}
	}
}
