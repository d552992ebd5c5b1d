package activity

import (
	"reflect"
	"testing"
)

func TestListDiff(t *testing.T) {
	cases := []struct {
		name        string
		prev        []string
		cur         []string
		wantAdded   []string
		wantRemoved []string
	}{
		{
			name:      "addition",
			prev:      []string{"sad"},
			cur:       []string{"sad", "angry"},
			wantAdded: []string{"angry"},
		},
		{
			name:        "removal",
			prev:        []string{"sad", "angry"},
			cur:         []string{"sad"},
			wantRemoved: []string{"angry"},
		},
		{
			name: "reorder_is_not_a_change",
			prev: []string{"a", "b", "c"},
			cur:  []string{"c", "a", "b"},
		},
		{
			name: "both_nil",
		},
		{
			name:        "swap",
			prev:        []string{"calm"},
			cur:         []string{"tense"},
			wantAdded:   []string{"tense"},
			wantRemoved: []string{"calm"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			added, removed := listDiff(tc.prev, tc.cur)
			if !reflect.DeepEqual(added, tc.wantAdded) {
				t.Fatalf("added=%v, want %v", added, tc.wantAdded)
			}
			if !reflect.DeepEqual(removed, tc.wantRemoved) {
				t.Fatalf("removed=%v, want %v", removed, tc.wantRemoved)
			}
		})
	}
}

func TestTextChanged(t *testing.T) {
	if textChanged("", "   ") {
		t.Fatalf("whitespace-only difference should not count as a change")
	}
	if !textChanged("old", "new") {
		t.Fatalf("distinct text should count as a change")
	}
}
