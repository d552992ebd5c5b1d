package activity

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func testReconciler(now time.Time) (*Reconciler, *fakeClock) {
	clock := &fakeClock{now: now}
	return NewReconciler(NewStampCache(), clock, nil), clock
}

func TestUnchangedPartEmitsNoUpdateEvent(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r, _ := testReconciler(now)

	part := PartState{
		ID:        "p1",
		Name:      "Inner Critic",
		Feelings:  []string{"sad"},
		UpdatedAt: now.Add(-time.Minute).Format(time.RFC3339),
	}
	in := Input{
		PreviousParts:  map[string]PartState{"p1": part},
		CurrentParts:   map[string]PartState{"p1": part},
		LastCheckpoint: now.Add(-time.Hour),
	}

	res := r.Reconcile(in)
	for _, ev := range res.Events {
		if ev.Type == EventPartUpdated {
			t.Fatalf("part_updated emitted for unchanged part: %+v", ev)
		}
	}
}

func TestSingleBatchedUpdateEventPerPart(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r, _ := testReconciler(now)

	prev := PartState{
		ID:       "p1",
		Name:     "Inner Critic",
		Feelings: []string{"sad"},
	}
	cur := PartState{
		ID:        "p1",
		Name:      "Inner Critic",
		Feelings:  []string{"sad", "angry"},
		UpdatedAt: now.Add(-time.Minute).Format(time.RFC3339),
	}
	in := Input{
		PreviousParts:  map[string]PartState{"p1": prev},
		CurrentParts:   map[string]PartState{"p1": cur},
		LastCheckpoint: now.Add(-time.Hour),
	}

	res := r.Reconcile(in)
	var updates []Event
	for _, ev := range res.Events {
		if ev.Type == EventPartUpdated {
			updates = append(updates, ev)
		}
	}
	if len(updates) != 1 {
		t.Fatalf("got %d part_updated events, want exactly 1", len(updates))
	}
	title := updates[0].Title
	if !strings.Contains(title, "feelings") || !strings.Contains(title, "+angry") {
		t.Fatalf("title %q should indicate angry added to feelings", title)
	}
	for _, field := range []string{"beliefs", "triggers", "needs"} {
		if strings.Contains(title, field) {
			t.Fatalf("title %q mentions unchanged field %s", title, field)
		}
	}
}

func TestUpdateBeforeCheckpointIgnored(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r, _ := testReconciler(now)

	prev := PartState{ID: "p1", Name: "Exile", Feelings: []string{"sad"}}
	cur := PartState{
		ID:        "p1",
		Name:      "Exile",
		Feelings:  []string{"sad", "lonely"},
		UpdatedAt: now.Add(-2 * time.Hour).Format(time.RFC3339),
	}
	in := Input{
		PreviousParts:  map[string]PartState{"p1": prev},
		CurrentParts:   map[string]PartState{"p1": cur},
		LastCheckpoint: now.Add(-time.Hour),
	}

	res := r.Reconcile(in)
	for _, ev := range res.Events {
		if ev.Type == EventPartUpdated {
			t.Fatalf("update older than checkpoint should not surface: %+v", ev)
		}
	}
}

func TestFeedCappedAndSortedDescending(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r, _ := testReconciler(now)

	var journals []JournalState
	for i := 0; i < 25; i++ {
		journals = append(journals, JournalState{
			ID:        fmt.Sprintf("j%02d", i),
			Title:     fmt.Sprintf("Entry %d", i),
			CreatedAt: now.Add(-time.Duration(i) * time.Hour).Format(time.RFC3339),
		})
	}

	res := r.Reconcile(Input{Journals: journals})
	if len(res.Events) != FeedLimit {
		t.Fatalf("feed has %d events, want %d", len(res.Events), FeedLimit)
	}
	for i := 1; i < len(res.Events); i++ {
		if res.Events[i].SortKey > res.Events[i-1].SortKey {
			t.Fatalf("feed not sorted descending at index %d", i)
		}
	}
	if res.Events[0].AssociatedID != "j00" {
		t.Fatalf("newest journal should lead the feed, got %s", res.Events[0].AssociatedID)
	}
}

func TestRelationshipNameFallback(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r, _ := testReconciler(now)

	in := Input{
		CurrentParts: map[string]PartState{
			"a": {ID: "a", Name: "Protector", CreatedAt: now.Format(time.RFC3339)},
		},
		Relationships: map[string]RelationshipState{
			"r1": {
				ID:               "r1",
				SourceID:         "a",
				TargetID:         "missing",
				RelationshipType: "protects",
				CreatedAt:        now.Format(time.RFC3339),
			},
		},
	}

	res := r.Reconcile(in)
	var relEvent *Event
	for i := range res.Events {
		if res.Events[i].Type == EventRelationship {
			relEvent = &res.Events[i]
		}
	}
	if relEvent == nil {
		t.Fatalf("relationship event missing from feed")
	}
	if relEvent.Title != "Protector protects Unknown" {
		t.Fatalf("title = %q, want Unknown fallback for missing target", relEvent.Title)
	}
	if res.Degraded {
		t.Fatalf("missing referenced part must not degrade the pass")
	}
}

func TestSkewedJournalTimestampStableAcrossPasses(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r, clock := testReconciler(now)

	in := Input{
		Journals: []JournalState{{
			ID:        "J1",
			Title:     "From the future",
			CreatedAt: now.Add(time.Hour).Format(time.RFC3339),
		}},
	}

	first := r.Reconcile(in)
	if len(first.Events) != 1 {
		t.Fatalf("got %d events, want 1", len(first.Events))
	}
	want := now.Add(-10 * time.Minute)
	if !first.Events[0].Timestamp.Equal(want) {
		t.Fatalf("skewed timestamp = %v, want now-10m (%v)", first.Events[0].Timestamp, want)
	}

	clock.now = clock.now.Add(5 * time.Second)
	second := r.Reconcile(in)
	if !second.Events[0].Timestamp.Equal(first.Events[0].Timestamp) {
		t.Fatalf("second pass timestamp %v differs from first %v", second.Events[0].Timestamp, first.Events[0].Timestamp)
	}
}

func TestNilCollectionsAreEmptyNotFatal(t *testing.T) {
	r, _ := testReconciler(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	res := r.Reconcile(Input{})
	if len(res.Events) != 0 {
		t.Fatalf("empty input produced %d events", len(res.Events))
	}
	if res.Degraded {
		t.Fatalf("empty input should not be degraded")
	}
}

func TestPartCreatedRequiresCreatedAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r, _ := testReconciler(now)

	in := Input{
		CurrentParts: map[string]PartState{
			"p1": {ID: "p1", Name: "Ghost"},
			"p2": {ID: "p2", Name: "Firefighter", CreatedAt: now.Format(time.RFC3339)},
		},
	}
	res := r.Reconcile(in)
	if len(res.Events) != 1 {
		t.Fatalf("got %d events, want 1 (only the part with created_at)", len(res.Events))
	}
	if res.Events[0].AssociatedID != "p2" {
		t.Fatalf("wrong part surfaced: %s", res.Events[0].AssociatedID)
	}
}
