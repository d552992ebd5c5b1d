package graph

import (
	"context"
	"errors"
	"testing"
)

type fakeIntents struct {
	addErr    error
	updateErr error
	deleteErr error

	added   []string
	updated []string
	deleted []string
}

func (f *fakeIntents) AddRelationship(_ context.Context, sourceID, targetID, relationshipType, _ string) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, sourceID+"->"+targetID+":"+relationshipType)
	return nil
}

func (f *fakeIntents) UpdateRelationship(_ context.Context, id, relationshipType, _ string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, id+":"+relationshipType)
	return nil
}

func (f *fakeIntents) DeleteRelationship(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func TestTwoClickCreateFlow(t *testing.T) {
	intents := &fakeIntents{}
	e := NewEditor(intents)

	if e.State() != StateIdle {
		t.Fatalf("initial state %v, want idle", e.State())
	}

	e.ModClickNode("a")
	if e.State() != StateSelectingTarget {
		t.Fatalf("after first click state %v, want selecting_target", e.State())
	}
	if e.HighlightedNode() != "a" {
		t.Fatalf("highlight %q, want source node a", e.HighlightedNode())
	}

	e.ModClickNode("b")
	if e.State() != StateEditingRelationship {
		t.Fatalf("after second click state %v, want editing_relationship", e.State())
	}
	if e.HighlightedNode() != "" {
		t.Fatalf("highlight should clear on leaving selecting_target")
	}
	src, dst, existing, open := e.Editing()
	if !open || src != "a" || dst != "b" || existing != nil {
		t.Fatalf("dialog = (%s,%s,%v,%v), want new a->b", src, dst, existing, open)
	}

	if err := e.Save(context.Background(), RelationshipForm{RelationshipType: "protects"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if e.State() != StateIdle {
		t.Fatalf("state after save %v, want idle", e.State())
	}
	if len(intents.added) != 1 || intents.added[0] != "a->b:protects" {
		t.Fatalf("added=%v, want one a->b:protects", intents.added)
	}
}

func TestReclickSourceDeselects(t *testing.T) {
	e := NewEditor(&fakeIntents{})
	e.ModClickNode("a")
	e.ModClickNode("a")
	if e.State() != StateIdle {
		t.Fatalf("state %v, want idle after re-clicking source", e.State())
	}
}

func TestRejectedSaveKeepsDialogOpen(t *testing.T) {
	intents := &fakeIntents{addErr: errors.New("backend down")}
	e := NewEditor(intents)
	e.ModClickNode("a")
	e.ModClickNode("b")

	err := e.Save(context.Background(), RelationshipForm{RelationshipType: "protects"})
	if err == nil {
		t.Fatalf("save should surface the rejection")
	}
	if e.State() != StateEditingRelationship {
		t.Fatalf("state %v after rejection, want dialog still open", e.State())
	}

	// Retry succeeds once the backend recovers.
	intents.addErr = nil
	if err := e.Save(context.Background(), RelationshipForm{RelationshipType: "protects"}); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if e.State() != StateIdle {
		t.Fatalf("state %v after retry, want idle", e.State())
	}
}

func TestEditExistingEdge(t *testing.T) {
	intents := &fakeIntents{}
	e := NewEditor(intents)
	edge := Edge{ID: "r1", SourceID: "a", TargetID: "b", Type: "protects"}

	e.ClickEdge(edge)
	_, _, existing, open := e.Editing()
	if !open || existing == nil || existing.ID != "r1" {
		t.Fatalf("dialog should carry the existing edge, got %v open=%v", existing, open)
	}

	if err := e.Save(context.Background(), RelationshipForm{RelationshipType: "supports"}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(intents.updated) != 1 || intents.updated[0] != "r1:supports" {
		t.Fatalf("updated=%v, want r1:supports", intents.updated)
	}
}

func TestDeleteFlow(t *testing.T) {
	intents := &fakeIntents{deleteErr: errors.New("rejected")}
	e := NewEditor(intents)
	e.ClickEdge(Edge{ID: "r1", SourceID: "a", TargetID: "b", Type: "protects"})

	if err := e.Delete(context.Background()); err == nil {
		t.Fatalf("rejected delete should return the error")
	}
	if e.State() != StateEditingRelationship {
		t.Fatalf("dialog should stay open after rejected delete")
	}

	intents.deleteErr = nil
	if err := e.Delete(context.Background()); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if e.State() != StateIdle || len(intents.deleted) != 1 {
		t.Fatalf("delete did not complete: state=%v deleted=%v", e.State(), intents.deleted)
	}
}

func TestDeleteUnsavedRelationshipRejected(t *testing.T) {
	e := NewEditor(&fakeIntents{})
	e.ModClickNode("a")
	e.ModClickNode("b")
	if err := e.Delete(context.Background()); err == nil {
		t.Fatalf("deleting a not-yet-created relationship should fail")
	}
}

func TestCancelReturnsToIdle(t *testing.T) {
	e := NewEditor(&fakeIntents{})
	e.ModClickNode("a")
	e.Cancel()
	if e.State() != StateIdle {
		t.Fatalf("cancel from selecting_target: state %v", e.State())
	}

	e.ClickEdge(Edge{ID: "r1", SourceID: "a", TargetID: "b"})
	e.Cancel()
	if e.State() != StateIdle {
		t.Fatalf("cancel from dialog: state %v", e.State())
	}
}

func TestEdgeClickIgnoredWhileSelecting(t *testing.T) {
	e := NewEditor(&fakeIntents{})
	e.ModClickNode("a")
	e.ClickEdge(Edge{ID: "r1", SourceID: "x", TargetID: "y"})
	if e.State() != StateSelectingTarget {
		t.Fatalf("edge click during selection should be ignored, state %v", e.State())
	}
}
