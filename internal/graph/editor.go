package graph

import (
	"context"
	"fmt"
)

// EditorState is the tagged interaction state of the relationship editor.
type EditorState int

const (
	StateIdle EditorState = iota
	StateSelectingTarget
	StateEditingRelationship
)

func (s EditorState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelectingTarget:
		return "selecting_target"
	case StateEditingRelationship:
		return "editing_relationship"
	}
	return "unknown"
}

// RelationshipForm is the dialog payload submitted on save.
type RelationshipForm struct {
	RelationshipType string
	Description      string
}

// Intents are the mutation callbacks into the backing store. Each is
// awaited; a rejected intent leaves the editor state untouched so the
// dialog can be retried or cancelled.
type Intents interface {
	AddRelationship(ctx context.Context, sourceID, targetID, relationshipType, description string) error
	UpdateRelationship(ctx context.Context, id, relationshipType, description string) error
	DeleteRelationship(ctx context.Context, id string) error
}

// Editor is the two-click relationship editing state machine. All
// transitions run through its event methods; there is no other mutable
// interaction state.
type Editor struct {
	state    EditorState
	sourceID string
	targetID string
	existing *Edge
	intents  Intents
}

func NewEditor(intents Intents) *Editor {
	return &Editor{state: StateIdle, intents: intents}
}

func (e *Editor) State() EditorState { return e.state }

// HighlightedNode returns the node to render with stroke emphasis, or ""
// outside SelectingTarget.
func (e *Editor) HighlightedNode() string {
	if e.state == StateSelectingTarget {
		return e.sourceID
	}
	return ""
}

// Editing returns the endpoints and existing edge of an open dialog.
func (e *Editor) Editing() (sourceID, targetID string, existing *Edge, open bool) {
	if e.state != StateEditingRelationship {
		return "", "", nil, false
	}
	return e.sourceID, e.targetID, e.existing, true
}

// ModClickNode handles a modifier-click on a node. First click selects
// the source; a second click on a different node opens the new-
// relationship dialog. Re-clicking the selected source deselects.
func (e *Editor) ModClickNode(id string) {
	switch e.state {
	case StateIdle:
		e.state = StateSelectingTarget
		e.sourceID = id
	case StateSelectingTarget:
		if id == e.sourceID {
			e.reset()
			return
		}
		e.state = StateEditingRelationship
		e.targetID = id
		e.existing = nil
	case StateEditingRelationship:
		// Dialog is modal; node clicks are ignored until it closes.
	}
}

// ClickEdge opens the edit dialog for an existing relationship. Only
// valid from Idle.
func (e *Editor) ClickEdge(edge Edge) {
	if e.state != StateIdle {
		return
	}
	copied := edge
	e.state = StateEditingRelationship
	e.sourceID = edge.SourceID
	e.targetID = edge.TargetID
	e.existing = &copied
}

// Save emits the create or update intent. On rejection the dialog stays
// open and the error is returned for display.
func (e *Editor) Save(ctx context.Context, form RelationshipForm) error {
	if e.state != StateEditingRelationship {
		return fmt.Errorf("no relationship dialog open")
	}
	var err error
	if e.existing == nil {
		err = e.intents.AddRelationship(ctx, e.sourceID, e.targetID, form.RelationshipType, form.Description)
	} else {
		err = e.intents.UpdateRelationship(ctx, e.existing.ID, form.RelationshipType, form.Description)
	}
	if err != nil {
		return err
	}
	e.reset()
	return nil
}

// Delete emits the delete intent for an existing relationship. Rejection
// keeps the dialog open.
func (e *Editor) Delete(ctx context.Context) error {
	if e.state != StateEditingRelationship {
		return fmt.Errorf("no relationship dialog open")
	}
	if e.existing == nil {
		return fmt.Errorf("cannot delete an unsaved relationship")
	}
	if err := e.intents.DeleteRelationship(ctx, e.existing.ID); err != nil {
		return err
	}
	e.reset()
	return nil
}

// Cancel closes the dialog or clears the pending selection.
func (e *Editor) Cancel() {
	e.reset()
}

func (e *Editor) reset() {
	e.state = StateIdle
	e.sourceID = ""
	e.targetID = ""
	e.existing = nil
}
