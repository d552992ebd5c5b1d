package activity

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/inneratlas/inneratlas-backend/internal/logger"
)

// PartState is the slice of a part the reconciler compares between passes.
// Timestamps stay raw strings here; resolution happens in one place.
type PartState struct {
	ID          string
	Name        string
	Role        string
	Description string
	Feelings    []string
	Beliefs     []string
	Triggers    []string
	Needs       []string
	CreatedAt   string
	UpdatedAt   string
}

type RelationshipState struct {
	ID               string
	SourceID         string
	TargetID         string
	RelationshipType string
	CreatedAt        string
}

type JournalState struct {
	ID        string
	Title     string
	CreatedAt string
	Date      string
}

type SessionState struct {
	ID        string
	Title     string
	Topic     string
	UpdatedAt string
}

// Input is one reconciliation pass: the previously observed parts, the
// current snapshot, and the checkpoint of the last pass. Nil collections
// are treated as empty.
type Input struct {
	PreviousParts  map[string]PartState
	CurrentParts   map[string]PartState
	Relationships  map[string]RelationshipState
	Journals       []JournalState
	Sessions       []SessionState
	LastCheckpoint time.Time
}

// Result carries the feed plus a degraded flag set when any entity group
// failed and was skipped.
type Result struct {
	Events   []Event `json:"events"`
	Degraded bool    `json:"degraded"`
}

type Reconciler struct {
	cache *StampCache
	clock Clock
	log   *logger.Logger
	limit int
}

// NewReconciler builds a reconciler around an injected stamp cache and
// clock; both are shared across passes for idempotent timestamp correction.
func NewReconciler(cache *StampCache, clock Clock, log *logger.Logger) *Reconciler {
	if cache == nil {
		cache = NewStampCache()
	}
	if clock == nil {
		clock = RealClock()
	}
	if log != nil {
		log = log.With("component", "ActivityReconciler")
	}
	return &Reconciler{cache: cache, clock: clock, log: log, limit: FeedLimit}
}

// Reconcile synthesizes the feed for one pass. A panic inside one entity
// group marks the result degraded and the remaining groups still run.
func (r *Reconciler) Reconcile(in Input) Result {
	var events []Event
	degraded := false

	groups := []struct {
		name string
		run  func() []Event
	}{
		{name: "journals", run: func() []Event { return r.journalEvents(in.Journals) }},
		{name: "parts", run: func() []Event { return r.partEvents(in.PreviousParts, in.CurrentParts, in.LastCheckpoint) }},
		{name: "relationships", run: func() []Event { return r.relationshipEvents(in.Relationships, in.CurrentParts) }},
		{name: "sessions", run: func() []Event { return r.sessionEvents(in.Sessions) }},
	}

	for _, group := range groups {
		groupEvents, err := r.runGroup(group.name, group.run)
		if err != nil {
			degraded = true
			continue
		}
		events = append(events, groupEvents...)
	}

	// Drop anything whose resolved timestamp is unusable.
	filtered := events[:0]
	for _, ev := range events {
		if !ev.Timestamp.IsZero() {
			filtered = append(filtered, ev)
		}
	}
	events = filtered

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].SortKey > events[j].SortKey
	})
	if len(events) > r.limit {
		events = events[:r.limit]
	}
	return Result{Events: events, Degraded: degraded}
}

func (r *Reconciler) runGroup(name string, run func() []Event) (events []Event, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("activity group %s panicked: %v", name, rec)
			if r.log != nil {
				r.log.Warn("Activity group failed, continuing with remaining groups", "group", name, "panic", rec)
			}
		}
	}()
	return run(), nil
}

func (r *Reconciler) journalEvents(journals []JournalState) []Event {
	events := make([]Event, 0, len(journals))
	for _, j := range journals {
		raw := j.CreatedAt
		if raw == "" {
			raw = j.Date
		}
		ts := r.cache.Resolve("journal:"+j.ID, raw, r.clock)
		title := j.Title
		if strings.TrimSpace(title) == "" {
			title = "Untitled journal"
		}
		events = append(events, Event{
			Type:         EventJournal,
			ID:           "journal:" + j.ID,
			Title:        title,
			Timestamp:    ts,
			AssociatedID: j.ID,
			SortKey:      ts.UnixMilli(),
		})
	}
	return events
}

func (r *Reconciler) partEvents(previous, current map[string]PartState, checkpoint time.Time) []Event {
	events := make([]Event, 0, len(current))

	// Deterministic iteration keeps tie-breaking stable across passes.
	ids := make([]string, 0, len(current))
	for id := range current {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		part := current[id]
		if part.CreatedAt != "" {
			ts := r.cache.Resolve("part_created:"+id, part.CreatedAt, r.clock)
			events = append(events, Event{
				Type:         EventPartCreated,
				ID:           "part_created:" + id,
				Title:        "New part: " + part.Name,
				Timestamp:    ts,
				AssociatedID: id,
				SortKey:      ts.UnixMilli(),
			})
		}

		prev, seenBefore := previous[id]
		if !seenBefore {
			continue
		}
		updatedAt, ok := parseTimestamp(part.UpdatedAt)
		if !ok || !updatedAt.After(checkpoint) {
			continue
		}
		summary := diffPartFields(prev, part)
		if summary == "" {
			continue
		}
		ts := r.cache.Resolve("part_updated:"+id+":"+part.UpdatedAt, part.UpdatedAt, r.clock)
		events = append(events, Event{
			Type:         EventPartUpdated,
			ID:           "part_updated:" + id,
			Title:        part.Name + " updated (" + summary + ")",
			Timestamp:    ts,
			AssociatedID: id,
			SortKey:      ts.UnixMilli(),
		})
	}
	return events
}

// diffPartFields batches all field changes for one part into a single
// summary string; an empty string means no change.
func diffPartFields(prev, cur PartState) string {
	var clauses []string

	lists := []struct {
		name string
		prev []string
		cur  []string
	}{
		{name: "feelings", prev: prev.Feelings, cur: cur.Feelings},
		{name: "beliefs", prev: prev.Beliefs, cur: cur.Beliefs},
		{name: "triggers", prev: prev.Triggers, cur: cur.Triggers},
		{name: "needs", prev: prev.Needs, cur: cur.Needs},
	}
	for _, l := range lists {
		added, removed := listDiff(l.prev, l.cur)
		if len(added) == 0 && len(removed) == 0 {
			continue
		}
		var marks []string
		for _, v := range added {
			marks = append(marks, "+"+v)
		}
		for _, v := range removed {
			marks = append(marks, "-"+v)
		}
		clauses = append(clauses, l.name+": "+strings.Join(marks, ", "))
	}
	if textChanged(prev.Description, cur.Description) {
		clauses = append(clauses, "description updated")
	}
	if textChanged(prev.Role, cur.Role) {
		clauses = append(clauses, "role updated")
	}
	return strings.Join(clauses, "; ")
}

func (r *Reconciler) relationshipEvents(rels map[string]RelationshipState, parts map[string]PartState) []Event {
	ids := make([]string, 0, len(rels))
	for id := range rels {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	events := make([]Event, 0, len(rels))
	for _, id := range ids {
		rel := rels[id]
		ts := r.cache.Resolve("relationship:"+id, rel.CreatedAt, r.clock)
		events = append(events, Event{
			Type:         EventRelationship,
			ID:           "relationship:" + id,
			Title:        fmt.Sprintf("%s %s %s", partName(parts, rel.SourceID), rel.RelationshipType, partName(parts, rel.TargetID)),
			Timestamp:    ts,
			AssociatedID: id,
			SortKey:      ts.UnixMilli(),
		})
	}
	return events
}

// partName resolves a display name, falling back rather than failing when
// the referenced part is missing from the snapshot.
func partName(parts map[string]PartState, id string) string {
	if p, ok := parts[id]; ok && p.Name != "" {
		return p.Name
	}
	return "Unknown"
}

func (r *Reconciler) sessionEvents(sessions []SessionState) []Event {
	events := make([]Event, 0, len(sessions))
	for _, s := range sessions {
		ts := r.cache.Resolve("guided_session:"+s.ID, s.UpdatedAt, r.clock)
		title := s.Topic
		if strings.TrimSpace(title) == "" {
			title = s.Title
		}
		if strings.TrimSpace(title) == "" {
			title = "Guided session"
		}
		events = append(events, Event{
			Type:         EventGuidedSession,
			ID:           "guided_session:" + s.ID,
			Title:        title,
			Timestamp:    ts,
			AssociatedID: s.ID,
			SortKey:      ts.UnixMilli(),
		})
	}
	return events
}
