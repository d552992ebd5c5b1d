package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inneratlas/inneratlas-backend/internal/activity"
	"github.com/inneratlas/inneratlas-backend/internal/logger"
	"github.com/inneratlas/inneratlas-backend/internal/sse"
)

type ActivityService interface {
	Feed(ctx context.Context, systemID uuid.UUID) (activity.Result, error)
}

// systemActivityState holds what one system's previous pass observed.
// The stamp cache must outlive passes so corrected timestamps stay
// stable.
type systemActivityState struct {
	reconciler *activity.Reconciler
	previous   map[string]activity.PartState
	checkpoint time.Time
}

type activityService struct {
	log           *logger.Logger
	systemService SystemService
	hub           *sse.SSEHub
	clock         activity.Clock

	mu     sync.Mutex
	states map[uuid.UUID]*systemActivityState
}

func NewActivityService(log *logger.Logger, systemService SystemService, hub *sse.SSEHub, clock activity.Clock) ActivityService {
	if clock == nil {
		clock = activity.RealClock()
	}
	return &activityService{
		log:           log.With("service", "ActivityService"),
		systemService: systemService,
		hub:           hub,
		clock:         clock,
		states:        make(map[uuid.UUID]*systemActivityState),
	}
}

func (as *activityService) stateFor(systemID uuid.UUID) *systemActivityState {
	as.mu.Lock()
	defer as.mu.Unlock()
	st, ok := as.states[systemID]
	if !ok {
		st = &systemActivityState{
			reconciler: activity.NewReconciler(activity.NewStampCache(), as.clock, as.log),
		}
		as.states[systemID] = st
	}
	return st
}

// Feed loads the current snapshot, reconciles it against the previous
// pass, and advances the checkpoint.
func (as *activityService) Feed(ctx context.Context, systemID uuid.UUID) (activity.Result, error) {
	snap, err := as.systemService.LoadSnapshot(ctx, systemID)
	if err != nil {
		return activity.Result{}, err
	}
	parts, rels, journals, sessions := snap.ActivityStates()

	st := as.stateFor(systemID)
	as.mu.Lock()
	input := activity.Input{
		PreviousParts:  st.previous,
		CurrentParts:   parts,
		Relationships:  rels,
		Journals:       journals,
		Sessions:       sessions,
		LastCheckpoint: st.checkpoint,
	}
	as.mu.Unlock()

	result := st.reconciler.Reconcile(input)

	as.mu.Lock()
	st.previous = parts
	st.checkpoint = as.clock.Now()
	as.mu.Unlock()

	if result.Degraded {
		as.log.Warn("activity feed degraded", "systemID", systemID)
	}
	if as.hub != nil && len(result.Events) > 0 {
		as.hub.Broadcast(sse.SSEMessage{
			Channel: sse.SystemChannel(systemID),
			Event:   sse.SSEEventActivityUpdated,
			Data:    result,
		})
	}
	return result, nil
}
