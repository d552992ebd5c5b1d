package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/inneratlas/inneratlas-backend/internal/activity"
	"github.com/inneratlas/inneratlas-backend/internal/logger"
	"github.com/inneratlas/inneratlas-backend/internal/repos"
	"github.com/inneratlas/inneratlas-backend/internal/requestdata"
	"github.com/inneratlas/inneratlas-backend/internal/types"
)

// Snapshot is the full working set of one system, loaded in a single
// fan-out so the activity feed and the map renderer see a consistent
// view.
type Snapshot struct {
	System        *types.System
	Parts         []*types.Part
	Relationships []*types.Relationship
	Journals      []*types.JournalEntry
	Sessions      []*types.GuidedSession
}

type SystemService interface {
	GetSystemForCurrentUser(ctx context.Context) (*types.System, error)
	GetSystem(ctx context.Context, systemID uuid.UUID) (*types.System, error)
	LoadSnapshot(ctx context.Context, systemID uuid.UUID) (*Snapshot, error)
}

type systemService struct {
	db               *gorm.DB
	log              *logger.Logger
	systemRepo       repos.SystemRepo
	partRepo         repos.PartRepo
	relationshipRepo repos.RelationshipRepo
	journalRepo      repos.JournalRepo
	sessionRepo      repos.SessionRepo
}

func NewSystemService(
	db *gorm.DB,
	log *logger.Logger,
	systemRepo repos.SystemRepo,
	partRepo repos.PartRepo,
	relationshipRepo repos.RelationshipRepo,
	journalRepo repos.JournalRepo,
	sessionRepo repos.SessionRepo,
) SystemService {
	return &systemService{
		db:               db,
		log:              log.With("service", "SystemService"),
		systemRepo:       systemRepo,
		partRepo:         partRepo,
		relationshipRepo: relationshipRepo,
		journalRepo:      journalRepo,
		sessionRepo:      sessionRepo,
	}
}

func (ss *systemService) GetSystemForCurrentUser(ctx context.Context) (*types.System, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: no authenticated user in context", ErrForbidden)
	}
	systems, err := ss.systemRepo.GetByUserIDs(ctx, nil, []uuid.UUID{rd.UserID})
	if err != nil {
		return nil, fmt.Errorf("failed to load system: %w", err)
	}
	if len(systems) > 0 {
		return systems[0], nil
	}
	// Accounts created before systems became mandatory get one lazily.
	system := &types.System{ID: uuid.New(), UserID: rd.UserID}
	if _, cErr := ss.systemRepo.Create(ctx, nil, []*types.System{system}); cErr != nil {
		return nil, fmt.Errorf("failed to create system: %w", cErr)
	}
	return system, nil
}

func (ss *systemService) GetSystem(ctx context.Context, systemID uuid.UUID) (*types.System, error) {
	systems, err := ss.systemRepo.GetByIDs(ctx, nil, []uuid.UUID{systemID})
	if err != nil {
		return nil, fmt.Errorf("failed to load system: %w", err)
	}
	if len(systems) == 0 {
		return nil, ErrNotFound
	}
	return systems[0], nil
}

func (ss *systemService) LoadSnapshot(ctx context.Context, systemID uuid.UUID) (*Snapshot, error) {
	system, err := ss.GetSystem(ctx, systemID)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{System: system}
	ids := []uuid.UUID{systemID}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		parts, pErr := ss.partRepo.GetBySystemIDs(gctx, nil, ids)
		if pErr != nil {
			return fmt.Errorf("failed to load parts: %w", pErr)
		}
		snap.Parts = parts
		return nil
	})
	g.Go(func() error {
		rels, rErr := ss.relationshipRepo.GetBySystemIDs(gctx, nil, ids)
		if rErr != nil {
			return fmt.Errorf("failed to load relationships: %w", rErr)
		}
		snap.Relationships = rels
		return nil
	})
	g.Go(func() error {
		journals, jErr := ss.journalRepo.GetBySystemIDs(gctx, nil, ids)
		if jErr != nil {
			return fmt.Errorf("failed to load journals: %w", jErr)
		}
		snap.Journals = journals
		return nil
	})
	g.Go(func() error {
		sessions, sErr := ss.sessionRepo.GetBySystemIDs(gctx, nil, ids)
		if sErr != nil {
			return fmt.Errorf("failed to load sessions: %w", sErr)
		}
		snap.Sessions = sessions
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// ActivityStates converts a snapshot into the reconciler's input shape.
// Timestamps are serialized to strings here; the reconciler owns all
// parsing and correction.
func (s *Snapshot) ActivityStates() (map[string]activity.PartState, map[string]activity.RelationshipState, []activity.JournalState, []activity.SessionState) {
	parts := make(map[string]activity.PartState, len(s.Parts))
	for _, p := range s.Parts {
		parts[p.ID.String()] = activity.PartState{
			ID:          p.ID.String(),
			Name:        p.Name,
			Role:        p.Role,
			Description: p.Description,
			Feelings:    types.DecodeStringList(p.Feelings),
			Beliefs:     types.DecodeStringList(p.Beliefs),
			Triggers:    types.DecodeStringList(p.Triggers),
			Needs:       types.DecodeStringList(p.Needs),
			CreatedAt:   p.CreatedAt.Format(time.RFC3339),
			UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
		}
	}

	rels := make(map[string]activity.RelationshipState, len(s.Relationships))
	for _, r := range s.Relationships {
		rels[r.ID.String()] = activity.RelationshipState{
			ID:               r.ID.String(),
			SourceID:         r.SourceID.String(),
			TargetID:         r.TargetID.String(),
			RelationshipType: r.RelationshipType,
			CreatedAt:        r.CreatedAt.Format(time.RFC3339),
		}
	}

	journals := make([]activity.JournalState, 0, len(s.Journals))
	for _, j := range s.Journals {
		journals = append(journals, activity.JournalState{
			ID:        j.ID.String(),
			Title:     j.Title,
			CreatedAt: j.CreatedAt.Format(time.RFC3339),
			Date:      j.Date.Format(time.RFC3339),
		})
	}

	sessions := make([]activity.SessionState, 0, len(s.Sessions))
	for _, gs := range s.Sessions {
		sessions = append(sessions, activity.SessionState{
			ID:        gs.ID.String(),
			Title:     gs.Title,
			Topic:     gs.Topic,
			UpdatedAt: gs.UpdatedAt.Format(time.RFC3339),
		})
	}

	return parts, rels, journals, sessions
}
