package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inneratlas/inneratlas-backend/internal/config"
	"github.com/inneratlas/inneratlas-backend/internal/logger"
	"github.com/inneratlas/inneratlas-backend/internal/normalization"
	"github.com/inneratlas/inneratlas-backend/internal/repos"
	"github.com/inneratlas/inneratlas-backend/internal/types"
)

type RelationshipInput struct {
	SourceID         uuid.UUID `json:"source_id"`
	TargetID         uuid.UUID `json:"target_id"`
	RelationshipType string    `json:"relationship_type"`
	Description      string    `json:"description"`
}

type RelationshipService interface {
	CreateRelationship(ctx context.Context, systemID uuid.UUID, in RelationshipInput) (*types.Relationship, error)
	GetRelationship(ctx context.Context, systemID, relID uuid.UUID) (*types.Relationship, error)
	ListRelationships(ctx context.Context, systemID uuid.UUID) ([]*types.Relationship, error)
	UpdateRelationship(ctx context.Context, systemID, relID uuid.UUID, relationshipType, description string) (*types.Relationship, error)
	DeleteRelationship(ctx context.Context, systemID, relID uuid.UUID) error
}

type relationshipService struct {
	db               *gorm.DB
	log              *logger.Logger
	tuning           config.Tuning
	partRepo         repos.PartRepo
	relationshipRepo repos.RelationshipRepo
	mirror           GraphMirrorService
}

func NewRelationshipService(
	db *gorm.DB,
	log *logger.Logger,
	tuning config.Tuning,
	partRepo repos.PartRepo,
	relationshipRepo repos.RelationshipRepo,
	mirror GraphMirrorService,
) RelationshipService {
	return &relationshipService{
		db:               db,
		log:              log.With("service", "RelationshipService"),
		tuning:           tuning,
		partRepo:         partRepo,
		relationshipRepo: relationshipRepo,
		mirror:           mirror,
	}
}

func (rs *relationshipService) validateType(relationshipType string) (string, error) {
	rt := normalization.ParseInputString(relationshipType)
	if rt == "" {
		return "", fmt.Errorf("%w: relationship type required", ErrInvalidInput)
	}
	if !rs.tuning.HasRelationshipType(rt) {
		return "", fmt.Errorf("%w: unknown relationship type %q", ErrInvalidInput, rt)
	}
	return rt, nil
}

// CreateRelationship enforces that both endpoints exist in the system
// and that the ordered pair is unique. The same two parts may hold
// relationships in both directions.
func (rs *relationshipService) CreateRelationship(ctx context.Context, systemID uuid.UUID, in RelationshipInput) (*types.Relationship, error) {
	rt, err := rs.validateType(in.RelationshipType)
	if err != nil {
		return nil, err
	}
	if in.SourceID == in.TargetID {
		return nil, fmt.Errorf("%w: a part cannot relate to itself", ErrInvalidInput)
	}

	parts, pErr := rs.partRepo.GetByIDs(ctx, nil, []uuid.UUID{in.SourceID, in.TargetID})
	if pErr != nil {
		return nil, fmt.Errorf("failed to load endpoint parts: %w", pErr)
	}
	found := map[uuid.UUID]bool{}
	for _, p := range parts {
		if p.SystemID == systemID {
			found[p.ID] = true
		}
	}
	if !found[in.SourceID] || !found[in.TargetID] {
		return nil, ErrPartNotFound
	}

	existing, eErr := rs.relationshipRepo.GetByOrderedPair(ctx, nil, systemID, in.SourceID, in.TargetID)
	if eErr != nil {
		return nil, fmt.Errorf("failed to check existing relationships: %w", eErr)
	}
	if len(existing) > 0 {
		return nil, ErrDuplicateRelationship
	}

	rel := &types.Relationship{
		ID:               uuid.New(),
		SystemID:         systemID,
		SourceID:         in.SourceID,
		TargetID:         in.TargetID,
		RelationshipType: rt,
		Description:      normalization.CleanText(in.Description),
	}
	if _, cErr := rs.relationshipRepo.Create(ctx, nil, []*types.Relationship{rel}); cErr != nil {
		return nil, fmt.Errorf("failed to create relationship: %w", cErr)
	}
	rs.mirror.UpsertRelationship(ctx, rel)
	return rel, nil
}

func (rs *relationshipService) GetRelationship(ctx context.Context, systemID, relID uuid.UUID) (*types.Relationship, error) {
	return rs.getOwned(ctx, systemID, relID)
}

func (rs *relationshipService) ListRelationships(ctx context.Context, systemID uuid.UUID) ([]*types.Relationship, error) {
	rels, err := rs.relationshipRepo.GetBySystemIDs(ctx, nil, []uuid.UUID{systemID})
	if err != nil {
		return nil, fmt.Errorf("failed to list relationships: %w", err)
	}
	return rels, nil
}

func (rs *relationshipService) getOwned(ctx context.Context, systemID, relID uuid.UUID) (*types.Relationship, error) {
	rels, err := rs.relationshipRepo.GetByIDs(ctx, nil, []uuid.UUID{relID})
	if err != nil {
		return nil, fmt.Errorf("failed to load relationship: %w", err)
	}
	if len(rels) == 0 || rels[0].SystemID != systemID {
		return nil, ErrNotFound
	}
	return rels[0], nil
}

func (rs *relationshipService) UpdateRelationship(ctx context.Context, systemID, relID uuid.UUID, relationshipType, description string) (*types.Relationship, error) {
	rel, err := rs.getOwned(ctx, systemID, relID)
	if err != nil {
		return nil, err
	}
	rt, vErr := rs.validateType(relationshipType)
	if vErr != nil {
		return nil, vErr
	}
	rel.RelationshipType = rt
	rel.Description = normalization.CleanText(description)

	updated, uErr := rs.relationshipRepo.Update(ctx, nil, rel)
	if uErr != nil {
		return nil, fmt.Errorf("failed to update relationship: %w", uErr)
	}
	rs.mirror.UpsertRelationship(ctx, updated)
	return updated, nil
}

func (rs *relationshipService) DeleteRelationship(ctx context.Context, systemID, relID uuid.UUID) error {
	if _, err := rs.getOwned(ctx, systemID, relID); err != nil {
		return err
	}
	if err := rs.relationshipRepo.Delete(ctx, nil, []uuid.UUID{relID}); err != nil {
		return fmt.Errorf("failed to delete relationship: %w", err)
	}
	rs.mirror.RemoveRelationship(ctx, relID)
	return nil
}
