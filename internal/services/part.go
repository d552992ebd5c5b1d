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

type PartInput struct {
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	Feelings    []string `json:"feelings"`
	Beliefs     []string `json:"beliefs"`
	Triggers    []string `json:"triggers"`
	Needs       []string `json:"needs"`
}

type PartService interface {
	CreatePart(ctx context.Context, systemID uuid.UUID, in PartInput) (*types.Part, error)
	GetPart(ctx context.Context, systemID, partID uuid.UUID) (*types.Part, error)
	ListParts(ctx context.Context, systemID uuid.UUID) ([]*types.Part, error)
	UpdatePart(ctx context.Context, systemID, partID uuid.UUID, in PartInput) (*types.Part, error)
	DeletePart(ctx context.Context, systemID, partID uuid.UUID) error
}

type partService struct {
	db               *gorm.DB
	log              *logger.Logger
	tuning           config.Tuning
	partRepo         repos.PartRepo
	relationshipRepo repos.RelationshipRepo
	journalRepo      repos.JournalRepo
	mirror           GraphMirrorService
}

func NewPartService(
	db *gorm.DB,
	log *logger.Logger,
	tuning config.Tuning,
	partRepo repos.PartRepo,
	relationshipRepo repos.RelationshipRepo,
	journalRepo repos.JournalRepo,
	mirror GraphMirrorService,
) PartService {
	return &partService{
		db:               db,
		log:              log.With("service", "PartService"),
		tuning:           tuning,
		partRepo:         partRepo,
		relationshipRepo: relationshipRepo,
		journalRepo:      journalRepo,
		mirror:           mirror,
	}
}

func (ps *partService) validate(in *PartInput) error {
	in.Name = normalization.CleanText(in.Name)
	in.Role = normalization.ParseInputString(in.Role)
	in.Description = normalization.CleanText(in.Description)
	in.Feelings = normalization.CleanList(in.Feelings)
	in.Beliefs = normalization.CleanList(in.Beliefs)
	in.Triggers = normalization.CleanList(in.Triggers)
	in.Needs = normalization.CleanList(in.Needs)

	if in.Name == "" {
		return fmt.Errorf("%w: part name required", ErrInvalidInput)
	}
	if in.Role != "" && !ps.tuning.HasRole(in.Role) {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, in.Role)
	}
	return nil
}

func (ps *partService) CreatePart(ctx context.Context, systemID uuid.UUID, in PartInput) (*types.Part, error) {
	if err := ps.validate(&in); err != nil {
		return nil, err
	}
	part := &types.Part{
		ID:          uuid.New(),
		SystemID:    systemID,
		Name:        in.Name,
		Role:        in.Role,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Feelings:    types.EncodeStringList(in.Feelings),
		Beliefs:     types.EncodeStringList(in.Beliefs),
		Triggers:    types.EncodeStringList(in.Triggers),
		Needs:       types.EncodeStringList(in.Needs),
	}
	if _, err := ps.partRepo.Create(ctx, nil, []*types.Part{part}); err != nil {
		return nil, fmt.Errorf("failed to create part: %w", err)
	}
	ps.mirror.UpsertPart(ctx, part)
	return part, nil
}

func (ps *partService) GetPart(ctx context.Context, systemID, partID uuid.UUID) (*types.Part, error) {
	parts, err := ps.partRepo.GetByIDs(ctx, nil, []uuid.UUID{partID})
	if err != nil {
		return nil, fmt.Errorf("failed to load part: %w", err)
	}
	if len(parts) == 0 || parts[0].SystemID != systemID {
		return nil, ErrPartNotFound
	}
	return parts[0], nil
}

func (ps *partService) ListParts(ctx context.Context, systemID uuid.UUID) ([]*types.Part, error) {
	parts, err := ps.partRepo.GetBySystemIDs(ctx, nil, []uuid.UUID{systemID})
	if err != nil {
		return nil, fmt.Errorf("failed to list parts: %w", err)
	}
	return parts, nil
}

func (ps *partService) UpdatePart(ctx context.Context, systemID, partID uuid.UUID, in PartInput) (*types.Part, error) {
	part, err := ps.GetPart(ctx, systemID, partID)
	if err != nil {
		return nil, err
	}
	if err := ps.validate(&in); err != nil {
		return nil, err
	}
	part.Name = in.Name
	part.Role = in.Role
	part.Description = in.Description
	part.ImageURL = in.ImageURL
	part.Feelings = types.EncodeStringList(in.Feelings)
	part.Beliefs = types.EncodeStringList(in.Beliefs)
	part.Triggers = types.EncodeStringList(in.Triggers)
	part.Needs = types.EncodeStringList(in.Needs)

	updated, uErr := ps.partRepo.Update(ctx, nil, part)
	if uErr != nil {
		return nil, fmt.Errorf("failed to update part: %w", uErr)
	}
	ps.mirror.UpsertPart(ctx, updated)
	return updated, nil
}

// DeletePart removes the part along with its relationships, and detaches
// it from journal entries rather than deleting them.
func (ps *partService) DeletePart(ctx context.Context, systemID, partID uuid.UUID) error {
	if _, err := ps.GetPart(ctx, systemID, partID); err != nil {
		return err
	}
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := []uuid.UUID{partID}
		if rErr := ps.relationshipRepo.DeleteByPartIDs(ctx, tx, ids); rErr != nil {
			return fmt.Errorf("failed to delete part relationships: %w", rErr)
		}
		if jErr := ps.journalRepo.DetachPart(ctx, tx, ids); jErr != nil {
			return fmt.Errorf("failed to detach part from journals: %w", jErr)
		}
		if pErr := ps.partRepo.Delete(ctx, tx, ids); pErr != nil {
			return fmt.Errorf("failed to delete part: %w", pErr)
		}
		return nil
	})
	if err != nil {
		return err
	}
	ps.mirror.RemovePart(ctx, partID)
	return nil
}
