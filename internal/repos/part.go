package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inneratlas/inneratlas-backend/internal/logger"
	"github.com/inneratlas/inneratlas-backend/internal/types"
)

type PartRepo interface {
	Create(ctx context.Context, tx *gorm.DB, parts []*types.Part) ([]*types.Part, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, partIDs []uuid.UUID) ([]*types.Part, error)
	GetBySystemIDs(ctx context.Context, tx *gorm.DB, systemIDs []uuid.UUID) ([]*types.Part, error)
	Update(ctx context.Context, tx *gorm.DB, part *types.Part) (*types.Part, error)
	Delete(ctx context.Context, tx *gorm.DB, partIDs []uuid.UUID) error
}

type partRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPartRepo(db *gorm.DB, baseLog *logger.Logger) PartRepo {
	return &partRepo{db: db, log: baseLog.With("repo", "PartRepo")}
}

func (pr *partRepo) Create(ctx context.Context, tx *gorm.DB, parts []*types.Part) ([]*types.Part, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(parts) == 0 {
		return []*types.Part{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&parts).Error; err != nil {
		return nil, err
	}
	return parts, nil
}

func (pr *partRepo) GetByIDs(ctx context.Context, tx *gorm.DB, partIDs []uuid.UUID) ([]*types.Part, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Part
	if len(partIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", partIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *partRepo) GetBySystemIDs(ctx context.Context, tx *gorm.DB, systemIDs []uuid.UUID) ([]*types.Part, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Part
	if len(systemIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("system_id IN ?", systemIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *partRepo) Update(ctx context.Context, tx *gorm.DB, part *types.Part) (*types.Part, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if err := transaction.WithContext(ctx).Save(part).Error; err != nil {
		return nil, err
	}
	return part, nil
}

func (pr *partRepo) Delete(ctx context.Context, tx *gorm.DB, partIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(partIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", partIDs).
		Delete(&types.Part{}).Error
}
