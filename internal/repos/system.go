package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inneratlas/inneratlas-backend/internal/logger"
	"github.com/inneratlas/inneratlas-backend/internal/types"
)

type SystemRepo interface {
	Create(ctx context.Context, tx *gorm.DB, systems []*types.System) ([]*types.System, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, systemIDs []uuid.UUID) ([]*types.System, error)
	GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.System, error)
}

type systemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSystemRepo(db *gorm.DB, baseLog *logger.Logger) SystemRepo {
	return &systemRepo{db: db, log: baseLog.With("repo", "SystemRepo")}
}

func (sr *systemRepo) Create(ctx context.Context, tx *gorm.DB, systems []*types.System) ([]*types.System, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(systems) == 0 {
		return []*types.System{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&systems).Error; err != nil {
		return nil, err
	}
	return systems, nil
}

func (sr *systemRepo) GetByIDs(ctx context.Context, tx *gorm.DB, systemIDs []uuid.UUID) ([]*types.System, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.System
	if len(systemIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", systemIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *systemRepo) GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.System, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.System
	if len(userIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
