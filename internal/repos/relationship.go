package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inneratlas/inneratlas-backend/internal/logger"
	"github.com/inneratlas/inneratlas-backend/internal/types"
)

type RelationshipRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rels []*types.Relationship) ([]*types.Relationship, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, relIDs []uuid.UUID) ([]*types.Relationship, error)
	GetBySystemIDs(ctx context.Context, tx *gorm.DB, systemIDs []uuid.UUID) ([]*types.Relationship, error)
	GetByOrderedPair(ctx context.Context, tx *gorm.DB, systemID, sourceID, targetID uuid.UUID) ([]*types.Relationship, error)
	Update(ctx context.Context, tx *gorm.DB, rel *types.Relationship) (*types.Relationship, error)
	Delete(ctx context.Context, tx *gorm.DB, relIDs []uuid.UUID) error
	DeleteByPartIDs(ctx context.Context, tx *gorm.DB, partIDs []uuid.UUID) error
}

type relationshipRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRelationshipRepo(db *gorm.DB, baseLog *logger.Logger) RelationshipRepo {
	return &relationshipRepo{db: db, log: baseLog.With("repo", "RelationshipRepo")}
}

func (rr *relationshipRepo) Create(ctx context.Context, tx *gorm.DB, rels []*types.Relationship) ([]*types.Relationship, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	if len(rels) == 0 {
		return []*types.Relationship{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&rels).Error; err != nil {
		return nil, err
	}
	return rels, nil
}

func (rr *relationshipRepo) GetByIDs(ctx context.Context, tx *gorm.DB, relIDs []uuid.UUID) ([]*types.Relationship, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*types.Relationship
	if len(relIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", relIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *relationshipRepo) GetBySystemIDs(ctx context.Context, tx *gorm.DB, systemIDs []uuid.UUID) ([]*types.Relationship, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*types.Relationship
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

func (rr *relationshipRepo) GetByOrderedPair(ctx context.Context, tx *gorm.DB, systemID, sourceID, targetID uuid.UUID) ([]*types.Relationship, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*types.Relationship
	if err := transaction.WithContext(ctx).
		Where("system_id = ? AND source_id = ? AND target_id = ?", systemID, sourceID, targetID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *relationshipRepo) Update(ctx context.Context, tx *gorm.DB, rel *types.Relationship) (*types.Relationship, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	if err := transaction.WithContext(ctx).Save(rel).Error; err != nil {
		return nil, err
	}
	return rel, nil
}

func (rr *relationshipRepo) Delete(ctx context.Context, tx *gorm.DB, relIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	if len(relIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", relIDs).
		Delete(&types.Relationship{}).Error
}

func (rr *relationshipRepo) DeleteByPartIDs(ctx context.Context, tx *gorm.DB, partIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	if len(partIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("source_id IN ? OR target_id IN ?", partIDs, partIDs).
		Delete(&types.Relationship{}).Error
}
