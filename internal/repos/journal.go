package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inneratlas/inneratlas-backend/internal/logger"
	"github.com/inneratlas/inneratlas-backend/internal/types"
)

type JournalRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entries []*types.JournalEntry) ([]*types.JournalEntry, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, entryIDs []uuid.UUID) ([]*types.JournalEntry, error)
	GetBySystemIDs(ctx context.Context, tx *gorm.DB, systemIDs []uuid.UUID) ([]*types.JournalEntry, error)
	Update(ctx context.Context, tx *gorm.DB, entry *types.JournalEntry) (*types.JournalEntry, error)
	Delete(ctx context.Context, tx *gorm.DB, entryIDs []uuid.UUID) error
	DetachPart(ctx context.Context, tx *gorm.DB, partIDs []uuid.UUID) error
}

type journalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewJournalRepo(db *gorm.DB, baseLog *logger.Logger) JournalRepo {
	return &journalRepo{db: db, log: baseLog.With("repo", "JournalRepo")}
}

func (jr *journalRepo) Create(ctx context.Context, tx *gorm.DB, entries []*types.JournalEntry) ([]*types.JournalEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = jr.db
	}
	if len(entries) == 0 {
		return []*types.JournalEntry{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (jr *journalRepo) GetByIDs(ctx context.Context, tx *gorm.DB, entryIDs []uuid.UUID) ([]*types.JournalEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = jr.db
	}
	var results []*types.JournalEntry
	if len(entryIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", entryIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (jr *journalRepo) GetBySystemIDs(ctx context.Context, tx *gorm.DB, systemIDs []uuid.UUID) ([]*types.JournalEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = jr.db
	}
	var results []*types.JournalEntry
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

func (jr *journalRepo) Update(ctx context.Context, tx *gorm.DB, entry *types.JournalEntry) (*types.JournalEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = jr.db
	}
	if err := transaction.WithContext(ctx).Save(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (jr *journalRepo) Delete(ctx context.Context, tx *gorm.DB, entryIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = jr.db
	}
	if len(entryIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", entryIDs).
		Delete(&types.JournalEntry{}).Error
}

func (jr *journalRepo) DetachPart(ctx context.Context, tx *gorm.DB, partIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = jr.db
	}
	if len(partIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.JournalEntry{}).
		Where("part_id IN ?", partIDs).
		Update("part_id", nil).Error
}
