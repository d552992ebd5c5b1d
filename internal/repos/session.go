package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inneratlas/inneratlas-backend/internal/logger"
	"github.com/inneratlas/inneratlas-backend/internal/types"
)

type SessionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, sessions []*types.GuidedSession) ([]*types.GuidedSession, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, sessionIDs []uuid.UUID) ([]*types.GuidedSession, error)
	GetBySystemIDs(ctx context.Context, tx *gorm.DB, systemIDs []uuid.UUID) ([]*types.GuidedSession, error)
	Update(ctx context.Context, tx *gorm.DB, session *types.GuidedSession) (*types.GuidedSession, error)
	Delete(ctx context.Context, tx *gorm.DB, sessionIDs []uuid.UUID) error
	CreateMessages(ctx context.Context, tx *gorm.DB, messages []*types.SessionMessage) ([]*types.SessionMessage, error)
	GetMessagesBySessionIDs(ctx context.Context, tx *gorm.DB, sessionIDs []uuid.UUID) ([]*types.SessionMessage, error)
	DeleteMessagesBySessionIDs(ctx context.Context, tx *gorm.DB, sessionIDs []uuid.UUID) error
}

type sessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	return &sessionRepo{db: db, log: baseLog.With("repo", "SessionRepo")}
}

func (sr *sessionRepo) Create(ctx context.Context, tx *gorm.DB, sessions []*types.GuidedSession) ([]*types.GuidedSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(sessions) == 0 {
		return []*types.GuidedSession{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (sr *sessionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, sessionIDs []uuid.UUID) ([]*types.GuidedSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.GuidedSession
	if len(sessionIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", sessionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *sessionRepo) GetBySystemIDs(ctx context.Context, tx *gorm.DB, systemIDs []uuid.UUID) ([]*types.GuidedSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.GuidedSession
	if len(systemIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("system_id IN ?", systemIDs).
		Order("updated_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *sessionRepo) Update(ctx context.Context, tx *gorm.DB, session *types.GuidedSession) (*types.GuidedSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if err := transaction.WithContext(ctx).Save(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

func (sr *sessionRepo) Delete(ctx context.Context, tx *gorm.DB, sessionIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(sessionIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", sessionIDs).
		Delete(&types.GuidedSession{}).Error
}

func (sr *sessionRepo) CreateMessages(ctx context.Context, tx *gorm.DB, messages []*types.SessionMessage) ([]*types.SessionMessage, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(messages) == 0 {
		return []*types.SessionMessage{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (sr *sessionRepo) GetMessagesBySessionIDs(ctx context.Context, tx *gorm.DB, sessionIDs []uuid.UUID) ([]*types.SessionMessage, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.SessionMessage
	if len(sessionIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("session_id IN ?", sessionIDs).
		Order("timestamp ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *sessionRepo) DeleteMessagesBySessionIDs(ctx context.Context, tx *gorm.DB, sessionIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(sessionIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("session_id IN ?", sessionIDs).
		Delete(&types.SessionMessage{}).Error
}
