package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inneratlas/inneratlas-backend/internal/clients/redis"
	"github.com/inneratlas/inneratlas-backend/internal/logger"
	"github.com/inneratlas/inneratlas-backend/internal/normalization"
	"github.com/inneratlas/inneratlas-backend/internal/repos"
	"github.com/inneratlas/inneratlas-backend/internal/sse"
	"github.com/inneratlas/inneratlas-backend/internal/types"
)

type SessionInput struct {
	Title              string     `json:"title"`
	Topic              string     `json:"topic"`
	CurrentFocusPartID *uuid.UUID `json:"current_focus_part_id"`
}

type SessionService interface {
	CreateSession(ctx context.Context, userID, systemID uuid.UUID, in SessionInput) (*types.GuidedSession, error)
	GetSession(ctx context.Context, systemID, sessionID uuid.UUID) (*types.GuidedSession, error)
	ListSessions(ctx context.Context, systemID uuid.UUID) ([]*types.GuidedSession, error)
	UpdateSession(ctx context.Context, systemID, sessionID uuid.UUID, in SessionInput) (*types.GuidedSession, error)
	DeleteSession(ctx context.Context, systemID, sessionID uuid.UUID) error
	ArchiveSession(ctx context.Context, systemID, sessionID uuid.UUID) (*types.GuidedSession, error)
	ListMessages(ctx context.Context, systemID, sessionID uuid.UUID) ([]*types.SessionMessage, error)
	SendMessage(ctx context.Context, userID, systemID, sessionID uuid.UUID, content string) ([]*types.SessionMessage, error)
}

type sessionService struct {
	db          *gorm.DB
	log         *logger.Logger
	sessionRepo repos.SessionRepo
	partRepo    repos.PartRepo
	prompter    GuidePrompter
	quota       redis.QuotaClient
	hub         *sse.SSEHub
}

func NewSessionService(
	db *gorm.DB,
	log *logger.Logger,
	sessionRepo repos.SessionRepo,
	partRepo repos.PartRepo,
	prompter GuidePrompter,
	quota redis.QuotaClient,
	hub *sse.SSEHub,
) SessionService {
	return &sessionService{
		db:          db,
		log:         log.With("service", "SessionService"),
		sessionRepo: sessionRepo,
		partRepo:    partRepo,
		prompter:    prompter,
		quota:       quota,
		hub:         hub,
	}
}

func (ss *sessionService) CreateSession(ctx context.Context, userID, systemID uuid.UUID, in SessionInput) (*types.GuidedSession, error) {
	session := &types.GuidedSession{
		ID:                 uuid.New(),
		UserID:             userID,
		SystemID:           systemID,
		Title:              normalization.CleanText(in.Title),
		Topic:              normalization.CleanText(in.Topic),
		Status:             types.SessionStatusActive,
		CurrentFocusPartID: in.CurrentFocusPartID,
	}
	if session.Title == "" {
		session.Title = "Guided session"
	}
	if _, err := ss.sessionRepo.Create(ctx, nil, []*types.GuidedSession{session}); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	// The guide always opens.
	opening := &types.SessionMessage{
		ID:        uuid.New(),
		SessionID: session.ID,
		Role:      types.MessageRoleGuide,
		Content:   ss.prompter.NextPrompt(session, nil, nil),
		Timestamp: time.Now(),
	}
	if _, err := ss.sessionRepo.CreateMessages(ctx, nil, []*types.SessionMessage{opening}); err != nil {
		ss.log.Warn("failed to store opening prompt", "sessionID", session.ID, "error", err)
	}
	return session, nil
}

func (ss *sessionService) GetSession(ctx context.Context, systemID, sessionID uuid.UUID) (*types.GuidedSession, error) {
	sessions, err := ss.sessionRepo.GetByIDs(ctx, nil, []uuid.UUID{sessionID})
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if len(sessions) == 0 || sessions[0].SystemID != systemID {
		return nil, ErrNotFound
	}
	return sessions[0], nil
}

func (ss *sessionService) ListSessions(ctx context.Context, systemID uuid.UUID) ([]*types.GuidedSession, error) {
	sessions, err := ss.sessionRepo.GetBySystemIDs(ctx, nil, []uuid.UUID{systemID})
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

func (ss *sessionService) UpdateSession(ctx context.Context, systemID, sessionID uuid.UUID, in SessionInput) (*types.GuidedSession, error) {
	session, err := ss.GetSession(ctx, systemID, sessionID)
	if err != nil {
		return nil, err
	}
	if title := normalization.CleanText(in.Title); title != "" {
		session.Title = title
	}
	session.Topic = normalization.CleanText(in.Topic)

	if in.CurrentFocusPartID != nil {
		parts, pErr := ss.partRepo.GetByIDs(ctx, nil, []uuid.UUID{*in.CurrentFocusPartID})
		if pErr != nil {
			return nil, fmt.Errorf("failed to load focus part: %w", pErr)
		}
		if len(parts) == 0 || parts[0].SystemID != systemID {
			return nil, ErrPartNotFound
		}
	}
	session.CurrentFocusPartID = in.CurrentFocusPartID

	updated, uErr := ss.sessionRepo.Update(ctx, nil, session)
	if uErr != nil {
		return nil, fmt.Errorf("failed to update session: %w", uErr)
	}
	return updated, nil
}

func (ss *sessionService) DeleteSession(ctx context.Context, systemID, sessionID uuid.UUID) error {
	if _, err := ss.GetSession(ctx, systemID, sessionID); err != nil {
		return err
	}
	return ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ss.sessionRepo.DeleteMessagesBySessionIDs(ctx, tx, []uuid.UUID{sessionID}); err != nil {
			return fmt.Errorf("failed to delete session messages: %w", err)
		}
		if err := ss.sessionRepo.Delete(ctx, tx, []uuid.UUID{sessionID}); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
		return nil
	})
}

func (ss *sessionService) ArchiveSession(ctx context.Context, systemID, sessionID uuid.UUID) (*types.GuidedSession, error) {
	session, err := ss.GetSession(ctx, systemID, sessionID)
	if err != nil {
		return nil, err
	}
	session.Status = types.SessionStatusArchived
	updated, uErr := ss.sessionRepo.Update(ctx, nil, session)
	if uErr != nil {
		return nil, fmt.Errorf("failed to archive session: %w", uErr)
	}
	return updated, nil
}

func (ss *sessionService) ListMessages(ctx context.Context, systemID, sessionID uuid.UUID) ([]*types.SessionMessage, error) {
	if _, err := ss.GetSession(ctx, systemID, sessionID); err != nil {
		return nil, err
	}
	messages, err := ss.sessionRepo.GetMessagesBySessionIDs(ctx, nil, []uuid.UUID{sessionID})
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})
	return messages, nil
}

// SendMessage stores the user's message and the guide's reply as one
// exchange. The daily quota is charged per user message before anything
// is written.
func (ss *sessionService) SendMessage(ctx context.Context, userID, systemID, sessionID uuid.UUID, content string) ([]*types.SessionMessage, error) {
	content = normalization.CleanText(content)
	if content == "" {
		return nil, fmt.Errorf("%w: message content required", ErrInvalidInput)
	}
	session, err := ss.GetSession(ctx, systemID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != types.SessionStatusActive {
		return nil, fmt.Errorf("%w: session is archived", ErrInvalidInput)
	}

	if ss.quota != nil {
		count, qErr := ss.quota.IncrDailyMessages(ctx, userID.String())
		if qErr != nil {
			return nil, fmt.Errorf("failed to check message quota: %w", qErr)
		}
		if count > ss.quota.DailyLimit() {
			return nil, ErrQuotaExceeded
		}
	}

	transcript, mErr := ss.sessionRepo.GetMessagesBySessionIDs(ctx, nil, []uuid.UUID{sessionID})
	if mErr != nil {
		return nil, fmt.Errorf("failed to load transcript: %w", mErr)
	}
	parts, pErr := ss.partRepo.GetBySystemIDs(ctx, nil, []uuid.UUID{systemID})
	if pErr != nil {
		return nil, fmt.Errorf("failed to load parts: %w", pErr)
	}

	now := time.Now()
	userMsg := &types.SessionMessage{
		ID:        uuid.New(),
		SessionID: sessionID,
		Role:      types.MessageRoleUser,
		Content:   content,
		Timestamp: now,
	}
	transcript = append(transcript, userMsg)
	guideMsg := &types.SessionMessage{
		ID:        uuid.New(),
		SessionID: sessionID,
		Role:      types.MessageRoleGuide,
		Content:   ss.prompter.NextPrompt(session, transcript, parts),
		Timestamp: now.Add(time.Millisecond),
	}

	exchange := []*types.SessionMessage{userMsg, guideMsg}
	err = ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, cErr := ss.sessionRepo.CreateMessages(ctx, tx, exchange); cErr != nil {
			return fmt.Errorf("failed to store messages: %w", cErr)
		}
		if _, uErr := ss.sessionRepo.Update(ctx, tx, session); uErr != nil {
			return fmt.Errorf("failed to touch session: %w", uErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if ss.hub != nil {
		ss.hub.Broadcast(sse.SSEMessage{
			Channel: sse.SystemChannel(systemID),
			Event:   sse.SSEEventSessionMessage,
			Data:    guideMsg,
		})
	}
	return exchange, nil
}
