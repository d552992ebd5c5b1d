package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/inneratlas/inneratlas-backend/internal/logger"
	"github.com/inneratlas/inneratlas-backend/internal/normalization"
	"github.com/inneratlas/inneratlas-backend/internal/repos"
	"github.com/inneratlas/inneratlas-backend/internal/types"
)

type JournalInput struct {
	Title    string         `json:"title"`
	Content  string         `json:"content"`
	PartID   *uuid.UUID     `json:"part_id"`
	Metadata datatypes.JSON `json:"metadata"`
	Date     *time.Time     `json:"date"`
}

type JournalService interface {
	CreateEntry(ctx context.Context, systemID uuid.UUID, in JournalInput) (*types.JournalEntry, error)
	GetEntry(ctx context.Context, systemID, entryID uuid.UUID) (*types.JournalEntry, error)
	ListEntries(ctx context.Context, systemID uuid.UUID) ([]*types.JournalEntry, error)
	UpdateEntry(ctx context.Context, systemID, entryID uuid.UUID, in JournalInput) (*types.JournalEntry, error)
	DeleteEntry(ctx context.Context, systemID, entryID uuid.UUID) error
}

type journalService struct {
	db          *gorm.DB
	log         *logger.Logger
	journalRepo repos.JournalRepo
	partRepo    repos.PartRepo
}

func NewJournalService(db *gorm.DB, log *logger.Logger, journalRepo repos.JournalRepo, partRepo repos.PartRepo) JournalService {
	return &journalService{
		db:          db,
		log:         log.With("service", "JournalService"),
		journalRepo: journalRepo,
		partRepo:    partRepo,
	}
}

func (js *journalService) validate(ctx context.Context, systemID uuid.UUID, in *JournalInput) error {
	in.Title = normalization.CleanText(in.Title)
	if in.Title == "" {
		return fmt.Errorf("%w: journal title required", ErrInvalidInput)
	}
	if in.PartID != nil {
		parts, err := js.partRepo.GetByIDs(ctx, nil, []uuid.UUID{*in.PartID})
		if err != nil {
			return fmt.Errorf("failed to load linked part: %w", err)
		}
		if len(parts) == 0 || parts[0].SystemID != systemID {
			return ErrPartNotFound
		}
	}
	return nil
}

func (js *journalService) CreateEntry(ctx context.Context, systemID uuid.UUID, in JournalInput) (*types.JournalEntry, error) {
	if err := js.validate(ctx, systemID, &in); err != nil {
		return nil, err
	}
	date := time.Now()
	if in.Date != nil {
		date = *in.Date
	}
	entry := &types.JournalEntry{
		ID:       uuid.New(),
		SystemID: systemID,
		PartID:   in.PartID,
		Title:    in.Title,
		Content:  in.Content,
		Metadata: in.Metadata,
		Date:     date,
	}
	if _, err := js.journalRepo.Create(ctx, nil, []*types.JournalEntry{entry}); err != nil {
		return nil, fmt.Errorf("failed to create journal entry: %w", err)
	}
	return entry, nil
}

func (js *journalService) GetEntry(ctx context.Context, systemID, entryID uuid.UUID) (*types.JournalEntry, error) {
	entries, err := js.journalRepo.GetByIDs(ctx, nil, []uuid.UUID{entryID})
	if err != nil {
		return nil, fmt.Errorf("failed to load journal entry: %w", err)
	}
	if len(entries) == 0 || entries[0].SystemID != systemID {
		return nil, ErrNotFound
	}
	return entries[0], nil
}

func (js *journalService) ListEntries(ctx context.Context, systemID uuid.UUID) ([]*types.JournalEntry, error) {
	entries, err := js.journalRepo.GetBySystemIDs(ctx, nil, []uuid.UUID{systemID})
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return entries, nil
}

func (js *journalService) UpdateEntry(ctx context.Context, systemID, entryID uuid.UUID, in JournalInput) (*types.JournalEntry, error) {
	entry, err := js.GetEntry(ctx, systemID, entryID)
	if err != nil {
		return nil, err
	}
	if vErr := js.validate(ctx, systemID, &in); vErr != nil {
		return nil, vErr
	}
	entry.Title = in.Title
	entry.Content = in.Content
	entry.PartID = in.PartID
	if in.Metadata != nil {
		entry.Metadata = in.Metadata
	}
	if in.Date != nil {
		entry.Date = *in.Date
	}
	updated, uErr := js.journalRepo.Update(ctx, nil, entry)
	if uErr != nil {
		return nil, fmt.Errorf("failed to update journal entry: %w", uErr)
	}
	return updated, nil
}

func (js *journalService) DeleteEntry(ctx context.Context, systemID, entryID uuid.UUID) error {
	if _, err := js.GetEntry(ctx, systemID, entryID); err != nil {
		return err
	}
	return js.journalRepo.Delete(ctx, nil, []uuid.UUID{entryID})
}
