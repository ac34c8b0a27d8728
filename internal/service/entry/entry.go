// internal/service/entry/entry.go
package entry

import (
	"context"
	"strings"
	"time"

	"journal-service/internal/domain/entry"
	"journal-service/internal/pkg/apierror"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Repository is the persistence surface the entry service needs.
type Repository interface {
	Create(ctx context.Context, e *entry.Entry) error
	FindByID(ctx context.Context, userID, id string) (*entry.Entry, error)
	List(ctx context.Context, userID string, filter entry.ListFilter) ([]*entry.Entry, error)
	Calendar(ctx context.Context, userID string, year, month int) ([]*entry.CalendarDay, error)
	OnThisDay(ctx context.Context, userID string, month, day int) ([]*entry.Entry, error)
	Update(ctx context.Context, userID, id string, req *entry.UpdateRequest, wordCount, charCount *int) error
	SoftDelete(ctx context.Context, userID, id string) error
	SetFavorite(ctx context.Context, userID, id string, favorite bool) error
}

type EntryService struct {
	repo   Repository
	logger *zap.Logger
}

func NewEntryService(repo Repository, logger *zap.Logger) *EntryService {
	return &EntryService{repo: repo, logger: logger}
}

// CreateEntry validates and stores a new journal entry. Word and character
// counts are computed here, never trusted from the client.
func (s *EntryService) CreateEntry(ctx context.Context, userID string, req *entry.CreateRequest) (*entry.Entry, error) {
	if err := validateMood(req.Mood); err != nil {
		return nil, err
	}

	entryDate := req.EntryDate
	if entryDate == "" {
		entryDate = time.Now().Format("2006-01-02")
	}
	entryTime := req.EntryTime
	if entryTime == "" {
		entryTime = "00:00:00"
	}

	e := &entry.Entry{
		UserID:         userID,
		Title:          req.Title,
		Content:        req.Content,
		Mood:           req.Mood,
		MoodIntensity:  req.MoodIntensity,
		EntryDate:      entryDate,
		EntryTime:      entryTime,
		WordCount:      WordCount(req.Content),
		CharacterCount: len(req.Content),
		IsDraft:        req.IsDraft,
		IsFavorite:     req.IsFavorite,
		Weather:        req.Weather,
		Location:       req.Location,
		TemplateID:     req.TemplateID,
		Tags:           pq.StringArray(req.Tags),
	}

	if err := s.repo.Create(ctx, e); err != nil {
		s.logger.Error("failed to create entry", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return e, nil
}

// GetEntry returns an entry owned by the user.
func (s *EntryService) GetEntry(ctx context.Context, userID, id string) (*entry.Entry, error) {
	return s.repo.FindByID(ctx, userID, id)
}

// ListEntries returns a filtered page of entries.
func (s *EntryService) ListEntries(ctx context.Context, userID string, filter entry.ListFilter) ([]*entry.Entry, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.repo.List(ctx, userID, filter)
}

// Calendar returns the entry markers for a month.
func (s *EntryService) Calendar(ctx context.Context, userID string, year, month int) ([]*entry.CalendarDay, error) {
	if month < 1 || month > 12 {
		return nil, apierror.Validation("Invalid month", "month", "range")
	}
	return s.repo.Calendar(ctx, userID, year, month)
}

// OnThisDay returns entries from past years that share the month/day.
func (s *EntryService) OnThisDay(ctx context.Context, userID string, month, day int) ([]*entry.Entry, error) {
	if month < 1 || month > 12 {
		return nil, apierror.Validation("Invalid month", "month", "range")
	}
	if day < 1 || day > 31 {
		return nil, apierror.Validation("Invalid day", "day", "range")
	}
	return s.repo.OnThisDay(ctx, userID, month, day)
}

// UpdateEntry applies a partial update and returns the updated entry.
func (s *EntryService) UpdateEntry(ctx context.Context, userID, id string, req *entry.UpdateRequest) (*entry.Entry, error) {
	if err := validateMood(req.Mood); err != nil {
		return nil, err
	}

	var wordCount, charCount *int
	if req.Content != nil {
		wc := WordCount(*req.Content)
		cc := len(*req.Content)
		wordCount, charCount = &wc, &cc
	}

	if err := s.repo.Update(ctx, userID, id, req, wordCount, charCount); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, userID, id)
}

// DeleteEntry soft-deletes an entry.
func (s *EntryService) DeleteEntry(ctx context.Context, userID, id string) error {
	return s.repo.SoftDelete(ctx, userID, id)
}

// SetFavorite flags or unflags an entry and returns it.
func (s *EntryService) SetFavorite(ctx context.Context, userID, id string, favorite bool) (*entry.Entry, error) {
	if err := s.repo.SetFavorite(ctx, userID, id, favorite); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, userID, id)
}

// WordCount counts whitespace-separated words.
func WordCount(content string) int {
	return len(strings.Fields(content))
}

func validateMood(mood *string) error {
	if mood != nil && !entry.Moods[*mood] {
		return apierror.Validation("Invalid mood", "mood", "enum")
	}
	return nil
}
