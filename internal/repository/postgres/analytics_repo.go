// internal/repository/postgres/analytics_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AnalyticsRepository struct {
	db *pgxpool.Pool
}

func NewAnalyticsRepository(db *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// MoodPoint is one mood observation on a date.
type MoodPoint struct {
	EntryDate string `json:"entry_date"`
	Mood      string `json:"mood"`
}

// MoodsSince returns mood observations per date, oldest first. Drafts and
// entries without a mood are excluded.
func (r *AnalyticsRepository) MoodsSince(ctx context.Context, userID string, since time.Time) ([]MoodPoint, error) {
	query := `
		SELECT entry_date::text, mood
		FROM journal_entries
		WHERE user_id = $1 AND deleted_at IS NULL AND is_draft = false
		  AND mood IS NOT NULL AND entry_date >= $2
		ORDER BY entry_date
	`

	rows, err := r.db.Query(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load moods: %w", err)
	}
	defer rows.Close()

	var points []MoodPoint
	for rows.Next() {
		var p MoodPoint
		if err := rows.Scan(&p.EntryDate, &p.Mood); err != nil {
			return nil, fmt.Errorf("failed to scan mood: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// WritingStats aggregates word counts over a user's finished entries.
type WritingStats struct {
	TotalEntries  int     `json:"total_entries"`
	TotalWords    int     `json:"total_words"`
	AverageWords  int     `json:"average_entry_length"`
	LongestWords  int     `json:"-"`
	LongestDate   *string `json:"-"`
	ShortestWords int     `json:"-"`
	ShortestDate  *string `json:"-"`
}

func (r *AnalyticsRepository) WritingStats(ctx context.Context, userID string) (*WritingStats, error) {
	query := `
		SELECT count(*),
		       coalesce(sum(word_count), 0),
		       coalesce(avg(word_count), 0)::int,
		       coalesce(max(word_count), 0),
		       coalesce(min(word_count), 0)
		FROM journal_entries
		WHERE user_id = $1 AND deleted_at IS NULL AND is_draft = false
	`

	var s WritingStats
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&s.TotalEntries, &s.TotalWords, &s.AverageWords, &s.LongestWords, &s.ShortestWords,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load writing stats: %w", err)
	}
	if s.TotalEntries == 0 {
		return &s, nil
	}

	extremes := `
		SELECT entry_date::text FROM journal_entries
		WHERE user_id = $1 AND deleted_at IS NULL AND is_draft = false AND word_count = $2
		ORDER BY entry_date DESC LIMIT 1
	`
	var longest, shortest string
	if err := r.db.QueryRow(ctx, extremes, userID, s.LongestWords).Scan(&longest); err == nil {
		s.LongestDate = &longest
	}
	if err := r.db.QueryRow(ctx, extremes, userID, s.ShortestWords).Scan(&shortest); err == nil {
		s.ShortestDate = &shortest
	}
	return &s, nil
}

// Streak is the stored journaling streak state for a user.
type Streak struct {
	CurrentStreak   int     `json:"current_streak"`
	LongestStreak   int     `json:"longest_streak"`
	LastEntryDate   *string `json:"last_entry_date"`
	StreakStartDate *string `json:"streak_start_date"`
}

// FindStreak returns the user's streak row; a zero streak when none exists.
func (r *AnalyticsRepository) FindStreak(ctx context.Context, userID string) (*Streak, error) {
	query := `
		SELECT current_streak, longest_streak, last_entry_date::text, streak_start_date::text
		FROM streaks
		WHERE user_id = $1
	`

	var s Streak
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&s.CurrentStreak, &s.LongestStreak, &s.LastEntryDate, &s.StreakStartDate,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return &Streak{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load streak: %w", err)
	}
	return &s, nil
}

// CountEntriesSince counts finished entries on or after a date.
func (r *AnalyticsRepository) CountEntriesSince(ctx context.Context, userID string, since time.Time) (int, error) {
	query := `
		SELECT count(*) FROM journal_entries
		WHERE user_id = $1 AND deleted_at IS NULL AND is_draft = false AND entry_date >= $2
	`

	var n int
	if err := r.db.QueryRow(ctx, query, userID, since).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return n, nil
}

// RecentEntry is the slim view shown on the dashboard.
type RecentEntry struct {
	ID        string  `json:"id"`
	EntryDate string  `json:"entry_date"`
	WordCount int     `json:"word_count"`
	Mood      *string `json:"mood"`
}

func (r *AnalyticsRepository) RecentEntries(ctx context.Context, userID string, limit int) ([]RecentEntry, error) {
	query := `
		SELECT id, entry_date::text, word_count, mood
		FROM journal_entries
		WHERE user_id = $1 AND deleted_at IS NULL AND is_draft = false
		ORDER BY entry_date DESC, entry_time DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent entries: %w", err)
	}
	defer rows.Close()

	var recent []RecentEntry
	for rows.Next() {
		var e RecentEntry
		if err := rows.Scan(&e.ID, &e.EntryDate, &e.WordCount, &e.Mood); err != nil {
			return nil, fmt.Errorf("failed to scan recent entry: %w", err)
		}
		recent = append(recent, e)
	}
	return recent, rows.Err()
}

// Contents streams all finished entry bodies (for word-frequency analysis).
func (r *AnalyticsRepository) Contents(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT content FROM journal_entries
		WHERE user_id = $1 AND deleted_at IS NULL AND is_draft = false
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load contents: %w", err)
	}
	defer rows.Close()

	var contents []string
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("failed to scan content: %w", err)
		}
		contents = append(contents, content)
	}
	return contents, rows.Err()
}
