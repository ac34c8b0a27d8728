// internal/service/analytics/analytics.go
package analytics

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	"journal-service/internal/repository/postgres"

	"go.uber.org/zap"
)

// Store is the aggregation surface the analytics service reads from.
type Store interface {
	MoodsSince(ctx context.Context, userID string, since time.Time) ([]postgres.MoodPoint, error)
	WritingStats(ctx context.Context, userID string) (*postgres.WritingStats, error)
	FindStreak(ctx context.Context, userID string) (*postgres.Streak, error)
	RecentEntries(ctx context.Context, userID string, limit int) ([]postgres.RecentEntry, error)
	Contents(ctx context.Context, userID string) ([]string, error)
}

var _ Store = (*postgres.AnalyticsRepository)(nil)

type AnalyticsService struct {
	repo   Store
	logger *zap.Logger
}

func NewAnalyticsService(repo Store, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{repo: repo, logger: logger}
}

// MoodTrends groups mood observations by date over the requested period.
// Supported periods: 7d, 30d, 90d, 365d; anything else falls back to 30d.
func (s *AnalyticsService) MoodTrends(ctx context.Context, userID, period string) (map[string][]string, error) {
	days := 30
	switch period {
	case "7d":
		days = 7
	case "90d":
		days = 90
	case "365d":
		days = 365
	}

	points, err := s.repo.MoodsSince(ctx, userID, time.Now().AddDate(0, 0, -days))
	if err != nil {
		return nil, err
	}

	byDate := make(map[string][]string)
	for _, p := range points {
		byDate[p.EntryDate] = append(byDate[p.EntryDate], p.Mood)
	}
	return byDate, nil
}

// WritingStatsResponse is the wire shape of the writing-stats endpoint.
type WritingStatsResponse struct {
	TotalEntries int           `json:"total_entries"`
	TotalWords   int           `json:"total_words"`
	AverageWords int           `json:"average_entry_length"`
	Longest      *EntryExtreme `json:"longest_entry"`
	Shortest     *EntryExtreme `json:"shortest_entry"`
}

type EntryExtreme struct {
	Words int    `json:"words"`
	Date  string `json:"date"`
}

func (s *AnalyticsService) WritingStats(ctx context.Context, userID string) (*WritingStatsResponse, error) {
	stats, err := s.repo.WritingStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &WritingStatsResponse{
		TotalEntries: stats.TotalEntries,
		TotalWords:   stats.TotalWords,
		AverageWords: stats.AverageWords,
	}
	if stats.LongestDate != nil {
		resp.Longest = &EntryExtreme{Words: stats.LongestWords, Date: *stats.LongestDate}
	}
	if stats.ShortestDate != nil {
		resp.Shortest = &EntryExtreme{Words: stats.ShortestWords, Date: *stats.ShortestDate}
	}
	return resp, nil
}

// Streaks returns the stored streak state.
func (s *AnalyticsService) Streaks(ctx context.Context, userID string) (*postgres.Streak, error) {
	return s.repo.FindStreak(ctx, userID)
}

// Dashboard is the aggregate view shown on the app home screen.
type Dashboard struct {
	TotalEntries  int                    `json:"total_entries"`
	TotalWords    int                    `json:"total_words"`
	CurrentStreak int                    `json:"current_streak"`
	LongestStreak int                    `json:"longest_streak"`
	RecentEntries []postgres.RecentEntry `json:"recent_entries"`
}

func (s *AnalyticsService) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	writing, err := s.repo.WritingStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	streak, err := s.repo.FindStreak(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.RecentEntries(ctx, userID, 5)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		TotalEntries:  writing.TotalEntries,
		TotalWords:    writing.TotalWords,
		CurrentStreak: streak.CurrentStreak,
		LongestStreak: streak.LongestStreak,
		RecentEntries: recent,
	}, nil
}

// WordFrequency is one word-cloud datum.
type WordFrequency struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

var wordPattern = regexp.MustCompile(`\b[a-z]{3,}\b`)

var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "that": true,
	"this": true, "you": true, "they": true, "was": true, "were": true,
	"but": true, "not": true, "are": true, "have": true, "had": true,
}

// WordCloud computes the most frequent non-stopword terms across a user's
// finished entries.
func (s *AnalyticsService) WordCloud(ctx context.Context, userID string, limit int) ([]WordFrequency, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}

	contents, err := s.repo.Contents(ctx, userID)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, content := range contents {
		for _, word := range wordPattern.FindAllString(strings.ToLower(content), -1) {
			if !stopWords[word] {
				counts[word]++
			}
		}
	}

	frequencies := make([]WordFrequency, 0, len(counts))
	for word, count := range counts {
		frequencies = append(frequencies, WordFrequency{Word: word, Count: count})
	}
	sort.Slice(frequencies, func(i, j int) bool {
		if frequencies[i].Count != frequencies[j].Count {
			return frequencies[i].Count > frequencies[j].Count
		}
		return frequencies[i].Word < frequencies[j].Word
	})
	if len(frequencies) > limit {
		frequencies = frequencies[:limit]
	}
	return frequencies, nil
}
