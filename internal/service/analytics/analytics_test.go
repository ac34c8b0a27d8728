package analytics

import (
	"context"
	"testing"
	"time"

	"journal-service/internal/repository/postgres"

	"go.uber.org/zap"
)

type mockStore struct {
	moodsSince    func(ctx context.Context, userID string, since time.Time) ([]postgres.MoodPoint, error)
	writingStats  func(ctx context.Context, userID string) (*postgres.WritingStats, error)
	findStreak    func(ctx context.Context, userID string) (*postgres.Streak, error)
	recentEntries func(ctx context.Context, userID string, limit int) ([]postgres.RecentEntry, error)
	contents      func(ctx context.Context, userID string) ([]string, error)
}

var _ Store = (*mockStore)(nil)

func (m *mockStore) MoodsSince(ctx context.Context, userID string, since time.Time) ([]postgres.MoodPoint, error) {
	return m.moodsSince(ctx, userID, since)
}

func (m *mockStore) WritingStats(ctx context.Context, userID string) (*postgres.WritingStats, error) {
	return m.writingStats(ctx, userID)
}

func (m *mockStore) FindStreak(ctx context.Context, userID string) (*postgres.Streak, error) {
	return m.findStreak(ctx, userID)
}

func (m *mockStore) RecentEntries(ctx context.Context, userID string, limit int) ([]postgres.RecentEntry, error) {
	return m.recentEntries(ctx, userID, limit)
}

func (m *mockStore) Contents(ctx context.Context, userID string) ([]string, error) {
	return m.contents(ctx, userID)
}

func TestMoodTrendsPeriodWindow(t *testing.T) {
	cases := []struct {
		period string
		days   int
	}{
		{"7d", 7},
		{"30d", 30},
		{"90d", 90},
		{"365d", 365},
		{"garbage", 30},
		{"", 30},
	}
	for _, tc := range cases {
		var gotSince time.Time
		svc := NewAnalyticsService(&mockStore{
			moodsSince: func(ctx context.Context, userID string, since time.Time) ([]postgres.MoodPoint, error) {
				gotSince = since
				return nil, nil
			},
		}, zap.NewNop())

		if _, err := svc.MoodTrends(context.Background(), "uid-1", tc.period); err != nil {
			t.Fatalf("MoodTrends(%q): %v", tc.period, err)
		}
		wantSince := time.Now().AddDate(0, 0, -tc.days)
		if diff := gotSince.Sub(wantSince); diff < -time.Minute || diff > time.Minute {
			t.Errorf("period %q: since = %v, want about %v", tc.period, gotSince, wantSince)
		}
	}
}

func TestMoodTrendsGroupsByDate(t *testing.T) {
	svc := NewAnalyticsService(&mockStore{
		moodsSince: func(ctx context.Context, userID string, since time.Time) ([]postgres.MoodPoint, error) {
			return []postgres.MoodPoint{
				{EntryDate: "2026-08-30", Mood: "good"},
				{EntryDate: "2026-08-30", Mood: "okay"},
				{EntryDate: "2026-08-31", Mood: "amazing"},
			}, nil
		},
	}, zap.NewNop())

	trends, err := svc.MoodTrends(context.Background(), "uid-1", "7d")
	if err != nil {
		t.Fatalf("MoodTrends: %v", err)
	}
	if len(trends["2026-08-30"]) != 2 {
		t.Errorf("2026-08-30 = %v", trends["2026-08-30"])
	}
	if len(trends["2026-08-31"]) != 1 {
		t.Errorf("2026-08-31 = %v", trends["2026-08-31"])
	}
}

func TestWritingStatsOmitsExtremesWithoutEntries(t *testing.T) {
	svc := NewAnalyticsService(&mockStore{
		writingStats: func(ctx context.Context, userID string) (*postgres.WritingStats, error) {
			return &postgres.WritingStats{}, nil
		},
	}, zap.NewNop())

	stats, err := svc.WritingStats(context.Background(), "uid-1")
	if err != nil {
		t.Fatalf("WritingStats: %v", err)
	}
	if stats.Longest != nil || stats.Shortest != nil {
		t.Errorf("extremes should be nil for an empty journal: %+v", stats)
	}
}

func TestDashboardAggregates(t *testing.T) {
	svc := NewAnalyticsService(&mockStore{
		writingStats: func(ctx context.Context, userID string) (*postgres.WritingStats, error) {
			return &postgres.WritingStats{TotalEntries: 12, TotalWords: 3400}, nil
		},
		findStreak: func(ctx context.Context, userID string) (*postgres.Streak, error) {
			return &postgres.Streak{CurrentStreak: 4, LongestStreak: 9}, nil
		},
		recentEntries: func(ctx context.Context, userID string, limit int) ([]postgres.RecentEntry, error) {
			if limit != 5 {
				t.Errorf("recent limit = %d, want 5", limit)
			}
			return []postgres.RecentEntry{{ID: "e-1", EntryDate: "2026-08-31", WordCount: 120}}, nil
		},
	}, zap.NewNop())

	d, err := svc.Dashboard(context.Background(), "uid-1")
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if d.TotalEntries != 12 || d.TotalWords != 3400 {
		t.Errorf("totals = %d/%d", d.TotalEntries, d.TotalWords)
	}
	if d.CurrentStreak != 4 || d.LongestStreak != 9 {
		t.Errorf("streaks = %d/%d", d.CurrentStreak, d.LongestStreak)
	}
	if len(d.RecentEntries) != 1 {
		t.Errorf("recent = %v", d.RecentEntries)
	}
}

func TestWordCloudFiltersStopwordsAndSorts(t *testing.T) {
	svc := NewAnalyticsService(&mockStore{
		contents: func(ctx context.Context, userID string) ([]string, error) {
			return []string{
				"The morning run was great and the coffee after was great",
				"Morning pages before the run",
			}, nil
		},
	}, zap.NewNop())

	words, err := svc.WordCloud(context.Background(), "uid-1", 50)
	if err != nil {
		t.Fatalf("WordCloud: %v", err)
	}
	if len(words) == 0 {
		t.Fatal("no words")
	}
	for _, w := range words {
		if w.Word == "the" || w.Word == "and" || w.Word == "was" {
			t.Errorf("stopword %q survived", w.Word)
		}
		if len(w.Word) < 3 {
			t.Errorf("short token %q survived", w.Word)
		}
	}
	for i := 1; i < len(words); i++ {
		if words[i].Count > words[i-1].Count {
			t.Fatalf("not sorted by count: %v", words)
		}
	}
	top := words[0]
	if (top.Word != "great" && top.Word != "morning" && top.Word != "run") || top.Count != 2 {
		t.Errorf("top word = %+v", top)
	}
}

func TestWordCloudRespectsLimit(t *testing.T) {
	svc := NewAnalyticsService(&mockStore{
		contents: func(ctx context.Context, userID string) ([]string, error) {
			return []string{"alpha beta gamma delta epsilon zeta"}, nil
		},
	}, zap.NewNop())

	words, err := svc.WordCloud(context.Background(), "uid-1", 3)
	if err != nil {
		t.Fatalf("WordCloud: %v", err)
	}
	if len(words) != 3 {
		t.Errorf("len = %d, want 3", len(words))
	}
}
