package search

import (
	"context"
	"errors"
	"testing"

	"journal-service/internal/domain/entry"
	"journal-service/internal/pkg/apierror"
)

type mockSearcher struct {
	search      func(ctx context.Context, userID, q string, mood *string, tags []string, page, limit int) ([]*entry.Entry, error)
	suggestions func(ctx context.Context, userID, q string, limit int) ([]string, error)
}

var _ EntrySearcher = (*mockSearcher)(nil)

func (m *mockSearcher) Search(ctx context.Context, userID, q string, mood *string, tags []string, page, limit int) ([]*entry.Entry, error) {
	return m.search(ctx, userID, q, mood, tags, page, limit)
}

func (m *mockSearcher) TagSuggestions(ctx context.Context, userID, q string, limit int) ([]string, error) {
	return m.suggestions(ctx, userID, q, limit)
}

func codeOf(t *testing.T, err error) apierror.Code {
	t.Helper()
	var appErr *apierror.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("error %v is not a taxonomy error", err)
	}
	return appErr.Code
}

func TestSearchRequiresSomeCriterion(t *testing.T) {
	svc := NewSearchService(&mockSearcher{
		search: func(ctx context.Context, userID, q string, mood *string, tags []string, page, limit int) ([]*entry.Entry, error) {
			t.Fatal("repository called for an empty query")
			return nil, nil
		},
	})

	_, err := svc.Search(context.Background(), "uid-1", Query{Text: "   "})
	if codeOf(t, err) != apierror.CodeValidation {
		t.Errorf("code = %s, want VALIDATION_ERROR", codeOf(t, err))
	}
}

func TestSearchMoodOnlyIsEnough(t *testing.T) {
	mood := "good"
	svc := NewSearchService(&mockSearcher{
		search: func(ctx context.Context, userID, q string, m *string, tags []string, page, limit int) ([]*entry.Entry, error) {
			if m == nil || *m != "good" {
				t.Errorf("mood = %v", m)
			}
			return nil, nil
		},
	})

	results, err := svc.Search(context.Background(), "uid-1", Query{Mood: &mood})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if results == nil {
		t.Error("nil result slice")
	}
}

func TestSearchRejectsUnknownMood(t *testing.T) {
	mood := "elated"
	svc := NewSearchService(&mockSearcher{})

	_, err := svc.Search(context.Background(), "uid-1", Query{Mood: &mood})
	if codeOf(t, err) != apierror.CodeValidation {
		t.Errorf("code = %s, want VALIDATION_ERROR", codeOf(t, err))
	}
}

func TestSearchNormalizesPagination(t *testing.T) {
	svc := NewSearchService(&mockSearcher{
		search: func(ctx context.Context, userID, q string, mood *string, tags []string, page, limit int) ([]*entry.Entry, error) {
			if page != 1 {
				t.Errorf("page = %d, want 1", page)
			}
			if limit != 20 {
				t.Errorf("limit = %d, want 20", limit)
			}
			return nil, nil
		},
	})

	if _, err := svc.Search(context.Background(), "uid-1", Query{Text: "coffee", Page: 0, Limit: 900}); err != nil {
		t.Fatalf("Search: %v", err)
	}
}

func TestTagSuggestionsNormalizesLimit(t *testing.T) {
	svc := NewSearchService(&mockSearcher{
		suggestions: func(ctx context.Context, userID, q string, limit int) ([]string, error) {
			if limit != 10 {
				t.Errorf("limit = %d, want 10", limit)
			}
			return []string{"gratitude"}, nil
		},
	})

	tags, err := svc.TagSuggestions(context.Background(), "uid-1", "gra", 0)
	if err != nil {
		t.Fatalf("TagSuggestions: %v", err)
	}
	if len(tags) != 1 || tags[0] != "gratitude" {
		t.Errorf("tags = %v", tags)
	}
}
