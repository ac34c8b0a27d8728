// internal/service/search/search.go
package search

import (
	"context"
	"strings"

	"journal-service/internal/domain/entry"
	"journal-service/internal/pkg/apierror"
	"journal-service/internal/repository/postgres"
)

// EntrySearcher is the slice of the entry repository the search service
// needs.
type EntrySearcher interface {
	Search(ctx context.Context, userID, q string, mood *string, tags []string, page, limit int) ([]*entry.Entry, error)
	TagSuggestions(ctx context.Context, userID, q string, limit int) ([]string, error)
}

var _ EntrySearcher = (*postgres.EntryRepository)(nil)

type SearchService struct {
	entries EntrySearcher
}

func NewSearchService(entries EntrySearcher) *SearchService {
	return &SearchService{entries: entries}
}

// Query describes a search request. At least one of Text, Mood or Tags must
// be set.
type Query struct {
	Text  string
	Mood  *string
	Tags  []string
	Page  int
	Limit int
}

func (s *SearchService) Search(ctx context.Context, userID string, q Query) ([]*entry.Entry, error) {
	q.Text = strings.TrimSpace(q.Text)
	if q.Text == "" && q.Mood == nil && len(q.Tags) == 0 {
		return nil, apierror.Validation("Provide a search query, mood or tags", "q", "required")
	}
	if q.Mood != nil {
		if _, ok := entry.Moods[*q.Mood]; !ok {
			return nil, apierror.Validation("Invalid mood", "mood", "enum")
		}
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}

	results, err := s.entries.Search(ctx, userID, q.Text, q.Mood, q.Tags, q.Page, q.Limit)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []*entry.Entry{}
	}
	return results, nil
}

// TagSuggestions returns the user's existing tags matching a prefix, for
// autocomplete while composing an entry.
func (s *SearchService) TagSuggestions(ctx context.Context, userID, prefix string, limit int) ([]string, error) {
	prefix = strings.TrimSpace(prefix)
	if limit < 1 || limit > 50 {
		limit = 10
	}

	tags, err := s.entries.TagSuggestions(ctx, userID, prefix, limit)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}
