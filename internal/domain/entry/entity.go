// internal/domain/entry/entity.go
package entry

import (
	"time"

	"github.com/lib/pq"
)

// Moods accepted on an entry.
var Moods = map[string]bool{
	"amazing": true,
	"good":    true,
	"okay":    true,
	"bad":     true,
	"awful":   true,
}

// Entry is a journal entry. Deleted entries are retained with DeletedAt set
// and excluded from every read path.
type Entry struct {
	ID             string         `json:"id"`
	UserID         string         `json:"user_id"`
	Title          *string        `json:"title"`
	Content        string         `json:"content"`
	Mood           *string        `json:"mood"`
	MoodIntensity  *int           `json:"mood_intensity"`
	EntryDate      string         `json:"entry_date"`
	EntryTime      string         `json:"entry_time"`
	WordCount      int            `json:"word_count"`
	CharacterCount int            `json:"character_count"`
	IsDraft        bool           `json:"is_draft"`
	IsFavorite     bool           `json:"is_favorite"`
	Weather        *string        `json:"weather"`
	Location       *string        `json:"location"`
	TemplateID     *string        `json:"template_id"`
	Tags           pq.StringArray `json:"tags"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      *time.Time     `json:"-"`
}

// CalendarDay is the per-entry slice of fields the calendar view needs.
type CalendarDay struct {
	ID        string  `json:"id"`
	EntryDate string  `json:"entry_date"`
	Mood      *string `json:"mood"`
	IsDraft   bool    `json:"is_draft"`
}
