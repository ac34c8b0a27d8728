// internal/domain/entry/dto.go
package entry

// CreateRequest for new entries.
type CreateRequest struct {
	Title         *string  `json:"title"`
	Content       string   `json:"content" binding:"required"`
	Mood          *string  `json:"mood"`
	MoodIntensity *int     `json:"mood_intensity"`
	EntryDate     string   `json:"entry_date"`
	EntryTime     string   `json:"entry_time"`
	IsDraft       bool     `json:"is_draft"`
	IsFavorite    bool     `json:"is_favorite"`
	Weather       *string  `json:"weather"`
	Location      *string  `json:"location"`
	TemplateID    *string  `json:"template_id"`
	Tags          []string `json:"tags"`
}

// UpdateRequest for entry updates; nil fields are left untouched. A non-nil
// Tags slice replaces the entry's tags wholesale.
type UpdateRequest struct {
	Title         *string  `json:"title"`
	Content       *string  `json:"content"`
	Mood          *string  `json:"mood"`
	MoodIntensity *int     `json:"mood_intensity"`
	EntryDate     *string  `json:"entry_date"`
	EntryTime     *string  `json:"entry_time"`
	IsDraft       *bool    `json:"is_draft"`
	IsFavorite    *bool    `json:"is_favorite"`
	Weather       *string  `json:"weather"`
	Location      *string  `json:"location"`
	TemplateID    *string  `json:"template_id"`
	Tags          []string `json:"tags"`
}

// ListFilter narrows entry listings.
type ListFilter struct {
	Page       int
	Limit      int
	SortDesc   bool
	IsDraft    *bool
	IsFavorite *bool
}
