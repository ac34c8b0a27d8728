// internal/repository/postgres/entry_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"journal-service/internal/domain/entry"
	"journal-service/internal/pkg/apierror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const entryColumns = `
	id, user_id, title, content, mood, mood_intensity,
	entry_date::text, entry_time::text, word_count, character_count,
	is_draft, is_favorite, weather, location, template_id, tags,
	created_at, updated_at
`

type EntryRepository struct {
	db *pgxpool.Pool
}

func NewEntryRepository(db *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{db: db}
}

// Create inserts a new entry and fills the generated fields.
func (r *EntryRepository) Create(ctx context.Context, e *entry.Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	query := `
		INSERT INTO journal_entries (
			id, user_id, title, content, mood, mood_intensity,
			entry_date, entry_time, word_count, character_count,
			is_draft, is_favorite, weather, location, template_id, tags
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		e.ID, e.UserID, e.Title, e.Content, e.Mood, e.MoodIntensity,
		e.EntryDate, e.EntryTime, e.WordCount, e.CharacterCount,
		e.IsDraft, e.IsFavorite, e.Weather, e.Location, e.TemplateID, e.Tags,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}
	return nil
}

// FindByID retrieves a non-deleted entry owned by the user. Ownership and
// absence are indistinguishable to the caller.
func (r *EntryRepository) FindByID(ctx context.Context, userID, id string) (*entry.Entry, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM journal_entries
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
	`, entryColumns)

	e, err := scanEntry(r.db.QueryRow(ctx, query, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apierror.NotFound("Entry not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find entry: %w", err)
	}
	return e, nil
}

// List returns a filtered page of entries.
func (r *EntryRepository) List(ctx context.Context, userID string, filter entry.ListFilter) ([]*entry.Entry, error) {
	where := []string{"user_id = $1", "deleted_at IS NULL"}
	args := []interface{}{userID}

	if filter.IsDraft != nil {
		args = append(args, *filter.IsDraft)
		where = append(where, fmt.Sprintf("is_draft = $%d", len(args)))
	}
	if filter.IsFavorite != nil {
		args = append(args, *filter.IsFavorite)
		where = append(where, fmt.Sprintf("is_favorite = $%d", len(args)))
	}

	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`
		SELECT %s FROM journal_entries
		WHERE %s
		ORDER BY entry_date %s, entry_time %s
		LIMIT $%d OFFSET $%d
	`, entryColumns, strings.Join(where, " AND "), direction, direction, len(args)-1, len(args))

	return r.queryEntries(ctx, query, args...)
}

// Search matches entry content with optional mood and tag filters. Drafts
// are excluded from search results.
func (r *EntryRepository) Search(ctx context.Context, userID, q string, mood *string, tags []string, page, limit int) ([]*entry.Entry, error) {
	where := []string{"user_id = $1", "deleted_at IS NULL", "is_draft = false"}
	args := []interface{}{userID}

	if q != "" {
		args = append(args, "%"+q+"%")
		where = append(where, fmt.Sprintf("(content ILIKE $%d OR title ILIKE $%d)", len(args), len(args)))
	}
	if mood != nil {
		args = append(args, *mood)
		where = append(where, fmt.Sprintf("mood = $%d", len(args)))
	}
	if len(tags) > 0 {
		args = append(args, pq.StringArray(tags))
		where = append(where, fmt.Sprintf("tags && $%d", len(args)))
	}

	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf(`
		SELECT %s FROM journal_entries
		WHERE %s
		ORDER BY entry_date DESC, entry_time DESC
		LIMIT $%d OFFSET $%d
	`, entryColumns, strings.Join(where, " AND "), len(args)-1, len(args))

	return r.queryEntries(ctx, query, args...)
}

// Calendar returns the entry markers for one month.
func (r *EntryRepository) Calendar(ctx context.Context, userID string, year, month int) ([]*entry.CalendarDay, error) {
	query := `
		SELECT id, entry_date::text, mood, is_draft
		FROM journal_entries
		WHERE user_id = $1 AND deleted_at IS NULL AND is_draft = false
		  AND date_part('year', entry_date) = $2
		  AND date_part('month', entry_date) = $3
		ORDER BY entry_date
	`

	rows, err := r.db.Query(ctx, query, userID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load calendar: %w", err)
	}
	defer rows.Close()

	var days []*entry.CalendarDay
	for rows.Next() {
		var d entry.CalendarDay
		if err := rows.Scan(&d.ID, &d.EntryDate, &d.Mood, &d.IsDraft); err != nil {
			return nil, fmt.Errorf("failed to scan calendar row: %w", err)
		}
		days = append(days, &d)
	}
	return days, rows.Err()
}

// OnThisDay returns entries from past years on the given month/day.
func (r *EntryRepository) OnThisDay(ctx context.Context, userID string, month, day int) ([]*entry.Entry, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM journal_entries
		WHERE user_id = $1 AND deleted_at IS NULL
		  AND date_part('month', entry_date) = $2
		  AND date_part('day', entry_date) = $3
		ORDER BY entry_date DESC
	`, entryColumns)

	return r.queryEntries(ctx, query, userID, month, day)
}

// Update applies the non-nil fields of req.
func (r *EntryRepository) Update(ctx context.Context, userID, id string, req *entry.UpdateRequest, wordCount, charCount *int) error {
	sets := []string{"updated_at = now()"}
	args := []interface{}{id, userID}
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Title != nil {
		add("title", *req.Title)
	}
	if req.Content != nil {
		add("content", *req.Content)
	}
	if wordCount != nil {
		add("word_count", *wordCount)
	}
	if charCount != nil {
		add("character_count", *charCount)
	}
	if req.Mood != nil {
		add("mood", *req.Mood)
	}
	if req.MoodIntensity != nil {
		add("mood_intensity", *req.MoodIntensity)
	}
	if req.EntryDate != nil {
		add("entry_date", *req.EntryDate)
	}
	if req.EntryTime != nil {
		add("entry_time", *req.EntryTime)
	}
	if req.IsDraft != nil {
		add("is_draft", *req.IsDraft)
	}
	if req.IsFavorite != nil {
		add("is_favorite", *req.IsFavorite)
	}
	if req.Weather != nil {
		add("weather", *req.Weather)
	}
	if req.Location != nil {
		add("location", *req.Location)
	}
	if req.TemplateID != nil {
		add("template_id", *req.TemplateID)
	}
	if req.Tags != nil {
		add("tags", pq.StringArray(req.Tags))
	}

	if len(sets) == 1 {
		return nil
	}

	query := fmt.Sprintf(`
		UPDATE journal_entries SET %s
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
	`, strings.Join(sets, ", "))

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.NotFound("Entry not found")
	}
	return nil
}

// SoftDelete marks an entry deleted; it stays in storage but leaves every
// read path.
func (r *EntryRepository) SoftDelete(ctx context.Context, userID, id string) error {
	query := `
		UPDATE journal_entries SET deleted_at = now()
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
	`

	tag, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.NotFound("Entry not found")
	}
	return nil
}

// SetFavorite toggles the favorite flag.
func (r *EntryRepository) SetFavorite(ctx context.Context, userID, id string, favorite bool) error {
	query := `
		UPDATE journal_entries SET is_favorite = $3, updated_at = now()
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
	`

	tag, err := r.db.Exec(ctx, query, id, userID, favorite)
	if err != nil {
		return fmt.Errorf("failed to update favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.NotFound("Entry not found")
	}
	return nil
}

// TagSuggestions returns distinct tags matching the prefix query.
func (r *EntryRepository) TagSuggestions(ctx context.Context, userID, q string, limit int) ([]string, error) {
	query := `
		SELECT DISTINCT tag FROM journal_entries, unnest(tags) AS tag
		WHERE user_id = $1 AND deleted_at IS NULL AND tag ILIKE $2
		ORDER BY tag
		LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, userID, "%"+q+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load tag suggestions: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func (r *EntryRepository) queryEntries(ctx context.Context, query string, args ...interface{}) ([]*entry.Entry, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []*entry.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanEntry(row pgx.Row) (*entry.Entry, error) {
	var e entry.Entry
	err := row.Scan(
		&e.ID, &e.UserID, &e.Title, &e.Content, &e.Mood, &e.MoodIntensity,
		&e.EntryDate, &e.EntryTime, &e.WordCount, &e.CharacterCount,
		&e.IsDraft, &e.IsFavorite, &e.Weather, &e.Location, &e.TemplateID, &e.Tags,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
