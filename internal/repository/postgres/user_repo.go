// internal/repository/postgres/user_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"journal-service/internal/domain/user"
	"journal-service/internal/pkg/apierror"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// UpsertProfile creates or refreshes the profile row for an identity. Used
// after register/login; existing application fields are preserved.
func (r *UserRepository) UpsertProfile(ctx context.Context, id, email string, fullName *string) error {
	query := `
		INSERT INTO users (id, email, full_name, onboarding_completed)
		VALUES ($1, $2, $3, false)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			updated_at = now()
	`

	if _, err := r.db.Exec(ctx, query, id, email, fullName); err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// FindProfile retrieves a profile by identity ID.
func (r *UserRepository) FindProfile(ctx context.Context, id string) (*user.Profile, error) {
	query := `
		SELECT id, email, full_name, avatar_url, onboarding_completed,
		       journaling_goal, preferred_journaling_time, ai_personality,
		       created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var p user.Profile
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Email, &p.FullName, &p.AvatarURL, &p.OnboardingCompleted,
		&p.JournalingGoal, &p.PreferredJournalingTime, &p.AIPersonality,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apierror.NotFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return &p, nil
}

// UpdateProfile applies the non-nil fields of req.
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, req *user.UpdateProfileRequest) error {
	sets := []string{"updated_at = now()"}
	args := []interface{}{id}
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.FullName != nil {
		add("full_name", *req.FullName)
	}
	if req.AvatarURL != nil {
		add("avatar_url", *req.AvatarURL)
	}
	if req.OnboardingCompleted != nil {
		add("onboarding_completed", *req.OnboardingCompleted)
	}
	if req.JournalingGoal != nil {
		add("journaling_goal", *req.JournalingGoal)
	}
	if req.PreferredJournalingTime != nil {
		add("preferred_journaling_time", *req.PreferredJournalingTime)
	}
	if req.AIPersonality != nil {
		add("ai_personality", *req.AIPersonality)
	}

	if len(sets) == 1 {
		return nil
	}

	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $1", strings.Join(sets, ", "))
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.NotFound("User not found")
	}
	return nil
}

// FindPreferences returns the stored preferences, or nil when the user has
// never saved any.
func (r *UserRepository) FindPreferences(ctx context.Context, userID string) (*user.Preferences, error) {
	query := `
		SELECT theme, accent_color, font_family, font_size,
		       reminder_enabled, reminder_time, reminder_days,
		       auto_save_interval, show_word_count,
		       ai_enabled, ai_response_style, sync_enabled
		FROM user_preferences
		WHERE user_id = $1
	`

	var p user.Preferences
	var days pq.StringArray
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.Theme, &p.AccentColor, &p.FontFamily, &p.FontSize,
		&p.ReminderEnabled, &p.ReminderTime, &days,
		&p.AutoSaveInterval, &p.ShowWordCount,
		&p.AIEnabled, &p.AIResponseStyle, &p.SyncEnabled,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find preferences: %w", err)
	}
	p.ReminderDays = []string(days)
	return &p, nil
}

// UpsertPreferences stores the full preference set for a user.
func (r *UserRepository) UpsertPreferences(ctx context.Context, userID string, p *user.Preferences) error {
	query := `
		INSERT INTO user_preferences (
			user_id, theme, accent_color, font_family, font_size,
			reminder_enabled, reminder_time, reminder_days,
			auto_save_interval, show_word_count,
			ai_enabled, ai_response_style, sync_enabled
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (user_id) DO UPDATE SET
			theme = EXCLUDED.theme,
			accent_color = EXCLUDED.accent_color,
			font_family = EXCLUDED.font_family,
			font_size = EXCLUDED.font_size,
			reminder_enabled = EXCLUDED.reminder_enabled,
			reminder_time = EXCLUDED.reminder_time,
			reminder_days = EXCLUDED.reminder_days,
			auto_save_interval = EXCLUDED.auto_save_interval,
			show_word_count = EXCLUDED.show_word_count,
			ai_enabled = EXCLUDED.ai_enabled,
			ai_response_style = EXCLUDED.ai_response_style,
			sync_enabled = EXCLUDED.sync_enabled,
			updated_at = now()
	`

	_, err := r.db.Exec(ctx, query,
		userID, p.Theme, p.AccentColor, p.FontFamily, p.FontSize,
		p.ReminderEnabled, p.ReminderTime, pq.StringArray(p.ReminderDays),
		p.AutoSaveInterval, p.ShowWordCount,
		p.AIEnabled, p.AIResponseStyle, p.SyncEnabled,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert preferences: %w", err)
	}
	return nil
}

// DeleteUserData removes the user's application data after the identity has
// been deleted at the provider. All tables are cleared in one transaction so
// a retry never sees a half-deleted account.
func (r *UserRepository) DeleteUserData(ctx context.Context, userID string) error {
	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, query := range []string{
		`DELETE FROM ai_conversations WHERE user_id = $1`,
		`DELETE FROM user_preferences WHERE user_id = $1`,
		`DELETE FROM streaks WHERE user_id = $1`,
		`DELETE FROM journal_entries WHERE user_id = $1`,
		`DELETE FROM users WHERE id = $1`,
	} {
		if _, err := tx.Exec(ctx, query, userID); err != nil {
			return fmt.Errorf("failed to delete user data: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit delete transaction: %w", err)
	}
	return nil
}
