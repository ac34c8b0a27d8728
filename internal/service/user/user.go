// internal/service/user/user.go
package user

import (
	"context"
	"time"

	"journal-service/internal/domain/user"
	"journal-service/internal/identity"
	"journal-service/internal/pkg/apierror"
	"journal-service/internal/repository/postgres"

	"go.uber.org/zap"
)

// IdentityLookup is the provider-side user lookup used to lazily create a
// profile for an identity that has never touched the profile endpoints.
type IdentityLookup interface {
	AdminGetUser(ctx context.Context, id string) (*identity.User, error)
}

// ProfileStore is the persistence surface for profiles and preferences.
type ProfileStore interface {
	FindProfile(ctx context.Context, userID string) (*user.Profile, error)
	UpsertProfile(ctx context.Context, id, email string, fullName *string) error
	UpdateProfile(ctx context.Context, userID string, req *user.UpdateProfileRequest) error
	FindPreferences(ctx context.Context, userID string) (*user.Preferences, error)
	UpsertPreferences(ctx context.Context, userID string, prefs *user.Preferences) error
}

// ActivityStore supplies the aggregates behind the profile stats endpoint.
type ActivityStore interface {
	WritingStats(ctx context.Context, userID string) (*postgres.WritingStats, error)
	FindStreak(ctx context.Context, userID string) (*postgres.Streak, error)
	CountEntriesSince(ctx context.Context, userID string, since time.Time) (int, error)
}

var (
	_ ProfileStore  = (*postgres.UserRepository)(nil)
	_ ActivityStore = (*postgres.AnalyticsRepository)(nil)
)

type UserService struct {
	users     ProfileStore
	analytics ActivityStore
	lookup    IdentityLookup
	logger    *zap.Logger
}

func NewUserService(users ProfileStore, analytics ActivityStore, lookup IdentityLookup, logger *zap.Logger) *UserService {
	return &UserService{users: users, analytics: analytics, lookup: lookup, logger: logger}
}

// GetProfile returns the user's profile, creating the row from the
// provider's identity record when it does not exist yet. A missing profile
// is never an authentication failure: the subject already passed token
// verification.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*user.Profile, error) {
	profile, err := s.users.FindProfile(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if apierror.From(err).Code != apierror.CodeNotFound {
		return nil, err
	}

	identityUser, lookupErr := s.lookup.AdminGetUser(ctx, userID)
	if lookupErr != nil {
		s.logger.Warn("identity lookup for lazy profile creation failed",
			zap.String("user_id", userID),
			zap.Error(lookupErr),
		)
		return nil, apierror.NotFound("User not found")
	}

	var fullName *string
	if name, ok := identityUser.Metadata["full_name"].(string); ok && name != "" {
		fullName = &name
	}
	if err := s.users.UpsertProfile(ctx, userID, identityUser.Email, fullName); err != nil {
		return nil, err
	}
	return s.users.FindProfile(ctx, userID)
}

// UpdateProfile applies the non-nil fields and returns the updated profile.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req *user.UpdateProfileRequest) (*user.Profile, error) {
	if err := s.users.UpdateProfile(ctx, userID, req); err != nil {
		return nil, err
	}
	return s.users.FindProfile(ctx, userID)
}

// GetPreferences returns stored preferences, or the defaults when the user
// has never saved any.
func (s *UserService) GetPreferences(ctx context.Context, userID string) (*user.Preferences, error) {
	prefs, err := s.users.FindPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	if prefs == nil {
		defaults := user.DefaultPreferences()
		return &defaults, nil
	}
	return prefs, nil
}

// UpdatePreferences merges the request over the current (or default)
// preferences and stores the result.
func (s *UserService) UpdatePreferences(ctx context.Context, userID string, req *user.UpdatePreferencesRequest) (*user.Preferences, error) {
	current, err := s.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := *current
	if req.Theme != nil {
		merged.Theme = *req.Theme
	}
	if req.AccentColor != nil {
		merged.AccentColor = *req.AccentColor
	}
	if req.FontFamily != nil {
		merged.FontFamily = *req.FontFamily
	}
	if req.FontSize != nil {
		merged.FontSize = *req.FontSize
	}
	if req.ReminderEnabled != nil {
		merged.ReminderEnabled = *req.ReminderEnabled
	}
	if req.ReminderTime != nil {
		merged.ReminderTime = *req.ReminderTime
	}
	if req.ReminderDays != nil {
		merged.ReminderDays = req.ReminderDays
	}
	if req.AutoSaveInterval != nil {
		merged.AutoSaveInterval = *req.AutoSaveInterval
	}
	if req.ShowWordCount != nil {
		merged.ShowWordCount = *req.ShowWordCount
	}
	if req.AIEnabled != nil {
		merged.AIEnabled = *req.AIEnabled
	}
	if req.AIResponseStyle != nil {
		merged.AIResponseStyle = *req.AIResponseStyle
	}
	if req.SyncEnabled != nil {
		merged.SyncEnabled = *req.SyncEnabled
	}

	if err := s.users.UpsertPreferences(ctx, userID, &merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

// GetStats assembles the profile-page activity summary.
func (s *UserService) GetStats(ctx context.Context, userID string) (*user.Stats, error) {
	writing, err := s.analytics.WritingStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	streak, err := s.analytics.FindStreak(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	weekStart := now.AddDate(0, 0, -int(now.Weekday()))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	thisWeek, err := s.analytics.CountEntriesSince(ctx, userID, weekStart)
	if err != nil {
		return nil, err
	}
	thisMonth, err := s.analytics.CountEntriesSince(ctx, userID, monthStart)
	if err != nil {
		return nil, err
	}

	return &user.Stats{
		TotalEntries:     writing.TotalEntries,
		TotalWords:       writing.TotalWords,
		CurrentStreak:    streak.CurrentStreak,
		LongestStreak:    streak.LongestStreak,
		EntriesThisWeek:  thisWeek,
		EntriesThisMonth: thisMonth,
	}, nil
}
