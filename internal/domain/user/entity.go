// internal/domain/user/entity.go
package user

import "time"

// Profile is the application-owned record for a user, keyed by the identity
// provider's identifier. It is created lazily on first profile access, so it
// may lag the identity record.
type Profile struct {
	ID                      string    `json:"id"`
	Email                   string    `json:"email"`
	FullName                *string   `json:"full_name"`
	AvatarURL               *string   `json:"avatar_url"`
	OnboardingCompleted     bool      `json:"onboarding_completed"`
	JournalingGoal          *string   `json:"journaling_goal"`
	PreferredJournalingTime *string   `json:"preferred_journaling_time"`
	AIPersonality           string    `json:"ai_personality"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// Preferences holds per-user application settings.
type Preferences struct {
	Theme            string   `json:"theme"`
	AccentColor      string   `json:"accent_color"`
	FontFamily       string   `json:"font_family"`
	FontSize         int      `json:"font_size"`
	ReminderEnabled  bool     `json:"reminder_enabled"`
	ReminderTime     string   `json:"reminder_time"`
	ReminderDays     []string `json:"reminder_days"`
	AutoSaveInterval int      `json:"auto_save_interval"`
	ShowWordCount    bool     `json:"show_word_count"`
	AIEnabled        bool     `json:"ai_enabled"`
	AIResponseStyle  string   `json:"ai_response_style"`
	SyncEnabled      bool     `json:"sync_enabled"`
}

// DefaultPreferences are served until the user saves their own.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:            "auto",
		AccentColor:      "#6366F1",
		FontFamily:       "system",
		FontSize:         16,
		ReminderEnabled:  true,
		ReminderTime:     "21:00",
		ReminderDays:     []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"},
		AutoSaveInterval: 30,
		ShowWordCount:    true,
		AIEnabled:        true,
		AIResponseStyle:  "balanced",
		SyncEnabled:      true,
	}
}

// Stats summarizes a user's journaling activity.
type Stats struct {
	TotalEntries     int `json:"total_entries"`
	TotalWords       int `json:"total_words"`
	CurrentStreak    int `json:"current_streak"`
	LongestStreak    int `json:"longest_streak"`
	EntriesThisWeek  int `json:"entries_this_week"`
	EntriesThisMonth int `json:"entries_this_month"`
}
