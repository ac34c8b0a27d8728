// internal/domain/user/dto.go
package user

// UpdateProfileRequest for profile updates; nil fields are left untouched.
type UpdateProfileRequest struct {
	FullName                *string `json:"full_name"`
	AvatarURL               *string `json:"avatar_url"`
	OnboardingCompleted     *bool   `json:"onboarding_completed"`
	JournalingGoal          *string `json:"journaling_goal"`
	PreferredJournalingTime *string `json:"preferred_journaling_time"`
	AIPersonality           *string `json:"ai_personality"`
}

// UpdatePreferencesRequest for preference updates; nil fields keep their
// current (or default) values.
type UpdatePreferencesRequest struct {
	Theme            *string  `json:"theme"`
	AccentColor      *string  `json:"accent_color"`
	FontFamily       *string  `json:"font_family"`
	FontSize         *int     `json:"font_size"`
	ReminderEnabled  *bool    `json:"reminder_enabled"`
	ReminderTime     *string  `json:"reminder_time"`
	ReminderDays     []string `json:"reminder_days"`
	AutoSaveInterval *int     `json:"auto_save_interval"`
	ShowWordCount    *bool    `json:"show_word_count"`
	AIEnabled        *bool    `json:"ai_enabled"`
	AIResponseStyle  *string  `json:"ai_response_style"`
	SyncEnabled      *bool    `json:"sync_enabled"`
}
