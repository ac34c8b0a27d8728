// internal/domain/ai/entity.go
package ai

import "time"

// Message is one turn of an AI chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation is a persisted chat thread, optionally linked to an entry.
type Conversation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	EntryID   *string   `json:"entry_id,omitempty"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
