// internal/repository/postgres/conversation_repo.go
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"journal-service/internal/domain/ai"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ConversationRepository struct {
	db *pgxpool.Pool
}

func NewConversationRepository(db *pgxpool.Pool) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// FindLatest returns the most recently updated conversation for a user, or
// nil when none exists.
func (r *ConversationRepository) FindLatest(ctx context.Context, userID string) (*ai.Conversation, error) {
	query := `
		SELECT id, user_id, entry_id, messages, created_at, updated_at
		FROM ai_conversations
		WHERE user_id = $1
		ORDER BY updated_at DESC
		LIMIT 1
	`

	conv, err := scanConversation(r.db.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find conversation: %w", err)
	}
	return conv, nil
}

// Create stores a new conversation thread.
func (r *ConversationRepository) Create(ctx context.Context, conv *ai.Conversation) error {
	if conv.ID == "" {
		conv.ID = uuid.NewString()
	}

	messages, err := json.Marshal(conv.Messages)
	if err != nil {
		return fmt.Errorf("failed to marshal messages: %w", err)
	}

	query := `
		INSERT INTO ai_conversations (id, user_id, entry_id, messages)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err = r.db.QueryRow(ctx, query, conv.ID, conv.UserID, conv.EntryID, messages).
		Scan(&conv.CreatedAt, &conv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}
	return nil
}

// Update replaces a conversation's message list.
func (r *ConversationRepository) Update(ctx context.Context, conv *ai.Conversation) error {
	messages, err := json.Marshal(conv.Messages)
	if err != nil {
		return fmt.Errorf("failed to marshal messages: %w", err)
	}

	query := `
		UPDATE ai_conversations
		SET messages = $3, entry_id = $4, updated_at = now()
		WHERE id = $1 AND user_id = $2
	`

	if _, err := r.db.Exec(ctx, query, conv.ID, conv.UserID, messages, conv.EntryID); err != nil {
		return fmt.Errorf("failed to update conversation: %w", err)
	}
	return nil
}

// History returns the most recent conversations, newest first.
func (r *ConversationRepository) History(ctx context.Context, userID string, limit int) ([]*ai.Conversation, error) {
	query := `
		SELECT id, user_id, entry_id, messages, created_at, updated_at
		FROM ai_conversations
		WHERE user_id = $1
		ORDER BY updated_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	var conversations []*ai.Conversation
	for rows.Next() {
		conv, err := scanConversation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		conversations = append(conversations, conv)
	}
	return conversations, rows.Err()
}

// DeleteAll removes a user's entire conversation history.
func (r *ConversationRepository) DeleteAll(ctx context.Context, userID string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM ai_conversations WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func scanConversation(row pgx.Row) (*ai.Conversation, error) {
	var conv ai.Conversation
	var messages []byte
	if err := row.Scan(&conv.ID, &conv.UserID, &conv.EntryID, &messages, &conv.CreatedAt, &conv.UpdatedAt); err != nil {
		return nil, err
	}
	if len(messages) > 0 {
		if err := json.Unmarshal(messages, &conv.Messages); err != nil {
			return nil, fmt.Errorf("failed to unmarshal messages: %w", err)
		}
	}
	return &conv, nil
}
