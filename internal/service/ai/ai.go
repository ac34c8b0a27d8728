// internal/service/ai/ai.go
package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"journal-service/internal/domain/ai"
	"journal-service/internal/pkg/apierror"
	"journal-service/internal/repository/postgres"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	promptSystem = "You are a thoughtful journaling companion. Generate a single reflective journaling prompt. Keep it to one or two sentences, open-ended and personal. Respond with the prompt only."

	improveSystem = "You are a writing assistant for a personal journal. Improve the text the user provides while preserving their voice and meaning. Respond with the improved text only."

	chatSystem = "You are a warm, supportive journaling companion. Help the user reflect on their thoughts and feelings. Be concise and ask at most one gentle follow-up question."

	// Turns of prior conversation replayed into each chat completion.
	chatHistoryTurns = 10
)

// Completer abstracts the upstream completion provider.
type Completer interface {
	Configured() bool
	Complete(ctx context.Context, messages []ai.Message, temperature float64, maxTokens int) (string, error)
	Stream(ctx context.Context, messages []ai.Message, temperature float64, maxTokens int) (*CompletionStream, error)
}

var _ Completer = (*GroqClient)(nil)

// ConversationStore persists chat history.
type ConversationStore interface {
	FindLatest(ctx context.Context, userID string) (*ai.Conversation, error)
	Create(ctx context.Context, conv *ai.Conversation) error
	Update(ctx context.Context, conv *ai.Conversation) error
	History(ctx context.Context, userID string, limit int) ([]*ai.Conversation, error)
	DeleteAll(ctx context.Context, userID string) error
}

var _ ConversationStore = (*postgres.ConversationRepository)(nil)

type AIService struct {
	completer     Completer
	conversations ConversationStore
	cache         *redis.Client
	logger        *zap.Logger
}

func NewAIService(completer Completer, conversations ConversationStore, cache *redis.Client, logger *zap.Logger) *AIService {
	return &AIService{
		completer:     completer,
		conversations: conversations,
		cache:         cache,
		logger:        logger,
	}
}

// GeneratePrompt returns the user's journaling prompt for the day. The first
// request of the day hits the provider; subsequent requests are served from
// redis until midnight UTC.
func (s *AIService) GeneratePrompt(ctx context.Context, userID, promptContext string) (string, error) {
	if !s.completer.Configured() {
		return "", apierror.AIService("")
	}

	key := fmt.Sprintf("ai:prompt:%s:%s", userID, time.Now().UTC().Format("2006-01-02"))
	if promptContext == "" && s.cache != nil {
		if cached, err := s.cache.Get(ctx, key).Result(); err == nil && cached != "" {
			return cached, nil
		}
	}

	userMsg := "Give me a journaling prompt for today."
	if promptContext != "" {
		userMsg = fmt.Sprintf("Give me a journaling prompt for today. Context about me: %s", promptContext)
	}

	prompt, err := s.completer.Complete(ctx, []ai.Message{
		{Role: "system", Content: promptSystem},
		{Role: "user", Content: userMsg},
	}, 0.9, 150)
	if err != nil {
		s.logger.Warn("prompt generation failed", zap.Error(err))
		return "", apierror.AIService("")
	}

	if promptContext == "" && s.cache != nil {
		if err := s.cache.Set(ctx, key, prompt, untilMidnightUTC()).Err(); err != nil {
			s.logger.Warn("prompt cache write failed", zap.Error(err))
		}
	}
	return prompt, nil
}

func untilMidnightUTC() time.Duration {
	now := time.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	return midnight.Sub(now)
}

// ImproveText rewrites journal text per an optional instruction.
func (s *AIService) ImproveText(ctx context.Context, text, instruction string) (string, error) {
	if !s.completer.Configured() {
		return "", apierror.AIService("")
	}

	userMsg := text
	if instruction != "" {
		userMsg = fmt.Sprintf("Instruction: %s\n\nText:\n%s", instruction, text)
	}

	improved, err := s.completer.Complete(ctx, []ai.Message{
		{Role: "system", Content: improveSystem},
		{Role: "user", Content: userMsg},
	}, 0.4, 2048)
	if err != nil {
		s.logger.Warn("improve-text failed", zap.Error(err))
		return "", apierror.AIService("")
	}
	return improved, nil
}

// Chat streams a companion reply, invoking onDelta for each content chunk,
// and persists the exchange to the user's conversation. The full reply is
// returned once the stream completes.
func (s *AIService) Chat(ctx context.Context, userID, message string, entryID *string, onDelta func(delta string) error) (string, error) {
	if !s.completer.Configured() {
		return "", apierror.AIService("")
	}

	conv, err := s.conversations.FindLatest(ctx, userID)
	if err != nil {
		return "", err
	}

	messages := []ai.Message{{Role: "system", Content: chatSystem}}
	if conv != nil {
		history := conv.Messages
		if len(history) > chatHistoryTurns*2 {
			history = history[len(history)-chatHistoryTurns*2:]
		}
		messages = append(messages, history...)
	}
	messages = append(messages, ai.Message{Role: "user", Content: message})

	stream, err := s.completer.Stream(ctx, messages, 0.7, 1024)
	if err != nil {
		s.logger.Warn("chat stream failed to start", zap.Error(err))
		return "", apierror.AIService("")
	}
	defer stream.Close()

	var reply strings.Builder
	for {
		delta, ok, err := stream.Next()
		if err != nil {
			s.logger.Warn("chat stream broke", zap.Error(err))
			return "", apierror.AIService("")
		}
		if !ok {
			break
		}
		reply.WriteString(delta)
		if onDelta != nil {
			if err := onDelta(delta); err != nil {
				return reply.String(), err
			}
		}
	}

	s.persistExchange(ctx, userID, conv, entryID, message, reply.String())
	return reply.String(), nil
}

// persistExchange is best-effort: a storage failure never fails the chat
// that already streamed to the client.
func (s *AIService) persistExchange(ctx context.Context, userID string, conv *ai.Conversation, entryID *string, userMsg, reply string) {
	turn := []ai.Message{
		{Role: "user", Content: userMsg},
		{Role: "assistant", Content: reply},
	}

	var err error
	if conv == nil {
		err = s.conversations.Create(ctx, &ai.Conversation{
			UserID:   userID,
			EntryID:  entryID,
			Messages: turn,
		})
	} else {
		conv.Messages = append(conv.Messages, turn...)
		if entryID != nil {
			conv.EntryID = entryID
		}
		err = s.conversations.Update(ctx, conv)
	}
	if err != nil {
		s.logger.Warn("conversation persist failed", zap.String("user_id", userID), zap.Error(err))
	}
}

// ConversationHistory lists the user's recent conversations.
func (s *AIService) ConversationHistory(ctx context.Context, userID string, limit int) ([]*ai.Conversation, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	convs, err := s.conversations.History(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if convs == nil {
		convs = []*ai.Conversation{}
	}
	return convs, nil
}

// ClearHistory deletes all conversations for the user.
func (s *AIService) ClearHistory(ctx context.Context, userID string) error {
	return s.conversations.DeleteAll(ctx, userID)
}
