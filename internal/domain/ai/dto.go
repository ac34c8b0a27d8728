// internal/domain/ai/dto.go
package ai

// PromptRequest asks for a journaling prompt, optionally seeded with context.
type PromptRequest struct {
	Context string `json:"context"`
}

// ImproveTextRequest asks for an edited version of the given text.
type ImproveTextRequest struct {
	Text        string `json:"text" binding:"required"`
	Instruction string `json:"instruction"`
}

// ChatRequest sends one user message to the journaling companion.
type ChatRequest struct {
	Message string  `json:"message" binding:"required"`
	EntryID *string `json:"entry_id"`
}
