// internal/service/ai/groq.go
package ai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"journal-service/internal/domain/ai"
)

// GroqConfig configures the upstream completion provider. The API is
// OpenAI-compatible, so BaseURL can point at any compatible endpoint.
type GroqConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GroqClient struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

func NewGroqClient(cfg GroqConfig) *GroqClient {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.groq.com/openai/v1"
	}
	model := cfg.Model
	if model == "" {
		model = "llama-3.3-70b-versatile"
	}
	return &GroqClient{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// Configured reports whether an API key is present. Callers surface the
// unconfigured state as a service error instead of issuing doomed requests.
func (c *GroqClient) Configured() bool {
	return c.apiKey != ""
}

type completionRequest struct {
	Model       string       `json:"model"`
	Messages    []ai.Message `json:"messages"`
	Temperature float64      `json:"temperature"`
	MaxTokens   int          `json:"max_tokens"`
	Stream      bool         `json:"stream,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type completionChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// Complete performs a non-streaming chat completion and returns the
// assistant's content.
func (c *GroqClient) Complete(ctx context.Context, messages []ai.Message, temperature float64, maxTokens int) (string, error) {
	resp, err := c.post(ctx, messages, temperature, maxTokens, false)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("groq: decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("groq: empty completion")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

// Stream starts a streaming chat completion. The returned stream must be
// closed by the caller.
func (c *GroqClient) Stream(ctx context.Context, messages []ai.Message, temperature float64, maxTokens int) (*CompletionStream, error) {
	resp, err := c.post(ctx, messages, temperature, maxTokens, true)
	if err != nil {
		return nil, err
	}
	return &CompletionStream{reader: bufio.NewReader(resp.Body), body: resp.Body}, nil
}

func (c *GroqClient) post(ctx context.Context, messages []ai.Message, temperature float64, maxTokens int, stream bool) (*http.Response, error) {
	payload := completionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Stream:      stream,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("groq: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("groq: request failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("groq: status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return resp, nil
}

// CompletionStream yields text deltas from an SSE completion stream.
type CompletionStream struct {
	reader *bufio.Reader
	body   io.ReadCloser
	closed bool
}

// NewCompletionStream wraps an SSE body in a CompletionStream.
func NewCompletionStream(body io.ReadCloser) *CompletionStream {
	return &CompletionStream{reader: bufio.NewReader(body), body: body}
}

// Next returns the next content delta. ok is false once the stream is done.
func (s *CompletionStream) Next() (delta string, ok bool, err error) {
	if s.closed {
		return "", false, nil
	}
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.Close()
				return "", false, nil
			}
			return "", false, err
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(line[len("data:"):])
		if data == "[DONE]" {
			s.Close()
			return "", false, nil
		}

		var chunk completionChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			continue
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		if delta := chunk.Choices[0].Delta.Content; delta != "" {
			return delta, true, nil
		}
	}
}

func (s *CompletionStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.body.Close()
}
