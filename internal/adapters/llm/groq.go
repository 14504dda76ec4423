// Package llm provides the language-model adapter.
// Clean Architecture: Adapter implementing ports.LLMService.
// Groq exposes an OpenAI-compatible chat completions API, so the client
// library works against it with a custom base URL.
package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultBaseURL is Groq's OpenAI-compatible endpoint.
const DefaultBaseURL = "https://api.groq.com/openai/v1"

// DefaultModel is the chat model used for answer generation.
const DefaultModel = "llama-3.3-70b-versatile"

// GroqAdapter implements ports.LLMService via chat completions.
type GroqAdapter struct {
	client *openai.Client
	model  string
}

// NewGroqAdapter creates a Groq LLM adapter.
func NewGroqAdapter(baseURL, apiKey, model string) *GroqAdapter {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &GroqAdapter{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Complete sends a system plus user message pair and returns the generated text.
func (a *GroqAdapter) Complete(ctx context.Context, system, user string, maxTokens int, temperature float32) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("calling chat completions: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completions returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
