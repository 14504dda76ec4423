package usecases

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/lawpal/lawpal-go/internal/domain/entities"
	"github.com/lawpal/lawpal-go/internal/domain/ports"
)

// Generation defaults favoring consistency over creativity.
const (
	DefaultMaxTokens   = 700
	DefaultTemperature = 0.5

	systemMessage = "You are a helpful government assistant."

	// noContextPlaceholder stands in for the context block when retrieval
	// produced nothing.
	noContextPlaceholder = "No specific information found."

	// apologyResponse is the fixed user-facing answer when the language
	// model call fails.
	apologyResponse = "I'm sorry, but I encountered an issue generating a response."
)

// Generator composes the structured prompt and invokes the language model.
// LLM failures are absorbed into a fixed apology; Generate never errors.
type Generator struct {
	llm         ports.LLMService
	maxTokens   int
	temperature float32
}

// NewGenerator creates a Generator with injected dependencies.
func NewGenerator(llm ports.LLMService, maxTokens int, temperature float32) *Generator {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	if temperature <= 0 {
		temperature = DefaultTemperature
	}
	return &Generator{
		llm:         llm,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

// Generate produces the answer text for a query, grounded in the retrieved
// contexts and the conversation history so far.
func (g *Generator) Generate(ctx context.Context, query string, contexts []string, history []entities.TurnRecord, service entities.ServiceCategory) string {
	prompt := buildPrompt(query, contexts, history, service)

	answer, err := g.llm.Complete(ctx, systemMessage, prompt, g.maxTokens, g.temperature)
	if err != nil {
		log.Printf("[ERROR] generating response: %v", err)
		return apologyResponse
	}
	return strings.TrimSpace(answer)
}

// buildPrompt renders the persona preamble, the conversation history as
// "role: content" lines in original order, the joined context block (or the
// fixed placeholder), and the raw query.
func buildPrompt(query string, contexts []string, history []entities.TurnRecord, service entities.ServiceCategory) string {
	contextBlock := noContextPlaceholder
	if len(contexts) > 0 {
		contextBlock = strings.Join(contexts, "\n\n")
	}

	lines := make([]string, len(history))
	for i, rec := range history {
		lines[i] = fmt.Sprintf("%s: %s", rec.Role, rec.Content)
	}
	historyBlock := strings.Join(lines, "\n")

	name := service.DisplayName()

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a sophisticated AI legal assistant specializing in Indian %s Services. Your objective is to provide precise, judicially relevant responses strictly within the scope of Indian law and applicable regulations.\n\n", name)
	sb.WriteString("Ensure 100% clarity on the user's query using available context and conversation history.\n\n")
	fmt.Fprintf(&sb, "Respond strictly within the framework of Indian %s laws, rules, and judicial precedents. If insufficient context is available, refer only to verified Indian government laws, schemes, or notifications.\n\n", name)
	sb.WriteString("Avoid speculation or general knowledge. Do not provide personal opinions or unverified interpretations under any circumstance.\n\n")
	sb.WriteString("For queries involving complex legal analysis or calculations:\n\n")
	sb.WriteString("Proceed only if supported by explicit legal context.\n\n")
	sb.WriteString("Provide a step-by-step, statute-based explanation.\n\n")
	sb.WriteString("Clearly state when the matter requires consultation with a licensed Indian legal professional.\n\n")
	sb.WriteString("Maintain a professional, factual, and concise tone. Do not use informal language, emotions, or filler content.\n\n")
	sb.WriteString("Exclude all irrelevant or out-of-context details.\n\n")
	fmt.Fprintf(&sb, "Your sole objective is to deliver clear, compliant, and legally sound information related to Indian %s Services.\n\n", name)
	fmt.Fprintf(&sb, "Conversation History:\n%s\n\n", historyBlock)
	fmt.Fprintf(&sb, "Context:\n%s\n\n", contextBlock)
	fmt.Fprintf(&sb, "Query:\n%s\n\nAnswer:\n", query)
	return sb.String()
}
