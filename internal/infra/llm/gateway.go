// Package llm implements domain.LLM over the OpenAI and Anthropic APIs.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/chainguard-dev/clog"
	"github.com/tawada/grass-grower/internal/domain"
)

// completer sends one conversation to a model and returns the reply text.
type completer interface {
	complete(ctx context.Context, messages []domain.Message, jsonMode bool) (string, error)
}

// Ensure Gateway implements domain.LLM.
var _ domain.LLM = (*Gateway)(nil)

// Gateway implements domain.LLM on top of a provider.
type Gateway struct {
	provider    completer
	jsonRetries int
}

func newGateway(p completer, jsonRetries int) *Gateway {
	if jsonRetries < 1 {
		jsonRetries = 1
	}
	return &Gateway{provider: p, jsonRetries: jsonRetries}
}

// New creates the Gateway selected by cfg.LLMProvider.
// Returns domain.ErrMissingAPIKey when the provider's key is not set.
func New(cfg *domain.Config) (*Gateway, error) {
	switch cfg.LLMProvider {
	case domain.ProviderOpenAI, "":
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModelName, cfg.OpenAIBaseURL, cfg.JSONRetries)
	case domain.ProviderAnthropic:
		return NewAnthropic(cfg.AnthropicAPIKey, cfg.AnthropicModelName, "", cfg.JSONRetries)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownProvider, cfg.LLMProvider)
	}
}

// GenerateText returns the model's reply to messages.
func (g *Gateway) GenerateText(ctx context.Context, messages []domain.Message) (string, error) {
	text, err := g.provider.complete(ctx, messages, false)
	if err != nil {
		return "", fmt.Errorf("generate text: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", domain.ErrEmptyCompletion
	}
	return text, nil
}

// GenerateJSON asks for a JSON object and decodes it into out, which must be
// a non-nil pointer. A reply that does not decode is retried up to the
// configured count. Transport errors are returned immediately.
//
// Every attempt decodes into a zero value, so out only ever holds the fields
// of the reply that was accepted.
func (g *Gateway) GenerateJSON(ctx context.Context, messages []domain.Message, out any) error {
	target := reflect.ValueOf(out)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return fmt.Errorf("generate json: out must be a non-nil pointer, got %T", out)
	}

	log := clog.FromContext(ctx)
	var lastErr error
	for attempt := 1; attempt <= g.jsonRetries; attempt++ {
		text, err := g.provider.complete(ctx, messages, true)
		if err != nil {
			return fmt.Errorf("generate json: %w", err)
		}
		fresh := reflect.New(target.Elem().Type())
		if err := json.Unmarshal([]byte(ExtractJSON(text)), fresh.Interface()); err != nil {
			lastErr = err
			log.Warn("llm reply is not valid json", "attempt", attempt, "max_attempts", g.jsonRetries, "error", err)
			continue
		}
		target.Elem().Set(fresh.Elem())
		return nil
	}
	return fmt.Errorf("%w after %d attempts: %w", domain.ErrLLMJSONParse, g.jsonRetries, lastErr)
}

// ExtractJSON returns the JSON document inside a reply that may wrap it in a
// markdown code fence or surround it with prose.
func ExtractJSON(text string) string {
	text = strings.TrimSpace(text)
	if start := strings.Index(text, "```"); start >= 0 {
		body := text[start+3:]
		if nl := strings.IndexByte(body, '\n'); nl >= 0 {
			body = body[nl+1:]
		}
		if end := strings.Index(body, "```"); end >= 0 {
			return strings.TrimSpace(body[:end])
		}
	}
	if strings.HasPrefix(text, "{") || strings.HasPrefix(text, "[") {
		return text
	}
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}

// lastInstruction returns the content of the last system message.
func lastInstruction(messages []domain.Message) (string, bool) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == domain.RoleSystem {
			return messages[i].Content, true
		}
	}
	return "", false
}

var errNoChoices = errors.New("response has no choices")
