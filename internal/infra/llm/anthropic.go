package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	antoption "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/tawada/grass-grower/internal/domain"
)

const anthropicMaxTokens = 8192

type anthropicProvider struct {
	client anthropic.Client
	model  string
}

// NewAnthropic creates a Gateway backed by the Anthropic messages API.
// baseURL may be empty to use the default endpoint.
func NewAnthropic(apiKey, model, baseURL string, jsonRetries int) (*Gateway, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: ANTHROPIC_API_KEY", domain.ErrMissingAPIKey)
	}
	opts := []antoption.RequestOption{
		antoption.WithAPIKey(apiKey),
		antoption.WithMaxRetries(2),
	}
	if baseURL != "" {
		opts = append(opts, antoption.WithBaseURL(baseURL))
	}
	return newGateway(&anthropicProvider{
		client: anthropic.NewClient(opts...),
		model:  model,
	}, jsonRetries), nil
}

func (p *anthropicProvider) complete(ctx context.Context, messages []domain.Message, jsonMode bool) (string, error) {
	system, conversation := toAnthropicMessages(messages)
	if jsonMode {
		system = append(system, anthropic.TextBlockParam{Text: "Respond with a single JSON object and nothing else."})
	}

	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: anthropicMaxTokens,
		System:    system,
		Messages:  conversation,
	})
	if err != nil {
		return "", fmt.Errorf("anthropic: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}

// toAnthropicMessages moves system messages into the system prompt.
// The API requires the conversation to end with a user turn, so when it is
// empty or ends with the assistant, the last instruction is repeated as one.
func toAnthropicMessages(messages []domain.Message) ([]anthropic.TextBlockParam, []anthropic.MessageParam) {
	var (
		system       []anthropic.TextBlockParam
		conversation []anthropic.MessageParam
	)
	for _, m := range messages {
		switch m.Role {
		case domain.RoleSystem:
			system = append(system, anthropic.TextBlockParam{Text: m.Content})
		case domain.RoleAssistant:
			conversation = append(conversation, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			conversation = append(conversation, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	if n := len(conversation); n == 0 || conversation[n-1].Role == anthropic.MessageParamRoleAssistant {
		if instruction, ok := lastInstruction(messages); ok {
			conversation = append(conversation, anthropic.NewUserMessage(anthropic.NewTextBlock(instruction)))
		}
	}
	return system, conversation
}
