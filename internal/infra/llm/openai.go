package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	oaoption "github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"github.com/tawada/grass-grower/internal/domain"
)

type openAIProvider struct {
	client openai.Client
	model  string
}

// NewOpenAI creates a Gateway backed by the OpenAI chat completions API.
// baseURL may be empty to use the default endpoint.
func NewOpenAI(apiKey, model, baseURL string, jsonRetries int) (*Gateway, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY", domain.ErrMissingAPIKey)
	}
	opts := []oaoption.RequestOption{
		oaoption.WithAPIKey(apiKey),
		oaoption.WithMaxRetries(2),
	}
	if baseURL != "" {
		opts = append(opts, oaoption.WithBaseURL(baseURL))
	}
	return newGateway(&openAIProvider{
		client: openai.NewClient(opts...),
		model:  model,
	}, jsonRetries), nil
}

func (p *openAIProvider) complete(ctx context.Context, messages []domain.Message, jsonMode bool) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(p.model),
		Messages: toOpenAIMessages(messages),
	}
	if jsonMode {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: %w", errNoChoices)
	}
	return resp.Choices[0].Message.Content, nil
}

func toOpenAIMessages(messages []domain.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case domain.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case domain.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
