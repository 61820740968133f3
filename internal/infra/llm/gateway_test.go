package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tawada/grass-grower/internal/domain"
)

// scriptedProvider returns its replies in order.
type scriptedProvider struct {
	err      error
	replies  []string
	calls    int
	jsonMode []bool
}

func (p *scriptedProvider) complete(_ context.Context, _ []domain.Message, jsonMode bool) (string, error) {
	p.calls++
	p.jsonMode = append(p.jsonMode, jsonMode)
	if p.err != nil {
		return "", p.err
	}
	reply := p.replies[0]
	p.replies = p.replies[1:]
	return reply, nil
}

func TestGateway_GenerateText(t *testing.T) {
	p := &scriptedProvider{replies: []string{"hello"}}
	g := newGateway(p, 3)

	text, err := g.GenerateText(context.Background(), []domain.Message{domain.UserMessage("hi")})

	require.NoError(t, err)
	assert.Equal(t, "hello", text)
	assert.Equal(t, []bool{false}, p.jsonMode)
}

func TestGateway_GenerateText_Empty(t *testing.T) {
	g := newGateway(&scriptedProvider{replies: []string{"  \n"}}, 3)

	_, err := g.GenerateText(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrEmptyCompletion)
}

func TestGateway_GenerateJSON_RetriesUntilValid(t *testing.T) {
	p := &scriptedProvider{replies: []string{
		"not json",
		"```json\n{\"file_path\": \"foo.py\", \"before_code\": \"pass\", \"after_code\": \"return 1\"}\n```",
	}}
	g := newGateway(p, 3)

	var mod domain.Modification
	err := g.GenerateJSON(context.Background(), nil, &mod)

	require.NoError(t, err)
	assert.Equal(t, 2, p.calls)
	assert.Equal(t, domain.Modification{FilePath: "foo.py", BeforeCode: "pass", AfterCode: "return 1"}, mod)
	assert.Equal(t, []bool{true, true}, p.jsonMode)
}

func TestGateway_GenerateJSON_RetryStartsFromZeroValue(t *testing.T) {
	// The first reply sets file_path before failing on a type mismatch.
	p := &scriptedProvider{replies: []string{
		`{"file_path": "secret.py", "before_code": ["x"]}`,
		`{"before_code": "pass", "after_code": "return 1"}`,
	}}
	g := newGateway(p, 3)

	var mod domain.Modification
	err := g.GenerateJSON(context.Background(), nil, &mod)

	require.NoError(t, err)
	assert.Equal(t, 2, p.calls)
	assert.Equal(t, domain.Modification{BeforeCode: "pass", AfterCode: "return 1"}, mod)
}

func TestGateway_GenerateJSON_FailureLeavesOutUntouched(t *testing.T) {
	p := &scriptedProvider{replies: []string{`{"file_path": "secret.py", "before_code": 1}`}}
	g := newGateway(p, 1)

	mod := domain.Modification{FilePath: "keep.py"}
	err := g.GenerateJSON(context.Background(), nil, &mod)

	assert.ErrorIs(t, err, domain.ErrLLMJSONParse)
	assert.Equal(t, domain.Modification{FilePath: "keep.py"}, mod)
}

func TestGateway_GenerateJSON_RequiresPointer(t *testing.T) {
	p := &scriptedProvider{replies: []string{"{}"}}
	g := newGateway(p, 3)

	var mod domain.Modification
	err := g.GenerateJSON(context.Background(), nil, mod)

	require.Error(t, err)
	assert.Equal(t, 0, p.calls)
}

func TestGateway_GenerateJSON_GivesUp(t *testing.T) {
	p := &scriptedProvider{replies: []string{"a", "b", "c", "d"}}
	g := newGateway(p, 3)

	var out map[string]any
	err := g.GenerateJSON(context.Background(), nil, &out)

	assert.ErrorIs(t, err, domain.ErrLLMJSONParse)
	assert.Equal(t, 3, p.calls)
}

func TestGateway_GenerateJSON_TransportErrorNotRetried(t *testing.T) {
	boom := errors.New("connection reset")
	p := &scriptedProvider{err: boom}
	g := newGateway(p, 3)

	var out map[string]any
	err := g.GenerateJSON(context.Background(), nil, &out)

	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrLLMJSONParse)
	assert.Equal(t, 1, p.calls)
}

func TestNewGateway_MinimumOneAttempt(t *testing.T) {
	assert.Equal(t, 1, newGateway(&scriptedProvider{}, 0).jsonRetries)
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a": 1}`, `{"a": 1}`},
		{"whitespace", "\n  {\"a\": 1}\n", `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"prose around fence", "Here you go:\n```json\n{\"a\": 1}\n```\nDone.", `{"a": 1}`},
		{"prose around object", `Sure! {"a": {"b": 2}} hope it helps`, `{"a": {"b": 2}}`},
		{"array", `[1, 2]`, `[1, 2]`},
		{"no json", "nothing here", "nothing here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSON(tt.in))
		})
	}
}

func TestNew_SelectsProvider(t *testing.T) {
	cfg := domain.NewDefaultConfig()
	cfg.OpenAIAPIKey = "sk-test"
	g, err := New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &openAIProvider{}, g.provider)

	cfg.LLMProvider = domain.ProviderAnthropic
	cfg.AnthropicAPIKey = "ak-test"
	g, err = New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &anthropicProvider{}, g.provider)

	cfg.LLMProvider = "llama"
	_, err = New(cfg)
	assert.ErrorIs(t, err, domain.ErrUnknownProvider)
}

func TestNew_MissingAPIKey(t *testing.T) {
	cfg := domain.NewDefaultConfig()
	_, err := New(cfg)
	assert.ErrorIs(t, err, domain.ErrMissingAPIKey)

	cfg.LLMProvider = domain.ProviderAnthropic
	_, err = New(cfg)
	assert.ErrorIs(t, err, domain.ErrMissingAPIKey)
}
