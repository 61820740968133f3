package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tawada/grass-grower/internal/domain"
)

const anthropicMessage = `{
  "id": "msg_1",
  "type": "message",
  "role": "assistant",
  "model": "claude-sonnet-4-5",
  "content": [{"type": "text", "text": %q}],
  "stop_reason": "end_turn",
  "usage": {"input_tokens": 10, "output_tokens": 5}
}`

type anthropicRequest struct {
	System   []map[string]any `json:"system"`
	Messages []struct {
		Role    string           `json:"role"`
		Content []map[string]any `json:"content"`
	} `json:"messages"`
	Model     string `json:"model"`
	MaxTokens int    `json:"max_tokens"`
}

func TestAnthropic_GenerateText(t *testing.T) {
	var got anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "ak-test", r.Header.Get("X-Api-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, anthropicMessage, "A new README.")
	}))
	t.Cleanup(srv.Close)

	g, err := NewAnthropic("ak-test", "claude-sonnet-4-5", srv.URL+"/", 3)
	require.NoError(t, err)

	text, err := g.GenerateText(context.Background(), []domain.Message{
		domain.UserMessage("```main.py\nprint(1)\n```"),
		domain.SystemMessage("Generate README.md."),
	})

	require.NoError(t, err)
	assert.Equal(t, "A new README.", text)
	assert.Equal(t, "claude-sonnet-4-5", got.Model)
	assert.Equal(t, anthropicMaxTokens, got.MaxTokens)
	require.Len(t, got.System, 1)
	assert.Equal(t, "Generate README.md.", got.System[0]["text"])
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
}

func TestAnthropic_GenerateJSON(t *testing.T) {
	var got anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, anthropicMessage, "```json\n{\"file_path\": \"a.py\", \"before_code\": \"x\", \"after_code\": \"y\"}\n```")
	}))
	t.Cleanup(srv.Close)

	g, err := NewAnthropic("ak-test", "claude-sonnet-4-5", srv.URL+"/", 3)
	require.NoError(t, err)

	var mod domain.Modification
	require.NoError(t, g.GenerateJSON(context.Background(), []domain.Message{
		domain.UserMessage("issue"),
		domain.SystemMessage("rewrite"),
	}, &mod))

	assert.Equal(t, domain.Modification{FilePath: "a.py", BeforeCode: "x", AfterCode: "y"}, mod)
	require.Len(t, got.System, 2)
	assert.Contains(t, got.System[1]["text"], "JSON")
}

func TestToAnthropicMessages_EndsWithUserTurn(t *testing.T) {
	system, conversation := toAnthropicMessages([]domain.Message{
		domain.UserMessage("issue"),
		domain.AssistantMessage("Before:\nx\nAfter:\ny"),
		domain.SystemMessage("Output commit message."),
	})

	require.Len(t, system, 1)
	require.Len(t, conversation, 3)
	assert.Equal(t, "user", string(conversation[0].Role))
	assert.Equal(t, "assistant", string(conversation[1].Role))
	assert.Equal(t, "user", string(conversation[2].Role))
	assert.Equal(t, "Output commit message.", conversation[2].Content[0].OfText.Text)
}

func TestToAnthropicMessages_OnlySystem(t *testing.T) {
	_, conversation := toAnthropicMessages([]domain.Message{domain.SystemMessage("Summarize.")})

	require.Len(t, conversation, 1)
	assert.Equal(t, "user", string(conversation[0].Role))
}
