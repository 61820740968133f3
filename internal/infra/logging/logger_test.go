package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tawada/grass-grower/internal/domain"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo}, // default
		{"", slog.LevelInfo},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseLevel(tt.input)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLogger_WritesToStderrAndFile(t *testing.T) {
	// Setup
	var stderr bytes.Buffer
	path := filepath.Join(t.TempDir(), "debug.log")
	logger := New(domain.LogConfig{Level: "info", File: path, MaxSizeMB: 1, MaxAgeDays: 1}, &stderr)

	// Execute
	logger.Info("cloned repository", "repo", "tawada/grass-grower")
	logger.Debug("hidden")
	require.NoError(t, logger.Close())

	// Verify
	assert.Contains(t, stderr.String(), "cloned repository")
	assert.Contains(t, stderr.String(), "repo=tawada/grass-grower")
	assert.NotContains(t, stderr.String(), "hidden")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "level=INFO")
	assert.Contains(t, string(content), "cloned repository")
}

func TestLogger_NoFile(t *testing.T) {
	var stderr bytes.Buffer
	logger := New(domain.LogConfig{Level: "debug"}, &stderr)

	logger.Debug("visible")

	assert.Contains(t, stderr.String(), "visible")
	assert.NoError(t, logger.Close())
}
