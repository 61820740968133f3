// Package config provides configuration loading functionality.
//
// Values are resolved as defaults <- config file <- environment. The file
// format follows the extension: .json, .toml, .yaml or .yml.
package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/sethvargo/go-envconfig"
	"github.com/tawada/grass-grower/internal/domain"
	"gopkg.in/yaml.v3"
)

// envOverrides lists the environment variables that override file values.
// Empty values leave the file value in place.
type envOverrides struct {
	ConfigPath         string `env:"CONFIG_PATH,default=config.json"`
	RepositoryPath     string `env:"REPOSITORY_PATH"`
	OpenAIModelName    string `env:"OPENAI_MODEL_NAME"`
	AnthropicModelName string `env:"ANTHROPIC_MODEL"`
	LLMProvider        string `env:"LLM_PROVIDER"`
	DefaultRepo        string `env:"DEFAULT_REPO"`
	GitHubBackend      string `env:"GITHUB_BACKEND"`
	OpenAIAPIKey       string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL      string `env:"OPENAI_BASE_URL"`
	AnthropicAPIKey    string `env:"ANTHROPIC_API_KEY"`
	GitHubToken        string `env:"GITHUB_TOKEN"`
	JSONRetries        string `env:"JSON_RETRIES"`
	LogLevel           string `env:"LOG_LEVEL"`
	LogFile            string `env:"LOG_FILE"`
}

// knownKeys are the top-level keys accepted in a config file.
var knownKeys = map[string]bool{
	"repository_path":       true,
	"exclude_dirs":          true,
	"openai_model_name":     true,
	"anthropic_model_name":  true,
	"llm_provider":          true,
	"default_repo":          true,
	"default_branch":        true,
	"clone_url_prefix":      true,
	"github_backend":        true,
	"json_retries":          true,
	"report_patch_failures": true,
	"log":                   true,
}

// Loader loads configuration from a file and the environment.
type Loader struct {
	lookuper envconfig.Lookuper
}

// NewLoader creates a Loader reading the process environment.
func NewLoader() *Loader {
	return &Loader{lookuper: envconfig.OsLookuper()}
}

// NewLoaderWithLookuper creates a Loader with a custom environment source.
// This is useful for testing.
func NewLoaderWithLookuper(l envconfig.Lookuper) *Loader {
	return &Loader{lookuper: l}
}

// LoadDotEnv loads variables from a .env file into the process environment.
// A missing file is not an error. Existing variables are not overwritten.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load returns the resolved configuration.
// A missing config file yields defaults with a warning; a malformed file is an error.
func (l *Loader) Load(ctx context.Context) (*domain.Config, error) {
	var env envOverrides
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &env,
		Lookuper: l.lookuper,
	}); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	cfg := domain.NewDefaultConfig()
	if err := loadFile(env.ConfigPath, cfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("config file %s not found, using defaults", env.ConfigPath))
	}

	if err := applyEnv(cfg, env); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile decodes path into cfg, leaving absent keys untouched.
func loadFile(path string, cfg *domain.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var (
		unmarshal func([]byte, any) error
		format    string
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		unmarshal, format = toml.Unmarshal, "TOML"
	case ".yaml", ".yml":
		unmarshal, format = yaml.Unmarshal, "YAML"
	default:
		unmarshal, format = json.Unmarshal, "JSON"
	}

	var raw map[string]any
	if err := unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode %s from %s: %w", format, path, err)
	}
	if err := unmarshal(data, cfg); err != nil {
		return fmt.Errorf("decode %s from %s: %w", format, path, err)
	}

	var warnings []string
	for key := range raw {
		if !knownKeys[key] {
			warnings = append(warnings, fmt.Sprintf("unknown key in %s: %s", path, key))
		}
	}
	sort.Strings(warnings)
	cfg.Warnings = append(cfg.Warnings, warnings...)
	return nil
}

func applyEnv(cfg *domain.Config, env envOverrides) error {
	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&cfg.RepositoryPath, env.RepositoryPath)
	override(&cfg.OpenAIModelName, env.OpenAIModelName)
	override(&cfg.AnthropicModelName, env.AnthropicModelName)
	override(&cfg.LLMProvider, env.LLMProvider)
	override(&cfg.DefaultRepo, env.DefaultRepo)
	override(&cfg.GitHubBackend, env.GitHubBackend)
	override(&cfg.Log.Level, env.LogLevel)
	override(&cfg.Log.File, env.LogFile)

	cfg.OpenAIAPIKey = env.OpenAIAPIKey
	cfg.OpenAIBaseURL = env.OpenAIBaseURL
	cfg.AnthropicAPIKey = env.AnthropicAPIKey
	cfg.GitHubToken = env.GitHubToken

	if env.JSONRetries != "" {
		n, err := strconv.Atoi(env.JSONRetries)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid JSON_RETRIES %q: must be a positive integer", env.JSONRetries)
		}
		cfg.JSONRetries = n
	}
	return nil
}
