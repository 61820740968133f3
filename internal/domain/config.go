package domain

// Config holds the resolved application configuration.
// It is built once at startup and treated as read-only afterwards.
type Config struct {
	RepositoryPath      string    `json:"repository_path" toml:"repository_path" yaml:"repository_path"`
	OpenAIModelName     string    `json:"openai_model_name" toml:"openai_model_name" yaml:"openai_model_name"`
	AnthropicModelName  string    `json:"anthropic_model_name" toml:"anthropic_model_name" yaml:"anthropic_model_name"`
	LLMProvider         string    `json:"llm_provider" toml:"llm_provider" yaml:"llm_provider"`
	DefaultRepo         string    `json:"default_repo" toml:"default_repo" yaml:"default_repo"`
	DefaultBranch       string    `json:"default_branch" toml:"default_branch" yaml:"default_branch"`
	CloneURLPrefix      string    `json:"clone_url_prefix" toml:"clone_url_prefix" yaml:"clone_url_prefix"`
	GitHubBackend       string    `json:"github_backend" toml:"github_backend" yaml:"github_backend"`
	OpenAIAPIKey        string    `json:"-" toml:"-" yaml:"-"`
	OpenAIBaseURL       string    `json:"-" toml:"-" yaml:"-"`
	AnthropicAPIKey     string    `json:"-" toml:"-" yaml:"-"`
	GitHubToken         string    `json:"-" toml:"-" yaml:"-"`
	ExcludeDirs         []string  `json:"exclude_dirs" toml:"exclude_dirs" yaml:"exclude_dirs"`
	Warnings            []string  `json:"-" toml:"-" yaml:"-"`
	Log                 LogConfig `json:"log" toml:"log" yaml:"log"`
	JSONRetries         int       `json:"json_retries" toml:"json_retries" yaml:"json_retries"`
	ReportPatchFailures bool      `json:"report_patch_failures" toml:"report_patch_failures" yaml:"report_patch_failures"`
}

// LogConfig holds logging settings from the "log" section.
type LogConfig struct {
	Level      string `json:"level" toml:"level" yaml:"level"`                      // debug, info, warn, error
	File       string `json:"file" toml:"file" yaml:"file"`                         // Rotating debug log path
	MaxSizeMB  int    `json:"max_size_mb" toml:"max_size_mb" yaml:"max_size_mb"`    // Rotate after this size
	MaxAgeDays int    `json:"max_age_days" toml:"max_age_days" yaml:"max_age_days"` // Delete rotated files older than this
}

// LLM providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// GitHub backends.
const (
	BackendGH  = "gh"
	BackendAPI = "api"
)

// Default configuration values.
const (
	DefaultConfigPath         = "config.json"
	DefaultRepositoryPath     = "downloads"
	DefaultOpenAIModelName    = "gpt-4"
	DefaultAnthropicModelName = "claude-sonnet-4-5"
	DefaultRepoName           = "tawada/grass-grower"
	DefaultBranchName         = "main"
	DefaultCloneURLPrefix     = "git@github.com:"
	DefaultJSONRetries        = 3
	DefaultLogLevel           = "info"
	DefaultLogFile            = "debug.log"
	DefaultLogMaxSizeMB       = 100
	DefaultLogMaxAgeDays      = 10
)

// NewDefaultConfig returns a new Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		RepositoryPath:      DefaultRepositoryPath,
		OpenAIModelName:     DefaultOpenAIModelName,
		AnthropicModelName:  DefaultAnthropicModelName,
		LLMProvider:         ProviderOpenAI,
		DefaultRepo:         DefaultRepoName,
		DefaultBranch:       DefaultBranchName,
		CloneURLPrefix:      DefaultCloneURLPrefix,
		GitHubBackend:       BackendGH,
		JSONRetries:         DefaultJSONRetries,
		ReportPatchFailures: true,
		Log: LogConfig{
			Level:      DefaultLogLevel,
			File:       DefaultLogFile,
			MaxSizeMB:  DefaultLogMaxSizeMB,
			MaxAgeDays: DefaultLogMaxAgeDays,
		},
	}
}

// EffectiveExcludeDirs returns the excluded directory names.
// When none are configured, the defaults include the repository storage directory.
func (c *Config) EffectiveExcludeDirs() []string {
	if len(c.ExcludeDirs) > 0 {
		return c.ExcludeDirs
	}
	return []string{"__pycache__", ".git", c.RepositoryPath}
}
