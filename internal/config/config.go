package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/rohankatakam/enhance-commits/internal/errors"
	"github.com/rohankatakam/enhance-commits/internal/summary"
)

// Supported language model providers
const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderCompatible = "compatible"
)

// Config holds all configuration settings
type Config struct {
	LLM     LLMConfig      `yaml:"llm" mapstructure:"llm"`
	GitHub  GitHubConfig   `yaml:"github" mapstructure:"github"`
	Limits  summary.Limits `yaml:"limits" mapstructure:"limits"`
	Git     GitConfig      `yaml:"git" mapstructure:"git"`
	Areas   []AreaRule     `yaml:"areas" mapstructure:"areas"`
	Project ProjectConfig  `yaml:"project" mapstructure:"project"`
	Log     LogConfig      `yaml:"log" mapstructure:"log"`
}

type LLMConfig struct {
	Provider     string  `yaml:"provider" mapstructure:"provider"` // gemini, openai, compatible
	Model        string  `yaml:"model" mapstructure:"model"`
	GeminiAPIKey string  `yaml:"gemini_api_key" mapstructure:"gemini_api_key"`
	OpenAIAPIKey string  `yaml:"openai_api_key" mapstructure:"openai_api_key"`
	BaseURL      string  `yaml:"base_url" mapstructure:"base_url"` // compatible provider only
	Temperature  float64 `yaml:"temperature" mapstructure:"temperature"`
	MaxTokens    int     `yaml:"max_tokens" mapstructure:"max_tokens"`
}

type GitHubConfig struct {
	Token     string `yaml:"token" mapstructure:"token"`
	RateLimit int    `yaml:"rate_limit" mapstructure:"rate_limit"` // Requests per second
	APIURL    string `yaml:"api_url" mapstructure:"api_url"`
}

type GitConfig struct {
	DefaultBranch string `yaml:"default_branch" mapstructure:"default_branch"`
	Remote        string `yaml:"remote" mapstructure:"remote"`
	Push          bool   `yaml:"push" mapstructure:"push"` // force-push after amending
}

// AreaRule is a user-defined glob that labels matching paths
type AreaRule struct {
	Match string `yaml:"match" mapstructure:"match"`
	Label string `yaml:"label" mapstructure:"label"`
}

type ProjectConfig struct {
	Name    string `yaml:"name" mapstructure:"name"`
	Context string `yaml:"context" mapstructure:"context"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // auto, text, json
	File   string `yaml:"file" mapstructure:"file"`
}

// DefaultModels maps each provider to the model used when none is configured
var DefaultModels = map[string]string{
	ProviderGemini:     "gemini-2.5-flash",
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderCompatible: "gpt-4o-mini",
}

// DefaultProjectName and DefaultProjectContext describe the project the
// built-in area mappings were written for.
const (
	DefaultProjectName    = "Social Stream Ninja"
	DefaultProjectContext = `* **Purpose:** Consolidates live social messaging streams (Twitch, YouTube, Facebook, etc.) for content creators.
* **Core Features:** Multi-platform chat aggregation, customizable chat overlay (for OBS/streaming), Text-to-Speech (TTS), bot commands & automation, API support (message ingest/egress, webhooks for donations like Stripe/Ko-Fi), theming, standalone desktop app, and browser extension.
* **Key Components:** ` + "`dock.html`" + ` (main dashboard/controller), ` + "`featured.html`" + ` (chat overlay), ` + "`sources/`" + ` directory (specific platform integrations), ` + "`custom.js`" + ` (user scripting), TTS functionality, API handling logic.
* **Technology Stack:** Primarily JavaScript, HTML, CSS, leveraging Browser Extension APIs, WebRTC (via VDO.Ninja), and potentially Electron for the standalone app.`
)

// Default returns default configuration
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:    ProviderGemini,
			Temperature: 0.4,
			MaxTokens:   1024,
		},
		GitHub: GitHubConfig{
			RateLimit: 5,
		},
		Limits: summary.DefaultLimits(),
		Git: GitConfig{
			DefaultBranch: "main",
			Remote:        "origin",
			Push:          true,
		},
		Project: ProjectConfig{
			Name:    DefaultProjectName,
			Context: DefaultProjectContext,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// Load loads configuration from .env files, an optional YAML file and the
// environment, in increasing order of precedence.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetConfigType("yaml")

	cfg := Default()
	setDefaults(v, cfg)

	v.SetEnvPrefix("ENHANCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".enhance-commits")
		v.AddConfigPath(".")
		if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".enhance-commits"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, errors.SeverityCritical, "failed to read config")
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, errors.SeverityCritical, "failed to unmarshal config")
	}

	applyEnvOverrides(cfg)
	applyKeyringFallback(cfg, NewKeyringManager())

	return cfg, nil
}

// setDefaults registers every leaf key so AutomaticEnv can override it,
// e.g. ENHANCE_LIMITS_MAX_DIFF_SIZE.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("llm.provider", cfg.LLM.Provider)
	v.SetDefault("llm.model", cfg.LLM.Model)
	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.openai_api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.temperature", cfg.LLM.Temperature)
	v.SetDefault("llm.max_tokens", cfg.LLM.MaxTokens)

	v.SetDefault("github.token", "")
	v.SetDefault("github.rate_limit", cfg.GitHub.RateLimit)
	v.SetDefault("github.api_url", "")

	v.SetDefault("limits.max_diff_size", cfg.Limits.MaxDiffSize)
	v.SetDefault("limits.max_files_to_sample", cfg.Limits.MaxFilesToSample)
	v.SetDefault("limits.sample_lines_per_file", cfg.Limits.SampleLinesPerFile)

	v.SetDefault("git.default_branch", cfg.Git.DefaultBranch)
	v.SetDefault("git.remote", cfg.Git.Remote)
	v.SetDefault("git.push", cfg.Git.Push)

	v.SetDefault("project.name", cfg.Project.Name)
	v.SetDefault("project.context", cfg.Project.Context)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.file", "")
}

// loadEnvFiles loads .env files in order of precedence. godotenv never
// overwrites variables that are already set, so the first file wins.
func loadEnvFiles() {
	for _, file := range []string{".env.local", ".env"} {
		if _, err := os.Stat(file); err == nil {
			_ = godotenv.Load(file)
		}
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		homeEnvFile := filepath.Join(homeDir, ".enhance-commits", ".env")
		if _, err := os.Stat(homeEnvFile); err == nil {
			_ = godotenv.Load(homeEnvFile)
		}
	}
}

// applyEnvOverrides applies the unprefixed variables CI workflows already export
func applyEnvOverrides(cfg *Config) {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.LLM.GeminiAPIKey = key
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.LLM.OpenAIAPIKey = key
	}
	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		cfg.LLM.Provider = strings.ToLower(provider)
	}
	if model := os.Getenv("LLM_MODEL"); model != "" {
		cfg.LLM.Model = model
	}
	if url := os.Getenv("LLM_BASE_URL"); url != "" {
		cfg.LLM.BaseURL = url
	}

	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		cfg.GitHub.Token = token
	}
	if rateLimit := os.Getenv("GITHUB_RATE_LIMIT"); rateLimit != "" {
		if rate, err := strconv.Atoi(rateLimit); err == nil {
			cfg.GitHub.RateLimit = rate
		}
	}
	if url := os.Getenv("GITHUB_API_URL"); url != "" {
		cfg.GitHub.APIURL = url
	}
}

// applyKeyringFallback fills secrets left empty by env and file from the OS
// keychain. Headless runners have no keychain and are skipped silently.
func applyKeyringFallback(cfg *Config, km *KeyringManager) {
	if cfg.LLM.GeminiAPIKey != "" && cfg.LLM.OpenAIAPIKey != "" && cfg.GitHub.Token != "" {
		return
	}
	if !km.IsAvailable() {
		return
	}

	if cfg.LLM.GeminiAPIKey == "" {
		if key, err := km.Get(ItemGeminiAPIKey); err == nil {
			cfg.LLM.GeminiAPIKey = key
		}
	}
	if cfg.LLM.OpenAIAPIKey == "" {
		if key, err := km.Get(ItemOpenAIAPIKey); err == nil {
			cfg.LLM.OpenAIAPIKey = key
		}
	}
	if cfg.GitHub.Token == "" {
		if token, err := km.Get(ItemGitHubToken); err == nil {
			cfg.GitHub.Token = token
		}
	}
}

// ModelName returns the configured model or the provider's default
func (c *Config) ModelName() string {
	if c.LLM.Model != "" {
		return c.LLM.Model
	}
	return DefaultModels[c.LLM.Provider]
}

// APIKey returns the key for the configured provider. The compatible
// provider reuses the OpenAI key.
func (c *Config) APIKey() string {
	if c.LLM.Provider == ProviderGemini {
		return c.LLM.GeminiAPIKey
	}
	return c.LLM.OpenAIAPIKey
}

// ClassifierRules turns the configured area globs into classifier rules
// evaluated after the built-in path mappings.
func (c *Config) ClassifierRules() []summary.Rule {
	extra := make([]summary.Rule, 0, len(c.Areas))
	for _, a := range c.Areas {
		extra = append(extra, summary.GlobRule(a.Match, summary.AreaLabel(a.Label)))
	}
	return summary.DefaultRules(summary.DefaultAreaMappings, extra...)
}

// Validate checks the settings needed to generate a message
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenAI:
	case ProviderCompatible:
		if c.LLM.BaseURL == "" {
			return errors.ConfigError("llm.base_url is required for the compatible provider")
		}
	default:
		return errors.ConfigErrorf("unknown llm provider %q (want gemini, openai or compatible)", c.LLM.Provider)
	}

	if c.APIKey() == "" {
		return errors.ConfigErrorf("no API key configured for provider %s", c.LLM.Provider).
			WithContext("env", apiKeyEnv(c.LLM.Provider))
	}

	if c.Limits.MaxDiffSize <= 0 || c.Limits.MaxFilesToSample <= 0 || c.Limits.SampleLinesPerFile <= 0 {
		return errors.ConfigErrorf("limits must be positive, got %+v", c.Limits)
	}

	for i, a := range c.Areas {
		if a.Match == "" || a.Label == "" {
			return errors.ConfigErrorf("areas[%d] needs both match and label", i)
		}
	}

	if c.Git.Remote == "" || c.Git.DefaultBranch == "" {
		return errors.ConfigError("git.remote and git.default_branch must be set")
	}

	return nil
}

func apiKeyEnv(provider string) string {
	if provider == ProviderGemini {
		return "GEMINI_API_KEY"
	}
	return "OPENAI_API_KEY"
}

// Save saves configuration to file. Secrets are never written.
func (c *Config) Save(path string) error {
	v := viper.New()
	v.SetConfigType("yaml")

	v.Set("llm.provider", c.LLM.Provider)
	v.Set("llm.model", c.LLM.Model)
	v.Set("llm.base_url", c.LLM.BaseURL)
	v.Set("llm.temperature", c.LLM.Temperature)
	v.Set("llm.max_tokens", c.LLM.MaxTokens)
	v.Set("github.rate_limit", c.GitHub.RateLimit)
	v.Set("github.api_url", c.GitHub.APIURL)
	v.Set("limits.max_diff_size", c.Limits.MaxDiffSize)
	v.Set("limits.max_files_to_sample", c.Limits.MaxFilesToSample)
	v.Set("limits.sample_lines_per_file", c.Limits.SampleLinesPerFile)
	v.Set("git.default_branch", c.Git.DefaultBranch)
	v.Set("git.remote", c.Git.Remote)
	v.Set("git.push", c.Git.Push)
	v.Set("areas", c.Areas)
	v.Set("project.name", c.Project.Name)
	v.Set("project.context", c.Project.Context)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
