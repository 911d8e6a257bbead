package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	domainErrors "github.com/prmate/prmate/internal/errors"
)

const (
	defaultConfigFile = ".prmate.toml"
	defaultLang       = "en"
)

type (
	Config struct {
		GitProvider string       `toml:"git_provider"`
		Language    string       `toml:"language"`
		GitHub      GitHubConfig `toml:"github"`
		AI          AIConfig     `toml:"ai"`
		Review      ReviewConfig `toml:"pr_reviewer"`
	}

	GitHubConfig struct {
		Token string `toml:"-"`
	}

	AIConfig struct {
		Provider string       `toml:"provider"`
		OpenAI   OpenAIConfig `toml:"openai"`
		Gemini   GeminiConfig `toml:"gemini"`
	}

	OpenAIConfig struct {
		APIKey     string `toml:"-"`
		APIType    string `toml:"api_type"`
		APIVersion string `toml:"api_version"`
		APIBase    string `toml:"api_base"`
		Deployment string `toml:"deployment"`
		Model      string `toml:"model"`
	}

	GeminiConfig struct {
		APIKey string `toml:"-"`
		Model  string `toml:"model"`
	}

	// ReviewConfig mirrors the pr_reviewer tunables that shape review prompts.
	ReviewConfig struct {
		EnableSecurityLabels  bool   `toml:"enable_review_labels_security"`
		EnableEffortLabels    bool   `toml:"enable_review_labels_effort"`
		RequireScoreReview    bool   `toml:"require_score_review"`
		RequireTestsReview    bool   `toml:"require_tests_review"`
		RequireSecurityReview bool   `toml:"require_security_review"`
		RequireFocusedReview  bool   `toml:"require_focused_review"`
		ExtraInstructions     string `toml:"extra_instructions"`
		PublishDescription    bool   `toml:"publish_description"`
		MaxDiffChars          int    `toml:"max_diff_chars"`
	}
)

// Load builds the configuration from an optional .env file, an optional
// TOML config file, and the process environment. Environment variables
// always win over file values.
func Load(configPath string) (*Config, error) {
	// Missing .env is fine, the environment may already be populated
	_ = godotenv.Load()

	cfg := defaultConfig()

	if configPath == "" {
		configPath = defaultConfigFile
	}
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file %s: %w", configPath, err)
		}
	}

	applyEnv(cfg)

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		GitProvider: "github",
		Language:    defaultLang,
		AI: AIConfig{
			Provider: "openai",
			OpenAI: OpenAIConfig{
				APIType: "openai",
				Model:   "gpt-4o",
			},
			Gemini: GeminiConfig{
				Model: "gemini-2.5-flash",
			},
		},
		Review: ReviewConfig{
			EnableSecurityLabels:  true,
			EnableEffortLabels:    true,
			RequireScoreReview:    false,
			RequireTestsReview:    true,
			RequireSecurityReview: true,
			RequireFocusedReview:  true,
			MaxDiffChars:          120000,
		},
	}
}

func applyEnv(cfg *Config) {
	setString(&cfg.GitProvider, "GIT_PROVIDER")
	setString(&cfg.Language, "PRMATE_LANG")

	setString(&cfg.GitHub.Token, "GITHUB_USER_TOKEN")

	setString(&cfg.AI.Provider, "AI_PROVIDER")
	setString(&cfg.AI.OpenAI.APIKey, "OPENAI_API_KEY")
	setString(&cfg.AI.OpenAI.APIType, "OPENAI_API_TYPE")
	setString(&cfg.AI.OpenAI.APIVersion, "OPENAI_API_VERSION")
	setString(&cfg.AI.OpenAI.APIBase, "OPENAI_API_BASE")
	setString(&cfg.AI.OpenAI.Deployment, "OPENAI_API_DEPLOYMENT")
	setString(&cfg.AI.OpenAI.Model, "OPENAI_MODEL")
	setString(&cfg.AI.Gemini.APIKey, "GEMINI_API_KEY")
	setString(&cfg.AI.Gemini.Model, "GEMINI_MODEL")

	setBool(&cfg.Review.PublishDescription, "PRMATE_PUBLISH_DESCRIPTION")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

// Validate checks that the selected providers are usable.
func (c *Config) Validate() error {
	switch c.GitProvider {
	case "github":
		if c.GitHub.Token == "" {
			return domainErrors.ErrTokenMissing
		}
	default:
		return domainErrors.ErrProviderNotSupported.
			WithContext("git_provider", c.GitProvider)
	}

	switch c.AI.Provider {
	case "openai":
		if c.AI.OpenAI.APIKey == "" {
			return domainErrors.ErrAPIKeyMissing
		}
		if c.AI.OpenAI.APIType == "azure" && (c.AI.OpenAI.Deployment == "" || c.AI.OpenAI.APIBase == "") {
			return domainErrors.ErrDeploymentMissing
		}
	case "gemini":
		if c.AI.Gemini.APIKey == "" {
			return domainErrors.ErrAPIKeyMissing
		}
	default:
		return domainErrors.ErrProviderNotSupported.
			WithContext("ai_provider", c.AI.Provider)
	}

	return nil
}
