package llm

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config selects and configures the model vendor. Provider is one of
// "gemini", "openai", "anthropic", "openrouter" or "mock".
type Config struct {
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call, retries included.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig prefers Gemini Flash: quiz generation is latency bound and
// the cheap tier writes adequate multiple-choice questions.
func DefaultConfig() Config {
	return Config{
		Provider:   "gemini",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 45 * time.Second,
	}
}

// vendor describes where one provider's settings live.
type vendor struct {
	name     string
	envKey   string // QUIZUP_<X>_API_KEY
	stockKey string // the vendor's own variable, used for discovery
	key      func(*Config) *string
	model    func(*Config) *string
	baseURL  func(*Config) *string
}

// vendors is in discovery order.
var vendors = []vendor{
	{
		name: "gemini", envKey: "QUIZUP_GEMINI", stockKey: "GEMINI_API_KEY",
		key:   func(c *Config) *string { return &c.Gemini.APIKey },
		model: func(c *Config) *string { return &c.Gemini.Model },
	},
	{
		name: "openai", envKey: "QUIZUP_OPENAI", stockKey: "OPENAI_API_KEY",
		key:     func(c *Config) *string { return &c.OpenAI.APIKey },
		model:   func(c *Config) *string { return &c.OpenAI.Model },
		baseURL: func(c *Config) *string { return &c.OpenAI.BaseURL },
	},
	{
		name: "anthropic", envKey: "QUIZUP_ANTHROPIC", stockKey: "ANTHROPIC_API_KEY",
		key:   func(c *Config) *string { return &c.Anthropic.APIKey },
		model: func(c *Config) *string { return &c.Anthropic.Model },
	},
	{
		name: "openrouter", envKey: "QUIZUP_OPENROUTER", stockKey: "OPENROUTER_API_KEY",
		key:     func(c *Config) *string { return &c.OpenRouter.APIKey },
		model:   func(c *Config) *string { return &c.OpenRouter.Model },
		baseURL: func(c *Config) *string { return &c.OpenRouter.BaseURL },
	},
}

func lookupVendor(name string) (vendor, bool) {
	for _, v := range vendors {
		if v.name == name {
			return v, true
		}
	}
	return vendor{}, false
}

// ConfigFromEnv reads QUIZUP_LLM_* and QUIZUP_<VENDOR>_* variables over
// DefaultConfig. Malformed durations and counts are reported and ignored.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	setIf(&cfg.Provider, "QUIZUP_LLM_PROVIDER")

	for _, v := range vendors {
		setIf(v.key(&cfg), v.envKey+"_API_KEY")
		setIf(v.model(&cfg), v.envKey+"_MODEL")
		if v.baseURL != nil {
			setIf(v.baseURL(&cfg), v.envKey+"_BASE_URL")
		}
	}

	if s := os.Getenv("QUIZUP_LLM_TIMEOUT"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 {
			cfg.Timeout = d
		} else {
			fmt.Fprintf(os.Stderr, "warning: ignoring invalid QUIZUP_LLM_TIMEOUT %q\n", s)
		}
	}
	if s := os.Getenv("QUIZUP_LLM_MAX_ATTEMPTS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			cfg.Retry.MaxAttempts = n
		} else {
			fmt.Fprintf(os.Stderr, "warning: ignoring invalid QUIZUP_LLM_MAX_ATTEMPTS %q\n", s)
		}
	}
	return cfg
}

func setIf(dst *string, env string) {
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		*dst = v
	}
}

// DiscoverConfig picks the first vendor whose own API key variable
// (GEMINI_API_KEY, OPENAI_API_KEY, ...) is set.
func DiscoverConfig() (Config, bool) {
	for _, v := range vendors {
		if k := os.Getenv(v.stockKey); k != "" {
			cfg := DefaultConfig()
			cfg.Provider = v.name
			*v.key(&cfg) = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Configured reports whether Validate passes.
func (c Config) Configured() bool {
	return c.Validate() == nil
}

// Validate checks the selected provider has an API key.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	v, ok := lookupVendor(c.Provider)
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if *v.key(&c) == "" {
		return fmt.Errorf("%s_API_KEY is required for the %s provider", v.envKey, v.name)
	}
	return nil
}
