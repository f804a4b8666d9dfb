package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"BulletCatalyst/pkg/util"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"` // json or console
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Schedule struct {
		Enabled bool   `yaml:"enabled"`
		Cron    string `yaml:"cron"` // e.g. "0 13 * * 1-5"
	} `yaml:"schedule"`
	Feeds struct {
		URLs       []string      `yaml:"urls"`
		Timeout    time.Duration `yaml:"timeout"`
		Delay      time.Duration `yaml:"delay"` // pause between feed fetches
		UserAgent  string        `yaml:"user_agent"`
		MaxPerFeed int           `yaml:"max_per_feed"`
	} `yaml:"feeds"`
	Screen struct {
		CorpusMaxChars    int      `yaml:"corpus_max_chars"`
		TopN              int      `yaml:"top_n"`
		HeuristicFallback bool     `yaml:"heuristic_fallback"`
		OpenAI            Provider `yaml:"openai"`
		XAI               Provider `yaml:"xai"`
		Groq              Provider `yaml:"groq"`
	} `yaml:"screen"`
	Report struct {
		Output     string        `yaml:"output"` // stdout or file path
		MaxBullets int           `yaml:"max_bullets"`
		StaleAfter time.Duration `yaml:"stale_after"` // served snapshot lifetime
	} `yaml:"report"`
	Debug struct {
		LogRawPayloads bool `yaml:"log_raw_payloads"`
	} `yaml:"debug"`
}

// Provider holds one LLM provider's connection settings. Fallback
// models are tried in order when the configured model is rejected.
type Provider struct {
	APIKey         string        `yaml:"api_key"`
	BaseURL        string        `yaml:"base_url"`
	Model          string        `yaml:"model"`
	FallbackModels []string      `yaml:"fallback_models"`
	Timeout        time.Duration `yaml:"timeout"`
	Temperature    float64       `yaml:"temperature"`
	MaxTokens      int           `yaml:"max_tokens"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); v != "" {
		c.Screen.OpenAI.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("XAI_API_KEY")); v != "" {
		c.Screen.XAI.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("GROQ_API_KEY")); v != "" {
		c.Screen.Groq.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("OPENAI_MODEL")); v != "" {
		c.Screen.OpenAI.Model = v
	}
	if v := strings.TrimSpace(os.Getenv("XAI_MODEL")); v != "" {
		c.Screen.XAI.Model = v
	}
	if v := strings.TrimSpace(os.Getenv("GROQ_MODEL")); v != "" {
		c.Screen.Groq.Model = v
	}
	if v := strings.TrimSpace(os.Getenv("GROQ_BASE")); v != "" {
		c.Screen.Groq.BaseURL = v
	}
	if v := os.Getenv("FEED_URLS"); v != "" {
		c.Feeds.URLs = strings.Split(v, ",")
	}
	if v := os.Getenv("HEURISTIC_FALLBACK"); v != "" {
		c.Screen.HeuristicFallback = util.ParseBoolDefault(v, c.Screen.HeuristicFallback)
	}
	if v := os.Getenv("LOG_RAW_PAYLOADS"); v != "" {
		c.Debug.LogRawPayloads = util.ParseBoolDefault(v, c.Debug.LogRawPayloads)
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.Server.Port <= 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Feeds.Timeout <= 0 {
		c.Feeds.Timeout = 45 * time.Second
	}
	if c.Feeds.Delay < 0 {
		c.Feeds.Delay = 0
	}
	if c.Feeds.UserAgent == "" {
		c.Feeds.UserAgent = "Mozilla/5.0"
	}
	if c.Screen.CorpusMaxChars <= 0 {
		c.Screen.CorpusMaxChars = 16000
	}
	if c.Screen.TopN <= 0 {
		c.Screen.TopN = 10
	}
	if c.Report.MaxBullets <= 0 {
		c.Report.MaxBullets = 6
	}
	if c.Report.Output == "" {
		c.Report.Output = "stdout"
	}
	if c.Report.StaleAfter <= 0 {
		c.Report.StaleAfter = 24 * time.Hour
	}
	applyProviderDefaults(&c.Screen.OpenAI, "https://api.openai.com/v1", "gpt-4o")
	applyProviderDefaults(&c.Screen.XAI, "https://api.x.ai/v1", "grok-4-fast-reasoning")
	applyProviderDefaults(&c.Screen.Groq, "https://api.groq.com/openai/v1", "llama-3.3-70b-versatile")
	if len(c.Screen.Groq.FallbackModels) == 0 {
		c.Screen.Groq.FallbackModels = []string{"llama-3.1-70b-versatile", "llama-3.1-8b-instant"}
	}
}

func applyProviderDefaults(p *Provider, baseURL, model string) {
	if p.BaseURL == "" {
		p.BaseURL = baseURL
	}
	p.BaseURL = strings.TrimRight(p.BaseURL, "/")
	if p.Model == "" {
		p.Model = model
	}
	if p.Timeout <= 0 {
		p.Timeout = 60 * time.Second
	}
	if p.MaxTokens <= 0 {
		p.MaxTokens = 1200
	}
}

// Validate checks if the configuration is valid. Provider keys are not
// required: a missing key degrades that provider's track instead of
// failing the run.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if len(c.Feeds.URLs) == 0 {
		return fmt.Errorf("feeds.urls cannot be empty")
	}
	if c.Schedule.Enabled && c.Schedule.Cron == "" {
		return fmt.Errorf("schedule.cron is required when schedule.enabled")
	}
	for _, p := range []struct {
		name string
		prov *Provider
	}{
		{"openai", &c.Screen.OpenAI},
		{"xai", &c.Screen.XAI},
		{"groq", &c.Screen.Groq},
	} {
		if !strings.HasPrefix(p.prov.BaseURL, "http") {
			return fmt.Errorf("screen.%s.base_url must be an http(s) URL, got '%s'", p.name, p.prov.BaseURL)
		}
	}
	return nil
}
