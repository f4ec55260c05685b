// Package config loads dagdraft configuration from a YAML file with
// environment-variable overrides for secrets.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all dagdraft configuration.
type Config struct {
	// Workspace is the directory holding the store, templates, and logs.
	Workspace string `yaml:"workspace"`

	// LLM configures the generation capability backend.
	LLM LLMConfig `yaml:"llm"`

	// Store configures the SQLite section store.
	Store StoreConfig `yaml:"store"`

	// Templates configures the template registry.
	Templates TemplateConfig `yaml:"templates"`

	// Timeouts centralizes generation timeouts.
	Timeouts GenerationTimeouts `yaml:"timeouts"`

	// Logging configures categorized debug logging.
	Logging LoggingConfig `yaml:"logging"`
}

// LLMConfig configures the generation client.
type LLMConfig struct {
	Provider string `yaml:"provider"` // gemini, openai, mock
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
}

// StoreConfig configures the SQLite store.
type StoreConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// TemplateConfig configures the template registry.
type TemplateConfig struct {
	Dir string `yaml:"dir"`
	// Watch enables fsnotify hot reload of template files.
	Watch bool `yaml:"watch"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"` // debug, info, warn, error
	Categories map[string]bool `yaml:"categories"`
}

// DefaultConfig returns the default configuration rooted at workspace.
func DefaultConfig(workspace string) *Config {
	if workspace == "" {
		workspace = "."
	}
	return &Config{
		Workspace: workspace,
		LLM: LLMConfig{
			Provider: "gemini",
			Model:    "gemini-3-flash-preview",
		},
		Store: StoreConfig{
			DatabasePath: filepath.Join(workspace, ".dagdraft", "dagdraft.db"),
		},
		Templates: TemplateConfig{
			Dir: filepath.Join(workspace, "templates"),
		},
		Timeouts: DefaultGenerationTimeouts(),
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from a YAML file. A missing file yields the
// defaults; environment overrides are applied either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig(filepath.Dir(path))

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// applyEnvOverrides applies environment variable overrides. API keys win
// in priority order so a config file never has to carry a secret.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.LLM.APIKey = key
		c.LLM.Provider = "openai"
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.APIKey = key
		c.LLM.Provider = "gemini"
	}
	if path := os.Getenv("DAGDRAFT_DB"); path != "" {
		c.Store.DatabasePath = path
	}
	if dir := os.Getenv("DAGDRAFT_TEMPLATES"); dir != "" {
		c.Templates.Dir = dir
	}
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "gemini", "openai", "mock":
	case "":
		return fmt.Errorf("llm.provider is required")
	default:
		return fmt.Errorf("unknown llm.provider %q", c.LLM.Provider)
	}
	if c.LLM.Provider != "mock" && c.LLM.APIKey == "" {
		return fmt.Errorf("llm.api_key is required for provider %s (or set %s_API_KEY)",
			c.LLM.Provider, map[string]string{"gemini": "GEMINI", "openai": "OPENAI"}[c.LLM.Provider])
	}
	if c.Store.DatabasePath == "" {
		return fmt.Errorf("store.database_path is required")
	}
	return c.Timeouts.Validate()
}
