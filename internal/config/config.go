// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for bookwright.
type Config struct {
	ServerURL  string `mapstructure:"server_url" yaml:"server_url"`
	ListenAddr string `mapstructure:"listen_addr" yaml:"listen_addr"`
	DataDir    string `mapstructure:"data_dir" yaml:"data_dir"`
	LogLevel   string `mapstructure:"log_level" yaml:"log_level"`
	LogFile    string `mapstructure:"log_file" yaml:"log_file"`
	LLMModel   string `mapstructure:"llm_model" yaml:"llm_model"`
	LLMBaseURL string `mapstructure:"llm_base_url" yaml:"llm_base_url"`
	LLMAPIKey  string `mapstructure:"llm_api_key" yaml:"llm_api_key"`
	Store      string `mapstructure:"store" yaml:"store"` // memory or nats
	MCP        bool   `mapstructure:"mcp" yaml:"mcp"`
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("bookwright")

	v.SetDefault("server_url", "http://localhost:8055")
	v.SetDefault("listen_addr", ":8055")
	v.SetDefault("data_dir", ".bookwright")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("llm_model", "gpt-4o-mini")
	v.SetDefault("llm_base_url", "")
	v.SetDefault("llm_api_key", "")
	v.SetDefault("store", "nats")
	v.SetDefault("mcp", false)

	// Setup ENV binding with BOOKWRIGHT_ prefix
	v.SetEnvPrefix("BOOKWRIGHT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Explicit ENV bindings for better bool parsing
	bindings := map[string]string{
		"server_url":   "BOOKWRIGHT_SERVER_URL",
		"listen_addr":  "BOOKWRIGHT_LISTEN_ADDR",
		"data_dir":     "BOOKWRIGHT_DATA_DIR",
		"log_level":    "BOOKWRIGHT_LOG_LEVEL",
		"log_file":     "BOOKWRIGHT_LOG_FILE",
		"llm_model":    "BOOKWRIGHT_LLM_MODEL",
		"llm_base_url": "BOOKWRIGHT_LLM_BASE_URL",
		"llm_api_key":  "BOOKWRIGHT_LLM_API_KEY",
		"store":        "BOOKWRIGHT_STORE",
		"mcp":          "BOOKWRIGHT_MCP",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	// Load global config first (if exists)
	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	// Merge project config on top (if exists)
	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// OPENAI_API_KEY works as a fallback so existing environments need no change.
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = os.Getenv("OPENAI_API_KEY")
	}

	return &cfg, nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/bookwright/bookwright.yml or $XDG_CONFIG_HOME/bookwright/bookwright.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "bookwright", "bookwright.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "bookwright", "bookwright.yml")
}

// ProjectPath returns the project-local config path.
// Returns ./bookwright.yml in the current working directory.
func ProjectPath() string {
	return "bookwright.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(ProjectPath(), data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
