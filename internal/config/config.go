// Package config loads gate-exam settings. GATE_EXAM_* environment
// variables override the optional YAML file, which overrides defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/reddycharan348/Gate-Exam/internal/exam"
	"github.com/reddycharan348/Gate-Exam/internal/llm"
)

// EnvPrefix is prepended to every environment variable, e.g.
// GATE_EXAM_LLM_PROVIDER.
const EnvPrefix = "GATE_EXAM"

// Config is the resolved application configuration.
type Config struct {
	LLM  llm.Config
	DB   string
	Log  Log
	Exam exam.Settings

	// File is the config file that was read, if any.
	File string
}

// Log holds logging settings.
type Log struct {
	Level string
	File  string
}

var providers = []string{"gemini", "openai", "anthropic", "openrouter"}

func setDefaults(v *viper.Viper) {
	d := llm.DefaultConfig()
	s := exam.DefaultSettings()

	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", d.Anthropic.Model)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", d.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", d.Gemini.Model)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", d.OpenRouter.Model)
	v.SetDefault("llm.timeout", d.Timeout)
	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)

	v.SetDefault("db", "")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")

	v.SetDefault("exam.subject", s.Subject)
	v.SetDefault("exam.difficulty", string(s.Difficulty))
	v.SetDefault("exam.test_type", string(s.TestType))
}

// Load reads configuration. path names a YAML file; when empty the default
// location is used if it exists.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	file := path
	if file == "" {
		if def := DefaultFile(); fileExists(def) {
			file = def
		}
	}
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	cfg := &Config{
		DB:   v.GetString("db"),
		Log:  Log{Level: v.GetString("log.level"), File: v.GetString("log.file")},
		File: file,
	}

	var err error
	if cfg.LLM, err = llmConfig(v); err != nil {
		return nil, err
	}
	if cfg.Exam, err = examSettings(v); err != nil {
		return nil, err
	}
	return cfg, nil
}

func llmConfig(v *viper.Viper) (llm.Config, error) {
	c := llm.DefaultConfig()
	c.Anthropic = llm.AnthropicConfig{
		APIKey: v.GetString("llm.anthropic.api_key"),
		Model:  v.GetString("llm.anthropic.model"),
	}
	c.OpenAI = llm.OpenAIConfig{
		APIKey:  v.GetString("llm.openai.api_key"),
		Model:   v.GetString("llm.openai.model"),
		BaseURL: v.GetString("llm.openai.base_url"),
	}
	c.Gemini = llm.GeminiConfig{
		APIKey: v.GetString("llm.gemini.api_key"),
		Model:  v.GetString("llm.gemini.model"),
	}
	c.OpenRouter.APIKey = v.GetString("llm.openrouter.api_key")
	c.OpenRouter.Model = v.GetString("llm.openrouter.model")
	c.Timeout = v.GetDuration("llm.timeout")
	if n := v.GetInt("llm.retry.max_attempts"); n > 0 {
		c.Retry.MaxAttempts = n
	}

	c.Provider = strings.ToLower(strings.TrimSpace(v.GetString("llm.provider")))
	if c.Provider != "" {
		return c, nil
	}

	// No explicit provider: take the first one with a configured key,
	// then fall back to the vendors' own environment variables.
	for _, p := range providers {
		c.Provider = p
		if c.HasKey() {
			return c, nil
		}
	}
	if found, ok := llm.DiscoverConfig(); ok {
		c.Provider = found.Provider
		switch found.Provider {
		case "gemini":
			c.Gemini.APIKey = found.Gemini.APIKey
		case "openai":
			c.OpenAI.APIKey = found.OpenAI.APIKey
		case "anthropic":
			c.Anthropic.APIKey = found.Anthropic.APIKey
		case "openrouter":
			c.OpenRouter.APIKey = found.OpenRouter.APIKey
		}
		return c, nil
	}
	c.Provider = llm.DefaultConfig().Provider
	return c, nil
}

func examSettings(v *viper.Viper) (exam.Settings, error) {
	var errs []error
	s := exam.Settings{Subject: v.GetString("exam.subject")}

	d, err := exam.ParseDifficulty(v.GetString("exam.difficulty"))
	errs = append(errs, err)
	s.Difficulty = d

	t, err := exam.ParseTestType(v.GetString("exam.test_type"))
	errs = append(errs, err)
	s.TestType = t

	if err := errors.Join(errs...); err != nil {
		return exam.Settings{}, fmt.Errorf("exam defaults: %w", err)
	}
	return s, nil
}

// DefaultFile returns $XDG_CONFIG_HOME/gate-exam/config.yaml, falling back
// to ~/.config.
func DefaultFile() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "gate-exam", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gate-exam", "config.yaml")
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
