package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reddycharan348/Gate-Exam/internal/exam"
)

// isolate clears every variable Load might read.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"GATE_EXAM_LLM_PROVIDER", "GATE_EXAM_LLM_GEMINI_API_KEY", "GATE_EXAM_LLM_OPENAI_API_KEY",
		"GATE_EXAM_LLM_ANTHROPIC_API_KEY", "GATE_EXAM_LLM_OPENROUTER_API_KEY",
		"GATE_EXAM_DB", "GATE_EXAM_LOG_LEVEL", "GATE_EXAM_EXAM_DIFFICULTY",
	} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.False(t, cfg.LLM.HasKey())
	assert.Equal(t, "gemini-3-flash-preview", cfg.LLM.Gemini.Model)
	assert.Equal(t, 120*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, exam.DefaultSettings(), cfg.Exam)
	assert.Empty(t, cfg.File)
}

func TestLoad_File(t *testing.T) {
	isolate(t)
	path := writeFile(t, `
llm:
  provider: openai
  timeout: 45s
  retry:
    max_attempts: 5
  openai:
    api_key: sk-file
    model: gpt-4o
    base_url: http://localhost:8080/v1
db: /tmp/exam.db
log:
  level: debug
exam:
  subject: Civil
  difficulty: difficult
  test_type: aptitude
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.File)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-file", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.LLM.OpenAI.Model)
	assert.Equal(t, "http://localhost:8080/v1", cfg.LLM.OpenAI.BaseURL)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 5, cfg.LLM.Retry.MaxAttempts)
	assert.Equal(t, "/tmp/exam.db", cfg.DB)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, exam.Settings{Subject: "Civil", Difficulty: exam.Difficult, TestType: exam.AptitudeOnly}, cfg.Exam)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	path := writeFile(t, "llm:\n  provider: openai\nlog:\n  level: debug\n")
	t.Setenv("GATE_EXAM_LLM_PROVIDER", "mock")
	t.Setenv("GATE_EXAM_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mock", cfg.LLM.Provider)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_DefaultFileLocation(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "gate-exam"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gate-exam", "config.yaml"), []byte("db: /data/x.db\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/data/x.db", cfg.DB)
}

func TestLoad_ProviderFromConfiguredKey(t *testing.T) {
	isolate(t)
	t.Setenv("GATE_EXAM_LLM_ANTHROPIC_API_KEY", "sk-ant")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.NoError(t, cfg.LLM.Validate())
}

func TestLoad_DiscoversVendorKey(t *testing.T) {
	isolate(t)
	t.Setenv("OPENROUTER_API_KEY", "sk-or")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "openrouter", cfg.LLM.Provider)
	assert.Equal(t, "sk-or", cfg.LLM.OpenRouter.APIKey)
}

func TestLoad_BadExamDefaults(t *testing.T) {
	isolate(t)
	t.Setenv("GATE_EXAM_EXAM_DIFFICULTY", "brutal")

	_, err := Load("")
	assert.ErrorContains(t, err, "unknown difficulty")
}

func TestLoad_MissingFile(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
