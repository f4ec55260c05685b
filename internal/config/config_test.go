package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/tmp/ws")
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, filepath.Join("/tmp/ws", ".dagdraft", "dagdraft.db"), cfg.Store.DatabasePath)
	assert.Equal(t, 5*time.Minute, cfg.Timeouts.PerCallTimeout)
	require.NoError(t, cfg.Timeouts.Validate())
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "dagdraft.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
}

func TestLoad_ParsesYAML(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("DAGDRAFT_DB", "")
	t.Setenv("DAGDRAFT_TEMPLATES", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "dagdraft.yaml")
	data := []byte(`
llm:
  provider: mock
  model: test-model
store:
  database_path: /tmp/x.db
timeouts:
  per_call_timeout: 3m
  http_client_timeout: 4m
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mock", cfg.LLM.Provider)
	assert.Equal(t, "test-model", cfg.LLM.Model)
	assert.Equal(t, 3*time.Minute, cfg.Timeouts.PerCallTimeout)
	require.NoError(t, cfg.Validate())
}

func TestEnvOverrides(t *testing.T) {
	t.Run("GEMINI_API_KEY wins over OPENAI_API_KEY", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "oa-key")
		t.Setenv("GEMINI_API_KEY", "gm-key")

		cfg := DefaultConfig("")
		cfg.applyEnvOverrides()

		assert.Equal(t, "gm-key", cfg.LLM.APIKey)
		assert.Equal(t, "gemini", cfg.LLM.Provider)
	})

	t.Run("DAGDRAFT_DB overrides database path", func(t *testing.T) {
		t.Setenv("DAGDRAFT_DB", "/elsewhere/d.db")

		cfg := DefaultConfig("")
		cfg.applyEnvOverrides()

		assert.Equal(t, "/elsewhere/d.db", cfg.Store.DatabasePath)
	})
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig("")
	cfg.LLM.Provider = "mock"
	assert.NoError(t, cfg.Validate())

	cfg.LLM.Provider = "gemini"
	cfg.LLM.APIKey = ""
	assert.Error(t, cfg.Validate(), "gemini without key must fail")

	cfg.LLM.Provider = "carrier-pigeon"
	assert.Error(t, cfg.Validate())
}

func TestTimeoutsValidate(t *testing.T) {
	tm := DefaultGenerationTimeouts()
	tm.HTTPClientTimeout = tm.PerCallTimeout - time.Second
	assert.Error(t, tm.Validate(), "http client timeout shorter than per-call must fail")
}
