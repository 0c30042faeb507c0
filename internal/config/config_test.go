package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessEnvironmentVariables_Defaults(t *testing.T) {
	cfg, err := ProcessEnvironmentVariables()
	require.NoError(t, err)

	assert.Equal(t, "9446", cfg.HTTPPort)
	assert.Equal(t, StorageBackendPostgres, cfg.StorageBackend)
	assert.Equal(t, "localhost", cfg.PostgresAddress)
	assert.Equal(t, "5433", cfg.PostgresPort)
	assert.Equal(t, 4, cfg.OperatorWorkers)
	assert.Equal(t, "gpt-3.5-turbo-instruct", cfg.OpenAIModel)
	assert.Equal(t, 10*time.Second, cfg.OpenAITimeout)
}

func TestProcessEnvironmentVariables_PostgresEnv(t *testing.T) {
	t.Setenv("POSTGRES_ADDRESS", "db.internal")
	t.Setenv("POSTGRES_PASSWORD", "secret")

	cfg, err := ProcessEnvironmentVariables()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.PostgresAddress)
	assert.Equal(t, "secret", cfg.PostgresPassword)
}

func TestProcessEnvironmentVariables_PrefixedEnvWins(t *testing.T) {
	t.Setenv("POSTGRES_ADDRESS", "db.internal")
	t.Setenv("BUDGET_POSTGRES_ADDRESS", "db.override")
	t.Setenv("BUDGET_OPERATOR_WORKERS", "8")
	t.Setenv("BUDGET_OPENAI_TIMEOUT", "2s")

	cfg, err := ProcessEnvironmentVariables()
	require.NoError(t, err)

	assert.Equal(t, "db.override", cfg.PostgresAddress)
	assert.Equal(t, 8, cfg.OperatorWorkers)
	assert.Equal(t, 2*time.Second, cfg.OpenAITimeout)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := "http_port: \"8080\"\nstorage_backend: memory\nallowed_origins: \"http://a.test, http://b.test\"\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, StorageBackendMemory, cfg.StorageBackend)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Origins())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidBackend(t *testing.T) {
	t.Setenv("BUDGET_STORAGE_BACKEND", "sqlite")

	_, err := ProcessEnvironmentVariables()
	assert.ErrorContains(t, err, "storage_backend")
}

func TestLoad_InvalidWorkers(t *testing.T) {
	t.Setenv("BUDGET_OPERATOR_WORKERS", "0")

	_, err := ProcessEnvironmentVariables()
	assert.ErrorContains(t, err, "operator_workers")
}
