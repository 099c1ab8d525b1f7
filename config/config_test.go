package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.False(t, cfg.IsDev)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, "notebooker", cfg.Postgres.Name)
	assert.True(t, cfg.Postgres.RunMigrationsOnStart)
	assert.Equal(t, "localhost:6379", cfg.Redis.URI)
	assert.Equal(t, "postgres", cfg.Store.Kind)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "notebooker-cli", cfg.Executor.CLIPath)
	assert.Equal(t, 3, cfg.Executor.DefaultRetries)
	assert.Equal(t, time.Second, cfg.Executor.GracePeriod)
	assert.Equal(t, time.Hour, cfg.Cache.RenderTTL)
	assert.Equal(t, "/var/lib/notebooker/snapshots", cfg.Snapshot.Root)
}

func TestAppConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("REDIS_URI", "cache.internal:6379")
	t.Setenv("EXECUTOR_CLI_PATH", "/opt/notebooker/bin/cli")
	t.Setenv("EXECUTOR_GRACE_PERIOD", "250ms")
	t.Setenv("SNAPSHOT_ROOT", "/srv/snapshots")
	t.Setenv("RESULT_STORE", "postgres")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, 5433, cfg.Postgres.Port)
	assert.Equal(t, "cache.internal:6379", cfg.Redis.URI)
	assert.Equal(t, "/opt/notebooker/bin/cli", cfg.Executor.CLIPath)
	assert.Equal(t, 250*time.Millisecond, cfg.Executor.GracePeriod)
	assert.Equal(t, "/srv/snapshots", cfg.Snapshot.Root)
}

func TestAppConfig_Sanitize(t *testing.T) {
	cfg := AppConfig{
		HTTP:     HTTPConfig{Addr: "", BaseURL: "https://reports.example.com/"},
		Executor: ExecutorConfig{DefaultRetries: -1, GracePeriod: -time.Second},
	}
	cfg.Sanitize()

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "https://reports.example.com", cfg.HTTP.BaseURL)
	assert.Equal(t, 0, cfg.Executor.DefaultRetries)
	assert.Equal(t, time.Second, cfg.Executor.GracePeriod)
}

func TestAppConfig_DetectDevMode(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.True(t, cfg.IsDev)
}

func TestDBConfig_CommandLineArgs(t *testing.T) {
	db := DBConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "svc",
		Password: "secret",
		Name:     "reports",
	}

	assert.Equal(t, []string{
		"--serializer-cls", "postgres",
		"--pg-host", "db.internal",
		"--pg-port", "5433",
		"--pg-user", "svc",
		"--pg-password", "secret",
		"--pg-dbname", "reports",
	}, db.CommandLineArgs())
}
