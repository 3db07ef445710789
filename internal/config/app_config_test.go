package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaharia-lab/todo/internal/shell"
)

func TestAppConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		want     slog.Level
	}{
		{"debug", "debug", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"unknown defaults to info", "unknown", slog.LevelInfo},
		{"empty defaults to info", "", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &AppConfig{LogLevel: tt.logLevel}
			assert.Equal(t, tt.want, c.SlogLevel())
		})
	}
}

func TestAppConfig_DirectoryPaths(t *testing.T) {
	c := &AppConfig{DataDir: "/data"}
	assert.Equal(t, "/data/logs", c.LogDir())
	assert.Equal(t, "/data/todo.db", c.DBPath())
}

func TestAppConfig_DeploymentMode(t *testing.T) {
	tests := []struct {
		mode        string
		wantMode    shell.Mode
		wantBaseURL string
	}{
		{"development", shell.ModeDevelopment, "http://127.0.0.1:4000/api"},
		{"production", shell.ModeOther, "/api"},
		{"", shell.ModeOther, "/api"},
	}
	for _, tt := range tests {
		t.Run("mode="+tt.mode, func(t *testing.T) {
			c := &AppConfig{Mode: tt.mode}
			assert.Equal(t, tt.wantMode, c.DeploymentMode())
			assert.Equal(t, tt.wantBaseURL, c.BaseURL())
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TODO_DATA_DIR", "/tmp/test-todo")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TODO_MODE", "development")
	t.Setenv("TODO_CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")
	t.Setenv("TODO_PURGE_COMPLETED_AFTER", "72h")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/test-todo", cfg.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "development", cfg.Mode)
	assert.Equal(t, []string{"http://localhost:5173", "http://127.0.0.1:5173"}, cfg.CORSOrigins)
	assert.Equal(t, 72*time.Hour, cfg.PurgeCompletedAfter)
}

func TestLoad_Defaults(t *testing.T) {
	unsetenv(t, "PORT", "TODO_MODE", "TODO_PURGE_INTERVAL", "TODO_PURGE_COMPLETED_AFTER",
		"TODO_CORS_ORIGINS", "TODO_DEV_SERVER_URL", "TODO_SERVER_URL",
		"TODO_SMTP_HOST", "TODO_SMTP_PORT", "TODO_SMTP_FROM", "TODO_SMTP_TO", "TODO_SMTP_ENCRYPTION")
	t.Setenv("TODO_DATA_DIR", "/tmp/test-todo")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Port)
	assert.Empty(t, cfg.Mode)
	assert.Equal(t, time.Hour, cfg.PurgeInterval)
	assert.Zero(t, cfg.PurgeCompletedAfter)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "http://localhost:5173", cfg.DevServerURL)
	assert.Equal(t, "http://127.0.0.1:4000", cfg.ServerURL)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.False(t, cfg.SMTP().Enabled())
}

func TestAppConfig_SMTP(t *testing.T) {
	c := &AppConfig{
		SMTPHost:       "smtp.example.com",
		SMTPPort:       465,
		SMTPFrom:       "todo@example.com",
		SMTPTo:         "me@example.com",
		SMTPEncryption: "ssl_tls",
	}
	smtp := c.SMTP()
	assert.True(t, smtp.Enabled())
	assert.Equal(t, "smtp.example.com", smtp.Host)
	assert.Equal(t, 465, smtp.Port)
	assert.Equal(t, "ssl_tls", smtp.Encryption)
}

// unsetenv clears keys for the duration of the test. envconfig treats an
// empty value as set, so defaults only apply to truly unset variables.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}
