// Package config loads process-wide settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/shaharia-lab/todo/internal/notification"
	"github.com/shaharia-lab/todo/internal/shell"
)

// AppConfig holds all application-level configuration loaded from environment variables.
type AppConfig struct {
	// Mode is the raw deployment mode. Empty means the build default applies;
	// the entry point fills it in before anything reads it.
	Mode string `envconfig:"TODO_MODE"`

	// Port is the HTTP server port. Defaults to 4000, the port the
	// development base URL points at.
	Port int `envconfig:"PORT" default:"4000"`

	// DataDir is the root data directory. Defaults to ~/.todo.
	DataDir string `envconfig:"TODO_DATA_DIR"`

	// LogLevel sets the minimum log level (debug, info, warn, error). Defaults to info.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// DevServerURL is where /assets is proxied when no embedded bundle is present.
	DevServerURL string `envconfig:"TODO_DEV_SERVER_URL" default:"http://localhost:5173"`

	// CORSOrigins lists origins allowed to call the API.
	CORSOrigins []string `envconfig:"TODO_CORS_ORIGINS" default:"*"`

	// PurgeCompletedAfter is how long completed todos are kept. Zero keeps them forever.
	PurgeCompletedAfter time.Duration `envconfig:"TODO_PURGE_COMPLETED_AFTER" default:"0s"`

	// PurgeInterval is how often the retention job runs.
	PurgeInterval time.Duration `envconfig:"TODO_PURGE_INTERVAL" default:"1h"`

	// ServerURL is the origin the CLI client resolves a relative base URL against.
	ServerURL string `envconfig:"TODO_SERVER_URL" default:"http://127.0.0.1:4000"`

	// SMTP settings for purge reports. Reports are off unless host, from and to are set.
	SMTPHost       string `envconfig:"TODO_SMTP_HOST"`
	SMTPPort       int    `envconfig:"TODO_SMTP_PORT" default:"587"`
	SMTPUsername   string `envconfig:"TODO_SMTP_USERNAME"`
	SMTPPassword   string `envconfig:"TODO_SMTP_PASSWORD"`
	SMTPFrom       string `envconfig:"TODO_SMTP_FROM"`
	SMTPTo         string `envconfig:"TODO_SMTP_TO"`
	SMTPEncryption string `envconfig:"TODO_SMTP_ENCRYPTION" default:"starttls"`
}

// Load reads AppConfig from environment variables using envconfig.
// DataDir defaults to ~/.todo if not set.
func Load() (*AppConfig, error) {
	var c AppConfig
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		c.DataDir = filepath.Join(home, ".todo")
	}
	return &c, nil
}

// DeploymentMode returns the parsed deployment mode.
func (c *AppConfig) DeploymentMode() shell.Mode {
	return shell.ParseMode(c.Mode)
}

// BaseURL returns the API base URL for the configured mode.
func (c *AppConfig) BaseURL() string {
	return shell.BaseURL(c.DeploymentMode())
}

// SlogLevel converts the LogLevel string to a slog.Level.
// Unknown values default to slog.LevelInfo.
func (c *AppConfig) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogDir returns the path to the log directory (~/.todo/logs).
func (c *AppConfig) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// DBPath returns the path to the SQLite database file.
func (c *AppConfig) DBPath() string {
	return filepath.Join(c.DataDir, "todo.db")
}

// SMTP returns the notification provider settings.
func (c *AppConfig) SMTP() notification.SMTPConfig {
	return notification.SMTPConfig{
		Host:       c.SMTPHost,
		Port:       c.SMTPPort,
		Username:   c.SMTPUsername,
		Password:   c.SMTPPassword,
		FromAddr:   c.SMTPFrom,
		ToAddrs:    c.SMTPTo,
		Encryption: c.SMTPEncryption,
	}
}
