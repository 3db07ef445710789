package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/shaharia-lab/todo/internal/api"
	"github.com/shaharia-lab/todo/internal/build"
	"github.com/shaharia-lab/todo/internal/config"
	"github.com/shaharia-lab/todo/internal/eventbus"
	"github.com/shaharia-lab/todo/internal/logger"
	"github.com/shaharia-lab/todo/internal/metrics"
	"github.com/shaharia-lab/todo/internal/notification"
	"github.com/shaharia-lab/todo/internal/scheduler"
	"github.com/shaharia-lab/todo/internal/server"
	"github.com/shaharia-lab/todo/internal/service"
	"github.com/shaharia-lab/todo/internal/shell"
	"github.com/shaharia-lab/todo/internal/storage"
)

// NewWebCmd returns the "web" subcommand that starts the HTTP server.
func NewWebCmd(cfg *config.AppConfig, assets fs.FS) *cobra.Command {
	var port int
	var open bool

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Start the web UI and API server",
		Long: `Start the HTTP server which serves the to-do page, its client bundle
and the REST API under /api.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// CLI flags override env config.
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			logFile := filepath.Join(cfg.LogDir(), "system.log")
			if err := runWeb(ctx, cfg, assets, open); err != nil {
				fmt.Fprintf(os.Stderr, "An error occurred. Please check the logs at: %s\n", logFile)
				return err
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", cfg.Port, "HTTP server port (overrides PORT env var)")
	cmd.Flags().BoolVar(&open, "open", false, "Open the UI in the default browser once the server is up")

	return cmd
}

func runWeb(ctx context.Context, cfg *config.AppConfig, assets fs.FS, open bool) error {
	if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
		return fmt.Errorf("creating data directory %s: %w", cfg.DataDir, err)
	}

	sysLogger, logCloser, err := logger.NewSystemLogger(cfg.LogDir(), cfg.SlogLevel())
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logCloser.Close() //nolint:errcheck

	mode := cfg.DeploymentMode()
	sh := shell.New(mode)
	sysLogger.Info("todo starting",
		slog.Int("port", cfg.Port),
		slog.String("mode", mode.String()),
		slog.String("base_url", sh.BaseURL()),
		slog.String("data_dir", cfg.DataDir),
		slog.String("version", build.Version),
		slog.String("commit", build.CommitSHA),
	)

	db, fresh, err := storage.NewSQLiteDB(ctx, cfg.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close() //nolint:errcheck

	bus := eventbus.New(0, sysLogger)
	defer bus.Close()

	m := metrics.New()
	m.RegisterDropped(bus)
	bus.Subscribe(m.Listener())
	bus.Subscribe(func(e eventbus.Event) {
		sysLogger.Debug("event", "type", e.Type, "payload", e.Payload)
	})
	if smtp := cfg.SMTP(); smtp.Enabled() {
		bus.Subscribe(notification.NewHandler(notification.NewSMTPProvider(smtp), sysLogger).Listener())
	}

	todoSvc := service.NewTodoService(storage.NewSQLiteTodoStore(db), bus, sysLogger)

	// Seed a welcome item on first run.
	if fresh {
		if _, err := todoSvc.Create(ctx, "Add your first todo above"); err != nil {
			sysLogger.Warn("could not seed welcome todo", "error", err)
		}
	}

	sched, err := scheduler.New(scheduler.Config{
		Purger:    todoSvc,
		Retention: cfg.PurgeCompletedAfter,
		Interval:  cfg.PurgeInterval,
		Logger:    sysLogger,
	})
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop() //nolint:errcheck

	srv, err := server.New(server.Config{
		API:          api.New(todoSvc, sh, sysLogger),
		Shell:        sh,
		AssetsFS:     assets,
		DevServerURL: cfg.DevServerURL,
		Port:         cfg.Port,
		CORSOrigins:  cfg.CORSOrigins,
		Metrics:      m,
		Logger:       sysLogger,
	})
	if err != nil {
		return fmt.Errorf("building server: %w", err)
	}

	url := fmt.Sprintf("http://localhost:%d", cfg.Port)
	printBanner(os.Stdout, bannerInfo{
		Version: build.Version,
		URL:     url,
		Mode:    mode.String(),
		BaseURL: sh.BaseURL(),
		LogFile: filepath.Join(cfg.LogDir(), "system.log"),
	})
	sysLogger.Info("server ready", "url", url)

	if open {
		go openBrowser(url)
	}

	return srv.Run(ctx)
}

func openBrowser(url string) {
	time.Sleep(600 * time.Millisecond)
	ctx := context.Background()
	var c *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		c = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		c = exec.CommandContext(ctx, "open", url)
	default:
		c = exec.CommandContext(ctx, "xdg-open", url)
	}
	_ = c.Start()
}
