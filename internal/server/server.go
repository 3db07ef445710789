// Package server wires the Root Shell page, the REST API and static assets
// into one HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/shaharia-lab/todo/internal/api"
	"github.com/shaharia-lab/todo/internal/metrics"
	"github.com/shaharia-lab/todo/internal/shell"
)

// Config holds everything New needs.
type Config struct {
	API   *api.Server
	Shell *shell.Shell
	// AssetsFS holds the built client bundle. Nil proxies /assets to DevServerURL.
	AssetsFS     fs.FS
	DevServerURL string
	Port         int
	CORSOrigins  []string
	Metrics      *metrics.Metrics
	Logger       *slog.Logger
}

// Server is the HTTP server for the to-do app.
type Server struct {
	cfg        Config
	logger     *slog.Logger
	handler    http.Handler
	httpServer *http.Server
}

// New builds the router and the underlying http.Server.
func New(cfg Config) (*Server, error) {
	s := &Server{cfg: cfg, logger: cfg.Logger}

	assets, err := s.assetsHandler()
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	// The development shell is served from the dev server's origin and
	// calls the API cross-origin.
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"*"},
			MaxAge:         300,
		}))
		cfg.API.Mount(r)
	})

	r.Handle("/assets/*", assets)
	r.Get("/", cfg.Shell.ServeHTTP)
	r.NotFound(s.notFound)

	s.handler = otelhttp.NewHandler(r, "todo",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run starts the HTTP server and blocks until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	lc := &net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down server")
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// requestLogger logs each request and feeds the request counter.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		if s.cfg.Metrics != nil {
			s.cfg.Metrics.ObserveRequest(r.Method, status)
		}
		s.logger.Info("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// assetsHandler serves the embedded bundle, or proxies to the dev server
// when no bundle is embedded.
func (s *Server) assetsHandler() (http.Handler, error) {
	if s.cfg.AssetsFS == nil {
		target, err := url.Parse(s.cfg.DevServerURL)
		if err != nil || target.Host == "" {
			return nil, fmt.Errorf("invalid dev server URL %q", s.cfg.DevServerURL)
		}
		return httputil.NewSingleHostReverseProxy(target), nil
	}
	return http.StripPrefix("/assets/", http.FileServer(http.FS(s.cfg.AssetsFS))), nil
}

// notFound renders the shell for unknown GETs so client-side links keep
// working, and 404s everything else.
func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet && acceptsHTML(r) {
		s.cfg.Shell.ServeHTTP(w, r)
		return
	}
	http.NotFound(w, r)
}

func acceptsHTML(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return accept == "" || strings.Contains(strings.ToLower(accept), "text/html")
}
