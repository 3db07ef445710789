// Package shell renders the root page of the to-do UI and fixes the API
// base URL the client bundle talks to.
package shell

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
)

//go:embed page.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "page.html.tmpl"))

// BootConfig is handed to the client bundle on window.__TODO_CONFIG__.
type BootConfig struct {
	BaseURL string `json:"baseUrl"`
	Mode    string `json:"mode"`
}

// Shell renders the root page. It is immutable after New and safe for
// concurrent use.
type Shell struct {
	mode        Mode
	baseURL     string
	title       string
	assetPrefix string
}

// Option customises a Shell.
type Option func(*Shell)

// WithTitle sets the document title.
func WithTitle(title string) Option {
	return func(s *Shell) { s.title = title }
}

// WithAssetPrefix sets the URL prefix the page loads app.js and app.css from.
func WithAssetPrefix(prefix string) Option {
	return func(s *Shell) { s.assetPrefix = prefix }
}

// New returns a Shell for the given mode. The base URL is computed here
// once and never changes afterwards.
func New(mode Mode, opts ...Option) *Shell {
	s := &Shell{
		mode:        mode,
		baseURL:     BaseURL(mode),
		title:       "Todo",
		assetPrefix: "/assets",
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Mode returns the deployment mode the shell was built for.
func (s *Shell) Mode() Mode { return s.mode }

// BaseURL returns the API base URL injected into the page.
func (s *Shell) BaseURL() string { return s.baseURL }

type pageData struct {
	Title       string
	AssetPrefix string
	Boot        BootConfig
	Root        *Node
}

// Render writes the root page to w.
func (s *Shell) Render(w io.Writer) error {
	data := pageData{
		Title:       s.title,
		AssetPrefix: s.assetPrefix,
		Boot:        BootConfig{BaseURL: s.baseURL, Mode: s.mode.String()},
		Root:        Layout(),
	}
	if err := pageTemplate.ExecuteTemplate(w, "page", data); err != nil {
		return fmt.Errorf("rendering shell: %w", err)
	}
	return nil
}

// ServeHTTP renders the page. It buffers the output so a template failure
// turns into a 500 instead of a truncated document.
func (s *Shell) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := s.Render(&buf); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = buf.WriteTo(w)
}
