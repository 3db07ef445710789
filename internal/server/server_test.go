package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaharia-lab/todo/internal/api"
	"github.com/shaharia-lab/todo/internal/metrics"
	"github.com/shaharia-lab/todo/internal/service"
	"github.com/shaharia-lab/todo/internal/shell"
	"github.com/shaharia-lab/todo/internal/storage"
)

func newTestServer(t *testing.T, mode shell.Mode, assets *fstest.MapFS, devURL string) (*Server, *httptest.Server) {
	t.Helper()

	db, _, err := storage.NewSQLiteDB(context.Background(), storage.MemoryDB)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewTodoService(storage.NewSQLiteTodoStore(db), nil, logger)
	sh := shell.New(mode)

	cfg := Config{
		API:          api.New(svc, sh, logger),
		Shell:        sh,
		DevServerURL: devURL,
		CORSOrigins:  []string{"http://localhost:5173"},
		Metrics:      metrics.New(),
		Logger:       logger,
	}
	if assets != nil {
		cfg.AssetsFS = assets
	}

	srv, err := New(cfg)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func defaultAssets() *fstest.MapFS {
	return &fstest.MapFS{
		"app.js":  {Data: []byte("console.log('todo')")},
		"app.css": {Data: []byte("body{}")},
	}
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url) //nolint:gosec,noctx
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(b)
}

func TestServer_ShellPage(t *testing.T) {
	tests := []struct {
		name        string
		mode        shell.Mode
		wantBaseURL string
	}{
		{"development", shell.ModeDevelopment, "http://127.0.0.1:4000/api"},
		{"other", shell.ModeOther, "/api"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ts := newTestServer(t, tt.mode, defaultAssets(), "")

			resp, body := get(t, ts.URL+"/")
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
			assert.Contains(t, body, tt.wantBaseURL)

			nav := strings.Index(body, `data-region="Navbar"`)
			form := strings.Index(body, `data-region="TodoForm"`)
			list := strings.Index(body, `data-region="TodoList"`)
			require.True(t, nav >= 0 && form >= 0 && list >= 0)
			assert.True(t, nav < form && form < list)
		})
	}
}

func TestServer_EmbeddedAssets(t *testing.T) {
	_, ts := newTestServer(t, shell.ModeOther, defaultAssets(), "")

	resp, body := get(t, ts.URL+"/assets/app.js")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "console.log('todo')", body)

	resp, _ = get(t, ts.URL+"/assets/missing.js")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_DevAssetsProxy(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "vite:"+r.URL.Path)
	}))
	t.Cleanup(upstream.Close)

	_, ts := newTestServer(t, shell.ModeDevelopment, nil, upstream.URL)

	resp, body := get(t, ts.URL+"/assets/app.js")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "vite:/assets/app.js", body)
}

func TestNew_InvalidDevServerURL(t *testing.T) {
	_, err := New(Config{
		API:    api.New(nil, shell.New(shell.ModeOther), slog.New(slog.NewTextHandler(io.Discard, nil))),
		Shell:  shell.New(shell.ModeOther),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	assert.Error(t, err)
}

func TestServer_TodoRoundTrip(t *testing.T) {
	_, ts := newTestServer(t, shell.ModeOther, defaultAssets(), "")
	client := ts.Client()

	resp, err := client.Post(ts.URL+"/api/todos", "application/json", strings.NewReader(`{"body":"ship it"}`))
	require.NoError(t, err)
	var created storage.Todo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "ship it", created.Body)

	req, _ := http.NewRequest(http.MethodPatch, ts.URL+"/api/todos/"+created.ID, nil)
	resp, err = client.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, body := get(t, ts.URL+"/api/todos")
	var todos []storage.Todo
	require.NoError(t, json.Unmarshal([]byte(body), &todos))
	require.Len(t, todos, 1)
	assert.True(t, todos[0].Completed)

	req, _ = http.NewRequest(http.MethodDelete, ts.URL+"/api/todos/"+created.ID, nil)
	resp, err = client.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req, _ = http.NewRequest(http.MethodDelete, ts.URL+"/api/todos/"+created.ID, nil)
	resp, err = client.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_CreateLongBody(t *testing.T) {
	_, ts := newTestServer(t, shell.ModeOther, defaultAssets(), "")

	long := strings.Repeat("a", 1001)
	resp, err := ts.Client().Post(ts.URL+"/api/todos", "application/json",
		strings.NewReader(`{"body":"`+long+`"}`))
	require.NoError(t, err)
	var created storage.Todo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, long, created.Body)
}

func TestServer_CORSPreflight(t *testing.T) {
	_, ts := newTestServer(t, shell.ModeOther, defaultAssets(), "")

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/api/todos", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestServer_HealthAndMetrics(t *testing.T) {
	_, ts := newTestServer(t, shell.ModeOther, defaultAssets(), "")

	resp, body := get(t, ts.URL+"/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)

	resp, body = get(t, ts.URL+"/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `todo_http_requests_total{method="GET",status="200"}`)
}

func TestServer_UnknownPaths(t *testing.T) {
	_, ts := newTestServer(t, shell.ModeOther, defaultAssets(), "")

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/some/page", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req, _ = http.NewRequest(http.MethodGet, ts.URL+"/favicon.ico", nil)
	req.Header.Set("Accept", "image/*")
	resp, err = ts.Client().Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_ServeStopsOnCancel(t *testing.T) {
	srv, _ := newTestServer(t, shell.ModeOther, defaultAssets(), "")

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	assert.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health") //nolint:gosec,noctx
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
