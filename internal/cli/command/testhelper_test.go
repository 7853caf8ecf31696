package command

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/snipboard/internal/core/service"
	"github.com/yndnr/snipboard/internal/server/httpserver"
	"github.com/yndnr/snipboard/internal/storage/memory"
	"github.com/yndnr/snipboard/internal/storage/persist"
)

// boardServer is a real board API over in-memory storage.
type boardServer struct {
	*httptest.Server
	ctrl *service.TabController
}

func newBoardServer(t *testing.T) *boardServer {
	t.Helper()

	kv := memory.NewKV()
	adapter := persist.New(kv)
	ctrl := service.NewTabController(service.NewDocumentStore(adapter), adapter)

	cfg := httpserver.DefaultRouterConfig()
	cfg.Controller = ctrl
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg.RateLimit = 0
	cfg.EnableAudit = false
	h, err := httpserver.NewRouter(cfg)
	if err != nil {
		t.Fatalf("NewRouter() error = %v", err)
	}

	srv := httptest.NewServer(h)
	t.Cleanup(func() {
		srv.Close()
		kv.Close()
	})
	return &boardServer{Server: srv, ctrl: ctrl}
}

// open adds a document directly through the controller.
func (b *boardServer) open(t *testing.T, name, content string) string {
	t.Helper()
	doc, err := b.ctrl.Open(context.Background(), name, content)
	if err != nil {
		t.Fatalf("Open(%s) error = %v", name, err)
	}
	return doc.ID.String()
}

// cliResult holds captured output of one CLI run.
type cliResult struct {
	stdout string
	stderr string
	err    error
}

// run executes the CLI with args against server. A missing config file
// keeps the user's ~/.snipboard/cli.yaml out of tests.
func run(t *testing.T, server string, stdin string, args ...string) cliResult {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := App()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	app.Reader = strings.NewReader(stdin)
	app.ExitErrHandler = func(*cli.Context, error) {}

	full := []string{"snipboard-cli", "--config", filepath.Join(t.TempDir(), "cli.yaml")}
	if server != "" {
		full = append(full, "--server", server)
	}
	full = append(full, args...)

	err := app.Run(full)
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// mustRun fails the test on a CLI error.
func mustRun(t *testing.T, server string, args ...string) string {
	t.Helper()
	res := run(t, server, "", args...)
	if res.err != nil {
		t.Fatalf("%v: %v (stderr %q)", args, res.err, res.stderr)
	}
	return res.stdout
}

func decodeJSON(t *testing.T, s string, v any) {
	t.Helper()
	if err := json.Unmarshal([]byte(s), v); err != nil {
		t.Fatalf("invalid JSON output %q: %v", s, err)
	}
}

// stubServer answers every request with status and body.
func stubServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func stubServerMux(t *testing.T, h http.Handler) string {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv.URL
}
