package command

import (
	"strings"
	"testing"
	"time"

	"github.com/yndnr/snipboard/internal/cli/output"
)

func TestApp_Commands(t *testing.T) {
	app := App()

	want := []string{"doc", "theme", "export", "import", "parse", "system", "config"}
	var got []string
	for _, c := range app.Commands {
		got = append(got, c.Name)
	}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("commands = %v, want %v", got, want)
	}
	if app.Name != "snipboard-cli" {
		t.Errorf("Name = %q", app.Name)
	}
}

func TestApp_GlobalFlags(t *testing.T) {
	names := map[string]bool{}
	for _, f := range globalFlags() {
		for _, n := range f.Names() {
			names[n] = true
		}
	}
	for _, want := range []string{"server", "s", "output", "o", "config", "timeout", "ca-file", "insecure", "verbose"} {
		if !names[want] {
			t.Errorf("missing global flag %q", want)
		}
	}
}

func TestApp_Help(t *testing.T) {
	res := run(t, "", "", "--help")
	if res.err != nil {
		t.Fatal(res.err)
	}
	if !strings.Contains(res.stdout, "snipboard-cli") {
		t.Errorf("help output = %q", res.stdout)
	}
}

func TestEnsureConnected_Verbose(t *testing.T) {
	srv := newBoardServer(t)

	res := run(t, srv.URL, "", "--verbose", "system", "health")
	if res.err != nil {
		t.Fatal(res.err)
	}
	if !strings.Contains(res.stderr, "server: "+srv.URL) {
		t.Errorf("stderr = %q", res.stderr)
	}
}

func TestEnsureConnected_BadCAFile(t *testing.T) {
	res := run(t, "https://localhost:1", "", "--ca-file", "/nonexistent/ca.pem", "system", "health")
	if res.err == nil || !strings.Contains(res.err.Error(), "tls") {
		t.Errorf("error = %v, want tls error", res.err)
	}
}

func TestGlobalFlags_Defaults(t *testing.T) {
	res := run(t, "", "", "-o", "json", "config", "show")
	if res.err != nil {
		t.Fatal(res.err)
	}

	var view settingsView
	decodeJSON(t, res.stdout, &view)
	if view.Server != "localhost:5080" || view.Timeout != (30*time.Second).String() {
		t.Errorf("defaults = %+v", view)
	}
	if output.Format(view.Output) != output.FormatJSON {
		t.Errorf("output = %q", view.Output)
	}
}
