package command

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	cliconfig "github.com/yndnr/snipboard/internal/cli/config"
)

// runWithConfig runs the CLI with an explicit config file path.
func runWithConfig(t *testing.T, cfgPath string, args ...string) cliResult {
	t.Helper()
	return run(t, "", "", append([]string{"--config", cfgPath}, args...)...)
}

func TestConfigShow_Precedence(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "cli.yaml")
	os.WriteFile(cfgPath, []byte("server: file-host:5080\noutput: yaml\ntimeout: 9s\n"), 0o600)

	var view settingsView
	res := runWithConfig(t, cfgPath, "-o", "json", "config", "show")
	if res.err != nil {
		t.Fatal(res.err)
	}
	decodeJSON(t, res.stdout, &view)
	if view.Server != "file-host:5080" || view.Timeout != "9s" || view.Output != "json" {
		t.Errorf("settings = %+v", view)
	}

	t.Setenv("SNIPBOARD_SERVER", "env-host:5080")
	res = runWithConfig(t, cfgPath, "-o", "json", "config", "show")
	decodeJSON(t, res.stdout, &view)
	if view.Server != "env-host:5080" {
		t.Errorf("env should override file, server = %q", view.Server)
	}

	res = runWithConfig(t, cfgPath, "-o", "json", "--server", "flag-host:1", "--timeout", "2s", "config", "show")
	decodeJSON(t, res.stdout, &view)
	if view.Server != "flag-host:1" || view.Timeout != "2s" {
		t.Errorf("flags should override env and file: %+v", view)
	}
}

func TestConfig_InvalidFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "cli.yaml")
	os.WriteFile(cfgPath, []byte("output: xml\n"), 0o600)

	if res := runWithConfig(t, cfgPath, "config", "show"); res.err == nil {
		t.Error("an invalid config file should fail every command")
	}
}

func TestConfig_BadOutputFlag(t *testing.T) {
	if res := run(t, "", "", "-o", "xml", "config", "show"); res.err == nil {
		t.Error("unknown output format should fail")
	}
}

func TestConfigInit(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "sub", "cli.yaml")

	res := runWithConfig(t, cfgPath, "--server", "unix:///run/snipboard.sock", "config", "init")
	if res.err != nil {
		t.Fatalf("config init: %v", res.err)
	}

	cfg, err := cliconfig.Load(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server != "unix:///run/snipboard.sock" || cfg.Output != "table" || cfg.Timeout != "30s" {
		t.Errorf("written config = %+v", cfg)
	}

	if res := runWithConfig(t, cfgPath, "config", "init"); res.err == nil || !strings.Contains(res.err.Error(), "--force") {
		t.Errorf("second init error = %v, want refusal", res.err)
	}
	if res := runWithConfig(t, cfgPath, "config", "init", "--force"); res.err != nil {
		t.Errorf("init --force: %v", res.err)
	}
}

func TestConfigCheck(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	os.WriteFile(good, []byte("storage:\n  engine: memory\nsecurity:\n  encryption_key: 0123456789abcdef-secret\n"), 0o600)

	out := mustRun(t, "", "config", "check", good)
	if !strings.Contains(out, "is valid") {
		t.Errorf("check output = %q", out)
	}
	if strings.Contains(out, "0123456789abcdef-secret") {
		t.Error("encryption key printed unmasked")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("storage:\n  engine: bolt\n"), 0o600)
	if res := run(t, "", "", "config", "check", bad); res.err == nil || !strings.Contains(res.err.Error(), "storage.engine") {
		t.Errorf("bad config error = %v", res.err)
	}

	if res := run(t, "", "", "config", "check"); res.err == nil {
		t.Error("check without a file should fail")
	}
}
