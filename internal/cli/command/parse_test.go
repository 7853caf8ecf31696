package command

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yndnr/snipboard/internal/core/domain"
)

func TestParse_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ops.sh")
	content := "# stale\n# restart\n\nsystemctl restart api\nuptime\n"
	os.WriteFile(path, []byte(content), 0o600)

	// Offline: no server flag needed.
	out := mustRun(t, "", "parse", path)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("want header and two rows:\n%s", out)
	}
	if !strings.Contains(lines[1], "# restart") || !strings.Contains(lines[1], "systemctl restart api") {
		t.Errorf("first snippet row = %q", lines[1])
	}
	if strings.Contains(out, "# stale") {
		t.Error("overwritten comment should not appear")
	}

	var got []domain.Snippet
	decodeJSON(t, mustRun(t, "", "-o", "json", "parse", path), &got)
	want := []domain.Snippet{
		{Comment: "# restart", HasComment: true, Command: "systemctl restart api"},
		{Command: "uptime"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parse json (-want +got):\n%s", diff)
	}
}

func TestParse_Stdin(t *testing.T) {
	res := run(t, "", "# only comments\n\n# here\n", "parse", "-")
	if res.err != nil {
		t.Fatal(res.err)
	}
	if res.stdout != "No commands found.\n" {
		t.Errorf("stdout = %q", res.stdout)
	}
}

func TestParse_StripsScripts(t *testing.T) {
	res := run(t, "", "<script>alert(1)</script>\necho ok\n", "-o", "json", "parse", "-")
	if res.err != nil {
		t.Fatal(res.err)
	}
	var got []domain.Snippet
	decodeJSON(t, res.stdout, &got)
	if len(got) != 1 || got[0].Command != "echo ok" {
		t.Errorf("snippets = %+v", got)
	}
}

func TestParse_Errors(t *testing.T) {
	if res := run(t, "", "", "parse"); res.err == nil {
		t.Error("parse without a file should fail")
	}
	if res := run(t, "", "", "parse", filepath.Join(t.TempDir(), "nope")); res.err == nil {
		t.Error("parse of a missing file should fail")
	}
}
