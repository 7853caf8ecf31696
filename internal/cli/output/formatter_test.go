package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"", FormatTable, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewFormatter(FormatJSON).Format(&buf, map[string]int{"count": 1}); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "{\n  \"count\": 1\n}\n" {
		t.Errorf("json formatter output = %q", got)
	}
	buf.Reset()
	if err := NewFormatter(FormatYAML).Format(&buf, map[string]int{"count": 1}); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "count: 1\n" {
		t.Errorf("yaml formatter output = %q", got)
	}
	if _, ok := NewFormatter("unknown").(*TableFormatter); !ok {
		t.Error("unknown formats should default to table")
	}
}

type snippetView struct {
	Comment string `json:"comment,omitempty"`
	Command string `json:"command"`
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	data := []snippetView{{Comment: "# list", Command: "ls -la | grep <tmp> && echo done"}}

	if err := writeJSON(&buf, data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"command": "ls -la | grep <tmp> && echo done"`) {
		t.Errorf("commands should not be HTML-escaped:\n%s", out)
	}
	if !strings.Contains(out, "\n  ") {
		t.Error("output should be indented")
	}
}

func TestWriteJSON_Nil(t *testing.T) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "null" {
		t.Errorf("Format(nil) = %q, want null", buf.String())
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	data := struct {
		Preference string        `json:"preference"`
		Snippets   []snippetView `json:"snippets"`
	}{
		Preference: "dark",
		Snippets:   []snippetView{{Command: "make test"}},
	}

	if err := writeYAML(&buf, data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "preference: dark\nsnippets:\n  - command: make test\n"
	if buf.String() != want {
		t.Errorf("Format() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWriteYAML_Unencodable(t *testing.T) {
	var buf bytes.Buffer
	if err := writeYAML(&buf, make(chan int)); err == nil {
		t.Error("expected an error for a channel")
	}
}
