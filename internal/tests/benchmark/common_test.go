package benchmark

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"testing"

	"github.com/yndnr/snipboard/internal/core/domain"
	"github.com/yndnr/snipboard/internal/storage"
)

// DocumentCounts are the open-tab counts benchmarks run at.
var DocumentCounts = []int{1, 10, 50, 200}

// SnippetCounts are the per-document command counts for parser benchmarks.
var SnippetCounts = []int{10, 100, 1000}

// snippetSource builds a document with n commented commands, blank lines
// between every few entries, and the odd stray comment.
func snippetSource(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		if i%5 == 0 {
			sb.WriteString("\n# superseded note\n")
		}
		fmt.Fprintf(&sb, "# step %d: restart the worker\n", i)
		fmt.Fprintf(&sb, "systemctl restart worker@%d.service --no-block\n", i)
	}
	return sb.String()
}

// storedFiles returns count files of n snippets each.
func storedFiles(count, n int) []domain.StoredFile {
	content := snippetSource(n)
	files := make([]domain.StoredFile, count)
	for i := range files {
		files[i] = domain.StoredFile{Name: fmt.Sprintf("runbook-%03d.txt", i), Content: content}
	}
	return files
}

func openBadger(b *testing.B) *storage.BadgerEngine {
	b.Helper()
	cfg := storage.DefaultKVConfig(b.TempDir())
	cfg.Badger.SyncWrites = false
	engine, err := storage.NewBadgerEngine(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		b.Fatalf("open badger: %v", err)
	}
	b.Cleanup(func() { engine.Close() })
	return engine
}

// reportMemory reports memory usage.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.Alloc)/(1024*1024), prefix+"_MB")
	b.ReportMetric(float64(m.NumGC), prefix+"_GC")
}

// runWithCounts runs benchFn once per count as a sub-benchmark.
func runWithCounts(b *testing.B, label string, counts []int, benchFn func(b *testing.B, count int)) {
	for _, count := range counts {
		b.Run(fmt.Sprintf("%s_%d", label, count), func(b *testing.B) {
			benchFn(b, count)
		})
	}
}
