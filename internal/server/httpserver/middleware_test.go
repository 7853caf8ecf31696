package httpserver

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yndnr/snipboard/internal/telemetry/logger"
	"github.com/yndnr/snipboard/internal/telemetry/metric"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestRequestID tests the RequestID middleware.
func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logger.RequestIDFromContext(r.Context())
		if _, ok := r.Context().Value(ContextKeyStartTime).(time.Time); !ok {
			t.Error("expected start time in context")
		}
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("generates request ID when not provided", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

		id := rec.Header().Get(HeaderRequestID)
		if !strings.HasPrefix(id, "req-") || len(id) != len("req-")+26 {
			t.Errorf("request id = %q, want req-<ulid>", id)
		}
		if seen != id {
			t.Errorf("context id = %q, header id = %q", seen, id)
		}
	})

	t.Run("preserves existing request ID", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(HeaderRequestID, "existing-id-123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get(HeaderRequestID); got != "existing-id-123" {
			t.Errorf("request id = %q", got)
		}
	})

	t.Run("replaces oversized request ID", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(HeaderRequestID, strings.Repeat("x", 500))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get(HeaderRequestID); !strings.HasPrefix(got, "req-") {
			t.Errorf("request id = %q, want generated", got)
		}
	})
}

// TestChain tests middleware chaining.
func TestChain(t *testing.T) {
	var order []int
	mark := func(n int) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, n)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, 0)
	}), mark(1), mark(2), mark(3))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	want := []int{1, 2, 3, 0}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestRateLimit(t *testing.T) {
	send := func(h http.Handler, addr string) int {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	t.Run("limits burst from same IP", func(t *testing.T) {
		h := RateLimit(1, 2)(okHandler())

		for i := 0; i < 2; i++ {
			if code := send(h, "10.0.0.99:1"); code != http.StatusOK {
				t.Errorf("request %d: status %d, want 200", i+1, code)
			}
		}
		if code := send(h, "10.0.0.99:1"); code != http.StatusTooManyRequests {
			t.Errorf("status %d, want 429", code)
		}
	})

	t.Run("separate buckets per IP", func(t *testing.T) {
		h := RateLimit(1, 1)(okHandler())

		if code := send(h, "192.168.100.1:1"); code != http.StatusOK {
			t.Errorf("first IP: status %d", code)
		}
		if code := send(h, "192.168.100.2:1"); code != http.StatusOK {
			t.Errorf("second IP: status %d", code)
		}
	})

	t.Run("refills over time", func(t *testing.T) {
		h := RateLimit(20, 1)(okHandler())

		send(h, "10.0.0.88:1")
		if code := send(h, "10.0.0.88:1"); code != http.StatusTooManyRequests {
			t.Errorf("status %d, want 429", code)
		}
		time.Sleep(100 * time.Millisecond)
		if code := send(h, "10.0.0.88:1"); code != http.StatusOK {
			t.Errorf("after refill: status %d, want 200", code)
		}
	})

	t.Run("error envelope", func(t *testing.T) {
		h := RateLimit(1, 1)(okHandler())
		send(h, "10.1.1.1:1")

		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "10.1.1.1:1"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Header().Get("X-Error-Code") != "SB-SYS-4290" {
			t.Errorf("X-Error-Code = %q", rec.Header().Get("X-Error-Code"))
		}
		if rec.Header().Get("Retry-After") == "" {
			t.Error("missing Retry-After")
		}
	})

	t.Run("concurrent access", func(t *testing.T) {
		h := RateLimit(1000, 1000)(okHandler())
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				send(h, "172.16.0.1:1")
			}()
		}
		wg.Wait()
	})
}

func TestLimiterSet_SweepsIdleClients(t *testing.T) {
	s := newLimiterSet(1, 1)
	s.allow("a")
	s.clients["a"].lastSeen = time.Now().Add(-2 * limiterIdle)
	s.lastSweep = time.Now().Add(-2 * limiterIdle)

	s.allow("b")

	if _, ok := s.clients["a"]; ok {
		t.Error("idle client was not swept")
	}
	if _, ok := s.clients["b"]; !ok {
		t.Error("new client missing")
	}
}

// TestRecover tests the Recover middleware.
func TestRecover(t *testing.T) {
	t.Run("recovers from panic", func(t *testing.T) {
		h := Recover(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("test panic")
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status %d, want 500", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "SB-SYS-5000") {
			t.Errorf("body = %s", rec.Body.String())
		}
	})

	t.Run("passes through normal requests", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Recover(discardLogger())(okHandler()).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("status %d, want 200", rec.Code)
		}
	})
}

// TestCORS tests the CORS middleware.
func TestCORS(t *testing.T) {
	t.Run("adds CORS headers for allowed origin", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Origin", "http://example.com")
		rec := httptest.NewRecorder()
		CORS([]string{"http://example.com"})(okHandler()).ServeHTTP(rec, req)

		if rec.Header().Get("Access-Control-Allow-Origin") != "http://example.com" {
			t.Error("expected Access-Control-Allow-Origin header")
		}
		if !strings.Contains(rec.Header().Get("Access-Control-Expose-Headers"), "ETag") {
			t.Error("ETag should be exposed")
		}
	})

	t.Run("handles preflight", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/api/v1/theme", nil)
		req.Header.Set("Origin", "http://example.com")
		req.Header.Set("Access-Control-Request-Method", "PUT")
		rec := httptest.NewRecorder()
		CORS([]string{"*"})(okHandler()).ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("status %d, want 204", rec.Code)
		}
	})

	t.Run("does not add headers for non-allowed origin", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Origin", "http://notallowed.com")
		rec := httptest.NewRecorder()
		CORS([]string{"http://allowed.com"})(okHandler()).ServeHTTP(rec, req)

		if rec.Header().Get("Access-Control-Allow-Origin") != "" {
			t.Error("should not add CORS header for non-allowed origin")
		}
	})
}

// TestGetClientIP tests the getClientIP function.
func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name   string
		xff    string
		realIP string
		remote string
		want   string
	}{
		{"X-Forwarded-For", "10.0.0.1, 10.0.0.2", "", "192.168.1.1:12345", "10.0.0.1"},
		{"X-Real-IP", "", "10.0.0.3", "192.168.1.1:12345", "10.0.0.3"},
		{"RemoteAddr", "", "", "192.168.1.1:12345", "192.168.1.1"},
		{"IPv6 RemoteAddr", "", "", "[::1]:8080", "::1"},
		{"bare RemoteAddr", "", "", "pipe", "pipe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAudit(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   string
	}{
		{"success", http.StatusOK, "request completed"},
		{"client error", http.StatusNotFound, "client error"},
		{"server error", http.StatusInternalServerError, "completed with error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf strings.Builder
			log := slog.New(slog.NewTextHandler(&buf, nil))

			h := Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}), RequestID(), Audit(log))

			req := httptest.NewRequest("DELETE", "/api/v1/documents/3", nil)
			req.Header.Set(HeaderRequestID, "audit-req-1")
			h.ServeHTTP(httptest.NewRecorder(), req)

			out := buf.String()
			if !strings.Contains(out, tt.want) {
				t.Errorf("log = %s, want %q", out, tt.want)
			}
			if !strings.Contains(out, "request_id=audit-req-1") {
				t.Errorf("log missing request id: %s", out)
			}
		})
	}
}

func TestMetrics(t *testing.T) {
	reg := metric.NewRegistry()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/documents/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	h := Metrics(reg)(mux)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/documents/7", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/nowhere", nil))

	if got := testutil.ToFloat64(reg.RequestsTotal.WithLabelValues("GET", "/api/v1/documents/{id}", "404")); got != 1 {
		t.Errorf("pattern counter = %v, want 1", got)
	}
	if got := testutil.ToFloat64(reg.RequestsTotal.WithLabelValues("GET", "unmatched", "404")); got != 1 {
		t.Errorf("unmatched counter = %v, want 1", got)
	}
}

func TestRouteLabel(t *testing.T) {
	tests := map[string]string{
		"":                              "unmatched",
		"GET /api/v1/theme":             "/api/v1/theme",
		"/static/":                      "/static/",
		"DELETE /api/v1/documents/{id}": "/api/v1/documents/{id}",
	}
	for in, want := range tests {
		if got := routeLabel(in); got != want {
			t.Errorf("routeLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

// TestResponseWriter tests the responseWriter wrapper.
func TestResponseWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	w.WriteHeader(http.StatusCreated)
	w.WriteHeader(http.StatusTeapot)
	w.Write([]byte("hello"))

	if w.statusCode != http.StatusCreated {
		t.Errorf("statusCode = %d, want first WriteHeader value", w.statusCode)
	}
	if w.written != 5 {
		t.Errorf("written = %d, want 5", w.written)
	}
	if http.NewResponseController(w) == nil {
		t.Error("ResponseController should accept the wrapper")
	}
}
