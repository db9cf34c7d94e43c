// AngelaMos | 2026
// logger_test.go

package middleware

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLoggerRecordsStatusAndMethod(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := Logger(logger)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		},
	))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	line := buf.String()
	if !strings.Contains(line, `"status":404`) {
		t.Errorf("log line missing status: %s", line)
	}
	if !strings.Contains(line, `"method":"GET"`) {
		t.Errorf("log line missing method: %s", line)
	}
}

func TestLoggerPreservesFlusher(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := Logger(logger)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			f, ok := w.(http.Flusher)
			if !ok {
				t.Fatal("wrapped writer does not expose http.Flusher")
			}
			f.Flush()
		},
	))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stream", nil))

	if !rec.Flushed {
		t.Error("flush did not reach the underlying writer")
	}
}

func TestLoggerHijackWithoutSupport(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := Logger(logger)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			h, ok := w.(http.Hijacker)
			if !ok {
				t.Fatal("wrapped writer does not expose http.Hijacker")
			}
			// httptest.ResponseRecorder cannot hijack; the wrapper must
			// report that instead of panicking.
			if _, _, err := h.Hijack(); !errors.Is(err, http.ErrNotSupported) {
				t.Errorf("error = %v, want http.ErrNotSupported", err)
			}
			w.WriteHeader(http.StatusOK)
		},
	))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws", nil))
}
