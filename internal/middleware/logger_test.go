package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	handler := Logger(log, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	t.Run("generates request id", func(t *testing.T) {
		buf.Reset()
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusTeapot, rr.Code)
		id := rr.Header().Get(RequestIDHeader)
		assert.NotEmpty(t, id)
		assert.Contains(t, buf.String(), "request_id="+id)
		assert.Contains(t, buf.String(), "status=418")
		assert.Contains(t, buf.String(), "path=/health")
	})

	t.Run("reuses incoming request id", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodPost, "/v1/session", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
		assert.Contains(t, buf.String(), "request_id=abc-123")
	})
}
