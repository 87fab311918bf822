package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jwebster45206/codescape/internal/config"
	"github.com/jwebster45206/codescape/pkg/game"
	"github.com/jwebster45206/codescape/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func postJSON(t *testing.T, url string, body any) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	resp, err := http.Post(url, "application/json", &buf)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()
	require.Less(t, resp.StatusCode, 300)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestRouter_EndToEnd(t *testing.T) {
	srv := httptest.NewServer(newRouter(storage.NewMemoryStorage(), testLogger()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	created := postJSON(t, srv.URL+"/v1/session", nil)
	id, ok := created["id"].(string)
	require.True(t, ok)
	base := srv.URL + "/v1/session/" + id

	assert.Equal(t, "error", postJSON(t, base+"/action", map[string]string{"action": "wake up"})["type"])
	assert.Equal(t, "playerInitialized", postJSON(t, base+"/initialize", nil)["type"])
	assert.Equal(t, "awakening", postJSON(t, base+"/action", map[string]string{"action": "wake up"})["type"])
	assert.Equal(t, "scanning", postJSON(t, base+"/action", map[string]string{"action": "scan environment"})["type"])

	unknown := postJSON(t, base+"/action", map[string]string{"action": "xyzzy"})
	assert.Equal(t, "error", unknown["type"])
	assert.Contains(t, unknown["narrative"], "xyzzy")
}

func TestNewStorage(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		store, err := newStorage(&config.Config{StorageBackend: config.StorageMemory}, testLogger())
		require.NoError(t, err)
		assert.IsType(t, &storage.MemoryStorage{}, store)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)

		store, err := newStorage(&config.Config{
			StorageBackend: config.StorageRedis,
			RedisURL:       mr.Addr(),
			SessionTTL:     time.Hour,
		}, testLogger())
		require.NoError(t, err)
		defer func() {
			_ = store.Close()
		}()

		s := game.NewSession()
		require.NoError(t, store.SaveSession(context.Background(), s))
		assert.True(t, mr.Exists("session:"+s.ID.String()))
	})
}
