package storage

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jwebster45206/codescape/pkg/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T, ttl time.Duration) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	store := NewRedisStorage(mr.Addr(), ttl, logger)

	t.Cleanup(func() {
		_ = store.Close()
		mr.Close()
	})
	return store, mr
}

func TestRedisStorage_Ping(t *testing.T) {
	store, _ := setupTestRedis(t, time.Hour)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestRedisStorage_SaveAndLoadSession(t *testing.T) {
	store, mr := setupTestRedis(t, time.Hour)
	ctx := context.Background()

	s := game.NewSession()
	game.Initialize(s)
	require.NoError(t, store.SaveSession(ctx, s))

	assert.True(t, mr.Exists("session:"+s.ID.String()))

	loaded, err := store.LoadSession(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, s.ID, loaded.ID)
	assert.True(t, loaded.Initialized)
	assert.WithinDuration(t, s.CreatedAt, loaded.CreatedAt, time.Millisecond)
}

func TestRedisStorage_LoadNonExistentSession(t *testing.T) {
	store, _ := setupTestRedis(t, time.Hour)

	loaded, err := store.LoadSession(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStorage_DeleteSession(t *testing.T) {
	store, mr := setupTestRedis(t, time.Hour)
	ctx := context.Background()

	s := game.NewSession()
	require.NoError(t, store.SaveSession(ctx, s))
	require.NoError(t, store.DeleteSession(ctx, s.ID))

	assert.False(t, mr.Exists("session:"+s.ID.String()))
	loaded, err := store.LoadSession(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStorage_SessionExpires(t *testing.T) {
	store, mr := setupTestRedis(t, time.Minute)
	ctx := context.Background()

	s := game.NewSession()
	require.NoError(t, store.SaveSession(ctx, s))
	assert.Equal(t, time.Minute, mr.TTL("session:"+s.ID.String()))

	mr.FastForward(2 * time.Minute)

	loaded, err := store.LoadSession(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStorage_SaveRefreshesTTL(t *testing.T) {
	store, mr := setupTestRedis(t, time.Minute)
	ctx := context.Background()

	s := game.NewSession()
	require.NoError(t, store.SaveSession(ctx, s))
	mr.FastForward(45 * time.Second)

	require.NoError(t, store.SaveSession(ctx, s))
	mr.FastForward(45 * time.Second)

	loaded, err := store.LoadSession(ctx, s.ID)
	require.NoError(t, err)
	assert.NotNil(t, loaded)
}

func TestRedisStorage_SaveNil(t *testing.T) {
	store, _ := setupTestRedis(t, time.Hour)
	assert.Error(t, store.SaveSession(context.Background(), nil))
}

func TestRedisStorage_CorruptSession(t *testing.T) {
	store, mr := setupTestRedis(t, time.Hour)

	id := uuid.New()
	require.NoError(t, mr.Set("session:"+id.String(), "{not json"))

	_, err := store.LoadSession(context.Background(), id)
	assert.ErrorContains(t, err, "failed to unmarshal session")
}

func TestRedisStorage_WaitForConnection(t *testing.T) {
	store, mr := setupTestRedis(t, time.Hour)
	store.retryDelay = 10 * time.Millisecond
	store.maxRetries = 3

	assert.NoError(t, store.WaitForConnection(context.Background()))

	mr.Close()
	err := store.WaitForConnection(context.Background())
	assert.ErrorContains(t, err, "did not become available after 3 attempts")
}
