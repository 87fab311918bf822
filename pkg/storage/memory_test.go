package storage

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jwebster45206/codescape/pkg/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage_SaveAndLoadSession(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	s := game.NewSession()
	require.NoError(t, store.SaveSession(ctx, s))

	loaded, err := store.LoadSession(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, s.ID, loaded.ID)
	assert.False(t, loaded.Initialized)
}

func TestMemoryStorage_LoadReturnsCopy(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	s := game.NewSession()
	require.NoError(t, store.SaveSession(ctx, s))

	loaded, err := store.LoadSession(ctx, s.ID)
	require.NoError(t, err)
	game.Initialize(loaded)

	again, err := store.LoadSession(ctx, s.ID)
	require.NoError(t, err)
	assert.False(t, again.Initialized, "unsaved changes must not leak into storage")

	require.NoError(t, store.SaveSession(ctx, loaded))
	again, err = store.LoadSession(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, again.Initialized)
}

func TestMemoryStorage_LoadNonExistentSession(t *testing.T) {
	store := NewMemoryStorage()

	loaded, err := store.LoadSession(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestMemoryStorage_DeleteSession(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	s := game.NewSession()
	require.NoError(t, store.SaveSession(ctx, s))
	require.NoError(t, store.DeleteSession(ctx, s.ID))

	loaded, err := store.LoadSession(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStorage_SaveNil(t *testing.T) {
	store := NewMemoryStorage()
	assert.Error(t, store.SaveSession(context.Background(), nil))
}

func TestMemoryStorage_Ping(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	assert.NoError(t, store.Ping(ctx))

	store.SetPingError(errors.New("down"))
	assert.EqualError(t, store.Ping(ctx), "down")

	store.SetPingSuccess()
	assert.NoError(t, store.Ping(ctx))
}

func TestMemoryStorage_IndependentSessions(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make([]uuid.UUID, 20)
	for i := range ids {
		s := game.NewSession()
		ids[i] = s.ID
		if i%2 == 0 {
			game.Initialize(s)
		}
		wg.Add(1)
		go func(s *game.Session) {
			defer wg.Done()
			assert.NoError(t, store.SaveSession(ctx, s))
		}(s)
	}
	wg.Wait()

	require.Equal(t, len(ids), store.Len())
	for i, id := range ids {
		loaded, err := store.LoadSession(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, i%2 == 0, loaded.Initialized)
	}
}
