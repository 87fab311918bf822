package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/codescape/pkg/game"
	"github.com/jwebster45206/codescape/pkg/storage"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// RedisStorage implements storage.Storage on top of Redis. Every session key
// carries a TTL that is refreshed on save, so idle sessions expire.
type RedisStorage struct {
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration

	// connection retry settings used by WaitForConnection
	maxRetries int
	retryDelay time.Duration
}

// Ensure RedisStorage implements Storage interface
var _ storage.Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance
func NewRedisStorage(redisURL string, ttl time.Duration, logger *slog.Logger) *RedisStorage {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	return &RedisStorage{
		client:     rdb,
		logger:     logger,
		ttl:        ttl,
		maxRetries: 30,
		retryDelay: 2 * time.Second,
	}
}

func sessionKey(id uuid.UUID) string {
	return sessionKeyPrefix + id.String()
}

// Health and lifecycle methods

func (r *RedisStorage) Ping(ctx context.Context) error {
	cmd := r.client.Ping(ctx)
	if err := cmd.Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	r.logger.Debug("Redis ping successful", "result", cmd.Val())
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context) error {
	for i := 0; i < r.maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(r.retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", r.maxRetries)
}

// Session operations

func (r *RedisStorage) SaveSession(ctx context.Context, s *game.Session) error {
	if s == nil {
		return errors.New("session cannot be nil")
	}

	data, err := json.Marshal(s)
	if err != nil {
		r.logger.Error("Failed to marshal session", "uuid", s.ID, "error", err)
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(s.ID), data, r.ttl).Err(); err != nil {
		r.logger.Error("Failed to save session", "uuid", s.ID, "error", err)
		return fmt.Errorf("failed to save session: %w", err)
	}

	r.logger.Debug("Session saved", "uuid", s.ID, "initialized", s.Initialized)
	return nil
}

func (r *RedisStorage) LoadSession(ctx context.Context, id uuid.UUID) (*game.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Debug("Session not found", "uuid", id)
			return nil, nil
		}
		r.logger.Error("Failed to load session", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var s game.Session
	if err := json.Unmarshal(data, &s); err != nil {
		r.logger.Error("Failed to unmarshal session", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &s, nil
}

func (r *RedisStorage) DeleteSession(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		r.logger.Error("Failed to delete session", "uuid", id, "error", err)
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
