package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/jwebster45206/codescape/pkg/game"
)

// Storage defines the session registry used by the API.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Session operations
	SaveSession(ctx context.Context, s *game.Session) error
	// LoadSession returns nil, nil when no session exists for the id.
	LoadSession(ctx context.Context, id uuid.UUID) (*game.Session, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
}
