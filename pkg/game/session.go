package game

import (
	"time"

	"github.com/google/uuid"
)

// Session is the per-player state of a CODESCAPE game.
// Initialized flips from false to true exactly once and is never reset.
type Session struct {
	ID          uuid.UUID `json:"id"`
	Initialized bool      `json:"initialized"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewSession() *Session {
	return &Session{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
	}
}
