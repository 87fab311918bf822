package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/jwebster45206/codescape/pkg/game"
)

// ActionRequest is the body of a playerAction message.
type ActionRequest struct {
	Action string `json:"action"`
}

// handleInitialize marks the player profile as initialized and returns the
// welcome payload.
func (h *SessionHandler) handleInitialize(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	s, ok := h.loadSession(w, r, id)
	if !ok {
		return
	}

	wasInitialized := s.Initialized
	resp := game.Initialize(s)

	if !wasInitialized {
		if err := h.storage.SaveSession(r.Context(), s); err != nil {
			h.logger.Error("Failed to save session", "session_id", id, "error", err)
			h.writeError(w, http.StatusInternalServerError, "Failed to initialize player")
			return
		}
	}

	h.logger.Info("Player initialized", "session_id", id, "already_initialized", wasInitialized)
	h.writeJSON(w, http.StatusOK, resp)
}

// handleAction dispatches one player command. Game-level errors such as an
// uninitialized session are regular 200 responses with type "error".
func (h *SessionHandler) handleAction(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid request body. Expected JSON with 'action' field.")
		return
	}

	s, ok := h.loadSession(w, r, id)
	if !ok {
		return
	}

	h.logger.Debug("Player action received", "session_id", id, "action", req.Action)
	resp := game.Dispatch(*s, req.Action)

	if resp.Type() == game.TypeError {
		h.logger.Info("Player action rejected",
			"session_id", id,
			"action", req.Action,
			"initialized", s.Initialized)
	}

	h.writeJSON(w, http.StatusOK, resp)
}
