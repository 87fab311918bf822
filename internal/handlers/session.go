package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jwebster45206/codescape/pkg/game"
	"github.com/jwebster45206/codescape/pkg/storage"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SessionHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewSessionHandler(logger *slog.Logger, storage storage.Storage) *SessionHandler {
	return &SessionHandler{
		logger:  logger,
		storage: storage,
	}
}

// ServeHTTP handles HTTP requests for sessions
// Routes:
// POST /v1/session                 - Create new session
// GET /v1/session/{id}             - Read session by ID
// DELETE /v1/session/{id}          - Delete session by ID
// POST /v1/session/{id}/initialize - Initialize the player profile
// POST /v1/session/{id}/action     - Dispatch a player action
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/session"), "/")
	if path == "" {
		if r.Method != http.MethodPost {
			h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
			return
		}
		h.handleCreate(w, r)
		return
	}

	idStr, action, _ := strings.Cut(path, "/")
	sessionID, err := uuid.Parse(idStr)
	if err != nil {
		h.logger.Warn("Invalid session ID", "id", idStr, "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	switch action {
	case "":
		switch r.Method {
		case http.MethodGet:
			h.handleRead(w, r, sessionID)
		case http.MethodDelete:
			h.handleDelete(w, r, sessionID)
		default:
			h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET, DELETE")
		}
	case "initialize", "action":
		if r.Method != http.MethodPost {
			h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
			return
		}
		if action == "initialize" {
			h.handleInitialize(w, r, sessionID)
		} else {
			h.handleAction(w, r, sessionID)
		}
	default:
		h.logger.Warn("Unknown session route", "path", r.URL.Path)
		h.writeError(w, http.StatusNotFound, "Not found")
	}
}

func (h *SessionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	s := game.NewSession()
	if err := h.storage.SaveSession(r.Context(), s); err != nil {
		h.logger.Error("Failed to save session", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	h.logger.Info("Session created", "session_id", s.ID)
	h.writeJSON(w, http.StatusCreated, s)
}

func (h *SessionHandler) handleRead(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	s, ok := h.loadSession(w, r, id)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, s)
}

func (h *SessionHandler) handleDelete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.storage.DeleteSession(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete session", "session_id", id, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to delete session")
		return
	}

	h.logger.Info("Session deleted", "session_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// loadSession writes the error response itself and reports false when the
// session could not be loaded.
func (h *SessionHandler) loadSession(w http.ResponseWriter, r *http.Request, id uuid.UUID) (*game.Session, bool) {
	s, err := h.storage.LoadSession(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load session", "session_id", id, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to load session")
		return nil, false
	}
	if s == nil {
		h.logger.Warn("Session not found", "session_id", id)
		h.writeError(w, http.StatusNotFound, "Session not found")
		return nil, false
	}
	return s, true
}

func (h *SessionHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

func (h *SessionHandler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, ErrorResponse{Error: msg})
}
