package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/jwebster45206/codescape/pkg/game"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// PanelMessage is a response payload as the panel receives it. Which fields
// are set depends on Type.
type PanelMessage struct {
	Type              string   `json:"type"`
	Narrative         string   `json:"narrative"`
	Command           string   `json:"command,omitempty"`
	Actions           []string `json:"actions,omitempty"`
	AvailableCommands []string `json:"availableCommands,omitempty"`
}

// Suggestions returns the quick actions carried by the message.
func (m *PanelMessage) Suggestions() []string {
	if len(m.Actions) > 0 {
		return m.Actions
	}
	return m.AvailableCommands
}

type actionRequest struct {
	Action string `json:"action"`
}

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

func createSession(client *http.Client, baseURL string) (*game.Session, error) {
	var s game.Session
	if err := postJSON(client, baseURL+"/v1/session", nil, http.StatusCreated, &s); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &s, nil
}

func initializePlayer(client *http.Client, baseURL string, sessionID uuid.UUID) (*PanelMessage, error) {
	var msg PanelMessage
	url := fmt.Sprintf("%s/v1/session/%s/initialize", baseURL, sessionID)
	if err := postJSON(client, url, nil, http.StatusOK, &msg); err != nil {
		return nil, fmt.Errorf("failed to initialize player: %w", err)
	}
	return &msg, nil
}

func sendAction(client *http.Client, baseURL string, sessionID uuid.UUID, action string) (*PanelMessage, error) {
	var msg PanelMessage
	url := fmt.Sprintf("%s/v1/session/%s/action", baseURL, sessionID)
	if err := postJSON(client, url, actionRequest{Action: action}, http.StatusOK, &msg); err != nil {
		return nil, fmt.Errorf("failed to send action: %w", err)
	}
	return &msg, nil
}

func deleteSession(client *http.Client, baseURL string, sessionID uuid.UUID) error {
	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/v1/session/%s", baseURL, sessionID), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("API returned status %d", resp.StatusCode)
	}
	return nil
}

func postJSON(client *http.Client, url string, body any, wantStatus int, out any) error {
	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	resp, err := client.Post(url, "application/json", &payload)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != wantStatus {
		var errorResp ErrorResponse
		if err := json.Unmarshal(data, &errorResp); err != nil || errorResp.Error == "" {
			return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(data))
		}
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, errorResp.Error)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
