package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pathwise/compass/internal/services/orchestrator"
	"github.com/pathwise/compass/pkg/httpext"
	"github.com/rs/zerolog/log"
)

// Responder is the orchestrator surface the chat handlers depend on.
type Responder interface {
	Respond(ctx context.Context, sessionID, message string, emit func(string) error) (*orchestrator.Result, error)
}

// ChatRequest is the inbound chat payload.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" validate:"required"`
}

// StreamEvent is one server-sent chat event: a message fragment, the done
// sentinel, or a terminal error.
type StreamEvent struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
}

// use a single instance of Validate, it caches struct info
var validate = validator.New(validator.WithRequiredStructEnabled())

// HandleChat answers one user message. By default the response is a
// server-sent-event stream of message fragments terminated by a done or error
// event; callers sending Accept: application/json get a single aggregated
// object instead.
func HandleChat(responder Responder, w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("Client sent malformed JSON request")
		httpext.JsonError(w, "Invalid request format", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		log.Warn().Err(err).Msg("Chat request validation failed")
		httpext.JsonErrorWithDetails(w, http.StatusBadRequest, httpext.ErrorResponse{
			Error:  "invalid_request",
			Detail: "Missing required field: message",
		})
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	w.Header().Set("X-Session-ID", sessionID)

	log.Info().
		Str("session_id", sessionID).
		Str("client_ip", r.RemoteAddr).
		Msg("Received chat request")

	if wantsJSON(r) {
		respondAggregated(responder, w, r, sessionID, req.Message)
		return
	}
	respondStreaming(responder, w, r, sessionID, req.Message)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func respondAggregated(responder Responder, w http.ResponseWriter, r *http.Request, sessionID, message string) {
	result, err := responder.Respond(r.Context(), sessionID, message, nil)
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("Failed to generate response")
		httpext.JsonError(w, "Failed to generate response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Error().Err(err).Msg("Failed to encode chat response")
	}
}

func respondStreaming(responder Responder, w http.ResponseWriter, r *http.Request, sessionID, message string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		httpext.JsonError(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	_, err := responder.Respond(r.Context(), sessionID, message, func(fragment string) error {
		if err := writeEvent(w, StreamEvent{Type: "message", Content: fragment}); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})
	if err != nil {
		// Fragments already sent stand; the error event is terminal.
		log.Error().Err(err).Str("session_id", sessionID).Msg("Chat stream failed")
		_ = writeEvent(w, StreamEvent{Type: "error", Content: "Failed to generate response"})
		flusher.Flush()
		return
	}

	_ = writeEvent(w, StreamEvent{Type: "done"})
	flusher.Flush()
}

func writeEvent(w http.ResponseWriter, event StreamEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", data)
	return err
}
