package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pathwise/compass/internal/services/conversation"
	"github.com/pathwise/compass/pkg/httpext"
	"github.com/rs/zerolog/log"
)

// HandleClearSession deletes the stored history for one session. Clearing a
// session that has never been written is a no-op success.
func HandleClearSession(store conversation.Store, w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["session_id"]

	if err := store.Clear(r.Context(), sessionID); err != nil {
		if errors.Is(err, conversation.ErrInvalidSession) {
			httpext.JsonError(w, "Invalid session id", http.StatusBadRequest)
			return
		}
		log.Error().Err(err).Str("session_id", sessionID).Msg("Failed to clear session history")
		httpext.JsonError(w, "Failed to clear session history", http.StatusInternalServerError)
		return
	}

	log.Info().Str("session_id", sessionID).Msg("Session history cleared")
	w.WriteHeader(http.StatusNoContent)
}
