package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/pathwise/compass/internal/services/conversation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionRouter(store conversation.Store) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/v1/chat/sessions/{session_id}", func(w http.ResponseWriter, r *http.Request) {
		HandleClearSession(store, w, r)
	}).Methods("DELETE")
	return r
}

func TestHandleClearSession(t *testing.T) {
	store := conversation.NewMemoryStore(10)
	require.NoError(t, store.Append(context.Background(), "s1",
		conversation.Message{Role: conversation.RoleUser, Content: "hello"},
		conversation.Message{Role: conversation.RoleAssistant, Content: "hi"},
	))

	req := httptest.NewRequest(http.MethodDelete, "/v1/chat/sessions/s1", nil)
	w := httptest.NewRecorder()
	sessionRouter(store).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)

	history, err := store.History(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestHandleClearSessionUnknownSession(t *testing.T) {
	store := conversation.NewMemoryStore(10)

	req := httptest.NewRequest(http.MethodDelete, "/v1/chat/sessions/never-written", nil)
	w := httptest.NewRecorder()
	sessionRouter(store).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
