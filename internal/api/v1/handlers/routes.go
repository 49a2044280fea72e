package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pathwise/compass/internal/api/v1/middleware"
	"github.com/pathwise/compass/internal/connections"
	"github.com/pathwise/compass/internal/services"
)

// RegisterV1Routes mounts the v1 API surface.
func RegisterV1Routes(router *mux.Router, svc *services.Services, manager *connections.Manager) {
	v1 := router.PathPrefix("/v1").Subrouter()

	chat := v1.NewRoute().Subrouter()
	chat.Use(middleware.RateLimit("chat"))
	chat.HandleFunc("/chat", func(w http.ResponseWriter, r *http.Request) {
		HandleChat(svc.GetOrchestratorService(), w, r)
	}).Methods("POST")
	chat.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		HandleChatSocket(svc.GetOrchestratorService(), manager, w, r)
	}).Methods("GET")
	chat.HandleFunc("/chat/sessions/{session_id}", func(w http.ResponseWriter, r *http.Request) {
		HandleClearSession(svc.GetConversationStore(), w, r)
	}).Methods("DELETE")

	search := v1.NewRoute().Subrouter()
	search.Use(middleware.RateLimit("search"))
	search.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		HandleSearch(svc.GetPerplexityService(), w, r)
	}).Methods("POST")
	search.HandleFunc("/search/links", func(w http.ResponseWriter, r *http.Request) {
		HandleSearchLinks(svc.GetPerplexityService(), w, r)
	}).Methods("POST")

	transcribe := v1.NewRoute().Subrouter()
	transcribe.Use(middleware.RateLimit("transcribe"))
	transcribe.HandleFunc("/transcribe", func(w http.ResponseWriter, r *http.Request) {
		HandleTranscribe(svc.GetTranscriptionService(), w, r)
	}).Methods("POST")
}

// HandleHealth reports liveness.
func HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
