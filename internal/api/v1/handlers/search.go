package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pathwise/compass/internal/infrastructure/perplexity"
	"github.com/pathwise/compass/pkg/httpext"
	"github.com/rs/zerolog/log"
)

// SearchRequest is the inbound search payload.
type SearchRequest struct {
	Query string `json:"query" validate:"required"`
}

// HandleSearch returns cited factual prose for the query.
func HandleSearch(service *perplexity.Service, w http.ResponseWriter, r *http.Request) {
	query, ok := decodeSearchRequest(service, w, r)
	if !ok {
		return
	}

	answer, err := service.Search(r.Context(), query)
	if err != nil {
		log.Error().Err(err).Msg("Search failed")
		httpext.JsonError(w, "Search failed", http.StatusBadGateway)
		return
	}

	writeJSON(w, map[string]string{"response": answer})
}

// HandleSearchLinks returns a structured list of career-related links.
func HandleSearchLinks(service *perplexity.Service, w http.ResponseWriter, r *http.Request) {
	query, ok := decodeSearchRequest(service, w, r)
	if !ok {
		return
	}

	links, err := service.FindLinks(r.Context(), query)
	if err != nil {
		if errors.Is(err, perplexity.ErrMalformedPayload) {
			log.Error().Err(err).Msg("Link search returned an unparseable payload")
			httpext.JsonError(w, "Search returned an unexpected format", http.StatusBadGateway)
			return
		}
		log.Error().Err(err).Msg("Link search failed")
		httpext.JsonError(w, "Search failed", http.StatusBadGateway)
		return
	}

	writeJSON(w, map[string][]perplexity.Link{"urls": links})
}

func decodeSearchRequest(service *perplexity.Service, w http.ResponseWriter, r *http.Request) (string, bool) {
	if service == nil {
		httpext.JsonError(w, "Search is not configured", http.StatusServiceUnavailable)
		return "", false
	}

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpext.JsonError(w, "Invalid request format", http.StatusBadRequest)
		return "", false
	}
	if err := validate.Struct(req); err != nil {
		httpext.JsonErrorWithDetails(w, http.StatusBadRequest, httpext.ErrorResponse{
			Error:  "invalid_request",
			Detail: "Missing required field: query",
		})
		return "", false
	}

	return req.Query, true
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}
