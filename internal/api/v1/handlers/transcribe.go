package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pathwise/compass/internal/config"
	"github.com/pathwise/compass/internal/services/transcription"
	"github.com/pathwise/compass/pkg/httpext"
	"github.com/rs/zerolog/log"
)

// TranscriptionResponse carries the recognised text.
type TranscriptionResponse struct {
	Transcription string `json:"transcription"`
}

// HandleTranscribe accepts a multipart audio upload under the "file" field
// and returns its transcription.
func HandleTranscribe(service *transcription.Service, w http.ResponseWriter, r *http.Request) {
	maxBytes := config.GetMaxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		log.Warn().Err(err).Msg("Failed to parse transcription upload")
		httpext.JsonError(w, "Audio upload too large or malformed", http.StatusRequestEntityTooLarge)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httpext.JsonError(w, "Missing file upload", http.StatusBadRequest)
		return
	}
	defer file.Close()

	text, err := service.Transcribe(r.Context(), header.Filename, file, header.Size)
	switch {
	case errors.Is(err, transcription.ErrFileTooLarge):
		httpext.JsonError(w, "Audio file exceeds the upload limit", http.StatusRequestEntityTooLarge)
		return
	case errors.Is(err, transcription.ErrEmptyUpload):
		httpext.JsonError(w, "Audio upload is empty", http.StatusBadRequest)
		return
	case err != nil:
		log.Error().Err(err).Str("filename", header.Filename).Msg("Transcription failed")
		httpext.JsonError(w, "Failed to transcribe audio", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(TranscriptionResponse{Transcription: text}); err != nil {
		log.Error().Err(err).Msg("Failed to encode transcription response")
	}
}
