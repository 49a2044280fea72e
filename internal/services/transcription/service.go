package transcription

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
)

var (
	ErrFileTooLarge = errors.New("audio file exceeds the upload limit")
	ErrEmptyUpload  = errors.New("audio upload is empty")
)

// transcriber is the slice of the model gateway this service needs.
type transcriber interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}

type Service struct {
	gateway  transcriber
	maxBytes int64
}

func NewService(gateway transcriber, maxBytes int64) *Service {
	return &Service{gateway: gateway, maxBytes: maxBytes}
}

// Transcribe sends one audio file for speech-to-text. Size is validated
// before any remote call; upstream failures propagate to the caller.
func (s *Service) Transcribe(ctx context.Context, filename string, audio io.Reader, size int64) (string, error) {
	if size <= 0 {
		return "", ErrEmptyUpload
	}
	if size > s.maxBytes {
		return "", fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, size, s.maxBytes)
	}

	text, err := s.gateway.Transcribe(ctx, filename, audio)
	if err != nil {
		return "", err
	}

	log.Info().Str("filename", filename).Int64("bytes", size).Msg("Audio transcribed")
	return text, nil
}
