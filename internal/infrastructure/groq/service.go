package groq

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pathwise/compass/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

// Service is the model gateway. Groq exposes an OpenAI-compatible API, so the
// adapter is the go-openai client pointed at the Groq endpoint.
type Service struct {
	client *openai.Client
}

func NewService() *Service {
	key := config.GetGroqAPIKey()

	cfg := openai.DefaultConfig(key)
	cfg.BaseURL = config.GetGroqBaseURL()

	log.Info().Str("base_url", cfg.BaseURL).Msg("Groq gateway initialised")

	return &Service{client: openai.NewClientWithConfig(cfg)}
}

// Complete issues a non-streaming completion and returns the first choice.
func (s *Service) Complete(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	req.Stream = false

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}

// Stream issues a streaming completion, invoking onDelta for every content
// fragment in arrival order. It returns the accumulated text. A non-nil error
// from onDelta aborts the stream; the fragments already delivered stand.
func (s *Service) Stream(ctx context.Context, req openai.ChatCompletionRequest, onDelta func(string) error) (string, error) {
	req.Stream = true

	stream, err := s.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to open completion stream: %w", err)
	}
	defer stream.Close()

	var full strings.Builder
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return full.String(), nil
		}
		if err != nil {
			return full.String(), fmt.Errorf("stream receive failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			continue
		}

		delta := resp.Choices[0].Delta.Content
		if delta == "" {
			continue
		}

		full.WriteString(delta)
		if onDelta != nil {
			if err := onDelta(delta); err != nil {
				return full.String(), fmt.Errorf("stream consumer stopped: %w", err)
			}
		}
	}
}

// Transcribe sends raw audio to the Whisper endpoint and returns plain text.
func (s *Service) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	resp, err := s.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    config.GetWhisperModel(),
		FilePath: filename,
		Reader:   audio,
	})
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}

	return resp.Text, nil
}
