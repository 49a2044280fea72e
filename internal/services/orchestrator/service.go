package orchestrator

import (
	"context"
	"fmt"

	"github.com/pathwise/compass/internal/config"
	"github.com/pathwise/compass/internal/services/catalog"
	"github.com/pathwise/compass/internal/services/conversation"
	"github.com/pathwise/compass/internal/services/router"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

// streamer is the slice of the model gateway the orchestrator needs.
type streamer interface {
	Stream(ctx context.Context, req openai.ChatCompletionRequest, onDelta func(string) error) (string, error)
}

// classifier assigns a message to exactly one agent category.
type classifier interface {
	Classify(ctx context.Context, message string) router.Decision
}

// Result summarises one completed (or failed) response.
type Result struct {
	Category catalog.Category `json:"agent"`
	Fallback bool             `json:"fallback,omitempty"`
	Text     string           `json:"response"`
}

type Service struct {
	gateway     streamer
	router      classifier
	catalog     *catalog.Catalog
	store       conversation.Store
	model       string
	temperature float32
	maxTokens   int
}

func NewService(gateway streamer, r classifier, c *catalog.Catalog, store conversation.Store) *Service {
	return &Service{
		gateway:     gateway,
		router:      r,
		catalog:     c,
		store:       store,
		model:       config.GetAgentModel(),
		temperature: 0.2,
		maxTokens:   1024,
	}
}

// Respond answers message within the given session, forwarding each generated
// fragment to emit in arrival order as it comes off the model stream. emit may
// be nil for aggregated callers. On success the accumulated text is recorded
// as one assistant turn. On a generation error the user turn stays recorded,
// no assistant turn is written, and the error is terminal: fragments already
// emitted are not retracted.
func (s *Service) Respond(ctx context.Context, sessionID, message string, emit func(string) error) (*Result, error) {
	// History snapshot is taken before appending the new message so the
	// prompt does not carry the final user turn twice.
	history, err := s.store.History(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	if err := s.store.Append(ctx, sessionID, conversation.Message{
		Role:    conversation.RoleUser,
		Content: message,
	}); err != nil {
		return nil, fmt.Errorf("failed to record user turn: %w", err)
	}

	// Category is fully resolved before generation starts; generation never
	// runs speculatively against more than one persona.
	decision := s.router.Classify(ctx, message)
	template := s.catalog.Resolve(decision.Category)

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: template.Instruction,
	})
	for _, turn := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})

	log.Info().
		Str("session_id", sessionID).
		Str("category", string(decision.Category)).
		Bool("fallback", decision.Fallback).
		Int("history_turns", len(history)).
		Msg("Generating agent response")

	text, err := s.gateway.Stream(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    messages,
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
		TopP:        1,
	}, emit)
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("Generation failed")
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	if err := s.store.Append(ctx, sessionID, conversation.Message{
		Role:    conversation.RoleAssistant,
		Content: text,
	}); err != nil {
		return nil, fmt.Errorf("failed to record assistant turn: %w", err)
	}

	return &Result{
		Category: decision.Category,
		Fallback: decision.Fallback,
		Text:     text,
	}, nil
}

// RespondOnce is the aggregated variant for non-streaming callers.
func (s *Service) RespondOnce(ctx context.Context, sessionID, message string) (*Result, error) {
	return s.Respond(ctx, sessionID, message, nil)
}
