package perplexity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pathwise/compass/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

// ErrMalformedPayload is returned when the upstream answer does not match the
// strict link-list contract.
var ErrMalformedPayload = errors.New("perplexity returned a malformed payload")

const groundedSearchPrompt = "You are a search assistant focused on providing factual information. " +
	"Return only relevant facts and information from reliable sources. " +
	"Format your response in a clear, concise manner. " +
	"Always include sources or citations when available. " +
	"Do not include personal opinions or speculative content."

const linkSearchPrompt = "You are a URL retrieval system. Provide relevant career-related URLs in the following JSON format only:" +
	"\n{\"urls\": [{\"title\": \"Article Title\", \"url\": \"https://example.com\", \"description\": \"Brief description\"}]}" +
	"\nReturn raw JSON only, without code blocks or markdown formatting."

// Link is one result in a structured link search.
type Link struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Service adapts Perplexity's OpenAI-compatible online search models.
type Service struct {
	client *openai.Client
	model  string
}

// NewService returns nil when PERPLEXITY_API_KEY is not configured; search
// endpoints are optional.
func NewService() *Service {
	key := config.GetPerplexityAPIKey()
	if key == "" {
		log.Warn().Msg("Perplexity service not configured - PERPLEXITY_API_KEY missing")
		return nil
	}

	cfg := openai.DefaultConfig(key)
	cfg.BaseURL = config.GetPerplexityBaseURL()

	return &Service{
		client: openai.NewClientWithConfig(cfg),
		model:  config.GetPerplexityModel(),
	}
}

// Search returns cited factual prose for the query.
func (s *Service) Search(ctx context.Context, query string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: groundedSearchPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Provide factual information about: %s", query)},
		},
		Temperature:     0,
		PresencePenalty: 1,
	})
	if err != nil {
		return "", fmt.Errorf("search request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("search returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// FindLinks returns a structured list of career-related links for the query.
func (s *Service) FindLinks(ctx context.Context, query string) ([]Link, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: linkSearchPrompt},
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
		Temperature:      0,
		PresencePenalty:  0.5,
		FrequencyPenalty: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("link search request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("link search returned no choices")
	}

	return ParseLinkPayload(resp.Choices[0].Message.Content)
}

// ParseLinkPayload parses the model's raw answer into links. The model is
// asked for raw JSON but routinely wraps it in code fences, so fences are
// stripped before decoding. Anything that still fails to parse is a
// format error, not a guess.
func ParseLinkPayload(raw string) ([]Link, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var payload struct {
		URLs []Link `json:"urls"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if payload.URLs == nil {
		return nil, fmt.Errorf("%w: missing urls array", ErrMalformedPayload)
	}

	return payload.URLs, nil
}
