package router

import (
	"context"
	"fmt"
	"strings"

	"github.com/pathwise/compass/internal/config"
	"github.com/pathwise/compass/internal/services/catalog"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

const routerPrompt = `You are an intelligent router that determines which specialized agent should handle user requests.
- Use 'salary' for questions about job salaries, earning potential, or salary-focused career advice
- Use 'career' for general career advice and professional development
- Use 'resume' for resume and cover letter optimization
- Use 'interview' for interview preparation and practice
- Use 'skills' for skill gap analysis and learning recommendations
- Use 'networking' for networking strategies and professional connections
- Use 'job_search' for job search assistance and application help
- Use 'research' for queries requiring detailed research, academic topics, or comprehensive analysis
- Use 'general' for all other topics and general conversation

Respond with only one word from the options above.`

// Decision is the routing result. Classification never fails: any error or
// unrecognisable answer falls back to the default category, with Fallback set
// so callers can tell "classified as general" from "defaulted to general".
type Decision struct {
	Category catalog.Category
	Fallback bool
	Reason   string
}

// completer is the slice of the model gateway the router needs.
type completer interface {
	Complete(ctx context.Context, req openai.ChatCompletionRequest) (string, error)
}

type Service struct {
	gateway completer
	model   string
}

func NewService(gateway completer) *Service {
	return &Service{
		gateway: gateway,
		model:   config.GetRouterModel(),
	}
}

// Classify assigns message to exactly one agent category with a single
// constrained completion call. No retry: a failed attempt falls through to
// the default immediately so generation is never blocked.
func (s *Service) Classify(ctx context.Context, message string) Decision {
	raw, err := s.gateway.Complete(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: routerPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
		Temperature: 0,
		MaxTokens:   256,
		TopP:        1,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Classification call failed, defaulting to general")
		return Decision{
			Category: catalog.DefaultCategory,
			Fallback: true,
			Reason:   fmt.Sprintf("classification call failed: %v", err),
		}
	}

	category, ok := ParseLabel(raw)
	if !ok {
		log.Warn().Str("answer", raw).Msg("Unrecognised classification answer, defaulting to general")
		return Decision{
			Category: catalog.DefaultCategory,
			Fallback: true,
			Reason:   fmt.Sprintf("unrecognised label in %q", raw),
		}
	}

	log.Debug().Str("category", string(category)).Msg("Message classified")
	return Decision{Category: category}
}

// ParseLabel extracts a category label from the model's free-text answer.
// The model is asked for a single word but is treated as an untrusted
// producer: the answer is trimmed, lower-cased, cut at the first separator
// (some models append a justification after a comma or colon) and stripped
// of quoting and trailing punctuation before the closed-set match.
func ParseLabel(raw string) (catalog.Category, bool) {
	label := strings.ToLower(strings.TrimSpace(raw))

	if i := strings.IndexAny(label, ",:\n"); i >= 0 {
		label = label[:i]
	}
	label = strings.Trim(label, " \t'\"`.!")

	return catalog.ParseCategory(label)
}
