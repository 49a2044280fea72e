package orchestrator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/pathwise/compass/internal/services/catalog"
	"github.com/pathwise/compass/internal/services/conversation"
	"github.com/pathwise/compass/internal/services/router"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSalaryYAML = `occupations:
  - description: Nurses
    median: 35989
`

// stubGateway replays a fixed fragment sequence, optionally failing mid-stream.
type stubGateway struct {
	mu        sync.Mutex
	fragments []string
	failAfter int // fragments delivered before failing; -1 means never
	requests  []openai.ChatCompletionRequest
}

func (s *stubGateway) Stream(_ context.Context, req openai.ChatCompletionRequest, onDelta func(string) error) (string, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	var full strings.Builder
	for i, f := range s.fragments {
		if s.failAfter >= 0 && i == s.failAfter {
			return full.String(), errors.New("upstream connection reset")
		}
		full.WriteString(f)
		if onDelta != nil {
			if err := onDelta(f); err != nil {
				return full.String(), err
			}
		}
	}
	return full.String(), nil
}

type stubClassifier struct {
	decision router.Decision
}

func (s *stubClassifier) Classify(context.Context, string) router.Decision {
	return s.decision
}

func newTestService(t *testing.T, gw *stubGateway, decision router.Decision) (*Service, conversation.Store) {
	t.Helper()
	c, err := catalog.New([]byte(testSalaryYAML))
	require.NoError(t, err)
	store := conversation.NewMemoryStore(50)
	return NewService(gw, &stubClassifier{decision: decision}, c, store), store
}

func TestRespondStreamsAndRecordsTurns(t *testing.T) {
	gw := &stubGateway{fragments: []string{"Try ", "a new ", "career."}, failAfter: -1}
	svc, store := newTestService(t, gw, router.Decision{Category: catalog.CategoryCareer})

	var streamed []string
	result, err := svc.Respond(context.Background(), "s1", "hello", func(f string) error {
		streamed = append(streamed, f)
		return nil
	})
	require.NoError(t, err)

	// Fragments arrive in order and concatenate to the terminal text
	assert.Equal(t, []string{"Try ", "a new ", "career."}, streamed)
	assert.Equal(t, "Try a new career.", result.Text)
	assert.Equal(t, catalog.CategoryCareer, result.Category)
	assert.False(t, result.Fallback)

	// History gains exactly two whole turns, user then assistant
	history, err := store.History(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, conversation.Message{Role: conversation.RoleUser, Content: "hello"}, history[0])
	assert.Equal(t, conversation.Message{Role: conversation.RoleAssistant, Content: "Try a new career."}, history[1])
}

func TestStreamedConcatEqualsAggregated(t *testing.T) {
	fragments := []string{"alpha ", "beta ", "gamma"}

	gwStream := &stubGateway{fragments: fragments, failAfter: -1}
	svcStream, _ := newTestService(t, gwStream, router.Decision{Category: catalog.CategoryGeneral})

	var concat strings.Builder
	streamed, err := svcStream.Respond(context.Background(), "s1", "q", func(f string) error {
		concat.WriteString(f)
		return nil
	})
	require.NoError(t, err)

	gwOnce := &stubGateway{fragments: fragments, failAfter: -1}
	svcOnce, _ := newTestService(t, gwOnce, router.Decision{Category: catalog.CategoryGeneral})

	aggregated, err := svcOnce.RespondOnce(context.Background(), "s1", "q")
	require.NoError(t, err)

	assert.Equal(t, aggregated.Text, concat.String())
	assert.Equal(t, aggregated.Text, streamed.Text)
}

func TestRespondComposesPromptFromHistory(t *testing.T) {
	gw := &stubGateway{fragments: []string{"first"}, failAfter: -1}
	svc, _ := newTestService(t, gw, router.Decision{Category: catalog.CategorySalary})

	_, err := svc.Respond(context.Background(), "s1", "how much do nurses earn", nil)
	require.NoError(t, err)
	_, err = svc.Respond(context.Background(), "s1", "and chefs?", nil)
	require.NoError(t, err)

	require.Len(t, gw.requests, 2)

	// First call: system + the new message only
	first := gw.requests[0].Messages
	require.Len(t, first, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, first[0].Role)
	assert.Contains(t, first[0].Content, "Nurses: £35989 median")
	assert.Equal(t, "how much do nurses earn", first[1].Content)

	// Second call: system + prior user/assistant turns + the new message,
	// with the new message present exactly once
	second := gw.requests[1].Messages
	require.Len(t, second, 4)
	assert.Equal(t, "how much do nurses earn", second[1].Content)
	assert.Equal(t, conversation.RoleAssistant, second[2].Role)
	assert.Equal(t, "first", second[2].Content)
	assert.Equal(t, "and chefs?", second[3].Content)
}

func TestRespondGenerationErrorIsTerminal(t *testing.T) {
	gw := &stubGateway{fragments: []string{"partial ", "never sent"}, failAfter: 1}
	svc, store := newTestService(t, gw, router.Decision{Category: catalog.CategoryGeneral})

	var streamed []string
	_, err := svc.Respond(context.Background(), "s1", "hello", func(f string) error {
		streamed = append(streamed, f)
		return nil
	})
	require.Error(t, err)

	// Already-emitted fragments are not retracted
	assert.Equal(t, []string{"partial "}, streamed)

	// The user turn stays; no assistant turn is recorded for the failed reply
	history, err := store.History(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, conversation.RoleUser, history[0].Role)
}

func TestRespondStopsWhenConsumerGoesAway(t *testing.T) {
	gw := &stubGateway{fragments: []string{"a", "b", "c"}, failAfter: -1}
	svc, _ := newTestService(t, gw, router.Decision{Category: catalog.CategoryGeneral})

	calls := 0
	_, err := svc.Respond(context.Background(), "s1", "hello", func(string) error {
		calls++
		if calls == 2 {
			return errors.New("client disconnected")
		}
		return nil
	})
	require.Error(t, err)
	assert.Equal(t, 2, calls, "forwarding must stop once the consumer errors")
}

func TestRespondPropagatesFallbackTag(t *testing.T) {
	gw := &stubGateway{fragments: []string{"ok"}, failAfter: -1}
	svc, _ := newTestService(t, gw, router.Decision{
		Category: catalog.DefaultCategory,
		Fallback: true,
		Reason:   "classification call failed",
	})

	result, err := svc.RespondOnce(context.Background(), "s1", "hello")
	require.NoError(t, err)
	assert.Equal(t, catalog.DefaultCategory, result.Category)
	assert.True(t, result.Fallback)
}

func TestConcurrentSessionsKeepIndependentHistories(t *testing.T) {
	gw := &stubGateway{fragments: []string{"reply"}, failAfter: -1}
	svc, store := newTestService(t, gw, router.Decision{Category: catalog.CategoryGeneral})

	var wg sync.WaitGroup
	for _, session := range []string{"a", "b"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				_, err := svc.RespondOnce(context.Background(), id, "msg from "+id)
				assert.NoError(t, err)
			}
		}(session)
	}
	wg.Wait()

	for _, session := range []string{"a", "b"} {
		history, err := store.History(context.Background(), session)
		require.NoError(t, err)
		require.Len(t, history, 20)
		for i := 0; i < len(history); i += 2 {
			assert.Equal(t, conversation.RoleUser, history[i].Role)
			assert.Equal(t, "msg from "+session, history[i].Content)
			assert.Equal(t, conversation.RoleAssistant, history[i+1].Role)
		}
	}
}
