package conversation

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreAppendAndHistory(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10)

	// First access initialises an empty history
	history, err := s.History(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, history)

	require.NoError(t, s.Append(ctx, "s1", Message{Role: RoleUser, Content: "hello"}))
	require.NoError(t, s.Append(ctx, "s1", Message{Role: RoleAssistant, Content: "hi there"}))

	history, err = s.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, Message{Role: RoleUser, Content: "hello"}, history[0])
	assert.Equal(t, Message{Role: RoleAssistant, Content: "hi there"}, history[1])
}

func TestMemoryStoreRejectsEmptySession(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10)

	assert.ErrorIs(t, s.Append(ctx, "", Message{Role: RoleUser, Content: "x"}), ErrInvalidSession)
	_, err := s.History(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestMemoryStoreEvictsOldestBeyondBound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(3)

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Append(ctx, "s1", Message{Role: RoleUser, Content: fmt.Sprintf("m%d", i)}))
	}

	history, err := s.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "m2", history[0].Content)
	assert.Equal(t, "m4", history[2].Content)
}

func TestMemoryStoreClear(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10)

	require.NoError(t, s.Append(ctx, "s1", Message{Role: RoleUser, Content: "hello"}))
	require.NoError(t, s.Clear(ctx, "s1"))

	history, err := s.History(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestMemoryStoreConcurrentSessionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(100)

	const perSession = 50
	var wg sync.WaitGroup
	for _, session := range []string{"a", "b"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for i := 0; i < perSession; i++ {
				_ = s.Append(ctx, id, Message{Role: RoleUser, Content: id})
			}
		}(session)
	}
	wg.Wait()

	for _, session := range []string{"a", "b"} {
		history, err := s.History(ctx, session)
		require.NoError(t, err)
		require.Len(t, history, perSession)
		for _, m := range history {
			assert.Equal(t, session, m.Content, "histories must not interleave")
		}
	}
}

func TestMemoryStoreHistoryIsACopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10)

	require.NoError(t, s.Append(ctx, "s1", Message{Role: RoleUser, Content: "hello"}))

	history, err := s.History(ctx, "s1")
	require.NoError(t, err)
	history[0].Content = "mutated"

	fresh, err := s.History(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "hello", fresh[0].Content)
}
