package service

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSessionServiceRecordExchange(t *testing.T) {
	svc := NewSessionService(zap.NewNop())

	svc.RecordExchange("s1", "question one", "answer one")
	svc.RecordExchange("s1", "question two", "answer two")

	history := svc.RecentHistory("s1", 10)
	require.Len(t, history, 4)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "question one", history[0].Content)
	assert.Equal(t, "assistant", history[3].Role)
	assert.Equal(t, "answer two", history[3].Content)
}

func TestSessionServiceRecentHistoryLimit(t *testing.T) {
	svc := NewSessionService(zap.NewNop())
	for i := 0; i < 5; i++ {
		svc.RecordExchange("s1", fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
	}

	history := svc.RecentHistory("s1", 2)
	require.Len(t, history, 2)
	assert.Equal(t, "q4", history[0].Content)
	assert.Equal(t, "a4", history[1].Content)
}

func TestSessionServiceUnknownSession(t *testing.T) {
	svc := NewSessionService(zap.NewNop())
	assert.Nil(t, svc.RecentHistory("missing", 10))
	assert.Zero(t, svc.Count())
}

func TestSessionServiceReset(t *testing.T) {
	svc := NewSessionService(zap.NewNop())
	svc.RecordExchange("s1", "q", "a")

	svc.Reset("s1")
	assert.Empty(t, svc.RecentHistory("s1", 10))
	// The session itself survives a reset.
	assert.Equal(t, 1, svc.Count())
}

func TestSessionServiceConcurrentAccess(t *testing.T) {
	svc := NewSessionService(zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s%d", i%4)
			svc.RecordExchange(id, "q", "a")
			svc.RecentHistory(id, 5)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 4, svc.Count())
}
