package service_test

import (
	"context"
	"testing"

	"github.com/cwrk-planet/club-service/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendDefaultsAuthorToAnon(t *testing.T) {
	store := newFakeStore()
	svc := service.NewChatService(store)

	m, err := svc.Append(context.Background(), "", "hello")
	require.NoError(t, err)
	assert.Equal(t, "Anon", m.Name)
}

func TestHistoryPreservesInsertionOrder(t *testing.T) {
	store := newFakeStore()
	svc := service.NewChatService(store)

	for _, text := range []string{"A", "B", "C"} {
		_, err := svc.Append(context.Background(), "alice", text)
		require.NoError(t, err)
	}

	history, err := svc.History(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "A", history[0].Text)
	assert.Equal(t, "B", history[1].Text)
	assert.Equal(t, "C", history[2].Text)
}
