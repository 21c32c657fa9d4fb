package sessions_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dripapps/canva-connect/sessions"
)

func TestSetAndCurrent(t *testing.T) {
	repo := sessions.NewInMemoryRepo()

	_, ok := repo.Current()
	require.False(t, ok)

	err := repo.Set(sessions.Session{
		State:       "state-1",
		AccessToken: "token-1",
		CreatedAt:   time.Now(),
	})
	require.NoError(t, err)

	session, ok := repo.Current()
	require.True(t, ok)
	require.Equal(t, "state-1", session.State)
	require.Equal(t, "token-1", session.AccessToken)
}

func TestSetReplacesCurrentSession(t *testing.T) {
	repo := sessions.NewInMemoryRepo()

	require.NoError(t, repo.Set(sessions.Session{State: "state-1", AccessToken: "token-1"}))
	require.NoError(t, repo.Set(sessions.Session{State: "state-2", AccessToken: "token-2"}))

	session, ok := repo.Current()
	require.True(t, ok)
	require.Equal(t, "state-2", session.State)
	require.Equal(t, "token-2", session.AccessToken)
}

func TestSetValidation(t *testing.T) {
	repo := sessions.NewInMemoryRepo()

	require.Error(t, repo.Set(sessions.Session{AccessToken: "token-1"}))
	require.Error(t, repo.Set(sessions.Session{State: "state-1"}))
}

func TestClearIsIdempotent(t *testing.T) {
	repo := sessions.NewInMemoryRepo()

	require.NoError(t, repo.Set(sessions.Session{State: "state-1", AccessToken: "token-1"}))

	repo.Clear()
	_, ok := repo.Current()
	require.False(t, ok)

	repo.Clear() // clearing an empty slot must not panic
	_, ok = repo.Current()
	require.False(t, ok)
}
