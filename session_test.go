package noteflow_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	noteflow "github.com/noteflow/noteflow.go"
	"github.com/noteflow/noteflow.go/internal/fakeapi"
)

func TestSessionTokenSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noteflow", "token")

	s, err := noteflow.OpenSession(path)
	require.NoError(t, err)
	require.False(t, s.Authenticated())

	require.NoError(t, s.SetToken("tok-123"))
	require.Equal(t, "tok-123", s.Token())

	reopened, err := noteflow.OpenSession(path)
	require.NoError(t, err)
	require.Equal(t, "tok-123", reopened.Token())
	require.True(t, reopened.Authenticated())
}

func TestSessionClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")

	s, err := noteflow.OpenSession(path)
	require.NoError(t, err)
	require.NoError(t, s.SetToken("tok-123"))
	s.SetUser(&noteflow.User{ID: "user-1", Name: "Ada"})

	require.NoError(t, s.Clear())
	require.Empty(t, s.Token())
	require.Nil(t, s.User())
	_, err = os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)

	// Clearing twice is fine.
	require.NoError(t, s.Clear())
}

func TestBootstrapWithoutToken(t *testing.T) {
	srv := fakeapi.NewServer()
	t.Cleanup(srv.Close)

	s, err := noteflow.OpenSession(filepath.Join(t.TempDir(), "token"))
	require.NoError(t, err)
	client := noteflow.NewClient(srv.URL(), s)

	user, err := s.Bootstrap(context.Background(), client)
	require.NoError(t, err)
	require.Nil(t, user)
	require.Zero(t, srv.TotalCalls(), "no token means no lookup")
}

func TestBootstrapDerivesIdentity(t *testing.T) {
	srv := fakeapi.NewServer()
	t.Cleanup(srv.Close)
	srv.AddUser("Ada", testEmail, testPassword)
	token := srv.MintToken(testEmail)

	s, err := noteflow.OpenSession(filepath.Join(t.TempDir(), "token"))
	require.NoError(t, err)
	require.NoError(t, s.SetToken(token))
	client := noteflow.NewClient(srv.URL(), s)

	user, err := s.Bootstrap(context.Background(), client)
	require.NoError(t, err)
	require.NotNil(t, user)
	require.Equal(t, testEmail, user.Email)
	require.Equal(t, user, s.User())
}

func TestBootstrapStaleTokenIsNotAnError(t *testing.T) {
	srv := fakeapi.NewServer()
	t.Cleanup(srv.Close)

	s, err := noteflow.OpenSession(filepath.Join(t.TempDir(), "token"))
	require.NoError(t, err)
	require.NoError(t, s.SetToken("stale-token"))
	client := noteflow.NewClient(srv.URL(), s)

	user, err := s.Bootstrap(context.Background(), client)
	require.NoError(t, err, "a rejected token just means nobody is logged in")
	require.Nil(t, user)
}

func TestBootstrapNetworkFaultIsAnError(t *testing.T) {
	srv := fakeapi.NewServer()
	t.Cleanup(srv.Close)
	srv.AddUser("Ada", testEmail, testPassword)
	token := srv.MintToken(testEmail)
	srv.InjectFault(fakeapi.OpCurrentUser, fakeapi.Fault{Mode: fakeapi.FaultNetwork})

	s, err := noteflow.OpenSession(filepath.Join(t.TempDir(), "token"))
	require.NoError(t, err)
	require.NoError(t, s.SetToken(token))
	client := noteflow.NewClient(srv.URL(), s)

	_, err = s.Bootstrap(context.Background(), client)
	require.Error(t, err, "cannot tell a dead server from a stale token")
}
