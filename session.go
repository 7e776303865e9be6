package noteflow

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Session owns the access token and the identity derived from it.
//
// The token is the only piece of client state that survives a restart; it
// lives in a single file at a well-known path. The identity does not survive:
// it is re-derived from the token on every start via [Session.Bootstrap],
// which is also what detects a stale token.
//
// Session is passed by reference to the Client rather than living in ambient
// global state, so there is exactly one owner per process and the coupling is
// visible. Reads and writes are mutex-guarded; gateway calls read the token
// concurrently while login and logout are the only writers.
type Session struct {
	mu    sync.RWMutex
	path  string
	token string
	user  *User
}

// DefaultTokenPath returns the conventional location of the token file,
// under the user's configuration directory.
func DefaultTokenPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config dir: %w", err)
	}
	return filepath.Join(dir, "noteflow", "token"), nil
}

// OpenSession loads the session persisted at path. A missing file simply
// means nobody is logged in; any other read failure is returned.
func OpenSession(path string) (*Session, error) {
	s := &Session{path: path}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}
	s.token = strings.TrimSpace(string(raw))
	return s, nil
}

// Token returns the current access token, or "" when unauthenticated.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a token is present. It says nothing about
// whether the server still accepts it.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// SetToken stores the token in memory and persists it to the session's file,
// creating the parent directory if needed. The file is written 0600.
func (s *Session) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	s.token = token
	return nil
}

// Clear forgets the token and identity and removes the persisted token file.
// Clearing an already-empty session is a no-op.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	s.token = ""
	s.user = nil
	return nil
}

// User returns the identity derived at login or bootstrap, or nil.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// SetUser records the identity for the current token.
func (s *Session) SetUser(u *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

// Bootstrap derives the identity for a persisted token at application start.
//
// Without a token it returns (nil, nil) immediately: there is nobody to look
// up and the gateway is not called. A token the server rejects also yields
// (nil, nil) — the session just stays unauthenticated, matching a login
// screen rather than an error page. Only a network fault is an error, since
// the caller cannot tell whether the token is still good.
func (s *Session) Bootstrap(ctx context.Context, c *Client) (*User, error) {
	if s.Token() == "" {
		return nil, nil
	}

	res, err := c.GetCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if res.Failed {
		return nil, nil
	}
	s.SetUser(res.Data)
	return res.Data, nil
}
