// Package credentials stores the bearer token the API client attaches to
// requests. The token is looked up on every request, so logging in or out in
// one command is visible to the next call without rebuilding the client.
package credentials

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvToken overrides any stored token.
const EnvToken = "STOREADMIN_TOKEN"

// DefaultTokenFileName is the file name of the stored token.
const DefaultTokenFileName = "token"

// ErrNoToken is returned by Require when no token is available.
var ErrNoToken = errors.New("not logged in: no token available")

// Token sources reported by Load.
const (
	SourceNone = "none"
	SourceEnv  = "env"
	SourceFile = "file"
)

// Store resolves the current token from the environment or a token file.
type Store struct {
	path   string
	getenv func(string) string
}

// NewStore creates a store backed by path. An empty path uses
// DefaultTokenPath.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultTokenPath()
	}
	return &Store{path: path, getenv: os.Getenv}
}

// DefaultTokenPath returns $XDG_DATA_HOME/storeadmin/token, falling back to
// ~/.local/share/storeadmin/token.
func DefaultTokenPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, _ := os.UserHomeDir()
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "storeadmin", DefaultTokenFileName)
}

// Path returns the token file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the current token and where it came from. A missing or
// unreadable token file yields "" with SourceNone.
func (s *Store) Load() (token, source string) {
	if v := strings.TrimSpace(s.getenv(EnvToken)); v != "" {
		return v, SourceEnv
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", SourceNone
	}
	if v := strings.TrimSpace(string(data)); v != "" {
		return v, SourceFile
	}
	return "", SourceNone
}

// Token returns the current token or "".
func (s *Store) Token() string {
	token, _ := s.Load()
	return token
}

// TokenSource returns a function suitable for apiclient.WithTokenSource.
func (s *Store) TokenSource() func() string {
	return s.Token
}

// Require returns the current token or ErrNoToken.
func (s *Store) Require() (string, error) {
	if token := s.Token(); token != "" {
		return token, nil
	}
	return "", ErrNoToken
}

// Save writes token to the token file with owner-only permissions.
func (s *Store) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("refusing to save an empty token")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// Clear removes the token file. A missing file is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}
