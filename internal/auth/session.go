package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotcli/internal/shared"
)

// SessionManager is the single source of truth for whether a usable user
// session exists. It holds the current [TokenSet] in memory, persists it to
// a local JSON file between runs, and refreshes it on demand.
//
// The manager never refreshes proactively based on expires_in; API wrappers
// detect a 401 and call [SessionManager.Refresh], then retry once.
type SessionManager struct {
	mu     sync.RWMutex
	tokens *TokenSet
	path   string
	client *TokenClient
	logger *log.Logger
}

// NewSessionManager creates a session manager persisting to path.
func NewSessionManager(path string, client *TokenClient, logger *log.Logger) *SessionManager {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &SessionManager{
		path:   path,
		client: client,
		logger: logger,
	}
}

// SetTokens installs a token set as current. Subsequent authenticated calls use it.
func (s *SessionManager) SetTokens(tokens *TokenSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = tokens
}

// Install installs a token set and persists it to the session file.
func (s *SessionManager) Install(tokens *TokenSet) error {
	s.SetTokens(tokens)
	return s.Save()
}

// AccessToken returns the bearer token for the current session.
//
// Returns [shared.ErrNotAuthenticated] when no session exists; callers must
// treat that as a recoverable condition and prompt for authentication.
func (s *SessionManager) AccessToken() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.tokens == nil || s.tokens.AccessToken == "" {
		return "", shared.ErrNotAuthenticated
	}

	return s.tokens.AccessToken, nil
}

// Authenticated reports whether a session is present.
func (s *SessionManager) Authenticated() bool {
	_, err := s.AccessToken()
	return err == nil
}

// Tokens returns a copy of the current token set, or nil when no session exists.
func (s *SessionManager) Tokens() *TokenSet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.tokens == nil {
		return nil
	}

	copied := *s.tokens
	return &copied
}

// Refresh mints a new access token using the stored refresh token and
// installs the resulting token set, persisting it wholesale.
func (s *SessionManager) Refresh(ctx context.Context) error {
	s.mu.RLock()
	tokens := s.tokens
	s.mu.RUnlock()

	if tokens == nil || tokens.RefreshToken == "" {
		return fmt.Errorf("%w: %w", shared.ErrRefreshFailed, shared.ErrNoRefreshToken)
	}

	refreshed, err := s.client.Refresh(ctx, tokens.RefreshToken)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrRefreshFailed, err)
	}

	s.logger.Debug("access token refreshed", "scope", refreshed.Scope)

	return s.Install(refreshed)
}

// Save serializes the current token set to the session file.
func (s *SessionManager) Save() error {
	s.mu.RLock()
	tokens := s.tokens
	s.mu.RUnlock()

	if tokens == nil {
		return fmt.Errorf("%w: no tokens to save", shared.ErrNotAuthenticated)
	}

	data, err := json.MarshalIndent(tokens, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create session directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Load attempts to restore a prior session from the session file.
//
// A missing or malformed file means "no prior session", never a startup
// failure; Load reports whether a session was restored.
func (s *SessionManager) Load() bool {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return false
	}

	var tokens TokenSet
	if err := json.Unmarshal(data, &tokens); err != nil {
		s.logger.Debug("ignoring malformed session file", "path", s.path, "error", err)
		return false
	}

	if tokens.AccessToken == "" {
		return false
	}

	s.SetTokens(&tokens)
	return true
}

// Clear drops the in-memory session and removes the session file.
func (s *SessionManager) Clear() error {
	s.mu.Lock()
	s.tokens = nil
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}

	return nil
}

// Path returns the session file location.
func (s *SessionManager) Path() string {
	return s.path
}
