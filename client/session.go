package client

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"

	"github.com/0zturkSamet/task-manager/domain"
)

// The session file holds exactly these two keys. Logout and 401 handling
// clear exactly these two, nothing else.
const (
	sessionKeyToken = "access_token"
	sessionKeyUser  = "user_data"
)

// Session persists the access token and the signed-in user in a single JSON
// file. A missing file is an empty session.
type Session struct {
	path string

	mu    sync.Mutex
	token string
	user  *domain.User
}

// OpenSession loads the session stored at path. Corrupt session files are
// treated as empty rather than failing the program start.
func OpenSession(path string) (*Session, error) {
	s := &Session{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return s, nil
	}
	if token, ok := raw[sessionKeyToken].(string); ok {
		s.token = token
	}
	// The stored record may come from an older client with differently keyed
	// user fields; normalize it to the canonical shape on the way in.
	if record, ok := raw[sessionKeyUser].(map[string]any); ok {
		u := domain.NormalizeUser(record)
		s.user = &u
	}
	return s, nil
}

// Token returns the stored access token, empty when signed out.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns a copy of the stored user, or nil when signed out.
func (s *Session) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// SetCredentials stores the token and user and writes them to disk.
func (s *Session) SetCredentials(token string, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = &user
	return s.write()
}

// SetUser refreshes the stored user without touching the token.
func (s *Session) SetUser(user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
	return s.write()
}

// Clear wipes both session keys and persists the empty session.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	return s.write()
}

func (s *Session) write() error {
	payload := map[string]any{}
	if s.token != "" {
		payload[sessionKeyToken] = s.token
	}
	if s.user != nil {
		payload[sessionKeyUser] = s.user
	}
	data, err := sonic.Marshal(payload)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, data, 0o600)
}
