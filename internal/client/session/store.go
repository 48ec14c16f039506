// Package session holds the client's persisted session: the bearer token and
// the staff identity the admin is currently acting as. Both survive restarts
// via files in a state directory, one per key.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/santi-esquerre/departamento-del-agua-api/internal/models"
)

// Durable key names. Each is a file inside the state directory.
const (
	tokenKey    = "auth_token"
	personalKey = "auth_personal"
)

// Store is the single source of truth for "am I logged in" and "which
// identity am I acting as". Every mutation writes durably and updates the
// in-memory copy in the same synchronous call; reads never touch disk.
type Store struct {
	mu  sync.Mutex
	dir string

	token    string
	personal *models.Personal
}

// Open creates a Store backed by dir, rehydrating any previously persisted
// token and identity. A missing or unparseable identity entry is treated as
// "no identity selected", never as an error.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	s := &Store{dir: dir}

	if data, err := os.ReadFile(s.path(tokenKey)); err == nil {
		s.token = string(data)
	}
	if data, err := os.ReadFile(s.path(personalKey)); err == nil {
		var p models.Personal
		if err := json.Unmarshal(data, &p); err == nil {
			s.personal = &p
		}
		// corrupt entry: proceed with no identity
	}
	return s, nil
}

// Token returns the current bearer token, or "" when not logged in.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Personal returns a copy of the acting identity, or nil when none is
// selected. The copy keeps the stored record a cached value, not a shared
// reference.
func (s *Store) Personal() *models.Personal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.personal == nil {
		return nil
	}
	p := *s.personal
	return &p
}

// SetToken persists t and updates the in-memory token. The in-memory state
// is only updated once the durable write succeeded.
func (s *Store) SetToken(t string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.path(tokenKey), []byte(t), 0o600); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	s.token = t
	return nil
}

// ClearToken removes the durable token entry and the in-memory token.
func (s *Store) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path(tokenKey)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token: %w", err)
	}
	s.token = ""
	return nil
}

// SetPersonal persists p as the acting identity and updates the in-memory
// state.
func (s *Store) SetPersonal(p models.Personal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	if err := os.WriteFile(s.path(personalKey), data, 0o600); err != nil {
		return fmt.Errorf("persist identity: %w", err)
	}
	s.personal = &p
	return nil
}

// ClearPersonal removes the durable identity entry and the in-memory state.
func (s *Store) ClearPersonal() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path(personalKey)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove identity: %w", err)
	}
	s.personal = nil
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key)
}
