package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	authdomain "taskpro-backend/internal/auth/domain"
)

// Session is the single canonical auth blob kept by a client. Its presence
// with a non-empty token is the only "logged in" signal.
type Session struct {
	Token        string           `json:"token"`
	RefreshToken string           `json:"refreshToken"`
	User         *authdomain.User `json:"user"`
}

func (s *Session) LoggedIn() bool {
	return s != nil && s.Token != ""
}

// SessionStore owns the session. Load returns (nil, nil) when nothing is
// stored; Clear on an empty store is not an error.
type SessionStore interface {
	Load() (*Session, error)
	Save(session *Session) error
	Clear() error
}

// MemoryStore keeps the session for the lifetime of the process.
type MemoryStore struct {
	mu      sync.RWMutex
	session *Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return nil, nil
	}
	copied := *m.session
	return &copied, nil
}

func (m *MemoryStore) Save(session *Session) error {
	if session == nil {
		return m.Clear()
	}
	copied := *session
	m.mu.Lock()
	m.session = &copied
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	m.session = nil
	m.mu.Unlock()
	return nil
}

// FileStore persists the session as JSON under a single path, readable only
// by the current user.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load() (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

func (f *FileStore) Save(session *Session) error {
	if session == nil {
		return f.Clear()
	}
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return os.Rename(tmp, f.path)
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
