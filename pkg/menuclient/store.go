package menuclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Session — сохранённые данные входа.
type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// TokenStore хранит сессию между вызовами. Load возвращает ErrNotLoggedIn, если сессии нет.
type TokenStore interface {
	Load() (Session, error)
	Save(s Session) error
	Clear() error
}

// MemoryStore держит сессию в памяти процесса.
type MemoryStore struct {
	mu   sync.Mutex
	sess *Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sess == nil {
		return Session{}, ErrNotLoggedIn
	}

	return *m.sess, nil
}

func (m *MemoryStore) Save(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sess = &s
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sess = nil
	return nil
}

// FileStore хранит сессию JSON-файлом с правами 0600.
type FileStore struct {
	Path string
}

// DefaultSessionPath — $XDG_CONFIG_HOME/menuctl/session.json (или аналог ОС).
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}

	return filepath.Join(dir, "menuctl", "session.json"), nil
}

func (f *FileStore) Load() (Session, error) {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, ErrNotLoggedIn
		}
		return Session{}, err
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return Session{}, fmt.Errorf("parse session %q: %w", f.Path, err)
	}
	if s.Token == "" {
		return Session{}, ErrNotLoggedIn
	}

	return s, nil
}

func (f *FileStore) Save(s Session) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return err
	}

	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(f.Path, raw, 0o600)
}

// Clear удаляет файл; отсутствие файла ошибкой не считается.
func (f *FileStore) Clear() error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return nil
}
