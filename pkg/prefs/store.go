// Package prefs persists the keyboard's user preferences (currently only the
// input language) across sessions.
package prefs

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// LanguageKey is the key the selected input language is stored under.
const LanguageKey = "language"

// Store is a string key/value preference store.
type Store interface {
	// Get returns the stored value and whether one exists.
	Get(key string) (string, bool)
	Set(key, value string) error
	Close() error
}

// ErrUnknownBackend is returned by Open for unsupported backend names.
var ErrUnknownBackend = errors.New("unknown preference backend")

// Open opens the named backend at path: "json", "sqlite" or "memory".
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", "json":
		return OpenJSON(path)
	case "sqlite", "sqlite3":
		return OpenSQLite(path)
	case "memory", "mem":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// DefaultPath returns ~/.vkbd/prefs.<ext> for the backend.
func DefaultPath(backend string) string {
	name := "prefs.json"
	if b := strings.ToLower(backend); b == "sqlite" || b == "sqlite3" {
		name = "prefs.db"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".vkbd", name)
}

// Memory is an in-process Store. It does not survive restarts.
type Memory struct {
	mu sync.Mutex
	m  map[string]string
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory { return &Memory{m: map[string]string{}} }

func (s *Memory) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	return v, ok
}

func (s *Memory) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

func (s *Memory) Close() error { return nil }
