package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// JSON stores preferences as a flat JSON object in one file. The file is read
// once on open and rewritten on every Set.
type JSON struct {
	mu   sync.Mutex
	path string
	data []byte
}

// OpenJSON loads path, treating a missing file as empty.
func OpenJSON(path string) (*JSON, error) {
	if path == "" {
		return nil, fmt.Errorf("json prefs: empty path")
	}
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		data = []byte("{}")
	case err != nil:
		return nil, fmt.Errorf("json prefs: read %s: %w", path, err)
	case !gjson.ValidBytes(data):
		return nil, fmt.Errorf("json prefs: %s is not valid JSON", path)
	}
	return &JSON{path: path, data: data}, nil
}

func (s *JSON) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := gjson.GetBytes(s.data, gjson.Escape(key))
	if !r.Exists() {
		return "", false
	}
	return r.String(), true
}

func (s *JSON) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := sjson.SetBytes(s.data, gjson.Escape(key), value)
	if err != nil {
		return fmt.Errorf("json prefs: set %q: %w", key, err)
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return err
	}
	s.data = data
	return nil
}

func (s *JSON) Close() error { return nil }

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("json prefs: create dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".prefs-*")
	if err != nil {
		return fmt.Errorf("json prefs: temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("json prefs: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("json prefs: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("json prefs: rename: %w", err)
	}
	return nil
}
