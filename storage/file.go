package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// File is a JSON file-backed Store. The whole key space lives in one
// file as a single JSON object, rewritten atomically on every Set or
// Delete. Values must themselves be valid JSON payloads.
// An unparseable file is discarded and the store starts empty;
// on-device state is never allowed to wedge the application.
type File struct {
	mu     sync.RWMutex
	values map[string]json.RawMessage
	path   string
}

// compile-time assertion
var _ Store = (*File)(nil)

// NewFile constructs a File store at the given path. If the file exists it
// will be loaded.
func NewFile(path string) (*File, error) {
	s := &File{
		values: make(map[string]json.RawMessage),
		path:   path,
	}
	if err := s.loadFromFile(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *File) loadFromFile() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			// no file yet; that's fine
			return nil
		}
		return err
	}
	if len(b) == 0 {
		return nil
	}
	var values map[string]json.RawMessage
	if err := json.Unmarshal(b, &values); err != nil {
		// corrupt snapshot file; start empty rather than fail startup
		return nil
	}
	s.values = values
	return nil
}

func (s *File) saveToFile() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	// Plain Marshal embeds the RawMessage values verbatim; indenting
	// would rewrite the stored payloads and break byte-level Get
	// round-trips after a reload.
	b, err := json.Marshal(s.values)
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *File) Get(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (s *File) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := make(json.RawMessage, len(value))
	copy(v, value)
	s.values[key] = v
	return s.saveToFile()
}

func (s *File) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return s.saveToFile()
}
