package storage

import "sync"

// Memory is a thread-safe in-memory Store. It backs tests and the
// session-scoped storage of a single run.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemory constructs a new Memory store
func NewMemory() *Memory {
	return &Memory{
		values: make(map[string][]byte),
	}
}

// compile-time assertion that Memory implements Store
var _ Store = (*Memory)(nil)

func (s *Memory) Get(key string) ([]byte, bool, error) {
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

func (s *Memory) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	s.values[key] = v
	return nil
}

func (s *Memory) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}
