package storage

import "fmt"

// New constructs a Store by kind: "memory" or "file".
// For file storage, provide the file path in path; for memory, path is ignored.
func New(kind, path string) (Store, error) {
	switch kind {
	case "memory", "mem":
		return NewMemory(), nil
	case "file":
		if path == "" {
			return nil, fmt.Errorf("file path required for file storage")
		}
		return NewFile(path)
	default:
		return nil, fmt.Errorf("unknown storage kind: %s", kind)
	}
}
