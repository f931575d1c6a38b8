package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "store.json")

	s, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	if err := s.Set("cart", []byte(`[{"id":1,"quantity":3}]`)); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := s.Set("wishlist", []byte(`[]`)); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	// reopen from disk
	reopened, err := NewFile(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	v, ok, err := reopened.Get("cart")
	if err != nil || !ok {
		t.Fatalf("get after reopen: ok=%v err=%v", ok, err)
	}
	if string(v) != `[{"id":1,"quantity":3}]` {
		t.Fatalf("value did not round-trip: %q", v)
	}

	// a write through the reopened store must not rewrite other keys
	if err := reopened.Set("wishlist", []byte(`[{"id":9}]`)); err != nil {
		t.Fatalf("set after reopen failed: %v", err)
	}
	again, err := NewFile(path)
	if err != nil {
		t.Fatalf("second reopen failed: %v", err)
	}
	v, ok, err = again.Get("cart")
	if err != nil || !ok {
		t.Fatalf("get after second reopen: ok=%v err=%v", ok, err)
	}
	if string(v) != `[{"id":1,"quantity":3}]` {
		t.Fatalf("value rewritten by unrelated save: %q", v)
	}
}

func TestFile_MissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.json")
	s, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	if _, ok, _ := s.Get("cart"); ok {
		t.Fatal("expected empty store")
	}
}

func TestFile_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	s, err := NewFile(path)
	if err != nil {
		t.Fatalf("corrupt file must not fail open: %v", err)
	}
	if _, ok, _ := s.Get("cart"); ok {
		t.Fatal("corrupt contents should have been discarded")
	}

	// the store remains usable
	if err := s.Set("cart", []byte(`[]`)); err != nil {
		t.Fatalf("set after discard failed: %v", err)
	}
}

func TestFile_DeletePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	s, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	_ = s.Set("checkoutFormData", []byte(`{"email":"a@b.co"}`))
	if err := s.Delete("checkoutFormData"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	reopened, err := NewFile(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if _, ok, _ := reopened.Get("checkoutFormData"); ok {
		t.Fatal("deleted key survived reopen")
	}
}

func TestFile_WritesWellFormedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	s, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	_ = s.Set("cart", []byte(`[{"id":2}]`))

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("file is not a JSON object: %v", err)
	}
	if _, ok := doc["cart"]; !ok {
		t.Fatal("cart key missing from file")
	}

	// no stray tmp file left behind
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("tmp file should have been renamed away")
	}
}
