package cli

import (
	"strings"
	"testing"
)

func TestCatalogShowUnknownSlug(t *testing.T) {
	defer resetCLI()
	injectStores()

	// Not-found goes to stderr and is not a command failure.
	out, err := run("catalog", "show", "no-such-product")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if strings.TrimSpace(out) != "" {
		t.Fatalf("expected no stdout output, got %q", out)
	}
}

func TestCartAddUnknownSlug(t *testing.T) {
	defer resetCLI()
	injectStores()

	_, err := run("cart", "add", "no-such-product")
	if err == nil {
		t.Fatal("expected error for unknown slug")
	}
	if !cartStore.IsEmpty() {
		t.Fatal("cart should stay empty")
	}
}

func TestCartUpdateInvalidID(t *testing.T) {
	defer resetCLI()
	injectStores()

	if _, err := run("cart", "update", "abc", "--quantity", "2"); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
}

func TestCatalogRelatedInvalidID(t *testing.T) {
	defer resetCLI()
	injectStores()

	if _, err := run("catalog", "related", "abc"); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
}

func TestWishlistRemoveInvalidID(t *testing.T) {
	defer resetCLI()
	injectStores()

	if _, err := run("wishlist", "remove", "abc"); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
}
