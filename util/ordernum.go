// Package util provides utility helpers for the storefront.
package util

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
)

// OrderNumberPrefix is the fixed prefix of customer-facing order numbers.
const OrderNumberPrefix = "ORD-"

// OrderNumbers issues customer-facing order numbers of the form
// ORD-XXXXXX with a random six-digit suffix. Numbers are unique within
// the process; global uniqueness is carried by the order's internal id,
// not by this display number.
type OrderNumbers struct {
	mu     sync.Mutex
	issued map[string]bool
}

// NewOrderNumbers constructs an order number generator.
func NewOrderNumbers() *OrderNumbers {
	return &OrderNumbers{issued: make(map[string]bool)}
}

// Next returns a fresh order number not issued before by this generator.
func (g *OrderNumbers) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	for {
		n, err := rand.Int(rand.Reader, big.NewInt(900000))
		if err != nil {
			// crypto/rand failure is not recoverable here; fall back to
			// a counter so order placement still succeeds
			n = big.NewInt(int64(len(g.issued)) % 900000)
		}
		num := fmt.Sprintf("%s%06d", OrderNumberPrefix, 100000+n.Int64())
		if !g.issued[num] {
			g.issued[num] = true
			return num
		}
	}
}
