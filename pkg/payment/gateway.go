// Package payment talks to the external payment processor: it creates
// orders with a server-resolved amount and checks checkout signatures.
package payment

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
)

var (
	// ErrNotConfigured means key id or secret is missing.
	ErrNotConfigured = errors.New("payment processor not configured")
	// ErrUnavailable means the processor timed out or could not be reached.
	ErrUnavailable = errors.New("payment processor unavailable")
	// ErrRejected means the processor answered with an error.
	ErrRejected = errors.New("payment processor rejected request")
	// ErrOrderNotFound means the processor has no such order.
	ErrOrderNotFound = errors.New("order not found")
)

// Note keys written on every order.
const (
	NotePlan     = "plan"
	NoteIdentity = "identity"
)

// Order mirrors the processor's order object.
type Order struct {
	Id        string            `json:"id"`
	Entity    string            `json:"entity"`
	Amount    int64             `json:"amount"`
	Currency  string            `json:"currency"`
	Receipt   string            `json:"receipt"`
	Status    string            `json:"status"`
	CreatedAt int64             `json:"created_at"`
	Notes     map[string]string `json:"notes"`
}

type OrderRequest struct {
	Amount   int64 // smallest currency unit
	Currency string
	Receipt  string
	Notes    map[string]string
}

// Gateway is the processor-side surface the service needs.
type Gateway interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
	FetchOrder(ctx context.Context, orderId string) (*Order, error)
}

// NewReceipt returns a unique receipt reference, e.g. receipt_order_1a2b3c4d.
func NewReceipt() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "receipt_order_" + hex.EncodeToString(b), nil
}

// ToMinorUnits converts a whole-unit price to the processor's smallest unit.
func ToMinorUnits(price int) int64 {
	return int64(price) * 100
}
