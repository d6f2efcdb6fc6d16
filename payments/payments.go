// Package payments isolates all interaction with the payment processor
// behind a narrow interface so handlers can take a deterministic double in
// tests.
package payments

import (
	"context"
	"errors"
	"fmt"
)

const EventPaymentSucceeded = "payment_intent.succeeded"

var (
	ErrInvalidSignature = errors.New("webhook signature verification failed")
	ErrMalformedPayload = errors.New("webhook payload could not be parsed")
)

// Intent is the provider-side handle for an in-progress charge plus the
// client secret the browser needs to complete it.
type Intent struct {
	ID           string
	ClientSecret string
}

// Event is a verified webhook notification.
type Event struct {
	Type        string
	IntentID    string
	AmountCents int64
	Metadata    map[string]string
}

type Gateway interface {
	CreateIntent(ctx context.Context, amountCents int64, orderID uint, customerEmail string) (Intent, error)
	VerifyWebhook(payload []byte, sigHeader string) (Event, error)
	Refund(ctx context.Context, intentID string) error
}

// GatewayError is a provider-side rejection. It is propagated, never
// retried.
type GatewayError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payment gateway: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("payment gateway: %s: status %d: %s", e.Op, e.Status, e.Message)
}

func (e *GatewayError) Unwrap() error { return e.Err }
