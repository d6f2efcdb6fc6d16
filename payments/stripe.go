package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const webhookTolerance = 5 * time.Minute

// StripeGateway talks to Stripe's REST API directly.
type StripeGateway struct {
	client        *resty.Client
	webhookSecret string
	now           func() time.Time
}

func NewStripeGateway(secretKey, webhookSecret string) *StripeGateway {
	client := resty.New().
		SetBaseURL("https://api.stripe.com").
		SetTimeout(30 * time.Second).
		SetAuthToken(secretKey).
		SetHeader("Accept", "application/json")

	return &StripeGateway{
		client:        client,
		webhookSecret: webhookSecret,
		now:           time.Now,
	}
}

type stripeErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func gatewayFailure(op string, resp *resty.Response) *GatewayError {
	var body stripeErrorBody
	message := string(resp.Body())
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Error.Message != "" {
		message = body.Error.Message
	}
	return &GatewayError{Op: op, Status: resp.StatusCode(), Message: message}
}

// CreateIntent registers a payment intent for the order's total, tagged
// with the order id so the webhook can find its way back.
func (g *StripeGateway) CreateIntent(ctx context.Context, amountCents int64, orderID uint, customerEmail string) (Intent, error) {
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Idempotency-Key", uuid.NewString()).
		SetFormData(map[string]string{
			"amount":                             strconv.FormatInt(amountCents, 10),
			"currency":                           "usd",
			"receipt_email":                      customerEmail,
			"description":                        fmt.Sprintf("Bikinis By Telly - Order #%d", orderID),
			"metadata[order_id]":                 strconv.FormatUint(uint64(orderID), 10),
			"automatic_payment_methods[enabled]": "true",
		}).
		Post("/v1/payment_intents")

	if err != nil {
		return Intent{}, &GatewayError{Op: "create intent", Err: err}
	}
	if resp.StatusCode() != 200 {
		return Intent{}, gatewayFailure("create intent", resp)
	}

	var out struct {
		ID           string `json:"id"`
		ClientSecret string `json:"client_secret"`
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return Intent{}, &GatewayError{Op: "create intent", Err: fmt.Errorf("decode response: %w", err)}
	}
	if out.ID == "" || out.ClientSecret == "" {
		return Intent{}, &GatewayError{Op: "create intent", Err: fmt.Errorf("incomplete response")}
	}
	return Intent{ID: out.ID, ClientSecret: out.ClientSecret}, nil
}

// Refund reverses the full charge behind a payment intent.
func (g *StripeGateway) Refund(ctx context.Context, intentID string) error {
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Idempotency-Key", uuid.NewString()).
		SetFormData(map[string]string{"payment_intent": intentID}).
		Post("/v1/refunds")

	if err != nil {
		return &GatewayError{Op: "refund", Err: err}
	}
	if resp.StatusCode() != 200 {
		return gatewayFailure("refund", resp)
	}
	return nil
}

// VerifyWebhook checks the Stripe-Signature header (HMAC-SHA256 over
// "<timestamp>.<payload>") before the payload is even parsed. A bad
// signature is rejected outright, never skipped.
func (g *StripeGateway) VerifyWebhook(payload []byte, sigHeader string) (Event, error) {
	timestamp, signatures, err := parseSignatureHeader(sigHeader)
	if err != nil {
		return Event{}, ErrInvalidSignature
	}

	age := g.now().Sub(time.Unix(timestamp, 0))
	if age > webhookTolerance || age < -webhookTolerance {
		return Event{}, ErrInvalidSignature
	}

	expected := computeSignature(g.webhookSecret, timestamp, payload)
	matched := false
	for _, sig := range signatures {
		if hmac.Equal(sig, expected) {
			matched = true
			break
		}
	}
	if !matched {
		return Event{}, ErrInvalidSignature
	}

	var body struct {
		Type string `json:"type"`
		Data struct {
			Object struct {
				ID       string            `json:"id"`
				Amount   int64             `json:"amount"`
				Metadata map[string]string `json:"metadata"`
			} `json:"object"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &body); err != nil || body.Type == "" {
		return Event{}, ErrMalformedPayload
	}

	return Event{
		Type:        body.Type,
		IntentID:    body.Data.Object.ID,
		AmountCents: body.Data.Object.Amount,
		Metadata:    body.Data.Object.Metadata,
	}, nil
}

func parseSignatureHeader(header string) (int64, [][]byte, error) {
	var timestamp int64 = -1
	var signatures [][]byte

	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			ts, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return 0, nil, fmt.Errorf("bad timestamp: %w", err)
			}
			timestamp = ts
		case "v1":
			sig, err := hex.DecodeString(value)
			if err != nil {
				continue
			}
			signatures = append(signatures, sig)
		}
	}

	if timestamp < 0 || len(signatures) == 0 {
		return 0, nil, fmt.Errorf("missing timestamp or signature")
	}
	return timestamp, signatures, nil
}

func computeSignature(secret string, timestamp int64, payload []byte) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(payload)
	return mac.Sum(nil)
}
