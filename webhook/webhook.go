package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// EventPricesSaved is sent after a price book has been written.
const EventPricesSaved = "prices.saved"

// SignatureHeader carries "sha256=<hex>" of the request body when a secret
// is configured.
const SignatureHeader = "X-Skinprices-Signature"

// Event is the payload sent to webhook endpoints.
type Event struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data"`
}

// NewEvent stamps an event of the given type with the current time.
func NewEvent(typ string, data any) *Event {
	return &Event{Type: typ, Timestamp: time.Now().Unix(), Data: data}
}

var client = resty.New().
	SetTimeout(10*time.Second).
	SetHeader("User-Agent", "skinprices-webhook/1.0")

// Deliver posts event to url once. There is no retry.
func Deliver(ctx context.Context, url, secret string, event *Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("webhook: marshal event: %w", err)
	}

	req := client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	if secret != "" {
		req.SetHeader(SignatureHeader, "sha256="+Sign(secret, body))
	}

	res, err := req.Post(url)
	if err != nil {
		return fmt.Errorf("webhook: deliver: %w", err)
	}
	if res.StatusCode() >= 400 {
		return fmt.Errorf("webhook: endpoint returned status %d", res.StatusCode())
	}
	return nil
}

// Sign returns the hex HMAC-SHA256 of body under secret.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
