package woosync

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
)

// VerifyWebhookSignature checks the storefront's HMAC-SHA256 signature
// (base64 of the raw body digest) in constant time.
func VerifyWebhookSignature(secret string, body []byte, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// WebhookVerdict classifies one delivery before any processing happens.
type WebhookVerdict int

const (
	// WebhookHandshake is the storefront's ping while registering the hook;
	// it carries no entity and must be acknowledged so registration succeeds.
	WebhookHandshake WebhookVerdict = iota
	// WebhookAccepted carries a signed entity payload.
	WebhookAccepted
	// WebhookRejected failed signature verification.
	WebhookRejected
)

type webhookEntity struct {
	ID int64 `json:"id"`
}

// ClassifyWebhook decides whether a delivery is a registration handshake, a
// verified event, or a forgery. Any body without an entity id is a handshake
// (empty or webhook_id-only pings, even when they carry a stray or invalid
// signature); rejection is reserved for id-carrying bodies that fail
// verification.
func ClassifyWebhook(secret string, body []byte, signature string, requireSignature bool) (WebhookVerdict, int64) {
	var entity webhookEntity
	hasID := false
	if len(strings.TrimSpace(string(body))) > 0 {
		if err := json.Unmarshal(body, &entity); err == nil && entity.ID > 0 {
			hasID = true
		}
	}

	if !hasID {
		return WebhookHandshake, 0
	}

	if requireSignature && !VerifyWebhookSignature(secret, body, signature) {
		return WebhookRejected, 0
	}
	return WebhookAccepted, entity.ID
}
