package woosync

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	secret := "whsec_test"
	body := []byte(`{"id":42,"status":"processing"}`)

	if !VerifyWebhookSignature(secret, body, sign(secret, body)) {
		t.Fatal("valid signature rejected")
	}
	if VerifyWebhookSignature(secret, body, sign("other_secret", body)) {
		t.Fatal("signature from wrong secret accepted")
	}
	if VerifyWebhookSignature(secret, body, "") {
		t.Fatal("empty signature accepted")
	}
	if VerifyWebhookSignature("", body, sign(secret, body)) {
		t.Fatal("empty secret accepted")
	}
	if VerifyWebhookSignature(secret, []byte(`{"id":43}`), sign(secret, body)) {
		t.Fatal("signature over different body accepted")
	}
}

func TestClassifyWebhook(t *testing.T) {
	secret := "whsec_test"

	// Registration ping: empty body, no signature.
	verdict, _ := ClassifyWebhook(secret, nil, "", true)
	if verdict != WebhookHandshake {
		t.Fatalf("empty unsigned delivery: expected handshake, got %v", verdict)
	}

	// Registration ping variant: webhook_id body without entity id.
	verdict, _ = ClassifyWebhook(secret, []byte(`{"webhook_id":7}`), "", true)
	if verdict != WebhookHandshake {
		t.Fatalf("id-less unsigned delivery: expected handshake, got %v", verdict)
	}

	// Registration ping carrying a stray invalid signature: no entity id
	// still means handshake, not rejection.
	verdict, _ = ClassifyWebhook(secret, []byte(`{"webhook_id":7}`), "not-a-valid-signature", true)
	if verdict != WebhookHandshake {
		t.Fatalf("id-less badly-signed delivery: expected handshake, got %v", verdict)
	}

	// Real event, valid signature.
	body := []byte(`{"id":42,"status":"processing"}`)
	verdict, orderID := ClassifyWebhook(secret, body, sign(secret, body), true)
	if verdict != WebhookAccepted {
		t.Fatalf("signed delivery: expected accepted, got %v", verdict)
	}
	if orderID != 42 {
		t.Fatalf("expected order id 42, got %d", orderID)
	}

	// Real event, bad signature.
	verdict, _ = ClassifyWebhook(secret, body, sign("wrong", body), true)
	if verdict != WebhookRejected {
		t.Fatalf("forged delivery: expected rejected, got %v", verdict)
	}

	// Real event, missing signature entirely.
	verdict, _ = ClassifyWebhook(secret, body, "", true)
	if verdict != WebhookRejected {
		t.Fatalf("unsigned event with entity id: expected rejected, got %v", verdict)
	}

	// Enforcement off: event passes without a valid signature.
	verdict, orderID = ClassifyWebhook(secret, body, "garbage", false)
	if verdict != WebhookAccepted || orderID != 42 {
		t.Fatalf("enforcement off: expected accepted/42, got %v/%d", verdict, orderID)
	}
}
