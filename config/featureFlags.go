package config

import (
	"os"
	"strings"
)

// OutboundPushKillSwitch globally disables outbound pushes to the storefront
// regardless of the per-connection toggles. Used during incident response so
// the inbound flow keeps running while the remote side is misbehaving.
//
// Set via env:
// - OUTBOUND_PUSH_DISABLED=true
func OutboundPushKillSwitch() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("OUTBOUND_PUSH_DISABLED")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}

// WebhookSignatureRequired rejects unsigned webhook deliveries that carry a
// record id. Handshake pings (no id) are acknowledged either way.
//
// Set via env:
// - WEBHOOK_SIGNATURE_REQUIRED=false to relax during initial wiring.
func WebhookSignatureRequired() bool {
	raw := strings.ToLower(strings.TrimSpace(os.Getenv("WEBHOOK_SIGNATURE_REQUIRED")))
	if raw == "" {
		return true
	}
	return raw == "1" || raw == "true" || raw == "yes" || raw == "y"
}
