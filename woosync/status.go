package woosync

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"bitbucket.org/jarzapp/woosync_backend/models"
)

// MapOrderStatus folds a storefront order status into the document lifecycle.
// Live completed/processing orders submit unpaid; the paid flag is only set
// in historical mode where settlement already happened upstream.
func MapOrderStatus(status string, isHistorical bool) (docStatus models.DocStatus, state string, paid bool) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "completed", "processing":
		return models.DocStatusSubmitted, "To Deliver", isHistorical
	case "cancelled", "refunded":
		return models.DocStatusCancelled, "Cancelled", false
	default:
		return models.DocStatusDraft, "Draft", false
	}
}

// IsPendingPayment gates live orders that have not settled yet.
func IsPendingPayment(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "pending", "on-hold":
		return true
	}
	return false
}

// MapPaymentMethod resolves a storefront payment descriptor to one of the
// local payment method codes by case-insensitive substring match.
func MapPaymentMethod(method string, title string) string {
	probe := strings.ToLower(strings.TrimSpace(method + " " + title))
	switch {
	case strings.Contains(probe, "insta"):
		return models.PaymentMethodInstapay
	case strings.Contains(probe, "wallet"):
		return models.PaymentMethodWallet
	case strings.Contains(probe, "card") || strings.Contains(probe, "kashier"):
		return models.PaymentMethodCard
	default:
		return models.PaymentMethodCOD
	}
}

type orderDigest struct {
	Currency  string `json:"currency"`
	ID        int64  `json:"id"`
	LineCount int    `json:"line_count"`
	Status    string `json:"status"`
	Total     string `json:"total"`
	Updated   string `json:"updated"`
}

// ContentHash digests the order-defining fields. Field order is fixed by the
// struct so equal payloads always hash the same.
func ContentHash(order WooOrder) string {
	digest := orderDigest{
		Currency:  order.Currency,
		ID:        order.ID,
		LineCount: len(order.LineItems),
		Status:    order.Status,
		Total:     order.Total,
		Updated:   order.DateModified,
	}
	data, _ := json.Marshal(digest)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
