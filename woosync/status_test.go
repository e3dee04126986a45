package woosync

import (
	"testing"

	"bitbucket.org/jarzapp/woosync_backend/models"
)

func TestMapOrderStatus(t *testing.T) {
	cases := []struct {
		status       string
		isHistorical bool
		docStatus    models.DocStatus
		state        string
		paid         bool
	}{
		{"completed", false, models.DocStatusSubmitted, "To Deliver", false},
		{"processing", false, models.DocStatusSubmitted, "To Deliver", false},
		{"completed", true, models.DocStatusSubmitted, "To Deliver", true},
		{"processing", true, models.DocStatusSubmitted, "To Deliver", true},
		{"cancelled", false, models.DocStatusCancelled, "Cancelled", false},
		{"refunded", true, models.DocStatusCancelled, "Cancelled", false},
		{"pending", false, models.DocStatusDraft, "Draft", false},
		{"on-hold", false, models.DocStatusDraft, "Draft", false},
		{"Completed", false, models.DocStatusSubmitted, "To Deliver", false},
		{"  processing ", false, models.DocStatusSubmitted, "To Deliver", false},
		{"some-custom-status", false, models.DocStatusDraft, "Draft", false},
	}
	for _, tc := range cases {
		docStatus, state, paid := MapOrderStatus(tc.status, tc.isHistorical)
		if docStatus != tc.docStatus || state != tc.state || paid != tc.paid {
			t.Fatalf("MapOrderStatus(%q, %v) = (%d, %q, %v), expected (%d, %q, %v)",
				tc.status, tc.isHistorical, docStatus, state, paid, tc.docStatus, tc.state, tc.paid)
		}
	}
}

func TestIsPendingPayment(t *testing.T) {
	for _, status := range []string{"pending", "on-hold", "Pending", " ON-HOLD "} {
		if !IsPendingPayment(status) {
			t.Fatalf("IsPendingPayment(%q) expected true", status)
		}
	}
	for _, status := range []string{"processing", "completed", "cancelled", ""} {
		if IsPendingPayment(status) {
			t.Fatalf("IsPendingPayment(%q) expected false", status)
		}
	}
}

func TestMapPaymentMethod(t *testing.T) {
	cases := []struct {
		method   string
		title    string
		expected string
	}{
		{"instapay", "", models.PaymentMethodInstapay},
		{"", "InstaPay Transfer", models.PaymentMethodInstapay},
		{"kashier_wallet", "", models.PaymentMethodWallet},
		{"", "Mobile Wallet", models.PaymentMethodWallet},
		{"kashier_card", "", models.PaymentMethodCard},
		{"", "Pay by Card (Kashier)", models.PaymentMethodCard},
		{"cod", "Cash on delivery", models.PaymentMethodCOD},
		{"", "", models.PaymentMethodCOD},
		{"bacs", "Direct bank transfer", models.PaymentMethodCOD},
	}
	for _, tc := range cases {
		if got := MapPaymentMethod(tc.method, tc.title); got != tc.expected {
			t.Fatalf("MapPaymentMethod(%q, %q) = %q, expected %q", tc.method, tc.title, got, tc.expected)
		}
	}
}

func TestContentHashStableAndSensitive(t *testing.T) {
	order := WooOrder{
		ID:           1001,
		Status:       "processing",
		Currency:     "EGP",
		Total:        "150.00",
		DateModified: "2026-01-10T12:00:00",
		LineItems:    []WooLineItem{{ID: 1}, {ID: 2}},
	}

	h1 := ContentHash(order)
	h2 := ContentHash(order)
	if h1 != h2 {
		t.Fatalf("same payload hashed differently: %s vs %s", h1, h2)
	}
	if len(h1) != 64 {
		t.Fatalf("expected hex sha256, got %q", h1)
	}

	changed := order
	changed.Status = "completed"
	if ContentHash(changed) == h1 {
		t.Fatal("status change did not change hash")
	}

	changed = order
	changed.Total = "160.00"
	if ContentHash(changed) == h1 {
		t.Fatal("total change did not change hash")
	}

	changed = order
	changed.LineItems = changed.LineItems[:1]
	if ContentHash(changed) == h1 {
		t.Fatal("line count change did not change hash")
	}
}
