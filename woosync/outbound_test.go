package woosync

import (
	"testing"

	"bitbucket.org/jarzapp/woosync_backend/models"
)

func TestDerivePassword(t *testing.T) {
	cases := []struct {
		phone    string
		expected string
	}{
		{"+20 100 123 4567", "201001234567"},
		{"01001234567", "01001234567"},
		{"12345", "123451234567"},
		{"1", "112345678"},
		{"", "OrderJarz123"},
		{"+-()", "OrderJarz123"},
	}
	for _, tc := range cases {
		if got := derivePassword(tc.phone); got != tc.expected {
			t.Fatalf("derivePassword(%q) = %q, expected %q", tc.phone, got, tc.expected)
		}
	}
}

func TestPlaceholderEmail(t *testing.T) {
	cases := []struct {
		name     string
		expected string
	}{
		{"Ahmed Hassan", "ahmedhassan@orderjarz.local"},
		{"Mo'men El-Sayed 2", "momenelsayed2@orderjarz.local"},
		{"", "customer@orderjarz.local"},
		{"---", "customer@orderjarz.local"},
	}
	for _, tc := range cases {
		if got := placeholderEmail(tc.name); got != tc.expected {
			t.Fatalf("placeholderEmail(%q) = %q, expected %q", tc.name, got, tc.expected)
		}
	}
}

func TestSplitName(t *testing.T) {
	first, last := splitName("Ahmed Hassan Ali")
	if first != "Ahmed" || last != "Hassan Ali" {
		t.Fatalf("got (%q, %q)", first, last)
	}
	first, last = splitName("Ahmed")
	if first != "Ahmed" || last != "" {
		t.Fatalf("got (%q, %q)", first, last)
	}
	first, last = splitName("")
	if first != "" || last != "" {
		t.Fatalf("got (%q, %q)", first, last)
	}
}

func TestRemotePaymentMethod(t *testing.T) {
	cfg := models.SyncConfig{
		PaymentMethodCOD:      "cod",
		PaymentMethodInstapay: "instapay",
		PaymentMethodWallet:   "kashier_wallet",
	}
	cases := []struct {
		method   string
		expected string
	}{
		{"instapay", "instapay"},
		{"kashier_wallet", "kashier_wallet"},
		{"kashier_card", "cod"},
		{"cod", "cod"},
		{"", "cod"},
	}
	for _, tc := range cases {
		if got := remotePaymentMethod(cfg, tc.method); got != tc.expected {
			t.Fatalf("remotePaymentMethod(%q) = %q, expected %q", tc.method, got, tc.expected)
		}
	}
}

func TestRemoteOrderStatus(t *testing.T) {
	inv := models.SalesInvoice{DocStatus: models.DocStatusCancelled}
	if got := remoteOrderStatus(inv); got != "cancelled" {
		t.Fatalf("cancelled invoice mapped to %q", got)
	}
	inv = models.SalesInvoice{DocStatus: models.DocStatusSubmitted, IsPaid: true}
	if got := remoteOrderStatus(inv); got != "completed" {
		t.Fatalf("paid invoice mapped to %q", got)
	}
	inv = models.SalesInvoice{DocStatus: models.DocStatusSubmitted}
	if got := remoteOrderStatus(inv); got != "processing" {
		t.Fatalf("unpaid submitted invoice mapped to %q", got)
	}
}

func TestReattachLineIDs(t *testing.T) {
	remote := []WooLineItem{
		{ID: 11, ProductID: 501, MetaData: []WooMeta{{Key: "erpnext_item_code", Value: []byte(`"ITEM-A"`)}}},
		{ID: 12, ProductID: 502, VariationID: 907},
		{ID: 13, ProductID: 503},
	}

	lines := []map[string]interface{}{
		{
			"product_id": int64(999),
			"meta_data":  []map[string]interface{}{{"key": "erpnext_item_code", "value": "ITEM-A"}},
		},
		{
			"product_id":   int64(502),
			"variation_id": int64(907),
			"meta_data":    []map[string]interface{}{{"key": "erpnext_item_code", "value": "ITEM-B"}},
		},
		{
			"product_id": int64(888),
			"meta_data":  []map[string]interface{}{{"key": "erpnext_item_code", "value": "ITEM-C"}},
		},
	}

	out := reattachLineIDs(lines, remote)

	// Meta match wins even when product ids disagree.
	if got, ok := out[0]["id"].(int64); !ok || got != 11 {
		t.Fatalf("line 0: expected reattach to id 11, got %v", out[0]["id"])
	}
	// Fallback to product/variation pair.
	if got, ok := out[1]["id"].(int64); !ok || got != 12 {
		t.Fatalf("line 1: expected reattach to id 12, got %v", out[1]["id"])
	}
	// No match: stays detached so the update appends it.
	if _, ok := out[2]["id"]; ok {
		t.Fatalf("line 2: expected no id, got %v", out[2]["id"])
	}
}

func TestBatchSummaryRecord(t *testing.T) {
	var s BatchSummary
	ref := "SINV-WOO-1"
	for i := 0; i < 15; i++ {
		s.record(Outcome{Status: OutcomeCreated, OrderID: int64(i), InvoiceRef: &ref})
	}
	s.record(Outcome{Status: OutcomeUpdated, OrderID: 100, InvoiceRef: &ref})
	s.record(Outcome{Status: OutcomeSkipped, OrderID: 101, Reason: SkipAlreadyMapped})
	s.record(Outcome{Status: OutcomeError, OrderID: 102, Reason: "boom"})

	if s.Created != 15 || s.Processed != 16 || s.Skipped != 1 || s.Errors != 1 {
		t.Fatalf("unexpected counters: %+v", s)
	}
	if len(s.Results) != resultsSampleLimit {
		t.Fatalf("sample should cap at %d, got %d", resultsSampleLimit, len(s.Results))
	}
}
