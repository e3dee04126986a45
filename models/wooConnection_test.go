package models

import "testing"

func TestSyncConfigSnapshot(t *testing.T) {
	conn := WooConnection{
		ID:                       3,
		BaseURL:                  "https://shop.example.com",
		ConsumerKey:              "ck",
		ConsumerSecret:           "cs",
		InstantSettlementMethods: " instapay, kashier_card ,,kashier_wallet ",
	}

	cfg := conn.SyncConfig()

	if cfg.ConnectionID != 3 {
		t.Fatalf("connection id = %d", cfg.ConnectionID)
	}
	if cfg.APIVersion != "v3" {
		t.Fatalf("empty api version should default to v3, got %q", cfg.APIVersion)
	}
	if cfg.OrderSyncPageSize != 50 {
		t.Fatalf("zero page size should default to 50, got %d", cfg.OrderSyncPageSize)
	}

	for _, m := range []string{"instapay", "kashier_card", "kashier_wallet"} {
		if !cfg.InstantSettlementMethods[m] {
			t.Fatalf("expected %s in instant settlement set", m)
		}
	}
	if cfg.InstantSettlementMethods["cod"] {
		t.Fatal("cod must not settle instantly")
	}
	if cfg.InstantSettlementMethods[""] {
		t.Fatal("empty CSV fragments must be dropped")
	}
}

func TestNewWooConnectionValidate(t *testing.T) {
	ok := NewWooConnection{
		BaseURL:        "https://shop.example.com",
		ConsumerKey:    "ck",
		ConsumerSecret: "cs",
	}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	bad := NewWooConnection{BaseURL: "not a url"}
	if err := bad.Validate(); err == nil {
		t.Fatal("invalid input accepted")
	}
}
