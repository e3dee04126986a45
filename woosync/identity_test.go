package woosync

import "testing"

func TestResolveCountry(t *testing.T) {
	cases := []struct {
		raw      string
		def      string
		expected string
	}{
		{"EG", "Egypt", "Egypt"},
		{"eg", "Egypt", "Egypt"},
		{"Egypt", "Egypt", "Egypt"},
		{"egypt", "Egypt", "Egypt"},
		{"saudi arabia", "Egypt", "Saudi Arabia"},
		{"narnia land", "Egypt", "Narnia Land"},
		{"", "Egypt", "Egypt"},
		{"ZZ", "Egypt", "Egypt"},
		{"ZZ", "", ""},
	}
	for _, tc := range cases {
		if got := resolveCountry(tc.raw, tc.def); got != tc.expected {
			t.Fatalf("resolveCountry(%q, %q) = %q, expected %q", tc.raw, tc.def, got, tc.expected)
		}
	}
}

func TestIdentityFromOrder(t *testing.T) {
	order := WooOrder{
		ID:         900,
		CustomerID: 55,
		Billing: WooAddress{
			FirstName: "Ahmed",
			LastName:  "Hassan",
			Email:     "ahmed@example.com",
			Phone:     "",
		},
		Shipping: WooAddress{Phone: "+20 100 123 4567"},
		MetaData: []WooMeta{{Key: "_customer_user_login", Value: []byte(`"ahmed.h"`)}},
	}

	ident := identityFromOrder(order)
	if ident.Username != "ahmed.h" {
		t.Fatalf("username = %q", ident.Username)
	}
	if ident.Phone != "+20 100 123 4567" {
		t.Fatalf("phone should fall back to shipping, got %q", ident.Phone)
	}
	if ident.WooID == nil || *ident.WooID != 55 {
		t.Fatalf("woo id = %v", ident.WooID)
	}
	if ident.displayName() != "Ahmed Hassan" {
		t.Fatalf("display name = %q", ident.displayName())
	}

	guest := identityFromOrder(WooOrder{ID: 901})
	if guest.displayName() != "Woo Guest 901" {
		t.Fatalf("guest display name = %q", guest.displayName())
	}
}
