package woosync

import (
	"encoding/json"
	"strings"
)

// WooCommerce REST payloads. Monetary fields arrive as strings ("90.00"),
// so they stay strings here and are parsed with utils.ParseDecimal.

type WooOrder struct {
	ID                 int64          `json:"id"`
	Number             string         `json:"number"`
	Status             string         `json:"status"`
	Currency           string         `json:"currency"`
	Total              string         `json:"total"`
	ShippingTotal      string         `json:"shipping_total"`
	PaymentMethod      string         `json:"payment_method"`
	PaymentMethodTitle string         `json:"payment_method_title"`
	CustomerID         int64          `json:"customer_id"`
	CustomerNote       string         `json:"customer_note"`
	DateCreated        string         `json:"date_created"`
	DateModified       string         `json:"date_modified"`
	DatePaid           string         `json:"date_paid"`
	Billing            WooAddress     `json:"billing"`
	Shipping           WooAddress     `json:"shipping"`
	LineItems          []WooLineItem  `json:"line_items"`
	MetaData           []WooMeta      `json:"meta_data"`
}

type WooLineItem struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	ProductID   int64     `json:"product_id"`
	VariationID int64     `json:"variation_id"`
	Quantity    int       `json:"quantity"`
	SKU         string    `json:"sku"`
	Price       json.Number `json:"price"`
	Total       string    `json:"total"`
	MetaData    []WooMeta `json:"meta_data"`
}

type WooMeta struct {
	ID    int64           `json:"id"`
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

type WooAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type WooCustomer struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Username    string     `json:"username"`
	DateCreated string     `json:"date_created"`
	Billing     WooAddress `json:"billing"`
	Shipping    WooAddress `json:"shipping"`
}

// DeliveryArea comes from the storefront's custom delivery-areas endpoint.
type DeliveryArea struct {
	Code    string `json:"code"`
	Label   string `json:"label"`
	En      string `json:"en"`
	Ar      string `json:"ar"`
	Express bool   `json:"express"`
}

type deliveryAreasResponse struct {
	Areas []DeliveryArea `json:"areas"`
}

// MetaString returns the string value of a line/order meta entry, tolerating
// both quoted-string and bare values.
func MetaString(metas []WooMeta, key string) string {
	for _, m := range metas {
		if m.Key != key {
			continue
		}
		var s string
		if err := json.Unmarshal(m.Value, &s); err == nil {
			return strings.TrimSpace(s)
		}
		return strings.TrimSpace(strings.Trim(string(m.Value), `"`))
	}
	return ""
}

