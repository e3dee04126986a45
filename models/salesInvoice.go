package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesInvoice is the local document one accepted storefront order becomes.
// Lifecycle follows DocStatus: draft rows may be restructured wholesale,
// submitted rows only take non-structural patches, cancelled is terminal.
type SalesInvoice struct {
	ID        int    `gorm:"primary_key" json:"id"`
	Name      string `gorm:"size:140;not null;uniqueIndex" json:"name"`
	DocStatus DocStatus `gorm:"not null;default:0" json:"docstatus"`

	CustomerID   int    `gorm:"index;not null" json:"customer_id"`
	CustomerName string `gorm:"size:140" json:"customer_name"`

	WooOrderID     *int64 `gorm:"index" json:"woo_order_id"`
	WooOrderNumber string `gorm:"size:64" json:"woo_order_number"`
	WooOrderStatus string `gorm:"size:50" json:"woo_order_status"`
	IsHistorical   bool   `gorm:"default:false" json:"is_historical"`

	BillingAddressID  *int `json:"billing_address_id"`
	ShippingAddressID *int `json:"shipping_address_id"`

	Territory  string `gorm:"size:100" json:"territory"`
	POSProfile string `gorm:"size:100" json:"pos_profile"`
	Warehouse  string `gorm:"size:100" json:"warehouse"`
	PriceList  string `gorm:"size:100" json:"price_list"`

	Currency      string          `gorm:"size:10;default:'EGP'" json:"currency"`
	Total         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total"`
	GrandTotal    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"grand_total"`
	OutstandingAmount decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"outstanding_amount"`
	IsPaid        bool            `gorm:"default:false" json:"is_paid"`
	PaymentMethod string          `gorm:"size:50" json:"payment_method"`

	DeliveryDate *time.Time `json:"delivery_date"`
	DeliverySlot string     `gorm:"size:100" json:"delivery_slot"`
	State        string     `gorm:"size:50" json:"state"`

	Items   []*SalesInvoiceItem   `gorm:"foreignKey:InvoiceID" json:"items"`
	Charges []*SalesInvoiceCharge `gorm:"foreignKey:InvoiceID" json:"charges"`

	SubmittedAt *time.Time `json:"submitted_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

type SalesInvoiceItem struct {
	ID        int    `gorm:"primary_key" json:"id"`
	InvoiceID int    `gorm:"index;not null" json:"invoice_id"`
	Idx       int    `gorm:"not null" json:"idx"`
	ItemCode  string `gorm:"size:140;not null" json:"item_code"`
	ItemName  string `gorm:"size:240" json:"item_name"`

	Qty           decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"qty"`
	Rate          decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"rate"`
	PriceListRate decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"price_list_rate"`
	DiscountPct   decimal.Decimal `gorm:"type:decimal(20,6);default:0" json:"discount_pct"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`

	BundleRole   BundleRole `gorm:"size:10;default:'none'" json:"bundle_role"`
	BundleParent string     `gorm:"size:140" json:"bundle_parent"`

	WooLineID      *int64 `json:"woo_line_id"`
	WooProductID   *int64 `json:"woo_product_id"`
	WooVariationID *int64 `json:"woo_variation_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// SalesInvoiceCharge carries flat income rows appended to an invoice, such
// as the territory delivery surcharge.
type SalesInvoiceCharge struct {
	ID          int             `gorm:"primary_key" json:"id"`
	InvoiceID   int             `gorm:"index;not null" json:"invoice_id"`
	ChargeType  string          `gorm:"size:20;default:'Actual'" json:"charge_type"`
	Account     string          `gorm:"size:140" json:"account"`
	Description string          `gorm:"size:240" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

// PaymentReceipt settles an invoice in full. Synthesized on submit when the
// order's payment method settles instantly (card/wallet/instapay).
type PaymentReceipt struct {
	ID            int             `gorm:"primary_key" json:"id"`
	Name          string          `gorm:"size:140;not null;uniqueIndex" json:"name"`
	InvoiceID     int             `gorm:"index;not null" json:"invoice_id"`
	CustomerID    int             `gorm:"index;not null" json:"customer_id"`
	PaymentMethod string          `gorm:"size:50" json:"payment_method"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	PostedAt      time.Time       `json:"posted_at"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}
