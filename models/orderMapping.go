package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderMapping is the durable join between one storefront order and at most
// one local sales invoice. Written only when an invoice is created or
// updated; skips and errors leave no mapping so a later attempt starts
// clean.
type OrderMapping struct {
	ID                  uint            `gorm:"primary_key" json:"id"`
	ExternalOrderID     int64           `gorm:"uniqueIndex:idx_order_mapping_external;not null" json:"external_order_id"`
	ExternalOrderNumber string          `gorm:"size:64" json:"external_order_number"`
	SalesInvoice        *string         `gorm:"size:140;index" json:"sales_invoice"`
	ExternalStatus      string          `gorm:"size:50" json:"external_status"`
	Currency            string          `gorm:"size:10" json:"currency"`
	Total               decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total"`
	PaymentMethod       string          `gorm:"size:50" json:"payment_method"`
	ContentHash         string          `gorm:"size:64" json:"content_hash"`
	SyncedAt            *time.Time      `json:"synced_at"`
	CreatedAt           time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
