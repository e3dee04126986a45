package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Territory buckets customers geographically and selects the pricing and
// fulfillment profile for their invoices. WooCode is the durable join key to
// the storefront's delivery areas; the display name may be renamed without
// breaking the link.
type Territory struct {
	ID             int             `gorm:"primary_key" json:"id"`
	Name           string          `gorm:"size:100;not null;uniqueIndex" json:"name"`
	WooCode        string          `gorm:"size:64;index" json:"woo_code"`
	ParentTerritory string         `gorm:"size:100" json:"parent_territory"`
	POSProfile     string          `gorm:"size:100" json:"pos_profile"`
	Warehouse      string          `gorm:"size:100" json:"warehouse"`
	PriceList      string          `gorm:"size:100" json:"price_list"`
	DeliveryIncome decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"delivery_income"`
	IsExpress      bool            `gorm:"default:false" json:"is_express"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
