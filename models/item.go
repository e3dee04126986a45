package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is the local catalog record a storefront line resolves to, by SKU
// first, then by WooProductID.
type Item struct {
	ID            int             `gorm:"primary_key" json:"id"`
	ItemCode      string          `gorm:"size:140;not null;uniqueIndex" json:"item_code"`
	ItemName      string          `gorm:"size:240" json:"item_name"`
	SKU           string          `gorm:"size:140;index" json:"sku"`
	WooProductID  *int64          `gorm:"index" json:"woo_product_id"`
	WooVariationID *int64         `gorm:"index" json:"woo_variation_id"`
	ItemGroup     string          `gorm:"size:100;index" json:"item_group"`
	StandardRate  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"standard_rate"`
	ValuationRate decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"valuation_rate"`
	Disabled      bool            `gorm:"default:false;index" json:"disabled"`
	HasVariants   bool            `gorm:"default:false" json:"has_variants"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// ItemPrice is one sell-side price list entry for an item.
type ItemPrice struct {
	ID        int             `gorm:"primary_key" json:"id"`
	ItemCode  string          `gorm:"size:140;not null;index:idx_item_price_lookup,priority:1" json:"item_code"`
	PriceList string          `gorm:"size:100;not null;index:idx_item_price_lookup,priority:2" json:"price_list"`
	Selling   bool            `gorm:"default:true" json:"selling"`
	Rate      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"rate"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
