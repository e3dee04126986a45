package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bundle defines a composite sellable: a parent item sold at a fixed all-in
// price, expanded into concrete child lines per its requirement rows.
type Bundle struct {
	ID           int                  `gorm:"primary_key" json:"id"`
	ParentItem   string               `gorm:"size:140;not null;uniqueIndex" json:"parent_item"`
	BundlePrice  decimal.Decimal      `gorm:"type:decimal(20,4);not null" json:"bundle_price"`
	IsActive     bool                 `gorm:"default:true" json:"is_active"`
	Requirements []*BundleRequirement `gorm:"foreignKey:BundleID" json:"requirements"`
	CreatedAt    time.Time            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time            `gorm:"autoUpdateTime" json:"updated_at"`
}

// BundleRequirement is one (item group, quantity) row, expanded in Idx order.
type BundleRequirement struct {
	ID        int       `gorm:"primary_key" json:"id"`
	BundleID  int       `gorm:"index;not null" json:"bundle_id"`
	Idx       int       `gorm:"not null" json:"idx"`
	ItemGroup string    `gorm:"size:100;not null" json:"item_group"`
	Qty       int       `gorm:"not null" json:"qty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
