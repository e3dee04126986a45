package models

import (
	"time"
)

// Customer is the canonical identity record resolved from storefront
// payloads. Identity keys, in matching priority order: WooUsername,
// normalized Phone, Email, Name. Never deleted by the sync layer.
type Customer struct {
	ID            int    `gorm:"primary_key" json:"id"`
	Name          string `gorm:"size:140;not null;index" json:"name"`
	Email         string `gorm:"size:140;index" json:"email"`
	Phone         string `gorm:"size:20;index" json:"phone"`
	MobileNo      string `gorm:"size:20;index" json:"mobile_no"`
	WooUsername   string `gorm:"size:100;index" json:"woo_username"`
	WooCustomerID *int64 `gorm:"index" json:"woo_customer_id"`
	Territory     string `gorm:"size:100" json:"territory"`

	WooSyncStatus WooSyncStatus `gorm:"size:20;default:'unsynced'" json:"woo_sync_status"`
	WooSyncError  string        `gorm:"type:text" json:"woo_sync_error"`
	WooLastSync   *time.Time    `json:"woo_last_sync"`

	Addresses []*Address `json:"addresses"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Address belongs to exactly one customer. (CustomerID, Type, Line1) is the
// dedup key: a matching row is reused, never duplicated.
type Address struct {
	ID         int         `gorm:"primary_key" json:"id"`
	CustomerID int         `gorm:"uniqueIndex:idx_address_dedup,priority:1;not null" json:"customer_id"`
	Type       AddressType `gorm:"uniqueIndex:idx_address_dedup,priority:2;size:20;not null" json:"type"`
	Line1      string      `gorm:"uniqueIndex:idx_address_dedup,priority:3;size:240;not null" json:"line1"`
	Line2      string      `gorm:"size:240" json:"line2"`
	City       string      `gorm:"size:100" json:"city"`
	State      string      `gorm:"size:100" json:"state"`
	PostalCode string      `gorm:"size:20" json:"postal_code"`
	Country    string      `gorm:"size:100" json:"country"`
	Phone      string      `gorm:"size:20" json:"phone"`
	Email      string      `gorm:"size:140" json:"email"`
	CreatedAt  time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}
