package models

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// WooConnection holds one storefront's credentials and sync settings.
// The reconciliation engine never reads this row mid-run; it receives an
// immutable snapshot built by SyncConfig().
type WooConnection struct {
	ID            uint   `gorm:"primary_key" json:"id"`
	StoreName     string `gorm:"size:255" json:"store_name"`
	BaseURL       string `gorm:"size:255;not null" json:"base_url"`
	ConsumerKey    string `gorm:"size:255;not null" json:"consumer_key"`
	ConsumerSecret string `gorm:"size:255;not null" json:"consumer_secret"`
	APIVersion    string `gorm:"size:10;default:'v3'" json:"api_version"`
	WebhookSecret string `gorm:"size:255" json:"webhook_secret"`
	Status        string `gorm:"size:20;not null;default:'disconnected'" json:"status"`

	EnableCustomerPush bool `gorm:"default:false" json:"enable_customer_push"`
	EnableOrderPush    bool `gorm:"default:false" json:"enable_order_push"`

	// Remote payment method codes the outbound mapper resolves to.
	PaymentMethodCOD      string `gorm:"size:50;default:'cod'" json:"payment_method_cod"`
	PaymentMethodInstapay string `gorm:"size:50;default:'instapay'" json:"payment_method_instapay"`
	PaymentMethodWallet   string `gorm:"size:50;default:'kashier_wallet'" json:"payment_method_wallet"`

	// Payment methods settled at submit time (a payment receipt is created).
	InstantSettlementMethods string `gorm:"size:255;default:'instapay,kashier_card,kashier_wallet'" json:"instant_settlement_methods"`

	ShippingMethodID    string `gorm:"size:50" json:"shipping_method_id"`
	ShippingMethodTitle string `gorm:"size:100" json:"shipping_method_title"`

	DefaultTerritory  string `gorm:"size:100" json:"default_territory"`
	DefaultPOSProfile string `gorm:"size:100" json:"default_pos_profile"`
	DefaultWarehouse  string `gorm:"size:100" json:"default_warehouse"`
	DefaultPriceList  string `gorm:"size:100" json:"default_price_list"`
	DefaultCountry    string `gorm:"size:100;default:'Egypt'" json:"default_country"`

	OrderSyncPageSize int `gorm:"default:50" json:"order_sync_page_size"`

	LastSyncedCustomerCreated *time.Time `json:"last_synced_customer_created"`
	LastSyncAt                *time.Time `json:"last_sync_at"`
	LastSuccessSyncAt         *time.Time `json:"last_success_sync_at"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewWooConnection struct {
	StoreName      string `json:"store_name"`
	BaseURL        string `json:"base_url" validate:"required,url"`
	ConsumerKey    string `json:"consumer_key" validate:"required"`
	ConsumerSecret string `json:"consumer_secret" validate:"required"`
	APIVersion     string `json:"api_version"`
	WebhookSecret  string `json:"webhook_secret"`
}

var validate = validator.New()

func (input NewWooConnection) Validate() error {
	return validate.Struct(input)
}

// SyncConfig is the immutable per-run configuration snapshot handed to every
// engine entry point.
type SyncConfig struct {
	ConnectionID uint

	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	APIVersion     string
	WebhookSecret  string

	EnableCustomerPush bool
	EnableOrderPush    bool

	PaymentMethodCOD      string
	PaymentMethodInstapay string
	PaymentMethodWallet   string

	InstantSettlementMethods map[string]bool

	ShippingMethodID    string
	ShippingMethodTitle string

	DefaultTerritory  string
	DefaultPOSProfile string
	DefaultWarehouse  string
	DefaultPriceList  string
	DefaultCountry    string

	OrderSyncPageSize int

	// Optional identity fields the resolver is permitted to match on,
	// decided once at startup rather than probed per call.
	Capabilities IdentityCapabilities
}

// IdentityCapabilities declares which optional identity keys exist on the
// customer schema in this deployment.
type IdentityCapabilities struct {
	WooUsername   bool
	WooCustomerID bool
}

// FallbackItemRate prices a bundle child when every rate source comes up
// empty. Logged as an anomaly, never a hard error.
var FallbackItemRate = decimal.NewFromInt(100)

func (c *WooConnection) SyncConfig() SyncConfig {
	instant := map[string]bool{}
	for _, m := range splitCSV(c.InstantSettlementMethods) {
		instant[m] = true
	}
	pageSize := c.OrderSyncPageSize
	if pageSize <= 0 {
		pageSize = 50
	}
	apiVersion := c.APIVersion
	if apiVersion == "" {
		apiVersion = "v3"
	}
	return SyncConfig{
		ConnectionID:             c.ID,
		BaseURL:                  c.BaseURL,
		ConsumerKey:              c.ConsumerKey,
		ConsumerSecret:           c.ConsumerSecret,
		APIVersion:               apiVersion,
		WebhookSecret:            c.WebhookSecret,
		EnableCustomerPush:       c.EnableCustomerPush,
		EnableOrderPush:          c.EnableOrderPush,
		PaymentMethodCOD:         c.PaymentMethodCOD,
		PaymentMethodInstapay:    c.PaymentMethodInstapay,
		PaymentMethodWallet:      c.PaymentMethodWallet,
		InstantSettlementMethods: instant,
		ShippingMethodID:         c.ShippingMethodID,
		ShippingMethodTitle:      c.ShippingMethodTitle,
		DefaultTerritory:         c.DefaultTerritory,
		DefaultPOSProfile:        c.DefaultPOSProfile,
		DefaultWarehouse:         c.DefaultWarehouse,
		DefaultPriceList:         c.DefaultPriceList,
		DefaultCountry:           c.DefaultCountry,
		OrderSyncPageSize:        pageSize,
		Capabilities: IdentityCapabilities{
			WooUsername:   true,
			WooCustomerID: true,
		},
	}
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

var ErrConnectionNotConfigured = errors.New("storefront connection is not configured")
