package models

type DocStatus int

const (
	DocStatusDraft     DocStatus = 0
	DocStatusSubmitted DocStatus = 1
	DocStatusCancelled DocStatus = 2
)

type AddressType string

const (
	AddressTypeBilling  AddressType = "Billing"
	AddressTypeShipping AddressType = "Shipping"
)

type BundleRole string

const (
	BundleRoleNone   BundleRole = "none"
	BundleRoleParent BundleRole = "parent"
	BundleRoleChild  BundleRole = "child"
)

type WooSyncStatus string

const (
	WooSyncStatusUnsynced WooSyncStatus = "unsynced"
	WooSyncStatusSynced   WooSyncStatus = "synced"
	WooSyncStatusError    WooSyncStatus = "error"
)

const (
	ConnectionStatusConnected    = "connected"
	ConnectionStatusDisconnected = "disconnected"
	ConnectionStatusError        = "error"
)

const (
	SyncRunStatusQueued  = "queued"
	SyncRunStatusRunning = "running"
	SyncRunStatusSuccess = "success"
	SyncRunStatusFailed  = "failed"
	SyncRunStatusPartial = "partial"
)

const (
	SyncTriggeredManual  = "manual"
	SyncTriggeredWebhook = "webhook"
	SyncTriggeredCron    = "cron"
	SyncTriggeredRetry   = "retry"
)

const (
	SyncRunTypeOrders     = "orders"
	SyncRunTypeCustomers  = "customers"
	SyncRunTypeTerritories = "territories"
	SyncRunTypeHistorical = "historical"
	SyncRunTypeOutbound   = "outbound"
)

// Remote payment method codes accepted by the storefront.
const (
	PaymentMethodCOD      = "cod"
	PaymentMethodInstapay = "instapay"
	PaymentMethodWallet   = "kashier_wallet"
	PaymentMethodCard     = "kashier_card"
)
