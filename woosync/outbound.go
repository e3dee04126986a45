package woosync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bitbucket.org/jarzapp/woosync_backend/config"
	"bitbucket.org/jarzapp/woosync_backend/models"
	"bitbucket.org/jarzapp/woosync_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrOutboundDisabled signals the kill switch; callers drop the job quietly.
var ErrOutboundDisabled = errors.New("outbound push is disabled")

// PushCustomer mirrors a local customer to the storefront. Phone is
// mandatory; the storefront treats accounts without one as unreachable.
// A deterministic password is derived only on first create so that support
// can recover accounts; updates never resend credentials.
func PushCustomer(ctx context.Context, cfg models.SyncConfig, customerID int) error {
	if config.OutboundPushKillSwitch() {
		return ErrOutboundDisabled
	}
	if !cfg.EnableCustomerPush {
		return ErrOutboundDisabled
	}

	logger := config.GetLogger()
	db := config.GetDB()

	var customer models.Customer
	if err := db.WithContext(ctx).Preload("Addresses").Take(&customer, customerID).Error; err != nil {
		return err
	}

	phone := customer.Phone
	if phone == "" {
		phone = customer.MobileNo
	}
	if strings.TrimSpace(phone) == "" {
		markCustomerSync(ctx, db, &customer, models.WooSyncStatusError, ErrNoPhone.Error())
		return ErrNoPhone
	}
	// Ship E.164 when the number is valid for the region; numbers the plan
	// rejects go out as entered so support can still see them remotely.
	// Credentials below stay derived from the number as stored.
	remotePhone := phone
	if e164, ok := utils.FormatPhoneE164(phone, utils.CountryCode); ok {
		remotePhone = e164
	}

	email := strings.TrimSpace(customer.Email)
	if email == "" {
		email = placeholderEmail(customer.Name)
	}

	first, last := splitName(customer.Name)
	payload := map[string]interface{}{
		"email":      email,
		"first_name": first,
		"last_name":  last,
		"billing": map[string]interface{}{
			"first_name": first,
			"last_name":  last,
			"phone":      remotePhone,
			"email":      email,
		},
	}
	if addr := primaryAddress(customer.Addresses, models.AddressTypeBilling); addr != nil {
		billing := payload["billing"].(map[string]interface{})
		billing["address_1"] = addr.Line1
		billing["address_2"] = addr.Line2
		billing["city"] = addr.City
		billing["country"] = addr.Country
	}

	client, err := newWooClient(cfg)
	if err != nil {
		return err
	}

	create := func() error {
		payload["username"] = utils.PhoneDigits(phone)
		payload["password"] = derivePassword(phone)
		remote, err := client.CreateCustomer(ctx, payload)
		if err != nil {
			return err
		}
		return db.WithContext(ctx).Model(&customer).
			Update("woo_customer_id", remote.ID).Error
	}

	if customer.WooCustomerID != nil {
		_, err = client.UpdateCustomer(ctx, *customer.WooCustomerID, payload)
		if IsNotFound(err) {
			// The remote account was deleted out from under us; recreate.
			logger.Warnf("remote customer %d vanished, recreating (customer_id=%d)", *customer.WooCustomerID, customer.ID)
			err = create()
		}
	} else {
		err = create()
	}

	if err != nil {
		markCustomerSync(ctx, db, &customer, models.WooSyncStatusError, err.Error())
		return err
	}
	markCustomerSync(ctx, db, &customer, models.WooSyncStatusSynced, "")
	return nil
}

func markCustomerSync(ctx context.Context, db *gorm.DB, customer *models.Customer, status models.WooSyncStatus, errMsg string) {
	now := time.Now()
	if err := db.WithContext(ctx).Model(customer).Updates(map[string]interface{}{
		"woo_sync_status": status,
		"woo_sync_error":  errMsg,
		"woo_last_sync":   now,
	}).Error; err != nil {
		config.LogError(config.GetLogger(), moduleName, "markCustomerSync", "update sync status", customer.ID, err)
	}
}

func placeholderEmail(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	local := b.String()
	if local == "" {
		local = "customer"
	}
	return local + "@orderjarz.local"
}

// derivePassword builds the recoverable first-login password from the phone
// number's digits, padded when the number is short.
func derivePassword(phone string) string {
	digits := utils.PhoneDigits(phone)
	if digits == "" {
		return "OrderJarz123"
	}
	if len(digits) >= 8 {
		return digits
	}
	padded := digits + "12345678"
	if len(padded) > 12 {
		padded = padded[:12]
	}
	return padded
}

func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func primaryAddress(addresses []*models.Address, addrType models.AddressType) *models.Address {
	for _, a := range addresses {
		if a.Type == addrType {
			return a
		}
	}
	return nil
}

// PushInvoice mirrors a submitted (or cancelled) invoice to the storefront
// as an order. Bundle parent rows are presentation-only and never pushed;
// any child without a product mapping aborts the whole push, because a
// partial remote order is worse than none.
func PushInvoice(ctx context.Context, cfg models.SyncConfig, invoiceID int) error {
	if config.OutboundPushKillSwitch() {
		return ErrOutboundDisabled
	}
	if !cfg.EnableOrderPush {
		return ErrOutboundDisabled
	}

	db := config.GetDB()

	var invoice models.SalesInvoice
	if err := db.WithContext(ctx).Preload("Items").Take(&invoice, invoiceID).Error; err != nil {
		return err
	}
	if invoice.DocStatus == models.DocStatusDraft {
		return Validationf("invoice %s is a draft; only submitted documents are pushed", invoice.Name)
	}

	var customer models.Customer
	if err := db.WithContext(ctx).Take(&customer, invoice.CustomerID).Error; err != nil {
		return err
	}

	client, err := newWooClient(cfg)
	if err != nil {
		return err
	}

	lines, unmapped, err := buildRemoteLines(ctx, db, invoice.Items)
	if err != nil {
		return err
	}

	payload := map[string]interface{}{
		"status":         remoteOrderStatus(invoice),
		"payment_method": remotePaymentMethod(cfg, invoice.PaymentMethod),
		"set_paid":       invoice.OutstandingAmount.LessThanOrEqual(decimal.NewFromFloat(0.01)),
		"line_items":     lines,
		"meta_data": []map[string]interface{}{
			{"key": "erpnext_invoice", "value": invoice.Name},
		},
	}
	if len(unmapped) > 0 {
		payload["meta_data"] = append(payload["meta_data"].([]map[string]interface{}), map[string]interface{}{
			"key": "unmapped_line_items", "value": strings.Join(unmapped, ","),
		})
	}
	if customer.WooCustomerID != nil {
		payload["customer_id"] = *customer.WooCustomerID
	}

	// Delivery charges live outside line totals; whatever grand total exceeds
	// the line sum rides as the shipping line.
	shippingTotal := invoice.GrandTotal.Sub(invoice.Total)
	if shippingTotal.IsPositive() {
		payload["shipping_lines"] = []map[string]interface{}{
			{
				"method_id":    cfg.ShippingMethodID,
				"method_title": cfg.ShippingMethodTitle,
				"total":        shippingTotal.StringFixed(2),
			},
		}
	}

	if invoice.WooOrderID != nil {
		remote, err := client.GetOrder(ctx, *invoice.WooOrderID)
		if err != nil && !IsNotFound(err) {
			return err
		}
		if err == nil {
			payload["line_items"] = reattachLineIDs(lines, remote.LineItems)
			_, err := client.UpdateOrder(ctx, *invoice.WooOrderID, payload)
			return err
		}
		// Remote order vanished; fall through to create.
	}

	remote, err := client.CreateOrder(ctx, payload)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Model(&invoice).Updates(map[string]interface{}{
		"woo_order_id":     remote.ID,
		"woo_order_number": remote.Number,
	}).Error
}

// buildRemoteLines converts invoice items to storefront line payloads.
// Returns the payloads plus the item codes that had to ride as unmapped
// metadata because their storefront reference could not be resolved from a
// pushed line (bundle children keep their own product ids).
func buildRemoteLines(ctx context.Context, db *gorm.DB, items []*models.SalesInvoiceItem) ([]map[string]interface{}, []string, error) {
	var lines []map[string]interface{}
	var unmapped []string

	for _, item := range items {
		if item.BundleRole == models.BundleRoleParent {
			continue
		}

		productID, variationID, err := remoteProductRef(ctx, db, item)
		if err != nil {
			return nil, nil, err
		}

		line := map[string]interface{}{
			"quantity": item.Qty.IntPart(),
			"total":    item.Amount.StringFixed(2),
			"meta_data": []map[string]interface{}{
				{"key": "erpnext_item_code", "value": item.ItemCode},
			},
		}
		if productID != nil {
			line["product_id"] = *productID
			if variationID != nil && *variationID > 0 {
				line["variation_id"] = *variationID
			}
		} else {
			unmapped = append(unmapped, item.ItemCode)
		}
		lines = append(lines, line)
	}
	return lines, unmapped, nil
}

// remoteProductRef resolves an invoice item to its storefront product. The
// invoice line's own ids win; otherwise the catalog record decides. A child
// of a bundle with no mapping anywhere is a hard failure.
func remoteProductRef(ctx context.Context, db *gorm.DB, item *models.SalesInvoiceItem) (*int64, *int64, error) {
	if item.WooProductID != nil && *item.WooProductID > 0 {
		return item.WooProductID, item.WooVariationID, nil
	}

	var catalog models.Item
	err := db.WithContext(ctx).Where("item_code = ?", item.ItemCode).Take(&catalog).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, &MissingProductMappingError{ItemCode: item.ItemCode}
		}
		return nil, nil, err
	}
	if catalog.WooProductID == nil || *catalog.WooProductID <= 0 {
		if item.BundleRole == models.BundleRoleChild {
			return nil, nil, &MissingProductMappingError{ItemCode: item.ItemCode}
		}
		return nil, nil, nil
	}
	return catalog.WooProductID, catalog.WooVariationID, nil
}

// reattachLineIDs matches outgoing lines against the remote order's existing
// lines so the update edits in place instead of appending. Match priority:
// our item-code meta stamped on a previous push, then product/variation pair.
func reattachLineIDs(lines []map[string]interface{}, remote []WooLineItem) []map[string]interface{} {
	used := map[int64]bool{}

	findByMeta := func(itemCode string) *WooLineItem {
		for i := range remote {
			if used[remote[i].ID] {
				continue
			}
			if MetaString(remote[i].MetaData, "erpnext_item_code") == itemCode {
				return &remote[i]
			}
		}
		return nil
	}
	findByProduct := func(productID int64, variationID int64) *WooLineItem {
		for i := range remote {
			if used[remote[i].ID] {
				continue
			}
			if remote[i].ProductID == productID && remote[i].VariationID == variationID {
				return &remote[i]
			}
		}
		return nil
	}

	for _, line := range lines {
		itemCode := ""
		if metas, ok := line["meta_data"].([]map[string]interface{}); ok && len(metas) > 0 {
			itemCode, _ = metas[0]["value"].(string)
		}

		match := findByMeta(itemCode)
		if match == nil {
			productID, _ := line["product_id"].(int64)
			variationID, _ := line["variation_id"].(int64)
			if productID > 0 {
				match = findByProduct(productID, variationID)
			}
		}
		if match != nil {
			line["id"] = match.ID
			used[match.ID] = true
		}
	}
	return lines
}

func remoteOrderStatus(invoice models.SalesInvoice) string {
	if invoice.DocStatus == models.DocStatusCancelled {
		return "cancelled"
	}
	if invoice.IsPaid {
		return "completed"
	}
	return "processing"
}

func remotePaymentMethod(cfg models.SyncConfig, method string) string {
	lower := strings.ToLower(method)
	switch {
	case strings.Contains(lower, "insta"):
		return cfg.PaymentMethodInstapay
	case strings.Contains(lower, "wallet"):
		return cfg.PaymentMethodWallet
	default:
		return cfg.PaymentMethodCOD
	}
}

// OutboundSweepSummary reports one reconcile sweep.
type OutboundSweepSummary struct {
	CustomersEnqueued int `json:"customers_enqueued"`
	InvoicesEnqueued  int `json:"invoices_enqueued"`
	Errors            int `json:"errors"`
}

// ReconcileOutboundState finds local records that should exist remotely but
// don't (or failed last time) and re-enqueues their push jobs, batch-limited
// so one sweep never floods the queue.
func ReconcileOutboundState(ctx context.Context, cfg models.SyncConfig, limit int) (OutboundSweepSummary, error) {
	if config.OutboundPushKillSwitch() {
		return OutboundSweepSummary{}, ErrOutboundDisabled
	}
	if limit <= 0 {
		limit = 100
	}

	logger := config.GetLogger()
	db := config.GetDB()
	var summary OutboundSweepSummary

	correlationID, _ := utils.GetCorrelationIdFromContext(ctx)

	if cfg.EnableCustomerPush {
		var customers []models.Customer
		err := db.WithContext(ctx).
			Where("woo_sync_status IN ?", []models.WooSyncStatus{models.WooSyncStatusUnsynced, models.WooSyncStatusError}).
			Where("phone <> '' OR mobile_no <> ''").
			Order("updated_at asc").
			Limit(limit).
			Find(&customers).Error
		if err != nil {
			return summary, err
		}
		for _, c := range customers {
			msg := config.SyncJobMessage{
				JobType:       JobCustomerPush,
				LocalRef:      fmt.Sprint(c.ID),
				EnqueuedAt:    time.Now(),
				CorrelationId: correlationID,
			}
			if err := config.PublishSyncJob(msg); err != nil {
				config.LogError(logger, moduleName, "ReconcileOutboundState", "enqueue customer push", c.ID, err)
				summary.Errors++
				continue
			}
			summary.CustomersEnqueued++
		}
	}

	if cfg.EnableOrderPush {
		var invoices []models.SalesInvoice
		err := db.WithContext(ctx).
			Where("doc_status = ?", models.DocStatusSubmitted).
			Where("woo_order_id IS NULL").
			Where("is_historical = ?", false).
			Order("submitted_at asc").
			Limit(limit).
			Find(&invoices).Error
		if err != nil {
			return summary, err
		}
		for _, inv := range invoices {
			msg := config.SyncJobMessage{
				JobType:       JobInvoicePush,
				LocalRef:      fmt.Sprint(inv.ID),
				EnqueuedAt:    time.Now(),
				CorrelationId: correlationID,
			}
			if err := config.PublishSyncJob(msg); err != nil {
				config.LogError(logger, moduleName, "ReconcileOutboundState", "enqueue invoice push", inv.ID, err)
				summary.Errors++
				continue
			}
			summary.InvoicesEnqueued++
		}
	}

	return summary, nil
}
