package woosync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"bitbucket.org/jarzapp/woosync_backend/config"
	"bitbucket.org/jarzapp/woosync_backend/models"
	"bitbucket.org/jarzapp/woosync_backend/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const moduleName = "woosync"

// ProcessOrder maps one storefront order payload, plus its previously
// recorded mapping, onto a create/update/skip/error decision. Safe under
// at-least-once delivery: a per-order advisory lock serializes overlapping
// deliveries of the same id, and an unchanged payload converges instead of
// double-creating.
func ProcessOrder(ctx context.Context, cfg models.SyncConfig, order WooOrder, allowUpdate bool, isHistorical bool) Outcome {
	logger := config.GetLogger()

	lock, err := utils.ObtainOrderLock(ctx, order.ID, moduleName, "ProcessOrder")
	if err != nil {
		return Outcome{Status: OutcomeError, OrderID: order.ID, Reason: err.Error()}
	}
	defer func() {
		_ = lock.Release(ctx)
	}()

	db := config.GetDB()

	mapping, invoice, err := lookupOrderState(ctx, db, order.ID)
	if err != nil {
		return Outcome{Status: OutcomeError, OrderID: order.ID, Reason: err.Error()}
	}

	if !allowUpdate {
		if mapping != nil {
			return Outcome{Status: OutcomeSkipped, OrderID: order.ID, InvoiceRef: mapping.SalesInvoice, Reason: SkipAlreadyMapped}
		}
		if invoice != nil {
			// The invoice survived but its mapping row went missing; restore
			// the row and skip instead of re-running the update path.
			paymentMethod := MapPaymentMethod(order.PaymentMethod, order.PaymentMethodTitle)
			err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
				return upsertMapping(ctx, tx, nil, order, invoice.Name, paymentMethod)
			})
			if err != nil {
				return Outcome{Status: OutcomeError, OrderID: order.ID, Reason: err.Error()}
			}
			return Outcome{Status: OutcomeSkipped, OrderID: order.ID, InvoiceRef: &invoice.Name, Reason: SkipAlreadyMapped}
		}
	}

	// An unchanged payload converges without rewriting lines; the stored
	// content hash covers status, totals and the modification timestamp.
	if mapping != nil && invoice != nil && mapping.ContentHash != "" && mapping.ContentHash == ContentHash(order) {
		return Outcome{Status: OutcomeUpdated, OrderID: order.ID, InvoiceRef: &invoice.Name}
	}

	customer, billing, shipping, err := ResolveCustomerAndAddresses(ctx, db, cfg, order)
	if err != nil {
		if skip, ok := AsSkip(err); ok {
			return Outcome{Status: OutcomeSkipped, OrderID: order.ID, Reason: skip.Reason}
		}
		return Outcome{Status: OutcomeSkipped, OrderID: order.ID, Reason: customerErrorReason(err)}
	}

	zone := resolveFulfillment(ctx, db, cfg, customer)

	items, missing, err := BuildInvoiceItems(ctx, db, cfg, order, zone.PriceList)
	if err != nil {
		config.LogError(logger, moduleName, "ProcessOrder", "build invoice items", order.ID, err)
		return Outcome{Status: OutcomeError, OrderID: order.ID, Reason: err.Error()}
	}
	if len(missing) > 0 {
		return Outcome{Status: OutcomeSkipped, OrderID: order.ID, Reason: SkipUnmappedItems + ": " + strings.Join(missing, "; ")}
	}
	if len(items) == 0 {
		return Outcome{Status: OutcomeSkipped, OrderID: order.ID, Reason: SkipNoLines}
	}

	// Settled-state gate applies to live orders only; historical migration
	// data represents orders already paid out upstream.
	if !isHistorical && IsPendingPayment(order.Status) {
		return Outcome{Status: OutcomeSkipped, OrderID: order.ID, Reason: SkipPendingPayment}
	}

	docStatus, state, paid := MapOrderStatus(order.Status, isHistorical)
	paymentMethod := MapPaymentMethod(order.PaymentMethod, order.PaymentMethodTitle)

	var outcome Outcome
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invoiceName string
		var created bool

		if invoice != nil {
			name, err := updateInvoice(ctx, tx, cfg, invoice, order, customer, billing, shipping, zone, items, docStatus, state, paid, paymentMethod, allowUpdate)
			if err != nil {
				return err
			}
			invoiceName = name
		} else {
			name, err := createInvoice(ctx, tx, cfg, order, customer, billing, shipping, zone, items, docStatus, state, paid, paymentMethod, isHistorical)
			if err != nil {
				return err
			}
			invoiceName = name
			created = true
		}

		if err := upsertMapping(ctx, tx, mapping, order, invoiceName, paymentMethod); err != nil {
			return err
		}

		status := OutcomeUpdated
		if created {
			status = OutcomeCreated
		}
		outcome = Outcome{Status: status, OrderID: order.ID, InvoiceRef: &invoiceName}
		return nil
	})
	if err != nil {
		config.LogError(logger, moduleName, "ProcessOrder", "order upsert rolled back", order.ID, err)
		return Outcome{Status: OutcomeError, OrderID: order.ID, Reason: err.Error()}
	}

	return outcome
}

// lookupOrderState fetches the mapping row and, defensively, any invoice
// already tagged with this order id even when the mapping went missing.
func lookupOrderState(ctx context.Context, db *gorm.DB, orderID int64) (*models.OrderMapping, *models.SalesInvoice, error) {
	var mapping models.OrderMapping
	err := db.WithContext(ctx).Where("external_order_id = ?", orderID).Take(&mapping).Error
	foundMapping := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	var invoice models.SalesInvoice
	err = db.WithContext(ctx).Where("woo_order_id = ?", orderID).Take(&invoice).Error
	foundInvoice := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	if foundMapping && foundInvoice {
		return &mapping, &invoice, nil
	}
	if foundMapping {
		if mapping.SalesInvoice != nil {
			// Mapping points to an invoice that no longer exists; treat as new.
			err := db.WithContext(ctx).Where("name = ?", *mapping.SalesInvoice).Take(&invoice).Error
			if err == nil {
				return &mapping, &invoice, nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, err
			}
		}
		return &mapping, nil, nil
	}
	if foundInvoice {
		// Invoice exists without its mapping row; reconcile by treating the
		// mapping as pointing at it.
		return nil, &invoice, nil
	}
	return nil, nil, nil
}

// fulfillmentZone is the pricing/fulfillment context resolved from the
// customer's territory, with connection defaults as fallback.
type fulfillmentZone struct {
	Territory      string
	POSProfile     string
	Warehouse      string
	PriceList      string
	DeliveryIncome decimal.Decimal
}

func resolveFulfillment(ctx context.Context, db *gorm.DB, cfg models.SyncConfig, customer *models.Customer) fulfillmentZone {
	zone := fulfillmentZone{
		Territory:  cfg.DefaultTerritory,
		POSProfile: cfg.DefaultPOSProfile,
		Warehouse:  cfg.DefaultWarehouse,
		PriceList:  cfg.DefaultPriceList,
	}

	if customer == nil || customer.Territory == "" {
		return zone
	}

	var territory models.Territory
	err := db.WithContext(ctx).Where("name = ?", customer.Territory).Take(&territory).Error
	if err != nil {
		// Absence of a resolvable zone is non-fatal.
		return zone
	}

	zone.Territory = territory.Name
	zone.DeliveryIncome = territory.DeliveryIncome
	if territory.POSProfile != "" {
		zone.POSProfile = territory.POSProfile
	}
	if territory.Warehouse != "" {
		zone.Warehouse = territory.Warehouse
	}
	if territory.PriceList != "" {
		zone.PriceList = territory.PriceList
	}
	return zone
}

func createInvoice(ctx context.Context, tx *gorm.DB, cfg models.SyncConfig, order WooOrder, customer *models.Customer, billing *models.Address, shipping *models.Address, zone fulfillmentZone, items []*models.SalesInvoiceItem, docStatus models.DocStatus, state string, paid bool, paymentMethod string, isHistorical bool) (string, error) {
	name := fmt.Sprintf("SINV-WOO-%d", order.ID)

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	grandTotal := total
	if zone.DeliveryIncome.IsPositive() {
		grandTotal = grandTotal.Add(zone.DeliveryIncome)
	}

	deliveryDate, deliverySlot := parseDeliveryMeta(order.MetaData)

	invoice := models.SalesInvoice{
		Name:           name,
		DocStatus:      models.DocStatusDraft,
		CustomerID:     customer.ID,
		CustomerName:   customer.Name,
		WooOrderID:     &order.ID,
		WooOrderNumber: order.Number,
		WooOrderStatus: order.Status,
		IsHistorical:   isHistorical,
		Territory:      zone.Territory,
		POSProfile:     zone.POSProfile,
		Warehouse:      zone.Warehouse,
		PriceList:      zone.PriceList,
		Currency:       order.Currency,
		Total:          total,
		GrandTotal:     grandTotal,
		OutstandingAmount: grandTotal,
		PaymentMethod:  paymentMethod,
		DeliveryDate:   deliveryDate,
		DeliverySlot:   deliverySlot,
		State:          state,
	}
	if billing != nil {
		invoice.BillingAddressID = &billing.ID
	}
	if shipping != nil {
		invoice.ShippingAddressID = &shipping.ID
	}

	if err := tx.Create(&invoice).Error; err != nil {
		return "", fmt.Errorf("create invoice: %w", err)
	}

	for _, item := range items {
		item.InvoiceID = invoice.ID
	}
	if err := tx.Create(&items).Error; err != nil {
		return "", fmt.Errorf("create invoice items: %w", err)
	}

	if zone.DeliveryIncome.IsPositive() {
		charge := models.SalesInvoiceCharge{
			InvoiceID:   invoice.ID,
			ChargeType:  "Actual",
			Account:     "Delivery Income",
			Description: "Shipping income - " + zone.Territory,
			Amount:      zone.DeliveryIncome,
		}
		if err := tx.Create(&charge).Error; err != nil {
			return "", fmt.Errorf("create delivery charge: %w", err)
		}
	}

	return name, applyDocStatus(ctx, tx, cfg, &invoice, docStatus, paid, paymentMethod)
}

// applyDocStatus walks the invoice through its lifecycle transitions. A
// cancelled external order still submits first: a paid-then-voided document
// cannot skip the submitted state.
func applyDocStatus(ctx context.Context, tx *gorm.DB, cfg models.SyncConfig, invoice *models.SalesInvoice, target models.DocStatus, paid bool, paymentMethod string) error {
	if target == models.DocStatusDraft {
		return nil
	}

	now := time.Now()
	updates := map[string]interface{}{
		"doc_status":   models.DocStatusSubmitted,
		"submitted_at": now,
	}
	if paid {
		updates["is_paid"] = true
		updates["outstanding_amount"] = decimal.Zero
	}
	if err := tx.Model(invoice).Updates(updates).Error; err != nil {
		return fmt.Errorf("submit invoice: %w", err)
	}
	invoice.DocStatus = models.DocStatusSubmitted

	if cfg.InstantSettlementMethods[paymentMethod] {
		receipt := models.PaymentReceipt{
			Name:          fmt.Sprintf("PAY-WOO-%d-%s", invoice.ID, uuid.NewString()[:8]),
			InvoiceID:     invoice.ID,
			CustomerID:    invoice.CustomerID,
			PaymentMethod: paymentMethod,
			Amount:        invoice.GrandTotal,
			PostedAt:      now,
		}
		if err := tx.Create(&receipt).Error; err != nil {
			return fmt.Errorf("create payment receipt: %w", err)
		}
		if err := tx.Model(invoice).Updates(map[string]interface{}{
			"is_paid":            true,
			"outstanding_amount": decimal.Zero,
		}).Error; err != nil {
			return err
		}
	}

	if target == models.DocStatusCancelled {
		if err := tx.Model(invoice).Updates(map[string]interface{}{
			"doc_status":   models.DocStatusCancelled,
			"cancelled_at": now,
		}).Error; err != nil {
			return fmt.Errorf("cancel invoice: %w", err)
		}
		invoice.DocStatus = models.DocStatusCancelled
	}
	return nil
}

// updateInvoice refreshes an existing invoice. Drafts take a wholesale line
// replacement; submitted documents only accept non-structural patches.
func updateInvoice(ctx context.Context, tx *gorm.DB, cfg models.SyncConfig, invoice *models.SalesInvoice, order WooOrder, customer *models.Customer, billing *models.Address, shipping *models.Address, zone fulfillmentZone, items []*models.SalesInvoiceItem, docStatus models.DocStatus, state string, paid bool, paymentMethod string, allowUpdate bool) (string, error) {
	deliveryDate, deliverySlot := parseDeliveryMeta(order.MetaData)

	if invoice.DocStatus == models.DocStatusDraft && allowUpdate {
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.SalesInvoiceItem{}).Error; err != nil {
			return "", fmt.Errorf("clear draft lines: %w", err)
		}
		for _, item := range items {
			item.InvoiceID = invoice.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return "", fmt.Errorf("replace draft lines: %w", err)
		}

		total := decimal.Zero
		for _, item := range items {
			total = total.Add(item.Amount)
		}
		grandTotal := total
		if zone.DeliveryIncome.IsPositive() {
			grandTotal = grandTotal.Add(zone.DeliveryIncome)
		}

		updates := map[string]interface{}{
			"customer_id":        customer.ID,
			"customer_name":      customer.Name,
			"woo_order_status":   order.Status,
			"territory":          zone.Territory,
			"pos_profile":        zone.POSProfile,
			"warehouse":          zone.Warehouse,
			"price_list":         zone.PriceList,
			"total":              total,
			"grand_total":        grandTotal,
			"outstanding_amount": grandTotal,
			"payment_method":     paymentMethod,
			"state":              state,
			"delivery_slot":      deliverySlot,
		}
		if deliveryDate != nil {
			updates["delivery_date"] = deliveryDate
		}
		if billing != nil {
			updates["billing_address_id"] = billing.ID
		}
		if shipping != nil {
			updates["shipping_address_id"] = shipping.ID
		}
		if err := tx.Model(invoice).Updates(updates).Error; err != nil {
			return "", fmt.Errorf("refresh draft invoice: %w", err)
		}
		invoice.GrandTotal = grandTotal
		invoice.CustomerID = customer.ID

		return invoice.Name, applyDocStatus(ctx, tx, cfg, invoice, docStatus, paid, paymentMethod)
	}

	// Submitted: patch zone, delivery window and state tag in place without
	// reopening the document.
	updates := map[string]interface{}{
		"woo_order_status": order.Status,
		"territory":        zone.Territory,
		"state":            state,
		"delivery_slot":    deliverySlot,
	}
	if deliveryDate != nil {
		updates["delivery_date"] = deliveryDate
	}
	if err := tx.Model(invoice).Updates(updates).Error; err != nil {
		return "", fmt.Errorf("patch submitted invoice: %w", err)
	}

	if docStatus == models.DocStatusCancelled && invoice.DocStatus == models.DocStatusSubmitted {
		if err := tx.Model(invoice).Updates(map[string]interface{}{
			"doc_status":   models.DocStatusCancelled,
			"cancelled_at": time.Now(),
		}).Error; err != nil {
			return "", fmt.Errorf("cancel invoice: %w", err)
		}
		invoice.DocStatus = models.DocStatusCancelled
	}

	return invoice.Name, nil
}

func upsertMapping(ctx context.Context, tx *gorm.DB, existing *models.OrderMapping, order WooOrder, invoiceName string, paymentMethod string) error {
	total, _ := utils.ParseDecimal(order.Total)
	now := time.Now()

	if existing == nil {
		var prior models.OrderMapping
		err := tx.Where("external_order_id = ?", order.ID).Take(&prior).Error
		if err == nil {
			existing = &prior
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	if existing != nil {
		return tx.Model(existing).Updates(map[string]interface{}{
			"external_order_number": order.Number,
			"sales_invoice":         invoiceName,
			"external_status":       order.Status,
			"currency":              order.Currency,
			"total":                 total,
			"payment_method":        paymentMethod,
			"content_hash":          ContentHash(order),
			"synced_at":             now,
		}).Error
	}

	mapping := models.OrderMapping{
		ExternalOrderID:     order.ID,
		ExternalOrderNumber: order.Number,
		SalesInvoice:        &invoiceName,
		ExternalStatus:      order.Status,
		Currency:            order.Currency,
		Total:               total,
		PaymentMethod:       paymentMethod,
		ContentHash:         ContentHash(order),
		SyncedAt:            &now,
	}
	return tx.Create(&mapping).Error
}

func parseDeliveryMeta(metas []WooMeta) (*time.Time, string) {
	slot := MetaString(metas, "delivery_time_slot")
	if slot == "" {
		slot = MetaString(metas, "_delivery_time_slot")
	}

	raw := MetaString(metas, "delivery_date")
	if raw == "" {
		raw = MetaString(metas, "_delivery_date")
	}
	if raw == "" {
		return nil, slot
	}
	for _, layout := range []string{"2006-01-02", "02/01/2006", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, slot
		}
	}
	return nil, slot
}

// BatchSummary aggregates one batch run. One bad order never aborts the
// batch; it increments Errors and shows up in the sample.
type BatchSummary struct {
	Fetched   int       `json:"orders_fetched"`
	Processed int       `json:"processed"`
	Created   int       `json:"created"`
	Skipped   int       `json:"skipped"`
	Errors    int       `json:"errors"`
	Results   []Outcome `json:"results_sample"`
}

const resultsSampleLimit = 10

func (s *BatchSummary) record(outcome Outcome) {
	switch outcome.Status {
	case OutcomeCreated:
		s.Created++
		s.Processed++
	case OutcomeUpdated:
		s.Processed++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeError:
		s.Errors++
	}
	if len(s.Results) < resultsSampleLimit {
		s.Results = append(s.Results, outcome)
	}
}

// SyncRecentOrders polls the storefront for live orders and feeds each one
// through ProcessOrder with updates allowed.
func SyncRecentOrders(ctx context.Context, cfg models.SyncConfig, after string, triggeredBy string) (BatchSummary, error) {
	client, err := newWooClient(cfg)
	if err != nil {
		return BatchSummary{}, err
	}

	run, err := beginSyncRun(ctx, cfg.ConnectionID, models.SyncRunTypeOrders, triggeredBy)
	if err != nil {
		return BatchSummary{}, err
	}

	var summary BatchSummary
	maxPages := 20
	for page := 1; page <= maxPages; page++ {
		orders, err := client.ListOrders(ctx, ListOrdersOptions{
			Page:    page,
			PerPage: cfg.OrderSyncPageSize,
			After:   after,
		})
		if err != nil {
			recordBatchError(ctx, run.ID, "order", "", "fetch_failed", err)
			summary.Errors++
			break
		}
		if len(orders) == 0 {
			break
		}
		summary.Fetched += len(orders)

		for _, order := range orders {
			outcome := ProcessOrder(ctx, cfg, order, true, false)
			summary.record(outcome)
			if outcome.Status == OutcomeError {
				recordBatchError(ctx, run.ID, "order", fmt.Sprint(order.ID), "process_failed", errors.New(outcome.Reason))
			}
		}

		if len(orders) < cfg.OrderSyncPageSize {
			break
		}
	}

	finishSyncRun(ctx, run, summary)
	return summary, nil
}

// HistoricalOptions bounds a bulk migration of already-settled past orders.
type HistoricalOptions struct {
	FromPage int
	MaxPages int
	PerPage  int
	Statuses []string
}

// MigrateHistoricalOrders pages through settled past orders, creating
// invoices marked paid and never touching orders that already have a
// mapping. Speed is a matter of page size, not a different algorithm.
func MigrateHistoricalOrders(ctx context.Context, cfg models.SyncConfig, opts HistoricalOptions) (BatchSummary, error) {
	client, err := newWooClient(cfg)
	if err != nil {
		return BatchSummary{}, err
	}

	if opts.FromPage < 1 {
		opts.FromPage = 1
	}
	if opts.MaxPages < 1 {
		opts.MaxPages = 50
	}
	if opts.PerPage < 1 {
		opts.PerPage = 100
	}
	if len(opts.Statuses) == 0 {
		opts.Statuses = []string{"completed", "processing", "cancelled", "refunded"}
	}

	run, err := beginSyncRun(ctx, cfg.ConnectionID, models.SyncRunTypeHistorical, models.SyncTriggeredManual)
	if err != nil {
		return BatchSummary{}, err
	}

	var summary BatchSummary
	for page := opts.FromPage; page < opts.FromPage+opts.MaxPages; page++ {
		orders, err := client.ListOrders(ctx, ListOrdersOptions{
			Page:     page,
			PerPage:  opts.PerPage,
			Statuses: opts.Statuses,
		})
		if err != nil {
			recordBatchError(ctx, run.ID, "order", "", "fetch_failed", err)
			summary.Errors++
			break
		}
		if len(orders) == 0 {
			break
		}
		summary.Fetched += len(orders)

		for _, order := range orders {
			outcome := ProcessOrder(ctx, cfg, order, false, true)
			summary.record(outcome)
			if outcome.Status == OutcomeError {
				recordBatchError(ctx, run.ID, "order", fmt.Sprint(order.ID), "process_failed", errors.New(outcome.Reason))
			}
		}

		if len(orders) < opts.PerPage {
			break
		}
	}

	finishSyncRun(ctx, run, summary)
	return summary, nil
}

func beginSyncRun(ctx context.Context, connectionID uint, runType string, triggeredBy string) (*models.SyncRun, error) {
	db := config.GetDB()
	now := time.Now()
	run := models.SyncRun{
		RunID:        uuid.NewString(),
		ConnectionID: connectionID,
		RunType:      runType,
		Status:       models.SyncRunStatusRunning,
		TriggeredBy:  triggeredBy,
		StartedAt:    &now,
	}
	if err := db.WithContext(ctx).Create(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

func finishSyncRun(ctx context.Context, run *models.SyncRun, summary BatchSummary) {
	db := config.GetDB()
	now := time.Now()
	status := models.SyncRunStatusSuccess
	if summary.Errors > 0 && summary.Processed == 0 && summary.Skipped == 0 {
		status = models.SyncRunStatusFailed
	} else if summary.Errors > 0 {
		status = models.SyncRunStatusPartial
	}
	resultsJSON, _ := json.Marshal(summary.Results)

	var durationMs int64
	if run.StartedAt != nil {
		durationMs = now.Sub(*run.StartedAt).Milliseconds()
	}
	if err := db.WithContext(ctx).Model(run).Updates(map[string]interface{}{
		"status":       status,
		"fetched":      summary.Fetched,
		"processed":    summary.Processed,
		"created":      summary.Created,
		"skipped":      summary.Skipped,
		"errors":       summary.Errors,
		"results_json": resultsJSON,
		"finished_at":  now,
		"duration_ms":  durationMs,
	}).Error; err != nil {
		config.GetLogger().WithFields(logrus.Fields{
			"module": moduleName,
			"run_id": run.RunID,
		}).Error(err.Error())
	}

	stamps := map[string]interface{}{"last_sync_at": now}
	if status != models.SyncRunStatusFailed {
		stamps["last_success_sync_at"] = now
	}
	if err := db.WithContext(ctx).Model(&models.WooConnection{}).
		Where("id = ?", run.ConnectionID).
		Updates(stamps).Error; err != nil {
		config.GetLogger().WithFields(logrus.Fields{
			"module": moduleName,
			"run_id": run.RunID,
		}).Error(err.Error())
	}
}

func recordBatchError(ctx context.Context, runID uint, entityType string, externalID string, code string, err error) {
	db := config.GetDB()
	rec := models.SyncError{
		SyncRunID:  runID,
		EntityType: entityType,
		ExternalID: externalID,
		ErrorCode:  code,
		Message:    err.Error(),
		Retryable:  true,
	}
	if dbErr := db.WithContext(ctx).Create(&rec).Error; dbErr != nil {
		config.LogError(config.GetLogger(), moduleName, "recordBatchError", "persist sync error", externalID, dbErr)
	}
}
