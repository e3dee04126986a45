package woosync_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"testing"
	"time"

	"bitbucket.org/jarzapp/woosync_backend/config"
	"bitbucket.org/jarzapp/woosync_backend/models"
	"bitbucket.org/jarzapp/woosync_backend/woosync"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func TestOrderSyncFlow(t *testing.T) {
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires docker)")
	}

	ctx := context.Background()

	redisName, redisPort := startRedisContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(redisName) })

	mysqlName, mysqlPort := startMySQLContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(mysqlName) })

	t.Setenv("REDIS_ADDRESS", fmt.Sprintf("127.0.0.1:%s", redisPort))
	t.Setenv("DB_USER", "root")
	t.Setenv("DB_PASSWORD", "testpw")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", mysqlPort)
	t.Setenv("DB_NAME", "woosync_test")

	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()
	models.MigrateTable()

	db := config.GetDB()

	conn := models.WooConnection{
		StoreName:                "Test Store",
		BaseURL:                  "https://shop.example.com",
		ConsumerKey:              "ck_test",
		ConsumerSecret:           "cs_test",
		APIVersion:               "v3",
		Status:                   models.ConnectionStatusConnected,
		InstantSettlementMethods: "instapay,kashier_card,kashier_wallet",
		DefaultTerritory:         "Cairo",
		DefaultPOSProfile:        "Main POS",
		DefaultWarehouse:         "Main WH",
		DefaultPriceList:         "Retail",
		DefaultCountry:           "Egypt",
		OrderSyncPageSize:        50,
	}
	if err := db.Create(&conn).Error; err != nil {
		t.Fatalf("create connection: %v", err)
	}
	cfg := conn.SyncConfig()

	seedCatalog(t, db)

	t.Run("NewLiveOrderCreatesSubmittedPaidInvoice", func(t *testing.T) {
		order := makeOrder(1001, "processing", "instapay", []woosync.WooLineItem{
			plainLine(1, 501, 0, "SKU-A", 2),
		})

		outcome := woosync.ProcessOrder(ctx, cfg, order, true, false)
		if outcome.Status != woosync.OutcomeCreated {
			t.Fatalf("expected created, got %+v", outcome)
		}

		var invoice models.SalesInvoice
		if err := db.Preload("Items").Where("woo_order_id = ?", int64(1001)).Take(&invoice).Error; err != nil {
			t.Fatalf("fetch invoice: %v", err)
		}
		if invoice.DocStatus != models.DocStatusSubmitted {
			t.Fatalf("expected submitted, got %d", invoice.DocStatus)
		}
		if !invoice.IsPaid || !invoice.OutstandingAmount.IsZero() {
			t.Fatalf("instapay order should settle on submit: paid=%v outstanding=%s", invoice.IsPaid, invoice.OutstandingAmount)
		}
		// 2 x 60.00 from the Retail price list, ignoring storefront totals.
		if invoice.Total.StringFixed(2) != "120.00" {
			t.Fatalf("expected total 120.00, got %s", invoice.Total.StringFixed(2))
		}

		var receipts int64
		if err := db.Model(&models.PaymentReceipt{}).Where("invoice_id = ?", invoice.ID).Count(&receipts).Error; err != nil {
			t.Fatalf("count receipts: %v", err)
		}
		if receipts != 1 {
			t.Fatalf("expected one payment receipt, got %d", receipts)
		}

		var mapping models.OrderMapping
		if err := db.Where("external_order_id = ?", int64(1001)).Take(&mapping).Error; err != nil {
			t.Fatalf("fetch mapping: %v", err)
		}
		if mapping.SalesInvoice == nil || *mapping.SalesInvoice != invoice.Name {
			t.Fatalf("mapping does not reference invoice: %+v", mapping)
		}
		if mapping.ContentHash == "" {
			t.Fatal("mapping has no content hash")
		}
	})

	t.Run("ReprocessingConvergesWithoutDuplicates", func(t *testing.T) {
		order := makeOrder(1001, "processing", "instapay", []woosync.WooLineItem{
			plainLine(1, 501, 0, "SKU-A", 2),
		})

		var before models.SalesInvoice
		if err := db.Preload("Items").Where("woo_order_id = ?", int64(1001)).Take(&before).Error; err != nil {
			t.Fatalf("fetch invoice before reprocess: %v", err)
		}

		outcome := woosync.ProcessOrder(ctx, cfg, order, true, false)
		if outcome.Status != woosync.OutcomeUpdated {
			t.Fatalf("expected updated, got %+v", outcome)
		}

		// The stored content hash matches an unchanged payload, so the same
		// line rows survive instead of a delete-and-recreate cycle.
		var after models.SalesInvoice
		if err := db.Preload("Items").Where("woo_order_id = ?", int64(1001)).Take(&after).Error; err != nil {
			t.Fatalf("fetch invoice after reprocess: %v", err)
		}
		beforeIDs := map[int]bool{}
		for _, item := range before.Items {
			beforeIDs[item.ID] = true
		}
		if len(after.Items) != len(before.Items) {
			t.Fatalf("line count changed on unchanged payload: %d vs %d", len(after.Items), len(before.Items))
		}
		for _, item := range after.Items {
			if !beforeIDs[item.ID] {
				t.Fatalf("line rows were rewritten for an unchanged payload (new row %d)", item.ID)
			}
		}

		var invoices int64
		if err := db.Model(&models.SalesInvoice{}).Where("woo_order_id = ?", int64(1001)).Count(&invoices).Error; err != nil {
			t.Fatalf("count invoices: %v", err)
		}
		if invoices != 1 {
			t.Fatalf("expected exactly one invoice, got %d", invoices)
		}

		var mappings int64
		if err := db.Model(&models.OrderMapping{}).Where("external_order_id = ?", int64(1001)).Count(&mappings).Error; err != nil {
			t.Fatalf("count mappings: %v", err)
		}
		if mappings != 1 {
			t.Fatalf("expected exactly one mapping, got %d", mappings)
		}
	})

	t.Run("HistoricalModeSkipsAlreadyMapped", func(t *testing.T) {
		order := makeOrder(1001, "processing", "instapay", []woosync.WooLineItem{
			plainLine(1, 501, 0, "SKU-A", 2),
		})

		outcome := woosync.ProcessOrder(ctx, cfg, order, false, true)
		if outcome.Status != woosync.OutcomeSkipped || outcome.Reason != woosync.SkipAlreadyMapped {
			t.Fatalf("expected skipped/already_mapped, got %+v", outcome)
		}
	})

	t.Run("HistoricalRestoresMissingMappingRow", func(t *testing.T) {
		order := makeOrder(1010, "processing", "cod", []woosync.WooLineItem{
			plainLine(17, 501, 0, "SKU-A", 1),
		})

		outcome := woosync.ProcessOrder(ctx, cfg, order, true, false)
		if outcome.Status != woosync.OutcomeCreated {
			t.Fatalf("expected created, got %+v", outcome)
		}
		if err := db.Where("external_order_id = ?", int64(1010)).Delete(&models.OrderMapping{}).Error; err != nil {
			t.Fatalf("drop mapping row: %v", err)
		}

		// The invoice survived the lost mapping; a no-update pass must restore
		// the row and short-circuit rather than re-run the update path.
		outcome = woosync.ProcessOrder(ctx, cfg, order, false, true)
		if outcome.Status != woosync.OutcomeSkipped || outcome.Reason != woosync.SkipAlreadyMapped {
			t.Fatalf("expected skipped/already_mapped, got %+v", outcome)
		}

		var invoice models.SalesInvoice
		if err := db.Where("woo_order_id = ?", int64(1010)).Take(&invoice).Error; err != nil {
			t.Fatalf("fetch invoice: %v", err)
		}
		var mapping models.OrderMapping
		if err := db.Where("external_order_id = ?", int64(1010)).Take(&mapping).Error; err != nil {
			t.Fatalf("mapping row was not restored: %v", err)
		}
		if mapping.SalesInvoice == nil || *mapping.SalesInvoice != invoice.Name {
			t.Fatalf("restored mapping does not reference invoice: %+v", mapping)
		}
	})

	t.Run("UnmappedItemSkipsWithoutWriting", func(t *testing.T) {
		order := makeOrder(1002, "processing", "cod", []woosync.WooLineItem{
			plainLine(9, 99999, 0, "", 1),
		})

		outcome := woosync.ProcessOrder(ctx, cfg, order, true, false)
		if outcome.Status != woosync.OutcomeSkipped {
			t.Fatalf("expected skipped, got %+v", outcome)
		}
		if !strings.HasPrefix(outcome.Reason, woosync.SkipUnmappedItems) {
			t.Fatalf("expected unmapped_items reason, got %q", outcome.Reason)
		}

		var invoices int64
		_ = db.Model(&models.SalesInvoice{}).Where("woo_order_id = ?", int64(1002)).Count(&invoices).Error
		if invoices != 0 {
			t.Fatalf("skip must not create invoices, found %d", invoices)
		}
		var mappings int64
		_ = db.Model(&models.OrderMapping{}).Where("external_order_id = ?", int64(1002)).Count(&mappings).Error
		if mappings != 0 {
			t.Fatalf("skip must not create mappings, found %d", mappings)
		}
	})

	t.Run("PendingPaymentGatesLiveOrdersOnly", func(t *testing.T) {
		order := makeOrder(1003, "pending", "cod", []woosync.WooLineItem{
			plainLine(10, 501, 0, "SKU-A", 1),
		})

		outcome := woosync.ProcessOrder(ctx, cfg, order, true, false)
		if outcome.Status != woosync.OutcomeSkipped || outcome.Reason != woosync.SkipPendingPayment {
			t.Fatalf("live pending order: expected skipped/pending_payment, got %+v", outcome)
		}

		// Same order in historical mode lands as a draft.
		outcome = woosync.ProcessOrder(ctx, cfg, order, false, true)
		if outcome.Status != woosync.OutcomeCreated {
			t.Fatalf("historical pending order: expected created, got %+v", outcome)
		}
		var invoice models.SalesInvoice
		if err := db.Where("woo_order_id = ?", int64(1003)).Take(&invoice).Error; err != nil {
			t.Fatalf("fetch invoice: %v", err)
		}
		if invoice.DocStatus != models.DocStatusDraft || !invoice.IsHistorical {
			t.Fatalf("expected historical draft, got docstatus=%d historical=%v", invoice.DocStatus, invoice.IsHistorical)
		}
	})

	t.Run("HistoricalCancelledSubmitsThenCancels", func(t *testing.T) {
		order := makeOrder(1004, "cancelled", "cod", []woosync.WooLineItem{
			plainLine(11, 501, 0, "SKU-A", 1),
		})

		outcome := woosync.ProcessOrder(ctx, cfg, order, false, true)
		if outcome.Status != woosync.OutcomeCreated {
			t.Fatalf("expected created, got %+v", outcome)
		}

		var invoice models.SalesInvoice
		if err := db.Where("woo_order_id = ?", int64(1004)).Take(&invoice).Error; err != nil {
			t.Fatalf("fetch invoice: %v", err)
		}
		if invoice.DocStatus != models.DocStatusCancelled {
			t.Fatalf("expected cancelled, got %d", invoice.DocStatus)
		}
		if invoice.SubmittedAt == nil || invoice.CancelledAt == nil {
			t.Fatal("cancelled order must pass through submitted state")
		}
	})

	t.Run("IdentityMatchesByPhoneAndDeduplicatesAddresses", func(t *testing.T) {
		first := makeOrder(1005, "processing", "cod", []woosync.WooLineItem{
			plainLine(12, 501, 0, "SKU-A", 1),
		})
		first.Billing.Phone = "+20 100 555 7777"
		first.Billing.Email = "old@example.com"

		outcome := woosync.ProcessOrder(ctx, cfg, first, true, false)
		if outcome.Status != woosync.OutcomeCreated {
			t.Fatalf("first order: %+v", outcome)
		}

		// Same phone, different email and spacing: must reuse the customer
		// and the address.
		second := makeOrder(1006, "processing", "cod", []woosync.WooLineItem{
			plainLine(13, 501, 0, "SKU-A", 1),
		})
		second.Billing.Phone = "0100 555 7777"
		second.Billing.Email = "new@example.com"

		outcome = woosync.ProcessOrder(ctx, cfg, second, true, false)
		if outcome.Status != woosync.OutcomeCreated {
			t.Fatalf("second order: %+v", outcome)
		}

		var inv1, inv2 models.SalesInvoice
		if err := db.Where("woo_order_id = ?", int64(1005)).Take(&inv1).Error; err != nil {
			t.Fatalf("fetch first invoice: %v", err)
		}
		if err := db.Where("woo_order_id = ?", int64(1006)).Take(&inv2).Error; err != nil {
			t.Fatalf("fetch second invoice: %v", err)
		}
		// Different normalized phone and email, same display name: the name
		// fallback still merges instead of minting a duplicate.
		if inv2.CustomerID != inv1.CustomerID {
			t.Fatalf("name fallback should reuse customer: %d vs %d", inv2.CustomerID, inv1.CustomerID)
		}

		// Identical normalized phone with a new email must land on the same
		// customer: phone outranks email in the match order.
		third := makeOrder(1007, "processing", "cod", []woosync.WooLineItem{
			plainLine(14, 501, 0, "SKU-A", 1),
		})
		third.Billing.Phone = "+20 100 555 7777"
		third.Billing.Email = "third@example.com"
		outcome = woosync.ProcessOrder(ctx, cfg, third, true, false)
		if outcome.Status != woosync.OutcomeCreated {
			t.Fatalf("third order: %+v", outcome)
		}
		var inv3 models.SalesInvoice
		if err := db.Where("woo_order_id = ?", int64(1007)).Take(&inv3).Error; err != nil {
			t.Fatalf("fetch third invoice: %v", err)
		}
		if inv3.CustomerID != inv1.CustomerID {
			t.Fatalf("same phone should resolve to same customer: %d vs %d", inv3.CustomerID, inv1.CustomerID)
		}

		var addresses int64
		if err := db.Model(&models.Address{}).
			Where("customer_id = ? AND type = ?", inv1.CustomerID, models.AddressTypeBilling).
			Count(&addresses).Error; err != nil {
			t.Fatalf("count addresses: %v", err)
		}
		if addresses != 1 {
			t.Fatalf("same line1 must deduplicate, got %d billing addresses", addresses)
		}
	})

	t.Run("NoAddressSkips", func(t *testing.T) {
		order := makeOrder(1008, "processing", "cod", []woosync.WooLineItem{
			plainLine(15, 501, 0, "SKU-A", 1),
		})
		order.Billing.Address1 = ""
		order.Shipping.Address1 = ""

		outcome := woosync.ProcessOrder(ctx, cfg, order, true, false)
		if outcome.Status != woosync.OutcomeSkipped || outcome.Reason != woosync.SkipNoAddress {
			t.Fatalf("expected skipped/no_address, got %+v", outcome)
		}
	})

	t.Run("BundleExpansionAppliesUniformDiscount", func(t *testing.T) {
		order := makeOrder(1009, "processing", "cod", []woosync.WooLineItem{
			plainLine(16, 601, 0, "SKU-BUNDLE", 1),
		})

		outcome := woosync.ProcessOrder(ctx, cfg, order, true, false)
		if outcome.Status != woosync.OutcomeCreated {
			t.Fatalf("expected created, got %+v", outcome)
		}

		var invoice models.SalesInvoice
		if err := db.Preload("Items").Where("woo_order_id = ?", int64(1009)).Take(&invoice).Error; err != nil {
			t.Fatalf("fetch invoice: %v", err)
		}

		var parent *models.SalesInvoiceItem
		var childSum decimal.Decimal
		children := 0
		for _, item := range invoice.Items {
			switch item.BundleRole {
			case models.BundleRoleParent:
				parent = item
			case models.BundleRoleChild:
				childSum = childSum.Add(item.Amount)
				children++
				// Bundle 90 over gross 100 means a uniform 10% discount.
				if !item.DiscountPct.Equal(decimal.NewFromInt(10)) {
					t.Fatalf("child %s discount = %s, expected 10", item.ItemCode, item.DiscountPct)
				}
			}
		}
		if parent == nil {
			t.Fatal("no bundle parent row")
		}
		if !parent.Amount.IsZero() || !parent.Rate.IsZero() {
			t.Fatalf("parent must be zero-net: rate=%s amount=%s", parent.Rate, parent.Amount)
		}
		if children != 2 {
			t.Fatalf("expected 2 child rows, got %d", children)
		}
		if childSum.StringFixed(2) != "90.00" {
			t.Fatalf("children must sum to bundle price 90.00, got %s", childSum.StringFixed(2))
		}
	})

	t.Run("SyncRunStampsConnectionTimestamps", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if !strings.Contains(r.URL.Path, "/orders") || r.URL.Query().Get("page") != "1" {
				_, _ = w.Write([]byte(`[]`))
				return
			}
			order := makeOrder(3001, "processing", "cod", []woosync.WooLineItem{
				plainLine(30, 501, 0, "SKU-A", 1),
			})
			_ = json.NewEncoder(w).Encode([]woosync.WooOrder{order})
		}))
		defer srv.Close()

		if err := db.Model(&conn).Update("base_url", srv.URL).Error; err != nil {
			t.Fatalf("point connection at stub storefront: %v", err)
		}
		t.Cleanup(func() {
			_ = db.Model(&conn).Update("base_url", "https://shop.example.com").Error
		})
		conn.BaseURL = srv.URL
		stubCfg := conn.SyncConfig()

		summary, err := woosync.SyncRecentOrders(ctx, stubCfg, "", models.SyncTriggeredManual)
		if err != nil {
			t.Fatalf("sync recent orders: %v", err)
		}
		if summary.Created != 1 {
			t.Fatalf("expected one created order, got %+v", summary)
		}

		var refreshed models.WooConnection
		if err := db.Take(&refreshed, conn.ID).Error; err != nil {
			t.Fatalf("reload connection: %v", err)
		}
		if refreshed.LastSyncAt == nil {
			t.Fatal("run did not stamp last_sync_at")
		}
		if refreshed.LastSuccessSyncAt == nil {
			t.Fatal("successful run did not stamp last_success_sync_at")
		}
	})
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()

	productA := int64(501)
	itemA := models.Item{
		ItemCode:     "ITEM-A",
		ItemName:     "Item A",
		SKU:          "SKU-A",
		WooProductID: &productA,
		ItemGroup:    "General",
	}
	if err := db.Create(&itemA).Error; err != nil {
		t.Fatalf("seed item A: %v", err)
	}
	if err := db.Create(&models.ItemPrice{
		ItemCode:  "ITEM-A",
		PriceList: "Retail",
		Selling:   true,
		Rate:      decimal.NewFromInt(60),
	}).Error; err != nil {
		t.Fatalf("seed item A price: %v", err)
	}

	bundleProduct := int64(601)
	if err := db.Create(&models.Item{
		ItemCode:     "BNDL-1",
		ItemName:     "Mixed Box",
		SKU:          "SKU-BUNDLE",
		WooProductID: &bundleProduct,
		ItemGroup:    "Bundles",
	}).Error; err != nil {
		t.Fatalf("seed bundle item: %v", err)
	}
	if err := db.Create(&models.Item{
		ItemCode:     "CHILD-1",
		ItemName:     "Savory Child",
		ItemGroup:    "Savory",
		StandardRate: decimal.NewFromInt(60),
	}).Error; err != nil {
		t.Fatalf("seed child 1: %v", err)
	}
	if err := db.Create(&models.Item{
		ItemCode:     "CHILD-2",
		ItemName:     "Sweet Child",
		ItemGroup:    "Sweet",
		StandardRate: decimal.NewFromInt(40),
	}).Error; err != nil {
		t.Fatalf("seed child 2: %v", err)
	}

	bundle := models.Bundle{
		ParentItem:  "BNDL-1",
		BundlePrice: decimal.NewFromInt(90),
		IsActive:    true,
		Requirements: []*models.BundleRequirement{
			{Idx: 1, ItemGroup: "Savory", Qty: 1},
			{Idx: 2, ItemGroup: "Sweet", Qty: 1},
		},
	}
	if err := db.Create(&bundle).Error; err != nil {
		t.Fatalf("seed bundle: %v", err)
	}
}

func makeOrder(id int64, status string, paymentMethod string, lines []woosync.WooLineItem) woosync.WooOrder {
	return woosync.WooOrder{
		ID:            id,
		Number:        fmt.Sprintf("%d", id),
		Status:        status,
		Currency:      "EGP",
		Total:         "0.00",
		PaymentMethod: paymentMethod,
		DateModified:  "2026-01-10T12:00:00",
		Billing: woosync.WooAddress{
			FirstName: "Ahmed",
			LastName:  "Hassan",
			Address1:  "12 Tahrir St",
			City:      "Cairo",
			Country:   "EG",
			Email:     fmt.Sprintf("order%d@example.com", id),
			Phone:     "+20 100 123 4567",
		},
		Shipping: woosync.WooAddress{
			FirstName: "Ahmed",
			LastName:  "Hassan",
			Address1:  "12 Tahrir St",
			City:      "Cairo",
			Country:   "EG",
		},
		LineItems: lines,
	}
}

func plainLine(lineID int64, productID int64, variationID int64, sku string, qty int) woosync.WooLineItem {
	return woosync.WooLineItem{
		ID:          lineID,
		ProductID:   productID,
		VariationID: variationID,
		SKU:         sku,
		Quantity:    qty,
		Name:        fmt.Sprintf("Product %d", productID),
	}
}

func startRedisContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("woosync-test-redis-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-p", "127.0.0.1:0:6379",
		"redis:7-alpine",
	)
	if err != nil {
		t.Fatalf("start redis container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "6379/tcp")
	if err != nil {
		t.Fatalf("redis docker port: %v", err)
	}
	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		_, err := dockerRun("exec", name, "redis-cli", "ping")
		if err == nil {
			return name, port
		}
		time.Sleep(250 * time.Millisecond)
	}
	t.Fatalf("redis did not become ready")
	return "", ""
}

func startMySQLContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("woosync-test-mysql-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-e", "MYSQL_ROOT_PASSWORD=testpw",
		"-e", "MYSQL_DATABASE=woosync_test",
		"-p", "127.0.0.1:0:3306",
		"mysql:8.0",
		"--default-authentication-plugin=mysql_native_password",
	)
	if err != nil {
		t.Fatalf("start mysql container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "3306/tcp")
	if err != nil {
		t.Fatalf("mysql docker port: %v", err)
	}
	deadline := time.Now().Add(120 * time.Second)
	for time.Now().Before(deadline) {
		_, err := dockerRun("exec", name, "mysqladmin", "ping", "-h", "127.0.0.1", "-ptestpw", "--silent")
		if err == nil {
			return name, port
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("mysql did not become ready")
	return "", ""
}

func dockerHostPort(container, portProto string) (string, error) {
	out, err := dockerRun("port", container, portProto)
	if err != nil {
		return "", fmt.Errorf("docker port: %w: %s", err, out)
	}
	re := regexp.MustCompile(`:(\d+)`)
	m := re.FindStringSubmatch(out)
	if len(m) != 2 {
		return "", fmt.Errorf("unexpected docker port output: %q", out)
	}
	return m[1], nil
}

func dockerRmForce(container string) error {
	if strings.TrimSpace(container) == "" {
		return nil
	}
	_, err := dockerRun("rm", "-f", container)
	return err
}

func dockerRun(args ...string) (string, error) {
	cmd := exec.Command("docker", args...)
	b, err := cmd.CombinedOutput()
	return string(b), err
}
