package woosync

import (
	"context"
	"fmt"
	"time"

	"bitbucket.org/jarzapp/woosync_backend/config"
	"bitbucket.org/jarzapp/woosync_backend/models"
	"bitbucket.org/jarzapp/woosync_backend/utils"
	"gorm.io/gorm"
)

// CustomerSyncSummary reports one directory poll.
type CustomerSyncSummary struct {
	Fetched int `json:"customers_fetched"`
	Created int `json:"created"`
	Updated int `json:"updated"`
	Errors  int `json:"errors"`
}

// SyncRecentCustomers polls the storefront customer directory for signups
// registered after the stored watermark and upserts local customer records.
// The watermark only advances on a fully successful page walk, so a failed
// run re-reads the same window next time.
func SyncRecentCustomers(ctx context.Context, cfg models.SyncConfig, triggeredBy string) (CustomerSyncSummary, error) {
	logger := config.GetLogger()
	db := config.GetDB()

	client, err := newWooClient(cfg)
	if err != nil {
		return CustomerSyncSummary{}, err
	}

	var conn models.WooConnection
	if err := db.WithContext(ctx).Take(&conn, cfg.ConnectionID).Error; err != nil {
		return CustomerSyncSummary{}, err
	}

	after := ""
	if conn.LastSyncedCustomerCreated != nil {
		after = conn.LastSyncedCustomerCreated.Format(time.RFC3339)
	}

	run, err := beginSyncRun(ctx, cfg.ConnectionID, models.SyncRunTypeCustomers, triggeredBy)
	if err != nil {
		return CustomerSyncSummary{}, err
	}

	var summary CustomerSyncSummary
	var latestCreated *time.Time
	perPage := 100
	clean := true

	for page := 1; page <= 20; page++ {
		customers, err := client.ListCustomers(ctx, page, perPage, after)
		if err != nil {
			config.LogError(logger, moduleName, "SyncRecentCustomers", "list customers", page, err)
			recordBatchError(ctx, run.ID, "customer", "", "fetch_failed", err)
			summary.Errors++
			clean = false
			break
		}
		if len(customers) == 0 {
			break
		}
		summary.Fetched += len(customers)

		for _, wc := range customers {
			created, err := upsertCustomer(ctx, db, cfg, wc)
			if err != nil {
				config.LogError(logger, moduleName, "SyncRecentCustomers", "upsert customer", wc.ID, err)
				recordBatchError(ctx, run.ID, "customer", fmt.Sprint(wc.ID), "upsert_failed", err)
				summary.Errors++
				clean = false
				continue
			}
			if created {
				summary.Created++
			} else {
				summary.Updated++
			}
			if t, err := time.Parse("2006-01-02T15:04:05", wc.DateCreated); err == nil {
				if latestCreated == nil || t.After(*latestCreated) {
					latestCreated = &t
				}
			}
		}

		if len(customers) < perPage {
			break
		}
	}

	if clean && latestCreated != nil {
		if err := db.WithContext(ctx).Model(&conn).
			Update("last_synced_customer_created", latestCreated).Error; err != nil {
			config.LogError(logger, moduleName, "SyncRecentCustomers", "advance watermark", cfg.ConnectionID, err)
		}
	}

	finishSyncRun(ctx, run, BatchSummary{
		Fetched:   summary.Fetched,
		Processed: summary.Created + summary.Updated,
		Created:   summary.Created,
		Errors:    summary.Errors,
	})
	return summary, nil
}

// upsertCustomer matches a storefront customer against local records using
// the same key priority as order-time resolution, then fills empty fields
// only. Returns true when a new record was created.
// SyncCustomerByID re-fetches one storefront customer and upserts it. Used
// by the customer webhook path, which only trusts the id from the delivery.
func SyncCustomerByID(ctx context.Context, cfg models.SyncConfig, customerID int64) error {
	db := config.GetDB()

	client, err := newWooClient(cfg)
	if err != nil {
		return err
	}
	wc, err := client.GetCustomer(ctx, customerID)
	if err != nil {
		return err
	}
	_, err = upsertCustomer(ctx, db, cfg, wc)
	return err
}

func upsertCustomer(ctx context.Context, db *gorm.DB, cfg models.SyncConfig, wc WooCustomer) (bool, error) {
	phone := wc.Billing.Phone
	if phone == "" {
		phone = wc.Shipping.Phone
	}
	ident := orderIdentity{
		Username:  wc.Username,
		Phone:     phone,
		Email:     wc.Email,
		FirstName: wc.FirstName,
		LastName:  wc.LastName,
	}
	if wc.ID > 0 {
		id := wc.ID
		ident.WooID = &id
	}

	existing, err := matchCustomer(ctx, db, cfg, ident)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, backfillIdentity(ctx, db, cfg, existing, ident)
	}

	customer := models.Customer{
		Name:          ident.displayName(),
		Email:         wc.Email,
		Phone:         utils.NormalizePhone(phone),
		WooUsername:   wc.Username,
		WooCustomerID: ident.WooID,
	}
	if err := db.WithContext(ctx).Create(&customer).Error; err != nil {
		return false, err
	}

	if wc.Billing.Address1 != "" {
		if _, err := ensureAddress(ctx, db, cfg, &customer, models.AddressTypeBilling, wc.Billing); err != nil {
			return true, err
		}
	}
	if wc.Shipping.Address1 != "" {
		if _, err := ensureAddress(ctx, db, cfg, &customer, models.AddressTypeShipping, wc.Shipping); err != nil {
			return true, err
		}
	}
	return true, nil
}
