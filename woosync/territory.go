package woosync

import (
	"context"
	"errors"
	"strings"

	"bitbucket.org/jarzapp/woosync_backend/config"
	"bitbucket.org/jarzapp/woosync_backend/models"
	"gorm.io/gorm"
)

// TerritorySyncSummary reports one delivery-area reconciliation.
type TerritorySyncSummary struct {
	Areas            int `json:"areas"`
	Created          int `json:"created"`
	Updated          int `json:"updated"`
	CustomWooCodeSet int `json:"woo_code_set"`
	Errors           int `json:"errors"`
}

// SyncTerritories pulls the storefront's delivery-area list and reconciles
// it against local territories. An area is matched by woo_code first, then
// by its code against territory names, then by english name, then by label;
// matched territories get the storefront code stamped, unmatched areas
// become new territories inheriting connection defaults.
func SyncTerritories(ctx context.Context, cfg models.SyncConfig, triggeredBy string) (TerritorySyncSummary, error) {
	logger := config.GetLogger()
	db := config.GetDB()

	client, err := newWooClient(cfg)
	if err != nil {
		return TerritorySyncSummary{}, err
	}

	areas, err := client.ListDeliveryAreas(ctx)
	if err != nil {
		return TerritorySyncSummary{}, err
	}

	run, err := beginSyncRun(ctx, cfg.ConnectionID, models.SyncRunTypeTerritories, triggeredBy)
	if err != nil {
		return TerritorySyncSummary{}, err
	}

	summary := TerritorySyncSummary{Areas: len(areas)}
	for _, area := range areas {
		territory, err := matchTerritory(ctx, db, area)
		if err != nil {
			config.LogError(logger, moduleName, "SyncTerritories", "match territory", area.Code, err)
			recordBatchError(ctx, run.ID, "territory", area.Code, "match_failed", err)
			summary.Errors++
			continue
		}

		if territory == nil {
			name := area.En
			if name == "" {
				name = area.Label
			}
			if name == "" {
				name = area.Code
			}
			territory = &models.Territory{
				Name:       name,
				WooCode:    area.Code,
				POSProfile: cfg.DefaultPOSProfile,
				Warehouse:  cfg.DefaultWarehouse,
				PriceList:  cfg.DefaultPriceList,
				IsExpress:  area.Express,
			}
			if err := db.WithContext(ctx).Create(territory).Error; err != nil {
				config.LogError(logger, moduleName, "SyncTerritories", "create territory", area.Code, err)
				recordBatchError(ctx, run.ID, "territory", area.Code, "create_failed", err)
				summary.Errors++
				continue
			}
			summary.Created++
			continue
		}

		updates := map[string]interface{}{}
		if territory.WooCode != area.Code {
			updates["woo_code"] = area.Code
			summary.CustomWooCodeSet++
		}
		if territory.IsExpress != area.Express {
			updates["is_express"] = area.Express
		}
		if len(updates) == 0 {
			continue
		}
		if err := db.WithContext(ctx).Model(territory).Updates(updates).Error; err != nil {
			config.LogError(logger, moduleName, "SyncTerritories", "update territory", area.Code, err)
			recordBatchError(ctx, run.ID, "territory", area.Code, "update_failed", err)
			summary.Errors++
			continue
		}
		summary.Updated++
	}

	finishSyncRun(ctx, run, BatchSummary{
		Fetched:   summary.Areas,
		Processed: summary.Created + summary.Updated,
		Created:   summary.Created,
		Errors:    summary.Errors,
	})
	return summary, nil
}

func matchTerritory(ctx context.Context, db *gorm.DB, area DeliveryArea) (*models.Territory, error) {
	dbCtx := db.WithContext(ctx)

	var territory models.Territory
	candidates := []struct {
		column string
		value  string
	}{
		{"woo_code", area.Code},
		{"name", area.Code},
		{"name", area.En},
		{"name", area.Label},
	}
	for _, c := range candidates {
		if strings.TrimSpace(c.value) == "" {
			continue
		}
		err := dbCtx.Where(c.column+" = ?", c.value).Take(&territory).Error
		if err == nil {
			return &territory, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return nil, nil
}
