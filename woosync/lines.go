package woosync

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"bitbucket.org/jarzapp/woosync_backend/config"
	"bitbucket.org/jarzapp/woosync_backend/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const woosbParentKey = "_woosb_parent_id"

// BuildInvoiceItems maps storefront order lines to local invoice rows.
// Bundle lines expand through the pricing engine and consume their pack
// children; plain lines resolve to a catalog item and price strictly from
// the local price list, ignoring whatever the storefront charged. Lines that
// cannot be mapped are collected rather than failing immediately so the
// caller can report every offender at once.
func BuildInvoiceItems(ctx context.Context, db *gorm.DB, cfg models.SyncConfig, order WooOrder, priceList string) ([]*models.SalesInvoiceItem, []string, error) {
	// First pass: which lines are bundles, keyed by product id, so pack
	// children arriving before their parent are still recognized.
	bundles := map[int64]*models.Bundle{}
	expandedParents := map[string]bool{}
	for _, line := range order.LineItems {
		item, err := resolveLineItem(ctx, db, line)
		if err != nil {
			return nil, nil, err
		}
		if item == nil {
			continue
		}
		bundle, err := FindBundleForItem(ctx, db, item.ItemCode)
		if err != nil {
			return nil, nil, err
		}
		if bundle != nil {
			bundles[line.ID] = bundle
			expandedParents[strconv.FormatInt(line.ProductID, 10)] = true
		}
	}

	var items []*models.SalesInvoiceItem
	var missing []string
	idx := 1

	for _, line := range order.LineItems {
		if parentID := MetaString(line.MetaData, woosbParentKey); parentID != "" && expandedParents[parentID] {
			// Pack child already covered by its parent's expansion.
			continue
		}

		if bundle, ok := bundles[line.ID]; ok {
			qty := line.Quantity
			if qty < 1 {
				qty = 1
			}
			expanded, err := ExpandBundle(ctx, db, bundle, qty, nil)
			if err != nil {
				return nil, nil, err
			}
			lineID := line.ID
			for _, exp := range expanded {
				row := &models.SalesInvoiceItem{
					Idx:           idx,
					ItemCode:      exp.ItemCode,
					ItemName:      exp.ItemName,
					Qty:           exp.Qty,
					Rate:          exp.Rate,
					PriceListRate: exp.PriceListRate,
					DiscountPct:   exp.DiscountPct,
					Amount:        exp.Amount,
					BundleRole:    exp.Role,
					BundleParent:  exp.BundleParent,
					WooLineID:     &lineID,
				}
				if exp.Role == models.BundleRoleParent {
					pid := line.ProductID
					row.WooProductID = &pid
				}
				items = append(items, row)
				idx++
			}
			continue
		}

		item, err := resolveLineItem(ctx, db, line)
		if err != nil {
			return nil, nil, err
		}
		if item == nil {
			missing = append(missing, describeLine(line))
			continue
		}

		rate, found, err := priceListRate(ctx, db, priceList, item.ItemCode)
		if err != nil {
			return nil, nil, err
		}
		if !found {
			missing = append(missing, fmt.Sprintf("%s (no %s rate)", item.ItemCode, priceList))
			continue
		}

		qty := decimal.NewFromInt(int64(line.Quantity))
		if qty.LessThanOrEqual(decimal.Zero) {
			qty = decimal.NewFromInt(1)
		}
		lineID := line.ID
		productID := line.ProductID
		row := &models.SalesInvoiceItem{
			Idx:           idx,
			ItemCode:      item.ItemCode,
			ItemName:      item.ItemName,
			Qty:           qty,
			Rate:          rate,
			PriceListRate: rate,
			DiscountPct:   decimal.Zero,
			Amount:        rate.Mul(qty).Round(2),
			BundleRole:    models.BundleRoleNone,
			WooLineID:     &lineID,
			WooProductID:  &productID,
		}
		if line.VariationID > 0 {
			variationID := line.VariationID
			row.WooVariationID = &variationID
		}
		items = append(items, row)
		idx++
	}

	return items, missing, nil
}

// resolveLineItem finds the catalog item for a line, by SKU first and
// storefront product/variation id second. nil means unmapped, not an error.
func resolveLineItem(ctx context.Context, db *gorm.DB, line WooLineItem) (*models.Item, error) {
	dbCtx := db.WithContext(ctx)

	if line.SKU != "" {
		var item models.Item
		err := dbCtx.Where("sku = ?", line.SKU).Take(&item).Error
		if err == nil {
			return &item, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if line.VariationID > 0 {
		var item models.Item
		err := dbCtx.Where("woo_variation_id = ?", line.VariationID).Take(&item).Error
		if err == nil {
			return &item, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if line.ProductID > 0 {
		var item models.Item
		err := dbCtx.Where("woo_product_id = ?", line.ProductID).Take(&item).Error
		if err == nil {
			return &item, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	return nil, nil
}

// priceListRate looks up the selling rate, with a short Redis cache in front
// so historical migration pages do not hammer the same rows.
func priceListRate(ctx context.Context, db *gorm.DB, priceList string, itemCode string) (decimal.Decimal, bool, error) {
	cacheKey := "woosync:rate:" + priceList + ":" + itemCode
	var cached string
	if ok, err := config.GetRedisObject(cacheKey, &cached); err == nil && ok {
		if rate, err := decimal.NewFromString(cached); err == nil {
			return rate, true, nil
		}
	}

	var price models.ItemPrice
	err := db.WithContext(ctx).
		Where("item_code = ? AND price_list = ? AND selling = ?", itemCode, priceList, true).
		Order("created_at desc").
		Take(&price).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, err
	}

	_ = config.SetRedisObject(cacheKey, price.Rate.String(), 10*time.Minute)
	return price.Rate, true, nil
}

func describeLine(line WooLineItem) string {
	switch {
	case line.SKU != "":
		return fmt.Sprintf("sku=%s (%s)", line.SKU, line.Name)
	case line.ProductID > 0:
		return fmt.Sprintf("product=%d (%s)", line.ProductID, line.Name)
	default:
		return line.Name
	}
}
