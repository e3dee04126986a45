package woosync

import (
	"context"
	"errors"
	"fmt"

	"bitbucket.org/jarzapp/woosync_backend/config"
	"bitbucket.org/jarzapp/woosync_backend/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var hundred = decimal.NewFromInt(100)

// BundleSelection is a caller-supplied explicit pick of concrete items for
// one requirement group.
type BundleSelection struct {
	ItemGroup string `json:"item_group"`
	ItemCode  string `json:"item_code"`
	Qty       int    `json:"qty"`
}

// ExpandedLine is one priced output row of a bundle expansion.
type ExpandedLine struct {
	ItemCode      string
	ItemName      string
	Qty           decimal.Decimal
	Rate          decimal.Decimal
	PriceListRate decimal.Decimal
	DiscountPct   decimal.Decimal
	Amount        decimal.Decimal
	Role          models.BundleRole
	BundleParent  string
}

// FindBundleForItem returns the active bundle whose parent item matches, or
// nil when the item is not a bundle.
func FindBundleForItem(ctx context.Context, db *gorm.DB, itemCode string) (*models.Bundle, error) {
	var bundle models.Bundle
	err := db.WithContext(ctx).
		Preload("Requirements", func(tx *gorm.DB) *gorm.DB { return tx.Order("idx asc") }).
		Where("parent_item = ? AND is_active = ?", itemCode, true).
		Take(&bundle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bundle, nil
}

// ExpandBundle materializes a bundle into one zero-net parent row plus priced
// child rows whose net totals sum to bundle price x quantity exactly. A
// uniform discount is applied to every child; the per-line rounding residual
// is absorbed entirely by the last child.
func ExpandBundle(ctx context.Context, db *gorm.DB, bundle *models.Bundle, quantity int, selections []BundleSelection) ([]ExpandedLine, error) {
	if bundle == nil {
		return nil, Validationf("unknown bundle")
	}
	if quantity < 1 {
		return nil, Validationf("bundle %s: quantity must be at least 1", bundle.ParentItem)
	}
	if bundle.BundlePrice.LessThanOrEqual(decimal.Zero) {
		return nil, Validationf("bundle %s has a non-positive price", bundle.ParentItem)
	}
	if len(bundle.Requirements) == 0 {
		return nil, Validationf("bundle %s has no requirement rows", bundle.ParentItem)
	}

	selByGroup := map[string][]BundleSelection{}
	for _, sel := range selections {
		selByGroup[sel.ItemGroup] = append(selByGroup[sel.ItemGroup], sel)
	}

	type chosen struct {
		item models.Item
		qty  int
	}
	var picks []chosen

	for _, req := range bundle.Requirements {
		candidates, err := enabledGroupItems(ctx, db, req.ItemGroup)
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			return nil, Validationf("bundle %s: item group %s has no enabled items", bundle.ParentItem, req.ItemGroup)
		}

		if sels, ok := selByGroup[req.ItemGroup]; ok {
			allowed := map[string]models.Item{}
			for _, cand := range candidates {
				allowed[cand.ItemCode] = cand
			}
			total := 0
			for _, sel := range sels {
				item, ok := allowed[sel.ItemCode]
				if !ok {
					return nil, Validationf("bundle %s: item %s is not in group %s", bundle.ParentItem, sel.ItemCode, req.ItemGroup)
				}
				if sel.Qty < 1 {
					return nil, Validationf("bundle %s: selection for %s has non-positive quantity", bundle.ParentItem, sel.ItemCode)
				}
				total += sel.Qty
				picks = append(picks, chosen{item: item, qty: sel.Qty})
			}
			if total != req.Qty {
				return nil, Validationf("bundle %s: group %s selections total %d, requirement is %d", bundle.ParentItem, req.ItemGroup, total, req.Qty)
			}
		} else {
			picks = append(picks, chosen{item: candidates[0], qty: req.Qty})
		}
	}

	qtyDec := decimal.NewFromInt(int64(quantity))
	target := bundle.BundlePrice.Mul(qtyDec)

	lines := make([]ExpandedLine, 0, len(picks)+1)
	lines = append(lines, ExpandedLine{
		ItemCode:      bundle.ParentItem,
		Qty:           qtyDec,
		Rate:          decimal.Zero,
		PriceListRate: bundle.BundlePrice,
		DiscountPct:   hundred,
		Amount:        decimal.Zero,
		Role:          models.BundleRoleParent,
	})

	grossTotal := decimal.Zero
	childGross := make([]decimal.Decimal, len(picks))
	for i, pick := range picks {
		rate := resolveItemRate(ctx, db, pick.item)
		lineQty := decimal.NewFromInt(int64(pick.qty)).Mul(qtyDec)
		gross := rate.Mul(lineQty)
		childGross[i] = gross
		grossTotal = grossTotal.Add(gross)
		lines = append(lines, ExpandedLine{
			ItemCode:      pick.item.ItemCode,
			ItemName:      pick.item.ItemName,
			Qty:           lineQty,
			Rate:          rate,
			PriceListRate: rate,
			Role:          models.BundleRoleChild,
			BundleParent:  bundle.ParentItem,
		})
	}

	discountPct := decimal.Zero
	if target.LessThan(grossTotal) {
		discountPct = grossTotal.Sub(target).Div(grossTotal).Mul(hundred)
		if discountPct.GreaterThan(hundred) {
			discountPct = hundred
		}
		if discountPct.IsNegative() {
			discountPct = decimal.Zero
		}
	} else if target.GreaterThan(grossTotal) {
		config.GetLogger().WithFields(logrus.Fields{
			"module":       "woosync",
			"bundle":       bundle.ParentItem,
			"bundle_price": bundle.BundlePrice.String(),
			"gross":        grossTotal.String(),
		}).Warn("bundle priced above gross child cost; discount floored at 0")
	}

	sumAmounts := decimal.Zero
	for i := range picks {
		line := &lines[i+1]
		line.DiscountPct = discountPct
		net := childGross[i].Mul(hundred.Sub(discountPct)).Div(hundred).Round(2)
		line.Amount = net
		sumAmounts = sumAmounts.Add(net)
	}

	// Rounding residual lands entirely on the last child, clamped so its net
	// stays within [0, gross].
	residual := target.Sub(sumAmounts)
	if !residual.IsZero() && len(picks) > 0 {
		last := &lines[len(lines)-1]
		lastGross := childGross[len(picks)-1]
		adjusted := last.Amount.Add(residual)
		if adjusted.IsNegative() {
			adjusted = decimal.Zero
		}
		if adjusted.GreaterThan(lastGross) {
			adjusted = lastGross
		}
		last.Amount = adjusted
		if lastGross.IsPositive() {
			last.DiscountPct = decimal.NewFromInt(1).Sub(adjusted.Div(lastGross)).Mul(hundred)
		}
	}

	return lines, nil
}

func enabledGroupItems(ctx context.Context, db *gorm.DB, itemGroup string) ([]models.Item, error) {
	var items []models.Item
	err := db.WithContext(ctx).
		Where("item_group = ? AND disabled = ? AND has_variants = ?", itemGroup, false, false).
		Order("item_code asc").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("load items for group %s: %w", itemGroup, err)
	}
	return items, nil
}

// resolveItemRate walks the rate chain: standard rate, latest selling price
// list entry, valuation rate, fixed fallback. A bundle must always price, so
// the fallback is logged as an anomaly rather than raised.
func resolveItemRate(ctx context.Context, db *gorm.DB, item models.Item) decimal.Decimal {
	if item.StandardRate.IsPositive() {
		return item.StandardRate
	}

	var price models.ItemPrice
	err := db.WithContext(ctx).
		Where("item_code = ? AND selling = ? AND rate > 0", item.ItemCode, true).
		Order("created_at desc").
		Take(&price).Error
	if err == nil {
		return price.Rate
	}

	if item.ValuationRate.IsPositive() {
		return item.ValuationRate
	}

	config.GetLogger().WithFields(logrus.Fields{
		"module":    "woosync",
		"item_code": item.ItemCode,
	}).Warn("no rate source for bundle child; using fallback rate")
	return models.FallbackItemRate
}
