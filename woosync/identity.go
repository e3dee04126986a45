package woosync

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bitbucket.org/jarzapp/woosync_backend/models"
	"bitbucket.org/jarzapp/woosync_backend/utils"
	"gorm.io/gorm"
)

// iso2Countries covers the codes the storefront actually sends.
var iso2Countries = map[string]string{
	"EG": "Egypt",
	"SA": "Saudi Arabia",
	"AE": "United Arab Emirates",
	"KW": "Kuwait",
	"QA": "Qatar",
	"JO": "Jordan",
	"US": "United States",
	"GB": "United Kingdom",
}

type orderIdentity struct {
	Username  string
	Phone     string
	Email     string
	FirstName string
	LastName  string
	OrderID   int64
	WooID     *int64
}

func identityFromOrder(order WooOrder) orderIdentity {
	phone := strings.TrimSpace(order.Billing.Phone)
	if phone == "" {
		phone = strings.TrimSpace(order.Shipping.Phone)
	}
	email := strings.TrimSpace(order.Billing.Email)
	ident := orderIdentity{
		Username:  MetaString(order.MetaData, "_customer_user_login"),
		Phone:     phone,
		Email:     email,
		FirstName: strings.TrimSpace(order.Billing.FirstName),
		LastName:  strings.TrimSpace(order.Billing.LastName),
		OrderID:   order.ID,
	}
	if order.CustomerID > 0 {
		id := order.CustomerID
		ident.WooID = &id
	}
	return ident
}

func (i orderIdentity) displayName() string {
	name := strings.TrimSpace(i.FirstName + " " + i.LastName)
	if name != "" {
		return name
	}
	if i.Email != "" {
		return i.Email
	}
	return fmt.Sprintf("Woo Guest %d", i.OrderID)
}

// ResolveCustomerAndAddresses finds or creates the canonical customer for an
// order and its deduplicated billing/shipping addresses. Matching priority:
// storefront username, normalized phone, email, display name. A match on a
// lower-priority key backfills empty higher-priority fields, never
// overwriting anything already set.
func ResolveCustomerAndAddresses(ctx context.Context, db *gorm.DB, cfg models.SyncConfig, order WooOrder) (*models.Customer, *models.Address, *models.Address, error) {
	if strings.TrimSpace(order.Billing.Address1) == "" && strings.TrimSpace(order.Shipping.Address1) == "" {
		return nil, nil, nil, Skip(SkipNoAddress)
	}

	ident := identityFromOrder(order)
	customer, err := matchCustomer(ctx, db, cfg, ident)
	if err != nil {
		return nil, nil, nil, err
	}

	if customer == nil {
		customer = &models.Customer{
			Name:        ident.displayName(),
			Email:       ident.Email,
			Phone:       utils.NormalizePhone(ident.Phone),
			WooUsername: ident.Username,
			WooCustomerID: ident.WooID,
		}
		if err := db.WithContext(ctx).Create(customer).Error; err != nil {
			return nil, nil, nil, fmt.Errorf("create customer: %w", err)
		}
	} else if err := backfillIdentity(ctx, db, cfg, customer, ident); err != nil {
		return nil, nil, nil, err
	}

	var billing, shipping *models.Address
	if strings.TrimSpace(order.Billing.Address1) != "" {
		billing, err = ensureAddress(ctx, db, cfg, customer, models.AddressTypeBilling, order.Billing)
		if err != nil {
			return nil, nil, nil, err
		}
	}
	if strings.TrimSpace(order.Shipping.Address1) != "" {
		shipping, err = ensureAddress(ctx, db, cfg, customer, models.AddressTypeShipping, order.Shipping)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	return customer, billing, shipping, nil
}

func matchCustomer(ctx context.Context, db *gorm.DB, cfg models.SyncConfig, ident orderIdentity) (*models.Customer, error) {
	dbCtx := db.WithContext(ctx)

	if cfg.Capabilities.WooUsername && ident.Username != "" {
		var customer models.Customer
		err := dbCtx.Where("woo_username = ?", ident.Username).Take(&customer).Error
		if err == nil {
			return &customer, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if phone := utils.NormalizePhone(ident.Phone); phone != "" {
		var customer models.Customer
		err := dbCtx.Where("mobile_no = ? OR phone = ?", phone, phone).Take(&customer).Error
		if err == nil {
			return &customer, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if ident.Email != "" {
		var customer models.Customer
		err := dbCtx.Where("email = ?", ident.Email).Take(&customer).Error
		if err == nil {
			return &customer, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	var customer models.Customer
	err := dbCtx.Where("name = ?", ident.displayName()).Take(&customer).Error
	if err == nil {
		return &customer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return nil, nil
}

func backfillIdentity(ctx context.Context, db *gorm.DB, cfg models.SyncConfig, customer *models.Customer, ident orderIdentity) error {
	updates := map[string]interface{}{}

	if cfg.Capabilities.WooUsername && customer.WooUsername == "" && ident.Username != "" {
		updates["woo_username"] = ident.Username
		customer.WooUsername = ident.Username
	}
	if phone := utils.NormalizePhone(ident.Phone); phone != "" && customer.Phone == "" && customer.MobileNo == "" {
		updates["phone"] = phone
		customer.Phone = phone
	}
	if customer.Email == "" && ident.Email != "" {
		updates["email"] = ident.Email
		customer.Email = ident.Email
	}
	if cfg.Capabilities.WooCustomerID && customer.WooCustomerID == nil && ident.WooID != nil {
		updates["woo_customer_id"] = *ident.WooID
		customer.WooCustomerID = ident.WooID
	}

	if len(updates) == 0 {
		return nil
	}
	return db.WithContext(ctx).Model(customer).Updates(updates).Error
}

func ensureAddress(ctx context.Context, db *gorm.DB, cfg models.SyncConfig, customer *models.Customer, addrType models.AddressType, src WooAddress) (*models.Address, error) {
	line1 := strings.TrimSpace(src.Address1)

	var existing models.Address
	err := db.WithContext(ctx).
		Where("customer_id = ? AND type = ? AND line1 = ?", customer.ID, addrType, line1).
		Take(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	addr := models.Address{
		CustomerID: customer.ID,
		Type:       addrType,
		Line1:      line1,
		Line2:      strings.TrimSpace(src.Address2),
		City:       strings.TrimSpace(src.City),
		State:      strings.TrimSpace(src.State),
		PostalCode: strings.TrimSpace(src.Postcode),
		Country:    resolveCountry(src.Country, cfg.DefaultCountry),
		Phone:      utils.NormalizePhone(src.Phone),
		Email:      strings.TrimSpace(src.Email),
	}
	if err := db.WithContext(ctx).Create(&addr).Error; err != nil {
		return nil, fmt.Errorf("create %s address: %w", strings.ToLower(string(addrType)), err)
	}
	return &addr, nil
}

// resolveCountry tries an exact known name, then the ISO-2 table, then a
// title-cased form, then the configured default. Unresolvable input stores
// as empty rather than failing the address.
func resolveCountry(raw string, defaultCountry string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultCountry
	}
	for _, name := range iso2Countries {
		if strings.EqualFold(raw, name) {
			return name
		}
	}
	if name, ok := iso2Countries[strings.ToUpper(raw)]; ok {
		return name
	}
	if len(raw) > 3 {
		return utils.TitleCaseWords(raw)
	}
	if defaultCountry != "" {
		return defaultCountry
	}
	return ""
}
