package models

import (
	"log"

	"bitbucket.org/jarzapp/woosync_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&WooConnection{},
		&Customer{}, &Address{},
		&Territory{},
		&Item{}, &ItemPrice{},
		&Bundle{}, &BundleRequirement{},
		&SalesInvoice{}, &SalesInvoiceItem{}, &SalesInvoiceCharge{}, &PaymentReceipt{},
		&OrderMapping{},
		&SyncRun{}, &SyncError{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
