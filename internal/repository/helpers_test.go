package repository

import (
	"strings"
	"testing"
	"time"

	"umkm-invoice/internal/database"
	"umkm-invoice/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.NewConnection(database.Options{
		Driver: "sqlite",
		DSN:    "file:repo_" + name + "?mode=memory&cache=shared&_foreign_keys=on",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func seedInvoice(t *testing.T, db *gorm.DB, customerID uint, number, issue, status string, total int64, items ...string) *model.Invoice {
	t.Helper()
	amount := decimal.NewFromInt(total)
	inv := &model.Invoice{
		InvoiceNumber: number,
		CustomerID:    customerID,
		IssueDate:     day(issue),
		DueDate:       day(issue).AddDate(0, 0, 30),
		Subtotal:      amount,
		TaxRate:       decimal.Zero,
		TaxAmount:     decimal.Zero,
		Total:         amount,
		Status:        status,
	}
	for _, name := range items {
		inv.Items = append(inv.Items, model.InvoiceItem{ProductName: name, Quantity: 1, UnitPrice: amount, TotalPrice: amount})
	}
	require.NoError(t, db.Omit("Customer").Create(inv).Error)
	return inv
}
