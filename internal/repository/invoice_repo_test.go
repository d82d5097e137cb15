package repository

import (
	"context"
	"errors"
	"testing"

	"umkm-invoice/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestInvoiceRepositoryNumbers(t *testing.T) {
	db := newTestDB(t)
	repo := NewInvoiceRepository(db)
	ctx := context.Background()
	customer := &model.Customer{Name: "Budi"}
	require.NoError(t, db.Create(customer).Error)

	last, err := repo.LastNumberWithPrefix(ctx, "INV-20261016-")
	require.NoError(t, err)
	assert.Empty(t, last)

	seedInvoice(t, db, customer.ID, "INV-20261016-00002", "2026-10-16", model.InvoiceStatusDraft, 10, "A")
	seedInvoice(t, db, customer.ID, "INV-20261016-00010", "2026-10-16", model.InvoiceStatusDraft, 10, "A")
	seedInvoice(t, db, customer.ID, "INV-20261017-00001", "2026-10-17", model.InvoiceStatusDraft, 10, "A")

	last, err = repo.LastNumberWithPrefix(ctx, "INV-20261016-")
	require.NoError(t, err)
	assert.Equal(t, "INV-20261016-00010", last)

	err = repo.Create(ctx, &model.Invoice{InvoiceNumber: "INV-20261016-00010", CustomerID: customer.ID, IssueDate: day("2026-10-16"), DueDate: day("2026-10-16")})
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "got %v", err)
}

func TestInvoiceRepositoryLastNumberPastFiveDigits(t *testing.T) {
	db := newTestDB(t)
	repo := NewInvoiceRepository(db)
	customer := &model.Customer{Name: "Budi"}
	require.NoError(t, db.Create(customer).Error)

	seedInvoice(t, db, customer.ID, "INV-20261016-99999", "2026-10-16", model.InvoiceStatusDraft, 10, "A")
	seedInvoice(t, db, customer.ID, "INV-20261016-100000", "2026-10-16", model.InvoiceStatusDraft, 10, "A")

	last, err := repo.LastNumberWithPrefix(context.Background(), "INV-20261016-")
	require.NoError(t, err)
	assert.Equal(t, "INV-20261016-100000", last)
}

func TestInvoiceRepositoryFindAndList(t *testing.T) {
	db := newTestDB(t)
	repo := NewInvoiceRepository(db)
	ctx := context.Background()
	customer := &model.Customer{Name: "Budi"}
	require.NoError(t, db.Create(customer).Error)

	first := seedInvoice(t, db, customer.ID, "INV-A", "2026-10-15", model.InvoiceStatusDraft, 10, "Z", "Y")
	seedInvoice(t, db, customer.ID, "INV-B", "2026-10-16", model.InvoiceStatusPaid, 20, "X")

	got, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Customer)
	assert.Equal(t, "Budi", got.Customer.Name)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Z", got.Items[0].ProductName)
	assert.True(t, got.IssueDate.Equal(day("2026-10-15")))

	list, total, err := repo.List(ctx, InvoiceListFilter{Status: model.InvoiceStatusPaid, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "INV-B", list[0].InvoiceNumber)
	assert.NotNil(t, list[0].Customer)

	list, _, err = repo.List(ctx, InvoiceListFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, "INV-B", list[0].InvoiceNumber)
}
