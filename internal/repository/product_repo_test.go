package repository

import (
	"context"
	"errors"
	"testing"

	"umkm-invoice/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestProductNameKeyIsUnique(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	widget := &model.Product{Name: "Widget", Price: decimal.NewFromInt(50000)}
	require.NoError(t, repo.Create(ctx, widget))
	assert.Equal(t, "widget", widget.NameKey)

	err := repo.Create(ctx, &model.Product{Name: " WIDGET", Price: decimal.NewFromInt(1)})
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "got %v", err)

	found, err := repo.FindByName(ctx, "wIdGeT ")
	require.NoError(t, err)
	assert.Equal(t, widget.ID, found.ID)

	_, err = repo.FindByName(ctx, "gadget")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestProductCountLineItemsByName(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	customer := &model.Customer{Name: "Budi"}
	require.NoError(t, db.Create(customer).Error)
	seedInvoice(t, db, customer.ID, "INV-1", "2026-10-16", model.InvoiceStatusDraft, 10, "Widget", " widget ", "Gadget")

	n, err := repo.CountLineItemsByName(context.Background(), "WIDGET")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestProductListFallsBackToCreatedAt(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	for _, name := range []string{"B", "A", "C"} {
		require.NoError(t, repo.Create(ctx, &model.Product{Name: name}))
	}

	list, total, err := repo.List(ctx, ProductListFilter{SortBy: "bogus", Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, list, 2)
	assert.Equal(t, "B", list[0].Name)
	assert.Equal(t, "A", list[1].Name)
}
