package service

import (
	"context"
	"testing"

	"umkm-invoice/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCustomerValidates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.customers.CreateCustomer(ctx, CreateCustomerRequest{Name: "   "})
	require.NoError(t, err)
	assert.Equal(t, KindInvalid, res.Kind)
	assert.Contains(t, res.Message, "name")

	res, err = f.customers.CreateCustomer(ctx, CreateCustomerRequest{Name: "Budi", Email: "not-an-email"})
	require.NoError(t, err)
	assert.Equal(t, KindInvalid, res.Kind)
	assert.Contains(t, res.Message, "email")
}

func TestCreateAndGetCustomer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created := f.createCustomer(t, "Budi Santoso")
	assert.NotZero(t, created.ID)

	got, err := f.customers.GetCustomer(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, got.OK())
	assert.Equal(t, "Budi Santoso", got.Value.Name)
	assert.Equal(t, "budi.santoso@example.com", got.Value.Email)

	missing, err := f.customers.GetCustomer(ctx, 9999)
	require.NoError(t, err)
	assert.Equal(t, KindNotFound, missing.Kind)

	assert.Contains(t, f.events.Events(), EventCustomerCreated)
}

func TestUpdateCustomerAppliesOnlySentFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.createCustomer(t, "Siti")

	phone := "0812"
	res, err := f.customers.UpdateCustomer(ctx, created.ID, UpdateCustomerRequest{Phone: &phone})
	require.NoError(t, err)
	require.True(t, res.OK(), res.Message)
	assert.Equal(t, "Siti", res.Value.Name)
	assert.Equal(t, "0812", res.Value.Phone)
	assert.Equal(t, created.Email, res.Value.Email)

	blank := " "
	res, err = f.customers.UpdateCustomer(ctx, created.ID, UpdateCustomerRequest{Name: &blank})
	require.NoError(t, err)
	assert.Equal(t, KindInvalid, res.Kind)

	res, err = f.customers.UpdateCustomer(ctx, 404, UpdateCustomerRequest{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, KindNotFound, res.Kind)
}

func TestDeleteReferencedCustomerIsRefused(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	customer := f.createCustomer(t, "Budi")
	f.createInvoice(t, customer.ID, "2026-10-16", line("Widget", 1, 1000))

	for i := 0; i < 2; i++ {
		res, err := f.customers.DeleteCustomer(ctx, customer.ID)
		require.NoError(t, err)
		assert.Equal(t, KindRefused, res.Kind)
		assert.Equal(t, int64(1), res.References)
	}

	got, err := f.customers.GetCustomer(ctx, customer.ID)
	require.NoError(t, err)
	assert.True(t, got.OK(), "refused delete leaves the row intact")
}

func TestDeleteCustomer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	customer := f.createCustomer(t, "Budi")

	res, err := f.customers.DeleteCustomer(ctx, customer.ID)
	require.NoError(t, err)
	require.True(t, res.OK())
	assert.Equal(t, "Budi", res.Value.Name)

	res, err = f.customers.DeleteCustomer(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, KindNotFound, res.Kind)

	logs, total, err := f.activity.GetActivityLogs(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	actions := []string{logs[0].Action, logs[1].Action}
	assert.ElementsMatch(t, []string{model.ActionCreateCustomer, model.ActionDeleteCustomer}, actions)
}

func TestListCustomersSearchesCaseInsensitively(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createCustomer(t, "Budi Santoso")
	f.createCustomer(t, "Andi Budiman")
	f.createCustomer(t, "Siti Aminah")

	list, total, err := f.customers.ListCustomers(ctx, "BUDI", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 2)
	assert.Equal(t, "Andi Budiman", list[0].Name)
	assert.Equal(t, "Budi Santoso", list[1].Name)

	page, total, err := f.customers.ListCustomers(ctx, "", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	assert.Equal(t, "Siti Aminah", page[0].Name)
}
