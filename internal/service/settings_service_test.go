package service

import (
	"context"
	"testing"

	"umkm-invoice/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func intPtr(n int) *int { return &n }

func validSettings() UpdateSettingsRequest {
	return UpdateSettingsRequest{
		Name:            "Toko Maju Jaya",
		Address:         "Jl. Merdeka No. 10",
		Email:           "halo@majujaya.id",
		NPWP:            "01.234.567.8-901.000",
		DefaultTaxRate:  decimalPtr("0.11"),
		DefaultDueDays:  intPtr(14),
		InvoiceTemplate: "creative",
	}
}

func TestGetSettingsCreatesDefaults(t *testing.T) {
	f := newFixture(t)

	got, err := f.settings.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultCompanyName, got.Name)
	assert.Equal(t, model.DefaultCompanyAddress, got.Address)
	assert.Equal(t, "0.11", got.DefaultTaxRate)
	assert.Equal(t, 30, got.DefaultDueDays)
	assert.Equal(t, "classic", got.InvoiceTemplate)

	var rows int64
	require.NoError(t, f.db.Model(&model.CompanySettings{}).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestUpdateSettingsRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.settings.UpdateSettings(ctx, validSettings())
	require.NoError(t, err)
	require.True(t, res.OK(), res.Message)

	req := validSettings()
	req.Name = "Toko Maju Jaya Abadi"
	res, err = f.settings.UpdateSettings(ctx, req)
	require.NoError(t, err)
	require.True(t, res.OK(), res.Message)

	got, err := f.settings.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "creative", got.InvoiceTemplate)
	assert.Equal(t, "Toko Maju Jaya Abadi", got.Name)
	assert.Equal(t, 14, got.DefaultDueDays)
	assert.Equal(t, "01.234.567.8-901.000", got.NPWP)

	var rows int64
	require.NoError(t, f.db.Model(&model.CompanySettings{}).Count(&rows).Error)
	assert.Equal(t, int64(1), rows, "settings stay a single row")
	assert.Contains(t, f.events.Events(), EventSettingsUpdated)
}

func TestUpdateSettingsValidates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := map[string]func(*UpdateSettingsRequest){
		"unknown template": func(r *UpdateSettingsRequest) { r.InvoiceTemplate = "gothic" },
		"tax above one":    func(r *UpdateSettingsRequest) { r.DefaultTaxRate = decimalPtr("2") },
		"negative tax":     func(r *UpdateSettingsRequest) { r.DefaultTaxRate = decimalPtr("-1") },
		"due days":         func(r *UpdateSettingsRequest) { r.DefaultDueDays = intPtr(400) },
		"email":            func(r *UpdateSettingsRequest) { r.Email = "nope" },
		"name":             func(r *UpdateSettingsRequest) { r.Name = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validSettings()
			mutate(&req)
			res, err := f.settings.UpdateSettings(ctx, req)
			require.NoError(t, err)
			assert.Equal(t, KindInvalid, res.Kind)
		})
	}
}

func TestUpdateSettingsKeepsOmittedDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.settings.UpdateSettings(ctx, validSettings())
	require.NoError(t, err)
	require.True(t, res.OK(), res.Message)

	req := validSettings()
	req.Address = "Jl. Sudirman No. 5"
	req.DefaultTaxRate = nil
	req.DefaultDueDays = nil
	res, err = f.settings.UpdateSettings(ctx, req)
	require.NoError(t, err)
	require.True(t, res.OK(), res.Message)
	assert.Equal(t, "0.11", res.Value.DefaultTaxRate)
	assert.Equal(t, 14, res.Value.DefaultDueDays)

	req.DefaultDueDays = intPtr(0)
	res, err = f.settings.UpdateSettings(ctx, req)
	require.NoError(t, err)
	require.True(t, res.OK(), res.Message)
	assert.Equal(t, 0, res.Value.DefaultDueDays, "an explicit zero is stored")
	assert.Equal(t, "0.11", res.Value.DefaultTaxRate)
}

func TestUpdateSettingsFirstSaveFallsBackToBuiltInDefaults(t *testing.T) {
	f := newFixture(t)
	req := validSettings()
	req.DefaultTaxRate = nil
	req.DefaultDueDays = nil

	res, err := f.settings.UpdateSettings(context.Background(), req)
	require.NoError(t, err)
	require.True(t, res.OK(), res.Message)
	assert.Equal(t, "0.11", res.Value.DefaultTaxRate)
	assert.Equal(t, 30, res.Value.DefaultDueDays)
}

func TestUpdateSettingsNormalizesTemplateKey(t *testing.T) {
	f := newFixture(t)
	req := validSettings()
	req.InvoiceTemplate = " Retail "

	res, err := f.settings.UpdateSettings(context.Background(), req)
	require.NoError(t, err)
	require.True(t, res.OK())
	assert.Equal(t, "retail", res.Value.InvoiceTemplate)
}

func TestSettingsDriveInvoiceDefaults(t *testing.T) {
	f := newFixture(t)
	req := validSettings()
	req.DefaultTaxRate = decimalPtr("0.1")
	_, err := f.settings.UpdateSettings(context.Background(), req)
	require.NoError(t, err)

	customer := f.createCustomer(t, "Budi")
	inv := f.createInvoice(t, customer.ID, "2026-10-01", line("Widget", 1, 100000))
	assert.Equal(t, "10000.00", inv.TaxAmount)
	assert.Equal(t, "2026-10-15", inv.DueDate)
}

func TestListTemplates(t *testing.T) {
	f := newFixture(t)
	templates := f.settings.ListTemplates()
	require.Len(t, templates, 8)
	assert.Equal(t, TemplateResponse{Key: "classic", DisplayName: "Template Klasik Profesional"}, templates[0])
}
