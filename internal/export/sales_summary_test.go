package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"umkm-invoice/internal/model"
)

func sampleRows() []model.SalesSummaryRow {
	return []model.SalesSummaryRow{
		{Date: "2026-10-16", InvoiceCount: 2, TotalSales: decimal.NewFromInt(444000), TotalTax: decimal.NewFromInt(44000)},
		{Date: "2026-10-15", InvoiceCount: 1, TotalSales: decimal.RequireFromString("111000.50"), TotalTax: decimal.NewFromInt(11000)},
	}
}

func TestSalesSummaryXLSX(t *testing.T) {
	data, err := SalesSummaryXLSX(sampleRows())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SalesSummarySheet}, f.GetSheetList())

	rows, err := f.GetRows(SalesSummarySheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, salesSummaryHeader, rows[0])

	raw := excelize.Options{RawCellValue: true}
	date, _ := f.GetCellValue(SalesSummarySheet, "A2", raw)
	count, _ := f.GetCellValue(SalesSummarySheet, "B2", raw)
	sales, _ := f.GetCellValue(SalesSummarySheet, "C2", raw)
	tax, _ := f.GetCellValue(SalesSummarySheet, "D3", raw)
	assert.Equal(t, "2026-10-16", date)
	assert.Equal(t, "2", count)
	assert.Equal(t, "444000", sales)
	assert.Equal(t, "11000", tax)
}

func TestSalesSummaryXLSXEmpty(t *testing.T) {
	data, err := SalesSummaryXLSX(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SalesSummarySheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWriteSalesSummaryCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSalesSummaryCSV(&buf, sampleRows()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Tanggal,Jumlah Invoice,Total Penjualan,Total Pajak", lines[0])
	assert.Equal(t, "2026-10-16,2,444000.00,44000.00", lines[1])
	assert.Equal(t, "2026-10-15,1,111000.50,11000.00", lines[2])
}

func TestSalesSummaryFilename(t *testing.T) {
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "laporan_penjualan_2026-10-01_to_2026-10-31.xlsx", SalesSummaryFilename(&start, &end, "xlsx"))
	assert.Equal(t, "laporan_penjualan_awal_to_2026-10-31.csv", SalesSummaryFilename(nil, &end, "csv"))
	assert.Equal(t, "laporan_penjualan_awal_to_akhir.xlsx", SalesSummaryFilename(nil, nil, "xlsx"))
}
