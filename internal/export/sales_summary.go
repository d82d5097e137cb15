// Package export turns report rows into downloadable files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"umkm-invoice/internal/model"
)

// SalesSummarySheet is the worksheet name of the xlsx export.
const SalesSummarySheet = "Laporan Penjualan"

var salesSummaryHeader = []string{"Tanggal", "Jumlah Invoice", "Total Penjualan", "Total Pajak"}

// SalesSummaryXLSX builds a single-sheet workbook with a header row followed
// by one row per day. Amounts are written as numbers so they stay summable.
func SalesSummaryXLSX(rows []model.SalesSummaryRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SalesSummarySheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, title := range salesSummaryHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SalesSummarySheet, cell, title); err != nil {
			return nil, err
		}
	}

	for r, row := range rows {
		values := []any{
			row.Date,
			row.InvoiceCount,
			row.TotalSales.InexactFloat64(),
			row.TotalTax.InexactFloat64(),
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(SalesSummarySheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(SalesSummarySheet, "A1", "D1", headerStyle); err != nil {
		return nil, err
	}

	if len(rows) > 0 {
		amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3})
		if err != nil {
			return nil, err
		}
		last := fmt.Sprintf("D%d", len(rows)+1)
		if err := f.SetCellStyle(SalesSummarySheet, "C2", last, amountStyle); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(SalesSummarySheet, "A", "A", 14); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SalesSummarySheet, "B", "D", 18); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteSalesSummaryCSV writes the same table as SalesSummaryXLSX in CSV form.
func WriteSalesSummaryCSV(w io.Writer, rows []model.SalesSummaryRow) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(salesSummaryHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write([]string{
			row.Date,
			fmt.Sprintf("%d", row.InvoiceCount),
			row.TotalSales.StringFixed(2),
			row.TotalTax.StringFixed(2),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// SalesSummaryFilename names an export for the given range. Open bounds
// are spelled "awal" and "akhir".
func SalesSummaryFilename(start, end *time.Time, ext string) string {
	from, to := "awal", "akhir"
	if start != nil {
		from = start.Format("2006-01-02")
	}
	if end != nil {
		to = end.Format("2006-01-02")
	}
	return fmt.Sprintf("laporan_penjualan_%s_to_%s.%s", from, to, ext)
}
