package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"umkm-invoice/internal/export"
	"umkm-invoice/internal/model"
	"umkm-invoice/internal/repository"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Export formats accepted by ExportSalesSummary.
const (
	ExportFormatXLSX = "xlsx"
	ExportFormatCSV  = "csv"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Download is a generated file ready to be sent to the client.
type Download struct {
	Filename    string
	ContentType string
	Content     []byte
}

// --- DTOs ---

type SalesSummaryQuery struct {
	StartDate string `form:"start_date"` // YYYY-MM-DD, inclusive
	EndDate   string `form:"end_date"`   // YYYY-MM-DD, inclusive
}

type SalesSummaryRowResponse struct {
	Date         string `json:"date"`
	InvoiceCount int64  `json:"invoice_count"`
	TotalSales   string `json:"total_sales"`
	TotalTax     string `json:"total_tax"`
}

// SalesSummaryTotals aggregates every row of the requested range.
type SalesSummaryTotals struct {
	InvoiceCount      int64  `json:"invoice_count"`
	TotalSales        string `json:"total_sales"`
	TotalTax          string `json:"total_tax"`
	AveragePerInvoice string `json:"average_per_invoice"`
}

type SalesSummaryResponse struct {
	Rows   []SalesSummaryRowResponse `json:"rows"`
	Totals SalesSummaryTotals        `json:"totals"`
}

type MonthlyRevenueResponse struct {
	Month   string `json:"month"`
	Revenue string `json:"revenue"`
}

type DashboardResponse struct {
	TotalInvoices      int64                    `json:"total_invoices"`
	TotalRevenue       string                   `json:"total_revenue"`
	DraftInvoices      int64                    `json:"draft_invoices"`
	AverageInvoice     string                   `json:"average_invoice"`
	MonthlyRevenue     []MonthlyRevenueResponse `json:"monthly_revenue"`
	StatusDistribution []model.StatusCount      `json:"status_distribution"`
}

// --- Interface ---

type ReportService interface {
	SalesSummary(ctx context.Context, query SalesSummaryQuery) (Result[SalesSummaryResponse], error)
	ExportSalesSummary(ctx context.Context, query SalesSummaryQuery, format string) (Result[Download], error)
	Dashboard(ctx context.Context) (DashboardResponse, error)
}

// --- Implementation ---

type reportService struct {
	reportRepo repository.ReportRepository
}

func NewReportService(reportRepo repository.ReportRepository) ReportService {
	return &reportService{reportRepo: reportRepo}
}

// rangeBounds is an inclusive pair of calendar dates; nil means open.
type rangeBounds struct {
	start, end *time.Time
}

func parseRange(query SalesSummaryQuery) (*rangeBounds, error) {
	start, err := parseDate("start_date", query.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("end_date", query.EndDate)
	if err != nil {
		return nil, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, newValidationError("end_date", "must not be before start_date")
	}
	return &rangeBounds{start: start, end: end}, nil
}

func (s *reportService) summaryRows(ctx context.Context, query SalesSummaryQuery) ([]model.SalesSummaryRow, *rangeBounds, error) {
	bounds, err := parseRange(query)
	if err != nil {
		return nil, nil, err
	}
	rows, err := s.reportRepo.SalesSummary(ctx, bounds.start, bounds.end)
	if err != nil {
		return nil, nil, err
	}
	return rows, bounds, nil
}

// SalesSummary lists per-day totals, newest first, plus range totals. An
// empty range yields no rows and zero totals.
func (s *reportService) SalesSummary(ctx context.Context, query SalesSummaryQuery) (Result[SalesSummaryResponse], error) {
	rows, _, err := s.summaryRows(ctx, query)
	if err != nil {
		return invalidOrError[SalesSummaryResponse](err)
	}

	res := SalesSummaryResponse{Rows: make([]SalesSummaryRowResponse, 0, len(rows))}
	var count int64
	sales, tax := decimal.Zero, decimal.Zero
	for _, r := range rows {
		res.Rows = append(res.Rows, SalesSummaryRowResponse{
			Date:         r.Date,
			InvoiceCount: r.InvoiceCount,
			TotalSales:   r.TotalSales.StringFixed(2),
			TotalTax:     r.TotalTax.StringFixed(2),
		})
		count += r.InvoiceCount
		sales = sales.Add(r.TotalSales)
		tax = tax.Add(r.TotalTax)
	}

	average := decimal.Zero
	if count > 0 {
		average = sales.Div(decimal.NewFromInt(count))
	}
	res.Totals = SalesSummaryTotals{
		InvoiceCount:      count,
		TotalSales:        sales.StringFixed(2),
		TotalTax:          tax.StringFixed(2),
		AveragePerInvoice: average.StringFixed(2),
	}
	return Ok(res, ""), nil
}

func (s *reportService) ExportSalesSummary(ctx context.Context, query SalesSummaryQuery, format string) (Result[Download], error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatXLSX
	}
	if format != ExportFormatXLSX && format != ExportFormatCSV {
		return Invalid[Download]("format: must be one of: xlsx, csv"), nil
	}

	rows, bounds, err := s.summaryRows(ctx, query)
	if err != nil {
		return invalidOrError[Download](err)
	}

	file := Download{Filename: export.SalesSummaryFilename(bounds.start, bounds.end, format)}
	switch format {
	case ExportFormatCSV:
		var buf bytes.Buffer
		if err := export.WriteSalesSummaryCSV(&buf, rows); err != nil {
			return Result[Download]{}, fmt.Errorf("failed to write csv: %w", err)
		}
		file.ContentType = "text/csv"
		file.Content = buf.Bytes()
	default:
		content, err := export.SalesSummaryXLSX(rows)
		if err != nil {
			return Result[Download]{}, fmt.Errorf("failed to build spreadsheet: %w", err)
		}
		file.ContentType = xlsxContentType
		file.Content = content
	}
	return Ok(file, ""), nil
}

// Dashboard runs the independent aggregate queries concurrently.
func (s *reportService) Dashboard(ctx context.Context) (DashboardResponse, error) {
	var (
		totals   repository.InvoiceTotalsRow
		monthly  []model.MonthlyRevenue
		statuses []model.StatusCount
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		totals, err = s.reportRepo.InvoiceTotals(gctx)
		return err
	})
	g.Go(func() (err error) {
		monthly, err = s.reportRepo.MonthlyRevenue(gctx)
		return err
	})
	g.Go(func() (err error) {
		statuses, err = s.reportRepo.StatusDistribution(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return DashboardResponse{}, fmt.Errorf("failed to build dashboard: %w", err)
	}

	average := decimal.Zero
	if totals.InvoiceCount > 0 {
		average = totals.Revenue.Div(decimal.NewFromInt(totals.InvoiceCount))
	}

	var drafts int64
	for _, st := range statuses {
		if st.Status == model.InvoiceStatusDraft {
			drafts = st.Count
		}
	}

	res := DashboardResponse{
		TotalInvoices:      totals.InvoiceCount,
		TotalRevenue:       totals.Revenue.StringFixed(2),
		DraftInvoices:      drafts,
		AverageInvoice:     average.StringFixed(2),
		MonthlyRevenue:     make([]MonthlyRevenueResponse, 0, len(monthly)),
		StatusDistribution: statuses,
	}
	for _, m := range monthly {
		res.MonthlyRevenue = append(res.MonthlyRevenue, MonthlyRevenueResponse{Month: m.Month, Revenue: m.Revenue.StringFixed(2)})
	}
	return res, nil
}
