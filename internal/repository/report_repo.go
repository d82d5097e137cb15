package repository

import (
	"context"
	"fmt"
	"time"

	"umkm-invoice/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// issueDay and issueMonth extract YYYY-MM-DD / YYYY-MM from issue_date. The
// text cast keeps the expression portable between SQLite and PostgreSQL.
const (
	issueDay   = "SUBSTR(CAST(issue_date AS TEXT), 1, 10)"
	issueMonth = "SUBSTR(CAST(issue_date AS TEXT), 1, 7)"
)

type InvoiceTotalsRow struct {
	InvoiceCount int64           `gorm:"column:invoice_count"`
	Revenue      decimal.Decimal `gorm:"column:revenue"`
}

type ReportRepository interface {
	SalesSummary(ctx context.Context, start, end *time.Time) ([]model.SalesSummaryRow, error)
	InvoiceTotals(ctx context.Context) (InvoiceTotalsRow, error)
	MonthlyRevenue(ctx context.Context) ([]model.MonthlyRevenue, error)
	StatusDistribution(ctx context.Context) ([]model.StatusCount, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// SalesSummary groups invoices per issue day, newest first. Both bounds are
// inclusive calendar dates; nil means unbounded.
func (r *reportRepository) SalesSummary(ctx context.Context, start, end *time.Time) ([]model.SalesSummaryRow, error) {
	query := GetDB(ctx, r.db).Model(&model.Invoice{}).
		Select(issueDay + " AS summary_date, COUNT(*) AS invoice_count, " +
			"COALESCE(SUM(total), 0) AS total_sales, COALESCE(SUM(tax_amount), 0) AS total_tax")
	if start != nil {
		query = query.Where("issue_date >= ?", *start)
	}
	if end != nil {
		query = query.Where("issue_date < ?", end.AddDate(0, 0, 1))
	}

	rows := make([]model.SalesSummaryRow, 0)
	if err := query.Group(issueDay).Order("summary_date DESC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query sales summary: %w", err)
	}
	return rows, nil
}

func (r *reportRepository) InvoiceTotals(ctx context.Context) (InvoiceTotalsRow, error) {
	var row InvoiceTotalsRow
	if err := GetDB(ctx, r.db).Model(&model.Invoice{}).
		Select("COUNT(*) AS invoice_count, COALESCE(SUM(total), 0) AS revenue").
		Scan(&row).Error; err != nil {
		return InvoiceTotalsRow{}, fmt.Errorf("failed to query invoice totals: %w", err)
	}
	return row, nil
}

func (r *reportRepository) MonthlyRevenue(ctx context.Context) ([]model.MonthlyRevenue, error) {
	rows := make([]model.MonthlyRevenue, 0)
	if err := GetDB(ctx, r.db).Model(&model.Invoice{}).
		Select(issueMonth + " AS month, COALESCE(SUM(total), 0) AS revenue").
		Group(issueMonth).Order("month ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query monthly revenue: %w", err)
	}
	return rows, nil
}

func (r *reportRepository) StatusDistribution(ctx context.Context) ([]model.StatusCount, error) {
	rows := make([]model.StatusCount, 0)
	if err := GetDB(ctx, r.db).Model(&model.Invoice{}).
		Select("status, COUNT(*) AS count").
		Group("status").Order("status ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query status distribution: %w", err)
	}
	return rows, nil
}
