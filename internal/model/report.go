package model

import (
	"github.com/shopspring/decimal"
)

// SalesSummaryRow is one calendar day of issued invoices.
type SalesSummaryRow struct {
	Date         string          `gorm:"column:summary_date" json:"date"` // YYYY-MM-DD
	InvoiceCount int64           `gorm:"column:invoice_count" json:"invoice_count"`
	TotalSales   decimal.Decimal `gorm:"column:total_sales" json:"total_sales"`
	TotalTax     decimal.Decimal `gorm:"column:total_tax" json:"total_tax"`
}

// MonthlyRevenue is revenue bucketed by YYYY-MM of the issue date.
type MonthlyRevenue struct {
	Month   string          `gorm:"column:month" json:"month"`
	Revenue decimal.Decimal `gorm:"column:revenue" json:"revenue"`
}

// StatusCount is the number of invoices per status.
type StatusCount struct {
	Status string `gorm:"column:status" json:"status"`
	Count  int64  `gorm:"column:count" json:"count"`
}

// DashboardMetrics aggregates the headline numbers shown on the dashboard.
type DashboardMetrics struct {
	TotalInvoices      int64            `json:"total_invoices"`
	TotalRevenue       decimal.Decimal  `json:"total_revenue"`
	DraftInvoices      int64            `json:"draft_invoices"`
	AverageInvoice     decimal.Decimal  `json:"average_invoice"`
	MonthlyRevenue     []MonthlyRevenue `json:"monthly_revenue"`
	StatusDistribution []StatusCount    `json:"status_distribution"`
}

// ProductStats summarizes catalog prices.
type ProductStats struct {
	Count        int64           `gorm:"column:count" json:"count"`
	AveragePrice decimal.Decimal `gorm:"column:average_price" json:"average_price"`
	MaxPrice     decimal.Decimal `gorm:"column:max_price" json:"max_price"`
	MinPrice     decimal.Decimal `gorm:"column:min_price" json:"min_price"`
}
