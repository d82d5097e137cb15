package repository

import (
	"context"
	"errors"
	"testing"

	"umkm-invoice/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestSalesSummaryGroupsAndBounds(t *testing.T) {
	db := newTestDB(t)
	repo := NewReportRepository(db)
	customer := &model.Customer{Name: "Budi"}
	require.NoError(t, db.Create(customer).Error)
	seedInvoice(t, db, customer.ID, "INV-1", "2026-10-14", model.InvoiceStatusDraft, 100, "A")
	seedInvoice(t, db, customer.ID, "INV-2", "2026-10-16", model.InvoiceStatusDraft, 200, "A")
	seedInvoice(t, db, customer.ID, "INV-3", "2026-10-16", model.InvoiceStatusPaid, 300, "A")

	rows, err := repo.SalesSummary(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2026-10-16", rows[0].Date)
	assert.Equal(t, int64(2), rows[0].InvoiceCount)
	assert.Equal(t, "500", rows[0].TotalSales.String())

	start, end := day("2026-10-16"), day("2026-10-16")
	rows, err = repo.SalesSummary(context.Background(), &start, &end)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	start, end = day("2026-01-01"), day("2026-01-02")
	rows, err = repo.SalesSummary(context.Background(), &start, &end)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)

	statuses, err := repo.StatusDistribution(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.StatusCount{{Status: "Draft", Count: 2}, {Status: "Paid", Count: 1}}, statuses)
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestReportRepositoryWrapsQueryErrors(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)
	lost := errors.New("connection reset by peer")

	mock.ExpectQuery(`FROM "invoices"`).WillReturnError(lost)
	_, err := repo.SalesSummary(context.Background(), nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, lost)
	assert.Contains(t, err.Error(), "sales summary")

	mock.ExpectQuery(`COUNT\(\*\) AS invoice_count`).WillReturnError(lost)
	_, err = repo.InvoiceTotals(context.Background())
	assert.ErrorIs(t, err, lost)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepositoryScansPostgresRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)

	mock.ExpectQuery(`SUBSTR\(CAST\(issue_date AS TEXT\), 1, 7\) AS month`).
		WillReturnRows(sqlmock.NewRows([]string{"month", "revenue"}).
			AddRow("2026-09", "11100.00").
			AddRow("2026-10", "444000.00"))

	rows, err := repo.MonthlyRevenue(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2026-10", rows[1].Month)
	assert.Equal(t, "444000", rows[1].Revenue.String())
	require.NoError(t, mock.ExpectationsWereMet())
}
