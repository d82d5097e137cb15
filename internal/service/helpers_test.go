package service

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"umkm-invoice/internal/database"
	"umkm-invoice/internal/render"
	"umkm-invoice/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.NewConnection(database.Options{
		Driver: "sqlite",
		DSN:    "file:" + name + "?mode=memory&cache=shared&_foreign_keys=on",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(event string, _ interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) Events() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

type fixture struct {
	db           *gorm.DB
	events       *recordingPublisher
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	settingsRepo repository.SettingsRepository
	activityRepo repository.ActivityRepository
	txManager    repository.TransactionManager

	customers CustomerService
	products  ProductService
	invoices  InvoiceService
	settings  SettingsService
	reports   ReportService
	drafts    DraftService
	activity  ActivityService
	store     *DraftStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	log := quietLogger()

	f := &fixture{
		db:           db,
		events:       &recordingPublisher{},
		invoiceRepo:  repository.NewInvoiceRepository(db),
		customerRepo: repository.NewCustomerRepository(db),
		settingsRepo: repository.NewSettingsRepository(db),
		activityRepo: repository.NewActivityRepository(db),
		txManager:    repository.NewTransactionManager(db),
		store:        NewDraftStore(),
	}
	productRepo := repository.NewProductRepository(db)

	f.customers = NewCustomerService(f.customerRepo, f.activityRepo, f.txManager, f.events, log)
	f.products = NewProductService(productRepo, f.activityRepo, f.txManager, f.events, log)
	f.invoices = f.newInvoiceService(f.invoiceRepo, render.NewPDFRenderer(), DefaultInvoiceNumberRetries)
	f.settings = NewSettingsService(f.settingsRepo, f.activityRepo, f.events, log)
	f.reports = NewReportService(repository.NewReportRepository(db))
	f.drafts = NewDraftService(f.store, f.invoices, f.products, f.settingsRepo)
	f.activity = NewActivityService(f.activityRepo)
	return f
}

func (f *fixture) newInvoiceService(repo repository.InvoiceRepository, renderer render.Renderer, retries int) InvoiceService {
	svc := NewInvoiceService(repo, f.customerRepo, f.settingsRepo, f.activityRepo, f.txManager, renderer, f.events, quietLogger(), retries)
	svc.(*invoiceService).now = func() time.Time { return fixedNow }
	return svc
}

func (f *fixture) createCustomer(t *testing.T, name string) CustomerResponse {
	t.Helper()
	res, err := f.customers.CreateCustomer(context.Background(), CreateCustomerRequest{Name: name, Email: strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com"})
	require.NoError(t, err)
	require.Equal(t, KindOK, res.Kind, res.Message)
	return res.Value
}

func (f *fixture) createInvoice(t *testing.T, customerID uint, issueDate string, items ...InvoiceLineRequest) InvoiceResponse {
	t.Helper()
	res, err := f.invoices.CreateInvoice(context.Background(), CreateInvoiceRequest{
		CustomerID: customerID,
		IssueDate:  issueDate,
		Items:      items,
	})
	require.NoError(t, err)
	require.Equal(t, KindOK, res.Kind, res.Message)
	return res.Value
}

func line(name string, qty int, price int64) InvoiceLineRequest {
	return InvoiceLineRequest{ProductName: name, Quantity: qty, UnitPrice: decimal.NewFromInt(price)}
}
