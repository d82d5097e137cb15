package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"umkm-invoice/internal/model"
	"umkm-invoice/internal/render"
	"umkm-invoice/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DefaultInvoiceNumberRetries bounds how often CreateInvoice retries after
// losing an invoice number to a concurrent insert.
const DefaultInvoiceNumberRetries = 5

// --- DTOs ---

type InvoiceLineRequest struct {
	ProductName string          `json:"product_name" binding:"required,max=255"`
	Quantity    int             `json:"quantity" binding:"min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price" swaggertype:"string"`
}

type CreateInvoiceRequest struct {
	CustomerID uint                 `json:"customer_id" binding:"required"`
	IssueDate  string               `json:"issue_date"` // YYYY-MM-DD, defaults to today
	DueDate    string               `json:"due_date"`   // YYYY-MM-DD, defaults to issue date + default due days
	TaxRate    *decimal.Decimal     `json:"tax_rate" swaggertype:"string"`
	Status     string               `json:"status" binding:"omitempty,oneof=Draft Sent Paid"`
	Notes      string               `json:"notes"`
	Items      []InvoiceLineRequest `json:"items" binding:"required,min=1,dive"`
}

type InvoiceListQuery struct {
	Status        string `form:"status" binding:"omitempty,oneof=Draft Sent Paid"`
	InvoiceNumber string `form:"invoice_number"`
	Page          int    `form:"-"`
	Limit         int    `form:"-"`
}

type InvoiceItemResponse struct {
	ID          uint   `json:"id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	TotalPrice  string `json:"total_price"`
}

type InvoiceCustomerResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type InvoiceResponse struct {
	ID            uint                     `json:"id"`
	InvoiceNumber string                   `json:"invoice_number"`
	CustomerID    uint                     `json:"customer_id"`
	CustomerName  string                   `json:"customer_name"`
	Customer      *InvoiceCustomerResponse `json:"customer,omitempty"`
	IssueDate     string                   `json:"issue_date"`
	DueDate       string                   `json:"due_date"`
	Subtotal      string                   `json:"subtotal"`
	TaxRate       string                   `json:"tax_rate"`
	TaxAmount     string                   `json:"tax_amount"`
	Total         string                   `json:"total"`
	Status        string                   `json:"status"`
	Notes         string                   `json:"notes"`
	Items         []InvoiceItemResponse    `json:"items,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
}

// --- Interface ---

type InvoiceService interface {
	CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (Result[InvoiceResponse], error)
	GetInvoice(ctx context.Context, id uint) (Result[InvoiceResponse], error)
	ListInvoices(ctx context.Context, query InvoiceListQuery) ([]InvoiceResponse, int64, error)
	RenderInvoice(ctx context.Context, id uint, template string) (Result[Download], error)
}

// --- Implementation ---

type invoiceService struct {
	invoiceRepo   repository.InvoiceRepository
	customerRepo  repository.CustomerRepository
	settingsRepo  repository.SettingsRepository
	txManager     repository.TransactionManager
	renderer      render.Renderer
	effects       sideEffects
	log           *logrus.Logger
	numberRetries int
	now           func() time.Time
}

func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	settingsRepo repository.SettingsRepository,
	activityRepo repository.ActivityRepository,
	txManager repository.TransactionManager,
	renderer render.Renderer,
	events EventPublisher,
	log *logrus.Logger,
	numberRetries int,
) InvoiceService {
	if numberRetries < 1 {
		numberRetries = DefaultInvoiceNumberRetries
	}
	return &invoiceService{
		invoiceRepo:   invoiceRepo,
		customerRepo:  customerRepo,
		settingsRepo:  settingsRepo,
		txManager:     txManager,
		renderer:      renderer,
		effects:       newSideEffects(activityRepo, events, log),
		log:           log,
		numberRetries: numberRetries,
		now:           time.Now,
	}
}

// CreateInvoice prices the lines and stores the invoice with all of its
// items in one transaction. The number is allocated inside that same
// transaction; a unique-key conflict on it rolls everything back and the
// attempt is repeated with a fresh number.
func (s *invoiceService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (Result[InvoiceResponse], error) {
	if err := validateStruct(req); err != nil {
		return invalidOrError[InvoiceResponse](err)
	}

	issueDate, err := parseDate("issue_date", req.IssueDate)
	if err != nil {
		return invalidOrError[InvoiceResponse](err)
	}
	dueDate, err := parseDate("due_date", req.DueDate)
	if err != nil {
		return invalidOrError[InvoiceResponse](err)
	}

	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound[InvoiceResponse](fmt.Sprintf("Customer %d not found", req.CustomerID)), nil
	}
	if err != nil {
		return Result[InvoiceResponse]{}, fmt.Errorf("failed to load customer: %w", err)
	}

	settings, err := loadSettings(ctx, s.settingsRepo)
	if err != nil {
		return Result[InvoiceResponse]{}, err
	}

	now := s.now()
	if issueDate == nil {
		today := calendarDate(now)
		issueDate = &today
	}
	if dueDate == nil {
		due := issueDate.AddDate(0, 0, settings.DefaultDueDays)
		dueDate = &due
	}
	if dueDate.Before(*issueDate) {
		return Invalid[InvoiceResponse]("due_date: must not be before issue_date"), nil
	}

	taxRate := settings.DefaultTaxRate
	if req.TaxRate != nil {
		taxRate = *req.TaxRate
	}
	status := req.Status
	if status == "" {
		status = model.InvoiceStatusDraft
	}

	lines := make([]LineInput, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, LineInput{
			ProductName: strings.TrimSpace(item.ProductName),
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	totals, err := CalculateTotals(lines, taxRate)
	if err != nil {
		return invalidOrError[InvoiceResponse](err)
	}

	invoice := &model.Invoice{
		CustomerID: customer.ID,
		IssueDate:  *issueDate,
		DueDate:    *dueDate,
		Subtotal:   totals.Subtotal,
		TaxRate:    taxRate,
		TaxAmount:  totals.TaxAmount,
		Total:      totals.Total,
		Status:     status,
		Notes:      strings.TrimSpace(req.Notes),
	}

	prefix := invoicePrefix(now)
	for attempt := 1; ; attempt++ {
		invoice.ID = 0
		invoice.Items = make([]model.InvoiceItem, 0, len(lines))
		for i, line := range lines {
			invoice.Items = append(invoice.Items, model.InvoiceItem{
				ProductName: line.ProductName,
				Quantity:    line.Quantity,
				UnitPrice:   line.UnitPrice,
				TotalPrice:  totals.LineTotals[i],
			})
		}

		err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
			last, err := s.invoiceRepo.LastNumberWithPrefix(txCtx, prefix)
			if err != nil {
				return fmt.Errorf("failed to read last invoice number: %w", err)
			}
			number, err := nextInvoiceNumber(prefix, last)
			if err != nil {
				return err
			}
			invoice.InvoiceNumber = number
			return s.invoiceRepo.Create(txCtx, invoice)
		})
		if err == nil {
			break
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) && attempt < s.numberRetries {
			s.log.WithFields(logrus.Fields{
				"invoice_number": invoice.InvoiceNumber,
				"attempt":        attempt,
			}).Warn("invoice number taken, retrying")
			continue
		}
		return Result[InvoiceResponse]{}, fmt.Errorf("failed to create invoice: %w", err)
	}

	invoice.Customer = customer
	res := toInvoiceResponse(*invoice)
	s.effects.record(ctx, model.ActionCreateInvoice, invoice.ID, invoice.InvoiceNumber, map[string]interface{}{
		"customer_id": invoice.CustomerID,
		"items":       len(invoice.Items),
		"total":       invoice.Total.StringFixed(2),
	})
	s.effects.publish(EventInvoiceCreated, res)
	return Ok(res, fmt.Sprintf("Invoice %s created", invoice.InvoiceNumber)), nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id uint) (Result[InvoiceResponse], error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound[InvoiceResponse](fmt.Sprintf("Invoice %d not found", id)), nil
	}
	if err != nil {
		return Result[InvoiceResponse]{}, fmt.Errorf("failed to load invoice: %w", err)
	}
	return Ok(toInvoiceResponse(*invoice), ""), nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, query InvoiceListQuery) ([]InvoiceResponse, int64, error) {
	if err := validateStruct(query); err != nil {
		return nil, 0, err
	}

	invoices, total, err := s.invoiceRepo.List(ctx, repository.InvoiceListFilter{
		Status:        query.Status,
		InvoiceNumber: strings.TrimSpace(query.InvoiceNumber),
		Page:          query.Page,
		Limit:         query.Limit,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch invoices: %w", err)
	}

	res := make([]InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		r := toInvoiceResponse(inv)
		r.Customer = nil
		res = append(res, r)
	}
	return res, total, nil
}

// RenderInvoice draws a stored invoice as PDF. A blank template uses the
// one saved in company settings; unknown keys render as classic.
func (s *invoiceService) RenderInvoice(ctx context.Context, id uint, template string) (Result[Download], error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound[Download](fmt.Sprintf("Invoice %d not found", id)), nil
	}
	if err != nil {
		return Result[Download]{}, fmt.Errorf("failed to load invoice: %w", err)
	}

	settings, err := loadSettings(ctx, s.settingsRepo)
	if err != nil {
		return Result[Download]{}, err
	}
	if strings.TrimSpace(template) == "" {
		template = settings.InvoiceTemplate
	}

	content, err := s.renderer.Render(toRenderInput(*invoice, *settings, template))
	if err != nil {
		return Result[Download]{}, fmt.Errorf("failed to render invoice %s: %w", invoice.InvoiceNumber, err)
	}

	return Ok(Download{
		Filename:    invoice.InvoiceNumber + ".pdf",
		ContentType: "application/pdf",
		Content:     content,
	}, ""), nil
}

// --- Helpers ---

func invoicePrefix(t time.Time) string {
	return "INV-" + t.Format("20060102") + "-"
}

// nextInvoiceNumber returns the number following last within prefix.
func nextInvoiceNumber(prefix, last string) (string, error) {
	seq := 0
	if last != "" {
		n, err := strconv.Atoi(strings.TrimPrefix(last, prefix))
		if err != nil {
			return "", fmt.Errorf("malformed invoice number %q: %w", last, err)
		}
		seq = n
	}
	return fmt.Sprintf("%s%05d", prefix, seq+1), nil
}

func toRenderInput(inv model.Invoice, settings model.CompanySettings, template string) render.Input {
	in := render.Input{
		Template: template,
		Company: render.CompanyInfo{
			Name:    settings.Name,
			Address: settings.Address,
			Phone:   settings.Phone,
			Email:   settings.Email,
			Website: settings.Website,
			NPWP:    settings.NPWP,
		},
		Invoice: render.InvoiceInfo{
			Number:    inv.InvoiceNumber,
			IssueDate: inv.IssueDate,
			DueDate:   inv.DueDate,
			Status:    inv.Status,
			Subtotal:  inv.Subtotal,
			TaxRate:   inv.TaxRate,
			TaxAmount: inv.TaxAmount,
			Total:     inv.Total,
			Notes:     inv.Notes,
		},
	}
	if inv.Customer != nil {
		in.Customer = render.CustomerInfo{
			Name:    inv.Customer.Name,
			Address: inv.Customer.Address,
			Phone:   inv.Customer.Phone,
			Email:   inv.Customer.Email,
		}
	}
	for _, item := range inv.Items {
		in.Items = append(in.Items, render.ItemInfo{
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.TotalPrice,
		})
	}
	return in
}

// --- Response mappers ---

func toInvoiceResponse(inv model.Invoice) InvoiceResponse {
	res := InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerID:    inv.CustomerID,
		IssueDate:     inv.IssueDate.Format(DateLayout),
		DueDate:       inv.DueDate.Format(DateLayout),
		Subtotal:      inv.Subtotal.StringFixed(2),
		TaxRate:       inv.TaxRate.String(),
		TaxAmount:     inv.TaxAmount.StringFixed(2),
		Total:         inv.Total.StringFixed(2),
		Status:        inv.Status,
		Notes:         inv.Notes,
		CreatedAt:     inv.CreatedAt,
	}
	if inv.Customer != nil {
		res.CustomerName = inv.Customer.Name
		res.Customer = &InvoiceCustomerResponse{
			ID:      inv.Customer.ID,
			Name:    inv.Customer.Name,
			Email:   inv.Customer.Email,
			Phone:   inv.Customer.Phone,
			Address: inv.Customer.Address,
		}
	}
	for _, item := range inv.Items {
		res.Items = append(res.Items, InvoiceItemResponse{
			ID:          item.ID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			TotalPrice:  item.TotalPrice.StringFixed(2),
		})
	}
	return res
}
