package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"umkm-invoice/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DraftLine is a line being composed, not yet priced or stored.
type DraftLine struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// InvoiceDraft accumulates the header and lines of an invoice before it is
// submitted. A successful submit consumes the draft; a failed one leaves it
// untouched.
type InvoiceDraft struct {
	ID         uuid.UUID
	CustomerID uint
	IssueDate  string
	DueDate    string
	TaxRate    *decimal.Decimal
	Status     string
	Notes      string
	Lines      []DraftLine
	CreatedAt  time.Time
}

func NewInvoiceDraft() *InvoiceDraft {
	return &InvoiceDraft{ID: uuid.New(), CreatedAt: time.Now()}
}

// AddLine appends a line after checking it the same way the calculator will.
func (d *InvoiceDraft) AddLine(line DraftLine) error {
	line.ProductName = strings.TrimSpace(line.ProductName)
	switch {
	case line.ProductName == "":
		return newValidationError("product_name", "is required")
	case line.Quantity < 1:
		return newValidationError("quantity", "must be at least 1")
	case line.UnitPrice.IsNegative():
		return newValidationError("unit_price", "must be at least 0")
	}
	d.Lines = append(d.Lines, line)
	return nil
}

func (d *InvoiceDraft) RemoveLine(index int) error {
	if index < 0 || index >= len(d.Lines) {
		return newValidationError("index", "line %d does not exist", index)
	}
	d.Lines = append(d.Lines[:index], d.Lines[index+1:]...)
	return nil
}

func (d *InvoiceDraft) Line(index int) (DraftLine, error) {
	if index < 0 || index >= len(d.Lines) {
		return DraftLine{}, newValidationError("index", "line %d does not exist", index)
	}
	return d.Lines[index], nil
}

// Preview prices the current lines. An empty draft totals zero.
func (d *InvoiceDraft) Preview(taxRate decimal.Decimal) (Totals, error) {
	if len(d.Lines) == 0 {
		return Totals{LineTotals: []decimal.Decimal{}, Subtotal: decimal.Zero, TaxAmount: decimal.Zero, Total: decimal.Zero}, nil
	}
	return CalculateTotals(d.lineInputs(), taxRate)
}

// Clear drops every line and keeps the header.
func (d *InvoiceDraft) Clear() {
	d.Lines = nil
}

func (d *InvoiceDraft) lineInputs() []LineInput {
	lines := make([]LineInput, 0, len(d.Lines))
	for _, l := range d.Lines {
		lines = append(lines, LineInput(l))
	}
	return lines
}

// Request converts the draft into an invoice creation request.
func (d *InvoiceDraft) Request() CreateInvoiceRequest {
	req := CreateInvoiceRequest{
		CustomerID: d.CustomerID,
		IssueDate:  d.IssueDate,
		DueDate:    d.DueDate,
		TaxRate:    d.TaxRate,
		Status:     d.Status,
		Notes:      d.Notes,
		Items:      make([]InvoiceLineRequest, 0, len(d.Lines)),
	}
	for _, l := range d.Lines {
		req.Items = append(req.Items, InvoiceLineRequest{
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		})
	}
	return req
}

func (d *InvoiceDraft) clone() *InvoiceDraft {
	c := *d
	c.Lines = append([]DraftLine(nil), d.Lines...)
	return &c
}

// DraftStore keeps drafts in memory, keyed by id. Drafts do not survive a
// restart.
type DraftStore struct {
	mu     sync.Mutex
	drafts map[uuid.UUID]*InvoiceDraft
}

func NewDraftStore() *DraftStore {
	return &DraftStore{drafts: make(map[uuid.UUID]*InvoiceDraft)}
}

func (s *DraftStore) Put(d *InvoiceDraft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[d.ID] = d.clone()
}

// Get returns a copy of the draft.
func (s *DraftStore) Get(id uuid.UUID) (*InvoiceDraft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return nil, false
	}
	return d.clone(), true
}

// Update applies fn to the stored draft under the store lock. The draft is
// replaced only when fn succeeds.
func (s *DraftStore) Update(id uuid.UUID, fn func(*InvoiceDraft) error) (*InvoiceDraft, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return nil, false, nil
	}
	work := d.clone()
	if err := fn(work); err != nil {
		return nil, true, err
	}
	s.drafts[id] = work
	return work.clone(), true, nil
}

// Take removes the draft and hands it to the caller. While taken, the draft
// is invisible to every other operation; the caller puts it back with Put
// when it should survive.
func (s *DraftStore) Take(id uuid.UUID) (*InvoiceDraft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if ok {
		delete(s.drafts, id)
	}
	return d, ok
}

func (s *DraftStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}

// --- DTOs ---

type CreateDraftRequest struct {
	CustomerID uint             `json:"customer_id"`
	IssueDate  string           `json:"issue_date"`
	DueDate    string           `json:"due_date"`
	TaxRate    *decimal.Decimal `json:"tax_rate" swaggertype:"string"`
	Status     string           `json:"status" binding:"omitempty,oneof=Draft Sent Paid"`
	Notes      string           `json:"notes"`
}

type SaveLineAsProductRequest struct {
	Description string `json:"description"`
}

type DraftLineResponse struct {
	Index       int    `json:"index"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	TotalPrice  string `json:"total_price"`
}

type DraftResponse struct {
	ID         string              `json:"id"`
	CustomerID uint                `json:"customer_id"`
	IssueDate  string              `json:"issue_date"`
	DueDate    string              `json:"due_date"`
	TaxRate    string              `json:"tax_rate"`
	Status     string              `json:"status"`
	Notes      string              `json:"notes"`
	Lines      []DraftLineResponse `json:"lines"`
	Subtotal   string              `json:"subtotal"`
	TaxAmount  string              `json:"tax_amount"`
	Total      string              `json:"total"`
	CreatedAt  time.Time           `json:"created_at"`
}

// --- Interface ---

type DraftService interface {
	CreateDraft(ctx context.Context, req CreateDraftRequest) (Result[DraftResponse], error)
	GetDraft(ctx context.Context, id string) (Result[DraftResponse], error)
	DiscardDraft(ctx context.Context, id string) (Result[DraftResponse], error)
	AddLine(ctx context.Context, id string, req InvoiceLineRequest) (Result[DraftResponse], error)
	RemoveLine(ctx context.Context, id string, index int) (Result[DraftResponse], error)
	ClearLines(ctx context.Context, id string) (Result[DraftResponse], error)
	SaveLineAsProduct(ctx context.Context, id string, index int, req SaveLineAsProductRequest) (Result[ProductResponse], error)
	SubmitDraft(ctx context.Context, id string) (Result[InvoiceResponse], error)
}

// --- Implementation ---

type draftService struct {
	store          *DraftStore
	invoiceService InvoiceService
	productService ProductService
	settingsRepo   repository.SettingsRepository
}

func NewDraftService(
	store *DraftStore,
	invoiceService InvoiceService,
	productService ProductService,
	settingsRepo repository.SettingsRepository,
) DraftService {
	return &draftService{
		store:          store,
		invoiceService: invoiceService,
		productService: productService,
		settingsRepo:   settingsRepo,
	}
}

func draftNotFound[T any](id string) Result[T] {
	return NotFound[T](fmt.Sprintf("Draft %s not found", id))
}

func (s *draftService) CreateDraft(ctx context.Context, req CreateDraftRequest) (Result[DraftResponse], error) {
	if err := validateStruct(req); err != nil {
		return invalidOrError[DraftResponse](err)
	}
	for field, value := range map[string]string{"issue_date": req.IssueDate, "due_date": req.DueDate} {
		if _, err := parseDate(field, value); err != nil {
			return invalidOrError[DraftResponse](err)
		}
	}
	if req.TaxRate != nil && (req.TaxRate.IsNegative() || req.TaxRate.GreaterThan(maxTaxRate)) {
		return Invalid[DraftResponse]("tax_rate: must be between 0 and 1"), nil
	}

	draft := NewInvoiceDraft()
	draft.CustomerID = req.CustomerID
	draft.IssueDate = strings.TrimSpace(req.IssueDate)
	draft.DueDate = strings.TrimSpace(req.DueDate)
	draft.TaxRate = req.TaxRate
	draft.Status = req.Status
	draft.Notes = req.Notes
	s.store.Put(draft)

	return s.respond(ctx, draft, "Draft created")
}

func (s *draftService) GetDraft(ctx context.Context, id string) (Result[DraftResponse], error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return draftNotFound[DraftResponse](id), nil
	}
	draft, ok := s.store.Get(uid)
	if !ok {
		return draftNotFound[DraftResponse](id), nil
	}
	return s.respond(ctx, draft, "")
}

func (s *draftService) DiscardDraft(ctx context.Context, id string) (Result[DraftResponse], error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return draftNotFound[DraftResponse](id), nil
	}
	draft, ok := s.store.Take(uid)
	if !ok {
		return draftNotFound[DraftResponse](id), nil
	}
	return s.respond(ctx, draft, "Draft discarded")
}

func (s *draftService) AddLine(ctx context.Context, id string, req InvoiceLineRequest) (Result[DraftResponse], error) {
	return s.update(ctx, id, "Line added", func(d *InvoiceDraft) error {
		return d.AddLine(DraftLine{ProductName: req.ProductName, Quantity: req.Quantity, UnitPrice: req.UnitPrice})
	})
}

func (s *draftService) RemoveLine(ctx context.Context, id string, index int) (Result[DraftResponse], error) {
	return s.update(ctx, id, "Line removed", func(d *InvoiceDraft) error {
		return d.RemoveLine(index)
	})
}

// ClearLines drops every line and keeps the header.
func (s *draftService) ClearLines(ctx context.Context, id string) (Result[DraftResponse], error) {
	return s.update(ctx, id, "Lines cleared", func(d *InvoiceDraft) error {
		d.Clear()
		return nil
	})
}

// SaveLineAsProduct adds a draft line to the catalog. A name already in the
// catalog comes back as a duplicate carrying the existing product.
func (s *draftService) SaveLineAsProduct(ctx context.Context, id string, index int, req SaveLineAsProductRequest) (Result[ProductResponse], error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return draftNotFound[ProductResponse](id), nil
	}
	draft, ok := s.store.Get(uid)
	if !ok {
		return draftNotFound[ProductResponse](id), nil
	}
	line, err := draft.Line(index)
	if err != nil {
		return invalidOrError[ProductResponse](err)
	}
	return s.productService.CreateProduct(ctx, CreateProductRequest{
		Name:        line.ProductName,
		Price:       line.UnitPrice,
		Description: req.Description,
	})
}

// SubmitDraft creates the invoice from the draft. The draft is taken out of
// the store for the duration, so overlapping submits of one draft cannot
// both create an invoice. Any non-OK outcome puts the draft back unchanged.
func (s *draftService) SubmitDraft(ctx context.Context, id string) (Result[InvoiceResponse], error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return draftNotFound[InvoiceResponse](id), nil
	}
	draft, ok := s.store.Take(uid)
	if !ok {
		return draftNotFound[InvoiceResponse](id), nil
	}
	if len(draft.Lines) == 0 {
		s.store.Put(draft)
		return Invalid[InvoiceResponse]("items: must contain at least 1 item(s)"), nil
	}

	res, err := s.invoiceService.CreateInvoice(ctx, draft.Request())
	if err != nil || !res.OK() {
		s.store.Put(draft)
		return res, err
	}
	draft.Clear()
	return res, nil
}

func (s *draftService) update(ctx context.Context, id, message string, fn func(*InvoiceDraft) error) (Result[DraftResponse], error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return draftNotFound[DraftResponse](id), nil
	}
	draft, ok, err := s.store.Update(uid, fn)
	if !ok {
		return draftNotFound[DraftResponse](id), nil
	}
	if err != nil {
		return invalidOrError[DraftResponse](err)
	}
	return s.respond(ctx, draft, message)
}

// respond prices the draft with its own tax rate, or the company default
// when none was chosen.
func (s *draftService) respond(ctx context.Context, d *InvoiceDraft, message string) (Result[DraftResponse], error) {
	var rate decimal.Decimal
	if d.TaxRate != nil {
		rate = *d.TaxRate
	} else {
		settings, err := loadSettings(ctx, s.settingsRepo)
		if err != nil {
			return Result[DraftResponse]{}, err
		}
		rate = settings.DefaultTaxRate
	}

	totals, err := d.Preview(rate)
	if err != nil {
		return invalidOrError[DraftResponse](err)
	}

	res := DraftResponse{
		ID:         d.ID.String(),
		CustomerID: d.CustomerID,
		IssueDate:  d.IssueDate,
		DueDate:    d.DueDate,
		TaxRate:    rate.String(),
		Status:     d.Status,
		Notes:      d.Notes,
		Lines:      make([]DraftLineResponse, 0, len(d.Lines)),
		Subtotal:   totals.Subtotal.StringFixed(2),
		TaxAmount:  totals.TaxAmount.StringFixed(2),
		Total:      totals.Total.StringFixed(2),
		CreatedAt:  d.CreatedAt,
	}
	for i, l := range d.Lines {
		res.Lines = append(res.Lines, DraftLineResponse{
			Index:       i,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice.StringFixed(2),
			TotalPrice:  totals.LineTotals[i].StringFixed(2),
		})
	}
	return Ok(res, message), nil
}
