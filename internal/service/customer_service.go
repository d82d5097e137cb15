package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"umkm-invoice/internal/model"
	"umkm-invoice/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Email   string `json:"email" binding:"max=255"`
	Phone   string `json:"phone" binding:"max=50"`
	Address string `json:"address"`
}

type UpdateCustomerRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=255"`
	Email   *string `json:"email" binding:"omitempty,max=255"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Address *string `json:"address"`
}

type CustomerResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// --- Interface ---

type CustomerService interface {
	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (Result[CustomerResponse], error)
	UpdateCustomer(ctx context.Context, id uint, req UpdateCustomerRequest) (Result[CustomerResponse], error)
	DeleteCustomer(ctx context.Context, id uint) (Result[CustomerResponse], error)
	GetCustomer(ctx context.Context, id uint) (Result[CustomerResponse], error)
	ListCustomers(ctx context.Context, search string, page, limit int) ([]CustomerResponse, int64, error)
}

// --- Implementation ---

type customerService struct {
	customerRepo repository.CustomerRepository
	txManager    repository.TransactionManager
	effects      sideEffects
	log          *logrus.Logger
}

func NewCustomerService(
	customerRepo repository.CustomerRepository,
	activityRepo repository.ActivityRepository,
	txManager repository.TransactionManager,
	events EventPublisher,
	log *logrus.Logger,
) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		txManager:    txManager,
		effects:      newSideEffects(activityRepo, events, log),
		log:          log,
	}
}

func validateEmail(field, email string) error {
	if email == "" {
		return nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return newValidationError(field, "must be a valid email address")
	}
	return nil
}

func (s *customerService) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (Result[CustomerResponse], error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := validateStruct(req); err != nil {
		return invalidOrError[CustomerResponse](err)
	}
	if err := validateEmail("email", req.Email); err != nil {
		return invalidOrError[CustomerResponse](err)
	}

	customer := &model.Customer{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   strings.TrimSpace(req.Phone),
		Address: strings.TrimSpace(req.Address),
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return Result[CustomerResponse]{}, fmt.Errorf("failed to create customer: %w", err)
	}

	s.effects.record(ctx, model.ActionCreateCustomer, customer.ID, customer.Name, req)
	s.effects.publish(EventCustomerCreated, toCustomerResponse(*customer))
	return Ok(toCustomerResponse(*customer), fmt.Sprintf("Customer '%s' added", customer.Name)), nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, id uint, req UpdateCustomerRequest) (Result[CustomerResponse], error) {
	if err := validateStruct(req); err != nil {
		return invalidOrError[CustomerResponse](err)
	}

	customer, err := s.customerRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound[CustomerResponse](fmt.Sprintf("Customer %d not found", id)), nil
	}
	if err != nil {
		return Result[CustomerResponse]{}, fmt.Errorf("failed to load customer: %w", err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return Invalid[CustomerResponse]("name: is required"), nil
		}
		customer.Name = name
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if err := validateEmail("email", email); err != nil {
			return invalidOrError[CustomerResponse](err)
		}
		customer.Email = email
	}
	if req.Phone != nil {
		customer.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		customer.Address = strings.TrimSpace(*req.Address)
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return Result[CustomerResponse]{}, fmt.Errorf("failed to update customer: %w", err)
	}

	s.effects.record(ctx, model.ActionUpdateCustomer, customer.ID, customer.Name, req)
	return Ok(toCustomerResponse(*customer), fmt.Sprintf("Customer '%s' updated", customer.Name)), nil
}

// DeleteCustomer refuses while any invoice still references the customer.
// The reference check and the delete share one transaction.
func (s *customerService) DeleteCustomer(ctx context.Context, id uint) (Result[CustomerResponse], error) {
	var res Result[CustomerResponse]
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		customer, err := s.customerRepo.FindByID(txCtx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			res = NotFound[CustomerResponse](fmt.Sprintf("Customer %d not found", id))
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to load customer: %w", err)
		}

		refs, err := s.customerRepo.CountInvoices(txCtx, id)
		if err != nil {
			return fmt.Errorf("failed to count invoices: %w", err)
		}
		if refs > 0 {
			res = Refused[CustomerResponse](refs,
				fmt.Sprintf("Customer '%s' is used by %d invoice(s) and cannot be deleted", customer.Name, refs))
			return nil
		}

		if err := s.customerRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				res = Refused[CustomerResponse](1, fmt.Sprintf("Customer '%s' is still referenced", customer.Name))
				return nil
			}
			return fmt.Errorf("failed to delete customer: %w", err)
		}
		res = Ok(toCustomerResponse(*customer), fmt.Sprintf("Customer '%s' deleted", customer.Name))
		return nil
	})
	if err != nil {
		return Result[CustomerResponse]{}, err
	}

	if res.OK() {
		s.effects.record(ctx, model.ActionDeleteCustomer, id, res.Value.Name, nil)
	}
	return res, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id uint) (Result[CustomerResponse], error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound[CustomerResponse](fmt.Sprintf("Customer %d not found", id)), nil
	}
	if err != nil {
		return Result[CustomerResponse]{}, fmt.Errorf("failed to load customer: %w", err)
	}
	return Ok(toCustomerResponse(*customer), ""), nil
}

func (s *customerService) ListCustomers(ctx context.Context, search string, page, limit int) ([]CustomerResponse, int64, error) {
	customers, total, err := s.customerRepo.List(ctx, strings.TrimSpace(search), page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch customers: %w", err)
	}

	res := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		res = append(res, toCustomerResponse(c))
	}
	return res, total, nil
}

// --- Response mappers ---

func toCustomerResponse(c model.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
