package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"umkm-invoice/internal/model"
	"umkm-invoice/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required,max=255"`
	Price       decimal.Decimal `json:"price" swaggertype:"string"`
	Description string          `json:"description"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,max=255"`
	Price       *decimal.Decimal `json:"price" swaggertype:"string"`
	Description *string          `json:"description"`
}

// ProductListQuery filters a product listing. SortBy is name, price or
// created_at; Order is asc or desc.
type ProductListQuery struct {
	Search string `form:"search"`
	SortBy string `form:"sort_by" binding:"omitempty,oneof=name price created_at"`
	Order  string `form:"order" binding:"omitempty,oneof=asc desc"`
	Page   int    `form:"-"`
	Limit  int    `form:"-"`
}

type ProductResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Price       string    `json:"price"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProductStatsResponse struct {
	Count        int64  `json:"count"`
	AveragePrice string `json:"average_price"`
	MaxPrice     string `json:"max_price"`
	MinPrice     string `json:"min_price"`
}

// --- Interface ---

type ProductService interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (Result[ProductResponse], error)
	UpdateProduct(ctx context.Context, id uint, req UpdateProductRequest) (Result[ProductResponse], error)
	DeleteProduct(ctx context.Context, id uint) (Result[ProductResponse], error)
	GetProduct(ctx context.Context, id uint) (Result[ProductResponse], error)
	ListProducts(ctx context.Context, query ProductListQuery) ([]ProductResponse, int64, error)
	GetProductStats(ctx context.Context) (ProductStatsResponse, error)
}

// --- Implementation ---

type productService struct {
	productRepo repository.ProductRepository
	txManager   repository.TransactionManager
	effects     sideEffects
	log         *logrus.Logger
}

func NewProductService(
	productRepo repository.ProductRepository,
	activityRepo repository.ActivityRepository,
	txManager repository.TransactionManager,
	events EventPublisher,
	log *logrus.Logger,
) ProductService {
	return &productService{
		productRepo: productRepo,
		txManager:   txManager,
		effects:     newSideEffects(activityRepo, events, log),
		log:         log,
	}
}

func duplicateProduct(existing model.Product) Result[ProductResponse] {
	return Duplicate(toProductResponse(existing),
		fmt.Sprintf("Product '%s' already exists (ID: %d, price %s)", existing.Name, existing.ID, existing.Price.StringFixed(2)))
}

// CreateProduct rejects names that match an existing product regardless of
// case. The duplicate result carries the existing product so callers can
// offer to reuse it.
func (s *productService) CreateProduct(ctx context.Context, req CreateProductRequest) (Result[ProductResponse], error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(req); err != nil {
		return invalidOrError[ProductResponse](err)
	}
	if req.Price.IsNegative() {
		return Invalid[ProductResponse]("price: must be at least 0"), nil
	}

	existing, err := s.productRepo.FindByName(ctx, req.Name)
	if err == nil {
		return duplicateProduct(*existing), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Result[ProductResponse]{}, fmt.Errorf("failed to check product name: %w", err)
	}

	product := &model.Product{
		Name:        req.Name,
		Price:       req.Price,
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if existing, findErr := s.productRepo.FindByName(ctx, req.Name); findErr == nil {
				return duplicateProduct(*existing), nil
			}
		}
		return Result[ProductResponse]{}, fmt.Errorf("failed to create product: %w", err)
	}

	s.effects.record(ctx, model.ActionCreateProduct, product.ID, product.Name, req)
	s.effects.publish(EventProductCreated, toProductResponse(*product))
	return Ok(toProductResponse(*product), fmt.Sprintf("Product '%s' added", product.Name)), nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uint, req UpdateProductRequest) (Result[ProductResponse], error) {
	if err := validateStruct(req); err != nil {
		return invalidOrError[ProductResponse](err)
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound[ProductResponse](fmt.Sprintf("Product %d not found", id)), nil
	}
	if err != nil {
		return Result[ProductResponse]{}, fmt.Errorf("failed to load product: %w", err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return Invalid[ProductResponse]("name: is required"), nil
		}
		other, err := s.productRepo.FindByName(ctx, name)
		switch {
		case err == nil && other.ID != product.ID:
			return duplicateProduct(*other), nil
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return Result[ProductResponse]{}, fmt.Errorf("failed to check product name: %w", err)
		}
		product.Name = name
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return Invalid[ProductResponse]("price: must be at least 0"), nil
		}
		product.Price = *req.Price
	}
	if req.Description != nil {
		product.Description = strings.TrimSpace(*req.Description)
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if other, findErr := s.productRepo.FindByName(ctx, product.Name); findErr == nil {
				return duplicateProduct(*other), nil
			}
		}
		return Result[ProductResponse]{}, fmt.Errorf("failed to update product: %w", err)
	}

	s.effects.record(ctx, model.ActionUpdateProduct, product.ID, product.Name, req)
	return Ok(toProductResponse(*product), fmt.Sprintf("Product '%s' updated", product.Name)), nil
}

// DeleteProduct refuses while any invoice line carries the product's name.
// Lines are snapshots, so the match is by name rather than by key.
func (s *productService) DeleteProduct(ctx context.Context, id uint) (Result[ProductResponse], error) {
	var res Result[ProductResponse]
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		product, err := s.productRepo.FindByID(txCtx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			res = NotFound[ProductResponse](fmt.Sprintf("Product %d not found", id))
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to load product: %w", err)
		}

		refs, err := s.productRepo.CountLineItemsByName(txCtx, product.Name)
		if err != nil {
			return fmt.Errorf("failed to count invoice lines: %w", err)
		}
		if refs > 0 {
			res = Refused[ProductResponse](refs,
				fmt.Sprintf("Product '%s' is used by %d invoice line(s) and cannot be deleted", product.Name, refs))
			return nil
		}

		if err := s.productRepo.Delete(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		res = Ok(toProductResponse(*product), fmt.Sprintf("Product '%s' deleted", product.Name))
		return nil
	})
	if err != nil {
		return Result[ProductResponse]{}, err
	}

	if res.OK() {
		s.effects.record(ctx, model.ActionDeleteProduct, id, res.Value.Name, nil)
		s.effects.publish(EventProductDeleted, res.Value)
	}
	return res, nil
}

func (s *productService) GetProduct(ctx context.Context, id uint) (Result[ProductResponse], error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound[ProductResponse](fmt.Sprintf("Product %d not found", id)), nil
	}
	if err != nil {
		return Result[ProductResponse]{}, fmt.Errorf("failed to load product: %w", err)
	}
	return Ok(toProductResponse(*product), ""), nil
}

// ListProducts defaults to newest first.
func (s *productService) ListProducts(ctx context.Context, query ProductListQuery) ([]ProductResponse, int64, error) {
	if err := validateStruct(query); err != nil {
		return nil, 0, err
	}

	filter := repository.ProductListFilter{
		Search:   strings.TrimSpace(query.Search),
		SortBy:   query.SortBy,
		SortDesc: query.Order == "desc",
		Page:     query.Page,
		Limit:    query.Limit,
	}
	if filter.SortBy == "" {
		filter.SortBy = "created_at"
		filter.SortDesc = query.Order != "asc"
	}

	products, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	res := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		res = append(res, toProductResponse(p))
	}
	return res, total, nil
}

func (s *productService) GetProductStats(ctx context.Context) (ProductStatsResponse, error) {
	stats, err := s.productRepo.Stats(ctx)
	if err != nil {
		return ProductStatsResponse{}, fmt.Errorf("failed to compute product stats: %w", err)
	}
	return ProductStatsResponse{
		Count:        stats.Count,
		AveragePrice: stats.AveragePrice.StringFixed(2),
		MaxPrice:     stats.MaxPrice.StringFixed(2),
		MinPrice:     stats.MinPrice.StringFixed(2),
	}, nil
}

// --- Response mappers ---

func toProductResponse(p model.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price.StringFixed(2),
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
