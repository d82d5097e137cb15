package repository

import (
	"context"

	"umkm-invoice/internal/model"

	"gorm.io/gorm"
)

// ProductListFilter narrows and orders a product listing. SortBy accepts
// name, price or created_at; anything else sorts by created_at.
type ProductListFilter struct {
	Search   string
	SortBy   string
	SortDesc bool
	Page     int
	Limit    int
}

var productSortColumns = map[string]string{
	"name":       "name_key",
	"price":      "price",
	"created_at": "created_at",
}

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	FindByName(ctx context.Context, name string) (*model.Product, error)
	List(ctx context.Context, filter ProductListFilter) ([]model.Product, int64, error)
	CountLineItemsByName(ctx context.Context, name string) (int64, error)
	Stats(ctx context.Context) (model.ProductStats, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return GetDB(ctx, r.db).Create(product).Error
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	return GetDB(ctx, r.db).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Product{}).Error
}

func (r *productRepository) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	if err := GetDB(ctx, r.db).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByName matches case-insensitively through the normalized name key.
func (r *productRepository) FindByName(ctx context.Context, name string) (*model.Product, error) {
	var product model.Product
	if err := GetDB(ctx, r.db).Where("name_key = ?", model.NormalizeName(name)).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, filter ProductListFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	db := GetDB(ctx, r.db)
	scope := func(q *gorm.DB) *gorm.DB {
		if filter.Search != "" {
			q = q.Where("name_key LIKE ?", "%"+model.NormalizeName(filter.Search)+"%")
		}
		return q
	}

	if err := db.Model(&model.Product{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := productSortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := " ASC"
	if filter.SortDesc {
		direction = " DESC"
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := db.Scopes(scope).Order(column + direction).Order("id" + direction).
		Offset(offset).Limit(filter.Limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// CountLineItemsByName counts invoice lines whose snapshot name matches the
// product. Both sides are normalized in Go, so non-ASCII case folds too.
func (r *productRepository) CountLineItemsByName(ctx context.Context, name string) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.InvoiceItem{}).
		Where("product_key = ?", model.NormalizeName(name)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *productRepository) Stats(ctx context.Context) (model.ProductStats, error) {
	var stats model.ProductStats
	err := GetDB(ctx, r.db).Model(&model.Product{}).
		Select("COUNT(*) AS count, COALESCE(AVG(price), 0) AS average_price, COALESCE(MAX(price), 0) AS max_price, COALESCE(MIN(price), 0) AS min_price").
		Scan(&stats).Error
	return stats, err
}
