package repository

import (
	"context"

	"gorm.io/gorm"

	"ecomm/internal/errors"
	"ecomm/internal/model"
)

// ProductFilter narrows List. Empty fields do not filter.
type ProductFilter struct {
	// Name matches case-insensitively anywhere in the product name. When set,
	// results are ordered by ascending price, then id.
	Name string
	Type string
}

// ProductRepository defines product persistence operations.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	Delete(ctx context.Context, id uint) error
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return errors.StoreFailure("insert product", r.db.WithContext(ctx).Create(product).Error)
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	return errors.StoreFailure("update product", r.db.WithContext(ctx).Save(product).Error)
}

func (r *productRepository) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).Where("product_id = ?", id).First(&product).Error; err != nil {
		return nil, lookupErr(err, "product", id, "find product")
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	q := r.db.WithContext(ctx).Model(&model.Product{})
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Name != "" {
		q = q.Where(likeClause, likePattern(filter.Name)).Order("price").Order("product_id")
	} else {
		q = q.Order("product_id")
	}
	products := []model.Product{}
	if err := q.Find(&products).Error; err != nil {
		return nil, errors.StoreFailure("list products", err)
	}
	return products, nil
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("product_id = ?", id).Delete(&model.Product{})
	return deleteErr(res, "product", id, "delete product")
}
