package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ecomm/internal/errors"
	"ecomm/internal/model"
)

// AssociationRepository owns the order_product rows linking orders to products.
type AssociationRepository interface {
	// Attach links the product to the order. Attaching an existing pair is a no-op.
	Attach(ctx context.Context, orderID, productID uint) error
	Detach(ctx context.Context, orderID, productID uint) error
	DetachAll(ctx context.Context, orderID uint) error
	IsReferenced(ctx context.Context, productID uint) (bool, error)
	// ListProducts returns the product ids of the order, ascending.
	ListProducts(ctx context.Context, orderID uint) ([]uint, error)
	// ListProductsForOrders returns ascending product ids keyed by order id.
	ListProductsForOrders(ctx context.Context, orderIDs []uint) (map[uint][]uint, error)
}

type associationRepository struct {
	db *gorm.DB
}

// NewAssociationRepository creates a new association repository.
func NewAssociationRepository(db *gorm.DB) AssociationRepository {
	return &associationRepository{db: db}
}

func (r *associationRepository) exists(ctx context.Context, m interface{}, column string, id uint) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(m).Where(column+" = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *associationRepository) Attach(ctx context.Context, orderID, productID uint) error {
	ok, err := r.exists(ctx, &model.Order{}, "order_id", orderID)
	if err != nil {
		return errors.StoreFailure("check order", err)
	}
	if !ok {
		return errors.NotFound("order", orderID)
	}
	if ok, err = r.exists(ctx, &model.Product{}, "product_id", productID); err != nil {
		return errors.StoreFailure("check product", err)
	}
	if !ok {
		return errors.NotFound("product", productID)
	}

	row := model.OrderProduct{OrderID: orderID, ProductID: productID}
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(&row).Error
	return errors.StoreFailure("attach product", err)
}

func (r *associationRepository) Detach(ctx context.Context, orderID, productID uint) error {
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND product_id = ?", orderID, productID).
		Delete(&model.OrderProduct{}).Error
	return errors.StoreFailure("detach product", err)
}

func (r *associationRepository) DetachAll(ctx context.Context, orderID uint) error {
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Delete(&model.OrderProduct{}).Error
	return errors.StoreFailure("detach products", err)
}

func (r *associationRepository) IsReferenced(ctx context.Context, productID uint) (bool, error) {
	ok, err := r.exists(ctx, &model.OrderProduct{}, "product_id", productID)
	if err != nil {
		return false, errors.StoreFailure("check product references", err)
	}
	return ok, nil
}

func (r *associationRepository) ListProducts(ctx context.Context, orderID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.WithContext(ctx).Model(&model.OrderProduct{}).
		Where("order_id = ?", orderID).
		Order("product_id").
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, errors.StoreFailure("list order products", err)
	}
	return ids, nil
}

func (r *associationRepository) ListProductsForOrders(ctx context.Context, orderIDs []uint) (map[uint][]uint, error) {
	out := make(map[uint][]uint, len(orderIDs))
	if len(orderIDs) == 0 {
		return out, nil
	}
	var rows []model.OrderProduct
	err := r.db.WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Order("order_id").Order("product_id").
		Find(&rows).Error
	if err != nil {
		return nil, errors.StoreFailure("list order products", err)
	}
	for _, row := range rows {
		out[row.OrderID] = append(out[row.OrderID], row.ProductID)
	}
	return out, nil
}
