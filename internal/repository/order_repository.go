package repository

import (
	"context"

	"gorm.io/gorm"

	"ecomm/internal/errors"
	"ecomm/internal/model"
)

// OrderFilter narrows List. A zero CustomerID does not filter.
type OrderFilter struct {
	CustomerID uint
}

// OrderRepository persists order rows. The product set lives in the
// association table and is owned by AssociationRepository.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	Update(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, id uint) (*model.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]model.Order, error)
	Delete(ctx context.Context, id uint) error
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return errors.StoreFailure("insert order", r.db.WithContext(ctx).Create(order).Error)
}

func (r *orderRepository) Update(ctx context.Context, order *model.Order) error {
	return errors.StoreFailure("update order", r.db.WithContext(ctx).Save(order).Error)
}

func (r *orderRepository) FindByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).Where("order_id = ?", id).First(&order).Error; err != nil {
		return nil, lookupErr(err, "order", id, "find order")
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, filter OrderFilter) ([]model.Order, error) {
	q := r.db.WithContext(ctx).Model(&model.Order{})
	if filter.CustomerID != 0 {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}
	orders := []model.Order{}
	if err := q.Order("order_id").Find(&orders).Error; err != nil {
		return nil, errors.StoreFailure("list orders", err)
	}
	return orders, nil
}

func (r *orderRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("order_id = ?", id).Delete(&model.Order{})
	return deleteErr(res, "order", id, "delete order")
}
