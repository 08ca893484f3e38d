package repository

import (
	"context"

	"gorm.io/gorm"

	"ecomm/internal/errors"
	"ecomm/internal/model"
)

// CustomerFilter narrows List. Empty fields do not filter.
type CustomerFilter struct {
	// Name matches case-insensitively anywhere in the customer name.
	Name  string
	Email string
}

// CustomerRepository defines customer persistence operations.
type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) error
	Update(ctx context.Context, customer *model.Customer) error
	FindByID(ctx context.Context, id uint) (*model.Customer, error)
	List(ctx context.Context, filter CustomerFilter) ([]model.Customer, error)
	Delete(ctx context.Context, id uint) error
}

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository.
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	return errors.StoreFailure("insert customer", r.db.WithContext(ctx).Create(customer).Error)
}

func (r *customerRepository) Update(ctx context.Context, customer *model.Customer) error {
	return errors.StoreFailure("update customer", r.db.WithContext(ctx).Save(customer).Error)
}

func (r *customerRepository) FindByID(ctx context.Context, id uint) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.WithContext(ctx).Where("customer_id = ?", id).First(&customer).Error; err != nil {
		return nil, lookupErr(err, "customer", id, "find customer")
	}
	return &customer, nil
}

func (r *customerRepository) List(ctx context.Context, filter CustomerFilter) ([]model.Customer, error) {
	q := r.db.WithContext(ctx).Model(&model.Customer{})
	if filter.Name != "" {
		q = q.Where(likeClause, likePattern(filter.Name))
	}
	if filter.Email != "" {
		q = q.Where("email = ?", filter.Email)
	}
	customers := []model.Customer{}
	if err := q.Order("customer_id").Find(&customers).Error; err != nil {
		return nil, errors.StoreFailure("list customers", err)
	}
	return customers, nil
}

func (r *customerRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("customer_id = ?", id).Delete(&model.Customer{})
	return deleteErr(res, "customer", id, "delete customer")
}
