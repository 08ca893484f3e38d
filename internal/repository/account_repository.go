package repository

import (
	"context"

	"gorm.io/gorm"

	"ecomm/internal/errors"
	"ecomm/internal/model"
)

// AccountFilter narrows List. Zero values do not filter.
type AccountFilter struct {
	CustomerID uint
	Username   string
	Email      string
}

// AccountRepository defines account persistence operations.
type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	Update(ctx context.Context, account *model.Account) error
	FindByID(ctx context.Context, id uint) (*model.Account, error)
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
	List(ctx context.Context, filter AccountFilter) ([]model.Account, error)
	Delete(ctx context.Context, id uint) error
	// DeleteByCustomer removes the customer's account if there is one.
	DeleteByCustomer(ctx context.Context, customerID uint) error
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Create creates a new account.
func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	return errors.StoreFailure("insert account", r.db.WithContext(ctx).Create(account).Error)
}

// Update updates an existing account.
func (r *accountRepository) Update(ctx context.Context, account *model.Account) error {
	return errors.StoreFailure("update account", r.db.WithContext(ctx).Save(account).Error)
}

// FindByID finds an account by ID.
func (r *accountRepository) FindByID(ctx context.Context, id uint) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Where("account_id = ?", id).First(&account).Error; err != nil {
		return nil, lookupErr(err, "account", id, "find account")
	}
	return &account, nil
}

// FindByEmail finds an account by email.
func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		return nil, lookupErr(err, "account", 0, "find account by email")
	}
	return &account, nil
}

// List lists accounts matching filter, by ascending id.
func (r *accountRepository) List(ctx context.Context, filter AccountFilter) ([]model.Account, error) {
	q := r.db.WithContext(ctx).Model(&model.Account{})
	if filter.CustomerID != 0 {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Username != "" {
		q = q.Where("username = ?", filter.Username)
	}
	if filter.Email != "" {
		q = q.Where("email = ?", filter.Email)
	}
	accounts := []model.Account{}
	if err := q.Order("account_id").Find(&accounts).Error; err != nil {
		return nil, errors.StoreFailure("list accounts", err)
	}
	return accounts, nil
}

// Delete removes an account by ID.
func (r *accountRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("account_id = ?", id).Delete(&model.Account{})
	return deleteErr(res, "account", id, "delete account")
}

func (r *accountRepository) DeleteByCustomer(ctx context.Context, customerID uint) error {
	err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).Delete(&model.Account{}).Error
	return errors.StoreFailure("delete account of customer", err)
}
