package repository

import (
	"context"
	stderrors "errors"
	"strings"

	"gorm.io/gorm"

	"ecomm/internal/errors"
)

// Store hands out repositories bound to one database handle. Inside
// WithTransaction every repository obtained from the callback's Store shares
// the transaction.
type Store interface {
	Customers() CustomerRepository
	Accounts() AccountRepository
	Products() ProductRepository
	Orders() OrderRepository
	Associations() AssociationRepository
	// WithTransaction runs fn in a transaction. Any returned error or panic rolls it back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

// NewStore creates a Store on top of db.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Customers() CustomerRepository       { return NewCustomerRepository(s.db) }
func (s *gormStore) Accounts() AccountRepository         { return NewAccountRepository(s.db) }
func (s *gormStore) Products() ProductRepository         { return NewProductRepository(s.db) }
func (s *gormStore) Orders() OrderRepository             { return NewOrderRepository(s.db) }
func (s *gormStore) Associations() AssociationRepository { return NewAssociationRepository(s.db) }

// WithTransaction executes a function within a database transaction.
func (s *gormStore) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &gormStore{db: tx})
	})
	if err != nil && !errors.IsDomain(err) {
		return errors.StoreFailure("transaction", err)
	}
	return err
}

// lookupErr turns a failed single-row lookup into NotFound or a StoreFailure.
func lookupErr(err error, entity string, id uint, op string) error {
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.NotFound(entity, id)
	}
	return errors.StoreFailure(op, err)
}

// deleteErr checks the outcome of a delete by primary key.
func deleteErr(res *gorm.DB, entity string, id uint, op string) error {
	if res.Error != nil {
		return errors.StoreFailure(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.NotFound(entity, id)
	}
	return nil
}

// likePattern builds a case-insensitive substring pattern using '!' as escape character,
// which needs no quoting on any of the supported dialects.
func likePattern(s string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return "%" + r.Replace(strings.ToLower(s)) + "%"
}

const likeClause = "LOWER(name) LIKE ? ESCAPE '!'"
