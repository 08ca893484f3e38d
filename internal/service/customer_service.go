package service

import (
	"context"

	"github.com/rs/zerolog"

	"ecomm/internal/model"
	"ecomm/internal/repository"
)

// CustomerService manages customers.
type CustomerService interface {
	Create(ctx context.Context, customer *model.Customer) (*model.Customer, error)
	Get(ctx context.Context, id uint) (*model.Customer, error)
	List(ctx context.Context, filter repository.CustomerFilter) ([]model.Customer, error)
	Update(ctx context.Context, id uint, patch model.CustomerPatch) (*model.Customer, error)
	// Delete removes the customer together with its account, its orders and their
	// association rows.
	Delete(ctx context.Context, id uint) error
}

type customerService struct {
	store repository.Store
	log   zerolog.Logger
}

// NewCustomerService creates a new customer service.
func NewCustomerService(store repository.Store, log zerolog.Logger) CustomerService {
	return &customerService{
		store: store,
		log:   log.With().Str("component", "customers").Logger(),
	}
}

func (s *customerService) Create(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	if err := s.store.Customers().Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) Get(ctx context.Context, id uint) (*model.Customer, error) {
	return s.store.Customers().FindByID(ctx, id)
}

func (s *customerService) List(ctx context.Context, filter repository.CustomerFilter) ([]model.Customer, error) {
	return s.store.Customers().List(ctx, filter)
}

func (s *customerService) Update(ctx context.Context, id uint, patch model.CustomerPatch) (*model.Customer, error) {
	var customer *model.Customer
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		c, err := tx.Customers().FindByID(ctx, id)
		if err != nil {
			return err
		}
		patch.Apply(c)
		if err := tx.Customers().Update(ctx, c); err != nil {
			return err
		}
		customer = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) Delete(ctx context.Context, id uint) error {
	w := newWorkflow(s.log, "delete customer")
	var removed int
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		if _, err := tx.Customers().FindByID(ctx, id); err != nil {
			return err
		}

		w.advance(StageCommitting)
		if err := tx.Accounts().DeleteByCustomer(ctx, id); err != nil {
			return err
		}
		orders, err := tx.Orders().List(ctx, repository.OrderFilter{CustomerID: id})
		if err != nil {
			return err
		}
		for _, o := range orders {
			if err := deleteOrder(ctx, tx, o.ID); err != nil {
				return err
			}
		}
		removed = len(orders)
		return tx.Customers().Delete(ctx, id)
	})
	if err != nil {
		return w.fail(err)
	}
	w.done()
	s.log.Info().Uint("customer_id", id).Int("orders", removed).Msg("customer deleted")
	return nil
}
