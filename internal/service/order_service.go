package service

import (
	"context"

	"github.com/rs/zerolog"

	"ecomm/internal/errors"
	"ecomm/internal/model"
	"ecomm/internal/repository"
)

// OrderService places and mutates orders. Every mutation runs in one transaction.
type OrderService interface {
	Create(ctx context.Context, draft model.OrderDraft) (*model.Order, error)
	Update(ctx context.Context, id uint, patch model.OrderPatch) (*model.Order, error)
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]model.Order, error)
}

type orderService struct {
	store repository.Store
	log   zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(store repository.Store, log zerolog.Logger) OrderService {
	return &orderService{
		store: store,
		log:   log.With().Str("component", "orders").Logger(),
	}
}

var errEmptyOrder = errors.Conflict("an order must contain at least one product")

// Create places an order. Duplicate product ids collapse to one association; the
// first missing product aborts the whole order.
func (s *orderService) Create(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
	w := newWorkflow(s.log, "create order")

	ids := model.DistinctProductIDs(draft.ProductIDs)
	if len(ids) == 0 {
		return nil, w.fail(errEmptyOrder)
	}

	var order *model.Order
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		w.advance(StageResolvingProducts)
		if _, err := tx.Customers().FindByID(ctx, draft.CustomerID); err != nil {
			return err
		}
		if err := resolveProducts(ctx, tx, ids); err != nil {
			return err
		}

		w.advance(StageCommitting)
		o := &model.Order{CustomerID: draft.CustomerID, Date: draft.Date}
		if err := tx.Orders().Create(ctx, o); err != nil {
			return err
		}
		if err := attachAll(ctx, tx, o.ID, ids); err != nil {
			return err
		}
		var err error
		if o.ProductIDs, err = tx.Associations().ListProducts(ctx, o.ID); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, w.fail(err)
	}
	w.done()
	return order, nil
}

// Update applies a partial update. A supplied product list replaces the set exactly.
func (s *orderService) Update(ctx context.Context, id uint, patch model.OrderPatch) (*model.Order, error) {
	w := newWorkflow(s.log, "update order")

	var order *model.Order
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		o, err := tx.Orders().FindByID(ctx, id)
		if err != nil {
			return err
		}

		var ids []uint
		if patch.ProductIDs != nil {
			ids = model.DistinctProductIDs(*patch.ProductIDs)
			if len(ids) == 0 {
				return errEmptyOrder
			}
		}

		w.advance(StageResolvingProducts)
		if patch.CustomerID != nil {
			if _, err := tx.Customers().FindByID(ctx, *patch.CustomerID); err != nil {
				return err
			}
		}
		if err := resolveProducts(ctx, tx, ids); err != nil {
			return err
		}

		w.advance(StageCommitting)
		patch.Apply(o)
		if err := tx.Orders().Update(ctx, o); err != nil {
			return err
		}
		if patch.ProductIDs != nil {
			if err := tx.Associations().DetachAll(ctx, o.ID); err != nil {
				return err
			}
			if err := attachAll(ctx, tx, o.ID, ids); err != nil {
				return err
			}
		}
		if o.ProductIDs, err = tx.Associations().ListProducts(ctx, o.ID); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, w.fail(err)
	}
	w.done()
	return order, nil
}

// Delete removes the order and its association rows.
func (s *orderService) Delete(ctx context.Context, id uint) error {
	w := newWorkflow(s.log, "delete order")
	w.advance(StageCommitting)
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		return deleteOrder(ctx, tx, id)
	})
	if err != nil {
		return w.fail(err)
	}
	w.done()
	return nil
}

func (s *orderService) Get(ctx context.Context, id uint) (*model.Order, error) {
	o, err := s.store.Orders().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.ProductIDs, err = s.store.Associations().ListProducts(ctx, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *orderService) List(ctx context.Context) ([]model.Order, error) {
	return s.list(ctx, repository.OrderFilter{})
}

func (s *orderService) ListByCustomer(ctx context.Context, customerID uint) ([]model.Order, error) {
	return s.list(ctx, repository.OrderFilter{CustomerID: customerID})
}

func (s *orderService) list(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	orders, err := s.store.Orders().List(ctx, filter)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
	}
	products, err := s.store.Associations().ListProductsForOrders(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].ProductIDs = products[orders[i].ID]
		if orders[i].ProductIDs == nil {
			orders[i].ProductIDs = []uint{}
		}
	}
	return orders, nil
}

// resolveProducts fails with NotFound on the first id that has no product.
func resolveProducts(ctx context.Context, tx repository.Store, ids []uint) error {
	for _, id := range ids {
		if _, err := tx.Products().FindByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func attachAll(ctx context.Context, tx repository.Store, orderID uint, ids []uint) error {
	for _, id := range ids {
		if err := tx.Associations().Attach(ctx, orderID, id); err != nil {
			return err
		}
	}
	return nil
}

// deleteOrder detaches every product, then deletes the row. Used by the
// customer cascade as well.
func deleteOrder(ctx context.Context, tx repository.Store, id uint) error {
	if err := tx.Associations().DetachAll(ctx, id); err != nil {
		return err
	}
	return tx.Orders().Delete(ctx, id)
}
