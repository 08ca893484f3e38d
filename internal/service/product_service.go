package service

import (
	"context"

	"github.com/rs/zerolog"

	"ecomm/internal/errors"
	"ecomm/internal/model"
	"ecomm/internal/repository"
)

// ProductService manages the catalog.
type ProductService interface {
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	Get(ctx context.Context, id uint) (*model.Product, error)
	// List returns every product, or only those of productType when it is not empty.
	List(ctx context.Context, productType string) ([]model.Product, error)
	// SearchByName matches name case-insensitively, cheapest first.
	SearchByName(ctx context.Context, name string) ([]model.Product, error)
	Update(ctx context.Context, id uint, patch model.ProductPatch) (*model.Product, error)
	// Delete refuses to remove a product that is part of an order.
	Delete(ctx context.Context, id uint) error
}

type productService struct {
	store repository.Store
	log   zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(store repository.Store, log zerolog.Logger) ProductService {
	return &productService{
		store: store,
		log:   log.With().Str("component", "products").Logger(),
	}
}

func (s *productService) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	if err := s.store.Products().Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) Get(ctx context.Context, id uint) (*model.Product, error) {
	return s.store.Products().FindByID(ctx, id)
}

func (s *productService) List(ctx context.Context, productType string) ([]model.Product, error) {
	return s.store.Products().List(ctx, repository.ProductFilter{Type: productType})
}

func (s *productService) SearchByName(ctx context.Context, name string) ([]model.Product, error) {
	return s.store.Products().List(ctx, repository.ProductFilter{Name: name})
}

func (s *productService) Update(ctx context.Context, id uint, patch model.ProductPatch) (*model.Product, error) {
	var product *model.Product
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		p, err := tx.Products().FindByID(ctx, id)
		if err != nil {
			return err
		}
		patch.Apply(p)
		if err := tx.Products().Update(ctx, p); err != nil {
			return err
		}
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id uint) error {
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		if _, err := tx.Products().FindByID(ctx, id); err != nil {
			return err
		}
		referenced, err := tx.Associations().IsReferenced(ctx, id)
		if err != nil {
			return err
		}
		if referenced {
			return errors.Conflict("product is part of an order and cannot be deleted")
		}
		return tx.Products().Delete(ctx, id)
	})
	if err != nil {
		s.log.Warn().Err(err).Uint("product_id", id).Msg("delete product failed")
		return err
	}
	return nil
}
