package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/feb_ecommerce/internal/models"
	"github.com/Skotchmaster/feb_ecommerce/internal/mykafka"
	"github.com/Skotchmaster/feb_ecommerce/internal/repo"
	"github.com/Skotchmaster/feb_ecommerce/internal/transport"
)

type AdminChecker interface {
	IsAdmin(ctx context.Context, identity string) (bool, error)
}

type ProductService struct {
	Repo      *repo.GormRepo
	Admins    AdminChecker
	Publisher Publisher
}

func (s *ProductService) GetProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.GetProducts(ctx)
}

func (s *ProductService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, notFound(err, id)
	}
	return prod, nil
}

// CreateProduct stores a product owned by the caller.
func (s *ProductService) CreateProduct(ctx context.Context, identity string, req transport.CreateProductRequest) (*models.Product, error) {
	ownerID, err := ParseIdentity(identity)
	if err != nil {
		return nil, err
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	prod := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		UserID:      ownerID,
	}
	if err := s.Repo.Tx(ctx, func(tx *repo.GormRepo) error {
		return tx.CreateProduct(ctx, &prod)
	}); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	publish(ctx, s.Publisher, mykafka.ProductEvents, identity, map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"userID":    prod.UserID,
		"name":      prod.Name,
	})
	return &prod, nil
}

// UpdateProduct is owner-gated and merges only truthy fields.
func (s *ProductService) UpdateProduct(ctx context.Context, identity string, id uint, req transport.UpdateProductRequest) (*models.Product, error) {
	var prod *models.Product
	err := s.Repo.Tx(ctx, func(tx *repo.GormRepo) error {
		p, err := tx.GetProduct(ctx, id)
		if err != nil {
			return notFound(err, id)
		}
		if identityOf(p.UserID) != identity {
			return fmt.Errorf("%w: product %d is not owned by %s", ErrForbidden, id, identity)
		}
		mergeTruthy(p, req)
		if err := tx.SaveProduct(ctx, p); err != nil {
			return fmt.Errorf("save product: %w", err)
		}
		prod = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Publisher, mykafka.ProductEvents, identity, map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"userID":    prod.UserID,
		"name":      prod.Name,
	})
	return prod, nil
}

// DeleteProduct is admin-gated; ownership does not matter. The admin check
// runs before the lookup.
func (s *ProductService) DeleteProduct(ctx context.Context, identity string, id uint) (*models.Product, error) {
	isAdmin, err := s.Admins.IsAdmin(ctx, identity)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, fmt.Errorf("%w: %s is not an admin", ErrForbidden, identity)
	}

	var prod *models.Product
	err = s.Repo.Tx(ctx, func(tx *repo.GormRepo) error {
		p, err := tx.GetProduct(ctx, id)
		if err != nil {
			return notFound(err, id)
		}
		if err := tx.DeleteProduct(ctx, p.ID); err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
		prod = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Publisher, mykafka.ProductEvents, identity, map[string]any{
		"type":      "product_deleted",
		"productID": prod.ID,
		"userID":    prod.UserID,
	})
	return prod, nil
}

// mergeTruthy replaces a field only when the request carries a non-empty,
// non-zero value for it. Zero values never clear a field.
func mergeTruthy(p *models.Product, req transport.UpdateProductRequest) {
	if req.Name != nil && *req.Name != "" {
		p.Name = *req.Name
	}
	if req.Description != nil && *req.Description != "" {
		p.Description = req.Description
	}
	if req.Price != nil && *req.Price != 0 {
		p.Price = req.Price
	}
	if req.Stock != nil && *req.Stock != 0 {
		p.Stock = req.Stock
	}
}

func notFound(err error, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	return fmt.Errorf("find product %d: %w", id, err)
}
