package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brandiaga/storefront-backend/internal/cart"
	"github.com/brandiaga/storefront-backend/pkg/db/models"
	pkgerrors "github.com/brandiaga/storefront-backend/pkg/errors"
	"github.com/brandiaga/storefront-backend/pkg/pagination"
)

// Service exposes the catalog: public reads plus admin-side management.
type Service interface {
	ListProducts(ctx context.Context, query ListQueryInput) (*ListResult, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDetail, error)
	Snapshot(ctx context.Context, productID uuid.UUID, color string, quantity int) (cart.Item, error)

	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDetail, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDetail, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// ListQueryInput carries pagination and filters from controllers.
type ListQueryInput struct {
	Limit         int
	Cursor        string
	Filters       ListFilters
	IncludeHidden bool
}

type catalogRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, query listQuery) (*ListResult, error)
}

type service struct {
	repo catalogRepository
}

// NewService constructs a catalog service instance.
func NewService(repo catalogRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

// ListProducts returns one catalog page. Hidden products are visible only to
// admin callers.
func (s *service) ListProducts(ctx context.Context, query ListQueryInput) (*ListResult, error) {
	result, err := s.repo.List(ctx, listQuery{
		Pagination: pagination.Params{Limit: query.Limit, Cursor: query.Cursor},
		Filters:    query.Filters,
		ActiveOnly: !query.IncludeHidden,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return result, nil
}

// GetProduct returns the product detail. Inactive products read as not found
// on the public path; controllers pass admin reads through GetProduct too and
// filter on IsActive themselves when needed.
func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDetail, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := toDetail(*product)
	return &detail, nil
}

// Snapshot freezes the product into a cart row: name, first image and current
// price are copied, never referenced.
func (s *service) Snapshot(ctx context.Context, productID uuid.UUID, color string, quantity int) (cart.Item, error) {
	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return cart.Item{}, err
	}
	if !product.IsActive {
		return cart.Item{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if !product.HasColor(color) {
		return cart.Item{}, pkgerrors.New(pkgerrors.CodeValidation, "color not offered for this product")
	}

	item := cart.Item{
		ProductID: product.ID.String(),
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  quantity,
		Color:     color,
		IsPrime:   product.IsPrime,
	}
	if len(product.Images) > 0 {
		item.Image = product.Images[0]
	}
	if err := item.Validate(); err != nil {
		return cart.Item{}, err
	}
	return item, nil
}

// CreateProduct inserts a new catalog record.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDetail, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}

	created, err := s.repo.Create(ctx, &models.Product{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Brand:       input.Brand,
		Price:       input.Price,
		Images:      input.Images,
		Colors:      input.Colors,
		IsPrime:     input.IsPrime,
		IsActive:    input.IsActive,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	detail := toDetail(*created)
	return &detail, nil
}

// UpdateProduct applies the non-nil input fields and saves the row.
func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDetail, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name cannot be empty")
		}
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Brand != nil {
		product.Brand = *input.Brand
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		product.Price = *input.Price
	}
	if input.Images != nil {
		product.Images = *input.Images
	}
	if input.Colors != nil {
		product.Colors = *input.Colors
	}
	if input.IsPrime != nil {
		product.IsPrime = *input.IsPrime
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	detail := toDetail(*updated)
	return &detail, nil
}

// DeleteProduct removes the catalog record. Orders and cart rows keep their
// snapshots, so existing references survive the delete.
func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findProduct(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *service) findProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}
