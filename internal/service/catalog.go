package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/shubhamkumaar/socioBuy-backend/internal/domain"
	"github.com/shubhamkumaar/socioBuy-backend/internal/repository"
)

// CatalogStore is the storage contract required by the catalog service.
type CatalogStore interface {
	CreateProduct(ctx context.Context, product domain.Product) error
	ProductNameExists(ctx context.Context, name string) (bool, error)
	ProductsByIDs(ctx context.Context, ids []int64) ([]domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateCategory(ctx context.Context, category domain.Category) error
	CategoryNameExists(ctx context.Context, name string) (bool, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
	AddProductsToCategory(ctx context.Context, categoryID string, productIDs []int64) ([]int64, error)
}

// CatalogService manages products and curated categories.
type CatalogService struct {
	repo CatalogStore
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(repo CatalogStore) *CatalogService {
	return &CatalogService{repo: repo}
}

// CreateProduct validates and persists a new catalog entry. Duplicate names
// are a conflict, checked before any write.
func (s *CatalogService) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	product.Name = strings.TrimSpace(product.Name)
	switch {
	case product.ID <= 0:
		return domain.Product{}, ValidationError("product id must be positive")
	case product.Name == "":
		return domain.Product{}, ValidationError("product name is required")
	case product.Price < 0:
		return domain.Product{}, ValidationError("price must not be negative")
	}

	exists, err := s.repo.ProductNameExists(ctx, product.Name)
	if err != nil {
		return domain.Product{}, StoreError("check product name", err)
	}
	if exists {
		return domain.Product{}, ConflictError(fmt.Sprintf("a product named %q already exists", product.Name))
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return domain.Product{}, StoreError("create product", err)
	}
	return product, nil
}

// ListProducts returns the whole catalog.
func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, StoreError("list products", err)
	}
	return products, nil
}

// CreateCategory persists a curated category with a fresh id.
func (s *CatalogService) CreateCategory(ctx context.Context, name string) (domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Category{}, ValidationError("category name is required")
	}

	exists, err := s.repo.CategoryNameExists(ctx, name)
	if err != nil {
		return domain.Category{}, StoreError("check category name", err)
	}
	if exists {
		return domain.Category{}, ConflictError(fmt.Sprintf("a category named %q already exists", name))
	}

	category := domain.Category{ID: uuid.NewString(), Name: name}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return domain.Category{}, StoreError("create category", err)
	}
	return category, nil
}

// ListCategories returns all curated categories.
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, StoreError("list categories", err)
	}
	return categories, nil
}

// DeleteCategory removes a curated category.
func (s *CatalogService) DeleteCategory(ctx context.Context, categoryID string) error {
	if strings.TrimSpace(categoryID) == "" {
		return ValidationError("category id is required")
	}
	if err := s.repo.DeleteCategory(ctx, categoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFoundError("category not found")
		}
		return StoreError("delete category", err)
	}
	return nil
}

// AddProductsToCategory links products to a curated category. Every listed
// product must exist; missing ids are reported in the error.
func (s *CatalogService) AddProductsToCategory(ctx context.Context, categoryID string, productIDs []int64) ([]int64, error) {
	if strings.TrimSpace(categoryID) == "" {
		return nil, ValidationError("category id is required")
	}
	ids := dedupeIDs(productIDs)
	if len(ids) == 0 {
		return nil, ValidationError("product id list cannot be empty")
	}

	existing, err := s.repo.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, StoreError("fetch products", err)
	}
	if len(existing) != len(ids) {
		found := make(map[int64]struct{}, len(existing))
		for _, p := range existing {
			found[p.ID] = struct{}{}
		}
		var missing []int64
		for _, id := range ids {
			if _, ok := found[id]; !ok {
				missing = append(missing, id)
			}
		}
		return nil, NotFoundError(fmt.Sprintf("products not found: %v", missing))
	}

	linked, err := s.repo.AddProductsToCategory(ctx, categoryID, ids)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFoundError("category not found")
		}
		return nil, StoreError("add products to category", err)
	}
	return linked, nil
}
