package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shubhamkumaar/socioBuy-backend/internal/domain"
	"github.com/shubhamkumaar/socioBuy-backend/internal/repository"
)

type stubCatalogStore struct {
	createProduct      func(product domain.Product) error
	productNameExists  func(name string) (bool, error)
	productsByIDs      func(ids []int64) ([]domain.Product, error)
	listProducts       func() ([]domain.Product, error)
	createCategory     func(category domain.Category) error
	categoryNameExists func(name string) (bool, error)
	listCategories     func() ([]domain.Category, error)
	deleteCategory     func(categoryID string) error
	addProducts        func(categoryID string, ids []int64) ([]int64, error)
}

func (s *stubCatalogStore) CreateProduct(_ context.Context, product domain.Product) error {
	if s.createProduct == nil {
		return nil
	}
	return s.createProduct(product)
}

func (s *stubCatalogStore) ProductNameExists(_ context.Context, name string) (bool, error) {
	if s.productNameExists == nil {
		return false, nil
	}
	return s.productNameExists(name)
}

func (s *stubCatalogStore) ProductsByIDs(_ context.Context, ids []int64) ([]domain.Product, error) {
	if s.productsByIDs == nil {
		return nil, nil
	}
	return s.productsByIDs(ids)
}

func (s *stubCatalogStore) ListProducts(_ context.Context) ([]domain.Product, error) {
	if s.listProducts == nil {
		return nil, nil
	}
	return s.listProducts()
}

func (s *stubCatalogStore) CreateCategory(_ context.Context, category domain.Category) error {
	if s.createCategory == nil {
		return nil
	}
	return s.createCategory(category)
}

func (s *stubCatalogStore) CategoryNameExists(_ context.Context, name string) (bool, error) {
	if s.categoryNameExists == nil {
		return false, nil
	}
	return s.categoryNameExists(name)
}

func (s *stubCatalogStore) ListCategories(_ context.Context) ([]domain.Category, error) {
	if s.listCategories == nil {
		return nil, nil
	}
	return s.listCategories()
}

func (s *stubCatalogStore) DeleteCategory(_ context.Context, categoryID string) error {
	if s.deleteCategory == nil {
		return nil
	}
	return s.deleteCategory(categoryID)
}

func (s *stubCatalogStore) AddProductsToCategory(_ context.Context, categoryID string, ids []int64) ([]int64, error) {
	if s.addProducts == nil {
		return ids, nil
	}
	return s.addProducts(categoryID, ids)
}

func TestCreateProduct(t *testing.T) {
	var created domain.Product
	stub := &stubCatalogStore{
		createProduct: func(product domain.Product) error {
			created = product
			return nil
		},
	}

	svc := NewCatalogService(stub)
	product, err := svc.CreateProduct(context.Background(), domain.Product{
		ID:       7,
		Name:     "  Stride Pro 7  ",
		Brand:    "Stride",
		Category: "Footwear",
		Price:    89.5,
	})
	require.NoError(t, err)
	assert.Equal(t, "Stride Pro 7", product.Name)
	assert.Equal(t, created, product)
}

func TestCreateProduct_Validation(t *testing.T) {
	svc := NewCatalogService(&stubCatalogStore{})

	_, err := svc.CreateProduct(context.Background(), domain.Product{ID: 0, Name: "x"})
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = svc.CreateProduct(context.Background(), domain.Product{ID: 1, Name: "   "})
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = svc.CreateProduct(context.Background(), domain.Product{ID: 1, Name: "x", Price: -1})
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestCreateProduct_NameConflict(t *testing.T) {
	stub := &stubCatalogStore{
		productNameExists: func(string) (bool, error) { return true, nil },
	}

	svc := NewCatalogService(stub)
	_, err := svc.CreateProduct(context.Background(), domain.Product{ID: 7, Name: "Stride Pro 7"})
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestCreateCategory(t *testing.T) {
	var created domain.Category
	stub := &stubCatalogStore{
		createCategory: func(category domain.Category) error {
			created = category
			return nil
		},
	}

	svc := NewCatalogService(stub)
	category, err := svc.CreateCategory(context.Background(), "Summer Picks")
	require.NoError(t, err)
	assert.NotEmpty(t, category.ID)
	assert.Equal(t, "Summer Picks", category.Name)
	assert.Equal(t, created, category)
}

func TestDeleteCategory_NotFound(t *testing.T) {
	stub := &stubCatalogStore{
		deleteCategory: func(string) error { return repository.ErrNotFound },
	}

	svc := NewCatalogService(stub)
	err := svc.DeleteCategory(context.Background(), "missing")
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestAddProductsToCategory_MissingProducts(t *testing.T) {
	stub := &stubCatalogStore{
		productsByIDs: func(ids []int64) ([]domain.Product, error) {
			return []domain.Product{{ID: 7, Name: "Stride Pro 7"}}, nil
		},
	}

	svc := NewCatalogService(stub)
	_, err := svc.AddProductsToCategory(context.Background(), "cat-1", []int64{7, 999})
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Contains(t, err.Error(), "999")
}

func TestAddProductsToCategory(t *testing.T) {
	stub := &stubCatalogStore{
		productsByIDs: func(ids []int64) ([]domain.Product, error) {
			return []domain.Product{{ID: 7}, {ID: 9}}, nil
		},
		addProducts: func(categoryID string, ids []int64) ([]int64, error) {
			assert.Equal(t, "cat-1", categoryID)
			return ids, nil
		},
	}

	svc := NewCatalogService(stub)
	linked, err := svc.AddProductsToCategory(context.Background(), "cat-1", []int64{7, 9, 9})
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 9}, linked)
}
