package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/shubhamkumaar/socioBuy-backend/internal/domain"
	"github.com/shubhamkumaar/socioBuy-backend/internal/graph"
)

func TestRepository_CreateProduct(t *testing.T) {
	fake := graph.NewFake()
	repo := New(fake)

	product := domain.Product{
		ID:          7,
		Name:        "Stride Pro 7",
		Brand:       "Stride",
		Category:    "Footwear",
		Price:       89.5,
		Description: "A dependable everyday pick.",
	}
	if err := repo.CreateProduct(context.Background(), product); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	writes := fake.Writes()
	if len(writes) != 1 || writes[0].Cypher != createProductCypher {
		t.Fatalf("unexpected write statements: %+v", writes)
	}
	if writes[0].Params["productId"] != int64(7) {
		t.Errorf("unexpected productId param: %v", writes[0].Params["productId"])
	}
	if writes[0].Params["productBrand"] != "Stride" {
		t.Errorf("unexpected productBrand param: %v", writes[0].Params["productBrand"])
	}
}

func TestRepository_ProductByIDNotFound(t *testing.T) {
	repo := New(graph.NewFake())

	_, err := repo.ProductByID(context.Background(), 404)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepository_ProductsByIDs(t *testing.T) {
	fake := graph.NewFake().QueueRead(
		graph.Record{"productId": int64(7), "productName": "Stride Pro 7", "productBrand": "Stride", "productCategory": "Footwear", "price": 89.5, "description": ""},
	)
	repo := New(fake)

	products, err := repo.ProductsByIDs(context.Background(), []int64{7, 999})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	// Unknown ids are silently absent, the caller decides what missing means.
	if len(products) != 1 || products[0].ID != 7 {
		t.Errorf("unexpected products: %+v", products)
	}
}

func TestRepository_AddProductsToCategory(t *testing.T) {
	fake := graph.NewFake().QueueWrite(
		graph.Record{"productId": int64(7), "linked": true},
		graph.Record{"productId": int64(8), "linked": true},
	)
	repo := New(fake)

	linked, err := repo.AddProductsToCategory(context.Background(), "cat-1", []int64{7, 8})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(linked) != 2 || linked[0] != 7 || linked[1] != 8 {
		t.Errorf("unexpected linked ids: %v", linked)
	}

	writes := fake.Writes()
	if len(writes) != 1 || writes[0].Cypher != addProductsToCategoryCypher {
		t.Fatalf("unexpected write statements: %+v", writes)
	}
}

func TestRepository_AddProductsToCategoryUnknownCategory(t *testing.T) {
	repo := New(graph.NewFake())

	_, err := repo.AddProductsToCategory(context.Background(), "missing", []int64{7})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepository_DeleteCategoryNotFound(t *testing.T) {
	repo := New(graph.NewFake())

	if err := repo.DeleteCategory(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepository_GenericCategories(t *testing.T) {
	fake := graph.NewFake().QueueRead(
		graph.Record{"category": "Beauty"},
		graph.Record{"category": "Books"},
	)
	repo := New(fake)

	categories, err := repo.GenericCategories(context.Background(), 5)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(categories) != 2 || categories[0] != "Beauty" {
		t.Errorf("unexpected categories: %v", categories)
	}
}
