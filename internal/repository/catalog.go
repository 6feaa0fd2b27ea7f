package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/shubhamkumaar/socioBuy-backend/internal/domain"
	"github.com/shubhamkumaar/socioBuy-backend/internal/graph"
)

// CreateProduct persists a catalog entry. Name uniqueness is checked by the
// caller before any write.
func (r *Repository) CreateProduct(ctx context.Context, product domain.Product) error {
	if product.Name == "" {
		return errors.New("product name is required")
	}

	params := map[string]any{
		"productId":       product.ID,
		"productName":     product.Name,
		"productBrand":    product.Brand,
		"productCategory": product.Category,
		"price":           product.Price,
		"description":     product.Description,
	}
	if _, err := r.client.Write(ctx, createProductCypher, params); err != nil {
		return fmt.Errorf("create product %q: %w", product.Name, err)
	}
	return nil
}

// ProductNameExists reports whether a product with the given name exists.
func (r *Repository) ProductNameExists(ctx context.Context, name string) (bool, error) {
	records, err := r.client.Read(ctx, productNameExistsCypher, map[string]any{"productName": name})
	if err != nil {
		return false, fmt.Errorf("check product name: %w", err)
	}
	return len(records) > 0, nil
}

// ProductByID fetches a single product. Returns ErrNotFound when absent.
func (r *Repository) ProductByID(ctx context.Context, id int64) (domain.Product, error) {
	records, err := r.client.Read(ctx, productByIDCypher, map[string]any{"productId": id})
	if err != nil {
		return domain.Product{}, fmt.Errorf("fetch product %d: %w", id, err)
	}
	if len(records) == 0 {
		return domain.Product{}, ErrNotFound
	}
	return productFromRecord(records[0]), nil
}

// ProductsByIDs fetches the catalog entries for the given ids. Ids without a
// matching product are silently absent from the result.
func (r *Repository) ProductsByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	records, err := r.client.Read(ctx, productsByIDsCypher, map[string]any{
		"productIds": int64Param(ids),
	})
	if err != nil {
		return nil, fmt.Errorf("fetch products by ids: %w", err)
	}
	return productsFromRecords(records), nil
}

// ListProducts returns the whole catalog ordered by product id.
func (r *Repository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	records, err := r.client.Read(ctx, listProductsCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return productsFromRecords(records), nil
}

// ProductsInCategory returns up to limit products tagged with the category,
// ordered by product id for deterministic truncation.
func (r *Repository) ProductsInCategory(ctx context.Context, category string, limit int) ([]domain.Product, error) {
	records, err := r.client.Read(ctx, productsInCategoryCypher, map[string]any{
		"productCategory": category,
		"limit":           limit,
	})
	if err != nil {
		return nil, fmt.Errorf("products in category %q: %w", category, err)
	}
	return productsFromRecords(records), nil
}

// GenericCategories lists distinct category tags alphabetically, capped at
// limit. Used by the non-personalized feed fallback.
func (r *Repository) GenericCategories(ctx context.Context, limit int) ([]string, error) {
	records, err := r.client.Read(ctx, genericCategoriesCypher, map[string]any{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("generic categories: %w", err)
	}
	categories := make([]string, 0, len(records))
	for _, record := range records {
		if c := toString(record["category"]); c != "" {
			categories = append(categories, c)
		}
	}
	return categories, nil
}

// GenericCoverProducts returns a fixed-size product sample ordered by id.
func (r *Repository) GenericCoverProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	records, err := r.client.Read(ctx, genericCoverProductsCypher, map[string]any{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("generic cover products: %w", err)
	}
	return productsFromRecords(records), nil
}

// CreateCategory persists a curated category node.
func (r *Repository) CreateCategory(ctx context.Context, category domain.Category) error {
	if category.Name == "" {
		return errors.New("category name is required")
	}
	_, err := r.client.Write(ctx, createCategoryCypher, map[string]any{
		"categoryId": category.ID,
		"name":       category.Name,
	})
	if err != nil {
		return fmt.Errorf("create category %q: %w", category.Name, err)
	}
	return nil
}

// CategoryNameExists reports whether a curated category with the name exists.
func (r *Repository) CategoryNameExists(ctx context.Context, name string) (bool, error) {
	records, err := r.client.Read(ctx, categoryNameExistsCypher, map[string]any{"name": name})
	if err != nil {
		return false, fmt.Errorf("check category name: %w", err)
	}
	return len(records) > 0, nil
}

// ListCategories returns all curated categories ordered by name.
func (r *Repository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	records, err := r.client.Read(ctx, listCategoriesCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	categories := make([]domain.Category, 0, len(records))
	for _, record := range records {
		categories = append(categories, domain.Category{
			ID:   toString(record["categoryId"]),
			Name: toString(record["name"]),
		})
	}
	return categories, nil
}

// DeleteCategory detaches and removes a curated category node.
func (r *Repository) DeleteCategory(ctx context.Context, categoryID string) error {
	records, err := r.client.Write(ctx, deleteCategoryCypher, map[string]any{"categoryId": categoryID})
	if err != nil {
		return fmt.Errorf("delete category %s: %w", categoryID, err)
	}
	if len(records) == 0 {
		return ErrNotFound
	}
	return nil
}

// AddProductsToCategory merges CONTAINS edges from the curated category to
// every listed product and reports which product ids were linked.
func (r *Repository) AddProductsToCategory(ctx context.Context, categoryID string, productIDs []int64) ([]int64, error) {
	records, err := r.client.Write(ctx, addProductsToCategoryCypher, map[string]any{
		"categoryId": categoryID,
		"productIds": int64Param(productIDs),
	})
	if err != nil {
		return nil, fmt.Errorf("add products to category %s: %w", categoryID, err)
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}

	var linked []int64
	for _, record := range records {
		if toBool(record["linked"]) {
			linked = append(linked, toInt64(record["productId"]))
		}
	}
	return linked, nil
}

func productFromRecord(record graph.Record) domain.Product {
	return domain.Product{
		ID:          toInt64(record["productId"]),
		Name:        toString(record["productName"]),
		Brand:       toString(record["productBrand"]),
		Category:    toString(record["productCategory"]),
		Price:       toFloat64(record["price"]),
		Description: toString(record["description"]),
	}
}

func productsFromRecords(records []graph.Record) []domain.Product {
	products := make([]domain.Product, 0, len(records))
	for _, record := range records {
		products = append(products, productFromRecord(record))
	}
	return products
}

const productReturnClause = `
RETURN p.productId AS productId,
       p.productName AS productName,
       p.productBrand AS productBrand,
       p.productCategory AS productCategory,
       p.price AS price,
       p.description AS description
`

const createProductCypher = `
CREATE (p:Product {
	productId: $productId,
	productName: $productName,
	productBrand: $productBrand,
	productCategory: $productCategory,
	price: $price,
	description: $description
})
RETURN p.productId AS productId
`

const productNameExistsCypher = `
MATCH (p:Product {productName: $productName})
RETURN p.productId AS productId
LIMIT 1
`

const productByIDCypher = `
MATCH (p:Product {productId: $productId})
` + productReturnClause

const productsByIDsCypher = `
UNWIND $productIds AS productId
MATCH (p:Product {productId: productId})
` + productReturnClause + `
ORDER BY p.productId
`

const listProductsCypher = `
MATCH (p:Product)
` + productReturnClause + `
ORDER BY p.productId
`

const productsInCategoryCypher = `
MATCH (p:Product {productCategory: $productCategory})
` + productReturnClause + `
ORDER BY p.productId
LIMIT $limit
`

const genericCategoriesCypher = `
MATCH (p:Product)
WITH DISTINCT p.productCategory AS category
ORDER BY category
LIMIT $limit
RETURN category
`

const genericCoverProductsCypher = `
MATCH (p:Product)
` + productReturnClause + `
ORDER BY p.productId
LIMIT $limit
`

const createCategoryCypher = `
CREATE (c:Category {categoryId: $categoryId, name: $name})
RETURN c.categoryId AS categoryId
`

const categoryNameExistsCypher = `
MATCH (c:Category {name: $name})
RETURN c.categoryId AS categoryId
LIMIT 1
`

const listCategoriesCypher = `
MATCH (c:Category)
RETURN c.categoryId AS categoryId, c.name AS name
ORDER BY c.name
`

const deleteCategoryCypher = `
MATCH (c:Category {categoryId: $categoryId})
WITH c, c.categoryId AS categoryId
DETACH DELETE c
RETURN categoryId
`

const addProductsToCategoryCypher = `
MATCH (c:Category {categoryId: $categoryId})
UNWIND $productIds AS productId
OPTIONAL MATCH (p:Product {productId: productId})
FOREACH (_ IN CASE WHEN p IS NULL THEN [] ELSE [1] END |
	MERGE (c)-[:CONTAINS]->(p)
)
RETURN productId AS productId, p IS NOT NULL AS linked
`
