package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shubhamkumaar/socioBuy-backend/internal/domain"
)

// CreateOrderEdges writes one ORDERS edge per found product, all carrying the
// same order id and timestamp. Unknown product ids are reported back, never
// an error. Repeat purchases are intentional: edges are created, not merged.
func (r *Repository) CreateOrderEdges(ctx context.Context, email string, productIDs []int64, orderID string, placedAt time.Time) (domain.OrderReport, error) {
	if orderID == "" {
		return domain.OrderReport{}, errors.New("order id is required")
	}

	records, err := r.client.Write(ctx, createOrderEdgesCypher, map[string]any{
		"email":      email,
		"productIds": int64Param(productIDs),
		"orderId":    orderID,
		"timestamp":  formatTime(placedAt),
	})
	if err != nil {
		return domain.OrderReport{}, fmt.Errorf("create order edges for %s: %w", email, err)
	}
	if len(records) == 0 {
		return domain.OrderReport{}, ErrNotFound
	}

	report := domain.OrderReport{
		OrderID:  orderID,
		PlacedAt: placedAt,
		Created:  []int64{},
		NotFound: []int64{},
	}
	for _, record := range records {
		id := toInt64(record["productId"])
		if toBool(record["created"]) {
			report.Created = append(report.Created, id)
		} else {
			report.NotFound = append(report.NotFound, id)
		}
	}
	return report, nil
}

// OrdersByUser returns the user's ORDERS edges most recent first.
func (r *Repository) OrdersByUser(ctx context.Context, email string) ([]domain.OrderLine, error) {
	records, err := r.client.Read(ctx, ordersByUserCypher, map[string]any{"email": email})
	if err != nil {
		return nil, fmt.Errorf("orders for %s: %w", email, err)
	}

	lines := make([]domain.OrderLine, 0, len(records))
	for _, record := range records {
		lines = append(lines, domain.OrderLine{
			OrderID:     toString(record["orderId"]),
			ProductID:   toInt64(record["productId"]),
			ProductName: toString(record["productName"]),
			Brand:       toString(record["productBrand"]),
			Category:    toString(record["productCategory"]),
			Price:       toFloat64(record["price"]),
			OrderedAt:   toTime(record["orderedAt"]),
		})
	}
	return lines, nil
}

const createOrderEdgesCypher = `
MATCH (owner:User {email: $email})
UNWIND $productIds AS productId
OPTIONAL MATCH (p:Product {productId: productId})
FOREACH (_ IN CASE WHEN p IS NULL THEN [] ELSE [1] END |
	CREATE (owner)-[:ORDERS {orderId: $orderId, timestamp: $timestamp}]->(p)
)
RETURN productId AS productId, p IS NOT NULL AS created
`

const ordersByUserCypher = `
MATCH (u:User {email: $email})-[o:ORDERS]->(p:Product)
RETURN o.orderId AS orderId,
       p.productId AS productId,
       p.productName AS productName,
       p.productBrand AS productBrand,
       p.productCategory AS productCategory,
       p.price AS price,
       o.timestamp AS orderedAt
ORDER BY o.timestamp DESC, p.productId DESC
`
