package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shubhamkumaar/socioBuy-backend/internal/graph"
)

func TestRepository_CreateOrderEdges(t *testing.T) {
	fake := graph.NewFake().QueueWrite(
		graph.Record{"productId": int64(7), "created": true},
		graph.Record{"productId": int64(999), "created": false},
	)
	repo := New(fake)

	placedAt := time.Date(2026, 8, 14, 9, 30, 0, 0, time.UTC)
	report, err := repo.CreateOrderEdges(context.Background(), "jane@example.com", []int64{7, 999}, "ord-1", placedAt)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if report.OrderID != "ord-1" || !report.PlacedAt.Equal(placedAt) {
		t.Errorf("unexpected report header: %+v", report)
	}
	if len(report.Created) != 1 || report.Created[0] != 7 {
		t.Errorf("unexpected created partition: %v", report.Created)
	}
	if len(report.NotFound) != 1 || report.NotFound[0] != 999 {
		t.Errorf("unexpected notFound partition: %v", report.NotFound)
	}

	writes := fake.Writes()
	if len(writes) != 1 || writes[0].Cypher != createOrderEdgesCypher {
		t.Fatalf("unexpected write statements: %+v", writes)
	}
	if writes[0].Params["orderId"] != "ord-1" {
		t.Errorf("unexpected orderId param: %v", writes[0].Params["orderId"])
	}
	if writes[0].Params["timestamp"] != "2026-08-14T09:30:00.000000000Z" {
		t.Errorf("unexpected timestamp param: %v", writes[0].Params["timestamp"])
	}
}

func TestRepository_CreateOrderEdgesRepeatPurchases(t *testing.T) {
	// Edges are CREATEd, not MERGEd: buying the same product twice must
	// produce two distinct ORDERS edges.
	if !strings.Contains(createOrderEdgesCypher, "CREATE (owner)-[:ORDERS") {
		t.Fatalf("order edges must use CREATE:\n%s", createOrderEdgesCypher)
	}
	if strings.Contains(createOrderEdgesCypher, "MERGE (owner)-[:ORDERS") {
		t.Fatalf("order edges must not use MERGE:\n%s", createOrderEdgesCypher)
	}
}

func TestRepository_CreateOrderEdgesUnknownUser(t *testing.T) {
	repo := New(graph.NewFake())

	_, err := repo.CreateOrderEdges(context.Background(), "missing@example.com", []int64{7}, "ord-1", time.Now())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepository_OrdersByUser(t *testing.T) {
	fake := graph.NewFake().QueueRead(
		graph.Record{"orderId": "ord-2", "productId": int64(9), "productName": "Brewmate Go 9", "productBrand": "Brewmate", "productCategory": "Home & Kitchen", "price": 49.99, "orderedAt": "2026-08-14T09:30:00Z"},
		graph.Record{"orderId": "ord-1", "productId": int64(7), "productName": "Stride Pro 7", "productBrand": "Stride", "productCategory": "Footwear", "price": 89.5, "orderedAt": "2026-07-01T10:00:00Z"},
	)
	repo := New(fake)

	lines, err := repo.OrdersByUser(context.Background(), "jane@example.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].OrderID != "ord-2" || lines[0].ProductID != 9 || lines[0].Price != 49.99 {
		t.Errorf("unexpected first line: %+v", lines[0])
	}
	if lines[1].Category != "Footwear" {
		t.Errorf("unexpected second line: %+v", lines[1])
	}
}
