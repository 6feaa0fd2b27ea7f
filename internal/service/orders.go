package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shubhamkumaar/socioBuy-backend/internal/domain"
	"github.com/shubhamkumaar/socioBuy-backend/internal/repository"
)

// OrderStore is the storage contract required by the order service.
type OrderStore interface {
	CreateOrderEdges(ctx context.Context, email string, productIDs []int64, orderID string, placedAt time.Time) (domain.OrderReport, error)
	OrdersByUser(ctx context.Context, email string) ([]domain.OrderLine, error)
}

// OrderService places orders and reads order history.
type OrderService struct {
	repo  OrderStore
	nowFn func() time.Time
}

// NewOrderService constructs an OrderService.
func NewOrderService(repo OrderStore) *OrderService {
	return &OrderService{repo: repo, nowFn: time.Now}
}

// WithClock overrides the time provider, used in tests.
func (s *OrderService) WithClock(nowFn func() time.Time) {
	if nowFn != nil {
		s.nowFn = nowFn
	}
}

// PlaceOrder writes one ORDERS edge per found cart product in a single
// request-scoped transaction. Ids without a catalog entry come back in the
// NotFound partition; there is no rollback and no retry.
func (s *OrderService) PlaceOrder(ctx context.Context, email string, productIDs []int64) (domain.OrderReport, error) {
	if strings.TrimSpace(email) == "" {
		return domain.OrderReport{}, ValidationError("email is required")
	}
	ids := dedupeIDs(productIDs)
	if len(ids) == 0 {
		return domain.OrderReport{}, ValidationError("product id list cannot be empty")
	}

	report, err := s.repo.CreateOrderEdges(ctx, email, ids, uuid.NewString(), s.nowFn().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.OrderReport{}, NotFoundError("user not found")
		}
		return domain.OrderReport{}, StoreError("create order edges", err)
	}
	return report, nil
}

// OrderHistory returns the user's past order lines, most recent first.
func (s *OrderService) OrderHistory(ctx context.Context, email string) ([]domain.OrderLine, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ValidationError("email is required")
	}
	lines, err := s.repo.OrdersByUser(ctx, email)
	if err != nil {
		return nil, StoreError("fetch order history", err)
	}
	return lines, nil
}
