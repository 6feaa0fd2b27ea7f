package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shubhamkumaar/socioBuy-backend/internal/domain"
	"github.com/shubhamkumaar/socioBuy-backend/internal/repository"
)

// Store is the slice of the repository the loader works through.
type Store interface {
	UserByPhone(ctx context.Context, phone string) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, user domain.User) error
	CreateProduct(ctx context.Context, product domain.Product) error
	CreateFriendEdges(ctx context.Context, ownerPhone string, targets []string) (domain.FriendImportReport, error)
	CreateOrderEdges(ctx context.Context, email string, productIDs []int64, orderID string, placedAt time.Time) (domain.OrderReport, error)
}

// Load writes the dataset into the graph. Users and products go first so the
// edge batches can match their endpoints. User creation is keyed on phone, so
// rerunning a load against a populated graph does not duplicate user nodes.
// Returns the total number of users in the graph after the load.
func Load(ctx context.Context, store Store, dataset Dataset) (int, error) {
	for _, user := range dataset.Users {
		_, err := store.UserByPhone(ctx, user.Phone)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return 0, fmt.Errorf("look up user %s: %w", user.Phone, err)
		}
		if err := store.CreateUser(ctx, user); err != nil {
			return 0, fmt.Errorf("create user %s: %w", user.Email, err)
		}
	}
	for _, product := range dataset.Products {
		if err := store.CreateProduct(ctx, product); err != nil {
			return 0, fmt.Errorf("create product %d: %w", product.ID, err)
		}
	}
	for _, friendship := range dataset.Friendships {
		if _, err := store.CreateFriendEdges(ctx, friendship.OwnerPhone, friendship.Phones); err != nil {
			return 0, fmt.Errorf("create friend edges for %s: %w", friendship.OwnerPhone, err)
		}
	}
	for _, order := range dataset.Orders {
		if _, err := store.CreateOrderEdges(ctx, order.Email, order.ProductIDs, uuid.NewString(), order.PlacedAt); err != nil {
			return 0, fmt.Errorf("create order for %s: %w", order.Email, err)
		}
	}

	users, err := store.ListUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("count users after load: %w", err)
	}
	return len(users), nil
}
