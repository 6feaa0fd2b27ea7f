// Package seed synthesises a demo social-commerce graph: users, a product
// catalog, FRIEND edges and order histories, deterministically from a seed.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/shubhamkumaar/socioBuy-backend/internal/auth"
	"github.com/shubhamkumaar/socioBuy-backend/internal/domain"
)

// Friendship records one user's outgoing FRIEND edges.
type Friendship struct {
	OwnerPhone string   `json:"ownerPhone"`
	Phones     []string `json:"phones"`
}

// Order is a generated purchase batch for one user.
type Order struct {
	Email      string    `json:"email"`
	ProductIDs []int64   `json:"productIds"`
	PlacedAt   time.Time `json:"placedAt"`
}

// Dataset contains the generated users, products, friendships and orders.
type Dataset struct {
	Users       []domain.User    `json:"users"`
	Products    []domain.Product `json:"products"`
	Friendships []Friendship     `json:"friendships"`
	Orders      []Order          `json:"orders"`
}

// Generator produces synthetic data aligned with the social proof schema.
type Generator struct {
	cfg       Config
	rand      *rand.Rand
	fragments nameFragments
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	defaults := DefaultConfig()
	if cfg.NumUsers <= 0 {
		cfg.NumUsers = defaults.NumUsers
	}
	if cfg.NumProducts <= 0 {
		cfg.NumProducts = defaults.NumProducts
	}
	if cfg.FriendsPerUser <= 0 {
		cfg.FriendsPerUser = defaults.FriendsPerUser
	}
	if cfg.MaxOrdersPerUser <= 0 {
		cfg.MaxOrdersPerUser = defaults.MaxOrdersPerUser
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:       cfg,
		rand:      rand.New(rand.NewSource(cfg.Seed)),
		fragments: defaultNameFragments(),
	}
}

// Generate synthesises the dataset. It respects context cancellation. All
// users share one demo password so seeded accounts stay usable by hand.
func (g *Generator) Generate(ctx context.Context) (Dataset, error) {
	// One bcrypt call for the whole dataset, hashing per user is needless.
	passwordHash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return Dataset{}, fmt.Errorf("hash demo password: %w", err)
	}

	now := time.Now().UTC()

	users := make([]domain.User, g.cfg.NumUsers)
	for i := 0; i < g.cfg.NumUsers; i++ {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}
		first := g.pick(g.fragments.first)
		last := g.pick(g.fragments.last)
		users[i] = domain.User{
			ID:           uuid.NewString(),
			Name:         first + " " + last,
			Phone:        fmt.Sprintf("+1%03d%03d%04d", g.rand.Intn(900)+100, g.rand.Intn(900)+100, i),
			Email:        fmt.Sprintf("%s.%s.%d@%s", first, last, i, g.pick(g.fragments.domains)),
			PasswordHash: passwordHash,
			CreatedAt:    now.Add(-time.Duration(g.rand.Intn(365*24)) * time.Hour),
		}
	}

	products := make([]domain.Product, g.cfg.NumProducts)
	for i := 0; i < g.cfg.NumProducts; i++ {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}
		category := g.pick(g.fragments.categories)
		brand := g.pick(g.fragments.brandsByCategory[category])
		products[i] = domain.Product{
			ID:          int64(i + 1),
			Name:        fmt.Sprintf("%s %s %d", brand, g.pick(g.fragments.modelWords), i+1),
			Brand:       brand,
			Category:    category,
			Price:       float64(g.rand.Intn(95000)+500) / 100,
			Description: g.pick(g.fragments.blurbs),
		}
	}

	friendships := make([]Friendship, 0, len(users))
	for i, user := range users {
		targets := g.friendTargets(users, i)
		if len(targets) == 0 {
			continue
		}
		friendships = append(friendships, Friendship{OwnerPhone: user.Phone, Phones: targets})
	}

	var orders []Order
	for _, user := range users {
		count := g.rand.Intn(g.cfg.MaxOrdersPerUser + 1)
		for j := 0; j < count; j++ {
			lines := 1 + g.rand.Intn(3)
			ids := make([]int64, 0, lines)
			for k := 0; k < lines; k++ {
				ids = append(ids, products[g.rand.Intn(len(products))].ID)
			}
			orders = append(orders, Order{
				Email:      user.Email,
				ProductIDs: ids,
				PlacedAt:   now.Add(-time.Duration(g.rand.Intn(180*24)) * time.Hour),
			})
		}
	}

	return Dataset{
		Users:       users,
		Products:    products,
		Friendships: friendships,
		Orders:      orders,
	}, nil
}

// DemoPassword is the plaintext credential shared by every seeded account.
const DemoPassword = "letmein-demo"

// friendTargets picks distinct friends for users[self], never itself.
func (g *Generator) friendTargets(users []domain.User, self int) []string {
	if len(users) < 2 {
		return nil
	}
	count := 1 + g.rand.Intn(g.cfg.FriendsPerUser)
	seen := map[int]struct{}{self: {}}
	var out []string
	for attempts := 0; len(out) < count && attempts < count*4; attempts++ {
		idx := g.rand.Intn(len(users))
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		out = append(out, users[idx].Phone)
	}
	return out
}

func (g *Generator) pick(options []string) string {
	return options[g.rand.Intn(len(options))]
}

type nameFragments struct {
	first            []string
	last             []string
	domains          []string
	categories       []string
	brandsByCategory map[string][]string
	modelWords       []string
	blurbs           []string
}

func defaultNameFragments() nameFragments {
	return nameFragments{
		first:   []string{"jane", "john", "alex", "priya", "liu", "maria", "omar", "sofia", "noah", "emma", "lucas", "mia", "ava", "ethan", "zara"},
		last:    []string{"doe", "smith", "chen", "patel", "garcia", "khan", "kim", "ivanov", "nguyen", "silva", "brown", "lee"},
		domains: []string{"example.com", "mail.com", "shopmail.net", "inbox.org"},
		categories: []string{
			"Electronics", "Footwear", "Home & Kitchen", "Fitness", "Beauty", "Books",
		},
		brandsByCategory: map[string][]string{
			"Electronics":    {"Nexora", "Voltedge", "Brightline"},
			"Footwear":       {"Stride", "Pacer", "Trailhead"},
			"Home & Kitchen": {"Hearthware", "Casaline", "Brewmate"},
			"Fitness":        {"Coreflex", "Liftlab", "Enduro"},
			"Beauty":         {"Lumea", "Petalglow", "Verve"},
			"Books":          {"Inkwell", "Foliant", "Margin"},
		},
		modelWords: []string{"Classic", "Pro", "Mini", "Max", "Air", "Go", "Plus", "Lite"},
		blurbs: []string{
			"A dependable everyday pick.",
			"Popular choice in its range.",
			"Compact, durable and well reviewed.",
			"The latest iteration of a long-running line.",
			"A solid mid-range option.",
		},
	}
}
