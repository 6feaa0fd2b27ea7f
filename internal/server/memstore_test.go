package server

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/shubhamkumaar/socioBuy-backend/internal/domain"
	"github.com/shubhamkumaar/socioBuy-backend/internal/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memStore is an in-memory graph standing in for the repository in handler
// tests. It implements the account, social, catalog and order store
// contracts with the same semantics the Cypher queries have.
type memStore struct {
	mu         sync.RWMutex
	users      map[string]domain.User // by email
	friends    map[string]map[string]bool
	products   map[int64]domain.Product
	orders     []orderEdge
	categories map[string]domain.Category
	contains   map[string]map[int64]bool
	revoked    map[string]time.Time
}

type orderEdge struct {
	email     string
	productID int64
	orderID   string
	placedAt  time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users:      make(map[string]domain.User),
		friends:    make(map[string]map[string]bool),
		products:   make(map[int64]domain.Product),
		categories: make(map[string]domain.Category),
		contains:   make(map[string]map[int64]bool),
		revoked:    make(map[string]time.Time),
	}
}

// --- account store ---

func (m *memStore) CreateUser(_ context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.Email] = user
	return nil
}

func (m *memStore) UserExists(_ context.Context, email, phone string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.users[email]; ok {
		return true, nil
	}
	for _, user := range m.users {
		if user.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) UserByEmail(_ context.Context, email string) (domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[email]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	return user, nil
}

func (m *memStore) SetContacts(_ context.Context, phone string, contacts []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for email, user := range m.users {
		if user.Phone == phone {
			user.Contacts = contacts
			m.users[email] = user
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memStore) RevokeToken(_ context.Context, tokenID string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[tokenID] = expiresAt
	return nil
}

func (m *memStore) IsTokenRevoked(_ context.Context, tokenID string, now time.Time) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	expiresAt, ok := m.revoked[tokenID]
	return ok && !expiresAt.Before(now), nil
}

// --- social graph ---

func (m *memStore) userByPhone(phone string) (domain.User, bool) {
	for _, user := range m.users {
		if user.Phone == phone {
			return user, true
		}
	}
	return domain.User{}, false
}

// reach resolves phones at FRIEND distance 1 or 2, requester excluded,
// direct relation winning over fof.
func (m *memStore) reach(phone string) map[string]string {
	out := make(map[string]string)
	for friend := range m.friends[phone] {
		for fof := range m.friends[friend] {
			out[fof] = domain.RelationFoF
		}
	}
	for friend := range m.friends[phone] {
		out[friend] = domain.RelationDirect
	}
	delete(out, phone)
	return out
}

func (m *memStore) ReachSet(_ context.Context, phone string) ([]domain.Friend, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var friends []domain.Friend
	for member, relation := range m.reach(phone) {
		name := ""
		if user, ok := m.userByPhone(member); ok {
			name = user.Name
		}
		friends = append(friends, domain.Friend{Phone: member, Name: name, Relation: relation})
	}
	sort.Slice(friends, func(i, j int) bool {
		if friends[i].Relation != friends[j].Relation {
			return friends[i].Relation < friends[j].Relation
		}
		return friends[i].Phone < friends[j].Phone
	})
	return friends, nil
}

func (m *memStore) reachOrders(phone string) []orderEdge {
	reach := m.reach(phone)
	var edges []orderEdge
	for _, edge := range m.orders {
		user, ok := m.users[edge.email]
		if !ok {
			continue
		}
		if _, inReach := reach[user.Phone]; inReach {
			edges = append(edges, edge)
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if !edges[i].placedAt.Equal(edges[j].placedAt) {
			return edges[i].placedAt.After(edges[j].placedAt)
		}
		return edges[i].productID > edges[j].productID
	})
	return edges
}

func (m *memStore) purchase(edge orderEdge) domain.FriendPurchase {
	product := m.products[edge.productID]
	return domain.FriendPurchase{
		FriendName:  m.users[edge.email].Name,
		ProductName: product.Name,
		Brand:       product.Brand,
		Category:    product.Category,
		OrderedAt:   edge.placedAt,
	}
}

func (m *memStore) DirectProductOrders(_ context.Context, phone string, productIDs []int64) ([]domain.FriendPurchase, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	wanted := make(map[int64]bool, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = true
	}
	var purchases []domain.FriendPurchase
	for _, edge := range m.reachOrders(phone) {
		if wanted[edge.productID] {
			purchases = append(purchases, m.purchase(edge))
		}
	}
	return purchases, nil
}

func (m *memStore) BrandOrders(_ context.Context, phone string, brands []string) ([]domain.FriendPurchase, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	wanted := make(map[string]bool, len(brands))
	for _, brand := range brands {
		wanted[brand] = true
	}
	var purchases []domain.FriendPurchase
	for _, edge := range m.reachOrders(phone) {
		if wanted[m.products[edge.productID].Brand] {
			purchases = append(purchases, m.purchase(edge))
		}
	}
	return purchases, nil
}

func (m *memStore) CategoryOrders(_ context.Context, phone string, categories []string) ([]domain.FriendPurchase, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	wanted := make(map[string]bool, len(categories))
	for _, category := range categories {
		wanted[category] = true
	}
	var purchases []domain.FriendPurchase
	for _, edge := range m.reachOrders(phone) {
		if wanted[m.products[edge.productID].Category] {
			purchases = append(purchases, m.purchase(edge))
		}
	}
	return purchases, nil
}

func (m *memStore) TopFriendCategories(_ context.Context, phone string, limit int) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	for _, edge := range m.reachOrders(phone) {
		if category := m.products[edge.productID].Category; category != "" {
			seen[category] = true
		}
	}
	var categories []string
	for category := range seen {
		categories = append(categories, category)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(categories)))
	if len(categories) > limit {
		categories = categories[:limit]
	}
	return categories, nil
}

func (m *memStore) FriendCoverProducts(_ context.Context, phone string, limit int) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var products []domain.Product
	seen := make(map[int64]bool)
	for _, edge := range m.reachOrders(phone) {
		if seen[edge.productID] {
			continue
		}
		seen[edge.productID] = true
		products = append(products, m.products[edge.productID])
		if len(products) == limit {
			break
		}
	}
	return products, nil
}

func (m *memStore) ProductSocialContext(_ context.Context, phone string, productID int64) ([]domain.SocialMention, []domain.SocialMention, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	target, ok := m.products[productID]
	if !ok {
		return nil, nil, nil
	}
	reach := m.reach(phone)

	var sameProduct, sameBrand []domain.SocialMention
	for _, edge := range m.reachOrders(phone) {
		product := m.products[edge.productID]
		if product.ID != target.ID && product.Brand != target.Brand {
			continue
		}
		mention := domain.SocialMention{
			FriendName:  m.users[edge.email].Name,
			Relation:    reach[m.users[edge.email].Phone],
			ProductID:   product.ID,
			ProductName: product.Name,
			Brand:       product.Brand,
			OrderedAt:   edge.placedAt,
		}
		if product.ID == target.ID {
			sameProduct = append(sameProduct, mention)
		} else {
			sameBrand = append(sameBrand, mention)
		}
	}
	return sameProduct, sameBrand, nil
}

func (m *memStore) CreateFriendEdges(_ context.Context, ownerPhone string, targets []string) (domain.FriendImportReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.userByPhone(ownerPhone); !ok {
		return domain.FriendImportReport{}, repository.ErrNotFound
	}
	report := domain.FriendImportReport{Created: []string{}, NotFound: []string{}}
	for _, target := range targets {
		if _, ok := m.userByPhone(target); !ok || target == ownerPhone {
			report.NotFound = append(report.NotFound, target)
			continue
		}
		if m.friends[ownerPhone] == nil {
			m.friends[ownerPhone] = make(map[string]bool)
		}
		m.friends[ownerPhone][target] = true
		report.Created = append(report.Created, target)
	}
	return report, nil
}

// --- catalog store ---

func (m *memStore) CreateProduct(_ context.Context, product domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[product.ID] = product
	return nil
}

func (m *memStore) ProductNameExists(_ context.Context, name string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, product := range m.products {
		if product.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) ProductByID(_ context.Context, id int64) (domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	product, ok := m.products[id]
	if !ok {
		return domain.Product{}, repository.ErrNotFound
	}
	return product, nil
}

func (m *memStore) ProductsByIDs(_ context.Context, ids []int64) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var products []domain.Product
	seen := make(map[int64]bool)
	for _, id := range ids {
		if product, ok := m.products[id]; ok && !seen[id] {
			seen[id] = true
			products = append(products, product)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (m *memStore) ListProducts(_ context.Context) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var products []domain.Product
	for _, product := range m.products {
		products = append(products, product)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (m *memStore) ProductsInCategory(_ context.Context, category string, limit int) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var products []domain.Product
	for _, product := range m.products {
		if product.Category == category {
			products = append(products, product)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	if len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}

func (m *memStore) GenericCategories(_ context.Context, limit int) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]bool)
	for _, product := range m.products {
		if product.Category != "" {
			seen[product.Category] = true
		}
	}
	var categories []string
	for category := range seen {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	if len(categories) > limit {
		categories = categories[:limit]
	}
	return categories, nil
}

func (m *memStore) GenericCoverProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	products, err := m.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}

func (m *memStore) CreateCategory(_ context.Context, category domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[category.ID] = category
	return nil
}

func (m *memStore) CategoryNameExists(_ context.Context, name string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, category := range m.categories {
		if category.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) ListCategories(_ context.Context) ([]domain.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var categories []domain.Category
	for _, category := range m.categories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (m *memStore) DeleteCategory(_ context.Context, categoryID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[categoryID]; !ok {
		return repository.ErrNotFound
	}
	delete(m.categories, categoryID)
	delete(m.contains, categoryID)
	return nil
}

func (m *memStore) AddProductsToCategory(_ context.Context, categoryID string, productIDs []int64) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[categoryID]; !ok {
		return nil, repository.ErrNotFound
	}
	if m.contains[categoryID] == nil {
		m.contains[categoryID] = make(map[int64]bool)
	}
	var linked []int64
	for _, id := range productIDs {
		if _, ok := m.products[id]; ok {
			m.contains[categoryID][id] = true
			linked = append(linked, id)
		}
	}
	return linked, nil
}

// --- order store ---

func (m *memStore) CreateOrderEdges(_ context.Context, email string, productIDs []int64, orderID string, placedAt time.Time) (domain.OrderReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[email]; !ok {
		return domain.OrderReport{}, repository.ErrNotFound
	}
	report := domain.OrderReport{OrderID: orderID, PlacedAt: placedAt, Created: []int64{}, NotFound: []int64{}}
	for _, id := range productIDs {
		if _, ok := m.products[id]; !ok {
			report.NotFound = append(report.NotFound, id)
			continue
		}
		m.orders = append(m.orders, orderEdge{email: email, productID: id, orderID: orderID, placedAt: placedAt})
		report.Created = append(report.Created, id)
	}
	return report, nil
}

func (m *memStore) OrdersByUser(_ context.Context, email string) ([]domain.OrderLine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var lines []domain.OrderLine
	for _, edge := range m.orders {
		if edge.email != email {
			continue
		}
		product := m.products[edge.productID]
		lines = append(lines, domain.OrderLine{
			OrderID:     edge.orderID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Brand:       product.Brand,
			Category:    product.Category,
			Price:       product.Price,
			OrderedAt:   edge.placedAt,
		})
	}
	sort.Slice(lines, func(i, j int) bool {
		if !lines[i].OrderedAt.Equal(lines[j].OrderedAt) {
			return lines[i].OrderedAt.After(lines[j].OrderedAt)
		}
		return lines[i].ProductID > lines[j].ProductID
	})
	return lines, nil
}
