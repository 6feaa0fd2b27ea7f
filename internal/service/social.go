package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/shubhamkumaar/socioBuy-backend/internal/domain"
	"github.com/shubhamkumaar/socioBuy-backend/internal/repository"
)

// Feed shape limits. Truncations are deterministic: each backing query orders
// by an explicit stable key before the cap is applied.
const (
	feedCategoryLimit  = 5
	feedProductsPerCat = 15
	coverProductLimit  = 5
)

// SocialGraph is the storage contract required by the social proof engine.
type SocialGraph interface {
	ReachSet(ctx context.Context, phone string) ([]domain.Friend, error)
	DirectProductOrders(ctx context.Context, phone string, productIDs []int64) ([]domain.FriendPurchase, error)
	BrandOrders(ctx context.Context, phone string, brands []string) ([]domain.FriendPurchase, error)
	CategoryOrders(ctx context.Context, phone string, categories []string) ([]domain.FriendPurchase, error)
	TopFriendCategories(ctx context.Context, phone string, limit int) ([]string, error)
	FriendCoverProducts(ctx context.Context, phone string, limit int) ([]domain.Product, error)
	ProductSocialContext(ctx context.Context, phone string, productID int64) ([]domain.SocialMention, []domain.SocialMention, error)
	CreateFriendEdges(ctx context.Context, ownerPhone string, targets []string) (domain.FriendImportReport, error)
	ProductByID(ctx context.Context, id int64) (domain.Product, error)
	ProductsByIDs(ctx context.Context, ids []int64) ([]domain.Product, error)
	ProductsInCategory(ctx context.Context, category string, limit int) ([]domain.Product, error)
	GenericCategories(ctx context.Context, limit int) ([]string, error)
	GenericCoverProducts(ctx context.Context, limit int) ([]domain.Product, error)
}

// SocialService computes social reach, purchase overlaps and the home feed.
// All computed structures are request-scoped; nothing is cached.
type SocialService struct {
	repo   SocialGraph
	logger *slog.Logger
}

// NewSocialService constructs a SocialService.
func NewSocialService(repo SocialGraph, logger *slog.Logger) *SocialService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SocialService{repo: repo, logger: logger}
}

// ResolveReach returns the requester's friends and friends-of-friends. An
// empty reach set is a valid outcome, not an error.
func (s *SocialService) ResolveReach(ctx context.Context, phone string) ([]domain.Friend, error) {
	if strings.TrimSpace(phone) == "" {
		return nil, ValidationError("phone is required")
	}
	friends, err := s.repo.ReachSet(ctx, phone)
	if err != nil {
		return nil, StoreError("resolve social reach", err)
	}
	return friends, nil
}

// SuggestForCart builds the per-item social proof for a cart: friends who
// ordered the exact products, the same brands and the same categories.
func (s *SocialService) SuggestForCart(ctx context.Context, phone string, productIDs []int64) ([]domain.CartItemProof, error) {
	if strings.TrimSpace(phone) == "" {
		return nil, ValidationError("phone is required")
	}
	ids := dedupeIDs(productIDs)
	if len(ids) == 0 {
		return nil, ValidationError("cart product ids are required")
	}

	products, err := s.repo.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, StoreError("fetch cart products", err)
	}
	if len(products) == 0 {
		return nil, NotFoundError("no products found")
	}

	groups, err := s.aggregateOverlap(ctx, phone, products)
	if err != nil {
		return nil, err
	}

	proofs := make([]domain.CartItemProof, 0, len(products))
	for _, product := range products {
		proofs = append(proofs, domain.CartItemProof{
			ProductName:   product.Name,
			DirectProduct: orEmptyDirect(groups.ByProduct[product.Name]),
			SameBrand:     orEmptyRelated(groups.ByBrand[product.Brand]),
			SameCategory:  orEmptyRelated(groups.ByCategory[product.Category]),
		})
	}
	return proofs, nil
}

// aggregateOverlap runs the three overlap traversals concurrently and groups
// their rows by product name, brand and category. The traversals are
// read-only and independent; the only ordering dependency is the join point
// here. A failure in any traversal aborts the whole aggregation.
func (s *SocialService) aggregateOverlap(ctx context.Context, phone string, products []domain.Product) (domain.OverlapGroups, error) {
	ids := make([]int64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	brands := distinctTags(products, func(p domain.Product) string { return p.Brand })
	categories := distinctTags(products, func(p domain.Product) string { return p.Category })

	var direct, byBrand, byCategory []domain.FriendPurchase

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.repo.DirectProductOrders(gctx, phone, ids)
		if err != nil {
			return err
		}
		direct = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.repo.BrandOrders(gctx, phone, brands)
		if err != nil {
			return err
		}
		byBrand = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.repo.CategoryOrders(gctx, phone, categories)
		if err != nil {
			return err
		}
		byCategory = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.OverlapGroups{}, StoreError("aggregate purchase overlap", err)
	}

	groups := domain.OverlapGroups{
		ByProduct:  make(map[string][]domain.DirectPurchase),
		ByBrand:    make(map[string][]domain.RelatedPurchase),
		ByCategory: make(map[string][]domain.RelatedPurchase),
	}
	for _, row := range direct {
		groups.ByProduct[row.ProductName] = append(groups.ByProduct[row.ProductName], domain.DirectPurchase{
			FriendName: row.FriendName,
			OrderedAt:  row.OrderedAt,
		})
	}
	for _, row := range byBrand {
		groups.ByBrand[row.Brand] = append(groups.ByBrand[row.Brand], domain.RelatedPurchase{
			FriendName:  row.FriendName,
			ProductName: row.ProductName,
			OrderedAt:   row.OrderedAt,
		})
	}
	for _, row := range byCategory {
		groups.ByCategory[row.Category] = append(groups.ByCategory[row.Category], domain.RelatedPurchase{
			FriendName:  row.FriendName,
			ProductName: row.ProductName,
			OrderedAt:   row.OrderedAt,
		})
	}
	return groups, nil
}

// HomeFeed builds the personalized home page: the top categories the reach
// set ordered from, products per category, and a recently-ordered cover
// sample. With no social signal it falls back to a generic catalog view.
func (s *SocialService) HomeFeed(ctx context.Context, phone string) (domain.Feed, error) {
	if strings.TrimSpace(phone) == "" {
		return domain.Feed{}, ValidationError("phone is required")
	}

	reach, err := s.repo.ReachSet(ctx, phone)
	if err != nil {
		return domain.Feed{}, StoreError("resolve social reach", err)
	}

	if len(reach) > 0 {
		feed, err := s.personalizedFeed(ctx, phone)
		if err != nil {
			return domain.Feed{}, err
		}
		if len(feed.Categories) > 0 {
			return feed, nil
		}
		s.logger.Debug("reach set has no orders, serving generic feed", "phone", phone)
	}

	return s.genericFeed(ctx)
}

func (s *SocialService) personalizedFeed(ctx context.Context, phone string) (domain.Feed, error) {
	categories, err := s.repo.TopFriendCategories(ctx, phone, feedCategoryLimit)
	if err != nil {
		return domain.Feed{}, StoreError("top friend categories", err)
	}
	if len(categories) == 0 {
		return domain.Feed{Personalized: true}, nil
	}

	feed := domain.Feed{
		Categories:   make(map[string][]domain.Product, len(categories)),
		Personalized: true,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cover, err := s.repo.FriendCoverProducts(gctx, phone, coverProductLimit)
		if err != nil {
			return err
		}
		feed.CoverProducts = cover
		return nil
	})
	results := make([][]domain.Product, len(categories))
	for i, category := range categories {
		i, category := i, category
		g.Go(func() error {
			products, err := s.repo.ProductsInCategory(gctx, category, feedProductsPerCat)
			if err != nil {
				return err
			}
			results[i] = products
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.Feed{}, StoreError("build personalized feed", err)
	}

	for i, category := range categories {
		feed.Categories[category] = results[i]
	}
	return feed, nil
}

func (s *SocialService) genericFeed(ctx context.Context) (domain.Feed, error) {
	categories, err := s.repo.GenericCategories(ctx, feedCategoryLimit)
	if err != nil {
		return domain.Feed{}, StoreError("generic categories", err)
	}

	feed := domain.Feed{
		Categories:   make(map[string][]domain.Product, len(categories)),
		Personalized: false,
	}
	for _, category := range categories {
		products, err := s.repo.ProductsInCategory(ctx, category, feedProductsPerCat)
		if err != nil {
			return domain.Feed{}, StoreError("generic feed products", err)
		}
		feed.Categories[category] = products
	}

	cover, err := s.repo.GenericCoverProducts(ctx, coverProductLimit)
	if err != nil {
		return domain.Feed{}, StoreError("generic cover products", err)
	}
	feed.CoverProducts = cover
	return feed, nil
}

// ProductView annotates a single product with the reach set's matching
// purchases. An empty social context yields the bare product.
func (s *SocialService) ProductView(ctx context.Context, phone string, productID int64) (domain.ProductSocialView, error) {
	if strings.TrimSpace(phone) == "" {
		return domain.ProductSocialView{}, ValidationError("phone is required")
	}

	product, err := s.repo.ProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ProductSocialView{}, NotFoundError("product not found")
		}
		return domain.ProductSocialView{}, StoreError("fetch product", err)
	}

	sameProduct, sameBrand, err := s.repo.ProductSocialContext(ctx, phone, productID)
	if err != nil {
		return domain.ProductSocialView{}, StoreError("product social context", err)
	}

	view := domain.ProductSocialView{
		Product:     product,
		SameProduct: sameProduct,
		SameBrand:   sameBrand,
	}
	if view.SameProduct == nil {
		view.SameProduct = []domain.SocialMention{}
	}
	if view.SameBrand == nil {
		view.SameBrand = []domain.SocialMention{}
	}
	return view, nil
}

// ImportContacts derives FRIEND edges from an uploaded contact list. Phone
// numbers without a registered user land in the NotFound partition; the
// union of both partitions always equals the deduplicated input.
func (s *SocialService) ImportContacts(ctx context.Context, ownerPhone string, contacts []string) (domain.FriendImportReport, error) {
	if strings.TrimSpace(ownerPhone) == "" {
		return domain.FriendImportReport{}, ValidationError("phone is required")
	}
	targets := normalizeContacts(contacts, ownerPhone)
	if len(targets) == 0 {
		return domain.FriendImportReport{}, ValidationError("contact list is empty")
	}

	report, err := s.repo.CreateFriendEdges(ctx, ownerPhone, targets)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.FriendImportReport{}, NotFoundError("user not found")
		}
		return domain.FriendImportReport{}, StoreError("create friend edges", err)
	}
	return report, nil
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// distinctTags extracts the sorted distinct non-empty tag values of the cart
// products, so the brand/category traversals only scan relevant tags.
func distinctTags(products []domain.Product, tag func(domain.Product) string) []string {
	seen := make(map[string]struct{}, len(products))
	var out []string
	for _, p := range products {
		value := tag(p)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	sort.Strings(out)
	return out
}

func normalizeContacts(contacts []string, ownerPhone string) []string {
	seen := make(map[string]struct{}, len(contacts))
	var out []string
	for _, contact := range contacts {
		phone := strings.TrimSpace(contact)
		if phone == "" || phone == ownerPhone {
			continue
		}
		if _, ok := seen[phone]; ok {
			continue
		}
		seen[phone] = struct{}{}
		out = append(out, phone)
	}
	return out
}

func orEmptyDirect(list []domain.DirectPurchase) []domain.DirectPurchase {
	if list == nil {
		return []domain.DirectPurchase{}
	}
	return list
}

func orEmptyRelated(list []domain.RelatedPurchase) []domain.RelatedPurchase {
	if list == nil {
		return []domain.RelatedPurchase{}
	}
	return list
}
