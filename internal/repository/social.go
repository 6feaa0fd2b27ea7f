package repository

import (
	"context"
	"fmt"

	"github.com/shubhamkumaar/socioBuy-backend/internal/domain"
	"github.com/shubhamkumaar/socioBuy-backend/internal/graph"
)

// ReachSet computes the users at FRIEND distance 1 or 2 from the given phone
// number. The requester is excluded even when reachable through a cycle.
func (r *Repository) ReachSet(ctx context.Context, phone string) ([]domain.Friend, error) {
	records, err := r.client.Read(ctx, reachSetCypher, map[string]any{"phone": phone})
	if err != nil {
		return nil, fmt.Errorf("resolve social reach for %s: %w", phone, err)
	}

	friends := make([]domain.Friend, 0, len(records))
	for _, record := range records {
		friends = append(friends, domain.Friend{
			Phone:    toString(record["phone"]),
			Name:     toString(record["name"]),
			Relation: toString(record["relation"]),
		})
	}
	return friends, nil
}

// DirectProductOrders returns reach-set purchases of the exact cart products,
// most recent first.
func (r *Repository) DirectProductOrders(ctx context.Context, phone string, productIDs []int64) ([]domain.FriendPurchase, error) {
	records, err := r.client.Read(ctx, directProductOrdersCypher, map[string]any{
		"phone":      phone,
		"productIds": int64Param(productIDs),
	})
	if err != nil {
		return nil, fmt.Errorf("direct product overlap for %s: %w", phone, err)
	}
	return purchasesFromRecords(records), nil
}

// BrandOrders returns reach-set purchases of any product carrying one of the
// given brands, most recent first.
func (r *Repository) BrandOrders(ctx context.Context, phone string, brands []string) ([]domain.FriendPurchase, error) {
	records, err := r.client.Read(ctx, brandOrdersCypher, map[string]any{
		"phone":  phone,
		"brands": stringParam(brands),
	})
	if err != nil {
		return nil, fmt.Errorf("brand overlap for %s: %w", phone, err)
	}
	return purchasesFromRecords(records), nil
}

// CategoryOrders returns reach-set purchases of any product in one of the
// given categories, most recent first.
func (r *Repository) CategoryOrders(ctx context.Context, phone string, categories []string) ([]domain.FriendPurchase, error) {
	records, err := r.client.Read(ctx, categoryOrdersCypher, map[string]any{
		"phone":      phone,
		"categories": stringParam(categories),
	})
	if err != nil {
		return nil, fmt.Errorf("category overlap for %s: %w", phone, err)
	}
	return purchasesFromRecords(records), nil
}

// TopFriendCategories lists the distinct product categories ordered from by
// the reach set, category key descending, capped at limit.
func (r *Repository) TopFriendCategories(ctx context.Context, phone string, limit int) ([]string, error) {
	records, err := r.client.Read(ctx, topFriendCategoriesCypher, map[string]any{
		"phone": phone,
		"limit": limit,
	})
	if err != nil {
		return nil, fmt.Errorf("top friend categories for %s: %w", phone, err)
	}
	categories := make([]string, 0, len(records))
	for _, record := range records {
		if c := toString(record["category"]); c != "" {
			categories = append(categories, c)
		}
	}
	return categories, nil
}

// FriendCoverProducts returns the most recently ordered distinct products
// across the reach set, capped at limit.
func (r *Repository) FriendCoverProducts(ctx context.Context, phone string, limit int) ([]domain.Product, error) {
	records, err := r.client.Read(ctx, friendCoverProductsCypher, map[string]any{
		"phone": phone,
		"limit": limit,
	})
	if err != nil {
		return nil, fmt.Errorf("friend cover products for %s: %w", phone, err)
	}
	return productsFromRecords(records), nil
}

// ProductSocialContext fetches friend and friend-of-friend purchases matching
// the given product exactly or by brand, tagged with the relation hop.
func (r *Repository) ProductSocialContext(ctx context.Context, phone string, productID int64) ([]domain.SocialMention, []domain.SocialMention, error) {
	records, err := r.client.Read(ctx, productSocialContextCypher, map[string]any{
		"phone":     phone,
		"productId": productID,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("product social context for %d: %w", productID, err)
	}

	var sameProduct, sameBrand []domain.SocialMention
	for _, record := range records {
		mention := domain.SocialMention{
			FriendName:  toString(record["friendName"]),
			Relation:    toString(record["relation"]),
			ProductID:   toInt64(record["productId"]),
			ProductName: toString(record["productName"]),
			Brand:       toString(record["productBrand"]),
			OrderedAt:   toTime(record["orderedAt"]),
		}
		if toString(record["matchType"]) == "same_product" {
			sameProduct = append(sameProduct, mention)
		} else {
			sameBrand = append(sameBrand, mention)
		}
	}
	return sameProduct, sameBrand, nil
}

// CreateFriendEdges merges FRIEND edges from the owner toward every existing
// user in targets. Unknown phone numbers are reported, never an error. The
// MERGE keeps repeated imports idempotent.
func (r *Repository) CreateFriendEdges(ctx context.Context, ownerPhone string, targets []string) (domain.FriendImportReport, error) {
	records, err := r.client.Write(ctx, createFriendEdgesCypher, map[string]any{
		"phone":        ownerPhone,
		"targetPhones": stringParam(targets),
	})
	if err != nil {
		return domain.FriendImportReport{}, fmt.Errorf("create friend edges for %s: %w", ownerPhone, err)
	}
	if len(records) == 0 {
		return domain.FriendImportReport{}, ErrNotFound
	}

	report := domain.FriendImportReport{
		Created:  []string{},
		NotFound: []string{},
	}
	for _, record := range records {
		target := toString(record["targetPhone"])
		if toBool(record["created"]) {
			report.Created = append(report.Created, target)
		} else {
			report.NotFound = append(report.NotFound, target)
		}
	}
	return report, nil
}

func purchasesFromRecords(records []graph.Record) []domain.FriendPurchase {
	purchases := make([]domain.FriendPurchase, 0, len(records))
	for _, record := range records {
		purchases = append(purchases, domain.FriendPurchase{
			FriendName:  toString(record["friendName"]),
			ProductName: toString(record["productName"]),
			Brand:       toString(record["productBrand"]),
			Category:    toString(record["productCategory"]),
			OrderedAt:   toTime(record["orderedAt"]),
		})
	}
	return purchases
}

func int64Param(ids []int64) []any {
	out := make([]any, 0, len(ids))
	for _, id := range ids {
		out = append(out, id)
	}
	return out
}

func stringParam(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

// reachFragment binds `person` to every user at FRIEND distance 1 or 2 from
// $phone, de-duplicated, with the requester filtered out of closed triangles.
const reachFragment = `
CALL {
	MATCH (:User {phone: $phone})-[:FRIEND]->(f:User)
	RETURN f AS person, 'direct' AS relation
	UNION
	MATCH (:User {phone: $phone})-[:FRIEND]->(:User)-[:FRIEND]->(fof:User)
	RETURN fof AS person, 'fof' AS relation
}
WITH person, min(relation) AS relation
WHERE person.phone <> $phone
`

const reachSetCypher = reachFragment + `
RETURN person.phone AS phone,
       person.name AS name,
       relation AS relation
ORDER BY relation, person.phone
`

const directProductOrdersCypher = reachFragment + `
UNWIND $productIds AS productId
MATCH (person)-[o:ORDERS]->(p:Product {productId: productId})
RETURN person.name AS friendName,
       p.productName AS productName,
       o.timestamp AS orderedAt
ORDER BY o.timestamp DESC, p.productId DESC
`

const brandOrdersCypher = reachFragment + `
MATCH (person)-[o:ORDERS]->(p:Product)
WHERE p.productBrand IN $brands
RETURN person.name AS friendName,
       p.productName AS productName,
       p.productBrand AS productBrand,
       o.timestamp AS orderedAt
ORDER BY o.timestamp DESC, p.productId DESC
`

const categoryOrdersCypher = reachFragment + `
MATCH (person)-[o:ORDERS]->(p:Product)
WHERE p.productCategory IN $categories
RETURN person.name AS friendName,
       p.productName AS productName,
       p.productCategory AS productCategory,
       o.timestamp AS orderedAt
ORDER BY o.timestamp DESC, p.productId DESC
`

const topFriendCategoriesCypher = reachFragment + `
MATCH (person)-[:ORDERS]->(p:Product)
WITH DISTINCT p.productCategory AS category
ORDER BY category DESC
LIMIT $limit
RETURN category
`

const friendCoverProductsCypher = reachFragment + `
MATCH (person)-[o:ORDERS]->(p:Product)
WITH p, max(o.timestamp) AS lastOrdered
ORDER BY lastOrdered DESC, p.productId DESC
LIMIT $limit
RETURN p.productId AS productId,
       p.productName AS productName,
       p.productBrand AS productBrand,
       p.productCategory AS productCategory,
       p.price AS price,
       p.description AS description
`

const productSocialContextCypher = `
MATCH (target:Product {productId: $productId})
WITH target.productId AS targetId, target.productBrand AS targetBrand
CALL {
	MATCH (:User {phone: $phone})-[:FRIEND]->(f:User)
	RETURN f AS person, 'direct' AS relation
	UNION
	MATCH (:User {phone: $phone})-[:FRIEND]->(:User)-[:FRIEND]->(fof:User)
	RETURN fof AS person, 'fof' AS relation
}
WITH targetId, targetBrand, person, min(relation) AS relation
WHERE person.phone <> $phone
MATCH (person)-[o:ORDERS]->(p:Product)
WHERE p.productId = targetId OR p.productBrand = targetBrand
RETURN person.name AS friendName,
       relation AS relation,
       p.productId AS productId,
       p.productName AS productName,
       p.productBrand AS productBrand,
       o.timestamp AS orderedAt,
       CASE WHEN p.productId = targetId THEN 'same_product' ELSE 'same_brand' END AS matchType
ORDER BY o.timestamp DESC, p.productId DESC
`

const createFriendEdgesCypher = `
MATCH (owner:User {phone: $phone})
UNWIND $targetPhones AS targetPhone
OPTIONAL MATCH (friend:User {phone: targetPhone})
WHERE friend.phone <> owner.phone
FOREACH (_ IN CASE WHEN friend IS NULL THEN [] ELSE [1] END |
	MERGE (owner)-[:FRIEND]->(friend)
)
RETURN targetPhone AS targetPhone, friend IS NOT NULL AS created
`
