package domain

import "time"

// Relation labels how a reach-set member is connected to the requester.
const (
	RelationDirect = "direct"
	RelationFoF    = "fof"
)

// Friend is one member of a requester's social reach set: a user at FRIEND
// distance 1 or 2, never the requester itself.
type Friend struct {
	Phone    string
	Name     string
	Relation string
}

// FriendPurchase is a single reach-set member's order of a product, as
// returned by the overlap traversals. Brand and Category are populated only
// by the traversal keyed on them.
type FriendPurchase struct {
	FriendName  string
	ProductName string
	Brand       string
	Category    string
	OrderedAt   time.Time
}

// DirectPurchase records a friend ordering the exact cart product.
type DirectPurchase struct {
	FriendName string
	OrderedAt  time.Time
}

// RelatedPurchase records a friend ordering a product that shares a brand or
// category with a cart item.
type RelatedPurchase struct {
	FriendName  string
	ProductName string
	OrderedAt   time.Time
}

// OverlapGroups holds the three per-request groupings produced by the
// purchase overlap aggregation. Keys are product name, brand and category
// respectively; list order within a group is order timestamp descending.
type OverlapGroups struct {
	ByProduct  map[string][]DirectPurchase
	ByBrand    map[string][]RelatedPurchase
	ByCategory map[string][]RelatedPurchase
}

// CartItemProof is the social-proof view of one cart product, ready for
// ranking or message generation.
type CartItemProof struct {
	ProductName   string
	DirectProduct []DirectPurchase
	SameBrand     []RelatedPurchase
	SameCategory  []RelatedPurchase
}

// ProductSocialView annotates a single product with the reach-set purchases
// that match it exactly or by brand.
type ProductSocialView struct {
	Product     Product
	SameProduct []SocialMention
	SameBrand   []SocialMention
}

// SocialMention is one friend-or-FoF purchase shown on a product page.
type SocialMention struct {
	FriendName  string
	Relation    string
	ProductID   int64
	ProductName string
	Brand       string
	OrderedAt   time.Time
}

// FriendImportReport partitions a contact-import request into the phone
// numbers that became FRIEND edges and the ones with no registered user.
type FriendImportReport struct {
	Created  []string
	NotFound []string
}
