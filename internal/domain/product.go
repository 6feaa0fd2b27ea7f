package domain

// Product is a catalog entry. Brand and Category are scalar grouping tags,
// not owned entities.
type Product struct {
	ID          int64
	Name        string
	Brand       string
	Category    string
	Price       float64
	Description string
}

// Category is an optional curated grouping of products, distinct from the
// Product.Category tag used by the social feed.
type Category struct {
	ID   string
	Name string
}
