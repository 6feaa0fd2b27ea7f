package domain

// Feed is the home-page recommendation payload: a bounded set of categories
// with their products plus a small cover sample. Personalized reports whether
// the social signal was used or the generic fallback kicked in.
type Feed struct {
	Categories    map[string][]Product
	CoverProducts []Product
	Personalized  bool
}
