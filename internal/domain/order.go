package domain

import "time"

// OrderReport is the outcome of placing an order: the product ids that
// received an ORDERS edge and the ones not present in the catalog.
type OrderReport struct {
	OrderID  string
	PlacedAt time.Time
	Created  []int64
	NotFound []int64
}

// OrderLine is one historical ORDERS edge of a user.
type OrderLine struct {
	OrderID     string
	ProductID   int64
	ProductName string
	Brand       string
	Category    string
	Price       float64
	OrderedAt   time.Time
}
