package domain

import "time"

// User is the canonical user node. Phone is the correlation key for all
// FRIEND traversal; email is the key used by ordering and authentication.
type User struct {
	ID           string
	Name         string
	Phone        string
	Email        string
	Contacts     []string
	PasswordHash string
	CreatedAt    time.Time
}
