package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/shubhamkumaar/socioBuy-backend/internal/domain"
	"github.com/shubhamkumaar/socioBuy-backend/internal/graph"
)

// CreateUser persists a new user node. Uniqueness of email and phone is the
// caller's responsibility (checked before any write).
func (r *Repository) CreateUser(ctx context.Context, user domain.User) error {
	if user.ID == "" {
		return errors.New("user id is required")
	}
	if user.Phone == "" {
		return errors.New("user phone is required")
	}

	params := map[string]any{
		"userId":    user.ID,
		"name":      user.Name,
		"phone":     user.Phone,
		"email":     user.Email,
		"contacts":  contactsParam(user.Contacts),
		"password":  user.PasswordHash,
		"createdAt": formatTime(user.CreatedAt),
	}

	if _, err := r.client.Write(ctx, createUserCypher, params); err != nil {
		return fmt.Errorf("create user %s: %w", user.ID, err)
	}
	return nil
}

// UserExists reports whether a user with the given email or phone is already
// registered.
func (r *Repository) UserExists(ctx context.Context, email, phone string) (bool, error) {
	records, err := r.client.Read(ctx, userExistsCypher, map[string]any{
		"email": email,
		"phone": phone,
	})
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return len(records) > 0, nil
}

// UserByEmail fetches a user by its email key. Returns ErrNotFound when the
// user is not registered.
func (r *Repository) UserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.findUser(ctx, userByEmailCypher, map[string]any{"email": email})
}

// UserByPhone fetches a user by its phone key.
func (r *Repository) UserByPhone(ctx context.Context, phone string) (domain.User, error) {
	return r.findUser(ctx, userByPhoneCypher, map[string]any{"phone": phone})
}

func (r *Repository) findUser(ctx context.Context, cypher string, params map[string]any) (domain.User, error) {
	records, err := r.client.Read(ctx, cypher, params)
	if err != nil {
		return domain.User{}, fmt.Errorf("fetch user: %w", err)
	}
	if len(records) == 0 {
		return domain.User{}, ErrNotFound
	}
	return userFromRecord(records[0]), nil
}

// ListUsers returns all registered users ordered by name.
func (r *Repository) ListUsers(ctx context.Context) ([]domain.User, error) {
	records, err := r.client.Read(ctx, listUsersCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users := make([]domain.User, 0, len(records))
	for _, record := range records {
		users = append(users, userFromRecord(record))
	}
	return users, nil
}

// SetContacts replaces the stored raw contact list of a user. The list is the
// input to friend-edge derivation, not the friend edges themselves.
func (r *Repository) SetContacts(ctx context.Context, phone string, contacts []string) error {
	records, err := r.client.Write(ctx, setContactsCypher, map[string]any{
		"phone":    phone,
		"contacts": contactsParam(contacts),
	})
	if err != nil {
		return fmt.Errorf("set contacts for %s: %w", phone, err)
	}
	if len(records) == 0 {
		return ErrNotFound
	}
	return nil
}

func userFromRecord(record graph.Record) domain.User {
	return domain.User{
		ID:           toString(record["userId"]),
		Name:         toString(record["name"]),
		Phone:        toString(record["phone"]),
		Email:        toString(record["email"]),
		Contacts:     toStringSlice(record["contacts"]),
		PasswordHash: toString(record["password"]),
		CreatedAt:    toTime(record["createdAt"]),
	}
}

func contactsParam(contacts []string) []any {
	out := make([]any, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, c)
	}
	return out
}

const createUserCypher = `
CREATE (u:User {
	userId: $userId,
	name: $name,
	phone: $phone,
	email: $email,
	contacts: $contacts,
	password: $password,
	createdAt: $createdAt
})
RETURN u.userId AS userId
`

const userExistsCypher = `
MATCH (u:User)
WHERE u.email = $email OR u.phone = $phone
RETURN u.userId AS userId
LIMIT 1
`

const userByEmailCypher = `
MATCH (u:User {email: $email})
RETURN u.userId AS userId,
       u.name AS name,
       u.phone AS phone,
       u.email AS email,
       u.contacts AS contacts,
       u.password AS password,
       u.createdAt AS createdAt
`

const userByPhoneCypher = `
MATCH (u:User {phone: $phone})
RETURN u.userId AS userId,
       u.name AS name,
       u.phone AS phone,
       u.email AS email,
       u.contacts AS contacts,
       u.password AS password,
       u.createdAt AS createdAt
`

const listUsersCypher = `
MATCH (u:User)
RETURN u.userId AS userId,
       u.name AS name,
       u.phone AS phone,
       u.email AS email,
       u.contacts AS contacts,
       u.password AS password,
       u.createdAt AS createdAt
ORDER BY u.name, u.userId
`

const setContactsCypher = `
MATCH (u:User {phone: $phone})
SET u.contacts = $contacts
RETURN u.userId AS userId
`
