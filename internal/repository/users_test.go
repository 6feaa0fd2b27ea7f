package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shubhamkumaar/socioBuy-backend/internal/domain"
	"github.com/shubhamkumaar/socioBuy-backend/internal/graph"
)

func TestRepository_CreateUser(t *testing.T) {
	fake := graph.NewFake()
	repo := New(fake)

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	user := domain.User{
		ID:           "3f2c8c0e-0000-4000-8000-000000000001",
		Name:         "Jane Doe",
		Phone:        "+15551234567",
		Email:        "jane@example.com",
		Contacts:     []string{"+15559876543"},
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		CreatedAt:    now,
	}

	if err := repo.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	writes := fake.Writes()
	if len(writes) != 1 {
		t.Fatalf("expected 1 write query, got %d", len(writes))
	}
	if writes[0].Cypher != createUserCypher {
		t.Fatalf("unexpected query\nexpected:\n%s\ngot:\n%s", createUserCypher, writes[0].Cypher)
	}
	if writes[0].Params["phone"] != user.Phone {
		t.Errorf("phone mismatch: want %s got %v", user.Phone, writes[0].Params["phone"])
	}
	if writes[0].Params["createdAt"] != "2026-08-01T12:00:00.000000000Z" {
		t.Errorf("createdAt mismatch: got %v", writes[0].Params["createdAt"])
	}
	contacts, ok := writes[0].Params["contacts"].([]any)
	if !ok || len(contacts) != 1 {
		t.Errorf("unexpected contacts param: %v", writes[0].Params["contacts"])
	}
}

func TestRepository_CreateUserRequiresKeys(t *testing.T) {
	repo := New(graph.NewFake())

	if err := repo.CreateUser(context.Background(), domain.User{Phone: "+15551234567"}); err == nil {
		t.Fatal("expected error for missing id")
	}
	if err := repo.CreateUser(context.Background(), domain.User{ID: "u-1"}); err == nil {
		t.Fatal("expected error for missing phone")
	}
}

func TestRepository_UserByEmail(t *testing.T) {
	fake := graph.NewFake().QueueRead(graph.Record{
		"userId":    "u-1",
		"name":      "Jane Doe",
		"phone":     "+15551234567",
		"email":     "jane@example.com",
		"contacts":  []any{"+15559876543"},
		"password":  "hash",
		"createdAt": "2026-08-01T12:00:00Z",
	})
	repo := New(fake)

	user, err := repo.UserByEmail(context.Background(), "jane@example.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.ID != "u-1" || user.Name != "Jane Doe" {
		t.Errorf("unexpected user: %+v", user)
	}
	if len(user.Contacts) != 1 || user.Contacts[0] != "+15559876543" {
		t.Errorf("unexpected contacts: %v", user.Contacts)
	}
	if user.CreatedAt.IsZero() {
		t.Error("expected createdAt to be parsed")
	}
}

func TestRepository_UserByEmailNotFound(t *testing.T) {
	repo := New(graph.NewFake())

	_, err := repo.UserByEmail(context.Background(), "missing@example.com")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepository_SetContactsUnknownUser(t *testing.T) {
	repo := New(graph.NewFake())

	err := repo.SetContacts(context.Background(), "+15559999999", []string{"+15550000001"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepository_IsTokenRevoked(t *testing.T) {
	fake := graph.NewFake().QueueRead(graph.Record{"tokenId": "jti-1"})
	repo := New(fake)

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	revoked, err := repo.IsTokenRevoked(context.Background(), "jti-1", now)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !revoked {
		t.Error("expected token to be revoked")
	}

	reads := fake.Reads()
	if len(reads) != 1 || reads[0].Cypher != isTokenRevokedCypher {
		t.Fatalf("unexpected read statements: %+v", reads)
	}
	if reads[0].Params["now"] != "2026-08-01T12:00:00.000000000Z" {
		t.Errorf("unexpected now param: %v", reads[0].Params["now"])
	}

	// No stored marker means not revoked.
	revoked, err = repo.IsTokenRevoked(context.Background(), "jti-2", now)
	if err != nil || revoked {
		t.Errorf("expected not revoked, got revoked=%v err=%v", revoked, err)
	}
}
