package auth

import (
	"testing"
	"time"

	"storerate/internal/entity"
)

func TestNewSessionLifecycle(t *testing.T) {
	mgr, err := NewManager(time.Hour * 24 * 7)
	if err != nil {
		t.Fatalf("unexpected error creating manager: %v", err)
	}

	user := &entity.DbUser{ID: 42, Email: "user@example.com", Role: entity.UserRoleUser}
	session, err := mgr.NewSession(user)
	if err != nil {
		t.Fatalf("unexpected error creating session: %v", err)
	}
	if session.Token == "" {
		t.Fatal("expected non-empty token")
	}
	if session.UserID != user.ID {
		t.Fatalf("expected user id %d, got %d", user.ID, session.UserID)
	}
	if session.Role != user.Role {
		t.Fatalf("expected role %s, got %s", user.Role, session.Role)
	}
	if session.Expired(time.Now()) {
		t.Fatal("expected fresh session to be unexpired")
	}
	if !session.Expired(time.Now().Add(time.Hour * 24 * 8)) {
		t.Fatal("expected session to expire after its TTL")
	}
}

func TestNewSessionTokensAreUnique(t *testing.T) {
	mgr, _ := NewManager(time.Hour)
	user := &entity.DbUser{ID: 7, Role: entity.UserRoleUser}

	first, err := mgr.NewSession(user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := mgr.NewSession(user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Token == second.Token {
		t.Fatal("expected distinct tokens per session")
	}
}

func TestNewSessionRequiresUser(t *testing.T) {
	mgr, _ := NewManager(time.Hour)
	if _, err := mgr.NewSession(nil); err == nil {
		t.Fatal("expected error for nil user")
	}
	if _, err := mgr.NewSession(&entity.DbUser{}); err == nil {
		t.Fatal("expected error for user without id")
	}
}
