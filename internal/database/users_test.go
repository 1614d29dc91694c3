package database

import (
	"testing"
	"time"
)

func TestCreateUserDuplicateUsername(t *testing.T) {
	db := newTestDB(t)

	if _, err := db.CreateUser(&UserRecord{Username: "bob", Password: "x", Role: "student"}); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	if _, err := db.CreateUser(&UserRecord{Username: "bob", Password: "y", Role: "staff"}); err == nil {
		t.Error("expected unique constraint violation on duplicate username")
	}

	exists, err := db.UserExists("bob")
	if err != nil {
		t.Fatalf("failed to check user: %v", err)
	}
	if !exists {
		t.Error("expected user to exist")
	}
}

func TestUpdateUserRole(t *testing.T) {
	db := newTestDB(t)

	if _, err := db.CreateUser(&UserRecord{Username: "carol", Password: "x", Role: "student"}); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	if err := db.UpdateUserRole("carol", "reviewer"); err != nil {
		t.Fatalf("failed to update role: %v", err)
	}

	role, err := db.GetUserRole("carol")
	if err != nil {
		t.Fatalf("failed to get role: %v", err)
	}
	if role != "reviewer" {
		t.Errorf("expected reviewer, got %q", role)
	}

	if err := db.UpdateUserRole("nobody", "admin"); err == nil {
		t.Error("expected error updating role of missing user")
	}
}

func TestSessionExpiry(t *testing.T) {
	db := newTestDB(t)

	if _, err := db.CreateUser(&UserRecord{Username: "dave", Password: "x", Role: "student"}); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	if _, err := db.CreateSession("live", "dave", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	if _, err := db.CreateSession("stale", "dave", time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("failed to create expired session: %v", err)
	}

	deleted, err := db.DeleteExpiredSessions()
	if err != nil {
		t.Fatalf("failed to sweep sessions: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 swept session, got %d", deleted)
	}

	session, err := db.GetSession("live")
	if err != nil {
		t.Fatalf("failed to get session: %v", err)
	}
	if session == nil {
		t.Error("expected live session to survive the sweep")
	}
}
