package qa

import (
	"sync"
	"testing"
)

func TestCreateUserAndFetch(t *testing.T) {
	reg := newTestRegistry(t)

	u, err := reg.Users.Create("alice", "hashed-password", "Alice", "Smith", "alice@example.com", RoleStudent)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	if u.Role != RoleStudent {
		t.Errorf("expected student role, got %q", u.Role)
	}

	if !reg.Users.Exists("alice") {
		t.Error("created user should exist")
	}
	if reg.Users.Exists("nobody") {
		t.Error("unknown user should not exist")
	}

	reg2 := NewRegistry(reg.db)
	fetched := reg2.Users.FetchOne("alice")
	if fetched == nil {
		t.Fatal("expected user back from the store")
	}
	if fetched.Email != "alice@example.com" || fetched.FirstName != "Alice" {
		t.Errorf("round trip changed fields: %+v", fetched)
	}
}

func TestCreateDuplicateUsername(t *testing.T) {
	reg := newTestRegistry(t)

	if _, err := reg.Users.Create("alice", "pw", "A", "S", "a@example.com", RoleStudent); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	if _, err := reg.Users.Create("alice", "pw2", "A", "S", "a2@example.com", RoleStudent); err == nil {
		t.Error("expected error for duplicate username")
	}
	if len(reg.Users.Users()) != 1 {
		t.Errorf("expected one cached user, got %d", len(reg.Users.Users()))
	}
}

func TestUpdateRole(t *testing.T) {
	reg := newTestRegistry(t)

	if _, err := reg.Users.Create("alice", "pw", "A", "S", "a@example.com", RoleStudent); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	if err := reg.Users.UpdateRole("alice", RoleInstructor); err != nil {
		t.Fatalf("failed to update role: %v", err)
	}
	if got := reg.Users.FetchOne("alice"); got == nil || got.Role != RoleInstructor {
		t.Errorf("role not updated, got %v", got)
	}

	if err := reg.Users.UpdateRole("nobody", RoleInstructor); err == nil {
		t.Error("expected error for unknown user")
	}
}

func TestConcurrentRoleReadsAndUpdates(t *testing.T) {
	reg := newTestRegistry(t)

	if _, err := reg.Users.Create("alice", "pw", "A", "S", "a@example.com", RoleStudent); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	// Role updates swap in a fresh copy, so snapshots read concurrently
	// never observe a mid-update object.
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				for _, u := range reg.Users.Users() {
					_ = u.Role
				}
			}
		}
	}()

	roles := []Role{RoleReviewer, RoleStudent, RoleInstructor, RoleStudent}
	for _, role := range roles {
		if err := reg.Users.UpdateRole("alice", role); err != nil {
			t.Fatalf("failed to update role: %v", err)
		}
	}
	close(stop)
	wg.Wait()

	if got := reg.Users.FetchOne("alice"); got == nil || got.Role != RoleStudent {
		t.Errorf("expected final role student, got %v", got)
	}
}

func TestReviewerRequestAndApproval(t *testing.T) {
	reg := newTestRegistry(t)

	if _, err := reg.Users.Create("alice", "pw", "A", "S", "a@example.com", RoleStudent); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	if err := reg.Users.RequestReviewer("alice"); err != nil {
		t.Fatalf("failed to request reviewer: %v", err)
	}
	// Requesting twice is harmless
	if err := reg.Users.RequestReviewer("alice"); err != nil {
		t.Fatalf("repeat request failed: %v", err)
	}

	pending := reg.Users.PendingReviewers()
	if len(pending) != 1 || pending[0] != "alice" {
		t.Fatalf("expected alice pending, got %v", pending)
	}

	if !reg.Users.ApproveReviewer("alice") {
		t.Fatal("approval should succeed")
	}
	if got := reg.Users.FetchOne("alice"); got == nil || got.Role != RoleReviewer {
		t.Errorf("approved user should be a reviewer, got %v", got)
	}
	if len(reg.Users.PendingReviewers()) != 0 {
		t.Error("approval should clear the pending entry")
	}

	if reg.Users.ApproveReviewer("nobody") {
		t.Error("approving an unknown user should report false")
	}
}

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"admin":      RoleAdmin,
		"Student":    RoleStudent,
		"REVIEWER":   RoleReviewer,
		"instructor": RoleInstructor,
		"staff":      RoleStaff,
	}
	for input, want := range cases {
		got, err := ParseRole(input)
		if err != nil {
			t.Errorf("ParseRole(%q): %v", input, err)
			continue
		}
		if got != want {
			t.Errorf("ParseRole(%q) = %q, want %q", input, got, want)
		}
	}
	if _, err := ParseRole("wizard"); err == nil {
		t.Error("expected error for unknown role")
	}
}
