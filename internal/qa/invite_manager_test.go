package qa

import "testing"

func TestInviteCodeLifecycle(t *testing.T) {
	reg := newTestRegistry(t)

	code, err := reg.Invites.Create()
	if err != nil {
		t.Fatalf("failed to create invite: %v", err)
	}
	if code.Code == "" {
		t.Fatal("expected a non-empty code")
	}
	if code.Used {
		t.Fatal("new codes start unused")
	}

	if !reg.Invites.Validate(code.Code) {
		t.Error("fresh code should validate")
	}
	if !reg.Invites.Use(code.Code) {
		t.Error("first use should succeed")
	}
	if reg.Invites.Validate(code.Code) {
		t.Error("used code should no longer validate")
	}
	if reg.Invites.Use(code.Code) {
		t.Error("second use must be a no-op")
	}
}

func TestInviteUseUnknownCode(t *testing.T) {
	reg := newTestRegistry(t)

	if reg.Invites.Use("no-such-code") {
		t.Error("unknown code should not redeem")
	}
	if reg.Invites.Validate("no-such-code") {
		t.Error("unknown code should not validate")
	}
}

func TestInviteUseSurvivesStaleCache(t *testing.T) {
	reg := newTestRegistry(t)

	code, err := reg.Invites.Create()
	if err != nil {
		t.Fatalf("failed to create invite: %v", err)
	}

	// A second registry with its own cache redeems first
	reg2 := NewRegistry(reg.db)
	if err := reg2.Invites.FetchAll(); err != nil {
		t.Fatalf("fetch all failed: %v", err)
	}
	if !reg2.Invites.Use(code.Code) {
		t.Fatal("redeem through second registry should succeed")
	}

	// The first registry's cache is stale but the store wins
	if reg.Invites.Use(code.Code) {
		t.Error("already redeemed code must not redeem again")
	}
}
