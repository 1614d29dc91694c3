package database

import "testing"

func TestRedeemInviteCodeOnce(t *testing.T) {
	db := newTestDB(t)

	if err := db.CreateInviteCode("ab12"); err != nil {
		t.Fatalf("failed to create invite code: %v", err)
	}

	spent, err := db.RedeemInviteCode("ab12")
	if err != nil {
		t.Fatalf("failed to redeem invite code: %v", err)
	}
	if !spent {
		t.Fatal("expected first redemption to succeed")
	}

	spent, err = db.RedeemInviteCode("ab12")
	if err != nil {
		t.Fatalf("unexpected error on second redemption: %v", err)
	}
	if spent {
		t.Error("expected second redemption to be a no-op")
	}

	code, err := db.GetInviteCode("ab12")
	if err != nil {
		t.Fatalf("failed to get invite code: %v", err)
	}
	if code == nil || !code.IsUsed {
		t.Errorf("expected code to remain used, got %+v", code)
	}
}

func TestRedeemUnknownInviteCode(t *testing.T) {
	db := newTestDB(t)

	spent, err := db.RedeemInviteCode("nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spent {
		t.Error("expected unknown code redemption to report false")
	}
}
