package qa

import (
	"path/filepath"
	"testing"

	"github.com/syntacsdev/qasystem/internal/database"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.New(dbPath)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return NewRegistry(db)
}

func TestRegistryFetchAllOnEmptyStore(t *testing.T) {
	reg := newTestRegistry(t)

	if err := reg.FetchAll(); err != nil {
		t.Fatalf("resync of empty store failed: %v", err)
	}
	if len(reg.Questions.Questions()) != 0 {
		t.Error("expected no cached questions")
	}
}

func TestRegistryCurrentUser(t *testing.T) {
	reg := newTestRegistry(t)

	if reg.CurrentUser() != nil {
		t.Error("expected no current user before login")
	}

	u := &User{Username: "alice", Role: RoleStudent}
	reg.SetCurrentUser(u)
	if reg.CurrentUser() != u {
		t.Error("expected the set user back")
	}

	reg.SetCurrentUser(nil)
	if reg.CurrentUser() != nil {
		t.Error("expected nil after logout")
	}
}
