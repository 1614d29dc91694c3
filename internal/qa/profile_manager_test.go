package qa

import "testing"

func TestGetOrCreateProfileIsIdempotent(t *testing.T) {
	reg := newTestRegistry(t)

	first := reg.Profiles.GetOrCreate("alice")
	if first == nil {
		t.Fatal("GetOrCreate must never return nil")
	}
	if first.TotalReviews != 0 || first.AverageRating != 0 {
		t.Errorf("new profile must start zeroed, got %+v", first)
	}

	second := reg.Profiles.GetOrCreate("alice")
	if second != first {
		t.Error("repeat calls must return the cached instance")
	}
}

func TestGetOrCreateProfileLoadsPersistedRow(t *testing.T) {
	reg := newTestRegistry(t)

	p := reg.Profiles.GetOrCreate("alice")
	p.Bio = "compilers and databases"
	p.YearsExperience = 6
	if err := reg.Profiles.Update(p); err != nil {
		t.Fatalf("failed to update profile: %v", err)
	}

	reg2 := NewRegistry(reg.db)
	loaded := reg2.Profiles.GetOrCreate("alice")
	if loaded.Bio != p.Bio || loaded.YearsExperience != 6 {
		t.Errorf("persisted fields lost, got %+v", loaded)
	}
}

func TestGetOrCreateProfileFallbackWhenStoreUnavailable(t *testing.T) {
	reg := newTestRegistry(t)

	if err := reg.db.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}

	p := reg.Profiles.GetOrCreate("alice")
	if p == nil {
		t.Fatal("GetOrCreate must never return nil, even with the store down")
	}
	if p.Username != "alice" || p.TotalReviews != 0 {
		t.Errorf("fallback profile wrong, got %+v", p)
	}
	if reg.Profiles.GetOrCreate("alice") != p {
		t.Error("the unpersisted fallback should be served from the cache")
	}
}

func TestProfilesSnapshot(t *testing.T) {
	reg := newTestRegistry(t)

	reg.Profiles.GetOrCreate("alice")
	reg.Profiles.GetOrCreate("bob")

	if got := reg.Profiles.Profiles(); len(got) != 2 {
		t.Errorf("expected two profiles, got %d", len(got))
	}
}
