package qa

import "testing"

func TestCreateAnswerRoundTrip(t *testing.T) {
	reg := newTestRegistry(t)

	a, err := reg.Answers.Create("bob", "use a map")
	if err != nil {
		t.Fatalf("failed to create answer: %v", err)
	}
	if a.ID <= 0 {
		t.Fatalf("expected positive id, got %d", a.ID)
	}

	reg2 := NewRegistry(reg.db)
	fetched := reg2.Answers.FetchOne(a.ID)
	if fetched == nil {
		t.Fatal("expected answer back from the store")
	}
	if fetched.Content != a.Content || fetched.Author != a.Author {
		t.Errorf("round trip changed fields: %+v", fetched)
	}
}

func TestCreateAnswerValidation(t *testing.T) {
	reg := newTestRegistry(t)

	if _, err := reg.Answers.Create("bob", "   "); err == nil {
		t.Error("expected error for blank content")
	}
	if _, err := reg.Answers.Create("", "content"); err == nil {
		t.Error("expected error for empty author")
	}
	if len(reg.Answers.Answers()) != 0 {
		t.Error("failed creates must not populate the cache")
	}
}

func TestFetchOneMissingAnswer(t *testing.T) {
	reg := newTestRegistry(t)

	if got := reg.Answers.FetchOne(42); got != nil {
		t.Errorf("expected nil for a missing row, got %v", got)
	}
}

func TestFetchOnePrefersCachedInstance(t *testing.T) {
	reg := newTestRegistry(t)

	a, err := reg.Answers.Create("bob", "cached")
	if err != nil {
		t.Fatalf("failed to create answer: %v", err)
	}
	if got := reg.Answers.FetchOne(a.ID); got != a {
		t.Error("fetch of a cached id must return the cached instance")
	}
}
