package qa

import "testing"

func TestCreateReviewForQuestion(t *testing.T) {
	reg := newTestRegistry(t)

	q, err := reg.Questions.Create("alice", "Reviewable", "content", nil)
	if err != nil {
		t.Fatalf("failed to create question: %v", err)
	}

	r, err := reg.Reviews.CreateForQuestion("bob", "clear and well scoped", 4, q)
	if err != nil {
		t.Fatalf("failed to create review: %v", err)
	}
	if !r.IsQuestionReview() {
		t.Error("expected a question review")
	}

	// Fresh registry forces target resolution through the store
	reg2 := NewRegistry(reg.db)
	fetched := reg2.Reviews.FetchOne(r.ID)
	if fetched == nil {
		t.Fatal("expected review back from the store")
	}
	target := fetched.ReviewedQuestion()
	if target == nil || target.ID != q.ID {
		t.Errorf("review did not resolve its question, got %v", target)
	}
}

func TestCreateReviewForAnswer(t *testing.T) {
	reg := newTestRegistry(t)

	a, err := reg.Answers.Create("alice", "an answer")
	if err != nil {
		t.Fatalf("failed to create answer: %v", err)
	}

	r, err := reg.Reviews.CreateForAnswer("bob", "accurate", 5, a)
	if err != nil {
		t.Fatalf("failed to create review: %v", err)
	}
	if !r.IsAnswerReview() || r.ReviewedAnswer().ID != a.ID {
		t.Error("expected an answer review targeting the answer")
	}
}

func TestCreateReviewRejectsBadRating(t *testing.T) {
	reg := newTestRegistry(t)

	q, err := reg.Questions.Create("alice", "Reviewable", "content", nil)
	if err != nil {
		t.Fatalf("failed to create question: %v", err)
	}

	if _, err := reg.Reviews.CreateForQuestion("bob", "review", 0, q); err == nil {
		t.Error("expected error for rating 0")
	}
	if _, err := reg.Reviews.CreateForQuestion("bob", "review", 6, q); err == nil {
		t.Error("expected error for rating 6")
	}
	if len(reg.Reviews.Reviews()) != 0 {
		t.Error("failed creates must not populate the cache")
	}
}

func TestDeleteReview(t *testing.T) {
	reg := newTestRegistry(t)

	q, err := reg.Questions.Create("alice", "Reviewable", "content", nil)
	if err != nil {
		t.Fatalf("failed to create question: %v", err)
	}
	r, err := reg.Reviews.CreateForQuestion("bob", "review", 3, q)
	if err != nil {
		t.Fatalf("failed to create review: %v", err)
	}

	if err := reg.Reviews.Delete(r); err != nil {
		t.Fatalf("failed to delete review: %v", err)
	}
	if len(reg.Reviews.Reviews()) != 0 {
		t.Error("expected empty cache after delete")
	}
	if reg.Reviews.FetchOne(r.ID) != nil {
		t.Error("expected store row to be gone")
	}
}

func TestReviewFilters(t *testing.T) {
	reg := newTestRegistry(t)

	q, err := reg.Questions.Create("alice", "Reviewable", "content", nil)
	if err != nil {
		t.Fatalf("failed to create question: %v", err)
	}
	a, err := reg.Answers.Create("alice", "an answer")
	if err != nil {
		t.Fatalf("failed to create answer: %v", err)
	}

	if _, err := reg.Reviews.CreateForQuestion("bob", "one", 3, q); err != nil {
		t.Fatalf("failed to create review: %v", err)
	}
	if _, err := reg.Reviews.CreateForAnswer("carol", "two", 4, a); err != nil {
		t.Fatalf("failed to create review: %v", err)
	}

	if got := reg.Reviews.ReviewsByUser("bob"); len(got) != 1 {
		t.Errorf("expected one review by bob, got %d", len(got))
	}
	if got := reg.Reviews.ReviewsForQuestion(q.ID); len(got) != 1 {
		t.Errorf("expected one review for the question, got %d", len(got))
	}
	if got := reg.Reviews.ReviewsForAnswer(a.ID); len(got) != 1 {
		t.Errorf("expected one review for the answer, got %d", len(got))
	}
}
