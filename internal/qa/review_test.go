package qa

import (
	"testing"
	"time"
)

func testQuestion(t *testing.T) *Question {
	t.Helper()
	q, err := NewQuestion(1, "alice", time.Now(), "Title", "Content", nil, nil)
	if err != nil {
		t.Fatalf("failed to build question: %v", err)
	}
	return q
}

func TestReviewRatingBounds(t *testing.T) {
	q := testQuestion(t)
	now := time.Now()

	for _, rating := range []int{0, 6, -1} {
		if _, err := NewQuestionReview(1, "bob", now, "review", rating, q); err == nil {
			t.Errorf("expected error for rating %d", rating)
		}
	}
	for rating := 1; rating <= 5; rating++ {
		if _, err := NewQuestionReview(1, "bob", now, "review", rating, q); err != nil {
			t.Errorf("unexpected error for rating %d: %v", rating, err)
		}
	}
}

func TestReviewTargetExclusivity(t *testing.T) {
	q := testQuestion(t)
	a, err := NewAnswer(1, "carol", time.Now(), "an answer")
	if err != nil {
		t.Fatalf("failed to build answer: %v", err)
	}

	qr, err := NewQuestionReview(1, "bob", time.Now(), "good question", 4, q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !qr.IsQuestionReview() || qr.IsAnswerReview() {
		t.Error("question review must target exactly the question")
	}
	if qr.ReviewedQuestion() != q || qr.ReviewedAnswer() != nil {
		t.Error("question review target accessors disagree")
	}

	ar, err := NewAnswerReview(2, "bob", time.Now(), "good answer", 5, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ar.IsQuestionReview() || !ar.IsAnswerReview() {
		t.Error("answer review must target exactly the answer")
	}
}

func TestReviewNilTarget(t *testing.T) {
	now := time.Now()
	if _, err := NewQuestionReview(1, "bob", now, "review", 3, nil); err == nil {
		t.Error("expected error for nil question")
	}
	if _, err := NewAnswerReview(1, "bob", now, "review", 3, nil); err == nil {
		t.Error("expected error for nil answer")
	}
}

func TestReviewSetters(t *testing.T) {
	q := testQuestion(t)
	r, err := NewQuestionReview(1, "bob", time.Now(), "initial", 3, q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := r.SetRating(0); err == nil {
		t.Error("expected error for out-of-range rating")
	}
	if r.Rating != 3 {
		t.Errorf("failed setter must not change rating, got %d", r.Rating)
	}
	if err := r.SetRating(5); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := r.SetContent("  "); err == nil {
		t.Error("expected error for blank content")
	}
	if err := r.SetContent("revised"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if r.Content != "revised" {
		t.Errorf("content not updated, got %q", r.Content)
	}
}
