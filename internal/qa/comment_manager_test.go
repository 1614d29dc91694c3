package qa

import "testing"

func TestCreateCommentResolvesParent(t *testing.T) {
	reg := newTestRegistry(t)

	q, err := reg.Questions.Create("alice", "Parent", "content", nil)
	if err != nil {
		t.Fatalf("failed to create question: %v", err)
	}

	c, err := reg.Comments.Create("bob", "good question", q)
	if err != nil {
		t.Fatalf("failed to create comment: %v", err)
	}
	if c.Parent == nil || c.Parent.ID != q.ID {
		t.Fatalf("comment parent not set, got %v", c.Parent)
	}

	// Parent resolution through a cold cache
	reg2 := NewRegistry(reg.db)
	fetched := reg2.Comments.FetchOne(c.ID)
	if fetched == nil {
		t.Fatal("expected comment back from the store")
	}
	if fetched.Parent == nil || fetched.Parent.ID != q.ID {
		t.Errorf("parent not resolved on reload, got %v", fetched.Parent)
	}
}

func TestCreateCommentRequiresParent(t *testing.T) {
	reg := newTestRegistry(t)

	if _, err := reg.Comments.Create("bob", "orphan", nil); err == nil {
		t.Error("expected error for nil parent")
	}
	if len(reg.Comments.Comments()) != 0 {
		t.Error("failed creates must not populate the cache")
	}
}

func TestCommentsForQuestion(t *testing.T) {
	reg := newTestRegistry(t)

	q1, err := reg.Questions.Create("alice", "First", "content", nil)
	if err != nil {
		t.Fatalf("failed to create question: %v", err)
	}
	q2, err := reg.Questions.Create("alice", "Second", "content", nil)
	if err != nil {
		t.Fatalf("failed to create question: %v", err)
	}

	if _, err := reg.Comments.Create("bob", "on first", q1); err != nil {
		t.Fatalf("failed to create comment: %v", err)
	}
	if _, err := reg.Comments.Create("carol", "also on first", q1); err != nil {
		t.Fatalf("failed to create comment: %v", err)
	}
	if _, err := reg.Comments.Create("bob", "on second", q2); err != nil {
		t.Fatalf("failed to create comment: %v", err)
	}

	if got := reg.Comments.CommentsForQuestion(q1.ID); len(got) != 2 {
		t.Errorf("expected two comments on the first question, got %d", len(got))
	}
	if got := reg.Comments.CommentsForQuestion(q2.ID); len(got) != 1 {
		t.Errorf("expected one comment on the second question, got %d", len(got))
	}
}
