package database

import (
	"testing"
	"time"
)

func seedQuestion(t *testing.T, db *DB, title string) int64 {
	t.Helper()

	id, err := db.CreateQuestion(&QuestionRecord{
		Username:     "alice",
		CreationDate: time.Now().UTC().Format(time.RFC3339),
		Title:        title,
		Content:      "some content",
		Answers:      "",
		Tags:         "go,testing",
	})
	if err != nil {
		t.Fatalf("failed to create question: %v", err)
	}
	return id
}

func TestQuestionCRUD(t *testing.T) {
	db := newTestDB(t)

	id := seedQuestion(t, db, "How do maps work?")
	if id <= 0 {
		t.Fatalf("expected positive generated id, got %d", id)
	}

	q, err := db.GetQuestion(id)
	if err != nil {
		t.Fatalf("failed to get question: %v", err)
	}
	if q == nil {
		t.Fatal("expected question, got nil")
	}
	if q.Title != "How do maps work?" || q.Username != "alice" || q.Answers != "" {
		t.Errorf("unexpected question row: %+v", q)
	}

	missing, err := db.GetQuestion(id + 100)
	if err != nil {
		t.Fatalf("unexpected error for missing row: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing row, got %+v", missing)
	}

	if err := db.DeleteQuestion(id); err != nil {
		t.Fatalf("failed to delete question: %v", err)
	}
	q, err = db.GetQuestion(id)
	if err != nil {
		t.Fatalf("failed to re-get question: %v", err)
	}
	if q != nil {
		t.Error("expected question to be gone after delete")
	}
}

func TestAppendQuestionAnswer(t *testing.T) {
	db := newTestDB(t)

	id := seedQuestion(t, db, "Appending answers")

	if err := db.AppendQuestionAnswer(id, 7); err != nil {
		t.Fatalf("failed first append: %v", err)
	}
	if err := db.AppendQuestionAnswer(id, 11); err != nil {
		t.Fatalf("failed second append: %v", err)
	}

	q, err := db.GetQuestion(id)
	if err != nil {
		t.Fatalf("failed to get question: %v", err)
	}
	if q.Answers != "7,11" {
		t.Errorf("expected answers CSV 7,11, got %q", q.Answers)
	}
}

func TestAppendQuestionAnswerMissingQuestion(t *testing.T) {
	db := newTestDB(t)

	if err := db.AppendQuestionAnswer(42, 7); err == nil {
		t.Error("expected error appending to a missing question")
	}
}
