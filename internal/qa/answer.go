package qa

import (
	"errors"
	"strings"
	"time"
)

// Answer is a user-submitted answer. The question owning it keeps the
// back-reference; the answer itself does not know its question.
type Answer struct {
	Submission
	Content string

	placeholder bool
}

// NewAnswer validates and constructs an answer.
func NewAnswer(id int64, author string, createdAt time.Time, content string) (*Answer, error) {
	if id <= 0 {
		return nil, errors.New("answer id must be greater than 0")
	}
	if isBlank(author) {
		return nil, errors.New("answer author cannot be empty")
	}
	if isBlank(content) {
		return nil, errors.New("answer content cannot be empty")
	}
	return &Answer{
		Submission: Submission{ID: id, Author: author, CreatedAt: createdAt},
		Content:    content,
	}, nil
}

// newAnswerPlaceholder builds an id-only reference used to break resolution
// cycles.
func newAnswerPlaceholder(id int64) *Answer {
	return &Answer{Submission: Submission{ID: id}, placeholder: true}
}

// IsPlaceholder reports whether this answer is an unresolved id-only
// reference.
func (a *Answer) IsPlaceholder() bool {
	return a.placeholder
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
