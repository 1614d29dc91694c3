package qa

import (
	"errors"
	"time"
)

// Comment is a user comment attached to exactly one parent question.
type Comment struct {
	Submission
	Content string
	Parent  *Question
}

// NewComment validates and constructs a comment.
func NewComment(id int64, author string, createdAt time.Time, content string, parent *Question) (*Comment, error) {
	if id <= 0 {
		return nil, errors.New("comment id must be greater than 0")
	}
	if isBlank(author) {
		return nil, errors.New("comment author cannot be empty")
	}
	if isBlank(content) {
		return nil, errors.New("comment content cannot be empty")
	}
	if parent == nil {
		return nil, errors.New("comment must reference a parent question")
	}
	return &Comment{
		Submission: Submission{ID: id, Author: author, CreatedAt: createdAt},
		Content:    content,
		Parent:     parent,
	}, nil
}
