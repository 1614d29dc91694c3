package qa

import (
	"errors"
	"fmt"
	"time"
)

// Review is a reviewer's evaluation of either a question or an answer, never
// both and never neither. The target kind is fixed at construction.
type Review struct {
	Submission
	Content string
	Rating  int

	question *Question
	answer   *Answer
}

func validateReview(id int64, author, content string, rating int) error {
	if id <= 0 {
		return errors.New("review id must be greater than 0")
	}
	if isBlank(author) {
		return errors.New("review author cannot be empty")
	}
	if isBlank(content) {
		return errors.New("review content cannot be empty")
	}
	if rating < 1 || rating > 5 {
		return fmt.Errorf("review rating must be between 1 and 5, got %d", rating)
	}
	return nil
}

// NewQuestionReview constructs a review targeting a question.
func NewQuestionReview(id int64, author string, createdAt time.Time, content string, rating int, question *Question) (*Review, error) {
	if err := validateReview(id, author, content, rating); err != nil {
		return nil, err
	}
	if question == nil {
		return nil, errors.New("question review must reference a question")
	}
	return &Review{
		Submission: Submission{ID: id, Author: author, CreatedAt: createdAt},
		Content:    content,
		Rating:     rating,
		question:   question,
	}, nil
}

// NewAnswerReview constructs a review targeting an answer.
func NewAnswerReview(id int64, author string, createdAt time.Time, content string, rating int, answer *Answer) (*Review, error) {
	if err := validateReview(id, author, content, rating); err != nil {
		return nil, err
	}
	if answer == nil {
		return nil, errors.New("answer review must reference an answer")
	}
	return &Review{
		Submission: Submission{ID: id, Author: author, CreatedAt: createdAt},
		Content:    content,
		Rating:     rating,
		answer:     answer,
	}, nil
}

// IsQuestionReview reports whether this review targets a question.
func (r *Review) IsQuestionReview() bool {
	return r.question != nil
}

// IsAnswerReview reports whether this review targets an answer.
func (r *Review) IsAnswerReview() bool {
	return r.answer != nil
}

// ReviewedQuestion returns the reviewed question, or nil for answer reviews.
func (r *Review) ReviewedQuestion() *Question {
	return r.question
}

// ReviewedAnswer returns the reviewed answer, or nil for question reviews.
func (r *Review) ReviewedAnswer() *Answer {
	return r.answer
}

// SetRating updates the rating, rejecting values outside [1,5].
func (r *Review) SetRating(rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("review rating must be between 1 and 5, got %d", rating)
	}
	r.Rating = rating
	return nil
}

// SetContent updates the content, rejecting blank values.
func (r *Review) SetContent(content string) error {
	if isBlank(content) {
		return errors.New("review content cannot be empty")
	}
	r.Content = content
	return nil
}
