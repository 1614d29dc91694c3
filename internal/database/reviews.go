package database

import (
	"database/sql"
	"fmt"
)

// ReviewRecord represents a review row. Exactly one of QuestionID/AnswerID
// is non-nil; the schema enforces this with a CHECK constraint.
type ReviewRecord struct {
	ID           int64
	Username     string
	CreationDate string
	Content      string
	Rating       int
	QuestionID   *int64
	AnswerID     *int64
}

// ListReviews retrieves all review rows.
func (db *DB) ListReviews() ([]ReviewRecord, error) {
	rows, err := db.query(`
		SELECT id, user_name, creation_date, content, rating, question_id, answer_id
		FROM reviews ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []ReviewRecord
	for rows.Next() {
		r, err := scanReview(rows.Scan)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *r)
	}
	return reviews, rows.Err()
}

// GetReview retrieves a single review row by id.
func (db *DB) GetReview(id int64) (*ReviewRecord, error) {
	row := db.queryRow(`
		SELECT id, user_name, creation_date, content, rating, question_id, answer_id
		FROM reviews WHERE id = ?
	`, id)
	r, err := scanReview(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func scanReview(scan func(...any) error) (*ReviewRecord, error) {
	var r ReviewRecord
	var questionID, answerID sql.NullInt64
	if err := scan(&r.ID, &r.Username, &r.CreationDate, &r.Content, &r.Rating, &questionID, &answerID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan review: %w", err)
	}
	r.QuestionID = nullInt64ToPtr(questionID)
	r.AnswerID = nullInt64ToPtr(answerID)
	return &r, nil
}

// CreateReview inserts a new review row and returns the generated id.
func (db *DB) CreateReview(rec *ReviewRecord) (int64, error) {
	result, err := db.exec(`
		INSERT INTO reviews (user_name, creation_date, content, rating, question_id, answer_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.Username, rec.CreationDate, rec.Content, rec.Rating, ptrToNullInt64(rec.QuestionID), ptrToNullInt64(rec.AnswerID))
	if err != nil {
		return 0, fmt.Errorf("failed to create review: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get review id: %w", err)
	}
	return id, nil
}

// DeleteReview removes a review row by id.
func (db *DB) DeleteReview(id int64) error {
	_, err := db.exec("DELETE FROM reviews WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}
