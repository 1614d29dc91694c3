package database

import (
	"database/sql"
	"fmt"
)

// CommentRecord represents a comment row. ParentID references questions.id.
type CommentRecord struct {
	ID           int64
	Username     string
	CreationDate string
	Content      string
	ParentID     int64
}

// ListComments retrieves all comment rows.
func (db *DB) ListComments() ([]CommentRecord, error) {
	rows, err := db.query(`
		SELECT id, user_name, creation_date, content, parent_id
		FROM comments ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []CommentRecord
	for rows.Next() {
		var c CommentRecord
		if err := rows.Scan(&c.ID, &c.Username, &c.CreationDate, &c.Content, &c.ParentID); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// GetComment retrieves a single comment row by id.
func (db *DB) GetComment(id int64) (*CommentRecord, error) {
	c := &CommentRecord{}
	err := db.queryRow(`
		SELECT id, user_name, creation_date, content, parent_id
		FROM comments WHERE id = ?
	`, id).Scan(&c.ID, &c.Username, &c.CreationDate, &c.Content, &c.ParentID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return c, nil
}

// CreateComment inserts a new comment row and returns the generated id.
func (db *DB) CreateComment(rec *CommentRecord) (int64, error) {
	result, err := db.exec(`
		INSERT INTO comments (user_name, creation_date, content, parent_id)
		VALUES (?, ?, ?, ?)
	`, rec.Username, rec.CreationDate, rec.Content, rec.ParentID)
	if err != nil {
		return 0, fmt.Errorf("failed to create comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get comment id: %w", err)
	}
	return id, nil
}
