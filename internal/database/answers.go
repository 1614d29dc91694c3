package database

import (
	"database/sql"
	"fmt"
)

// AnswerRecord represents an answer row.
type AnswerRecord struct {
	ID           int64
	Username     string
	CreationDate string
	Content      string
}

// ListAnswers retrieves all answer rows.
func (db *DB) ListAnswers() ([]AnswerRecord, error) {
	rows, err := db.query(`
		SELECT id, user_name, creation_date, content
		FROM answers ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}
	defer rows.Close()

	var answers []AnswerRecord
	for rows.Next() {
		var a AnswerRecord
		if err := rows.Scan(&a.ID, &a.Username, &a.CreationDate, &a.Content); err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

// GetAnswer retrieves a single answer row by id.
func (db *DB) GetAnswer(id int64) (*AnswerRecord, error) {
	a := &AnswerRecord{}
	err := db.queryRow(`
		SELECT id, user_name, creation_date, content
		FROM answers WHERE id = ?
	`, id).Scan(&a.ID, &a.Username, &a.CreationDate, &a.Content)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get answer: %w", err)
	}
	return a, nil
}

// CreateAnswer inserts a new answer row and returns the generated id.
func (db *DB) CreateAnswer(rec *AnswerRecord) (int64, error) {
	result, err := db.exec(`
		INSERT INTO answers (user_name, creation_date, content)
		VALUES (?, ?, ?)
	`, rec.Username, rec.CreationDate, rec.Content)
	if err != nil {
		return 0, fmt.Errorf("failed to create answer: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get answer id: %w", err)
	}
	return id, nil
}
