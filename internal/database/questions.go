package database

import (
	"database/sql"
	"fmt"
)

// QuestionRecord represents a question row. CreationDate holds the ISO-8601
// text exactly as stored; Answers and Tags hold the raw comma-joined columns.
type QuestionRecord struct {
	ID           int64
	Username     string
	CreationDate string
	Title        string
	Content      string
	Answers      string
	Tags         string
}

// ListQuestions retrieves all question rows.
func (db *DB) ListQuestions() ([]QuestionRecord, error) {
	rows, err := db.query(`
		SELECT id, user_name, creation_date, title, content, answers, tags
		FROM questions ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	var questions []QuestionRecord
	for rows.Next() {
		var q QuestionRecord
		if err := rows.Scan(&q.ID, &q.Username, &q.CreationDate, &q.Title, &q.Content, &q.Answers, &q.Tags); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// GetQuestion retrieves a single question row by id.
func (db *DB) GetQuestion(id int64) (*QuestionRecord, error) {
	q := &QuestionRecord{}
	err := db.queryRow(`
		SELECT id, user_name, creation_date, title, content, answers, tags
		FROM questions WHERE id = ?
	`, id).Scan(&q.ID, &q.Username, &q.CreationDate, &q.Title, &q.Content, &q.Answers, &q.Tags)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return q, nil
}

// CreateQuestion inserts a new question row and returns the generated id.
func (db *DB) CreateQuestion(rec *QuestionRecord) (int64, error) {
	result, err := db.exec(`
		INSERT INTO questions (user_name, creation_date, title, content, answers, tags)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.Username, rec.CreationDate, rec.Title, rec.Content, rec.Answers, rec.Tags)
	if err != nil {
		return 0, fmt.Errorf("failed to create question: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get question id: %w", err)
	}
	return id, nil
}

// DeleteQuestion removes a question row by id.
func (db *DB) DeleteQuestion(id int64) error {
	_, err := db.exec("DELETE FROM questions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	return nil
}

// AppendQuestionAnswer appends an answer id to the question's comma-joined
// answers column. The read and the write run in one transaction so two
// concurrent appends cannot lose an update.
func (db *DB) AppendQuestionAnswer(questionID, answerID int64) error {
	return db.Transaction(func(tx *sql.Tx) error {
		var csv string
		err := tx.QueryRow("SELECT answers FROM questions WHERE id = ?", questionID).Scan(&csv)
		if err == sql.ErrNoRows {
			return fmt.Errorf("no question with id %d", questionID)
		}
		if err != nil {
			return fmt.Errorf("failed to read question answers: %w", err)
		}

		updated := fmt.Sprintf("%d", answerID)
		if csv != "" {
			updated = fmt.Sprintf("%s,%d", csv, answerID)
		}

		if _, err := tx.Exec("UPDATE questions SET answers = ? WHERE id = ?", updated, questionID); err != nil {
			return fmt.Errorf("failed to update question answers: %w", err)
		}
		return nil
	})
}
