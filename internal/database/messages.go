package database

import (
	"database/sql"
	"fmt"
	"time"
)

// MessageRecord represents a private message row. Unlike submissions,
// messages persist their sent time as a native timestamp.
type MessageRecord struct {
	ID       int64
	Sender   string
	Receiver string
	Content  string
	SentTime time.Time
	IsRead   bool
}

// ListMessages retrieves all message rows.
func (db *DB) ListMessages() ([]MessageRecord, error) {
	rows, err := db.query(`
		SELECT id, sender_name, receiver_name, content, sent_time, is_read
		FROM messages ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []MessageRecord
	for rows.Next() {
		var m MessageRecord
		if err := rows.Scan(&m.ID, &m.Sender, &m.Receiver, &m.Content, &m.SentTime, &m.IsRead); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// GetMessage retrieves a single message row by id.
func (db *DB) GetMessage(id int64) (*MessageRecord, error) {
	m := &MessageRecord{}
	err := db.queryRow(`
		SELECT id, sender_name, receiver_name, content, sent_time, is_read
		FROM messages WHERE id = ?
	`, id).Scan(&m.ID, &m.Sender, &m.Receiver, &m.Content, &m.SentTime, &m.IsRead)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return m, nil
}

// CreateMessage inserts a new message row and returns the generated id.
func (db *DB) CreateMessage(rec *MessageRecord) (int64, error) {
	result, err := db.exec(`
		INSERT INTO messages (sender_name, receiver_name, content, sent_time, is_read)
		VALUES (?, ?, ?, ?, ?)
	`, rec.Sender, rec.Receiver, rec.Content, rec.SentTime, rec.IsRead)
	if err != nil {
		return 0, fmt.Errorf("failed to create message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get message id: %w", err)
	}
	return id, nil
}

// MarkMessageRead flags a message as read.
func (db *DB) MarkMessageRead(id int64) error {
	_, err := db.exec("UPDATE messages SET is_read = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to mark message read: %w", err)
	}
	return nil
}
