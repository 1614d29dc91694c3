package database

import (
	"fmt"
	"time"
)

// PendingReviewerRecord represents a pending reviewer request row.
type PendingReviewerRecord struct {
	Username    string
	RequestDate time.Time
}

// AddPendingReviewer records a reviewer role request. Requesting twice is a
// no-op.
func (db *DB) AddPendingReviewer(username string) error {
	_, err := db.exec(`
		INSERT INTO pending_reviewers (user_name, request_date) VALUES (?, ?)
		ON CONFLICT(user_name) DO NOTHING
	`, username, time.Now())
	if err != nil {
		return fmt.Errorf("failed to add pending reviewer: %w", err)
	}
	return nil
}

// ListPendingReviewers retrieves all pending reviewer requests.
func (db *DB) ListPendingReviewers() ([]PendingReviewerRecord, error) {
	rows, err := db.query("SELECT user_name, request_date FROM pending_reviewers ORDER BY request_date")
	if err != nil {
		return nil, fmt.Errorf("failed to list pending reviewers: %w", err)
	}
	defer rows.Close()

	var pending []PendingReviewerRecord
	for rows.Next() {
		var p PendingReviewerRecord
		if err := rows.Scan(&p.Username, &p.RequestDate); err != nil {
			return nil, fmt.Errorf("failed to scan pending reviewer: %w", err)
		}
		pending = append(pending, p)
	}
	return pending, rows.Err()
}

// RemovePendingReviewer deletes a pending reviewer request and reports
// whether a row was removed.
func (db *DB) RemovePendingReviewer(username string) (bool, error) {
	result, err := db.exec("DELETE FROM pending_reviewers WHERE user_name = ?", username)
	if err != nil {
		return false, fmt.Errorf("failed to remove pending reviewer: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to count removed rows: %w", err)
	}
	return affected > 0, nil
}
