package database

import (
	"database/sql"
	"fmt"
)

// InviteRecord represents an invitation code row, keyed by the code itself.
type InviteRecord struct {
	Code   string
	IsUsed bool
}

// ListInviteCodes retrieves all invitation code rows.
func (db *DB) ListInviteCodes() ([]InviteRecord, error) {
	rows, err := db.query("SELECT code, is_used FROM invitation_codes ORDER BY code")
	if err != nil {
		return nil, fmt.Errorf("failed to list invitation codes: %w", err)
	}
	defer rows.Close()

	var codes []InviteRecord
	for rows.Next() {
		var c InviteRecord
		if err := rows.Scan(&c.Code, &c.IsUsed); err != nil {
			return nil, fmt.Errorf("failed to scan invitation code: %w", err)
		}
		codes = append(codes, c)
	}
	return codes, rows.Err()
}

// GetInviteCode retrieves an invitation code row by exact code match.
func (db *DB) GetInviteCode(code string) (*InviteRecord, error) {
	c := &InviteRecord{}
	err := db.queryRow("SELECT code, is_used FROM invitation_codes WHERE code = ?", code).Scan(&c.Code, &c.IsUsed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation code: %w", err)
	}
	return c, nil
}

// CreateInviteCode inserts a new unused invitation code.
func (db *DB) CreateInviteCode(code string) error {
	_, err := db.exec("INSERT INTO invitation_codes (code, is_used) VALUES (?, 0)", code)
	if err != nil {
		return fmt.Errorf("failed to create invitation code: %w", err)
	}
	return nil
}

// RedeemInviteCode marks an invitation code used, but only if it exists and is
// still unused. The conditional update makes redemption a single atomic step;
// the returned bool reports whether the code was actually spent.
func (db *DB) RedeemInviteCode(code string) (bool, error) {
	result, err := db.exec("UPDATE invitation_codes SET is_used = 1 WHERE code = ? AND is_used = 0", code)
	if err != nil {
		return false, fmt.Errorf("failed to redeem invitation code: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check redeemed rows: %w", err)
	}
	return affected > 0, nil
}
