package database

import (
	"database/sql"
	"fmt"
)

// UserRecord represents a user account stored in the database.
type UserRecord struct {
	ID        int64
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	Role      string
}

// CreateUser inserts a new user record and returns the generated id.
func (db *DB) CreateUser(rec *UserRecord) (int64, error) {
	result, err := db.exec(`
		INSERT INTO users (user_name, password, first_name, last_name, email, role)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.Username, rec.Password, rec.FirstName, rec.LastName, rec.Email, rec.Role)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get user id: %w", err)
	}
	return id, nil
}

// GetUserByUsername retrieves a user by username.
func (db *DB) GetUserByUsername(username string) (*UserRecord, error) {
	user := &UserRecord{}
	err := db.queryRow(`
		SELECT id, user_name, password, first_name, last_name, email, role
		FROM users WHERE user_name = ?
	`, username).Scan(&user.ID, &user.Username, &user.Password, &user.FirstName, &user.LastName, &user.Email, &user.Role)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// ListUsers retrieves all user records.
func (db *DB) ListUsers() ([]UserRecord, error) {
	rows, err := db.query(`
		SELECT id, user_name, password, first_name, last_name, email, role
		FROM users ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []UserRecord
	for rows.Next() {
		var u UserRecord
		if err := rows.Scan(&u.ID, &u.Username, &u.Password, &u.FirstName, &u.LastName, &u.Email, &u.Role); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UserExists reports whether a user with the given username exists.
func (db *DB) UserExists(username string) (bool, error) {
	var count int
	err := db.queryRow("SELECT COUNT(*) FROM users WHERE user_name = ?", username).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}
	return count > 0, nil
}

// GetUserRole retrieves the stored role name for a user.
func (db *DB) GetUserRole(username string) (string, error) {
	var role string
	err := db.queryRow("SELECT role FROM users WHERE user_name = ?", username).Scan(&role)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get user role: %w", err)
	}
	return role, nil
}

// UpdateUserRole updates the stored role for a user.
func (db *DB) UpdateUserRole(username, role string) error {
	result, err := db.exec("UPDATE users SET role = ? WHERE user_name = ?", role, username)
	if err != nil {
		return fmt.Errorf("failed to update user role: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no user named %q", username)
	}
	return nil
}
