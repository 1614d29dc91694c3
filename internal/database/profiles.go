package database

import (
	"database/sql"
	"fmt"
)

// ProfileRecord represents a reviewer profile row, keyed by username.
type ProfileRecord struct {
	Username        string
	Bio             string
	Expertise       string
	YearsExperience int
	TotalReviews    int
	AverageRating   float64
}

// ListProfiles retrieves all reviewer profile rows.
func (db *DB) ListProfiles() ([]ProfileRecord, error) {
	rows, err := db.query(`
		SELECT user_name, bio, expertise, years_experience, total_reviews, average_rating
		FROM reviewer_profiles ORDER BY user_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviewer profiles: %w", err)
	}
	defer rows.Close()

	var profiles []ProfileRecord
	for rows.Next() {
		var p ProfileRecord
		if err := rows.Scan(&p.Username, &p.Bio, &p.Expertise, &p.YearsExperience, &p.TotalReviews, &p.AverageRating); err != nil {
			return nil, fmt.Errorf("failed to scan reviewer profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// GetProfile retrieves a reviewer profile by username.
func (db *DB) GetProfile(username string) (*ProfileRecord, error) {
	p := &ProfileRecord{}
	err := db.queryRow(`
		SELECT user_name, bio, expertise, years_experience, total_reviews, average_rating
		FROM reviewer_profiles WHERE user_name = ?
	`, username).Scan(&p.Username, &p.Bio, &p.Expertise, &p.YearsExperience, &p.TotalReviews, &p.AverageRating)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reviewer profile: %w", err)
	}
	return p, nil
}

// CreateProfile inserts a new reviewer profile row.
func (db *DB) CreateProfile(rec *ProfileRecord) error {
	_, err := db.exec(`
		INSERT INTO reviewer_profiles (user_name, bio, expertise, years_experience, total_reviews, average_rating)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.Username, rec.Bio, rec.Expertise, rec.YearsExperience, rec.TotalReviews, rec.AverageRating)
	if err != nil {
		return fmt.Errorf("failed to create reviewer profile: %w", err)
	}
	return nil
}

// UpdateProfile pushes a reviewer profile's fields back to its row.
func (db *DB) UpdateProfile(rec *ProfileRecord) error {
	_, err := db.exec(`
		UPDATE reviewer_profiles
		SET bio = ?, expertise = ?, years_experience = ?, total_reviews = ?, average_rating = ?
		WHERE user_name = ?
	`, rec.Bio, rec.Expertise, rec.YearsExperience, rec.TotalReviews, rec.AverageRating, rec.Username)
	if err != nil {
		return fmt.Errorf("failed to update reviewer profile: %w", err)
	}
	return nil
}
