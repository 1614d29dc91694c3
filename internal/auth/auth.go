package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/syntacsdev/qasystem/internal/database"
	"github.com/syntacsdev/qasystem/internal/qa"
)

const (
	// SessionDuration is how long sessions last
	SessionDuration = 7 * 24 * time.Hour
	// BcryptCost is the bcrypt cost factor
	BcryptCost = 12
)

// Service handles password checks and login sessions.
type Service struct {
	db    *database.DB
	users *qa.UserManager
}

// NewService creates a new auth service.
func NewService(db *database.DB, users *qa.UserManager) *Service {
	return &Service{db: db, users: users}
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword verifies a password against a hash
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Login verifies credentials and returns the user, or nil when the username
// is unknown or the password does not match.
func (s *Service) Login(username, password string) *qa.User {
	user := s.users.FetchOne(username)
	if user == nil {
		return nil
	}
	if !CheckPassword(password, user.Password) {
		return nil
	}
	return user
}

// CreateSession creates a new session for a user.
func (s *Service) CreateSession(username string) (*database.SessionRecord, error) {
	id, err := generateSessionID()
	if err != nil {
		return nil, err
	}
	return s.db.CreateSession(id, username, time.Now().Add(SessionDuration))
}

// GetSession returns a live session, or nil when the session is unknown or
// expired. Expired sessions are deleted on sight.
func (s *Service) GetSession(id string) (*database.SessionRecord, error) {
	session, err := s.db.GetSession(id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	if time.Now().After(session.ExpiresAt) {
		if err := s.db.DeleteSession(id); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return session, nil
}

// ExtendSession pushes a session's expiry forward from now.
func (s *Service) ExtendSession(id string) {
	_ = s.db.ExtendSession(id, time.Now().Add(SessionDuration))
}

// DeleteSession removes a session.
func (s *Service) DeleteSession(id string) error {
	return s.db.DeleteSession(id)
}

// User resolves a session's user through the user manager.
func (s *Service) User(session *database.SessionRecord) *qa.User {
	if session == nil {
		return nil
	}
	return s.users.FetchOne(session.Username)
}

func generateSessionID() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
