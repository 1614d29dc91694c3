package qa

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/syntacsdev/qasystem/internal/database"
)

// UserManager mirrors an in-memory user cache against the users table and
// owns pending reviewer role requests.
type UserManager struct {
	db *database.DB

	mu    sync.RWMutex
	users map[string]*User
}

// NewUserManager creates the manager with an empty cache.
func NewUserManager(db *database.DB) *UserManager {
	log.Debug().Msg("Initialized user manager")
	return &UserManager{
		db:    db,
		users: make(map[string]*User),
	}
}

// FetchAll reloads the cache from the users table. Rows with an unknown role
// are logged and skipped.
func (m *UserManager) FetchAll() error {
	records, err := m.db.ListUsers()
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch users")
		return err
	}

	fresh := make(map[string]*User, len(records))
	for _, rec := range records {
		u, err := userFromRecord(&rec)
		if err != nil {
			log.Warn().Err(err).Str("username", rec.Username).Msg("Skipping bad user row")
			continue
		}
		fresh[u.Username] = u
	}

	m.mu.Lock()
	m.users = fresh
	m.mu.Unlock()
	return nil
}

// FetchOne fetches a single user by username. A missing row returns nil
// without error.
func (m *UserManager) FetchOne(username string) *User {
	rec, err := m.db.GetUserByUsername(username)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("Failed to fetch user")
		return nil
	}
	if rec == nil {
		return nil
	}

	u, err := userFromRecord(rec)
	if err != nil {
		log.Warn().Err(err).Str("username", username).Msg("Failed to reconstruct user")
		return nil
	}

	m.mu.Lock()
	if _, cached := m.users[u.Username]; !cached {
		m.users[u.Username] = u
	} else {
		u = m.users[u.Username]
	}
	m.mu.Unlock()
	return u
}

// Create inserts a new user and caches it. The password must already be
// hashed. Usernames are unique: a duplicate is rejected before the insert,
// and the store's unique constraint backs the check up.
func (m *UserManager) Create(username, hashedPassword, firstName, lastName, email string, role Role) (*User, error) {
	if isBlank(username) {
		return nil, errors.New("username cannot be empty")
	}
	if hashedPassword == "" {
		return nil, errors.New("password cannot be empty")
	}

	exists, err := m.db.UserExists(username)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("Failed to check for duplicate username")
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("username %q is already taken", username)
	}

	id, err := m.db.CreateUser(&database.UserRecord{
		Username:  username,
		Password:  hashedPassword,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Role:      role.String(),
	})
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("Failed to create user")
		return nil, err
	}

	u := &User{
		ID:        id,
		Username:  username,
		Password:  hashedPassword,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Role:      role,
	}

	m.mu.Lock()
	m.users[u.Username] = u
	m.mu.Unlock()
	return u, nil
}

// Exists reports whether a username is taken.
func (m *UserManager) Exists(username string) bool {
	exists, err := m.db.UserExists(username)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("Failed to check user")
		return false
	}
	return exists
}

// UpdateRole changes a user's role in the store and the cache.
func (m *UserManager) UpdateRole(username string, role Role) error {
	if err := m.db.UpdateUserRole(username, role.String()); err != nil {
		log.Error().Err(err).Str("username", username).Msg("Failed to update user role")
		return err
	}

	// Swap in a fresh copy rather than mutating the cached object: request
	// goroutines may still hold the old pointer.
	m.mu.Lock()
	if u, cached := m.users[username]; cached {
		updated := *u
		updated.Role = role
		m.users[username] = &updated
	}
	m.mu.Unlock()
	return nil
}

// RequestReviewer records a pending reviewer role request for a user.
// Requesting twice is a no-op.
func (m *UserManager) RequestReviewer(username string) error {
	if err := m.db.AddPendingReviewer(username); err != nil {
		log.Error().Err(err).Str("username", username).Msg("Failed to record reviewer request")
		return err
	}
	return nil
}

// PendingReviewers returns the usernames with an open reviewer request,
// oldest request first.
func (m *UserManager) PendingReviewers() []string {
	records, err := m.db.ListPendingReviewers()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list pending reviewers")
		return nil
	}

	names := make([]string, len(records))
	for i, rec := range records {
		names[i] = rec.Username
	}
	return names
}

// ApproveReviewer clears a user's pending request and promotes them to the
// reviewer role. It reports false when no request was pending.
func (m *UserManager) ApproveReviewer(username string) bool {
	removed, err := m.db.RemovePendingReviewer(username)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("Failed to clear reviewer request")
		return false
	}
	if !removed {
		return false
	}

	if err := m.UpdateRole(username, RoleReviewer); err != nil {
		return false
	}
	return true
}

// Users returns a snapshot of the cached users.
func (m *UserManager) Users() []*User {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]*User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	return users
}

func userFromRecord(rec *database.UserRecord) (*User, error) {
	role, err := ParseRole(rec.Role)
	if err != nil {
		return nil, err
	}
	return &User{
		ID:        rec.ID,
		Username:  rec.Username,
		Password:  rec.Password,
		FirstName: rec.FirstName,
		LastName:  rec.LastName,
		Email:     rec.Email,
		Role:      role,
	}, nil
}
