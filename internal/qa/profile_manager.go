package qa

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/syntacsdev/qasystem/internal/database"
)

// ProfileManager mirrors an in-memory reviewer profile cache against the
// reviewer_profiles table. Profiles are keyed by username.
type ProfileManager struct {
	db *database.DB

	mu       sync.RWMutex
	profiles map[string]*ReviewerProfile
}

// NewProfileManager creates the manager with an empty cache.
func NewProfileManager(db *database.DB) *ProfileManager {
	log.Debug().Msg("Initialized reviewer profile manager")
	return &ProfileManager{
		db:       db,
		profiles: make(map[string]*ReviewerProfile),
	}
}

// FetchAll reloads the cache from the reviewer_profiles table.
func (m *ProfileManager) FetchAll() error {
	records, err := m.db.ListProfiles()
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch reviewer profiles")
		return err
	}

	fresh := make(map[string]*ReviewerProfile, len(records))
	for _, rec := range records {
		fresh[rec.Username] = profileFromRecord(&rec)
	}

	m.mu.Lock()
	m.profiles = fresh
	m.mu.Unlock()
	return nil
}

// GetOrCreate never returns nil. The lookup runs in three tiers: cache, then
// store row, then a freshly inserted default row. If the store is down the
// returned profile is a cached but unpersisted fallback — callers still get
// a usable object and the next successful UpdateProfile persists it.
func (m *ProfileManager) GetOrCreate(username string) *ReviewerProfile {
	m.mu.RLock()
	profile, cached := m.profiles[username]
	m.mu.RUnlock()
	if cached {
		return profile
	}

	rec, err := m.db.GetProfile(username)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("Failed to look up reviewer profile; using unpersisted fallback")
		return m.cacheProfile(&ReviewerProfile{Username: username})
	}
	if rec != nil {
		return m.cacheProfile(profileFromRecord(rec))
	}

	profile = &ReviewerProfile{Username: username}
	if err := m.db.CreateProfile(&database.ProfileRecord{Username: username}); err != nil {
		log.Error().Err(err).Str("username", username).Msg("Failed to insert reviewer profile; using unpersisted fallback")
	}
	return m.cacheProfile(profile)
}

// cacheProfile inserts a profile unless the username is already cached, and
// returns the cached object either way.
func (m *ProfileManager) cacheProfile(profile *ReviewerProfile) *ReviewerProfile {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, cached := m.profiles[profile.Username]; cached {
		return existing
	}
	m.profiles[profile.Username] = profile
	return profile
}

// Update pushes a profile's fields back to its store row.
func (m *ProfileManager) Update(profile *ReviewerProfile) error {
	err := m.db.UpdateProfile(&database.ProfileRecord{
		Username:        profile.Username,
		Bio:             profile.Bio,
		Expertise:       profile.Expertise,
		YearsExperience: profile.YearsExperience,
		TotalReviews:    profile.TotalReviews,
		AverageRating:   profile.AverageRating,
	})
	if err != nil {
		log.Error().Err(err).Str("username", profile.Username).Msg("Failed to update reviewer profile")
		return err
	}
	return nil
}

// Profiles returns a snapshot of the cached reviewer profiles.
func (m *ProfileManager) Profiles() []*ReviewerProfile {
	m.mu.RLock()
	defer m.mu.RUnlock()

	profiles := make([]*ReviewerProfile, 0, len(m.profiles))
	for _, p := range m.profiles {
		profiles = append(profiles, p)
	}
	return profiles
}

func profileFromRecord(rec *database.ProfileRecord) *ReviewerProfile {
	return &ReviewerProfile{
		Username:        rec.Username,
		Bio:             rec.Bio,
		Expertise:       rec.Expertise,
		YearsExperience: rec.YearsExperience,
		TotalReviews:    rec.TotalReviews,
		AverageRating:   rec.AverageRating,
	}
}
