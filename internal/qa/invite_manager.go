package qa

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/syntacsdev/qasystem/internal/database"
)

// InviteManager mirrors an in-memory invitation code cache against the
// invitation_codes table. Codes are keyed by their exact token and are
// single-use: Unused is the only state a code can be spent from, and Used is
// terminal.
type InviteManager struct {
	db *database.DB

	mu    sync.RWMutex
	codes map[string]*InviteCode
}

// NewInviteManager creates the manager with an empty cache.
func NewInviteManager(db *database.DB) *InviteManager {
	log.Debug().Msg("Initialized invite manager")
	return &InviteManager{
		db:    db,
		codes: make(map[string]*InviteCode),
	}
}

// FetchAll reloads the cache from the invitation_codes table.
func (m *InviteManager) FetchAll() error {
	records, err := m.db.ListInviteCodes()
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch invitation codes")
		return err
	}

	fresh := make(map[string]*InviteCode, len(records))
	for _, rec := range records {
		fresh[rec.Code] = &InviteCode{Code: rec.Code, Used: rec.IsUsed}
	}

	m.mu.Lock()
	m.codes = fresh
	m.mu.Unlock()
	return nil
}

// Create generates a short random token, inserts it unused, and caches it.
func (m *InviteManager) Create() (*InviteCode, error) {
	code := strings.SplitN(uuid.NewString(), "-", 2)[0]

	if err := m.db.CreateInviteCode(code); err != nil {
		log.Error().Err(err).Msg("Failed to create invitation code")
		return nil, err
	}

	invite := &InviteCode{Code: code}
	m.mu.Lock()
	m.codes[code] = invite
	m.mu.Unlock()
	return invite, nil
}

// Validate reports whether a code exists and is still unused. The lookup is
// an exact string match against the store.
func (m *InviteManager) Validate(code string) bool {
	rec, err := m.db.GetInviteCode(code)
	if err != nil {
		log.Error().Err(err).Str("code", code).Msg("Failed to validate invitation code")
		return false
	}
	return rec != nil && !rec.IsUsed
}

// Use spends a code. The store-side conditional update is a single step, so
// a spent or unknown code is a no-op reporting false; a code never returns
// to the unused state.
func (m *InviteManager) Use(code string) bool {
	spent, err := m.db.RedeemInviteCode(code)
	if err != nil {
		log.Error().Err(err).Str("code", code).Msg("Failed to use invitation code")
		return false
	}
	if !spent {
		return false
	}

	m.mu.Lock()
	if invite, cached := m.codes[code]; cached {
		invite.Used = true
	} else {
		m.codes[code] = &InviteCode{Code: code, Used: true}
	}
	m.mu.Unlock()
	return true
}

// Codes returns a snapshot of the cached invitation codes.
func (m *InviteManager) Codes() []*InviteCode {
	m.mu.RLock()
	defer m.mu.RUnlock()

	codes := make([]*InviteCode, 0, len(m.codes))
	for _, c := range m.codes {
		codes = append(codes, c)
	}
	return codes
}
