package qa

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/syntacsdev/qasystem/internal/database"
)

// AnswerManager mirrors an in-memory answer cache against the answers table.
type AnswerManager struct {
	db *database.DB

	mu      sync.RWMutex
	answers map[int64]*Answer
}

// NewAnswerManager creates the manager with an empty cache.
func NewAnswerManager(db *database.DB) *AnswerManager {
	log.Debug().Msg("Initialized answer manager")
	return &AnswerManager{
		db:      db,
		answers: make(map[int64]*Answer),
	}
}

// FetchAll reloads the cache from the answers table. On store failure the
// cache keeps its prior contents; rows that fail reconstruction are logged
// and skipped.
func (m *AnswerManager) FetchAll() error {
	records, err := m.db.ListAnswers()
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch answers")
		return err
	}

	fresh := make(map[int64]*Answer, len(records))
	for _, rec := range records {
		a, err := answerFromRecord(&rec)
		if err != nil {
			log.Warn().Err(err).Int64("id", rec.ID).Msg("Skipping bad answer row")
			continue
		}
		fresh[a.ID] = a
	}

	m.mu.Lock()
	m.answers = fresh
	m.mu.Unlock()
	return nil
}

// FetchOne fetches a single answer by id. A missing row returns nil without
// error; a store failure is logged and also returns nil.
func (m *AnswerManager) FetchOne(id int64) *Answer {
	return m.fetchOne(id, newFetchGuard())
}

func (m *AnswerManager) fetchOne(id int64, g *fetchGuard) *Answer {
	if !g.enter("answer", id) {
		return newAnswerPlaceholder(id)
	}
	defer g.leave("answer", id)

	rec, err := m.db.GetAnswer(id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("Failed to fetch answer")
		return nil
	}
	if rec == nil {
		return nil
	}

	a, err := answerFromRecord(rec)
	if err != nil {
		log.Warn().Err(err).Int64("id", id).Msg("Failed to reconstruct answer")
		return nil
	}

	m.mu.Lock()
	if _, cached := m.answers[a.ID]; !cached {
		m.answers[a.ID] = a
	} else {
		a = m.answers[a.ID]
	}
	m.mu.Unlock()
	return a
}

// Create validates, inserts, and caches a new answer. A failed insert caches
// nothing.
func (m *AnswerManager) Create(author, content string) (*Answer, error) {
	if isBlank(author) {
		return nil, errors.New("answer author cannot be empty")
	}
	if isBlank(content) {
		return nil, errors.New("answer content cannot be empty")
	}

	createdAt := time.Now()
	id, err := m.db.CreateAnswer(&database.AnswerRecord{
		Username:     author,
		CreationDate: formatCreationDate(createdAt),
		Content:      content,
	})
	if err != nil {
		log.Error().Err(err).Str("author", author).Msg("Failed to create answer")
		return nil, err
	}

	a, err := NewAnswer(id, author, createdAt, content)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.answers[a.ID] = a
	m.mu.Unlock()
	return a, nil
}

// Answers returns a snapshot of the cached answers.
func (m *AnswerManager) Answers() []*Answer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	answers := make([]*Answer, 0, len(m.answers))
	for _, a := range m.answers {
		answers = append(answers, a)
	}
	return answers
}

func answerFromRecord(rec *database.AnswerRecord) (*Answer, error) {
	createdAt, err := parseCreationDate(rec.CreationDate)
	if err != nil {
		return nil, err
	}
	return NewAnswer(rec.ID, rec.Username, createdAt, rec.Content)
}
