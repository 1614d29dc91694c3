package qa

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/syntacsdev/qasystem/internal/database"
	"github.com/syntacsdev/qasystem/internal/strutil"
)

// similarityThreshold is the minimum normalized similarity for a question to
// appear in title-search results.
const similarityThreshold = 0.35

// QuestionManager mirrors an in-memory question cache against the questions
// table. The table stores answer references as a comma-joined id column;
// reconstruction resolves them one by one through the answer manager.
type QuestionManager struct {
	db      *database.DB
	answers *AnswerManager

	mu        sync.RWMutex
	questions map[int64]*Question
}

// NewQuestionManager creates the manager with an empty cache.
func NewQuestionManager(db *database.DB, answers *AnswerManager) *QuestionManager {
	log.Debug().Msg("Initialized question manager")
	return &QuestionManager{
		db:        db,
		answers:   answers,
		questions: make(map[int64]*Question),
	}
}

// FetchAll reloads the cache from the questions table. On store failure the
// cache keeps its prior contents; rows that fail reconstruction are logged
// and skipped.
func (m *QuestionManager) FetchAll() error {
	records, err := m.db.ListQuestions()
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch questions")
		return err
	}

	fresh := make(map[int64]*Question, len(records))
	for _, rec := range records {
		q, err := m.questionFromRecord(&rec, newFetchGuard())
		if err != nil {
			log.Warn().Err(err).Int64("id", rec.ID).Msg("Skipping bad question row")
			continue
		}
		fresh[q.ID] = q
	}

	m.mu.Lock()
	m.questions = fresh
	m.mu.Unlock()
	return nil
}

// FetchOne fetches a single question by id, resolving its answer references.
// A missing row returns nil without error; a store failure is logged and
// also returns nil.
func (m *QuestionManager) FetchOne(id int64) *Question {
	return m.fetchOne(id, newFetchGuard())
}

func (m *QuestionManager) fetchOne(id int64, g *fetchGuard) *Question {
	if !g.enter("question", id) {
		return newQuestionPlaceholder(id)
	}
	defer g.leave("question", id)

	rec, err := m.db.GetQuestion(id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("Failed to fetch question")
		return nil
	}
	if rec == nil {
		return nil
	}

	q, err := m.questionFromRecord(rec, g)
	if err != nil {
		log.Warn().Err(err).Int64("id", id).Msg("Failed to reconstruct question")
		return nil
	}

	m.mu.Lock()
	if _, cached := m.questions[q.ID]; !cached {
		m.questions[q.ID] = q
	} else {
		q = m.questions[q.ID]
	}
	m.mu.Unlock()
	return q
}

// questionFromRecord reconstructs a question, pulling each referenced answer
// through the answer manager. Answer references that no longer resolve are
// logged and dropped, leaving a partially populated answer list.
func (m *QuestionManager) questionFromRecord(rec *database.QuestionRecord, g *fetchGuard) (*Question, error) {
	createdAt, err := parseCreationDate(rec.CreationDate)
	if err != nil {
		return nil, err
	}

	answerIDs, err := DecodeIDList(rec.Answers)
	if err != nil {
		return nil, err
	}

	var answers []*Answer
	for _, answerID := range answerIDs {
		a := m.answers.fetchOne(answerID, g)
		if a == nil {
			log.Warn().Int64("question_id", rec.ID).Int64("answer_id", answerID).Msg("Dangling answer reference")
			continue
		}
		answers = append(answers, a)
	}

	var tags []string
	for _, t := range strings.Split(rec.Tags, ",") {
		if t != "" {
			tags = append(tags, t)
		}
	}

	return NewQuestion(rec.ID, rec.Username, createdAt, rec.Title, rec.Content, answers, tags)
}

// Create validates, inserts, and caches a new question. The stored tag list
// is the supplied tags merged with tokens derived from the title. A failed
// insert caches nothing.
func (m *QuestionManager) Create(author, title, content string, tags []string) (*Question, error) {
	if isBlank(author) {
		return nil, errors.New("question author cannot be empty")
	}
	if isBlank(title) {
		return nil, errors.New("question title cannot be empty")
	}
	if isBlank(content) {
		return nil, errors.New("question content cannot be empty")
	}

	tags = DeriveTags(title, tags)
	createdAt := time.Now()

	id, err := m.db.CreateQuestion(&database.QuestionRecord{
		Username:     author,
		CreationDate: formatCreationDate(createdAt),
		Title:        title,
		Content:      content,
		Answers:      "",
		Tags:         strings.Join(tags, ","),
	})
	if err != nil {
		log.Error().Err(err).Str("author", author).Msg("Failed to create question")
		return nil, err
	}

	q, err := NewQuestion(id, author, createdAt, title, content, nil, tags)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.questions[q.ID] = q
	m.mu.Unlock()
	return q, nil
}

// Delete removes a question from the store and evicts it from the cache.
func (m *QuestionManager) Delete(q *Question) error {
	if err := m.db.DeleteQuestion(q.ID); err != nil {
		log.Error().Err(err).Int64("id", q.ID).Msg("Failed to delete question")
		return err
	}

	m.mu.Lock()
	delete(m.questions, q.ID)
	m.mu.Unlock()
	return nil
}

// AddAnswer attaches an answer to a question and appends its id to the
// question's stored answer list. The store-side read-modify-write runs in
// one transaction.
func (m *QuestionManager) AddAnswer(q *Question, a *Answer) error {
	// Store first: a failed append must not leave the cached question
	// holding an answer the store never saw.
	if err := m.db.AppendQuestionAnswer(q.ID, a.ID); err != nil {
		log.Error().Err(err).Int64("question_id", q.ID).Int64("answer_id", a.ID).Msg("Failed to append answer")
		return err
	}

	q.AddAnswers(a)
	return nil
}

// Questions returns a snapshot of the cached questions.
func (m *QuestionManager) Questions() []*Question {
	m.mu.RLock()
	defer m.mu.RUnlock()

	questions := make([]*Question, 0, len(m.questions))
	for _, q := range m.questions {
		questions = append(questions, q)
	}
	return questions
}

// SearchByTag returns the cached questions with at least one tag containing
// the query as a case-insensitive substring. Only questions fetched since
// the last resync are considered.
func (m *QuestionManager) SearchByTag(query string) []*Question {
	query = strings.ToLower(query)

	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []*Question
	for _, q := range m.questions {
		for _, tag := range q.Tags() {
			if strings.Contains(strings.ToLower(tag), query) {
				results = append(results, q)
				break
			}
		}
	}
	return results
}

// SearchByTitle ranks cached questions by title similarity to the query and
// returns those above the similarity threshold, best match first.
func (m *QuestionManager) SearchByTitle(query string) []*Question {
	type scored struct {
		q     *Question
		score float64
	}

	m.mu.RLock()
	var matches []scored
	for _, q := range m.questions {
		score := strutil.Similarity(q.Title, query)
		if score >= similarityThreshold {
			matches = append(matches, scored{q, score})
		}
	}
	m.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].q.ID < matches[j].q.ID
	})

	results := make([]*Question, len(matches))
	for i, s := range matches {
		results[i] = s.q
	}
	return results
}
