package qa

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/syntacsdev/qasystem/internal/database"
)

// ReviewManager mirrors an in-memory review cache against the reviews table.
// A review row references exactly one of a question or an answer; the owning
// manager resolves whichever side is set.
type ReviewManager struct {
	db        *database.DB
	questions *QuestionManager
	answers   *AnswerManager

	mu      sync.RWMutex
	reviews map[int64]*Review
}

// NewReviewManager creates the manager with an empty cache.
func NewReviewManager(db *database.DB, questions *QuestionManager, answers *AnswerManager) *ReviewManager {
	log.Debug().Msg("Initialized review manager")
	return &ReviewManager{
		db:        db,
		questions: questions,
		answers:   answers,
		reviews:   make(map[int64]*Review),
	}
}

// FetchAll reloads the cache from the reviews table. Rows whose target can
// no longer be resolved, or that carry an invalid rating, are logged and
// skipped.
func (m *ReviewManager) FetchAll() error {
	records, err := m.db.ListReviews()
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch reviews")
		return err
	}

	fresh := make(map[int64]*Review, len(records))
	for _, rec := range records {
		r, err := m.reviewFromRecord(&rec, newFetchGuard())
		if err != nil {
			log.Warn().Err(err).Int64("id", rec.ID).Msg("Skipping bad review row")
			continue
		}
		fresh[r.ID] = r
	}

	m.mu.Lock()
	m.reviews = fresh
	m.mu.Unlock()
	return nil
}

// FetchOne fetches a single review by id, resolving its target. A missing
// row returns nil without error.
func (m *ReviewManager) FetchOne(id int64) *Review {
	rec, err := m.db.GetReview(id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("Failed to fetch review")
		return nil
	}
	if rec == nil {
		return nil
	}

	r, err := m.reviewFromRecord(rec, newFetchGuard())
	if err != nil {
		log.Warn().Err(err).Int64("id", id).Msg("Failed to reconstruct review")
		return nil
	}

	m.mu.Lock()
	if _, cached := m.reviews[r.ID]; !cached {
		m.reviews[r.ID] = r
	} else {
		r = m.reviews[r.ID]
	}
	m.mu.Unlock()
	return r
}

func (m *ReviewManager) reviewFromRecord(rec *database.ReviewRecord, g *fetchGuard) (*Review, error) {
	createdAt, err := parseCreationDate(rec.CreationDate)
	if err != nil {
		return nil, err
	}

	switch {
	case rec.QuestionID != nil:
		q := m.questions.fetchOne(*rec.QuestionID, g)
		if q == nil {
			return nil, errors.New("reviewed question not found")
		}
		return NewQuestionReview(rec.ID, rec.Username, createdAt, rec.Content, rec.Rating, q)
	case rec.AnswerID != nil:
		a := m.answers.fetchOne(*rec.AnswerID, g)
		if a == nil {
			return nil, errors.New("reviewed answer not found")
		}
		return NewAnswerReview(rec.ID, rec.Username, createdAt, rec.Content, rec.Rating, a)
	}
	return nil, errors.New("review row references neither a question nor an answer")
}

// CreateForQuestion validates, inserts, and caches a new question review.
func (m *ReviewManager) CreateForQuestion(author, content string, rating int, question *Question) (*Review, error) {
	if question == nil {
		return nil, errors.New("question review must reference a question")
	}
	return m.create(author, content, rating, &question.ID, nil, func(id int64, createdAt time.Time) (*Review, error) {
		return NewQuestionReview(id, author, createdAt, content, rating, question)
	})
}

// CreateForAnswer validates, inserts, and caches a new answer review.
func (m *ReviewManager) CreateForAnswer(author, content string, rating int, answer *Answer) (*Review, error) {
	if answer == nil {
		return nil, errors.New("answer review must reference an answer")
	}
	return m.create(author, content, rating, nil, &answer.ID, func(id int64, createdAt time.Time) (*Review, error) {
		return NewAnswerReview(id, author, createdAt, content, rating, answer)
	})
}

func (m *ReviewManager) create(author, content string, rating int, questionID, answerID *int64, build func(int64, time.Time) (*Review, error)) (*Review, error) {
	if isBlank(author) {
		return nil, errors.New("review author cannot be empty")
	}
	if isBlank(content) {
		return nil, errors.New("review content cannot be empty")
	}
	if rating < 1 || rating > 5 {
		return nil, errors.New("review rating must be between 1 and 5")
	}

	createdAt := time.Now()
	id, err := m.db.CreateReview(&database.ReviewRecord{
		Username:     author,
		CreationDate: formatCreationDate(createdAt),
		Content:      content,
		Rating:       rating,
		QuestionID:   questionID,
		AnswerID:     answerID,
	})
	if err != nil {
		log.Error().Err(err).Str("author", author).Msg("Failed to create review")
		return nil, err
	}

	r, err := build(id, createdAt)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.reviews[r.ID] = r
	m.mu.Unlock()
	return r, nil
}

// Delete removes a review from the store and evicts it from the cache.
func (m *ReviewManager) Delete(r *Review) error {
	if err := m.db.DeleteReview(r.ID); err != nil {
		log.Error().Err(err).Int64("id", r.ID).Msg("Failed to delete review")
		return err
	}

	m.mu.Lock()
	delete(m.reviews, r.ID)
	m.mu.Unlock()
	return nil
}

// Reviews returns a snapshot of the cached reviews.
func (m *ReviewManager) Reviews() []*Review {
	m.mu.RLock()
	defer m.mu.RUnlock()

	reviews := make([]*Review, 0, len(m.reviews))
	for _, r := range m.reviews {
		reviews = append(reviews, r)
	}
	return reviews
}

// ReviewsByUser filters the cached reviews by reviewer name.
func (m *ReviewManager) ReviewsByUser(username string) []*Review {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []*Review
	for _, r := range m.reviews {
		if r.Author == username {
			results = append(results, r)
		}
	}
	return results
}

// ReviewsForQuestion filters the cached reviews by reviewed question id.
func (m *ReviewManager) ReviewsForQuestion(questionID int64) []*Review {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []*Review
	for _, r := range m.reviews {
		if r.IsQuestionReview() && r.ReviewedQuestion().ID == questionID {
			results = append(results, r)
		}
	}
	return results
}

// ReviewsForAnswer filters the cached reviews by reviewed answer id.
func (m *ReviewManager) ReviewsForAnswer(answerID int64) []*Review {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []*Review
	for _, r := range m.reviews {
		if r.IsAnswerReview() && r.ReviewedAnswer().ID == answerID {
			results = append(results, r)
		}
	}
	return results
}
