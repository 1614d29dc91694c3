package qa

import (
	"errors"
	"sync"
	"time"
)

// Question is a user-submitted question. Its answers are held by id in the
// store (a comma-joined column) and materialized lazily on reconstruction.
// Answer and tag state carries its own lock: the manager cache hands the same
// object to every request goroutine.
type Question struct {
	Submission
	Title   string
	Content string

	mu      sync.RWMutex
	tags    []string
	answers []*Answer

	// placeholder marks an id-only reference returned when a resolution
	// pass re-enters a question already being resolved.
	placeholder bool
}

// NewQuestion validates and constructs a question.
func NewQuestion(id int64, author string, createdAt time.Time, title, content string, answers []*Answer, tags []string) (*Question, error) {
	if id <= 0 {
		return nil, errors.New("question id must be greater than 0")
	}
	if isBlank(title) {
		return nil, errors.New("question title cannot be empty")
	}
	if isBlank(content) {
		return nil, errors.New("question content cannot be empty")
	}
	if isBlank(author) {
		return nil, errors.New("question author cannot be empty")
	}

	q := &Question{
		Submission: Submission{ID: id, Author: author, CreatedAt: createdAt},
		Title:      title,
		Content:    content,
		tags:       append([]string(nil), tags...),
	}
	q.AddAnswers(answers...)
	return q, nil
}

// newQuestionPlaceholder builds an id-only reference used to break
// resolution cycles.
func newQuestionPlaceholder(id int64) *Question {
	return &Question{Submission: Submission{ID: id}, placeholder: true}
}

// IsPlaceholder reports whether this question is an unresolved id-only
// reference rather than a fully reconstructed entity.
func (q *Question) IsPlaceholder() bool {
	return q.placeholder
}

// Answers returns a snapshot of the question's answers.
func (q *Question) Answers() []*Answer {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return append([]*Answer(nil), q.answers...)
}

// AddAnswers appends answers the question does not already hold, comparing by
// id. It reports whether anything was added.
func (q *Question) AddAnswers(answers ...*Answer) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	added := false
	for _, a := range answers {
		if a == nil || q.hasAnswer(a.ID) {
			continue
		}
		q.answers = append(q.answers, a)
		added = true
	}
	return added
}

func (q *Question) hasAnswer(id int64) bool {
	for _, a := range q.answers {
		if a.ID == id {
			return true
		}
	}
	return false
}

// Tags returns a snapshot of the question's tags.
func (q *Question) Tags() []string {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return append([]string(nil), q.tags...)
}

// AddTags appends tags not already present (exact string match) and reports
// whether anything was added.
func (q *Question) AddTags(tags ...string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	added := false
	for _, t := range tags {
		if q.hasTag(t) {
			continue
		}
		q.tags = append(q.tags, t)
		added = true
	}
	return added
}

// RemoveTags removes the given tags and reports whether any were found.
func (q *Question) RemoveTags(tags ...string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	removed := false
	for _, t := range tags {
		for i, existing := range q.tags {
			if existing == t {
				q.tags = append(q.tags[:i], q.tags[i+1:]...)
				removed = true
				break
			}
		}
	}
	return removed
}

func (q *Question) hasTag(tag string) bool {
	for _, t := range q.tags {
		if t == tag {
			return true
		}
	}
	return false
}
