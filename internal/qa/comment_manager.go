package qa

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/syntacsdev/qasystem/internal/database"
)

// CommentManager mirrors an in-memory comment cache against the comments
// table. Each comment references exactly one parent question, resolved
// through the question manager on reconstruction.
type CommentManager struct {
	db        *database.DB
	questions *QuestionManager

	mu       sync.RWMutex
	comments map[int64]*Comment
}

// NewCommentManager creates the manager with an empty cache.
func NewCommentManager(db *database.DB, questions *QuestionManager) *CommentManager {
	log.Debug().Msg("Initialized comment manager")
	return &CommentManager{
		db:        db,
		questions: questions,
		comments:  make(map[int64]*Comment),
	}
}

// FetchAll reloads the cache from the comments table. Comments whose parent
// question no longer resolves are logged and skipped.
func (m *CommentManager) FetchAll() error {
	records, err := m.db.ListComments()
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch comments")
		return err
	}

	fresh := make(map[int64]*Comment, len(records))
	for _, rec := range records {
		c, err := m.commentFromRecord(&rec, newFetchGuard())
		if err != nil {
			log.Warn().Err(err).Int64("id", rec.ID).Msg("Skipping bad comment row")
			continue
		}
		fresh[c.ID] = c
	}

	m.mu.Lock()
	m.comments = fresh
	m.mu.Unlock()
	return nil
}

// FetchOne fetches a single comment by id, resolving its parent question. A
// missing row returns nil without error.
func (m *CommentManager) FetchOne(id int64) *Comment {
	return m.fetchOne(id, newFetchGuard())
}

func (m *CommentManager) fetchOne(id int64, g *fetchGuard) *Comment {
	if !g.enter("comment", id) {
		return nil
	}
	defer g.leave("comment", id)

	rec, err := m.db.GetComment(id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("Failed to fetch comment")
		return nil
	}
	if rec == nil {
		return nil
	}

	c, err := m.commentFromRecord(rec, g)
	if err != nil {
		log.Warn().Err(err).Int64("id", id).Msg("Failed to reconstruct comment")
		return nil
	}

	m.mu.Lock()
	if _, cached := m.comments[c.ID]; !cached {
		m.comments[c.ID] = c
	} else {
		c = m.comments[c.ID]
	}
	m.mu.Unlock()
	return c
}

func (m *CommentManager) commentFromRecord(rec *database.CommentRecord, g *fetchGuard) (*Comment, error) {
	createdAt, err := parseCreationDate(rec.CreationDate)
	if err != nil {
		return nil, err
	}

	parent := m.questions.fetchOne(rec.ParentID, g)
	if parent == nil {
		return nil, errors.New("parent question not found")
	}

	return NewComment(rec.ID, rec.Username, createdAt, rec.Content, parent)
}

// Create validates, inserts, and caches a new comment on a question.
func (m *CommentManager) Create(author, content string, parent *Question) (*Comment, error) {
	if isBlank(author) {
		return nil, errors.New("comment author cannot be empty")
	}
	if isBlank(content) {
		return nil, errors.New("comment content cannot be empty")
	}
	if parent == nil {
		return nil, errors.New("comment must reference a parent question")
	}

	createdAt := time.Now()
	id, err := m.db.CreateComment(&database.CommentRecord{
		Username:     author,
		CreationDate: formatCreationDate(createdAt),
		Content:      content,
		ParentID:     parent.ID,
	})
	if err != nil {
		log.Error().Err(err).Str("author", author).Msg("Failed to create comment")
		return nil, err
	}

	c, err := NewComment(id, author, createdAt, content, parent)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.comments[c.ID] = c
	m.mu.Unlock()
	return c, nil
}

// Comments returns a snapshot of the cached comments.
func (m *CommentManager) Comments() []*Comment {
	m.mu.RLock()
	defer m.mu.RUnlock()

	comments := make([]*Comment, 0, len(m.comments))
	for _, c := range m.comments {
		comments = append(comments, c)
	}
	return comments
}

// CommentsForQuestion filters the cached comments by parent question id.
func (m *CommentManager) CommentsForQuestion(questionID int64) []*Comment {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []*Comment
	for _, c := range m.comments {
		if c.Parent.ID == questionID {
			results = append(results, c)
		}
	}
	return results
}
