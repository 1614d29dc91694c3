package qa

import (
	"sync"

	"github.com/syntacsdev/qasystem/internal/database"
)

// Registry is the application context: one instance of every manager plus
// the currently authenticated user, constructed once against a shared store
// handle and passed explicitly to whatever needs manager access.
type Registry struct {
	db *database.DB

	Users     *UserManager
	Answers   *AnswerManager
	Questions *QuestionManager
	Comments  *CommentManager
	Reviews   *ReviewManager
	Messages  *MessageManager
	Invites   *InviteManager
	Profiles  *ProfileManager

	mu          sync.RWMutex
	currentUser *User
}

// NewRegistry wires the managers together. Questions resolve answers,
// comments resolve questions, reviews resolve both, so construction order
// follows the reference graph.
func NewRegistry(db *database.DB) *Registry {
	answers := NewAnswerManager(db)
	questions := NewQuestionManager(db, answers)

	return &Registry{
		db:        db,
		Users:     NewUserManager(db),
		Answers:   answers,
		Questions: questions,
		Comments:  NewCommentManager(db, questions),
		Reviews:   NewReviewManager(db, questions, answers),
		Messages:  NewMessageManager(db),
		Invites:   NewInviteManager(db),
		Profiles:  NewProfileManager(db),
	}
}

// FetchAll resyncs every cache from the store, leaves first so that
// referencing managers find their targets already materialized. The first
// failure stops the resync.
func (r *Registry) FetchAll() error {
	resyncs := []func() error{
		r.Users.FetchAll,
		r.Answers.FetchAll,
		r.Questions.FetchAll,
		r.Comments.FetchAll,
		r.Reviews.FetchAll,
		r.Messages.FetchAll,
		r.Invites.FetchAll,
		r.Profiles.FetchAll,
	}
	for _, resync := range resyncs {
		if err := resync(); err != nil {
			return err
		}
	}
	return nil
}

// CurrentUser returns the authenticated user, or nil before login.
func (r *Registry) CurrentUser() *User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.currentUser
}

// SetCurrentUser records the authenticated user (nil on logout).
func (r *Registry) SetCurrentUser(u *User) {
	r.mu.Lock()
	r.currentUser = u
	r.mu.Unlock()
}
