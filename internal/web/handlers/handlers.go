package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/syntacsdev/qasystem/internal/auth"
	"github.com/syntacsdev/qasystem/internal/qa"
	"github.com/syntacsdev/qasystem/internal/web/feed"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	registry    *qa.Registry
	authService *auth.Service
	feedHub     *feed.Hub
}

// New creates a new Handlers instance
func New(registry *qa.Registry, authService *auth.Service, feedHub *feed.Hub) *Handlers {
	return &Handlers{
		registry:    registry,
		authService: authService,
		feedHub:     feedHub,
	}
}

// idParam parses the {id} URL parameter
func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// decodeJSON decodes the request body into dst
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// jsonError sends a JSON error response
func jsonError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, status, map[string]string{"error": message})
}

// View types returned to clients. Entities keep their internals private, so
// the web layer builds explicit projections.

type questionView struct {
	ID        int64        `json:"id"`
	Author    string       `json:"author"`
	CreatedAt time.Time    `json:"created_at"`
	Title     string       `json:"title"`
	Content   string       `json:"content"`
	Tags      []string     `json:"tags"`
	Answers   []answerView `json:"answers"`
}

type answerView struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	Content   string    `json:"content"`
}

type commentView struct {
	ID         int64     `json:"id"`
	Author     string    `json:"author"`
	CreatedAt  time.Time `json:"created_at"`
	Content    string    `json:"content"`
	QuestionID int64     `json:"question_id"`
}

type reviewView struct {
	ID         int64     `json:"id"`
	Author     string    `json:"author"`
	CreatedAt  time.Time `json:"created_at"`
	Content    string    `json:"content"`
	Rating     int       `json:"rating"`
	QuestionID *int64    `json:"question_id,omitempty"`
	AnswerID   *int64    `json:"answer_id,omitempty"`
}

type messageView struct {
	ID       int64     `json:"id"`
	Sender   string    `json:"sender"`
	Receiver string    `json:"receiver"`
	Content  string    `json:"content"`
	SentTime time.Time `json:"sent_time"`
	Read     bool      `json:"read"`
}

type userView struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

type profileView struct {
	Username        string  `json:"username"`
	Bio             string  `json:"bio"`
	Expertise       string  `json:"expertise"`
	YearsExperience int     `json:"years_experience"`
	TotalReviews    int     `json:"total_reviews"`
	AverageRating   float64 `json:"average_rating"`
}

func questionToView(q *qa.Question) questionView {
	answers := q.Answers()
	views := make([]answerView, 0, len(answers))
	for _, a := range answers {
		views = append(views, answerToView(a))
	}
	return questionView{
		ID:        q.ID,
		Author:    q.Author,
		CreatedAt: q.CreatedAt,
		Title:     q.Title,
		Content:   q.Content,
		Tags:      q.Tags(),
		Answers:   views,
	}
}

func questionsToViews(questions []*qa.Question) []questionView {
	views := make([]questionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, questionToView(q))
	}
	return views
}

func answerToView(a *qa.Answer) answerView {
	return answerView{ID: a.ID, Author: a.Author, CreatedAt: a.CreatedAt, Content: a.Content}
}

func commentToView(c *qa.Comment) commentView {
	view := commentView{ID: c.ID, Author: c.Author, CreatedAt: c.CreatedAt, Content: c.Content}
	if c.Parent != nil {
		view.QuestionID = c.Parent.ID
	}
	return view
}

func reviewToView(r *qa.Review) reviewView {
	view := reviewView{
		ID:        r.ID,
		Author:    r.Author,
		CreatedAt: r.CreatedAt,
		Content:   r.Content,
		Rating:    r.Rating,
	}
	if q := r.ReviewedQuestion(); q != nil {
		id := q.ID
		view.QuestionID = &id
	}
	if a := r.ReviewedAnswer(); a != nil {
		id := a.ID
		view.AnswerID = &id
	}
	return view
}

func reviewsToViews(reviews []*qa.Review) []reviewView {
	views := make([]reviewView, 0, len(reviews))
	for _, r := range reviews {
		views = append(views, reviewToView(r))
	}
	return views
}

func messageToView(m *qa.Message) messageView {
	return messageView{
		ID:       m.ID,
		Sender:   m.Sender,
		Receiver: m.Receiver,
		Content:  m.Content,
		SentTime: m.SentTime,
		Read:     m.Read,
	}
}

func messagesToViews(messages []*qa.Message) []messageView {
	views := make([]messageView, 0, len(messages))
	for _, m := range messages {
		views = append(views, messageToView(m))
	}
	return views
}

func userToView(u *qa.User) userView {
	return userView{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role.String(),
	}
}

func profileToView(p *qa.ReviewerProfile) profileView {
	return profileView{
		Username:        p.Username,
		Bio:             p.Bio,
		Expertise:       p.Expertise,
		YearsExperience: p.YearsExperience,
		TotalReviews:    p.TotalReviews,
		AverageRating:   p.AverageRating,
	}
}
