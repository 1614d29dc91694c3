package handlers

import (
	"net/http"

	"github.com/syntacsdev/qasystem/internal/qa"
	"github.com/syntacsdev/qasystem/internal/web/feed"
	"github.com/syntacsdev/qasystem/internal/web/middleware"
)

// QuestionList returns all cached questions, or the results of a tag/title
// search when a query parameter is present.
func (h *Handlers) QuestionList(w http.ResponseWriter, r *http.Request) {
	if tag := r.URL.Query().Get("tag"); tag != "" {
		respondJSON(w, http.StatusOK, questionsToViews(h.registry.Questions.SearchByTag(tag)))
		return
	}
	if title := r.URL.Query().Get("title"); title != "" {
		respondJSON(w, http.StatusOK, questionsToViews(h.registry.Questions.SearchByTitle(title)))
		return
	}
	respondJSON(w, http.StatusOK, questionsToViews(h.registry.Questions.Questions()))
}

// QuestionGet returns one question by id, reading through to the store
func (h *Handlers) QuestionGet(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		jsonError(w, "invalid question id", http.StatusBadRequest)
		return
	}
	q := h.registry.Questions.FetchOne(id)
	if q == nil {
		jsonError(w, "question not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, questionToView(q))
}

type createQuestionRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// QuestionCreate creates a question authored by the session user
func (h *Handlers) QuestionCreate(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	var req createQuestionRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	q, err := h.registry.Questions.Create(user.Username, req.Title, req.Content, req.Tags)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.feedHub.Publish(feed.EventQuestionCreated, questionToView(q))
	respondJSON(w, http.StatusCreated, questionToView(q))
}

// QuestionDelete removes a question. Only the author or an admin may delete.
func (h *Handlers) QuestionDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		jsonError(w, "invalid question id", http.StatusBadRequest)
		return
	}
	q := h.registry.Questions.FetchOne(id)
	if q == nil {
		jsonError(w, "question not found", http.StatusNotFound)
		return
	}

	user := middleware.GetUser(r.Context())
	if user.Username != q.Author && user.Role != qa.RoleAdmin {
		jsonError(w, "forbidden", http.StatusForbidden)
		return
	}

	if err := h.registry.Questions.Delete(q); err != nil {
		jsonError(w, "delete failed", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type createAnswerRequest struct {
	Content string `json:"content"`
}

// QuestionAddAnswer creates an answer and attaches it to the question
func (h *Handlers) QuestionAddAnswer(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		jsonError(w, "invalid question id", http.StatusBadRequest)
		return
	}
	q := h.registry.Questions.FetchOne(id)
	if q == nil {
		jsonError(w, "question not found", http.StatusNotFound)
		return
	}

	user := middleware.GetUser(r.Context())
	var req createAnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	a, err := h.registry.Answers.Create(user.Username, req.Content)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.registry.Questions.AddAnswer(q, a); err != nil {
		jsonError(w, "failed to attach answer", http.StatusInternalServerError)
		return
	}

	h.feedHub.Publish(feed.EventAnswerAdded, map[string]any{
		"question_id": q.ID,
		"answer":      answerToView(a),
	})
	respondJSON(w, http.StatusCreated, answerToView(a))
}

// QuestionComments returns the comments on one question
func (h *Handlers) QuestionComments(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		jsonError(w, "invalid question id", http.StatusBadRequest)
		return
	}

	comments := h.registry.Comments.CommentsForQuestion(id)
	views := make([]commentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, commentToView(c))
	}
	respondJSON(w, http.StatusOK, views)
}

type createCommentRequest struct {
	Content string `json:"content"`
}

// QuestionAddComment creates a comment on the question
func (h *Handlers) QuestionAddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		jsonError(w, "invalid question id", http.StatusBadRequest)
		return
	}
	q := h.registry.Questions.FetchOne(id)
	if q == nil {
		jsonError(w, "question not found", http.StatusNotFound)
		return
	}

	user := middleware.GetUser(r.Context())
	var req createCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.registry.Comments.Create(user.Username, req.Content, q)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	respondJSON(w, http.StatusCreated, commentToView(c))
}
