package handlers

import (
	"net/http"
	"strconv"

	"github.com/syntacsdev/qasystem/internal/qa"
	"github.com/syntacsdev/qasystem/internal/web/middleware"
)

// ReviewList returns cached reviews, filterable by author, question, or answer
func (h *Handlers) ReviewList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if author := query.Get("author"); author != "" {
		respondJSON(w, http.StatusOK, reviewsToViews(h.registry.Reviews.ReviewsByUser(author)))
		return
	}
	if raw := query.Get("question_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			jsonError(w, "invalid question_id", http.StatusBadRequest)
			return
		}
		respondJSON(w, http.StatusOK, reviewsToViews(h.registry.Reviews.ReviewsForQuestion(id)))
		return
	}
	if raw := query.Get("answer_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			jsonError(w, "invalid answer_id", http.StatusBadRequest)
			return
		}
		respondJSON(w, http.StatusOK, reviewsToViews(h.registry.Reviews.ReviewsForAnswer(id)))
		return
	}
	respondJSON(w, http.StatusOK, reviewsToViews(h.registry.Reviews.Reviews()))
}

type createReviewRequest struct {
	Content    string `json:"content"`
	Rating     int    `json:"rating"`
	QuestionID *int64 `json:"question_id"`
	AnswerID   *int64 `json:"answer_id"`
}

// ReviewCreate creates a review of either a question or an answer. Only
// reviewers, instructors, and admins may review.
func (h *Handlers) ReviewCreate(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	switch user.Role {
	case qa.RoleReviewer, qa.RoleInstructor, qa.RoleAdmin, qa.RoleStaff:
	default:
		jsonError(w, "reviewer standing required", http.StatusForbidden)
		return
	}

	var req createReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if (req.QuestionID == nil) == (req.AnswerID == nil) {
		jsonError(w, "exactly one of question_id and answer_id is required", http.StatusBadRequest)
		return
	}

	var (
		review *qa.Review
		err    error
	)
	if req.QuestionID != nil {
		q := h.registry.Questions.FetchOne(*req.QuestionID)
		if q == nil {
			jsonError(w, "question not found", http.StatusNotFound)
			return
		}
		review, err = h.registry.Reviews.CreateForQuestion(user.Username, req.Content, req.Rating, q)
	} else {
		a := h.registry.Answers.FetchOne(*req.AnswerID)
		if a == nil {
			jsonError(w, "answer not found", http.StatusNotFound)
			return
		}
		review, err = h.registry.Reviews.CreateForAnswer(user.Username, req.Content, req.Rating, a)
	}
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Reviewer stats follow the review
	profile := h.registry.Profiles.GetOrCreate(user.Username)
	profile.AverageRating = (profile.AverageRating*float64(profile.TotalReviews) + float64(req.Rating)) /
		float64(profile.TotalReviews+1)
	profile.TotalReviews++
	if err := h.registry.Profiles.Update(profile); err != nil {
		// The review itself stands; the profile counters catch up later
		jsonError(w, "review created but profile update failed", http.StatusCreated)
		return
	}

	respondJSON(w, http.StatusCreated, reviewToView(review))
}

// ReviewDelete removes a review. Only the author or an admin may delete.
func (h *Handlers) ReviewDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		jsonError(w, "invalid review id", http.StatusBadRequest)
		return
	}
	review := h.registry.Reviews.FetchOne(id)
	if review == nil {
		jsonError(w, "review not found", http.StatusNotFound)
		return
	}

	user := middleware.GetUser(r.Context())
	if user.Username != review.Author && user.Role != qa.RoleAdmin {
		jsonError(w, "forbidden", http.StatusForbidden)
		return
	}

	if err := h.registry.Reviews.Delete(review); err != nil {
		jsonError(w, "delete failed", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
