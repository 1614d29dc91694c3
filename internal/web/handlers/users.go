package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/syntacsdev/qasystem/internal/qa"
	"github.com/syntacsdev/qasystem/internal/web/feed"
	"github.com/syntacsdev/qasystem/internal/web/middleware"
)

// UserList returns all users
func (h *Handlers) UserList(w http.ResponseWriter, r *http.Request) {
	users := h.registry.Users.Users()
	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, userToView(u))
	}
	respondJSON(w, http.StatusOK, views)
}

// RequestReviewer queues the session user for reviewer approval
func (h *Handlers) RequestReviewer(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user.Role == qa.RoleReviewer {
		jsonError(w, "already a reviewer", http.StatusConflict)
		return
	}

	if err := h.registry.Users.RequestReviewer(user.Username); err != nil {
		jsonError(w, "request failed", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]bool{"success": true})
}

// PendingReviewers lists usernames awaiting reviewer approval
func (h *Handlers) PendingReviewers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.registry.Users.PendingReviewers())
}

// ApproveReviewer promotes a pending user to reviewer
func (h *Handlers) ApproveReviewer(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if !h.registry.Users.ApproveReviewer(username) {
		jsonError(w, "no pending request for user", http.StatusNotFound)
		return
	}

	log.Info().Str("username", username).Msg("Reviewer approved")
	h.feedHub.Publish(feed.EventReviewerApproved, map[string]string{"username": username})
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ProfileGet returns a reviewer profile, creating a default one on first
// access
func (h *Handlers) ProfileGet(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if !h.registry.Users.Exists(username) {
		jsonError(w, "user not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, profileToView(h.registry.Profiles.GetOrCreate(username)))
}

type updateProfileRequest struct {
	Bio             string `json:"bio"`
	Expertise       string `json:"expertise"`
	YearsExperience int    `json:"years_experience"`
}

// ProfileUpdate updates the session user's own reviewer profile
func (h *Handlers) ProfileUpdate(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	profile := h.registry.Profiles.GetOrCreate(user.Username)
	profile.Bio = req.Bio
	profile.Expertise = req.Expertise
	profile.YearsExperience = req.YearsExperience
	if err := h.registry.Profiles.Update(profile); err != nil {
		jsonError(w, "update failed", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, profileToView(profile))
}

// InviteCreate mints a new invitation code
func (h *Handlers) InviteCreate(w http.ResponseWriter, r *http.Request) {
	code, err := h.registry.Invites.Create()
	if err != nil {
		jsonError(w, "failed to create invitation code", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"code": code.Code})
}

// InviteList returns all invitation codes with their redemption state
func (h *Handlers) InviteList(w http.ResponseWriter, r *http.Request) {
	codes := h.registry.Invites.Codes()
	type inviteView struct {
		Code string `json:"code"`
		Used bool   `json:"used"`
	}
	views := make([]inviteView, 0, len(codes))
	for _, c := range codes {
		views = append(views, inviteView{Code: c.Code, Used: c.Used})
	}
	respondJSON(w, http.StatusOK, views)
}
