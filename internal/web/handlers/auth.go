package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/syntacsdev/qasystem/internal/auth"
	"github.com/syntacsdev/qasystem/internal/qa"
	"github.com/syntacsdev/qasystem/internal/web/middleware"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates a user and sets the session cookie
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		jsonError(w, "username and password are required", http.StatusBadRequest)
		return
	}

	user := h.authService.Login(req.Username, req.Password)
	if user == nil {
		jsonError(w, "invalid username or password", http.StatusUnauthorized)
		return
	}

	session, err := h.authService.CreateSession(user.Username)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create session")
		jsonError(w, "login failed", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    session.ID,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	h.registry.SetCurrentUser(user)
	log.Info().Str("username", user.Username).Msg("User logged in")
	respondJSON(w, http.StatusOK, userToView(user))
}

// Logout deletes the session and clears the cookie
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("session"); err == nil {
		if err := h.authService.DeleteSession(cookie.Value); err != nil {
			log.Debug().Err(err).Msg("Failed to delete session during logout")
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	h.registry.SetCurrentUser(nil)
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type registerRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	InviteCode string `json:"invite_code"`
}

// Register creates a new account. Reviewer accounts require a valid unused
// invitation code; the code is consumed only after the rest of the request
// checks out.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		jsonError(w, "username and password are required", http.StatusBadRequest)
		return
	}

	role := qa.RoleStudent
	if req.Role != "" {
		parsed, err := qa.ParseRole(req.Role)
		if err != nil {
			jsonError(w, "unknown role", http.StatusBadRequest)
			return
		}
		if parsed == qa.RoleAdmin {
			jsonError(w, "cannot self-register as admin", http.StatusForbidden)
			return
		}
		role = parsed
	}

	if role == qa.RoleReviewer {
		if req.InviteCode == "" {
			jsonError(w, "reviewer registration requires an invitation code", http.StatusForbidden)
			return
		}
		if !h.registry.Invites.Validate(req.InviteCode) {
			jsonError(w, "invalid or used invitation code", http.StatusForbidden)
			return
		}
	}

	if h.registry.Users.Exists(req.Username) {
		jsonError(w, "username already taken", http.StatusConflict)
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("Failed to hash password")
		jsonError(w, "registration failed", http.StatusInternalServerError)
		return
	}

	user, err := h.registry.Users.Create(req.Username, hashed, req.FirstName, req.LastName, req.Email, role)
	if err != nil {
		jsonError(w, "registration failed", http.StatusConflict)
		return
	}

	if role == qa.RoleReviewer && !h.registry.Invites.Use(req.InviteCode) {
		// The code was redeemed between validation and use. The account
		// exists but without reviewer standing.
		if err := h.registry.Users.UpdateRole(user.Username, qa.RoleStudent); err != nil {
			log.Error().Err(err).Str("username", user.Username).Msg("Failed to demote after invite race")
		}
		jsonError(w, "invitation code already used", http.StatusConflict)
		return
	}

	log.Info().Str("username", user.Username).Str("role", role.String()).Msg("User registered")
	respondJSON(w, http.StatusCreated, userToView(user))
}

// Me returns the authenticated user
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		jsonError(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	respondJSON(w, http.StatusOK, userToView(user))
}
