package handlers

import (
	"net/http"

	"github.com/syntacsdev/qasystem/internal/web/feed"
	"github.com/syntacsdev/qasystem/internal/web/middleware"
)

// MessageList returns the session user's messages. ?unread=1 restricts to
// unread received messages; ?with=<username> returns one conversation.
func (h *Handlers) MessageList(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	query := r.URL.Query()

	if query.Get("unread") == "1" {
		respondJSON(w, http.StatusOK, messagesToViews(h.registry.Messages.UnreadFor(user.Username)))
		return
	}
	if other := query.Get("with"); other != "" {
		respondJSON(w, http.StatusOK, messagesToViews(h.registry.Messages.Conversation(user.Username, other)))
		return
	}
	respondJSON(w, http.StatusOK, messagesToViews(h.registry.Messages.MessagesFor(user.Username)))
}

type sendMessageRequest struct {
	Receiver string `json:"receiver"`
	Content  string `json:"content"`
}

// MessageSend sends a message from the session user and pushes it to the feed
func (h *Handlers) MessageSend(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	var req sendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !h.registry.Users.Exists(req.Receiver) {
		jsonError(w, "receiver not found", http.StatusNotFound)
		return
	}

	msg, err := h.registry.Messages.Send(user.Username, req.Receiver, req.Content)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.feedHub.Publish(feed.EventMessageSent, messageToView(msg))
	respondJSON(w, http.StatusCreated, messageToView(msg))
}

// MessageMarkRead flags a received message as read
func (h *Handlers) MessageMarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		jsonError(w, "invalid message id", http.StatusBadRequest)
		return
	}
	msg := h.registry.Messages.FetchOne(id)
	if msg == nil {
		jsonError(w, "message not found", http.StatusNotFound)
		return
	}

	user := middleware.GetUser(r.Context())
	if msg.Receiver != user.Username {
		jsonError(w, "forbidden", http.StatusForbidden)
		return
	}

	if err := h.registry.Messages.MarkRead(msg); err != nil {
		jsonError(w, "failed to mark read", http.StatusInternalServerError)
		return
	}

	h.feedHub.Publish(feed.EventMessageRead, map[string]int64{"id": msg.ID})
	respondJSON(w, http.StatusOK, messageToView(msg))
}
