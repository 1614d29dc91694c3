package qa

import "time"

// Message is a private message between two users.
type Message struct {
	ID       int64
	Sender   string
	Receiver string
	Content  string
	SentTime time.Time
	Read     bool
}
