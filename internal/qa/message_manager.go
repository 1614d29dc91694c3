package qa

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/syntacsdev/qasystem/internal/database"
)

// MessageManager mirrors an in-memory message cache against the messages
// table. Messages reference users by name only, so no cross-manager
// resolution happens here.
type MessageManager struct {
	db *database.DB

	mu       sync.RWMutex
	messages map[int64]*Message
}

// NewMessageManager creates the manager with an empty cache.
func NewMessageManager(db *database.DB) *MessageManager {
	log.Debug().Msg("Initialized message manager")
	return &MessageManager{
		db:       db,
		messages: make(map[int64]*Message),
	}
}

// FetchAll reloads the cache from the messages table.
func (m *MessageManager) FetchAll() error {
	records, err := m.db.ListMessages()
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch messages")
		return err
	}

	fresh := make(map[int64]*Message, len(records))
	for _, rec := range records {
		fresh[rec.ID] = messageFromRecord(&rec)
	}

	m.mu.Lock()
	m.messages = fresh
	m.mu.Unlock()
	return nil
}

// FetchOne fetches a single message by id. A missing row returns nil without
// error.
func (m *MessageManager) FetchOne(id int64) *Message {
	rec, err := m.db.GetMessage(id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("Failed to fetch message")
		return nil
	}
	if rec == nil {
		return nil
	}

	msg := messageFromRecord(rec)
	m.mu.Lock()
	if _, cached := m.messages[msg.ID]; !cached {
		m.messages[msg.ID] = msg
	} else {
		msg = m.messages[msg.ID]
	}
	m.mu.Unlock()
	return msg
}

// Send validates, inserts, and caches a new unread message.
func (m *MessageManager) Send(sender, receiver, content string) (*Message, error) {
	if isBlank(sender) || isBlank(receiver) {
		return nil, errors.New("message sender and receiver cannot be empty")
	}
	if isBlank(content) {
		return nil, errors.New("message content cannot be empty")
	}

	sentTime := time.Now()
	id, err := m.db.CreateMessage(&database.MessageRecord{
		Sender:   sender,
		Receiver: receiver,
		Content:  content,
		SentTime: sentTime,
		IsRead:   false,
	})
	if err != nil {
		log.Error().Err(err).Str("sender", sender).Str("receiver", receiver).Msg("Failed to send message")
		return nil, err
	}

	msg := &Message{
		ID:       id,
		Sender:   sender,
		Receiver: receiver,
		Content:  content,
		SentTime: sentTime,
	}

	m.mu.Lock()
	m.messages[msg.ID] = msg
	m.mu.Unlock()
	return msg, nil
}

// MarkRead flags a message as read in the store and the cache.
func (m *MessageManager) MarkRead(msg *Message) error {
	if err := m.db.MarkMessageRead(msg.ID); err != nil {
		log.Error().Err(err).Int64("id", msg.ID).Msg("Failed to mark message read")
		return err
	}

	m.mu.Lock()
	msg.Read = true
	m.mu.Unlock()
	return nil
}

// MessagesFor returns the cached messages sent or received by a user, oldest
// first.
func (m *MessageManager) MessagesFor(username string) []*Message {
	return m.filter(func(msg *Message) bool {
		return msg.Sender == username || msg.Receiver == username
	})
}

// UnreadFor returns the cached unread messages received by a user, oldest
// first.
func (m *MessageManager) UnreadFor(username string) []*Message {
	return m.filter(func(msg *Message) bool {
		return msg.Receiver == username && !msg.Read
	})
}

// Conversation returns the cached messages exchanged between two users,
// oldest first.
func (m *MessageManager) Conversation(user1, user2 string) []*Message {
	return m.filter(func(msg *Message) bool {
		return (msg.Sender == user1 && msg.Receiver == user2) ||
			(msg.Sender == user2 && msg.Receiver == user1)
	})
}

// Messages returns a snapshot of the cached messages, oldest first.
func (m *MessageManager) Messages() []*Message {
	return m.filter(func(*Message) bool { return true })
}

func (m *MessageManager) filter(keep func(*Message) bool) []*Message {
	m.mu.RLock()
	var results []*Message
	for _, msg := range m.messages {
		if keep(msg) {
			results = append(results, msg)
		}
	}
	m.mu.RUnlock()

	sort.Slice(results, func(i, j int) bool {
		if results[i].SentTime.Equal(results[j].SentTime) {
			return results[i].ID < results[j].ID
		}
		return results[i].SentTime.Before(results[j].SentTime)
	})
	return results
}

func messageFromRecord(rec *database.MessageRecord) *Message {
	return &Message{
		ID:       rec.ID,
		Sender:   rec.Sender,
		Receiver: rec.Receiver,
		Content:  rec.Content,
		SentTime: rec.SentTime,
		Read:     rec.IsRead,
	}
}
