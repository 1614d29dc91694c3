package qa

import "testing"

func TestSendAndReadMessages(t *testing.T) {
	reg := newTestRegistry(t)

	msg, err := reg.Messages.Send("alice", "bob", "hello")
	if err != nil {
		t.Fatalf("failed to send: %v", err)
	}
	if msg.Read {
		t.Error("messages start unread")
	}

	unread := reg.Messages.UnreadFor("bob")
	if len(unread) != 1 || unread[0].ID != msg.ID {
		t.Fatalf("expected the message unread for bob, got %v", unread)
	}
	if got := reg.Messages.UnreadFor("alice"); len(got) != 0 {
		t.Errorf("sender has nothing unread, got %v", got)
	}

	if err := reg.Messages.MarkRead(msg); err != nil {
		t.Fatalf("failed to mark read: %v", err)
	}
	if got := reg.Messages.UnreadFor("bob"); len(got) != 0 {
		t.Errorf("expected nothing unread after marking, got %v", got)
	}

	// Read flag survives a store round trip
	reg2 := NewRegistry(reg.db)
	fetched := reg2.Messages.FetchOne(msg.ID)
	if fetched == nil || !fetched.Read {
		t.Error("read flag lost across reload")
	}
}

func TestSendMessageValidation(t *testing.T) {
	reg := newTestRegistry(t)

	if _, err := reg.Messages.Send("", "bob", "hello"); err == nil {
		t.Error("expected error for empty sender")
	}
	if _, err := reg.Messages.Send("alice", "", "hello"); err == nil {
		t.Error("expected error for empty receiver")
	}
	if _, err := reg.Messages.Send("alice", "bob", "  "); err == nil {
		t.Error("expected error for blank content")
	}
}

func TestConversationIsSymmetric(t *testing.T) {
	reg := newTestRegistry(t)

	if _, err := reg.Messages.Send("alice", "bob", "one"); err != nil {
		t.Fatalf("failed to send: %v", err)
	}
	if _, err := reg.Messages.Send("bob", "alice", "two"); err != nil {
		t.Fatalf("failed to send: %v", err)
	}
	if _, err := reg.Messages.Send("alice", "carol", "other thread"); err != nil {
		t.Fatalf("failed to send: %v", err)
	}

	ab := reg.Messages.Conversation("alice", "bob")
	ba := reg.Messages.Conversation("bob", "alice")
	if len(ab) != 2 || len(ba) != 2 {
		t.Fatalf("expected two messages each direction of lookup, got %d and %d", len(ab), len(ba))
	}
	for i := range ab {
		if ab[i].ID != ba[i].ID {
			t.Error("conversation order must not depend on argument order")
		}
	}
	if ab[0].Content != "one" || ab[1].Content != "two" {
		t.Errorf("conversation not in send order: %q, %q", ab[0].Content, ab[1].Content)
	}
}

func TestMessagesForIncludesBothDirections(t *testing.T) {
	reg := newTestRegistry(t)

	if _, err := reg.Messages.Send("alice", "bob", "sent"); err != nil {
		t.Fatalf("failed to send: %v", err)
	}
	if _, err := reg.Messages.Send("carol", "alice", "received"); err != nil {
		t.Fatalf("failed to send: %v", err)
	}

	if got := reg.Messages.MessagesFor("alice"); len(got) != 2 {
		t.Errorf("expected sent and received messages, got %d", len(got))
	}
}
