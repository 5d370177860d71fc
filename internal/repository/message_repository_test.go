package repository

import (
	"context"
	"testing"

	"github.com/campusgate/student-portal/internal/model"
)

func TestMessageSendAndList(t *testing.T) {
	db := newTestDB(t)
	repo := NewMessageRepo(db)
	ctx := context.Background()
	sender := seedUser(t, db, "writer@test.local")
	recipient := seedUser(t, db, "reader@test.local")

	subject := "Lecture notes"
	if err := repo.Send(ctx, model.Message{
		SenderID:    sender,
		RecipientID: recipient,
		Subject:     &subject,
		MessageText: "Can you share yesterday's notes?",
	}); err != nil {
		t.Fatalf("send: %v", err)
	}

	unread, err := repo.Unread(ctx, recipient)
	if err != nil {
		t.Fatalf("unread: %v", err)
	}
	if len(unread) != 1 {
		t.Fatalf("unread rows = %d, want 1", len(unread))
	}
	m := unread[0]
	if m.SenderID != sender || m.MessageText != "Can you share yesterday's notes?" {
		t.Errorf("unexpected message: %+v", m)
	}
	if m.Subject == nil || *m.Subject != subject {
		t.Errorf("subject = %v, want %q", m.Subject, subject)
	}
	// The default message type is applied on insert.
	var mtype string
	if err := db.QueryRow("SELECT message_type FROM messages WHERE id = ?", m.ID).Scan(&mtype); err != nil {
		t.Fatalf("read message_type: %v", err)
	}
	if mtype != "direct" {
		t.Errorf("message_type = %q, want direct", mtype)
	}

	// The sender has nothing unread but sees the thread in All.
	if got, err := repo.Unread(ctx, sender); err != nil || len(got) != 0 {
		t.Errorf("sender unread = %v, %v; want empty", got, err)
	}
	all, err := repo.All(ctx, sender, 50)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("all rows = %d, want 1", len(all))
	}
}
