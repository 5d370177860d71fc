package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/campusgate/student-portal/internal/model"
)

type MessageRepo struct{ DB *sql.DB }

func NewMessageRepo(db *sql.DB) *MessageRepo { return &MessageRepo{DB: db} }

// MessageInfo is a message joined with sender and recipient names.  The
// recipient fields are empty in the unread listing, which only ever shows
// messages addressed to the caller.
type MessageInfo struct {
	ID                 uint64    `json:"id"`
	SenderID           uint64    `json:"sender_id"`
	RecipientID        uint64    `json:"recipient_id"`
	Subject            *string   `json:"subject,omitempty"`
	MessageText        string    `json:"message_text"`
	IsRead             bool      `json:"is_read"`
	CreatedAt          time.Time `json:"created_at"`
	SenderFirstName    string    `json:"sender_first_name"`
	SenderLastName     string    `json:"sender_last_name"`
	RecipientFirstName string    `json:"recipient_first_name,omitempty"`
	RecipientLastName  string    `json:"recipient_last_name,omitempty"`
}

// Unread returns unread messages addressed to the user, newest first.
func (r *MessageRepo) Unread(ctx context.Context, userID uint64) ([]MessageInfo, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT m.id, m.sender_id, m.recipient_id, m.subject, m.message_text, m.is_read, m.created_at,
		        u.first_name, u.last_name
		 FROM messages m
		 JOIN users u ON m.sender_id = u.id
		 WHERE m.recipient_id = ? AND m.is_read = ?
		 ORDER BY m.created_at DESC`,
		userID, false)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	msgs := []MessageInfo{}
	for rows.Next() {
		var m MessageInfo
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Subject, &m.MessageText, &m.IsRead, &m.CreatedAt,
			&m.SenderFirstName, &m.SenderLastName); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// All returns the user's sent and received messages, newest first, capped
// at limit.
func (r *MessageRepo) All(ctx context.Context, userID uint64, limit int) ([]MessageInfo, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT m.id, m.sender_id, m.recipient_id, m.subject, m.message_text, m.is_read, m.created_at,
		        us.first_name, us.last_name, ur.first_name, ur.last_name
		 FROM messages m
		 JOIN users us ON m.sender_id = us.id
		 JOIN users ur ON m.recipient_id = ur.id
		 WHERE m.sender_id = ? OR m.recipient_id = ?
		 ORDER BY m.created_at DESC
		 LIMIT ?`,
		userID, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	msgs := []MessageInfo{}
	for rows.Next() {
		var m MessageInfo
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Subject, &m.MessageText, &m.IsRead, &m.CreatedAt,
			&m.SenderFirstName, &m.SenderLastName, &m.RecipientFirstName, &m.RecipientLastName); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// Send records the message.  An empty MessageType defaults to "direct",
// the only type the portal currently produces.
func (r *MessageRepo) Send(ctx context.Context, m model.Message) error {
	if m.MessageType == "" {
		m.MessageType = "direct"
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO messages (sender_id, recipient_id, subject, message_text, message_type) VALUES (?,?,?,?,?)",
		m.SenderID, m.RecipientID, m.Subject, m.MessageText, m.MessageType)
	return err
}
