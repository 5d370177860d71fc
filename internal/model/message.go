package model

import "time"

// Message mirrors the `messages` table.
type Message struct {
	ID          uint64    // messages.id
	SenderID    uint64    // messages.sender_id
	RecipientID uint64    // messages.recipient_id
	Subject     *string   // messages.subject (nullable)
	MessageText string    // messages.message_text
	MessageType string    // messages.message_type
	IsRead      bool      // messages.is_read
	CreatedAt   time.Time // messages.created_at
}
