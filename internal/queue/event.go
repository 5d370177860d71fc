// Package queue defines message payloads exchanged over the message broker.
package queue

// PaymentCompletedEvent is published after a scratch-card redemption has
// been committed. It carries enough information for downstream consumers
// to log, notify, or feed reconciliation without querying the primary
// database.
type PaymentCompletedEvent struct {
	PaymentID       uint64  `json:"payment_id"`
	StudentID       uint64  `json:"student_id"`
	Amount          float64 `json:"amount"`
	PaymentType     string  `json:"payment_type"`
	ReferenceNumber string  `json:"reference_number"`
	CardNumber      string  `json:"card_number"`
	CompletedAt     string  `json:"completed_at"`
}
