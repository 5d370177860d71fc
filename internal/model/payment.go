package model

import "time"

// Payment is an immutable ledger entry created by the payment endpoint.
// Scratch-card redemptions are written as status "completed"; manual
// school-fee payments as "pending" (an out-of-band process settles them).
//
// Fields:
//
//	ID              - primary key identifier.
//	StudentID       - paying student.
//	SchoolFeeID     - optional link to a school_fees row.
//	Amount          - amount credited or pledged.
//	PaymentType     - "scratch_card" or "school_fees".
//	Description     - free-text description.
//	ReferenceNumber - globally unique reconciliation reference.
//	PaymentMethod   - "scratch_card" or "manual".
//	Status          - "completed" or "pending".
//	PaymentDate     - timestamp of the ledger entry.
type Payment struct {
	ID              uint64    // payments.id
	StudentID       uint64    // payments.student_id
	SchoolFeeID     *uint64   // payments.school_fee_id (nullable)
	Amount          float64   // payments.amount
	PaymentType     string    // payments.payment_type
	Description     string    // payments.description
	ReferenceNumber string    // payments.reference_number
	PaymentMethod   string    // payments.payment_method
	Status          string    // payments.status
	PaymentDate     time.Time // payments.payment_date
}

// SchoolFee is an outstanding fee assigned to a student.
type SchoolFee struct {
	ID          uint64    // school_fees.id
	StudentID   uint64    // school_fees.student_id
	Description string    // school_fees.description
	Amount      float64   // school_fees.amount
	DueDate     time.Time // school_fees.due_date
	Status      string    // school_fees.status
}
