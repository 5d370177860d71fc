package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/campusgate/student-portal/internal/model"
)

// PaymentRepo writes and reads the immutable payments ledger.
type PaymentRepo struct{ DB *sql.DB }

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{DB: db} }

// InsertTx appends a ledger row inside the transaction and populates the
// generated ID.  A collision on the unique reference_number column is
// reported as ErrDuplicateReference so the caller can regenerate the
// reference and retry.
func (r *PaymentRepo) InsertTx(ctx context.Context, tx *sql.Tx, p *model.Payment) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO payments (student_id, school_fee_id, amount, payment_type, description, reference_number, payment_method, status)
		 VALUES (?,?,?,?,?,?,?,?)`,
		p.StudentID, p.SchoolFeeID, p.Amount, p.PaymentType, p.Description, p.ReferenceNumber, p.PaymentMethod, p.Status)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateReference
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// Insert appends a ledger row outside any transaction.  Used by the
// school-fees path, which touches no other table.
func (r *PaymentRepo) Insert(ctx context.Context, p *model.Payment) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO payments (student_id, school_fee_id, amount, payment_type, description, reference_number, payment_method, status)
		 VALUES (?,?,?,?,?,?,?,?)`,
		p.StudentID, p.SchoolFeeID, p.Amount, p.PaymentType, p.Description, p.ReferenceNumber, p.PaymentMethod, p.Status)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateReference
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// PaymentHistoryItem is a ledger row joined with the description of the
// linked school fee, shaped for the payments listing endpoint.
type PaymentHistoryItem struct {
	ID              uint64    `json:"id"`
	Amount          float64   `json:"amount"`
	PaymentType     string    `json:"payment_type"`
	Description     string    `json:"description"`
	ReferenceNumber string    `json:"reference_number"`
	PaymentMethod   string    `json:"payment_method"`
	Status          string    `json:"status"`
	PaymentDate     time.Time `json:"payment_date"`
	FeeDescription  *string   `json:"fee_description,omitempty"`
}

// HistoryByStudent returns the student's most recent payments, newest
// first, capped at limit.
func (r *PaymentRepo) HistoryByStudent(ctx context.Context, studentID uint64, limit int) ([]PaymentHistoryItem, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT p.id, p.amount, p.payment_type, p.description, p.reference_number, p.payment_method, p.status, p.payment_date,
		        sf.description
		 FROM payments p
		 LEFT JOIN school_fees sf ON p.school_fee_id = sf.id
		 WHERE p.student_id = ?
		 ORDER BY p.payment_date DESC, p.id DESC
		 LIMIT ?`,
		studentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []PaymentHistoryItem{}
	for rows.Next() {
		var it PaymentHistoryItem
		if err := rows.Scan(&it.ID, &it.Amount, &it.PaymentType, &it.Description, &it.ReferenceNumber,
			&it.PaymentMethod, &it.Status, &it.PaymentDate, &it.FeeDescription); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
