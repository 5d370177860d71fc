package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/campusgate/student-portal/internal/model"
)

// ScratchCardRepo provides data access to the scratch_cards table.  The
// redemption path runs entirely inside a caller-supplied transaction so
// the check-then-mark-used sequence is serialized with respect to any
// concurrent attempt on the same card.
type ScratchCardRepo struct{ DB *sql.DB }

func NewScratchCardRepo(db *sql.DB) *ScratchCardRepo { return &ScratchCardRepo{DB: db} }

// FindByNumberAndPINTx looks a card up by the exact (card_number, pin)
// pair inside the transaction.  The two fields are matched together in one
// predicate; a correct number with a wrong PIN produces the same
// ErrInvalidCard as an unknown number, so the response leaks nothing about
// which half was wrong.
func (r *ScratchCardRepo) FindByNumberAndPINTx(ctx context.Context, tx *sql.Tx, cardNumber, pin string) (model.ScratchCard, error) {
	var c model.ScratchCard
	err := tx.QueryRowContext(ctx,
		"SELECT id, card_number, pin_code, denomination, is_used, used_by, used_date FROM scratch_cards WHERE card_number=? AND pin_code=? LIMIT 1",
		cardNumber, pin).Scan(&c.ID, &c.CardNumber, &c.PinCode, &c.Denomination, &c.IsUsed, &c.UsedBy, &c.UsedDate)
	if err == sql.ErrNoRows {
		return model.ScratchCard{}, ErrInvalidCard
	}
	if err != nil {
		return model.ScratchCard{}, err
	}
	return c, nil
}

// MarkUsedTx flips is_used on the card, stamping the redeeming user and
// timestamp.  The update is conditional on is_used still being false and
// the affected-row count decides the outcome: when two redemptions race,
// exactly one observes a row count of 1 and the loser gets ErrCardUsed.
func (r *ScratchCardRepo) MarkUsedTx(ctx context.Context, tx *sql.Tx, cardID, userID uint64, usedAt time.Time) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE scratch_cards SET is_used=?, used_by=?, used_date=? WHERE id=? AND is_used=?",
		true, userID, usedAt, cardID, false)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCardUsed
	}
	return nil
}

// Create provisions a new unused card.  Used by the card provisioning
// tool, not by any portal endpoint.
func (r *ScratchCardRepo) Create(ctx context.Context, cardNumber, pin string, denomination float64) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO scratch_cards (card_number, pin_code, denomination, is_used) VALUES (?,?,?,?)",
		cardNumber, pin, denomination, false)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}
