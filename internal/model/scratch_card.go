package model

import "time"

// ScratchCard is a pre-provisioned single-use voucher identified by a
// card number and PIN pair.  Once IsUsed flips to true the card can never
// be redeemed again; UsedBy and UsedDate record the consumer.
//
// Fields:
//
//	ID           - primary key identifier.
//	CardNumber   - unique printed card number.
//	PinCode      - PIN revealed by scratching the card.
//	Denomination - fixed credit amount the card is worth.
//	IsUsed       - whether the card has been consumed.
//	UsedBy       - user who redeemed the card (null until used).
//	UsedDate     - when the card was redeemed (null until used).
type ScratchCard struct {
	ID           uint64     // scratch_cards.id
	CardNumber   string     // scratch_cards.card_number
	PinCode      string     // scratch_cards.pin_code
	Denomination float64    // scratch_cards.denomination
	IsUsed       bool       // scratch_cards.is_used
	UsedBy       *uint64    // scratch_cards.used_by (nullable)
	UsedDate     *time.Time // scratch_cards.used_date (nullable)
}
