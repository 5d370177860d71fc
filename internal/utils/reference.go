package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// NewReferenceNumber builds a payment reference of the form
// REF-<epoch-millis>-<8 hex chars>.  Uniqueness is probabilistic here; the
// payments table additionally enforces a UNIQUE constraint on the column
// and the caller regenerates on a collision.
func NewReferenceNumber() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return fmt.Sprintf("REF-%d-%s", time.Now().UnixMilli(), hex.EncodeToString(buf)), nil
}
