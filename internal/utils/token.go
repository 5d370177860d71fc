package utils // package utils provides helpers for token creation and hashing

import (
	"crypto/rand"   // secure random number generation
	"crypto/sha256" // SHA-256 hashing for session tokens
	"encoding/hex"  // hex encoding
	"time"          // expiry calculation
)

// SessionToken is an opaque bearer credential handed to the client in a
// cookie.  Raw carries the token string; Exp records when it stops being
// valid.  Only the SHA-256 hash of Raw is persisted, so a leaked sessions
// table cannot be replayed against the API.
type SessionToken struct {
	Raw string    // raw token string returned to the client
	Exp time.Time // UTC expiration time
}

// NewSessionToken returns a cryptographically random session token and its
// expiration time.  The token carries 32 bytes (256 bits) of randomness
// encoded as 64 hex characters, which makes guessing or enumerating tokens
// infeasible.  ttlDays controls the absolute expiry window.
func NewSessionToken(ttlDays int) (SessionToken, error) {
	raw, err := randomHex(32) // 32 bytes -> 64 hex chars
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{
		Raw: raw,
		Exp: time.Now().UTC().Add(time.Duration(ttlDays) * 24 * time.Hour),
	}, nil
}

// HashSessionToken returns the SHA-256 hash of the raw session token as a
// hex string.  The hash is the storage key for the session row.
func HashSessionToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
