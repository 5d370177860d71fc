package model

import "time"

// Session models a row in the `sessions` table.  Each session represents
// one authenticated login.  The plain token handed to the client is not
// stored; only its SHA-256 hash, which doubles as the primary key.  A
// session is valid only while the current time is before ExpiresAt; the
// comparison happens on every lookup, never cached.
//
// Fields:
//
//	TokenHash - SHA-256 hex digest of the session token (primary key).
//	UserID    - owner of the session.
//	ExpiresAt - absolute expiry timestamp.
//	CreatedAt - timestamp of creation.
type Session struct {
	TokenHash string    // sessions.token_hash
	UserID    uint64    // sessions.user_id
	ExpiresAt time.Time // sessions.expires_at
	CreatedAt time.Time // sessions.created_at
}
