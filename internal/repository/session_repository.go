package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/campusgate/student-portal/internal/model"
)

// SessionRepo persists and validates opaque session tokens.  Only the
// SHA-256 hash of a token is stored; the hash column is the primary key so
// every lookup is a single indexed read.
type SessionRepo struct{ DB *sql.DB }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{DB: db} }

// Create inserts the session row.  CreatedAt is left to the column
// default.
func (r *SessionRepo) Create(ctx context.Context, s model.Session) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO sessions (token_hash, user_id, expires_at) VALUES (?,?,?)",
		s.TokenHash, s.UserID, s.ExpiresAt)
	return err
}

// Lookup returns the owning user ID if a non-expired session exists for
// the hash.  Expiry is a single comparison against the current UTC time;
// there is no grace period and no sliding renewal.  Missing and expired
// rows are both reported as sql.ErrNoRows so callers cannot distinguish a
// revoked token from a stale one.
func (r *SessionRepo) Lookup(ctx context.Context, tokenHash string) (uint64, error) {
	s := model.Session{TokenHash: tokenHash}
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id, expires_at FROM sessions WHERE token_hash=? LIMIT 1",
		tokenHash).Scan(&s.UserID, &s.ExpiresAt)
	if err != nil {
		return 0, err
	}
	if !time.Now().UTC().Before(s.ExpiresAt) {
		return 0, sql.ErrNoRows
	}
	return s.UserID, nil
}

// Delete removes the session row unconditionally.  Deleting a token that
// does not exist is not an error, which makes logout idempotent.
func (r *SessionRepo) Delete(ctx context.Context, tokenHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM sessions WHERE token_hash=?", tokenHash)
	return err
}
