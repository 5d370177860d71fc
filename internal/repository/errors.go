// Package repository implements the data access layer.  This file defines
// sentinel errors shared across repositories so handlers can translate
// storage failures into specific HTTP responses instead of generic 500s.
package repository

import (
	"errors"
	"strings"
)

// ErrEmailExists is returned when registering a user whose email is
// already taken.  Handlers translate it into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrAlreadyRegistered is returned when a student registers for the same
// course twice.  Handlers translate it into HTTP 409.
var ErrAlreadyRegistered = errors.New("already registered for course")

// ErrAlreadySubmitted is returned when a student submits the same
// assignment twice.  Handlers translate it into HTTP 409.
var ErrAlreadySubmitted = errors.New("assignment already submitted")

// ErrCardUsed is returned when redeeming a scratch card whose is_used flag
// is already set, including the case where a concurrent redeemer won the
// conditional update.
var ErrCardUsed = errors.New("scratch card already used")

// ErrInvalidCard is returned when no card matches the submitted
// (card number, pin) pair.  The two fields are checked together so a
// correct number with a wrong PIN is indistinguishable from an unknown
// number.
var ErrInvalidCard = errors.New("invalid scratch card")

// ErrDuplicateReference is returned when a payment insert collides on the
// unique reference_number column; callers regenerate and retry.
var ErrDuplicateReference = errors.New("duplicate payment reference")

// isDuplicateKey reports whether err is a unique-constraint violation.
// MySQL reports error 1062 ("Duplicate entry"); sqlite, which backs the
// test harness, reports "UNIQUE constraint failed".
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "1062") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
