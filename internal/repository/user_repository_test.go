package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/campusgate/student-portal/internal/utils"
)

func TestUserCreateAndFetch(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	id, err := repo.Create(ctx, "Jane.Doe@Example.COM", "secret123", "Jane", "Doe", nil, 4)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == 0 {
		t.Fatal("create returned zero id")
	}

	// Email is normalized to lower case on write and read.
	u, err := repo.GetByEmail(ctx, "jane.doe@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if u.ID != id || u.Email != "jane.doe@example.com" || u.Role != "student" {
		t.Errorf("unexpected user row: %+v", u)
	}
	if !utils.VerifyPassword(u.PasswordHash, "secret123") {
		t.Error("stored hash does not verify against the original password")
	}
	if utils.VerifyPassword(u.PasswordHash, "wrong") {
		t.Error("stored hash verifies against a wrong password")
	}
}

func TestUserDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	if _, err := repo.Create(ctx, "dup@test.local", "pw", "A", "B", nil, 4); err != nil {
		t.Fatalf("first create: %v", err)
	}
	// Same address with different case is still a duplicate.
	if _, err := repo.Create(ctx, "DUP@test.local", "pw", "C", "D", nil, 4); err != ErrEmailExists {
		t.Errorf("second create err = %v, want ErrEmailExists", err)
	}
}

func TestUserGetByEmailMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)

	if _, err := repo.GetByEmail(context.Background(), "ghost@test.local"); err != sql.ErrNoRows {
		t.Errorf("err = %v, want sql.ErrNoRows", err)
	}
}
