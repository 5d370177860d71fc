package repository

import (
	"context"
	"database/sql"

	"github.com/campusgate/student-portal/internal/model"
)

type ProfileRepo struct{ DB *sql.DB }

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{DB: db} }

// GetOrCreate returns the student profile for the user, creating one with
// the given registration number when none exists yet.
func (r *ProfileRepo) GetOrCreate(ctx context.Context, userID uint64, registrationNumber string) (model.StudentProfile, error) {
	existing, err := r.GetByUserID(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if err != sql.ErrNoRows {
		return model.StudentProfile{}, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO student_profiles (user_id, registration_number) VALUES (?,?)",
		userID, registrationNumber)
	if err != nil {
		return model.StudentProfile{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.StudentProfile{}, err
	}
	return model.StudentProfile{
		ID:                 uint64(id),
		UserID:             userID,
		RegistrationNumber: registrationNumber,
	}, nil
}

// GetByUserID fetches the profile owned by the user.
func (r *ProfileRepo) GetByUserID(ctx context.Context, userID uint64) (model.StudentProfile, error) {
	var p model.StudentProfile
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, registration_number, profile_photo_url FROM student_profiles WHERE user_id=? LIMIT 1",
		userID).Scan(&p.ID, &p.UserID, &p.RegistrationNumber, &p.ProfilePhotoURL)
	return p, err
}
