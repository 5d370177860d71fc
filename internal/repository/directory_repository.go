package repository

import (
	"context"
	"database/sql"

	"github.com/campusgate/student-portal/internal/model"
)

type DirectoryRepo struct{ DB *sql.DB }

func NewDirectoryRepo(db *sql.DB) *DirectoryRepo { return &DirectoryRepo{DB: db} }

// Classmate is a fellow student in the caller's current class.
type Classmate struct {
	ID                 uint64  `json:"id"`
	Email              string  `json:"email"`
	FirstName          string  `json:"first_name"`
	LastName           string  `json:"last_name"`
	RegistrationNumber *string `json:"registration_number,omitempty"`
	ProfilePhotoURL    *string `json:"profile_photo_url,omitempty"`
	ClassName          string  `json:"class_name"`
}

// CurrentClass returns the student's most recent class enrollment.
func (r *DirectoryRepo) CurrentClass(ctx context.Context, studentID uint64) (model.ClassEnrollment, error) {
	var ce model.ClassEnrollment
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, student_id, class_name, academic_year, semester
		 FROM class_enrollments
		 WHERE student_id = ?
		 ORDER BY academic_year DESC, semester DESC
		 LIMIT 1`,
		studentID).Scan(&ce.ID, &ce.StudentID, &ce.ClassName, &ce.AcademicYear, &ce.Semester)
	return ce, err
}

// Classmates lists every other student enrolled in the same class, year
// and semester, ordered by name.
func (r *DirectoryRepo) Classmates(ctx context.Context, className, academicYear, semester string, excludeUserID uint64) ([]Classmate, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT u.id, u.email, u.first_name, u.last_name, sp.registration_number, sp.profile_photo_url, ce.class_name
		 FROM class_enrollments ce
		 JOIN users u ON ce.student_id = u.id
		 LEFT JOIN student_profiles sp ON u.id = sp.user_id
		 WHERE ce.class_name = ? AND ce.academic_year = ? AND ce.semester = ? AND u.id != ?
		 ORDER BY u.first_name, u.last_name`,
		className, academicYear, semester, excludeUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	mates := []Classmate{}
	for rows.Next() {
		var cm Classmate
		if err := rows.Scan(&cm.ID, &cm.Email, &cm.FirstName, &cm.LastName, &cm.RegistrationNumber, &cm.ProfilePhotoURL, &cm.ClassName); err != nil {
			return nil, err
		}
		mates = append(mates, cm)
	}
	return mates, rows.Err()
}
