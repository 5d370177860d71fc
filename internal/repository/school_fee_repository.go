package repository

import (
	"context"
	"database/sql"

	"github.com/campusgate/student-portal/internal/model"
)

type SchoolFeeRepo struct{ DB *sql.DB }

func NewSchoolFeeRepo(db *sql.DB) *SchoolFeeRepo { return &SchoolFeeRepo{DB: db} }

// ListByStudent returns the student's fees, most recently due first.
func (r *SchoolFeeRepo) ListByStudent(ctx context.Context, studentID uint64) ([]model.SchoolFee, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, student_id, description, amount, due_date, status FROM school_fees WHERE student_id=? ORDER BY due_date DESC",
		studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fees := []model.SchoolFee{}
	for rows.Next() {
		var f model.SchoolFee
		if err := rows.Scan(&f.ID, &f.StudentID, &f.Description, &f.Amount, &f.DueDate, &f.Status); err != nil {
			return nil, err
		}
		fees = append(fees, f)
	}
	return fees, rows.Err()
}
