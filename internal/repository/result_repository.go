package repository

import (
	"context"
	"database/sql"
)

type ResultRepo struct{ DB *sql.DB }

func NewResultRepo(db *sql.DB) *ResultRepo { return &ResultRepo{DB: db} }

// ResultInfo is a released result joined with course details; CreditUnits
// feeds the cumulative GPA computed by the handler.
type ResultInfo struct {
	ID           uint64  `json:"id"`
	CourseName   string  `json:"course_name"`
	CourseCode   string  `json:"course_code"`
	CreditUnits  int     `json:"credit_units"`
	Score        int     `json:"score"`
	Grade        string  `json:"grade"`
	GpaPoints    float64 `json:"gpa_points"`
	AcademicYear string  `json:"academic_year"`
	Semester     string  `json:"semester"`
}

// ListReleased returns the student's released results, most recent
// academic period first.  Unreleased rows never leave the database.
func (r *ResultRepo) ListReleased(ctx context.Context, studentID uint64) ([]ResultInfo, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT r.id, c.course_name, c.course_code, c.credit_units, r.score, r.grade, r.gpa_points, r.academic_year, r.semester
		 FROM results r
		 JOIN courses c ON r.course_id = c.id
		 WHERE r.student_id = ? AND r.is_released = ?
		 ORDER BY r.academic_year DESC, r.semester DESC`,
		studentID, true)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []ResultInfo{}
	for rows.Next() {
		var ri ResultInfo
		if err := rows.Scan(&ri.ID, &ri.CourseName, &ri.CourseCode, &ri.CreditUnits, &ri.Score, &ri.Grade,
			&ri.GpaPoints, &ri.AcademicYear, &ri.Semester); err != nil {
			return nil, err
		}
		results = append(results, ri)
	}
	return results, rows.Err()
}
