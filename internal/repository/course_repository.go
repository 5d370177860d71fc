package repository

import (
	"context"
	"database/sql"
)

// CourseRepo provides data access to courses and course registrations.
type CourseRepo struct{ DB *sql.DB }

func NewCourseRepo(db *sql.DB) *CourseRepo { return &CourseRepo{DB: db} }

// CourseInfo is a course joined with its instructor's name, shaped for the
// course listing endpoint.
type CourseInfo struct {
	ID                  uint64  `json:"id"`
	CourseCode          string  `json:"course_code"`
	CourseName          string  `json:"course_name"`
	CreditUnits         int     `json:"credit_units"`
	InstructorFirstName *string `json:"instructor_first_name,omitempty"`
	InstructorLastName  *string `json:"instructor_last_name,omitempty"`
}

// ListAll returns every course ordered by name, with instructor names when
// an instructor is assigned.
func (r *CourseRepo) ListAll(ctx context.Context) ([]CourseInfo, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT c.id, c.course_code, c.course_name, c.credit_units, u.first_name, u.last_name
		 FROM courses c
		 LEFT JOIN users u ON c.instructor_id = u.id
		 ORDER BY c.course_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []CourseInfo{}
	for rows.Next() {
		var ci CourseInfo
		if err := rows.Scan(&ci.ID, &ci.CourseCode, &ci.CourseName, &ci.CreditUnits,
			&ci.InstructorFirstName, &ci.InstructorLastName); err != nil {
			return nil, err
		}
		courses = append(courses, ci)
	}
	return courses, rows.Err()
}

// RegisteredCourseIDs returns the IDs of courses the student is currently
// registered for.
func (r *CourseRepo) RegisteredCourseIDs(ctx context.Context, studentID uint64) ([]uint64, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT course_id FROM course_registrations WHERE student_id=? AND status=?",
		studentID, "registered")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []uint64{}
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Register enrolls the student in a course.  The unique (student, course)
// key turns a repeat registration into ErrAlreadyRegistered.
func (r *CourseRepo) Register(ctx context.Context, studentID, courseID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO course_registrations (student_id, course_id, status) VALUES (?,?,?)",
		studentID, courseID, "registered")
	if isDuplicateKey(err) {
		return ErrAlreadyRegistered
	}
	return err
}

// Drop removes the student's registration for a course.  Dropping a course
// the student never registered for is a no-op.
func (r *CourseRepo) Drop(ctx context.Context, studentID, courseID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM course_registrations WHERE student_id=? AND course_id=?",
		studentID, courseID)
	return err
}
