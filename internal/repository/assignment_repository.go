package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

type AssignmentRepo struct{ DB *sql.DB }

func NewAssignmentRepo(db *sql.DB) *AssignmentRepo { return &AssignmentRepo{DB: db} }

// AssignmentInfo is an assignment joined with its course name.
type AssignmentInfo struct {
	ID          uint64    `json:"id"`
	CourseID    uint64    `json:"course_id"`
	CourseName  string    `json:"course_name"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	DueDate     time.Time `json:"due_date"`
	MaxScore    int       `json:"max_score"`
}

// SubmissionInfo is a submission joined with assignment and course names.
type SubmissionInfo struct {
	ID             uint64    `json:"id"`
	AssignmentID   uint64    `json:"assignment_id"`
	Title          string    `json:"title"`
	CourseName     string    `json:"course_name"`
	SubmissionText string    `json:"submission_text"`
	Status         string    `json:"status"`
	Score          *int      `json:"score,omitempty"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// ListForCourses returns assignments belonging to any of the given
// courses, soonest due first.  An empty course list yields an empty slice
// without touching the database.
func (r *AssignmentRepo) ListForCourses(ctx context.Context, courseIDs []uint64) ([]AssignmentInfo, error) {
	if len(courseIDs) == 0 {
		return []AssignmentInfo{}, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(courseIDs)), ",")
	args := make([]interface{}, 0, len(courseIDs))
	for _, id := range courseIDs {
		args = append(args, id)
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT a.id, a.course_id, c.course_name, a.title, a.description, a.due_date, a.max_score
		 FROM assignments a
		 JOIN courses c ON a.course_id = c.id
		 WHERE a.course_id IN (`+placeholders+`)
		 ORDER BY a.due_date ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := []AssignmentInfo{}
	for rows.Next() {
		var a AssignmentInfo
		if err := rows.Scan(&a.ID, &a.CourseID, &a.CourseName, &a.Title, &a.Description, &a.DueDate, &a.MaxScore); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// ListSubmissions returns the student's submissions, newest first.
func (r *AssignmentRepo) ListSubmissions(ctx context.Context, studentID uint64) ([]SubmissionInfo, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT s.id, s.assignment_id, a.title, c.course_name, s.submission_text, s.status, s.score, s.submitted_at
		 FROM assignment_submissions s
		 JOIN assignments a ON s.assignment_id = a.id
		 JOIN courses c ON a.course_id = c.id
		 WHERE s.student_id = ?
		 ORDER BY s.submitted_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := []SubmissionInfo{}
	for rows.Next() {
		var s SubmissionInfo
		if err := rows.Scan(&s.ID, &s.AssignmentID, &s.Title, &s.CourseName, &s.SubmissionText, &s.Status, &s.Score, &s.SubmittedAt); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// Submit records the student's submission.  The unique (assignment,
// student) key turns a second attempt into ErrAlreadySubmitted.
func (r *AssignmentRepo) Submit(ctx context.Context, assignmentID, studentID uint64, text string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO assignment_submissions (assignment_id, student_id, submission_text, status) VALUES (?,?,?,?)",
		assignmentID, studentID, text, "submitted")
	if isDuplicateKey(err) {
		return ErrAlreadySubmitted
	}
	return err
}
