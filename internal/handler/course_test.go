package handler_test

import (
	"database/sql"
	"net/http"
	"testing"
	"time"
)

func seedCourse(t *testing.T, db *sql.DB, code, name string, units int) uint64 {
	t.Helper()
	res, err := db.Exec(
		"INSERT INTO courses (course_code, course_name, credit_units) VALUES (?,?,?)",
		code, name, units)
	if err != nil {
		t.Fatalf("seed course: %v", err)
	}
	id, _ := res.LastInsertId()
	return uint64(id)
}

func TestCourseRegisterEndpoint(t *testing.T) {
	e, db := newTestEnv(t)
	cookie := registerStudent(t, e, "enrollee@test.local")
	courseID := seedCourse(t, db, "CS101", "Intro to Computing", 3)

	// Missing course ID.
	rec := doJSON(t, e, http.MethodPost, "/v1/courses/register", map[string]interface{}{}, cookie)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := decodeBody(t, rec)["error"]; got != "Course ID is required" {
		t.Errorf("error = %q, want %q", got, "Course ID is required")
	}

	rec = doJSON(t, e, http.MethodPost, "/v1/courses/register", map[string]interface{}{
		"courseId": courseID,
	}, cookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	// Second registration conflicts.
	rec = doJSON(t, e, http.MethodPost, "/v1/courses/register", map[string]interface{}{
		"courseId": courseID,
	}, cookie)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if got := decodeBody(t, rec)["error"]; got != "Already registered for this course" {
		t.Errorf("error = %q, want %q", got, "Already registered for this course")
	}

	// The listing reflects the registration.
	list := doJSON(t, e, http.MethodGet, "/v1/courses", nil, cookie)
	if list.Code != http.StatusOK {
		t.Fatalf("list status = %d", list.Code)
	}
	registered, ok := decodeBody(t, list)["registeredCourses"].([]interface{})
	if !ok || len(registered) != 1 {
		t.Fatalf("registeredCourses = %v, want one entry", registered)
	}
}

func TestAssignmentSubmitEndpoint(t *testing.T) {
	e, db := newTestEnv(t)
	cookie := registerStudent(t, e, "homework@test.local")
	courseID := seedCourse(t, db, "CS102", "Data Structures", 3)

	res, err := db.Exec(
		"INSERT INTO assignments (course_id, title, due_date, max_score) VALUES (?,?,?,?)",
		courseID, "Homework 1", time.Now().UTC().Add(7*24*time.Hour), 100)
	if err != nil {
		t.Fatalf("seed assignment: %v", err)
	}
	aid, _ := res.LastInsertId()

	rec := doJSON(t, e, http.MethodPost, "/v1/assignments/submit", map[string]interface{}{
		"assignmentId":   aid,
		"submissionText": "my answer",
	}, cookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, e, http.MethodPost, "/v1/assignments/submit", map[string]interface{}{
		"assignmentId":   aid,
		"submissionText": "revised answer",
	}, cookie)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if got := decodeBody(t, rec)["error"]; got != "You have already submitted this assignment" {
		t.Errorf("error = %q, want %q", got, "You have already submitted this assignment")
	}
}

func TestAssignmentListScopedToRegistrations(t *testing.T) {
	e, db := newTestEnv(t)
	cookie := registerStudent(t, e, "scoped@test.local")
	mine := seedCourse(t, db, "CS201", "Databases", 3)
	other := seedCourse(t, db, "CS202", "Compilers", 3)

	for _, cid := range []uint64{mine, other} {
		if _, err := db.Exec(
			"INSERT INTO assignments (course_id, title, due_date, max_score) VALUES (?,?,?,?)",
			cid, "HW", time.Now().UTC().Add(24*time.Hour), 100); err != nil {
			t.Fatalf("seed assignment: %v", err)
		}
	}

	rec := doJSON(t, e, http.MethodPost, "/v1/courses/register", map[string]interface{}{
		"courseId": mine,
	}, cookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d", rec.Code)
	}

	list := doJSON(t, e, http.MethodGet, "/v1/assignments", nil, cookie)
	if list.Code != http.StatusOK {
		t.Fatalf("list status = %d", list.Code)
	}
	assignments, ok := decodeBody(t, list)["assignments"].([]interface{})
	if !ok || len(assignments) != 1 {
		t.Fatalf("assignments = %v, want only the registered course's", assignments)
	}
}
