package handler_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	_ "github.com/mattn/go-sqlite3"

	"github.com/campusgate/student-portal/internal/config"
	"github.com/campusgate/student-portal/internal/handler"
	"github.com/campusgate/student-portal/internal/middleware"
	"github.com/campusgate/student-portal/internal/repository"
	"github.com/campusgate/student-portal/internal/router"
)

// testSchema is the SQLite rendition of migrations/0001_init.sql, limited
// to the tables the endpoint tests touch.
const testSchema = `
CREATE TABLE users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    phone TEXT,
    role TEXT NOT NULL DEFAULT 'student',
    profile_photo_url TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE student_profiles (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL UNIQUE,
    registration_number TEXT NOT NULL,
    profile_photo_url TEXT
);

CREATE TABLE sessions (
    token_hash TEXT PRIMARY KEY,
    user_id INTEGER NOT NULL,
    expires_at TIMESTAMP NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE scratch_cards (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    card_number TEXT NOT NULL UNIQUE,
    pin_code TEXT NOT NULL,
    denomination REAL NOT NULL,
    is_used BOOLEAN NOT NULL DEFAULT 0,
    used_by INTEGER,
    used_date TIMESTAMP
);

CREATE TABLE school_fees (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    student_id INTEGER NOT NULL,
    description TEXT NOT NULL,
    amount REAL NOT NULL,
    due_date TIMESTAMP NOT NULL,
    status TEXT NOT NULL DEFAULT 'unpaid'
);

CREATE TABLE payments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    student_id INTEGER NOT NULL,
    school_fee_id INTEGER,
    amount REAL NOT NULL,
    payment_type TEXT NOT NULL,
    description TEXT NOT NULL,
    reference_number TEXT NOT NULL UNIQUE,
    payment_method TEXT NOT NULL,
    status TEXT NOT NULL,
    payment_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE courses (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    course_code TEXT NOT NULL,
    course_name TEXT NOT NULL,
    credit_units INTEGER NOT NULL,
    instructor_id INTEGER
);

CREATE TABLE course_registrations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    student_id INTEGER NOT NULL,
    course_id INTEGER NOT NULL,
    status TEXT NOT NULL DEFAULT 'registered',
    UNIQUE (student_id, course_id)
);

CREATE TABLE assignments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    course_id INTEGER NOT NULL,
    title TEXT NOT NULL,
    description TEXT,
    due_date TIMESTAMP NOT NULL,
    max_score INTEGER NOT NULL DEFAULT 100
);

CREATE TABLE assignment_submissions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    assignment_id INTEGER NOT NULL,
    student_id INTEGER NOT NULL,
    submission_text TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'submitted',
    score INTEGER,
    submitted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (assignment_id, student_id)
);

CREATE TABLE results (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    student_id INTEGER NOT NULL,
    course_id INTEGER NOT NULL,
    score INTEGER NOT NULL,
    grade TEXT NOT NULL,
    gpa_points REAL NOT NULL,
    academic_year TEXT NOT NULL,
    semester TEXT NOT NULL,
    is_released BOOLEAN NOT NULL DEFAULT 0
);

CREATE TABLE messages (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    sender_id INTEGER NOT NULL,
    recipient_id INTEGER NOT NULL,
    subject TEXT,
    message_text TEXT NOT NULL,
    message_type TEXT NOT NULL DEFAULT 'direct',
    is_read BOOLEAN NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE news (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    author_id INTEGER,
    is_published BOOLEAN NOT NULL DEFAULT 0,
    published_date TIMESTAMP
);

CREATE TABLE class_enrollments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    student_id INTEGER NOT NULL,
    class_name TEXT NOT NULL,
    academic_year TEXT NOT NULL,
    semester TEXT NOT NULL
);

CREATE TABLE ebooks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    course_id INTEGER NOT NULL,
    title TEXT NOT NULL,
    author TEXT,
    file_url TEXT NOT NULL,
    is_available BOOLEAN NOT NULL DEFAULT 1
);

CREATE TABLE ebook_downloads (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    ebook_id INTEGER NOT NULL,
    student_id INTEGER NOT NULL
);
`

// newTestEnv boots the whole HTTP surface against a temporary SQLite
// database, with the redis-backed limiter and cache disabled.
func newTestEnv(t *testing.T) (*echo.Echo, *sql.DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "portal_test.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(testSchema); err != nil {
		db.Close()
		t.Fatalf("create schema: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := config.Config{Env: "test", SessionTTLDays: 30, BcryptCost: 4}

	users := repository.NewUserRepo(db)
	sessions := repository.NewSessionRepo(db)
	profiles := repository.NewProfileRepo(db)
	courses := repository.NewCourseRepo(db)
	assignments := repository.NewAssignmentRepo(db)

	authHandler := handler.NewAuthHandler(&cfg, users, sessions, profiles)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, nil)
	router.RegisterPortal(e, sessions, nil, router.PortalHandlers{
		Auth:        authHandler,
		Courses:     handler.NewCourseHandler(courses),
		Assignments: handler.NewAssignmentHandler(assignments, courses),
		Results:     handler.NewResultHandler(repository.NewResultRepo(db)),
		Payments:    handler.NewPaymentHandler(repository.NewPaymentRepo(db), repository.NewScratchCardRepo(db), repository.NewSchoolFeeRepo(db)),
		Messages:    handler.NewMessageHandler(repository.NewMessageRepo(db)),
		News:        handler.NewNewsHandler(repository.NewNewsRepo(db)),
		Directory:   handler.NewDirectoryHandler(repository.NewDirectoryRepo(db)),
		Ebooks:      handler.NewEbookHandler(repository.NewEbookRepo(db), courses),
	})
	return e, db
}

// doJSON runs a request through the router and returns the recorder.
func doJSON(t *testing.T, e *echo.Echo, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals the recorded JSON body into a generic map.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return out
}

// sessionCookie extracts the session cookie from a response.
func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	res := rec.Result()
	for _, c := range res.Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

// registerStudent registers a fresh account and returns its session cookie.
func registerStudent(t *testing.T, e *echo.Echo, email string) *http.Cookie {
	t.Helper()
	rec := doJSON(t, e, http.MethodPost, "/v1/auth/register", map[string]interface{}{
		"email":     email,
		"password":  "hunter2hunter2",
		"firstName": "Test",
		"lastName":  "Student",
	}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body = %s", rec.Code, rec.Body.String())
	}
	return sessionCookie(t, rec)
}
