package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campusgate/student-portal/internal/repository"
)

// AssignmentHandler lists assignments for the student's registered courses
// and accepts submissions.
type AssignmentHandler struct {
	Assignments *repository.AssignmentRepo
	Courses     *repository.CourseRepo
}

func NewAssignmentHandler(assignments *repository.AssignmentRepo, courses *repository.CourseRepo) *AssignmentHandler {
	return &AssignmentHandler{Assignments: assignments, Courses: courses}
}

type submitAssignmentRequest struct {
	AssignmentID   uint64 `json:"assignmentId"`
	SubmissionText string `json:"submissionText"`
}

// List returns assignments for the courses the student is registered in,
// together with the student's own submissions.
func (h *AssignmentHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Not authenticated"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	courseIDs, err := h.Courses.RegisteredCourseIDs(ctx, userID)
	if err != nil {
		c.Logger().Errorf("assignments: registered ids: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load assignments"})
	}
	assignments, err := h.Assignments.ListForCourses(ctx, courseIDs)
	if err != nil {
		c.Logger().Errorf("assignments: list: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load assignments"})
	}
	submissions, err := h.Assignments.ListSubmissions(ctx, userID)
	if err != nil {
		c.Logger().Errorf("assignments: submissions: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load assignments"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"assignments": assignments,
		"submissions": submissions,
	})
}

// Submit records a submission.  One submission per assignment per student;
// a second attempt is rejected rather than overwritten.
func (h *AssignmentHandler) Submit(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Not authenticated"})
	}

	var req submitAssignmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if req.AssignmentID == 0 || strings.TrimSpace(req.SubmissionText) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Assignment ID and submission text are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Assignments.Submit(ctx, req.AssignmentID, userID, req.SubmissionText); err != nil {
		if err == repository.ErrAlreadySubmitted {
			return c.JSON(http.StatusConflict, echo.Map{"error": "You have already submitted this assignment"})
		}
		c.Logger().Errorf("assignments: submit: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to submit assignment"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true})
}
