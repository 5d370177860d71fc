package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campusgate/student-portal/internal/repository"
)

// CourseHandler owns the course catalogue and registration endpoints.
type CourseHandler struct {
	Courses *repository.CourseRepo
}

func NewCourseHandler(courses *repository.CourseRepo) *CourseHandler {
	return &CourseHandler{Courses: courses}
}

type registerCourseRequest struct {
	CourseID uint64 `json:"courseId"`
}

// List returns every course plus the IDs the student is registered for,
// so the client can render registration state without a second call.
func (h *CourseHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Not authenticated"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	courses, err := h.Courses.ListAll(ctx)
	if err != nil {
		c.Logger().Errorf("courses: list: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load courses"})
	}
	registered, err := h.Courses.RegisteredCourseIDs(ctx, userID)
	if err != nil {
		c.Logger().Errorf("courses: registered ids: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load courses"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"courses":           courses,
		"registeredCourses": registered,
	})
}

// Register enrolls the student in a course.
func (h *CourseHandler) Register(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Not authenticated"})
	}

	var req registerCourseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if req.CourseID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Course ID is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Courses.Register(ctx, userID, req.CourseID); err != nil {
		if err == repository.ErrAlreadyRegistered {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Already registered for this course"})
		}
		c.Logger().Errorf("courses: register: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to register for course"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true})
}

// Drop removes the student's registration.  The course to drop comes from
// the courseId query parameter; dropping an unregistered course succeeds.
func (h *CourseHandler) Drop(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Not authenticated"})
	}

	courseID, err := strconv.ParseUint(c.QueryParam("courseId"), 10, 64)
	if err != nil || courseID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Course ID is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Courses.Drop(ctx, userID, courseID); err != nil {
		c.Logger().Errorf("courses: drop: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to drop course"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
