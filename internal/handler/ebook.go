package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campusgate/student-portal/internal/repository"
)

// EbookHandler lists course materials available to the student.
type EbookHandler struct {
	Ebooks  *repository.EbookRepo
	Courses *repository.CourseRepo
}

func NewEbookHandler(ebooks *repository.EbookRepo, courses *repository.CourseRepo) *EbookHandler {
	return &EbookHandler{Ebooks: ebooks, Courses: courses}
}

// List returns available ebooks for the student's registered courses, each
// flagged with whether this student has downloaded it before.
func (h *EbookHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Not authenticated"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	courseIDs, err := h.Courses.RegisteredCourseIDs(ctx, userID)
	if err != nil {
		c.Logger().Errorf("ebooks: registered ids: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load ebooks"})
	}
	ebooks, err := h.Ebooks.ListForStudent(ctx, userID, courseIDs)
	if err != nil {
		c.Logger().Errorf("ebooks: list: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load ebooks"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ebooks": ebooks})
}
