package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campusgate/student-portal/internal/repository"
)

// DirectoryHandler serves the class directory: the caller's latest class
// enrollment plus everyone else enrolled in the same class.
type DirectoryHandler struct {
	Directory *repository.DirectoryRepo
}

func NewDirectoryHandler(directory *repository.DirectoryRepo) *DirectoryHandler {
	return &DirectoryHandler{Directory: directory}
}

// List returns the current class and its other members.  A student with no
// enrollment gets a null class and an empty classmate list rather than an
// error.
func (h *DirectoryHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Not authenticated"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	enrollment, err := h.Directory.CurrentClass(ctx, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusOK, echo.Map{
				"currentClass": nil,
				"classmates":   []repository.Classmate{},
			})
		}
		c.Logger().Errorf("directory: current class: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load directory"})
	}

	mates, err := h.Directory.Classmates(ctx, enrollment.ClassName, enrollment.AcademicYear, enrollment.Semester, userID)
	if err != nil {
		c.Logger().Errorf("directory: classmates: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load directory"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"currentClass": echo.Map{
			"class_name":    enrollment.ClassName,
			"academic_year": enrollment.AcademicYear,
			"semester":      enrollment.Semester,
		},
		"classmates": mates,
	})
}
