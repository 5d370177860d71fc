package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campusgate/student-portal/internal/repository"
)

// ResultHandler exposes released results plus the cumulative GPA.
type ResultHandler struct {
	Results *repository.ResultRepo
}

func NewResultHandler(results *repository.ResultRepo) *ResultHandler {
	return &ResultHandler{Results: results}
}

// List returns the student's released results and the credit-weighted
// cumulative GPA rendered with two decimals.  A student with no released
// results gets an empty list and a GPA of "0.00".
func (h *ResultHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Not authenticated"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	results, err := h.Results.ListReleased(ctx, userID)
	if err != nil {
		c.Logger().Errorf("results: list: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load results"})
	}

	var totalPoints, totalUnits float64
	for _, r := range results {
		totalPoints += r.GpaPoints * float64(r.CreditUnits)
		totalUnits += float64(r.CreditUnits)
	}
	gpa := "0.00"
	if totalUnits > 0 {
		gpa = fmt.Sprintf("%.2f", totalPoints/totalUnits)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"results": results,
		"gpa":     gpa,
	})
}
