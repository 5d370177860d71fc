package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campusgate/student-portal/internal/repository"
)

// NewsHandler serves the published campus news feed.
type NewsHandler struct {
	News *repository.NewsRepo
}

func NewNewsHandler(news *repository.NewsRepo) *NewsHandler {
	return &NewsHandler{News: news}
}

// List returns the twenty most recent published items with author names.
func (h *NewsHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.News.ListPublished(ctx, 20)
	if err != nil {
		c.Logger().Errorf("news: list: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load news"})
	}
	return c.JSON(http.StatusOK, echo.Map{"news": items})
}
