package handler // handler defines http handlers

import (
	"errors"

	"github.com/labstack/echo/v4"
)

// getUserID extracts the user_id placed in the context by the session
// middleware, which always stores a uint64.
func getUserID(c echo.Context) (uint64, error) {
	id, ok := c.Get("user_id").(uint64)
	if !ok {
		return 0, errors.New("invalid user_id in context")
	}
	return id, nil
}
