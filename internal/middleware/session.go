package middleware // middleware provides shared request processing for handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campusgate/student-portal/internal/repository"
	"github.com/campusgate/student-portal/internal/utils"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "session_token"

// SessionAuth returns an Echo middleware that resolves the session cookie
// to a user identity.  Validity is re-checked against storage on every
// request; nothing is cached between requests.  A request without the
// cookie fails with "Not authenticated", while an unknown or expired token
// fails with "Session expired" - the split the portal UI relies on to
// decide between a login redirect and a re-login prompt.  On success the
// owning user ID is stored in the context under "user_id".
func SessionAuth(sessions *repository.SessionRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Not authenticated"})
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			userID, err := sessions.Lookup(ctx, utils.HashSessionToken(cookie.Value))
			if err != nil {
				if err == sql.ErrNoRows {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Session expired"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Authentication failed"})
			}

			c.Set("user_id", userID)
			return next(c)
		}
	}
}
