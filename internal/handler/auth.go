package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campusgate/student-portal/internal/config"
	"github.com/campusgate/student-portal/internal/middleware"
	"github.com/campusgate/student-portal/internal/model"
	"github.com/campusgate/student-portal/internal/repository"
	"github.com/campusgate/student-portal/internal/utils"
)

// AuthHandler owns registration, login, logout and the current-user
// endpoint.  Sessions are opaque random tokens delivered in an HttpOnly
// cookie; the server stores only their hash.
type AuthHandler struct {
	Cfg      *config.Config
	Users    *repository.UserRepo
	Sessions *repository.SessionRepo
	Profiles *repository.ProfileRepo
}

func NewAuthHandler(cfg *config.Config, users *repository.UserRepo, sessions *repository.SessionRepo, profiles *repository.ProfileRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Sessions: sessions, Profiles: profiles}
}

// registerRequest is the JSON body for POST /v1/auth/register.
type registerRequest struct {
	Email              string  `json:"email"`
	Password           string  `json:"password"`
	FirstName          string  `json:"firstName"`
	LastName           string  `json:"lastName"`
	Phone              *string `json:"phone"`
	RegistrationNumber string  `json:"registrationNumber"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userSummary is the shape returned by register, login and /v1/me.
type userSummary struct {
	ID        uint64 `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

func summaryOf(u model.User) userSummary {
	return userSummary{ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName, Role: u.Role}
}

// setSessionCookie attaches the raw session token to the response.  The
// cookie is HttpOnly and SameSite=Lax always, Secure only in prod so
// local development over plain HTTP keeps working.
func (h *AuthHandler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   h.Cfg.SessionTTLDays * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.Cfg.Env == "prod",
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.Cfg.Env == "prod",
	})
}

// issueSession mints a fresh token, stores its hash and sets the cookie.
func (h *AuthHandler) issueSession(ctx context.Context, c echo.Context, userID uint64) error {
	tok, err := utils.NewSessionToken(h.Cfg.SessionTTLDays)
	if err != nil {
		return err
	}
	if err := h.Sessions.Create(ctx, model.Session{
		TokenHash: utils.HashSessionToken(tok.Raw),
		UserID:    userID,
		ExpiresAt: tok.Exp,
	}); err != nil {
		return err
	}
	h.setSessionCookie(c, tok.Raw)
	return nil
}

// Register creates a student account and logs it in immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing required fields"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	userID, err := h.Users.Create(ctx, req.Email, req.Password, req.FirstName, req.LastName, req.Phone, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Email already registered"})
		}
		c.Logger().Errorf("register: create user: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Registration failed"})
	}

	if req.RegistrationNumber != "" {
		if _, err := h.Profiles.GetOrCreate(ctx, userID, req.RegistrationNumber); err != nil {
			c.Logger().Errorf("register: create profile: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Registration failed"})
		}
	}

	if err := h.issueSession(ctx, c, userID); err != nil {
		c.Logger().Errorf("register: issue session: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Registration failed"})
	}

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Registration failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "user": summaryOf(u)})
}

// Login verifies credentials and issues a fresh session.  Unknown email
// and wrong password return the same message so the endpoint does not
// leak which accounts exist.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid email or password"})
		}
		c.Logger().Errorf("login: lookup: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Login failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid email or password"})
	}

	if err := h.issueSession(ctx, c, u.ID); err != nil {
		c.Logger().Errorf("login: issue session: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Login failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": summaryOf(u)})
}

// Logout revokes the current session and clears the cookie.  It succeeds
// even when no cookie is present, so repeated logouts are harmless.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()
		if err := h.Sessions.Delete(ctx, utils.HashSessionToken(cookie.Value)); err != nil {
			c.Logger().Errorf("logout: delete session: %v", err)
		}
	}
	h.clearSessionCookie(c)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Me returns the authenticated user together with the student profile,
// when one exists.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Not authenticated"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		c.Logger().Errorf("me: lookup: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load user"})
	}

	resp := echo.Map{
		"id":           u.ID,
		"email":        u.Email,
		"firstName":    u.FirstName,
		"lastName":     u.LastName,
		"role":         u.Role,
		"phone":        u.Phone,
		"profilePhoto": u.ProfilePhotoURL,
	}

	var profile interface{}
	if p, err := h.Profiles.GetByUserID(ctx, userID); err == nil {
		profile = echo.Map{
			"id":                 p.ID,
			"registrationNumber": p.RegistrationNumber,
			"profilePhotoUrl":    p.ProfilePhotoURL,
		}
	} else if err != sql.ErrNoRows {
		c.Logger().Errorf("me: profile lookup: %v", err)
	}
	resp["studentProfile"] = profile

	return c.JSON(http.StatusOK, echo.Map{"user": resp})
}
