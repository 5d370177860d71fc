package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/campusgate/student-portal/internal/handler"    // handlers implementing the portal endpoints
	"github.com/campusgate/student-portal/internal/middleware" // session authentication middleware
	"github.com/campusgate/student-portal/internal/repository"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers and monitoring systems to verify that the
	// service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes.  These live under
// /v1/auth and deliberately skip the session middleware: register and
// login create sessions, and logout must work even with a stale cookie.
// The limiter guards all three against credential stuffing; pass nil to
// disable it.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	if limiter != nil {
		g.Use(limiter)
	}
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/logout", a.Logout)
}

// PortalHandlers bundles the handlers for the session-protected part of
// the API so RegisterPortal does not need a dozen parameters.
type PortalHandlers struct {
	Auth        *handler.AuthHandler
	Courses     *handler.CourseHandler
	Assignments *handler.AssignmentHandler
	Results     *handler.ResultHandler
	Payments    *handler.PaymentHandler
	Messages    *handler.MessageHandler
	News        *handler.NewsHandler
	Directory   *handler.DirectoryHandler
	Ebooks      *handler.EbookHandler
}

// RegisterPortal registers every session-protected endpoint under /v1.
// The cache middleware is applied only to the read-heavy news and
// directory listings; pass nil to serve them uncached.
func RegisterPortal(e *echo.Echo, sessions *repository.SessionRepo, cache echo.MiddlewareFunc, h PortalHandlers) {
	g := e.Group("/v1")
	g.Use(middleware.SessionAuth(sessions))

	g.GET("/me", h.Auth.Me)

	g.GET("/courses", h.Courses.List)
	g.POST("/courses/register", h.Courses.Register)
	g.DELETE("/courses/register", h.Courses.Drop)

	g.GET("/assignments", h.Assignments.List)
	g.POST("/assignments/submit", h.Assignments.Submit)

	g.GET("/results", h.Results.List)

	g.GET("/payments", h.Payments.List)
	g.POST("/payments/process", h.Payments.Process)

	g.GET("/messages", h.Messages.List)
	g.POST("/messages", h.Messages.Send)

	if cache != nil {
		g.GET("/news", h.News.List, cache)
		g.GET("/directory", h.Directory.List, cache)
	} else {
		g.GET("/news", h.News.List)
		g.GET("/directory", h.Directory.List)
	}

	g.GET("/ebooks", h.Ebooks.List)
}
