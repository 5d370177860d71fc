package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/campusgate/student-portal/internal/config"
	"github.com/campusgate/student-portal/internal/database"
	"github.com/campusgate/student-portal/internal/handler"
	"github.com/campusgate/student-portal/internal/middleware"
	"github.com/campusgate/student-portal/internal/queue"
	"github.com/campusgate/student-portal/internal/repository"
	"github.com/campusgate/student-portal/internal/router"
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	// Redis is optional: when unavailable the limiter and cache no-op.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and response caching disabled")
	}

	users := repository.NewUserRepo(db)
	sessions := repository.NewSessionRepo(db)
	profiles := repository.NewProfileRepo(db)
	payments := repository.NewPaymentRepo(db)
	cards := repository.NewScratchCardRepo(db)
	fees := repository.NewSchoolFeeRepo(db)
	courses := repository.NewCourseRepo(db)
	assignments := repository.NewAssignmentRepo(db)
	results := repository.NewResultRepo(db)
	messages := repository.NewMessageRepo(db)
	news := repository.NewNewsRepo(db)
	directory := repository.NewDirectoryRepo(db)
	ebooks := repository.NewEbookRepo(db)

	authHandler := handler.NewAuthHandler(&cfg, users, sessions, profiles)

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler,
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	router.RegisterPortal(e, sessions,
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
		router.PortalHandlers{
			Auth:        authHandler,
			Courses:     handler.NewCourseHandler(courses),
			Assignments: handler.NewAssignmentHandler(assignments, courses),
			Results:     handler.NewResultHandler(results),
			Payments:    handler.NewPaymentHandler(payments, cards, fees),
			Messages:    handler.NewMessageHandler(messages),
			News:        handler.NewNewsHandler(news),
			Directory:   handler.NewDirectoryHandler(directory),
			Ebooks:      handler.NewEbookHandler(ebooks, courses),
		})

	// Background consumer writing payment events to logs/payments.log.  It
	// reconnects forever; a missing broker never blocks the API.
	go func() {
		if err := queue.StartPaymentConsumer(); err != nil {
			log.Printf("payment consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
