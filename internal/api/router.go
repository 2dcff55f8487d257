package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/bookshelf/bookshelf-api/docs"
	"github.com/bookshelf/bookshelf-api/internal/api/handler"
	"github.com/bookshelf/bookshelf-api/internal/api/middleware"
	"github.com/bookshelf/bookshelf-api/internal/core/ports"
	"github.com/bookshelf/bookshelf-api/internal/core/service"
	"github.com/bookshelf/bookshelf-api/internal/infrastructure/config"
	mongodb "github.com/bookshelf/bookshelf-api/internal/infrastructure/db/mongo"
	redisdb "github.com/bookshelf/bookshelf-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *goredis.Client, mailq ports.MailQueue, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("bookshelf"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	bookRepo := mongodb.NewBookRepository(db)
	throttle := redisdb.NewThrottle(rdb, cfg.Auth.LoginWindow, cfg.Auth.LoginMaxAttempts)

	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	hasher := service.NewHasher(cfg.Auth.BcryptCost, cfg.Auth.HashWorkers)
	authService := service.NewAuthService(userRepo, tokens, hasher, throttle, log)
	userService := service.NewUserService(userRepo, hasher, mailq, log)
	bookService := service.NewBookService(bookRepo, userRepo)

	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService)
	bookHandler := handler.NewBookHandler(bookService)

	// Interception runs on every request; the policy gate decides per
	// operation whether an identity is required.
	e.Use(middleware.Auth(tokens))
	policy := middleware.DefaultPolicy()

	// --- Auth routes (public) ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/register/admin", authHandler.RegisterAdmin)

	// --- User routes ---
	users := e.Group("/api/users")
	users.GET("", userHandler.List, policy.Require(middleware.OpUsersList))
	users.GET("/:id", userHandler.Get, policy.Require(middleware.OpUsersGet))
	users.POST("", userHandler.Create, policy.Require(middleware.OpUsersCreate))
	users.PUT("/:id", userHandler.Update, policy.Require(middleware.OpUsersUpdate))
	users.DELETE("/:id", userHandler.Delete, policy.Require(middleware.OpUsersDelete))

	// --- Book routes ---
	books := e.Group("/api/books")
	books.GET("", bookHandler.List, policy.Require(middleware.OpBooksList))
	books.GET("/:id", bookHandler.Get, policy.Require(middleware.OpBooksGet))
	books.POST("", bookHandler.Create, policy.Require(middleware.OpBooksCreate))
	books.PUT("/:id", bookHandler.Update, policy.Require(middleware.OpBooksUpdate))
	books.DELETE("/:id", bookHandler.Delete, policy.Require(middleware.OpBooksDelete))

	// --- Observability and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
