// Package server contains the HTTP handlers for the application's
// HTML views and JSON API endpoints.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/database"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/repository"
	"yatube/web"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// indexCacheTTL is how long the index feed is served from cache.
// The cache is invalidated on expiry, not on write, so a fresh post may
// be missing from the index for up to this long.
const indexCacheTTL = 15 * time.Second

// Server holds all dependencies and provides handlers
type Server struct {
	config      *config.Config
	db          *gorm.DB
	redis       *redis.Client
	userRepo    repository.UserRepository
	groupRepo   repository.GroupRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	followRepo  repository.FollowRepository
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDB(cfg, db, cache.GetClient()), nil
}

// NewServerWithDB wires a server around an existing database and redis
// connection. Tests use it with in-memory sqlite and miniredis.
func NewServerWithDB(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	return &Server{
		config:      cfg,
		db:          db,
		redis:       redisClient,
		userRepo:    repository.NewUserRepository(db),
		groupRepo:   repository.NewGroupRepository(db),
		postRepo:    repository.NewPostRepository(db),
		commentRepo: repository.NewCommentRepository(db),
		followRepo:  repository.NewFollowRepository(db),
	}
}

// NewApp builds the Fiber application with views, middleware and routes.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Yatube",
		BodyLimit:    10 * 1024 * 1024,
		Views:        web.Engine(),
		ErrorHandler: s.errorHandler,
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(requestid.New())
	app.Use(middleware.StructuredLogger())

	prometheus := fiberprometheus.New("yatube")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Resolve the session for every request; views show login state.
	app.Use(middleware.LoadUser(s.config.JWTSecret))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	secret := s.config.JWTSecret

	app.Static("/media", s.config.MediaRoot)

	app.Get("/", s.Index)
	app.Get("/group/:slug", s.GroupPosts)

	app.Get("/new", middleware.RequireLogin(secret), s.NewPostPage)
	app.Post("/new", middleware.RequireLogin(secret),
		middleware.RateLimit(s.redis, 10, time.Minute, "create_post"), s.NewPost)

	app.Get("/follow", middleware.RequireLogin(secret), s.FollowIndex)

	auth := app.Group("/auth")
	auth.Get("/login", s.LoginPage)
	auth.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Get("/signup", s.SignupPage)
	auth.Post("/signup", middleware.RateLimit(s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Get("/logout", s.Logout)

	api := app.Group("/api")
	api.Get("/health", s.HealthCheck)
	api.Get("/hello", s.HelloGet)
	api.Post("/hello", s.HelloPost)

	v1 := api.Group("/v1", middleware.RequireAPIAuth(secret))
	v1.Get("/posts", s.APIListPosts)
	v1.Get("/posts/:id", s.APIGetPost)

	// Username-scoped routes come last: anything above would otherwise
	// be swallowed by the :username parameter. Registration order also
	// keeps follow/unfollow from matching as post IDs.
	app.Get("/:username/follow", middleware.RequireLogin(secret), s.ProfileFollow)
	app.Get("/:username/unfollow", middleware.RequireLogin(secret), s.ProfileUnfollow)
	app.Get("/:username", s.Profile)
	app.Get("/:username/:postID", s.PostView)
	app.Get("/:username/:postID/edit", middleware.RequireLogin(secret), s.PostEditPage)
	app.Post("/:username/:postID/edit", middleware.RequireLogin(secret), s.PostEdit)
	app.Post("/:username/:postID/comment", middleware.RequireLogin(secret),
		middleware.RateLimit(s.redis, 20, time.Minute, "create_comment"), s.AddComment)
}

// errorHandler renders the custom 404/500 pages for HTML routes and
// standardized JSON errors for API routes.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	status := models.StatusFor(err)

	if strings.HasPrefix(c.Path(), "/api") {
		return models.RespondWithError(c, status, err)
	}

	if status == fiber.StatusNotFound {
		return c.Status(fiber.StatusNotFound).Render("404", fiber.Map{})
	}

	middleware.Logger.Error("unhandled error",
		slog.String("path", c.Path()),
		slog.String("error", err.Error()),
	)
	return c.Status(fiber.StatusInternalServerError).Render("500", fiber.Map{})
}

// HealthCheck handles GET /api/health
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "Yatube",
		"status":  "healthy",
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Shutdown gracefully releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	return nil
}

// currentUsername returns the logged-in username or "" for anonymous
// visitors.
func currentUsername(c *fiber.Ctx) string {
	if name, ok := c.Locals("username").(string); ok {
		return name
	}
	return ""
}
