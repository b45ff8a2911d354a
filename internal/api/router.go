package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/foodshare/foodshare-api/docs"
	"github.com/foodshare/foodshare-api/internal/api/handler"
	"github.com/foodshare/foodshare-api/internal/api/middleware"
	"github.com/foodshare/foodshare-api/internal/core/domain"
	"github.com/foodshare/foodshare-api/internal/core/service"
	"github.com/foodshare/foodshare-api/internal/infrastructure/config"
	mongodb "github.com/foodshare/foodshare-api/internal/infrastructure/db/mongo"
	redisdb "github.com/foodshare/foodshare-api/internal/infrastructure/db/redis"
	"github.com/foodshare/foodshare-api/internal/infrastructure/storage"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, uploads *storage.UploadStore, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("foodshare"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	postRepo := mongodb.NewPostRepository(db)
	listingCache := redisdb.NewListingCache(rdb)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour)
	postService := service.NewPostService(postRepo, userRepo, listingCache, log)

	authHandler := handler.NewAuthHandler(authService)
	postHandler := handler.NewPostHandler(postService, uploads)

	auth := middleware.Auth(cfg.JWTSecret, userRepo)

	// --- User routes ---
	users := e.Group("/api/users")
	users.POST("/register", authHandler.Register)
	users.POST("/login", authHandler.Login)
	users.GET("/volunteers", authHandler.Volunteers, auth, middleware.RBAC(domain.RoleAdmin))

	// --- Food post routes ---
	posts := e.Group("/api/foodposts")
	posts.GET("/available", postHandler.Available)
	posts.POST("", postHandler.Create, auth, middleware.RBAC(domain.RoleDonor))
	posts.GET("/mine", postHandler.Mine, auth)
	posts.GET("/admin/all", postHandler.AdminAll, auth, middleware.RBAC(domain.RoleAdmin))
	posts.PATCH("/:id/request", postHandler.Request, auth, middleware.RBAC(domain.RoleReceiver))
	posts.PATCH("/:id/picked", postHandler.Picked, auth, middleware.RBAC(domain.RoleVolunteer))
	posts.PATCH("/:id/delivered", postHandler.Delivered, auth, middleware.RBAC(domain.RoleVolunteer))
	posts.GET("/volunteer-stats", postHandler.Stats, auth, middleware.RBAC(domain.RoleVolunteer))
	posts.POST("/assign", postHandler.Assign, auth, middleware.RBAC(domain.RoleAdmin))
	posts.DELETE("/:id", postHandler.Delete, auth, middleware.RBAC(domain.RoleAdmin))

	// --- Uploaded images ---
	e.Static("/uploads", uploads.Dir())

	// --- Probes, metrics, docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
