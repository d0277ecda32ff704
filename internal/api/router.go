package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mercadito/marketplace-api/internal/api/handler"
	"github.com/mercadito/marketplace-api/internal/api/middleware"
	"github.com/mercadito/marketplace-api/internal/core/service"
	mongodb "github.com/mercadito/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/mercadito/marketplace-api/internal/infrastructure/db/redis"
	"github.com/mercadito/marketplace-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Clients routinely append trailing slashes; treat /api/products/
	// and /api/products as the same route.
	e.Pre(echomiddleware.RemoveTrailingSlash())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	tokenStore := redisdb.NewTokenStore(rdb)

	authService := service.NewAuthService(userRepo, tokenStore, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, log)
	productService := service.NewProductService(productRepo, log)
	userService := service.NewUserService(userRepo, productRepo, log)

	authHandler := handler.NewAuthHandler(authService, log)
	productHandler := handler.NewProductHandler(productService)
	userHandler := handler.NewUserHandler(userService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	requireAuth := middleware.Auth(cfg.JWTSecret)
	optionalAuth := middleware.OptionalAuth(cfg.JWTSecret)
	staffOnly := middleware.StaffOrAdmin()

	api := e.Group("/api")

	// --- Auth ---
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout)

	// --- Products ---
	// The static my_products segment wins over :slugOrID in Echo's
	// route resolution, so registration order does not matter here.
	products := api.Group("/products")
	products.GET("", productHandler.List, optionalAuth)
	products.GET("/my_products", productHandler.MyProducts, requireAuth)
	products.GET("/:slugOrID", productHandler.Get)
	products.POST("", productHandler.Create, requireAuth)
	products.PUT("/:slugOrID", productHandler.Update, requireAuth)
	products.PATCH("/:slugOrID", productHandler.PartialUpdate, requireAuth)
	products.DELETE("/:slugOrID", productHandler.Delete, requireAuth)

	// --- Users: self-service profile ---
	users := api.Group("/users")
	users.GET("/me", userHandler.Me, requireAuth)
	users.PUT("/me", userHandler.UpdateMe, requireAuth)
	users.DELETE("/me", userHandler.DeleteMe, requireAuth)

	// --- Users: staff/admin account management ---
	users.GET("", userHandler.List, requireAuth, staffOnly)
	users.GET("/:id", userHandler.Get, requireAuth, staffOnly)
	users.PUT("/:id", userHandler.Update, requireAuth, staffOnly)
	users.DELETE("/:id", userHandler.Delete, requireAuth, staffOnly)

	// --- Operational endpoints ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
