package api

import (
	"context"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aereovisao/portal-api/internal/api/handler"
	"github.com/aereovisao/portal-api/internal/api/middleware"
	"github.com/aereovisao/portal-api/internal/core/domain"
	"github.com/aereovisao/portal-api/internal/core/service"
	"github.com/aereovisao/portal-api/internal/core/token"
	"github.com/aereovisao/portal-api/internal/infrastructure/config"
	mongodb "github.com/aereovisao/portal-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/aereovisao/portal-api/internal/infrastructure/db/redis"
	"github.com/aereovisao/portal-api/internal/infrastructure/storage"
)

// NewRouter wires all dependencies and returns the Echo instance with every
// route registered. Dependency graph: Handler ← Service ← Repository ← DB.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("aereovisao"))

	// --- Infrastructure ---
	codec := token.NewCodec(cfg.JWTSecret)
	uploads, err := storage.NewDiskStore(cfg.UploadDir, cfg.MaxUploadBytes)
	if err != nil {
		return nil, err
	}
	limiter := redisinfra.NewAttemptLimiter(rdb, cfg.LoginRateLimit, time.Minute)

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	adminRepo := mongodb.NewAdminRepository(db)
	postRepo := mongodb.NewPostRepository(db)

	// --- Services ---
	authService := service.NewAuthService(userRepo, codec, cfg.TokenTTL)
	userService := service.NewUserService(userRepo)
	postService := service.NewPostService(postRepo)
	institutionalService := service.NewInstitutionalService(adminRepo, codec)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, uploads)
	postHandler := handler.NewPostHandler(postService, uploads)
	institutionalHandler := handler.NewInstitutionalHandler(institutionalService)

	// --- Guards: one implementation, two principal kinds ---
	portal := middleware.NewGuard(codec, token.AudiencePortal,
		func(ctx context.Context, subject string) (any, domain.Role, error) {
			user, err := userRepo.FindByID(ctx, subject)
			if err != nil {
				return nil, "", err
			}
			return user, user.Role, nil
		}, log)

	institutional := middleware.NewGuard(codec, token.AudienceInstitucional,
		func(ctx context.Context, subject string) (any, domain.Role, error) {
			admin, err := adminRepo.FindByID(ctx, subject)
			if err != nil {
				return nil, "", err
			}
			// A token issued before deactivation stops working here.
			if !admin.Ativo {
				return nil, "", domain.ErrAccountDisabled
			}
			return admin, "", nil
		}, log)

	rateLimited := middleware.RateLimit(limiter, log)
	adminOnly := middleware.RequireLevel(domain.LevelAdmin)
	elevated := middleware.RequireLevel(domain.LevelColaborador)

	// --- Auth & user routes ---
	e.POST("/api/register", authHandler.Register, rateLimited)
	e.POST("/api/login", authHandler.Login, rateLimited)
	e.GET("/api/user", userHandler.Me, portal.Optional())
	e.POST("/api/user/profile", userHandler.UpdateProfile, portal.Require())
	e.GET("/api/usuarios", userHandler.List, portal.Require(), adminOnly)
	e.PATCH("/api/usuarios/:id", userHandler.ChangeRole, portal.Require(), adminOnly)

	// --- Content routes ---
	posts := e.Group("/api/posts", portal.Require())
	posts.GET("", postHandler.List)
	posts.GET("/:id", postHandler.Get)
	posts.POST("", postHandler.Create, elevated)
	posts.PUT("/:id", postHandler.Update, elevated)
	posts.DELETE("/:id", postHandler.Delete, elevated)

	// --- Institutional routes ---
	inst := e.Group("/api/institucional")
	inst.POST("/login", institutionalHandler.Login, rateLimited)
	inst.GET("/verify-token", institutionalHandler.VerifyToken, institutional.Require())
	inst.POST("/admins", institutionalHandler.CreateAdmin, institutional.Require())

	// --- Static uploads ---
	e.Static("/uploads", cfg.UploadDir)

	// --- Observability (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e, nil
}
