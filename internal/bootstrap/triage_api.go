package bootstrap

import (
	"strings"
	"time"

	"triage_server/adapter/in/http"
	"triage_server/config"
	"triage_server/infra/middleware"
	"triage_server/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func NewAPI(cfg *config.Config) (*fiber.App, func(), error) {
	logLevel := logger.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = logger.LevelDebug
	}
	logger.Init(logger.Config{
		Level:   logLevel,
		Service: "triage-api",
	})

	deps, cleanup, err := NewDependencies(cfg)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize dependencies")
		return nil, nil, err
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          middleware.ErrorHandler(),
		DisableStartupMessage: cfg.IsProduction(),
		ReadBufferSize:        16384,
		WriteBufferSize:       16384,

		// go-json is a drop-in replacement for encoding/json
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,

		BodyLimit: 10 * 1024 * 1024,

		ServerHeader:       "",
		DisableDefaultDate: true,
	})

	// Global middleware stack (order matters)
	app.Use(middleware.Recover())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger())

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// AllowCredentials:true requires explicit origins, never "*"
	allowOrigins := strings.Join(cfg.AllowedOrigins, ",")
	allowCredentials := true
	if allowOrigins == "" || allowOrigins == "*" {
		if cfg.IsProduction() {
			allowOrigins = ""
			allowCredentials = false
		} else {
			allowOrigins = "http://localhost:3000,http://localhost:5173"
		}
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Request-ID",
		ExposeHeaders:    "X-Request-ID,Retry-After",
		AllowCredentials: allowCredentials,
		MaxAge:           86400,
	}))

	// Health check (no auth required)
	healthHandler := http.NewHealthHandler(deps.DB, deps.Redis)
	healthHandler.Register(app)

	jwtAuth := middleware.JWTAuth(cfg.JWTSecret)

	// Public auth routes
	publicAPI := app.Group("/api/v1")
	authHandler := http.NewAuthHandler(deps.AuthService, jwtAuth)
	authHandler.Register(publicAPI)

	// Authenticated API routes
	api := app.Group("/api/v1")
	api.Use(jwtAuth)

	// The AI endpoint gets a tighter per-IP limit since each call spends
	// model tokens
	aiLimiter := middleware.NewRateLimiter(deps.Redis, "ai", 10, time.Minute)

	emailHandler := http.NewEmailHandler(deps.EmailService, deps.TriageService)
	emailHandler.Register(api, aiLimiter.Handler())

	categoryHandler := http.NewCategoryHandler(deps.TaxonomyService)
	categoryHandler.Register(api)

	exampleHandler := http.NewExampleHandler(deps.TaxonomyService)
	exampleHandler.Register(api)

	scoreHandler := http.NewScoreHandler(deps.ScoreService)
	scoreHandler.Register(api)

	logger.Info("API server initialized successfully")

	return app, cleanup, nil
}
