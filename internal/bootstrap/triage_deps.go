package bootstrap

import (
	"strings"
	"time"

	"triage_server/adapter/out/extract"
	"triage_server/adapter/out/persistence"
	"triage_server/config"
	"triage_server/core/agent/llm"
	"triage_server/core/port/out"
	"triage_server/core/service/auth"
	"triage_server/core/service/classification"
	"triage_server/core/service/email"
	"triage_server/core/service/reply"
	"triage_server/core/service/score"
	"triage_server/core/service/taxonomy"
	"triage_server/core/service/triage"
	"triage_server/infra/database"
	"triage_server/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

type Dependencies struct {
	Config *config.Config
	DB     *pgxpool.Pool
	SQLDB  *sqlx.DB
	Redis  *redis.Client

	// Repositories
	EmailRepo    out.EmailRepository
	CategoryRepo out.CategoryRepository
	ExampleRepo  out.ExampleRepository
	ScoreRepo    out.ScoreRepository
	UserRepo     out.UserRepository

	// Outbound adapters
	LLMClient *llm.Client
	Extractor out.TextExtractor

	// Services
	TriageService   *triage.Service
	EmailService    *email.Service
	TaxonomyService *taxonomy.Service
	ScoreService    *score.Service
	AuthService     *auth.Service
}

func NewDependencies(cfg *config.Config) (*Dependencies, func(), error) {
	deps := &Dependencies{Config: cfg}
	var cleanups []func()

	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	// Database (pgxpool, used by health checks)
	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	deps.DB = db
	cleanups = append(cleanups, func() { db.Close() })

	// Database (sqlx for the repositories)
	// simple_protocol avoids prepared statement conflicts behind PgBouncer
	sqlxURL := cfg.DatabaseURL
	if strings.Contains(sqlxURL, "?") {
		sqlxURL += "&default_query_exec_mode=simple_protocol"
	} else {
		sqlxURL += "?default_query_exec_mode=simple_protocol"
	}
	sqlDB, err := sqlx.Connect("pgx", sqlxURL)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	deps.SQLDB = sqlDB
	cleanups = append(cleanups, func() { sqlDB.Close() })

	// Redis is optional: without it the rate limiter fails open
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedis(cfg.RedisURL)
		if err != nil {
			logger.WithError(err).Warn("Redis unavailable, continuing without it")
		} else {
			deps.Redis = redisClient
			cleanups = append(cleanups, func() { redisClient.Close() })
		}
	}

	// Repositories
	deps.EmailRepo = persistence.NewEmailRepository(sqlDB)
	deps.CategoryRepo = persistence.NewCategoryRepository(sqlDB)
	deps.ExampleRepo = persistence.NewExampleRepository(sqlDB)
	deps.ScoreRepo = persistence.NewScoreRepository(sqlDB)
	deps.UserRepo = persistence.NewUserRepository(sqlDB)

	// Outbound adapters
	deps.LLMClient = llm.NewClient(llm.ClientConfig{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.LLMModel,
		Timeout: time.Duration(cfg.LLMTimeoutSec) * time.Second,
	})
	deps.Extractor = extract.NewExtractor()

	// Services
	classifier := classification.NewClassifier(deps.LLMClient)
	composer := reply.NewComposer(deps.LLMClient, cfg.SLAHours, cfg.LLMReplyTokens)

	deps.TriageService = triage.NewService(
		triage.Config{
			Mode:            cfg.TaxonomyMode,
			MaxContentChars: cfg.MaxContentChars,
		},
		deps.Extractor,
		classifier,
		composer,
		deps.LLMClient,
		deps.EmailRepo,
		deps.CategoryRepo,
		deps.ExampleRepo,
	)
	deps.EmailService = email.NewService(deps.EmailRepo)
	deps.TaxonomyService = taxonomy.NewService(deps.CategoryRepo, deps.ExampleRepo)
	deps.ScoreService = score.NewService(deps.ScoreRepo)
	deps.AuthService = auth.NewService(deps.UserRepo, cfg.JWTSecret, cfg.JWTExpiryMinutes)

	logger.Info("Dependencies initialized (taxonomy mode: %s)", cfg.TaxonomyMode)

	return deps, cleanup, nil
}
