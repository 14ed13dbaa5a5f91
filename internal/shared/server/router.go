package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "resumeats-backend/internal/auth"
	"resumeats-backend/internal/extractions"
	"resumeats-backend/internal/llm"
	"resumeats-backend/internal/llm/gemini"
	"resumeats-backend/internal/services/health"
	"resumeats-backend/internal/shared/config"
	"resumeats-backend/internal/shared/server/middleware"
	"resumeats-backend/internal/shared/server/respond"
	"resumeats-backend/internal/shared/storage/db"
	"resumeats-backend/internal/shared/storage/object"
	"resumeats-backend/internal/shared/storage/object/local"
	"resumeats-backend/internal/users"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(cfg.Env),
	)

	// Dependencies
	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, opts)
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	var llmClient llm.Client
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.New(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Printf("failed to build gemini client: %v", err)
			llmClient = unconfiguredClient{}
		} else {
			llmClient = client
		}
	} else {
		log.Printf("GEMINI_API_KEY not set, /extract will report the AI service as unconfigured")
		llmClient = unconfiguredClient{}
	}

	var extractionsRepo extractions.ExtractionsRepo
	if sqlDB != nil {
		extractionsRepo = &extractions.PGRepo{DB: sqlDB}
	} else {
		extractionsRepo = extractions.NewMemoryRepo()
	}
	var store object.ObjectStore
	if cfg.LocalStoreDir != "" {
		store = local.New(cfg.LocalStoreDir)
	}

	extractionsSvc := &extractions.Service{LLM: llmClient, Repo: extractionsRepo, Model: cfg.GeminiModel}
	extractionsHandler := extractions.NewHandler(extractionsSvc, store)

	var usersRepo users.Repo
	if sqlDB != nil {
		usersRepo = &users.PGRepo{DB: sqlDB}
	} else {
		usersRepo = users.NewMemoryRepo()
	}
	usersSvc := users.NewService(usersRepo)
	usersHandler := users.NewHandler(usersSvc)

	googleAuthSvc := googleauth.NewGoogleService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, cfg.UIRedirectURL, usersSvc)
	healthSvc := health.NewService()

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status())
	})
	googleAuthSvc.RegisterRoutes(api)
	registerMeRoutes(api)
	usersHandler.RegisterRoutes(api.Group("/users"))

	// The AI call is the expensive path; throttle it per principal.
	extractGroup := api.Group("")
	extractGroup.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"EXTRACT": {Rate: 0.2, Burst: 3},
		},
		GroupFor: func(c *gin.Context) string {
			if c.FullPath() == "/api/v1/extract" {
				return "EXTRACT"
			}
			return ""
		},
		DefaultGroup: "NONE",
	}))
	extractionsHandler.RegisterRoutes(extractGroup)

	return r
}

// unconfiguredClient reports the missing API key at request time so the
// server can still boot in dev.
type unconfiguredClient struct{}

func (unconfiguredClient) ExtractResume(ctx context.Context, resumeText string) (string, error) {
	return "", llm.ErrNotConfigured
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
