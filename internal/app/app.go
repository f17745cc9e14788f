package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/mfimia/reddit-clone/internal/config"
	"github.com/mfimia/reddit-clone/internal/database"
	gql "github.com/mfimia/reddit-clone/internal/graphql"
	"github.com/mfimia/reddit-clone/internal/repository"
	"github.com/mfimia/reddit-clone/internal/security"
	"github.com/mfimia/reddit-clone/internal/service"
	"github.com/mfimia/reddit-clone/internal/session"
)

type App struct {
	Config *config.Config
	Logger *slog.Logger
	Server *http.Server

	db    *gorm.DB
	redis *redis.Client
}

// New builds the whole dependency graph: resources are created once here
// and passed explicitly; nothing global is mutated.
func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))

	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)

	cookies := security.NewCookieManager(cfg.CookieDomain, cfg.CookieSecure, cfg.CookieSameSite)
	sessionStore := session.NewRedisStore(redisClient, "sess")
	sessionManager := session.NewManager(sessionStore, cookies, cfg.CookieName, cfg.SessionTTL, logger)

	tokenStore := service.NewRedisResetTokenStore(redisClient, "forgot-password")
	mailer := newMailer(cfg, logger)

	authSvc := service.NewAuthService(userRepo, tokenStore, mailer, logger, cfg.FrontendURL, cfg.ResetTokenTTL)
	postSvc := service.NewPostService(postRepo, logger)

	schema, err := gql.NewSchema(gql.NewResolver(authSvc, postSvc))
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))
	router.Use(sessionManager.Middleware)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Post("/graphql", gql.Handler(schema, logger))

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		Config: cfg,
		Logger: logger,
		Server: server,
		db:     db,
		redis:  redisClient,
	}, nil
}

func (a *App) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

func newMailer(cfg *config.Config, logger *slog.Logger) service.Mailer {
	if cfg.SMTPAddr == "" {
		return service.NewLogMailer(logger)
	}
	return service.NewSMTPMailer(cfg.SMTPAddr, cfg.SMTPFrom, cfg.SMTPUser, cfg.SMTPPass)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
