// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"journal-service/internal/config"
	"journal-service/internal/db"
	aiHandler "journal-service/internal/handlers/ai"
	analyticsHandler "journal-service/internal/handlers/analytics"
	authHandler "journal-service/internal/handlers/auth"
	entryHandler "journal-service/internal/handlers/entry"
	searchHandler "journal-service/internal/handlers/search"
	userHandler "journal-service/internal/handlers/user"
	"journal-service/internal/identity"
	"journal-service/internal/middleware"
	"journal-service/internal/pkg/token"
	"journal-service/internal/repository/postgres"
	aiUsecase "journal-service/internal/service/ai"
	analyticsUsecase "journal-service/internal/service/analytics"
	authUsecase "journal-service/internal/service/auth"
	entryUsecase "journal-service/internal/service/entry"
	searchUsecase "journal-service/internal/service/search"
	userUsecase "journal-service/internal/service/user"
	"journal-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
	http   *http.Server
}

func NewServer(cfg config.AppConfig) *Server {
	gin.SetMode(gin.ReleaseMode)
	return &Server{cfg: cfg, engine: gin.New()}
}

func (s *Server) Start() error {
	ctx := context.Background()

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	s.logger = logger

	// ----- Token codec -----
	codec, err := token.NewCodec(s.cfg.Token)
	if err != nil {
		return fmt.Errorf("token codec misconfigured: %w", err)
	}

	// ----- PostgreSQL -----
	pool, err := db.ConnectPostgres(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	// ----- Redis -----
	redisClient, err := db.ConnectRedis(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	// ----- Identity provider -----
	identityClient := identity.NewClient(s.cfg.Identity)

	// ----- Repositories -----
	pg := postgres.NewDB(pool)
	userRepo := postgres.NewUserRepository(pg)
	entryRepo := postgres.NewEntryRepository(pool)
	conversationRepo := postgres.NewConversationRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)

	// ----- Services -----
	authService := authUsecase.NewAuthService(identityClient, userRepo, codec, logger)
	entryService := entryUsecase.NewEntryService(entryRepo, logger)
	userService := userUsecase.NewUserService(userRepo, analyticsRepo, identityClient, logger)
	analyticsService := analyticsUsecase.NewAnalyticsService(analyticsRepo, logger)
	searchService := searchUsecase.NewSearchService(entryRepo)

	groqClient := aiUsecase.NewGroqClient(aiUsecase.GroqConfig{
		APIKey:  s.cfg.GroqAPIKey,
		Model:   s.cfg.GroqModel,
		BaseURL: s.cfg.GroqBaseURL,
	})
	aiService := aiUsecase.NewAIService(groqClient, conversationRepo, redisClient, logger)

	// ----- Handlers -----
	handlers := &Handlers{
		AuthHandler:      authHandler.NewAuthHandler(authService, logger),
		EntryHandler:     entryHandler.NewEntryHandler(entryService),
		UserHandler:      userHandler.NewUserHandler(userService),
		AnalyticsHandler: analyticsHandler.NewAnalyticsHandler(analyticsService),
		SearchHandler:    searchHandler.NewSearchHandler(searchService),
		AIHandler:        aiHandler.NewAIHandler(aiService, logger),
		ChatHandler:      websocket.NewChatHandler(aiService, authService, logger),
		AuthMiddleware:   middleware.NewAuthMiddleware(authService),
	}

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(s.cfg.CORSAllowedOrigins),
	)

	SetupRouter(s.engine, handlers)

	s.http = &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.engine,
	}

	logger.Info("server starting", zap.String("addr", s.cfg.HTTPAddr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.logger != nil {
		defer s.logger.Sync()
	}
	if s.http == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}
