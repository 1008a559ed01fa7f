package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"memoria/internal/auth"
	"memoria/internal/config"
	"memoria/internal/handler"
	"memoria/internal/middleware"
	"memoria/internal/repository/postgres"
	postgresFlash "memoria/internal/repository/postgres/flashcard"
	serviceFlash "memoria/internal/service/flashcard"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Setup structured logging, optionally teed to a rotating file
	var logFile *os.File
	if cfg.LogDir != "" {
		f, err := config.SetupLogFile(cfg.LogDir, "server", cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		logFile = f
		defer logFile.Close()
	}

	var logger *slog.Logger
	if logFile != nil {
		logger = config.NewLogger(cfg, logFile)
	} else {
		logger = config.NewLogger(cfg, nil)
	}
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"auto_migrate", cfg.AutoMigrate,
	)

	ctx := context.Background()

	if cfg.AutoMigrate {
		if err := postgres.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		logger.Info("migrations applied")
	}

	// Create JWT verifier backed by the identity provider's JWKS
	jwtVerifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", pool.Config().MaxConns,
		"min_conns", pool.Config().MinConns,
	)

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Logger: logger,
	}
	deckRepo := postgresFlash.NewDeckRepository(repoConfig)
	cardRepo := postgresFlash.NewCardRepository(repoConfig)
	templateRepo := postgresFlash.NewTemplateRepository(repoConfig)
	txManager := postgres.NewTransactionManager(repoConfig)

	// Create services
	deckService := serviceFlash.NewDeckService(deckRepo, cardRepo, txManager, logger)
	cardService := serviceFlash.NewCardService(cardRepo, deckRepo, templateRepo, txManager, logger)
	templateService := serviceFlash.NewTemplateService(templateRepo, txManager, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, &handler.Handlers{
		Decks:     handler.NewDeckHandler(deckService, cardService, logger),
		Cards:     handler.NewCardHandler(cardService, logger),
		Templates: handler.NewTemplateHandler(templateService, logger),
	})

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → RequestLogger → Auth → Recovery → Routes
	// Recovery runs after Auth so panics are logged with the caller's user id
	h = middleware.Recovery(logger)(h)
	h = middleware.AuthMiddleware(jwtVerifier)(h)
	h = middleware.RequestLogger(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt, then drain in-flight requests
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
