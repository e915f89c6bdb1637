package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/AvaneeshKarthiks/FinWise/internal/cache"
	"github.com/AvaneeshKarthiks/FinWise/internal/config"
	"github.com/AvaneeshKarthiks/FinWise/internal/events"
	"github.com/AvaneeshKarthiks/FinWise/internal/handlers"
	"github.com/AvaneeshKarthiks/FinWise/internal/repositories/mysql"
	"github.com/AvaneeshKarthiks/FinWise/internal/services"
	"github.com/AvaneeshKarthiks/FinWise/internal/session"
	"github.com/AvaneeshKarthiks/FinWise/internal/utils"
	"github.com/AvaneeshKarthiks/FinWise/internal/validator"
	"github.com/AvaneeshKarthiks/FinWise/pkg"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	shutdownTimeout = 30 * time.Second
	sessionPrefix   = "session:"
)

func main() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE:  runServe,
	}

	rootCmd := &cobra.Command{
		Use:           "finwise",
		Short:         "FinWise backend API",
		Long:          `FinWise serves the blog, course, quiz, employee and volunteer endpoints over a relational database.`,
		RunE:          runServe,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd, migrateCommand(), rehashPasswordsCommand(), versionCommand())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Printf("finwise: %v", err)
		os.Exit(1)
	}
}

// app holds what every command needs: configuration and the process logger.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	logCloser io.Closer
}

func newApp() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slogLogger, closer, err := utils.NewJSONLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	slog.SetDefault(slogLogger)

	return &app{cfg: cfg, logger: slogLogger, logCloser: closer}, nil
}

func (a *app) Close() {
	a.logCloser.Close()
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	cfg := a.cfg
	slogLogger := a.logger
	logger := utils.NewSlogLogger(slogLogger)

	if cfg.IsProduction() && cfg.UsesDefaultSecret() {
		logger.Warn("SESSION_SECRET is not set; session cookies are signed with the built-in default key")
	}

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	if cfg.Database.AutoMigrate {
		if err := mysql.Migrate(db); err != nil {
			return err
		}
		logger.Info("Database schema migrated")
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("Failed to initialize Redis; sessions fall back to memory", "error", err)
			redisClient = nil
		}
	}

	repoManager := mysql.NewRepositoryManager(mysql.RepositoryConfig{
		DB:          db,
		RedisClient: redisClient,
	})
	if err := repoManager.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	publisher, err := events.NewWatermillPublisher(cfg.Events, slogLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize event publisher: %w", err)
	}

	auditCtx, stopAudit := context.WithCancel(context.Background())
	defer stopAudit()
	if sub := publisher.Subscriber(); sub != nil {
		topics := []string{
			publisher.Topic(events.TypeVolunteerRegistered),
			publisher.Topic(events.TypeVolunteerDecided),
		}
		go func() {
			if err := events.RunAuditLog(auditCtx, sub, topics, slogLogger); err != nil {
				logger.Error("Audit log stopped", "error", err)
			}
		}()
	}

	serviceManager := services.NewServiceManager(db, repoManager.GetRepository(), slogLogger, validator.New(), publisher)
	if err := serviceManager.Initialize(context.Background()); err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	var store session.Store
	if redisClient != nil {
		store = session.NewRedisStore(cache.NewCacheHelper(redisClient, sessionPrefix), slogLogger)
		logger.Info("Sessions stored in Redis")
	} else {
		store = session.NewMemoryStore()
		logger.Info("Sessions stored in memory")
	}
	sessions := session.NewManager(store, cfg.Session, slogLogger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	handlers.SetupMiddleware(router, logger, cfg.CORSAllowedOrigins, sessions)
	handlers.NewHandlerManager(serviceManager, sessions, logger).SetupRoutes(router)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error
	listener, err := net.Listen("tcp", server.Addr)
	if err != nil {
		runErr = fmt.Errorf("listen on %s: %w", server.Addr, err)
	} else {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		runErr = serveUntilSignal(server, listener, quit, logger)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	stopAudit()
	if err := serviceManager.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown services", "error", err)
	}

	// Closes the database pool and Redis.
	if err := repoManager.Shutdown(ctx); err != nil {
		logger.Error("Failed to close repositories", "error", err)
	}

	if runErr != nil {
		return runErr
	}
	logger.Info("Server exited")
	return nil
}

// serveUntilSignal serves on listener until a signal arrives on quit or the
// server fails, then shuts the server down. It returns the serve failure,
// or nil after a signal.
func serveUntilSignal(server *http.Server, listener net.Listener, quit <-chan os.Signal, logger utils.Logger) error {
	serverErr := make(chan error, 1)
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case sig := <-quit:
		logger.Info("Shutting down server...", "signal", sig.String())
	case err := <-serverErr:
		if err != nil {
			logger.Error("Server stopped unexpectedly", "error", err)
			runErr = fmt.Errorf("server stopped: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	return runErr
}
