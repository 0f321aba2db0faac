package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/babithbhoop/sparklespace/internal/api/handler"
	"github.com/babithbhoop/sparklespace/internal/api/router"
	"github.com/babithbhoop/sparklespace/internal/config"
	"github.com/babithbhoop/sparklespace/internal/localstore"
	"github.com/babithbhoop/sparklespace/internal/notify"
	"github.com/babithbhoop/sparklespace/internal/remote"
	"github.com/babithbhoop/sparklespace/internal/sync"
	"github.com/babithbhoop/sparklespace/internal/workflow"
	"github.com/babithbhoop/sparklespace/shared/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or flags")
	}

	// Parse command-line flags
	defaultConfigPath := os.Getenv("SPARKLE_SERVER_CONFIG_PATH")
	if defaultConfigPath == "" {
		defaultConfigPath = "configs/sparkle-server/config.yaml"
	}
	configPath := flag.String("config", defaultConfigPath, "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Initialize logger
	appLogger, err := initLogger(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger.Info("Starting sparkle server",
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("environment", cfg.App.Environment),
	)

	// Initialize local store
	store, err := localstore.New(cfg.Data.Dir, appLogger.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize local store: %w", err)
	}

	appLogger.Info("Local store ready", slog.String("dir", cfg.Data.Dir))

	// Credentials saved through the API override the config defaults.
	remoteCfg := remote.Config{URL: cfg.Remote.URL, AnonKey: cfg.Remote.AnonKey}
	if creds := store.LoadCredentials(); creds.Configured() {
		remoteCfg = remote.Config{URL: creds.URL, AnonKey: creds.AnonKey}
	}
	remoteClient := remote.NewClient(remoteCfg, appLogger.Logger)

	// Initialize sync coordinator and pull the remote state. A failed
	// pull is not fatal: the local cache serves until the remote is back.
	coord := sync.New(store, remoteClient, appLogger.Logger, cfg.Sync.Debounce)
	if remoteClient.Configured() {
		bootCtx, cancelBoot := context.WithTimeout(context.Background(), cfg.Sync.BootstrapTimeout)
		coord.Bootstrap(bootCtx)
		cancelBoot()
	} else {
		appLogger.Info("Remote store not configured, running local-only")
	}

	mailer := newSettingsMailer(coord, &cfg.Email, appLogger.Logger)
	actions := workflow.New(coord, mailer, appLogger.Logger)

	// Initialize router
	r := initRouter(cfg.App.Environment, appLogger.Logger, coord, actions, store)

	// Create HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	appLogger.Info("Starting HTTP server",
		slog.String("address", addr),
		slog.Duration("read_timeout", cfg.Server.ReadTimeout),
		slog.Duration("write_timeout", cfg.Server.WriteTimeout),
	)

	// Start server in goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed to start",
				slog.Any("error", err),
			)
			os.Exit(1)
		}
	}()

	appLogger.Info("Sparkle server is running",
		slog.String("address", addr),
	)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Push any edits still inside the debounce window before exiting.
	coord.Flush(ctx)

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown",
			slog.Any("error", err),
		)
		return err
	}

	appLogger.Info("Server shutdown complete")
	return nil
}

// initLogger initializes and configures the application logger
func initLogger(cfg *config.LoggingConfig) (*logger.Logger, error) {
	loggerCfg := &logger.Config{
		Level:        cfg.Level,
		Format:       cfg.Format,
		Output:       cfg.Output,
		EnableSource: cfg.EnableCaller,
		TimeFormat:   time.RFC3339,
	}

	return logger.New(loggerCfg)
}

// initRouter initializes the Gin router with all routes and middleware
func initRouter(environment string, logger *slog.Logger, coord *sync.Coordinator, actions *workflow.Actions, store *localstore.Store) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	handlerDeps := &handler.Dependencies{
		Logger:      logger,
		Coordinator: coord,
		Actions:     actions,
		Store:       store,
		NewRemote: func(cfg remote.Config) *remote.Client {
			return remote.NewClient(cfg, logger)
		},
	}

	return router.SetupRouter(handlerDeps)
}

// settingsMailer builds a mailer from the current business settings on
// every send, so provider credentials edited through the settings screen
// take effect without a restart. Config values fill any gaps.
type settingsMailer struct {
	coord    *sync.Coordinator
	defaults *config.EmailConfig
	logger   *slog.Logger
}

func newSettingsMailer(coord *sync.Coordinator, defaults *config.EmailConfig, logger *slog.Logger) *settingsMailer {
	return &settingsMailer{coord: coord, defaults: defaults, logger: logger}
}

func (m *settingsMailer) current() *notify.Mailer {
	s := m.coord.Settings()
	cfg := notify.Config{
		ServiceID:  s.EmailServiceID,
		TemplateID: s.EmailTemplateID,
		PublicKey:  s.EmailPublicKey,
		FromName:   m.defaults.FromName,
		ReplyTo:    m.defaults.ReplyTo,
	}
	if cfg.ServiceID == "" {
		cfg.ServiceID = m.defaults.ServiceID
	}
	if cfg.TemplateID == "" {
		cfg.TemplateID = m.defaults.TemplateID
	}
	if cfg.PublicKey == "" {
		cfg.PublicKey = m.defaults.PublicKey
	}
	return notify.NewMailer(cfg, m.logger)
}

func (m *settingsMailer) Configured() bool {
	return m.current().Configured()
}

func (m *settingsMailer) Send(ctx context.Context, msg notify.Message) error {
	return m.current().Send(ctx, msg)
}
