package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	domainevents "github.com/oseikuffour/contribution-processor/internal/domain/port/events"
	paymentUseCase "github.com/oseikuffour/contribution-processor/internal/domain/usecase/payment"
	"github.com/oseikuffour/contribution-processor/internal/infrastructure/adapter/api/handler"
	"github.com/oseikuffour/contribution-processor/internal/infrastructure/adapter/api/routes"
	"github.com/oseikuffour/contribution-processor/internal/infrastructure/adapter/database"
	"github.com/oseikuffour/contribution-processor/internal/infrastructure/adapter/database/migration"
	"github.com/oseikuffour/contribution-processor/internal/infrastructure/adapter/events"
	"github.com/oseikuffour/contribution-processor/internal/infrastructure/adapter/logger"
	"github.com/oseikuffour/contribution-processor/internal/infrastructure/adapter/paystack"
	"github.com/oseikuffour/contribution-processor/internal/infrastructure/adapter/repository"
	timeProvider "github.com/oseikuffour/contribution-processor/internal/infrastructure/adapter/time"
	"github.com/oseikuffour/contribution-processor/internal/infrastructure/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	defer func() {
		_ = appLogger.Flush()
	}()

	dbConfig := &database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            database.ParsePort(cfg.Database.Port),
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Logger.Level,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      int(cfg.Database.RetryDelay.Seconds()),
	}

	tp := timeProvider.NewRealTimeProvider()

	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer dbManager.Close()

	migrationMgr := migration.NewMigrationManager(dbManager.DB(), appLogger, tp)
	if err := migrationMgr.MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Repositories
	transactionRepo := repository.NewTransactionRepository(dbManager.DB(), appLogger)
	userRepo := repository.NewUserRepository(dbManager.DB(), tp, appLogger)
	notificationRepo := repository.NewNotificationRepository(dbManager.DB(), appLogger)

	// Seed members only outside production
	if cfg.Environment != config.Production {
		if err := migration.CreateDefaultMembers(context.Background(), userRepo); err != nil {
			appLogger.Warn("Failed to seed default members", map[string]any{
				"error": err.Error(),
			})
		}
	}

	// Payment gateway
	chargeGateway := paystack.NewClient(paystack.Config{
		SecretKey:     cfg.Paystack.SecretKey,
		WebhookSecret: cfg.Paystack.WebhookSecret,
		BaseURL:       cfg.Paystack.BaseURL,
		Timeout:       cfg.Paystack.ChargeTimeout,
		Environment:   cfg.Environment,
	}, appLogger)

	webhookVerifier := paystack.NewWebhookVerifier(cfg.Paystack.WebhookSecret, cfg.Environment, appLogger)

	// Settlement event feed is optional; the lifecycle never depends on it
	var publisher domainevents.Publisher
	if cfg.Events.NatsURL != "" {
		natsPublisher, err := events.NewNatsPublisher(cfg.Events.NatsURL, appLogger)
		if err != nil {
			appLogger.Warn("Settlement event feed unavailable, continuing without it", map[string]any{
				"error": err.Error(),
			})
		} else {
			publisher = natsPublisher
			defer natsPublisher.Close()
		}
	}

	paymentService := paymentUseCase.NewService(
		transactionRepo,
		userRepo,
		notificationRepo,
		chargeGateway,
		publisher,
		tp,
		appLogger,
		cfg.Paystack.ChargeTimeout,
		cfg.Payment.Currency,
	)

	paymentHandler := handler.NewPaymentHandler(paymentService, webhookVerifier, appLogger)
	healthHandler := handler.NewHealthHandler(dbManager.DB(), appLogger)

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger)
	routes.SetupRoutes(router, paymentHandler, healthHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	if cfg.Database.Host == "" {
		missingConfigs = append(missingConfigs, "database.host (or CP_DB_HOST environment variable)")
	}
	if cfg.Database.Port == "" {
		missingConfigs = append(missingConfigs, "database.port (or CP_DB_PORT environment variable)")
	}
	if cfg.Database.Username == "" {
		missingConfigs = append(missingConfigs, "database.username (or CP_DB_USERNAME environment variable)")
	}
	if cfg.Database.Password == "" {
		missingConfigs = append(missingConfigs, "database.password (or CP_DB_PASSWORD environment variable)")
	}
	if cfg.Database.Database == "" {
		missingConfigs = append(missingConfigs, "database.database (or CP_DB_NAME environment variable)")
	}
	if cfg.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}

	if cfg.Paystack.SecretKey == "" {
		missingConfigs = append(missingConfigs, "paystack.secretKey (or CP_PAYSTACK_SECRET_KEY environment variable)")
	}

	// The webhook secret is only optional outside production; the verifier
	// fails closed without it in production.
	if cfg.Environment == config.Production && cfg.Paystack.WebhookSecret == "" {
		missingConfigs = append(missingConfigs, "paystack.webhookSecret (or CP_PAYSTACK_WEBHOOK_SECRET environment variable)")
	}

	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	return nil
}
