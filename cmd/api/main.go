package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tricoghealth/intake-assistant/internal/adapters/database"
	"github.com/tricoghealth/intake-assistant/internal/adapters/events"
	"github.com/tricoghealth/intake-assistant/internal/adapters/providers/scheduling"
	"github.com/tricoghealth/intake-assistant/internal/api/handlers"
	"github.com/tricoghealth/intake-assistant/internal/api/routes"
	"github.com/tricoghealth/intake-assistant/internal/application/services"
	"github.com/tricoghealth/intake-assistant/internal/domain/providers"
	"github.com/tricoghealth/intake-assistant/internal/infrastructure/clients/openai"
	"github.com/tricoghealth/intake-assistant/internal/infrastructure/clients/postgres"
	"github.com/tricoghealth/intake-assistant/internal/infrastructure/clients/redis"
	"github.com/tricoghealth/intake-assistant/internal/infrastructure/notifications"
	"github.com/tricoghealth/intake-assistant/internal/infrastructure/observability"
	"github.com/tricoghealth/intake-assistant/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger("intake-assistant", cfg.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	if err := database.Migrate(ctx, pgClient); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database schema")
	}

	intakeRepo := database.NewIntakeAdapter(pgClient)
	symptomRepo := database.NewSymptomRuleAdapter(pgClient)

	if err := symptomRepo.Seed(ctx, database.DefaultSymptomRules()); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed symptom rules")
	}

	// Initialize Redis client; the app can run without it, losing only the
	// completion dispatcher
	var eventBus providers.EventBus
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, completed intakes will not be dispatched")
	} else {
		defer redisClient.Close()
		eventBus = events.NewRedisEventBus(redisClient)
	}

	// Initialize symptom classifier
	classifier, err := openai.NewClient(&cfg.OpenAI)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize symptom classifier")
	}

	// Initialize downstream providers
	scheduler := scheduling.NewSchedulingProvider(&cfg.Scheduling)

	var notifier providers.MessageSender
	telegramSender, err := notifications.NewTelegramSender(&cfg.Telegram)
	if err != nil {
		log.Warn().Err(err).Msg("Telegram sender unavailable, doctor notifications disabled")
	} else {
		notifier = telegramSender
	}

	// Initialize application services
	catalog, err := services.NewCatalog(ctx, symptomRepo)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load symptom catalog")
	}

	registry := services.NewSessionRegistry()
	registry.StartSweeper(ctx, cfg.Intake.SweepInterval, cfg.Intake.SessionIdleTimeout)

	dialogueService := services.NewDialogueService(intakeRepo, catalog, classifier)

	if eventBus != nil {
		completionService := services.NewCompletionService(eventBus, scheduler, notifier, intakeRepo, &cfg.Intake)
		go func() {
			if err := completionService.Run(ctx); err != nil && err != context.Canceled {
				log.Error().Err(err).Msg("Completion dispatcher stopped")
			}
		}()
	}

	// Initialize handlers and routes
	chatHandler := handlers.NewChatHandler(dialogueService, registry, eventBus)
	intakeHandler := handlers.NewIntakeHandler(intakeRepo)

	router := routes.NewRouter(chatHandler, intakeHandler, cfg.Server.AllowedOrigins)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:        serverAddr,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing event bus")
		}
	}

	log.Info().Msg("Server stopped")
}
