package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/inneratlas/inneratlas-backend/internal/activity"
	"github.com/inneratlas/inneratlas-backend/internal/clients/redis"
	"github.com/inneratlas/inneratlas-backend/internal/config"
	"github.com/inneratlas/inneratlas-backend/internal/db"
	"github.com/inneratlas/inneratlas-backend/internal/handlers"
	"github.com/inneratlas/inneratlas-backend/internal/logger"
	"github.com/inneratlas/inneratlas-backend/internal/middleware"
	"github.com/inneratlas/inneratlas-backend/internal/observability"
	"github.com/inneratlas/inneratlas-backend/internal/platform/neo4jdb"
	"github.com/inneratlas/inneratlas-backend/internal/repos"
	"github.com/inneratlas/inneratlas-backend/internal/server"
	"github.com/inneratlas/inneratlas-backend/internal/services"
	"github.com/inneratlas/inneratlas-backend/internal/sse"
	"github.com/inneratlas/inneratlas-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	tuningPath := utils.GetEnv("TUNING_PATH", "", log)

	// Tracing
	shutdownOtel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "inneratlas",
		Environment: os.Getenv("APP_ENV"),
		Version:     os.Getenv("APP_VERSION"),
	})
	if shutdownOtel != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownOtel(ctx)
		}()
	}

	// Tuning
	tuning, err := config.Load(tuningPath, log)
	if err != nil {
		log.Warn("Tuning load failed, using defaults", "error", err)
	}

	// Database
	dbService, err := db.NewDatabaseService(log)
	if err != nil {
		log.Fatal("Database init failed", "error", err)
	}
	if err = dbService.AutoMigrateAll(); err != nil {
		log.Warn("Auto migration failed", "error", err)
	}
	theDB := dbService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(theDB, log)
	userTokenRepo := repos.NewUserTokenRepo(theDB, log)
	systemRepo := repos.NewSystemRepo(theDB, log)
	partRepo := repos.NewPartRepo(theDB, log)
	relationshipRepo := repos.NewRelationshipRepo(theDB, log)
	journalRepo := repos.NewJournalRepo(theDB, log)
	sessionRepo := repos.NewSessionRepo(theDB, log)

	// SSE
	log.Info("Setting up SSE hub now...")
	sseHub := sse.NewSSEHub(log)

	// Optional clients
	quotaClient, err := redis.NewQuotaClient(log)
	if err != nil {
		log.Warn("Redis quota client unavailable; message quota disabled", "error", err)
		quotaClient = nil
	}
	neo4jClient, err := neo4jdb.NewFromEnv(log)
	if err != nil {
		log.Warn("Neo4j unavailable; graph mirror disabled", "error", err)
		neo4jClient = nil
	}
	if neo4jClient != nil {
		defer neo4jClient.Close(context.Background())
	}

	// Services
	log.Info("Setting up Services from main...")
	mirrorService := services.NewGraphMirrorService(log, neo4jClient)
	authService := services.NewAuthService(theDB, log, userRepo, systemRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
	userService := services.NewUserService(theDB, log, userRepo)
	systemService := services.NewSystemService(theDB, log, systemRepo, partRepo, relationshipRepo, journalRepo, sessionRepo)
	partService := services.NewPartService(theDB, log, tuning, partRepo, relationshipRepo, journalRepo, mirrorService)
	relationshipService := services.NewRelationshipService(theDB, log, tuning, partRepo, relationshipRepo, mirrorService)
	journalService := services.NewJournalService(theDB, log, journalRepo, partRepo)
	prompter := services.NewGuidePrompter()
	sessionService := services.NewSessionService(theDB, log, sessionRepo, partRepo, prompter, quotaClient, sseHub)
	activityService := services.NewActivityService(log, systemService, sseHub, activity.RealClock())
	mapService := services.NewMapExportService(log, tuning)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	systemHandler := handlers.NewSystemHandler(systemService, activityService, mapService)
	partHandler := handlers.NewPartHandler(systemService, partService, mirrorService)
	relationshipHandler := handlers.NewRelationshipHandler(systemService, relationshipService)
	journalHandler := handlers.NewJournalHandler(systemService, journalService)
	sessionHandler := handlers.NewSessionHandler(systemService, sessionService)
	sseHandler := handlers.NewSSEHandler(log, sseHub, systemService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	var origins []string
	if raw := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}
	router := server.NewRouter(server.RouterConfig{
		ServiceName:         "inneratlas",
		AllowedOrigins:      origins,
		AuthMiddleware:      authMiddleware,
		AuthHandler:         authHandler,
		UserHandler:         userHandler,
		SystemHandler:       systemHandler,
		PartHandler:         partHandler,
		RelationshipHandler: relationshipHandler,
		JournalHandler:      journalHandler,
		SessionHandler:      sessionHandler,
		SSEHandler:          sseHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server failed", "error", err)
	}
}
