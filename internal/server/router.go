package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/inneratlas/inneratlas-backend/internal/handlers"
	"github.com/inneratlas/inneratlas-backend/internal/middleware"
)

type RouterConfig struct {
	ServiceName         string
	AllowedOrigins      []string
	AuthMiddleware      *middleware.AuthMiddleware
	AuthHandler         *handlers.AuthHandler
	UserHandler         *handlers.UserHandler
	SystemHandler       *handlers.SystemHandler
	PartHandler         *handlers.PartHandler
	RelationshipHandler *handlers.RelationshipHandler
	JournalHandler      *handlers.JournalHandler
	SessionHandler      *handlers.SessionHandler
	SSEHandler          *handlers.SSEHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "inneratlas"
	}
	router.Use(otelgin.Middleware(serviceName))

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Refresh-Token"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	api.POST("/register", cfg.AuthHandler.Register)
	api.POST("/login", cfg.AuthHandler.Login)

	// Protected
	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	protected.POST("/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/logout", cfg.AuthHandler.Logout)
	protected.GET("/user", cfg.UserHandler.GetMe)

	protected.GET("/system", cfg.SystemHandler.GetSystem)
	protected.GET("/system/snapshot", cfg.SystemHandler.GetSnapshot)
	protected.GET("/system/activity", cfg.SystemHandler.GetActivity)
	protected.GET("/system/map", cfg.SystemHandler.GetMap)
	protected.GET("/system/map.png", cfg.SystemHandler.ExportMap)

	protected.POST("/parts", cfg.PartHandler.Create)
	protected.GET("/parts", cfg.PartHandler.List)
	protected.GET("/parts/:id", cfg.PartHandler.Get)
	protected.PUT("/parts/:id", cfg.PartHandler.Update)
	protected.DELETE("/parts/:id", cfg.PartHandler.Delete)
	protected.GET("/parts/:id/related", cfg.PartHandler.Related)

	protected.POST("/relationships", cfg.RelationshipHandler.Create)
	protected.GET("/relationships", cfg.RelationshipHandler.List)
	protected.GET("/relationships/:id", cfg.RelationshipHandler.Get)
	protected.PUT("/relationships/:id", cfg.RelationshipHandler.Update)
	protected.DELETE("/relationships/:id", cfg.RelationshipHandler.Delete)

	protected.POST("/journals", cfg.JournalHandler.Create)
	protected.GET("/journals", cfg.JournalHandler.List)
	protected.GET("/journals/:id", cfg.JournalHandler.Get)
	protected.PUT("/journals/:id", cfg.JournalHandler.Update)
	protected.DELETE("/journals/:id", cfg.JournalHandler.Delete)

	protected.POST("/sessions", cfg.SessionHandler.Create)
	protected.GET("/sessions", cfg.SessionHandler.List)
	protected.GET("/sessions/:id", cfg.SessionHandler.Get)
	protected.PUT("/sessions/:id", cfg.SessionHandler.Update)
	protected.DELETE("/sessions/:id", cfg.SessionHandler.Delete)
	protected.POST("/sessions/:id/archive", cfg.SessionHandler.Archive)
	protected.GET("/sessions/:id/messages", cfg.SessionHandler.ListMessages)
	protected.POST("/sessions/:id/messages", cfg.SessionHandler.SendMessage)

	protected.GET("/sse/stream", cfg.SSEHandler.Stream)
	protected.POST("/sse/subscribe", cfg.SSEHandler.Subscribe)
	protected.POST("/sse/unsubscribe", cfg.SSEHandler.Unsubscribe)

	return router
}
