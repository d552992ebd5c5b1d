package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inneratlas/inneratlas-backend/internal/logger"
	"github.com/inneratlas/inneratlas-backend/internal/services"
	"github.com/inneratlas/inneratlas-backend/internal/sse"
)

type SSEHandler struct {
	log           *logger.Logger
	hub           *sse.SSEHub
	systemService services.SystemService

	mu      sync.RWMutex
	clients map[uuid.UUID]*sse.SSEClient // key: UserID
}

func NewSSEHandler(log *logger.Logger, hub *sse.SSEHub, systemService services.SystemService) *SSEHandler {
	return &SSEHandler{
		log:           log.With("handler", "SSEHandler"),
		hub:           hub,
		systemService: systemService,
		clients:       make(map[uuid.UUID]*sse.SSEClient),
	}
}

// Stream opens the event stream and subscribes the connection to the
// user's system channel. A second connection from the same user
// replaces the first.
func (h *SSEHandler) Stream(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	system, ok := resolveSystem(c, h.systemService)
	if !ok {
		return
	}

	h.mu.Lock()
	if existing, exists := h.clients[userID]; exists {
		h.hub.CloseClient(existing)
		delete(h.clients, userID)
	}
	client := h.hub.NewSSEClient(userID)
	h.clients[userID] = client
	h.mu.Unlock()

	h.hub.AddChannel(client, sse.SystemChannel(system.ID))
	h.log.Debug("SSE stream open", "userID", userID, "systemID", system.ID)

	h.hub.ServeHTTP(c.Writer, c.Request, client)

	h.mu.Lock()
	delete(h.clients, userID)
	h.mu.Unlock()
	h.hub.CloseClient(client)
}

func (h *SSEHandler) Subscribe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req struct {
		Channel string `json:"channel"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Channel == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel"})
		return
	}
	h.mu.RLock()
	client, exists := h.clients[userID]
	h.mu.RUnlock()
	if !exists {
		c.JSON(http.StatusConflict, gin.H{"error": "no active SSE connection"})
		return
	}
	h.hub.AddChannel(client, req.Channel)
	c.JSON(http.StatusOK, gin.H{"message": "subscribed", "channel": req.Channel})
}

func (h *SSEHandler) Unsubscribe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req struct {
		Channel string `json:"channel"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Channel == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel"})
		return
	}
	h.mu.RLock()
	client, exists := h.clients[userID]
	h.mu.RUnlock()
	if !exists {
		c.JSON(http.StatusConflict, gin.H{"error": "no active SSE connection"})
		return
	}
	h.hub.RemoveChannel(client, req.Channel)
	c.JSON(http.StatusOK, gin.H{"message": "unsubscribed", "channel": req.Channel})
}
