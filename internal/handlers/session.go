package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inneratlas/inneratlas-backend/internal/services"
)

type SessionHandler struct {
	systemService  services.SystemService
	sessionService services.SessionService
}

func NewSessionHandler(systemService services.SystemService, sessionService services.SessionService) *SessionHandler {
	return &SessionHandler{
		systemService:  systemService,
		sessionService: sessionService,
	}
}

func (sh *SessionHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	system, ok := resolveSystem(c, sh.systemService)
	if !ok {
		return
	}
	var in services.SessionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	session, err := sh.sessionService.CreateSession(c.Request.Context(), userID, system.ID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (sh *SessionHandler) List(c *gin.Context) {
	system, ok := resolveSystem(c, sh.systemService)
	if !ok {
		return
	}
	sessions, err := sh.sessionService.ListSessions(c.Request.Context(), system.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

func (sh *SessionHandler) Get(c *gin.Context) {
	system, ok := resolveSystem(c, sh.systemService)
	if !ok {
		return
	}
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	session, err := sh.sessionService.GetSession(c.Request.Context(), system.ID, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (sh *SessionHandler) Update(c *gin.Context) {
	system, ok := resolveSystem(c, sh.systemService)
	if !ok {
		return
	}
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var in services.SessionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	session, err := sh.sessionService.UpdateSession(c.Request.Context(), system.ID, sessionID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (sh *SessionHandler) Delete(c *gin.Context) {
	system, ok := resolveSystem(c, sh.systemService)
	if !ok {
		return
	}
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := sh.sessionService.DeleteSession(c.Request.Context(), system.ID, sessionID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "session deleted"})
}

func (sh *SessionHandler) Archive(c *gin.Context) {
	system, ok := resolveSystem(c, sh.systemService)
	if !ok {
		return
	}
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	session, err := sh.sessionService.ArchiveSession(c.Request.Context(), system.ID, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (sh *SessionHandler) ListMessages(c *gin.Context) {
	system, ok := resolveSystem(c, sh.systemService)
	if !ok {
		return
	}
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	messages, err := sh.sessionService.ListMessages(c.Request.Context(), system.ID, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (sh *SessionHandler) SendMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	system, ok := resolveSystem(c, sh.systemService)
	if !ok {
		return
	}
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	exchange, err := sh.sessionService.SendMessage(c.Request.Context(), userID, system.ID, sessionID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, exchange)
}
