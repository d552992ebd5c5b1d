package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inneratlas/inneratlas-backend/internal/services"
)

type JournalHandler struct {
	systemService  services.SystemService
	journalService services.JournalService
}

func NewJournalHandler(systemService services.SystemService, journalService services.JournalService) *JournalHandler {
	return &JournalHandler{
		systemService:  systemService,
		journalService: journalService,
	}
}

func (jh *JournalHandler) Create(c *gin.Context) {
	system, ok := resolveSystem(c, jh.systemService)
	if !ok {
		return
	}
	var in services.JournalInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	entry, err := jh.journalService.CreateEntry(c.Request.Context(), system.ID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (jh *JournalHandler) List(c *gin.Context) {
	system, ok := resolveSystem(c, jh.systemService)
	if !ok {
		return
	}
	entries, err := jh.journalService.ListEntries(c.Request.Context(), system.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (jh *JournalHandler) Get(c *gin.Context) {
	system, ok := resolveSystem(c, jh.systemService)
	if !ok {
		return
	}
	entryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	entry, err := jh.journalService.GetEntry(c.Request.Context(), system.ID, entryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (jh *JournalHandler) Update(c *gin.Context) {
	system, ok := resolveSystem(c, jh.systemService)
	if !ok {
		return
	}
	entryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var in services.JournalInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	entry, err := jh.journalService.UpdateEntry(c.Request.Context(), system.ID, entryID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (jh *JournalHandler) Delete(c *gin.Context) {
	system, ok := resolveSystem(c, jh.systemService)
	if !ok {
		return
	}
	entryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := jh.journalService.DeleteEntry(c.Request.Context(), system.ID, entryID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "journal entry deleted"})
}
