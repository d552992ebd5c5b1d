package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inneratlas/inneratlas-backend/internal/services"
)

type RelationshipHandler struct {
	systemService       services.SystemService
	relationshipService services.RelationshipService
}

func NewRelationshipHandler(systemService services.SystemService, relationshipService services.RelationshipService) *RelationshipHandler {
	return &RelationshipHandler{
		systemService:       systemService,
		relationshipService: relationshipService,
	}
}

func (rh *RelationshipHandler) Create(c *gin.Context) {
	system, ok := resolveSystem(c, rh.systemService)
	if !ok {
		return
	}
	var in services.RelationshipInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	rel, err := rh.relationshipService.CreateRelationship(c.Request.Context(), system.ID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rel)
}

func (rh *RelationshipHandler) List(c *gin.Context) {
	system, ok := resolveSystem(c, rh.systemService)
	if !ok {
		return
	}
	rels, err := rh.relationshipService.ListRelationships(c.Request.Context(), system.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rels)
}

func (rh *RelationshipHandler) Get(c *gin.Context) {
	system, ok := resolveSystem(c, rh.systemService)
	if !ok {
		return
	}
	relID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	rel, err := rh.relationshipService.GetRelationship(c.Request.Context(), system.ID, relID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rel)
}

func (rh *RelationshipHandler) Update(c *gin.Context) {
	system, ok := resolveSystem(c, rh.systemService)
	if !ok {
		return
	}
	relID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		RelationshipType string `json:"relationship_type"`
		Description      string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	rel, err := rh.relationshipService.UpdateRelationship(c.Request.Context(), system.ID, relID, req.RelationshipType, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rel)
}

func (rh *RelationshipHandler) Delete(c *gin.Context) {
	system, ok := resolveSystem(c, rh.systemService)
	if !ok {
		return
	}
	relID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := rh.relationshipService.DeleteRelationship(c.Request.Context(), system.ID, relID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "relationship deleted"})
}
