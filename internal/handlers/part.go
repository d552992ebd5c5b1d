package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inneratlas/inneratlas-backend/internal/services"
)

type PartHandler struct {
	systemService services.SystemService
	partService   services.PartService
	mirror        services.GraphMirrorService
}

func NewPartHandler(systemService services.SystemService, partService services.PartService, mirror services.GraphMirrorService) *PartHandler {
	return &PartHandler{
		systemService: systemService,
		partService:   partService,
		mirror:        mirror,
	}
}

func (ph *PartHandler) Create(c *gin.Context) {
	system, ok := resolveSystem(c, ph.systemService)
	if !ok {
		return
	}
	var in services.PartInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	part, err := ph.partService.CreatePart(c.Request.Context(), system.ID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, part)
}

func (ph *PartHandler) List(c *gin.Context) {
	system, ok := resolveSystem(c, ph.systemService)
	if !ok {
		return
	}
	parts, err := ph.partService.ListParts(c.Request.Context(), system.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, parts)
}

func (ph *PartHandler) Get(c *gin.Context) {
	system, ok := resolveSystem(c, ph.systemService)
	if !ok {
		return
	}
	partID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	part, err := ph.partService.GetPart(c.Request.Context(), system.ID, partID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, part)
}

func (ph *PartHandler) Update(c *gin.Context) {
	system, ok := resolveSystem(c, ph.systemService)
	if !ok {
		return
	}
	partID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var in services.PartInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	part, err := ph.partService.UpdatePart(c.Request.Context(), system.ID, partID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, part)
}

func (ph *PartHandler) Delete(c *gin.Context) {
	system, ok := resolveSystem(c, ph.systemService)
	if !ok {
		return
	}
	partID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ph.partService.DeletePart(c.Request.Context(), system.ID, partID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "part deleted"})
}

// Related serves the one-hop neighborhood from the graph mirror; when
// the mirror is disabled it returns an empty list rather than erroring.
func (ph *PartHandler) Related(c *gin.Context) {
	system, ok := resolveSystem(c, ph.systemService)
	if !ok {
		return
	}
	partID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, err := ph.partService.GetPart(c.Request.Context(), system.ID, partID); err != nil {
		respondError(c, err)
		return
	}
	related, err := ph.mirror.RelatedParts(c.Request.Context(), partID)
	if err != nil {
		respondError(c, err)
		return
	}
	ids := make([]string, 0, len(related))
	for _, id := range related {
		ids = append(ids, id.String())
	}
	c.JSON(http.StatusOK, gin.H{"part_id": partID, "related": ids, "mirror_enabled": ph.mirror.Enabled()})
}
