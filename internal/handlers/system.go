package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inneratlas/inneratlas-backend/internal/graph"
	"github.com/inneratlas/inneratlas-backend/internal/services"
)

type SystemHandler struct {
	systemService   services.SystemService
	activityService services.ActivityService
	mapService      services.MapExportService
}

func NewSystemHandler(systemService services.SystemService, activityService services.ActivityService, mapService services.MapExportService) *SystemHandler {
	return &SystemHandler{
		systemService:   systemService,
		activityService: activityService,
		mapService:      mapService,
	}
}

func (sh *SystemHandler) GetSystem(c *gin.Context) {
	system, ok := resolveSystem(c, sh.systemService)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, system)
}

func (sh *SystemHandler) GetSnapshot(c *gin.Context) {
	system, ok := resolveSystem(c, sh.systemService)
	if !ok {
		return
	}
	snap, err := sh.systemService.LoadSnapshot(c.Request.Context(), system.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"system":        snap.System,
		"parts":         snap.Parts,
		"relationships": snap.Relationships,
		"journals":      snap.Journals,
		"sessions":      snap.Sessions,
	})
}

// GetActivity runs a reconciliation pass and returns the feed. A
// degraded pass still returns 200 with the partial feed flagged.
func (sh *SystemHandler) GetActivity(c *gin.Context) {
	system, ok := resolveSystem(c, sh.systemService)
	if !ok {
		return
	}
	result, err := sh.activityService.Feed(c.Request.Context(), system.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetMap returns the positioned layout as JSON. Filter query params
// narrow visibility only; the layout itself is computed over the full
// snapshot so filtered views keep the same node positions.
func (sh *SystemHandler) GetMap(c *gin.Context) {
	system, ok := resolveSystem(c, sh.systemService)
	if !ok {
		return
	}
	snap, err := sh.systemService.LoadSnapshot(c.Request.Context(), system.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	layout, mErr := sh.mapService.ComputeMap(c.Request.Context(), snap, mapFilterFromQuery(c))
	if mErr != nil {
		respondError(c, mErr)
		return
	}
	c.JSON(http.StatusOK, layout)
}

func mapFilterFromQuery(c *gin.Context) graph.Filter {
	filter := graph.NewFilter()
	for _, role := range strings.Split(c.Query("roles"), ",") {
		if role = strings.TrimSpace(role); role != "" {
			filter.Roles[role] = true
		}
	}
	for _, relType := range strings.Split(c.Query("types"), ",") {
		if relType = strings.TrimSpace(relType); relType != "" {
			filter.RelationshipTypes[relType] = true
		}
	}
	if raw := c.Query("show_relationships"); raw != "" {
		if show, err := strconv.ParseBool(raw); err == nil {
			filter.ShowRelationships = show
		}
	}
	return filter
}

func (sh *SystemHandler) ExportMap(c *gin.Context) {
	system, ok := resolveSystem(c, sh.systemService)
	if !ok {
		return
	}
	snap, err := sh.systemService.LoadSnapshot(c.Request.Context(), system.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	buf, rErr := sh.mapService.RenderMap(c.Request.Context(), snap)
	if rErr != nil {
		respondError(c, rErr)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="system-map.png"`)
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
