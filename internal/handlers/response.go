package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inneratlas/inneratlas-backend/internal/requestdata"
	"github.com/inneratlas/inneratlas-backend/internal/services"
	"github.com/inneratlas/inneratlas-backend/internal/types"
)

// respondError maps service errors to HTTP statuses in one place so
// handlers stay thin.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPartNotFound), errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDuplicateRelationship), errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrQuotaExceeded):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// resolveSystem loads the authenticated user's system; it writes the
// error response itself when resolution fails.
func resolveSystem(c *gin.Context, systemService services.SystemService) (*types.System, bool) {
	system, err := systemService.GetSystemForCurrentUser(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return system, true
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return uuid.Nil, false
	}
	return rd.UserID, true
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
