package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AvaneeshKarthiks/FinWise/internal/services"
	"github.com/AvaneeshKarthiks/FinWise/internal/utils"
)

const healthCheckTimeout = 3 * time.Second

type HealthHandler struct {
	BaseHandler
	serviceManager services.ServiceManager
}

func NewHealthHandler(serviceManager services.ServiceManager, logger utils.Logger) *HealthHandler {
	return &HealthHandler{
		BaseHandler:    NewBaseHandler(logger),
		serviceManager: serviceManager,
	}
}

func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "FinWise Backend",
	})
}

// Health pings the database and Redis.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	if err := h.serviceManager.HealthCheck(ctx); err != nil {
		h.LogError(c, err, "Health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
