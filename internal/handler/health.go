package handler

import (
	"net/http"
	"time"

	"github.com/Payphone-Digital/catalog-api/internal/constants"
	"github.com/Payphone-Digital/catalog-api/pkg/redis"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db    *gorm.DB
	cache redis.Client
}

func NewHealthHandler(db *gorm.DB, cache redis.Client) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Liveness handles GET /health/live
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"service":   constants.AppName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Readiness handles GET /health/ready and checks downstream dependencies.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx := c.Request.Context()
	checks := gin.H{}
	healthy := true

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		checks["database"] = gin.H{"status": "down", "error": err.Error()}
		healthy = false
	} else {
		checks["database"] = gin.H{"status": "up"}
	}

	if h.cache.IsEnabled() {
		if err := h.cache.Ping(ctx); err != nil {
			checks["redis"] = gin.H{"status": "down", "error": err.Error()}
			healthy = false
		} else {
			checks["redis"] = gin.H{"status": "up"}
		}
	} else {
		checks["redis"] = gin.H{"status": "disabled"}
	}

	status := http.StatusOK
	overall := "ready"
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}

	c.JSON(status, gin.H{
		"status":    overall,
		"service":   constants.AppName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks":    checks,
	})
}
