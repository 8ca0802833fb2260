package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hubinova/backend/internal/models"
	"gorm.io/gorm"
)

// HealthHandler provides liveness and readiness endpoints.
type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "hubinova"})
}

// Status pings the database and checks that every table exists.
// GET /api/status
func (h *HealthHandler) Status(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	overall := "healthy"
	dbStatus := "ok"
	sqlDB, err := h.db.DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	}

	tables := gin.H{}
	if overall == "healthy" {
		migrator := h.db.WithContext(ctx).Migrator()
		for _, table := range models.SchemaTables() {
			if migrator.HasTable(table) {
				tables[table] = "ok"
			} else {
				tables[table] = "missing"
				overall = "degraded"
			}
		}
	}

	status := http.StatusOK
	if overall != "healthy" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"status":  overall,
		"service": "hubinova",
		"components": gin.H{
			"database": dbStatus,
			"tables":   tables,
		},
	})
}
