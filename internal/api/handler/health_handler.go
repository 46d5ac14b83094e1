package handler

import (
	"log/slog"
	"net/http"

	"github.com/cuongbtq/interniq-be/shared/database"
	"github.com/gin-gonic/gin"
)

// Health handles GET /health
func Health(logger *slog.Logger, db *database.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			if err := db.HealthCheck(c.Request.Context()); err != nil {
				logger.Error("Health check failed", slog.String("error", err.Error()))
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unhealthy",
					"service": "interniq-api-service",
				})
				return
			}
			logger.Debug("Health check passed", slog.String("db_stats", db.Stats()))
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "interniq-api-service",
		})
	}
}
