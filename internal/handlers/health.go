package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"approval-matrix-service/internal/services"
)

const serviceName = "approval-matrix-service"

// HealthCheck handles liveness probes
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
	})
}

// ReadinessCheck reports ready once a validated matrix is loaded
func ReadinessCheck(matrix *services.Matrix) gin.HandlerFunc {
	return func(c *gin.Context) {
		if matrix == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "not ready",
				"service": serviceName,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":        "ready",
			"service":       serviceName,
			"approvalTypes": len(matrix.ApprovalTypes()),
			"roles":         len(matrix.Roles()),
		})
	}
}
