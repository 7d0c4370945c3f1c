package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports whether the process is up and the database reachable.
func (h *Handler) HealthCheck(c *gin.Context) {
	if err := h.db.Exec("SELECT 1").Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Server running. But, Database connection failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Server running and Database connection successful"})
}
