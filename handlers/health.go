package handlers

import (
	"net/http"

	"tripplanner/utils"

	"github.com/gin-gonic/gin"
)

// Health reports process status with the last backend health snapshot.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"message":  "Hi, I'm the AI Hotel Planner",
		"backends": utils.GetHealthStatus(),
	})
}
