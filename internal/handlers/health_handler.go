package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	appName    string
	appVersion string
}

func NewHealthHandler(appName, appVersion string) *HealthHandler {
	return &HealthHandler{appName: appName, appVersion: appVersion}
}

// @Summary      Liveness check
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"app":     h.appName,
		"version": h.appVersion,
	})
}

func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to " + h.appName,
		"version": h.appVersion,
		"docs":    "/swagger/index.html",
	})
}
