package handler

import (
	"net/http"

	"github.com/glosscard/glosscard-backend/internal/repository"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	network repository.NetworkStatus
}

func NewHealthHandler(network repository.NetworkStatus) *HealthHandler {
	return &HealthHandler{network: network}
}

// Health handles GET and HEAD /health. The process is healthy while the
// document store is down; the store state is reported separately.
func (h *HealthHandler) Health(c *gin.Context) {
	store := "online"
	if !h.network.Online() {
		store = "offline"
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"store":  store,
	})
}
