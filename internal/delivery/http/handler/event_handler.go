package handler

import (
	"net/http"

	"github.com/glosscard/glosscard-backend/internal/domain"
	"github.com/gin-gonic/gin"
)

// EventLogger accepts analytics events without blocking.
type EventLogger interface {
	Log(name domain.AnalyticsEvent, params map[string]any)
}

type EventHandler struct {
	events EventLogger
}

func NewEventHandler(events EventLogger) *EventHandler {
	return &EventHandler{events: events}
}

// EventRequest represents a client-side analytics event
type EventRequest struct {
	Name   string         `json:"name" binding:"required"`
	Params map[string]any `json:"params"`
}

// LogEvent handles POST /events
// @Summary Record an analytics event
// @Tags analytics
// @Accept json
// @Param request body EventRequest true "Event"
// @Success 202
// @Failure 400 {object} ErrorResponse
// @Router /events [post]
func (h *EventHandler) LogEvent(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	name := domain.AnalyticsEvent(req.Name)
	if !name.Valid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "unknown event",
		})
		return
	}

	h.events.Log(name, req.Params)
	c.Status(http.StatusAccepted)
}
