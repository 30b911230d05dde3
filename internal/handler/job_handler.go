package handler

import (
	"net/http"

	"go-gin-event-ticketing/internal/service"

	"github.com/gin-gonic/gin"
)

// JobHandler exposes externally triggered jobs.
type JobHandler struct {
	reminders service.ReminderService
}

func NewJobHandler(reminders service.ReminderService) *JobHandler {
	return &JobHandler{reminders: reminders}
}

func (h *JobHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("jobs/reminders", h.RunReminders)
	}
}

func (h *JobHandler) RunReminders(c *gin.Context) {
	result, err := h.reminders.Trigger(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, err, "RunReminders")
		return
	}
	respond(c, result, http.StatusOK)
}
