package handler

import (
	"net/http"

	"go-gin-event-ticketing/internal/model"
	"go-gin-event-ticketing/internal/service"

	"github.com/gin-gonic/gin"
)

type TicketTypeHandler struct {
	service service.TicketTypeService
}

func NewTicketTypeHandler(service service.TicketTypeService) *TicketTypeHandler {
	return &TicketTypeHandler{service: service}
}

func (h *TicketTypeHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("ticket-types", h.GetTicketTypes)
		router.POST("ticket-types", h.CreateTicketType)
		router.GET("ticket-types/:id", h.GetTicketType)
		router.PUT("ticket-types/:id", h.UpdateTicketType)
		router.PATCH("ticket-types/:id", h.UpdateTicketType)
		router.DELETE("ticket-types/:id", h.DeleteTicketType)
	}
}

func (h *TicketTypeHandler) GetTicketTypes(c *gin.Context) {
	types, err := h.service.List(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, err, "GetTicketTypes")
		return
	}
	respond(c, types, http.StatusOK)
}

func (h *TicketTypeHandler) CreateTicketType(c *gin.Context) {
	var req model.CreateTicketTypeRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	created, err := h.service.Create(c.Request.Context(), principal(c), req)
	if err != nil {
		respondError(c, err, "CreateTicketType")
		return
	}
	respond(c, created, http.StatusCreated)
}

func (h *TicketTypeHandler) GetTicketType(c *gin.Context) {
	id, ok := BindID(c, "id")
	if !ok {
		return
	}

	tt, err := h.service.Get(c.Request.Context(), principal(c), id)
	if err != nil {
		respondError(c, err, "GetTicketType")
		return
	}
	respond(c, tt, http.StatusOK)
}

func (h *TicketTypeHandler) UpdateTicketType(c *gin.Context) {
	id, ok := BindID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateTicketTypeRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), principal(c), id, req)
	if err != nil {
		respondError(c, err, "UpdateTicketType")
		return
	}
	respond(c, updated, http.StatusOK)
}

func (h *TicketTypeHandler) DeleteTicketType(c *gin.Context) {
	id, ok := BindID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), principal(c), id); err != nil {
		respondError(c, err, "DeleteTicketType")
		return
	}
	respond(c, nil, http.StatusNoContent)
}
