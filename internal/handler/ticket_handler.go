package handler

import (
	"net/http"

	"go-gin-event-ticketing/internal/model"
	"go-gin-event-ticketing/internal/service"

	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	service service.TicketService
}

func NewTicketHandler(service service.TicketService) *TicketHandler {
	return &TicketHandler{service: service}
}

func (h *TicketHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("tickets", h.GetTickets)
		router.POST("tickets", h.PurchaseTickets)
		router.PATCH("tickets/check-in/:id", h.CheckIn)
		router.GET("tickets/:id", h.GetTicket)
		router.PUT("tickets/:id", h.UpdateTicket)
		router.PATCH("tickets/:id", h.UpdateTicket)
		router.DELETE("tickets/:id", h.DeleteTicket)
	}
}

func (h *TicketHandler) PurchaseTickets(c *gin.Context) {
	var req model.PurchaseRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	tickets, err := h.service.Purchase(c.Request.Context(), principal(c), req)
	if err != nil {
		respondError(c, err, "PurchaseTickets")
		return
	}

	respond(c, tickets, http.StatusCreated)
}

func (h *TicketHandler) GetTickets(c *gin.Context) {
	tickets, err := h.service.List(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, err, "GetTickets")
		return
	}

	respond(c, tickets, http.StatusOK)
}

func (h *TicketHandler) GetTicket(c *gin.Context) {
	id, ok := BindID(c, "id")
	if !ok {
		return
	}

	ticket, err := h.service.Get(c.Request.Context(), principal(c), id)
	if err != nil {
		respondError(c, err, "GetTicket")
		return
	}

	respond(c, ticket, http.StatusOK)
}

func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	id, ok := BindID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateTicketRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), principal(c), id, req)
	if err != nil {
		respondError(c, err, "UpdateTicket")
		return
	}

	respond(c, updated, http.StatusOK)
}

func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	id, ok := BindID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), principal(c), id); err != nil {
		respondError(c, err, "DeleteTicket")
		return
	}

	respond(c, nil, http.StatusNoContent)
}

func (h *TicketHandler) CheckIn(c *gin.Context) {
	id, ok := BindID(c, "id")
	if !ok {
		return
	}

	ticket, err := h.service.CheckIn(c.Request.Context(), principal(c), id)
	if err != nil {
		respondError(c, err, "CheckIn")
		return
	}

	respond(c, ticket, http.StatusOK)
}
