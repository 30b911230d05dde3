package handler

import (
	"net/http"

	"go-gin-event-ticketing/internal/model"
	"go-gin-event-ticketing/internal/service"
	apperrors "go-gin-event-ticketing/pkg/app_errors"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("events", h.GetEvents)
		router.POST("events", h.CreateEvent)
		router.GET("events/:id", h.GetEvent)
		router.PUT("events/:id", h.UpdateEvent)
		router.PATCH("events/:id", h.UpdateEvent)
		router.DELETE("events/:id", h.DeleteEvent)
		router.GET("events/:id/availability", h.GetAvailability)
		router.POST("events/:id/ticket-types", h.AddTicketType)
		router.DELETE("events/:id/ticket-types/:offerID", h.DeactivateTicketType)
		router.POST("events/:id/photos", h.AddPhoto)
	}
}

func (h *EventHandler) GetEvents(c *gin.Context) {
	var query model.EventListQuery
	if err := BindQuery(c, &query); err != nil {
		return
	}
	filter, err := query.ToFilter()
	if err != nil {
		respondError(c, apperrors.WithDetail(apperrors.ErrInvalidInput, "%s", err.Error()), "GetEvents")
		return
	}

	events, err := h.service.List(c.Request.Context(), principal(c), filter)
	if err != nil {
		respondError(c, err, "GetEvents")
		return
	}

	viewer := viewerID(c)
	resp := make([]model.EventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, model.NewEventResponse(e, viewer))
	}
	respond(c, resp, http.StatusOK)
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req model.CreateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	created, err := h.service.Create(c.Request.Context(), principal(c), req)
	if err != nil {
		respondError(c, err, "CreateEvent")
		return
	}

	respond(c, model.NewEventResponse(created, viewerID(c)), http.StatusCreated)
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	id, ok := BindID(c, "id")
	if !ok {
		return
	}

	event, err := h.service.Get(c.Request.Context(), principal(c), id)
	if err != nil {
		respondError(c, err, "GetEvent")
		return
	}

	respond(c, model.NewEventResponse(event, viewerID(c)), http.StatusOK)
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, ok := BindID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), principal(c), id, req)
	if err != nil {
		respondError(c, err, "UpdateEvent")
		return
	}

	respond(c, model.NewEventResponse(updated, viewerID(c)), http.StatusOK)
}

func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, ok := BindID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), principal(c), id); err != nil {
		respondError(c, err, "DeleteEvent")
		return
	}

	respond(c, nil, http.StatusNoContent)
}

func (h *EventHandler) GetAvailability(c *gin.Context) {
	id, ok := BindID(c, "id")
	if !ok {
		return
	}

	items, err := h.service.Availability(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "GetAvailability")
		return
	}

	respond(c, items, http.StatusOK)
}

func (h *EventHandler) AddTicketType(c *gin.Context) {
	id, ok := BindID(c, "id")
	if !ok {
		return
	}

	var req model.EventTicketRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	offer, err := h.service.AddTicketType(c.Request.Context(), principal(c), id, req)
	if err != nil {
		respondError(c, err, "AddTicketType")
		return
	}

	respond(c, model.NewEventTicketResponse(offer), http.StatusCreated)
}

func (h *EventHandler) DeactivateTicketType(c *gin.Context) {
	id, ok := BindID(c, "id")
	if !ok {
		return
	}
	offerID, ok := BindID(c, "offerID")
	if !ok {
		return
	}

	if err := h.service.DeactivateTicketType(c.Request.Context(), principal(c), id, offerID); err != nil {
		respondError(c, err, "DeactivateTicketType")
		return
	}

	respond(c, nil, http.StatusNoContent)
}

func (h *EventHandler) AddPhoto(c *gin.Context) {
	id, ok := BindID(c, "id")
	if !ok {
		return
	}

	var req model.AddPhotoRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	photo, err := h.service.AddPhoto(c.Request.Context(), principal(c), id, req)
	if err != nil {
		respondError(c, err, "AddPhoto")
		return
	}

	respond(c, model.PhotoResponse{ID: photo.ID, Image: photo.URL}, http.StatusCreated)
}
