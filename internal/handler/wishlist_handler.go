package handler

import (
	"net/http"

	"go-gin-event-ticketing/internal/model"
	"go-gin-event-ticketing/internal/service"

	"github.com/gin-gonic/gin"
)

type WishlistHandler struct {
	service service.WishlistService
}

func NewWishlistHandler(service service.WishlistService) *WishlistHandler {
	return &WishlistHandler{service: service}
}

func (h *WishlistHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("wishlist", h.GetWishlist)
		router.POST("wishlist", h.AddToWishlist)
		router.DELETE("wishlist/:id", h.RemoveFromWishlist)
	}
}

func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	entries, err := h.service.List(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, err, "GetWishlist")
		return
	}
	respond(c, entries, http.StatusOK)
}

func (h *WishlistHandler) AddToWishlist(c *gin.Context) {
	var req model.CreateWishlistRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	entry, err := h.service.Add(c.Request.Context(), principal(c), req)
	if err != nil {
		respondError(c, err, "AddToWishlist")
		return
	}
	respond(c, entry, http.StatusCreated)
}

func (h *WishlistHandler) RemoveFromWishlist(c *gin.Context) {
	id, ok := BindID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Remove(c.Request.Context(), principal(c), id); err != nil {
		respondError(c, err, "RemoveFromWishlist")
		return
	}
	respond(c, nil, http.StatusNoContent)
}
