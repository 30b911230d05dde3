package handler

import (
	"net/http"

	"go-gin-event-ticketing/internal/model"
	"go-gin-event-ticketing/internal/service"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	service service.AccountService
	auth    service.AuthService
}

func NewAccountHandler(service service.AccountService, auth service.AuthService) *AccountHandler {
	return &AccountHandler{service: service, auth: auth}
}

func (h *AccountHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("login", h.Login)
		router.POST("logout", h.Logout)

		router.GET("accounts", h.ListAccounts)
		router.POST("accounts", h.CreateAccount)
		router.POST("accounts/change-password", h.ChangePassword)
		router.POST("accounts/forgot-password", h.ForgotPassword)
		router.POST("accounts/forgot-password/:token", h.ResetPassword)
		router.GET("accounts/:id", h.GetAccount)
		router.PUT("accounts/:id", h.UpdateAccount)
		router.PATCH("accounts/:id", h.UpdateAccount)
		router.DELETE("accounts/:id", h.DeleteAccount)
	}
}

func (h *AccountHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Login")
		return
	}

	respond(c, resp, http.StatusOK)
}

func (h *AccountHandler) Logout(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok || token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication credentials were not provided",
		})
		return
	}
	if tokenErr, rejected := c.Get(authErrorKey); rejected {
		respondError(c, tokenErr.(error), "Logout")
		return
	}

	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		respondError(c, err, "Logout")
		return
	}

	respond(c, gin.H{"message": "Logged out"}, http.StatusOK)
}

func (h *AccountHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.service.List(c.Request.Context(), principal(c), c.Query("username"))
	if err != nil {
		respondError(c, err, "ListAccounts")
		return
	}

	respond(c, accounts, http.StatusOK)
}

func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req model.CreateAccountRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	created, err := h.service.Register(c.Request.Context(), principal(c), req)
	if err != nil {
		respondError(c, err, "CreateAccount")
		return
	}

	respond(c, created, http.StatusCreated)
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	id, ok := BindID(c, "id")
	if !ok {
		return
	}

	account, err := h.service.Get(c.Request.Context(), principal(c), id)
	if err != nil {
		respondError(c, err, "GetAccount")
		return
	}

	respond(c, account, http.StatusOK)
}

func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	id, ok := BindID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateAccountRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), principal(c), id, req)
	if err != nil {
		respondError(c, err, "UpdateAccount")
		return
	}

	respond(c, updated, http.StatusOK)
}

func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	id, ok := BindID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), principal(c), id); err != nil {
		respondError(c, err, "DeleteAccount")
		return
	}

	respond(c, nil, http.StatusNoContent)
}

func (h *AccountHandler) ChangePassword(c *gin.Context) {
	var req model.ChangePasswordRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), principal(c), req); err != nil {
		respondError(c, err, "ChangePassword")
		return
	}

	respond(c, gin.H{"message": "Password updated successfully"}, http.StatusOK)
}

func (h *AccountHandler) ForgotPassword(c *gin.Context) {
	var req model.ForgotPasswordRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), req); err != nil {
		respondError(c, err, "ForgotPassword")
		return
	}

	respond(c, gin.H{"message": "If the email is registered, a reset link has been sent"}, http.StatusOK)
}

func (h *AccountHandler) ResetPassword(c *gin.Context) {
	var req model.ResetPasswordRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), c.Param("token"), req); err != nil {
		respondError(c, err, "ResetPassword")
		return
	}

	respond(c, gin.H{"message": "Password reset successfully"}, http.StatusOK)
}
