package handler

import (
	"log/slog"
	"net/http"

	"github.com/cuongbtq/interniq-be/internal/api/dto"
	"github.com/gin-gonic/gin"
)

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, "request body", err)
		return
	}

	session, err := h.identity.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Success: true,
		Token:   session.Token,
		User:    session.User,
	})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, "request body", err)
		return
	}

	session, err := h.identity.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}

	h.logger.Info("User logged in", slog.String("user_id", session.User.ID))

	c.JSON(http.StatusOK, dto.AuthResponse{
		Success: true,
		Token:   session.Token,
		User:    session.User,
	})
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	caller, ok := requireCaller(c, h.logger)
	if !ok {
		return
	}

	user, err := h.identity.Me(c.Request.Context(), caller)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{Success: true, User: user})
}

// Logout handles POST /api/v1/auth/logout. Tokens are stateless, so the
// client discards its copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Logged out successfully"})
}
