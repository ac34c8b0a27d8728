// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"

	"journal-service/internal/domain/auth"
	"journal-service/internal/middleware"
	"journal-service/internal/pkg/response"
	authService "journal-service/internal/service/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *authService.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(svc *authService.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: svc,
		logger:      logger,
	}
}

// Register creates an account with the identity provider and returns a
// session.
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingErr(c, err)
		return
	}

	pair, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, pair)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingErr(c, err)
		return
	}

	pair, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, pair)
}

// Refresh rotates the session: a valid refresh token yields a new
// access/refresh pair.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req auth.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingErr(c, err)
		return
	}

	pair, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, pair)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	userID := middleware.MustGetUserID(c)
	if err := h.authService.Logout(c.Request.Context(), userID); err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// ForgotPassword always succeeds so the response does not reveal whether
// the address has an account.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req auth.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingErr(c, err)
		return
	}

	h.authService.ForgotPassword(c.Request.Context(), req.Email)
	response.JSON(c, http.StatusOK, gin.H{
		"message": "If an account exists for that email, a reset link has been sent",
	})
}

// ResetPassword behaves like ForgotPassword: the outcome is never revealed.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req auth.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingErr(c, err)
		return
	}

	h.authService.ResetPassword(c.Request.Context(), req.Token, req.NewPassword)
	response.JSON(c, http.StatusOK, gin.H{"message": "Password has been reset"})
}

func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	userID := middleware.MustGetUserID(c)
	if err := h.authService.DeleteAccount(c.Request.Context(), userID); err != nil {
		h.logger.Error("account deletion failed", zap.String("user_id", userID), zap.Error(err))
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "Account deleted"})
}
