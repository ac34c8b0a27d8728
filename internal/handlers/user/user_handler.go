// internal/handlers/user/user_handler.go
package user

import (
	"net/http"

	"journal-service/internal/domain/user"
	"journal-service/internal/middleware"
	"journal-service/internal/pkg/response"
	userService "journal-service/internal/service/user"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *userService.UserService
}

func NewUserHandler(svc *userService.UserService) *UserHandler {
	return &UserHandler{userService: svc}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, profile)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	var req user.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingErr(c, err)
		return
	}

	profile, err := h.userService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, profile)
}

func (h *UserHandler) GetPreferences(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	prefs, err := h.userService.GetPreferences(c.Request.Context(), userID)
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, prefs)
}

func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	var req user.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingErr(c, err)
		return
	}

	prefs, err := h.userService.UpdatePreferences(c.Request.Context(), userID, &req)
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, prefs)
}

func (h *UserHandler) GetStats(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	stats, err := h.userService.GetStats(c.Request.Context(), userID)
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, stats)
}
