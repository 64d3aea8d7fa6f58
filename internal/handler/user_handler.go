package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"authapi/internal/model"
	"authapi/internal/service"
)

// UserHandler serves profile lookups.
type UserHandler struct {
	svc    service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, logger: logger}
}

// UserResponse wraps a user profile.
type UserResponse struct {
	User *model.User `json:"user"`
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.svc.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, UserResponse{User: user})
}
