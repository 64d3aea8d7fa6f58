package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Home godoc
// @Summary Welcome message
// @Tags public
// @Produce json
// @Success 200 {object} MessageResponse
// @Router / [get]
func Home(c echo.Context) error {
	return c.JSON(http.StatusOK, MessageResponse{Msg: "Welcome to the API"})
}
