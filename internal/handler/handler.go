package handler

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	apperrors "authapi/internal/errors"
)

// MessageResponse is the plain {msg} body.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// respondError converts err into an HTTP error. Internal failures are logged
// with their detail and reach the client only as a generic message.
func respondError(c echo.Context, logger *slog.Logger, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if apperrors.IsInternal(err) {
		logger.ErrorContext(c.Request().Context(), "request failed",
			slog.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			slog.String("method", c.Request().Method),
			slog.String("path", c.Path()),
			slog.Any("error", err),
		)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
