package auth

import (
	"errors"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "authapi/internal/errors"
)

// ContextKey is where the guard stores verified *Claims on the echo context.
const ContextKey = "user"

// Guard returns middleware that admits only requests carrying a valid
// "Authorization: Bearer <token>" header. A missing or malformed header is
// rejected with 401, a token that fails verification with 400. In both cases
// the downstream handler is not invoked.
func Guard(jwtService *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  ContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return jwtService.ValidateToken(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			reason := apperrors.ErrMissingToken
			if errors.Is(err, ErrInvalidToken) {
				reason = apperrors.ErrInvalidToken
			}
			httpErr := apperrors.MapErrorToHTTP(reason)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	})
}

// ClaimsFromContext returns the claims stored by Guard.
func ClaimsFromContext(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(ContextKey).(*Claims)
	return claims, ok
}
