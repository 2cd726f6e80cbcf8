package middleware

import (
	"ishop/internal/common"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// RequestID assigns X-Request-Id like echo's middleware and also stores the id
// in the request context so services can log it.
func RequestID() echo.MiddlewareFunc {
	return echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		RequestIDHandler: func(c echo.Context, id string) {
			c.SetRequest(c.Request().WithContext(common.WithRequestID(c.Request().Context(), id)))
		},
	})
}
