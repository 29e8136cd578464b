package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HeaderXRequestID is the HTTP header carrying the request correlation id.
const HeaderXRequestID = "X-Request-Id"

// RequestID extracts the client request id or generates one, and echoes it on
// the response so failures can be correlated across logs.
func RequestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(HeaderXRequestID, requestID)
		c.Response().Header().Set(HeaderXRequestID, requestID)

		return next(c)
	}
}
