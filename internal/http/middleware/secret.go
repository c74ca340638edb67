package middleware

import (
	"net/http"

	echo "github.com/labstack/echo/v4"

	"github.com/storelab/review-gateway/internal/metrics"
)

// HeaderSecret is the header the trigger platform is configured to send
// with every invocation.
const HeaderSecret = "secret-authorization-string"

// SharedSecret authorizes trigger invocations by exact equality against a
// static secret. A missing or mismatched header short-circuits the request
// with 401 before any other middleware or the handler runs.
//
// TODO: switch to subtle.ConstantTimeCompare; plain equality is what the
// trigger contract specifies today, but it leaks timing.
func SharedSecret(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got := c.Request().Header.Get(HeaderSecret)
			if got != secret {
				metrics.WebhookRequestsTotal.WithLabelValues("unauthorized").Inc()
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
			}
			return next(c)
		}
	}
}
