package handler // HTTP handlers for the booking API

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is the liveness probe used by load balancers; it always answers ok.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
