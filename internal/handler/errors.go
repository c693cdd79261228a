package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/2ellamills/fitness-class/internal/ledger"
)

// ledgerError translates a ledger error into the JSON error response.
// Anything unrecognised is a storage failure and is logged.
func ledgerError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, ledger.ErrClassFull):
		return c.JSON(http.StatusConflict, echo.Map{"error": "class is full"})
	case errors.Is(err, ledger.ErrNoUsablePass):
		return c.JSON(http.StatusPaymentRequired, echo.Map{"error": "no usable pass"})
	case errors.Is(err, ledger.ErrInvalidPassType):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid pass type"})
	case errors.Is(err, ledger.ErrClassNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "class not found"})
	}
	log.Printf("handler: %s %s: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
}
