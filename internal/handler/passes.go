package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/2ellamills/fitness-class/internal/ledger"
	"github.com/2ellamills/fitness-class/internal/middleware"
	"github.com/2ellamills/fitness-class/internal/model"
)

// PassHandler serves pass purchase and listing.
type PassHandler struct {
	Ledger *ledger.Ledger
}

func NewPassHandler(l *ledger.Ledger) *PassHandler {
	if l == nil {
		panic("nil ledger passed to NewPassHandler")
	}
	return &PassHandler{Ledger: l}
}

type purchaseRequest struct {
	Type model.PassType `json:"type"`
}

// List handles GET /v1/passes: every pass the caller owns.
func (h *PassHandler) List(c echo.Context) error {
	passes, err := h.Ledger.Passes(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": passes})
}

// Usable handles GET /v1/passes/usable.
func (h *PassHandler) Usable(c echo.Context) error {
	passes, err := h.Ledger.ListUsablePasses(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": passes})
}

// Purchase handles POST /v1/passes with body {"type": "5-class"}.
func (h *PassHandler) Purchase(c echo.Context) error {
	var req purchaseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	pass, err := h.Ledger.PurchasePass(c.Request().Context(), middleware.ActorFrom(c), req.Type)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(http.StatusCreated, pass)
}

// Types handles GET /v1/pass-types.  The response is identical for every
// caller, which is what lets the router cache it.
func Types(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": model.PassProducts()})
}
