package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/2ellamills/fitness-class/internal/ledger"
	"github.com/2ellamills/fitness-class/internal/middleware"
)

// AdminHandler serves the dashboard summary.
type AdminHandler struct {
	Ledger *ledger.Ledger
}

func NewAdminHandler(l *ledger.Ledger) *AdminHandler {
	if l == nil {
		panic("nil ledger passed to NewAdminHandler")
	}
	return &AdminHandler{Ledger: l}
}

// Stats handles GET /v1/admin/stats.
func (h *AdminHandler) Stats(c echo.Context) error {
	s, err := h.Ledger.Stats(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}
