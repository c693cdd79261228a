package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/2ellamills/fitness-class/internal/ledger"
	"github.com/2ellamills/fitness-class/internal/middleware"
	"github.com/2ellamills/fitness-class/internal/model"
)

// ClassHandler serves the class catalog and booking endpoints.
type ClassHandler struct {
	Ledger *ledger.Ledger
}

func NewClassHandler(l *ledger.Ledger) *ClassHandler {
	if l == nil {
		panic("nil ledger passed to NewClassHandler")
	}
	return &ClassHandler{Ledger: l}
}

// ClassView is a class as returned by the API.  Booked is only meaningful
// for authenticated requests.
type ClassView struct {
	model.ClassOffering
	SpotsRemaining int  `json:"spotsRemaining"`
	Booked         bool `json:"booked"`
}

func view(c model.ClassOffering, actor *model.Actor) ClassView {
	v := ClassView{ClassOffering: c, SpotsRemaining: c.SpotsRemaining()}
	if actor != nil {
		v.Booked = c.HasParticipant(actor.ID)
	}
	return v
}

// List handles GET /v1/classes.  Query parameters: date=yyyy-MM-dd limits
// the result to one day, mine=true to the caller's own bookings.
func (h *ClassHandler) List(c echo.Context) error {
	actor := middleware.ActorFrom(c)
	var f ledger.ClassFilter
	if s := c.QueryParam("date"); s != "" {
		d, err := model.ParseDate(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be yyyy-MM-dd"})
		}
		f.Date = d
	}
	if c.QueryParam("mine") == "true" {
		if actor == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
		}
		// make sure restored bookings are reflected before filtering
		if _, err := h.Ledger.Bookings(c.Request().Context(), actor); err != nil {
			return ledgerError(c, err)
		}
		f.ParticipantID = actor.ID
	}

	classes := h.Ledger.Classes(f)
	out := make([]ClassView, 0, len(classes))
	for _, cls := range classes {
		out = append(out, view(cls, actor))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Dates handles GET /v1/classes/dates.
func (h *ClassHandler) Dates(c echo.Context) error {
	dates := h.Ledger.ClassDates()
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.String())
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Get handles GET /v1/classes/:id.
func (h *ClassHandler) Get(c echo.Context) error {
	cls, err := h.Ledger.Class(c.Param("id"))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(http.StatusOK, view(cls, middleware.ActorFrom(c)))
}

// Book handles POST /v1/classes/:id/book.  Booking a class the caller is
// already in returns the class unchanged.
func (h *ClassHandler) Book(c echo.Context) error {
	id := c.Param("id")
	if _, err := h.Ledger.Class(id); err != nil {
		return ledgerError(c, err)
	}
	actor := middleware.ActorFrom(c)
	cls, err := h.Ledger.BookClass(c.Request().Context(), actor, id)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(http.StatusOK, view(cls, actor))
}

// Cancel handles DELETE /v1/classes/:id/book.
func (h *ClassHandler) Cancel(c echo.Context) error {
	id := c.Param("id")
	if _, err := h.Ledger.Class(id); err != nil {
		return ledgerError(c, err)
	}
	actor := middleware.ActorFrom(c)
	cls, err := h.Ledger.CancelBooking(c.Request().Context(), actor, id)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(http.StatusOK, view(cls, actor))
}
