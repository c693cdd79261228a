package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/2ellamills/fitness-class/internal/ledger"
	"github.com/2ellamills/fitness-class/internal/model"
)

type downRepo struct{}

func (downRepo) LoadPasses(context.Context, string) ([]model.Pass, error) {
	return nil, errors.New("connection refused")
}
func (downRepo) SavePasses(context.Context, string, []model.Pass) error { return nil }
func (downRepo) LoadBookings(context.Context, string) ([]model.BookingRecord, error) {
	return nil, nil
}
func (downRepo) SaveBookings(context.Context, string, []model.BookingRecord) error { return nil }

func TestLedgerError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		body   string
	}{
		{ledger.ErrClassFull, http.StatusConflict, "class is full"},
		{fmt.Errorf("book: %w", ledger.ErrNoUsablePass), http.StatusPaymentRequired, "no usable pass"},
		{ledger.ErrInvalidPassType, http.StatusBadRequest, "invalid pass type"},
		{ledger.ErrClassNotFound, http.StatusNotFound, "class not found"},
		{errors.New("disk"), http.StatusInternalServerError, "storage error"},
	}
	e := echo.New()
	for _, tc := range cases {
		t.Run(tc.body, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
			if err := ledgerError(c, tc.err); err != nil {
				t.Fatal(err)
			}
			if rec.Code != tc.status || !strings.Contains(rec.Body.String(), tc.body) {
				t.Fatalf("got %d %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestPassesStoreDown(t *testing.T) {
	l := ledger.New(nil, downRepo{})
	h := NewPassHandler(l)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/passes", nil), rec)
	c.Set("actor", &model.Actor{ID: "alice"})

	if err := h.List(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/healthz", nil), rec)
	if err := Health(c); err != nil || rec.Body.String() != "ok" {
		t.Fatalf("health = %q, %v", rec.Body.String(), err)
	}
}

func TestConstructorsRejectNil(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewClassHandler(nil)
}
