package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/2ellamills/fitness-class/internal/clock"
	"github.com/2ellamills/fitness-class/internal/handler"
	"github.com/2ellamills/fitness-class/internal/ledger"
	"github.com/2ellamills/fitness-class/internal/model"
	"github.com/2ellamills/fitness-class/internal/repository"
	"github.com/2ellamills/fitness-class/internal/utils"
)

const secret = "router-secret"

var now = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

type api struct {
	t     *testing.T
	e     *echo.Echo
	store *repository.MemoryStore
}

func newAPI(t *testing.T) *api {
	t.Helper()
	day := model.NewDate(now)
	classes := []model.ClassOffering{
		{ID: "yoga", Title: "Yoga Flow", Date: day, Time: "07:00", Duration: 60, Capacity: 1},
		{ID: "hiit", Title: "HIIT Training", Date: day.AddDays(1), Time: "17:30", Duration: 60, Capacity: 10},
	}
	store := repository.NewMemoryStore()
	l := ledger.New(classes, repository.NewLedgerRepo(store), ledger.WithClock(clock.NewFixed(now)))

	e := echo.New()
	Register(e, Handlers{
		Classes:   handler.NewClassHandler(l),
		Passes:    handler.NewPassHandler(l),
		Admin:     handler.NewAdminHandler(l),
		JWTSecret: secret,
	})
	return &api{t: t, e: e, store: store}
}

func (a *api) token(id, role string) string {
	a.t.Helper()
	tok, err := utils.NewAccessToken(secret, model.Actor{ID: id, Email: id + "@example.com", Role: role}, 30)
	if err != nil {
		a.t.Fatal(err)
	}
	return tok.Token
}

func (a *api) do(method, path, token, body string, out interface{}) int {
	a.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			a.t.Fatalf("%s %s: decode %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec.Code
}

type classList struct {
	Items []handler.ClassView `json:"items"`
}

type errBody struct {
	Error string `json:"error"`
}

func TestBookingFlow(t *testing.T) {
	a := newAPI(t)
	alice := a.token("alice", model.RoleUser)
	bob := a.token("bob", model.RoleUser)

	var e errBody
	if code := a.do(http.MethodPost, "/v1/classes/yoga/book", alice, "", &e); code != http.StatusPaymentRequired || e.Error != "no usable pass" {
		t.Fatalf("book without pass = %d %+v", code, e)
	}

	var p model.Pass
	if code := a.do(http.MethodPost, "/v1/passes", alice, `{"type":"single"}`, &p); code != http.StatusCreated {
		t.Fatalf("purchase = %d", code)
	}
	if p.RemainingSessions != 1 || p.ExpiryDate.String() != "2025-04-09" || p.UserID != "alice" {
		t.Fatalf("pass = %+v", p)
	}
	a.do(http.MethodPost, "/v1/passes", bob, `{"type":"5-class"}`, nil)

	var cls handler.ClassView
	if code := a.do(http.MethodPost, "/v1/classes/yoga/book", alice, "", &cls); code != http.StatusOK {
		t.Fatalf("book = %d", code)
	}
	if !cls.Booked || cls.SpotsRemaining != 0 {
		t.Fatalf("class = %+v", cls)
	}

	if code := a.do(http.MethodPost, "/v1/classes/yoga/book", bob, "", &e); code != http.StatusConflict || e.Error != "class is full" {
		t.Fatalf("bob book = %d %+v", code, e)
	}

	var mine classList
	a.do(http.MethodGet, "/v1/classes?mine=true", alice, "", &mine)
	if len(mine.Items) != 1 || mine.Items[0].ID != "yoga" {
		t.Fatalf("mine = %+v", mine.Items)
	}

	var usable struct {
		Items []model.Pass `json:"items"`
	}
	a.do(http.MethodGet, "/v1/passes/usable", alice, "", &usable)
	if len(usable.Items) != 0 {
		t.Fatalf("usable = %+v", usable.Items)
	}

	if code := a.do(http.MethodDelete, "/v1/classes/yoga/book", alice, "", &cls); code != http.StatusOK || cls.Booked {
		t.Fatalf("cancel = %d %+v", code, cls)
	}
	a.do(http.MethodGet, "/v1/passes/usable", alice, "", &usable)
	if len(usable.Items) != 1 || usable.Items[0].ID != p.ID {
		t.Fatalf("usable after cancel = %+v", usable.Items)
	}

	raw, err := a.store.Get(context.Background(), repository.BookingsKey("alice"))
	if err != nil || string(raw) != "[]" {
		t.Fatalf("stored bookings = %q, %v", raw, err)
	}
}

func TestPublicRoutes(t *testing.T) {
	a := newAPI(t)

	if code := a.do(http.MethodGet, "/healthz", "", "", nil); code != http.StatusOK {
		t.Fatalf("healthz = %d", code)
	}

	var all classList
	a.do(http.MethodGet, "/v1/classes", "", "", &all)
	if len(all.Items) != 2 || all.Items[0].ID != "yoga" || all.Items[1].SpotsRemaining != 10 {
		t.Fatalf("classes = %+v", all.Items)
	}

	var day classList
	a.do(http.MethodGet, "/v1/classes?date=2025-03-11", "", "", &day)
	if len(day.Items) != 1 || day.Items[0].ID != "hiit" {
		t.Fatalf("by day = %+v", day.Items)
	}

	var dates struct {
		Items []string `json:"items"`
	}
	a.do(http.MethodGet, "/v1/classes/dates", "", "", &dates)
	if strings.Join(dates.Items, ",") != "2025-03-10,2025-03-11" {
		t.Fatalf("dates = %v", dates.Items)
	}

	var types struct {
		Items []model.PassProduct `json:"items"`
	}
	a.do(http.MethodGet, "/v1/pass-types", "", "", &types)
	if len(types.Items) != 4 || types.Items[3].Label != "Unlimited Monthly Pass" {
		t.Fatalf("types = %+v", types.Items)
	}

	cases := []struct {
		name, method, path, token, body string
		status                          int
	}{
		{"bad date", http.MethodGet, "/v1/classes?date=10/03/2025", "", "", http.StatusBadRequest},
		{"mine anonymous", http.MethodGet, "/v1/classes?mine=true", "", "", http.StatusUnauthorized},
		{"unknown class", http.MethodGet, "/v1/classes/nope", "", "", http.StatusNotFound},
		{"book unknown", http.MethodPost, "/v1/classes/nope/book", a.token("u", model.RoleUser), "", http.StatusNotFound},
		{"book anonymous", http.MethodPost, "/v1/classes/yoga/book", "", "", http.StatusUnauthorized},
		{"bad pass type", http.MethodPost, "/v1/passes", a.token("u", model.RoleUser), `{"type":"weekly"}`, http.StatusBadRequest},
		{"stats as user", http.MethodGet, "/v1/admin/stats", a.token("u", model.RoleUser), "", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if code := a.do(tc.method, tc.path, tc.token, tc.body, nil); code != tc.status {
				t.Fatalf("status = %d, want %d", code, tc.status)
			}
		})
	}
}

func TestAdminStats(t *testing.T) {
	a := newAPI(t)
	admin := a.token("root", model.RoleAdmin)
	a.do(http.MethodPost, "/v1/passes", admin, `{"type":"unlimited"}`, nil)
	a.do(http.MethodPost, "/v1/classes/hiit/book", admin, "", nil)

	var s ledger.Stats
	if code := a.do(http.MethodGet, "/v1/admin/stats", admin, "", &s); code != http.StatusOK {
		t.Fatalf("stats = %d", code)
	}
	if s.TotalClasses != 2 || s.TotalBookings != 1 || s.ActivePasses != 1 || s.PassesByType[model.PassUnlimited] != 1 {
		t.Fatalf("stats = %+v", s)
	}
	if s.ClassesByTitle["HIIT Training"] != 1 {
		t.Fatalf("by title = %v", s.ClassesByTitle)
	}
}
