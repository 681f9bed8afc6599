package reminder

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/healthvault/healthvault/internal/platform/auth"
)

func newTestHandler() (*Handler, *Service, *echo.Echo) {
	svc, _ := newTestService()
	return NewHandler(svc), svc, echo.New()
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	ctx := auth.WithIdentity(req.Context(), auth.Identity{UserID: "u1"})
	return req.WithContext(ctx)
}

func TestHandler_Create(t *testing.T) {
	h, _, e := newTestHandler()

	body := `{"medication":"Metformin","dosage":"850mg","time":"08:00","date":"2024-02-01"}`
	req := authedRequest(http.MethodPost, "/api/v1/reminders", body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var r Reminder
	json.Unmarshal(rec.Body.Bytes(), &r)
	if r.Status != StatusPending {
		t.Errorf("expected status pending, got %s", r.Status)
	}
}

func TestHandler_Create_Unauthenticated(t *testing.T) {
	h, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reminders", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestHandler_MarkTaken(t *testing.T) {
	h, svc, e := newTestHandler()

	r, _ := svc.Create(authedRequest(http.MethodGet, "/", "").Context(), "u1", validInput())

	req := authedRequest(http.MethodPut, "/", "")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(r.ID.String())

	if err := h.MarkTaken(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var taken Reminder
	json.Unmarshal(rec.Body.Bytes(), &taken)
	if taken.Status != StatusTaken {
		t.Errorf("expected status taken, got %s", taken.Status)
	}
	if taken.TakenAt == nil {
		t.Error("expected takenAt in response")
	}
}

func TestHandler_MarkTaken_NotFound(t *testing.T) {
	h, _, e := newTestHandler()

	req := authedRequest(http.MethodPut, "/", "")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	err := h.MarkTaken(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestHandler_Delete(t *testing.T) {
	h, svc, e := newTestHandler()

	r, _ := svc.Create(authedRequest(http.MethodGet, "/", "").Context(), "u1", validInput())

	req := authedRequest(http.MethodDelete, "/", "")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(r.ID.String())

	if err := h.Delete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
