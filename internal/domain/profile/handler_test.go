package profile

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/healthvault/healthvault/internal/platform/auth"
)

func newTestHandler() (*Handler, *Service, *echo.Echo) {
	svc, _, _ := newTestService()
	return NewHandler(svc), svc, echo.New()
}

func withIdentity(req *http.Request) *http.Request {
	ctx := auth.WithIdentity(req.Context(), testIdentity())
	return req.WithContext(ctx)
}

func TestHandler_Get_LazyCreates(t *testing.T) {
	h, _, e := newTestHandler()

	req := withIdentity(httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Get(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var p Profile
	json.Unmarshal(rec.Body.Bytes(), &p)
	if p.ProfileImage != DefaultImage {
		t.Errorf("expected sentinel image, got %q", p.ProfileImage)
	}
	if p.Name != "A. Ali" {
		t.Errorf("expected name seeded from claims, got %q", p.Name)
	}
}

func TestHandler_Get_Unauthenticated(t *testing.T) {
	h, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Get(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestHandler_Update(t *testing.T) {
	h, _, e := newTestHandler()

	body := `{"city":"Karachi","bloodGroup":"O+"}`
	req := withIdentity(httptest.NewRequest(http.MethodPut, "/api/v1/profile", strings.NewReader(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Update(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var p Profile
	json.Unmarshal(rec.Body.Bytes(), &p)
	if p.City != "Karachi" {
		t.Errorf("expected city merged, got %q", p.City)
	}
	if p.BloodGroup == nil || *p.BloodGroup != "O+" {
		t.Error("expected blood group merged")
	}
}

func TestHandler_Update_BadEnum(t *testing.T) {
	h, _, e := newTestHandler()

	body := `{"gender":"Robot"}`
	req := withIdentity(httptest.NewRequest(http.MethodPut, "/api/v1/profile", strings.NewReader(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Update(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func multipartImage(t *testing.T, field, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create multipart part: %v", err)
	}
	part.Write(data)
	w.Close()
	return &buf, w.FormDataContentType()
}

func TestHandler_ReplaceImage(t *testing.T) {
	h, svc, e := newTestHandler()

	getReq := withIdentity(httptest.NewRequest(http.MethodGet, "/", nil))
	svc.Get(getReq.Context(), testIdentity())

	buf, ctype := multipartImage(t, "image", "photo.png", "image/png", []byte("png-bytes"))
	req := withIdentity(httptest.NewRequest(http.MethodPost, "/api/v1/profile/image", buf))
	req.Header.Set(echo.HeaderContentType, ctype)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ReplaceImage(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var p Profile
	json.Unmarshal(rec.Body.Bytes(), &p)
	if p.ProfileImage == DefaultImage || p.ProfileImage == "" {
		t.Errorf("expected replaced image path, got %q", p.ProfileImage)
	}
}

func TestHandler_ReplaceImage_MissingFile(t *testing.T) {
	h, _, e := newTestHandler()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("note", "no image here")
	w.Close()

	req := withIdentity(httptest.NewRequest(http.MethodPost, "/api/v1/profile/image", &buf))
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.ReplaceImage(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestHandler_ReplaceImage_BadType(t *testing.T) {
	h, svc, e := newTestHandler()

	getReq := withIdentity(httptest.NewRequest(http.MethodGet, "/", nil))
	svc.Get(getReq.Context(), testIdentity())

	buf, ctype := multipartImage(t, "image", "malware.exe", "application/octet-stream", []byte{0x4d, 0x5a})
	req := withIdentity(httptest.NewRequest(http.MethodPost, "/api/v1/profile/image", buf))
	req.Header.Set(echo.HeaderContentType, ctype)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.ReplaceImage(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
