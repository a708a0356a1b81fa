package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"connectong/internal/domain"
	"connectong/internal/router"
)

func TestReadFormJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/ngos", strings.NewReader(`{"name":"Casa","priority":7,"services":["food","health"],"ignored":{"x":1}}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	form, err := readForm(httptest.NewRecorder(), req)
	if err != nil {
		t.Fatalf("readForm: %v", err)
	}
	if form.Get("name") != "Casa" || form.Get("priority") != "7" || len(form.All("services")) != 2 {
		t.Fatalf("unexpected form %#v", form.Values)
	}
	if _, ok := form.Values["ignored"]; ok {
		t.Fatal("objects must not become values")
	}
}

func TestReadFormRejectsBadJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/contacts", strings.NewReader(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	if _, err := readForm(httptest.NewRecorder(), req); !errors.Is(err, errBadForm) {
		t.Fatalf("expected errBadForm, got %v", err)
	}
}

func TestReadFormMultipartDetectsType(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	_ = mw.WriteField("name", "Casa")
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="logo"; filename="logo.png"`)
	h.Set("Content-Type", "application/octet-stream")
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	_, _ = part.Write([]byte("\x89PNG\r\n\x1a\n0000"))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/pages/ngo-registration/submit", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	form, err := readForm(httptest.NewRecorder(), req)
	if err != nil {
		t.Fatalf("readForm: %v", err)
	}
	logo, ok := form.File("logo")
	if !ok {
		t.Fatal("logo missing")
	}
	if logo.ContentType != "image/png" || logo.Size != 12 || logo.Name != "logo.png" {
		t.Fatalf("unexpected file %#v", logo)
	}
	if form.Get("name") != "Casa" {
		t.Fatalf("name = %q", form.Get("name"))
	}
}

func TestReadFormURLEncoded(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/pages/donations/donate", strings.NewReader("amount=25&category=Food"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	form, err := readForm(httptest.NewRecorder(), req)
	if err != nil {
		t.Fatalf("readForm: %v", err)
	}
	if form.Get("amount") != "25" || form.Get("category") != "Food" {
		t.Fatalf("unexpected form %#v", form)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{fmt.Errorf("%w: contact", domain.ErrValidation), http.StatusUnprocessableEntity},
		{domain.ErrFragmentNotFound, http.StatusNotFound},
		{domain.ErrUnknownAction, http.StatusNotFound},
		{domain.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: timeout", domain.ErrFetch), http.StatusBadGateway},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := statusFor(router.Result{Err: tc.err}); got != tc.want {
			t.Fatalf("statusFor(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

