package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"server/internal/middleware"
)

func TestCreateSessionMintsVerifiableToken(t *testing.T) {
	app, _ := newTestApp()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/session", jsonBody(`{"name":"Omar","locale":"ar"}`))
	app.CreateSession(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	var body struct {
		UserID string `json:"userId"`
		Token  string `json:"token"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.UserID == "" {
		t.Fatalf("userId was not generated")
	}

	claims, err := middleware.VerifyJWT(app.Cfg.JWTSecret, body.Token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if claims.Sub != body.UserID {
		t.Fatalf("sub = %q, want %q", claims.Sub, body.UserID)
	}
	if claims.Locale != "ar" {
		t.Fatalf("locale = %q, want %q", claims.Locale, "ar")
	}
}

func TestCreateSessionKeepsExistingID(t *testing.T) {
	app, _ := newTestApp()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/session", jsonBody(`{"userId":"returning-1"}`))
	app.CreateSession(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	var body struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.UserID != "returning-1" {
		t.Fatalf("userId = %q, want %q", body.UserID, "returning-1")
	}
}

func TestCredentialLifecycle(t *testing.T) {
	app, deps := newTestApp()

	w := httptest.NewRecorder()
	app.CredentialStatus(w, authedRequest(http.MethodGet, "/v1/credentials", "ar", nil))
	if got := w.Body.String(); got != "{\"configured\":false}\n" {
		t.Fatalf("status body = %q", got)
	}

	w = httptest.NewRecorder()
	app.SetCredential(w, authedRequest(http.MethodPut, "/v1/credentials", "ar", jsonBody(`{"apiKey":"k-123"}`)))
	if w.Code != http.StatusOK {
		t.Fatalf("set status = %d, want %d", w.Code, http.StatusOK)
	}
	if deps.creds.setKey != "k-123" {
		t.Fatalf("stored key = %q", deps.creds.setKey)
	}

	w = httptest.NewRecorder()
	app.InvalidateCredential(w, authedRequest(http.MethodDelete, "/v1/credentials", "ar", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("invalidate status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if !deps.creds.invalidated {
		t.Fatalf("credential was not invalidated")
	}
}

func TestSetCredentialRequiresKey(t *testing.T) {
	app, _ := newTestApp()

	w := httptest.NewRecorder()
	app.SetCredential(w, authedRequest(http.MethodPut, "/v1/credentials", "ar", jsonBody(`{"apiKey":"  "}`)))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
