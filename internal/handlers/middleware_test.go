package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"brewlog/internal/service"
)

func TestUserIdMiddleware(t *testing.T) {
	auth := authOK(service.TokenClaims{UserID: 1})
	r := newTestRouter(&service.Service{Authorization: auth, Brews: &mockBrews{}})

	// missing header
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/brews/", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: status=%d, want 401", w.Code)
	}

	// wrong scheme
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/brews/", nil)
	req.Header.Set("Authorization", "Basic abc")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong scheme: status=%d, want 401", w.Code)
	}

	// invalid token
	auth.parseErr = errors.New("expired")
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/brews/", nil)
	authHeader(req, "bad")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("invalid token: status=%d, want 401", w.Code)
	}

	// valid token
	auth.parseErr = nil
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/brews/", nil)
	authHeader(req, "good")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("valid token: status=%d, body=%s", w.Code, w.Body.String())
	}
}

func TestAdminMiddleware(t *testing.T) {
	stats := &mockStats{}

	// plain user → 403
	r := newTestRouter(&service.Service{
		Authorization: authOK(service.TokenClaims{UserID: 1}),
		Stats:         stats,
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats", nil)
	authHeader(req, "tok")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("plain user: status=%d, want 403", w.Code)
	}

	// admin → 200
	r = newTestRouter(&service.Service{
		Authorization: authOK(service.TokenClaims{UserID: 1, IsAdmin: true}),
		Stats:         stats,
	})
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats", nil)
	authHeader(req, "tok")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("admin: status=%d, body=%s", w.Code, w.Body.String())
	}
}
