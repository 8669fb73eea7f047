package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"brewlog/internal/ai"
	"brewlog/internal/service"
)

func TestScanBag(t *testing.T) {
	vision := &mockVision{resp: ai.BagInfo{Roaster: "La Cabra", Name: "Miraflores"}}
	r := newTestRouter(&service.Service{
		Authorization: authOK(service.TokenClaims{UserID: 1}),
		Vision:        vision,
	})

	payload, _ := json.Marshal(map[string]string{
		"image":     base64.StdEncoding.EncodeToString([]byte("fake-jpeg-bytes")),
		"mime_type": "image/png",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/vision/bag-scan", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	authHeader(req, "tok")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if vision.lastMimeType != "image/png" {
		t.Errorf("mime type = %q, want image/png", vision.lastMimeType)
	}
	if vision.lastImageLen != len("fake-jpeg-bytes") {
		t.Errorf("image length = %d, want decoded bytes", vision.lastImageLen)
	}

	var info ai.BagInfo
	if err := json.Unmarshal(w.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if info.Roaster != "La Cabra" {
		t.Errorf("roaster = %q", info.Roaster)
	}
}

func TestScanBag_NotConfigured(t *testing.T) {
	r := newTestRouter(&service.Service{
		Authorization: authOK(service.TokenClaims{UserID: 1}),
		Vision:        service.NewVisionService(nil),
	})

	payload, _ := json.Marshal(map[string]string{
		"image": base64.StdEncoding.EncodeToString([]byte("x")),
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/vision/bag-scan", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	authHeader(req, "tok")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d, want 503; body=%s", w.Code, w.Body.String())
	}
}

func TestScanBag_BadBase64(t *testing.T) {
	r := newTestRouter(&service.Service{
		Authorization: authOK(service.TokenClaims{UserID: 1}),
		Vision:        &mockVision{},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/vision/bag-scan",
		bytes.NewBufferString(`{"image":"%%% not base64 %%%"}`))
	req.Header.Set("Content-Type", "application/json")
	authHeader(req, "tok")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", w.Code)
	}
}
