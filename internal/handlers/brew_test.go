package handlers

import (
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"brewlog/internal/models"
	"brewlog/internal/repository"
	"brewlog/internal/service"
)

func TestListBrews_Filters(t *testing.T) {
	brews := &mockBrews{listResp: []models.Brew{{ID: 1}, {ID: 2}}}
	r := newTestRouter(&service.Service{
		Authorization: authOK(service.TokenClaims{UserID: 1}),
		Brews:         brews,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/brews/?from=2026-08-01&to=2026-08-31&bean_id=3&favorite=true", nil)
	authHeader(req, "tok")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}

	f := brews.lastFilter
	if f.BeanID != 3 || !f.FavoriteOnly {
		t.Errorf("filter = %+v, want bean 3 and favorites only", f)
	}
	wantFrom := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	if !f.From.Equal(wantFrom) {
		t.Errorf("from = %v, want %v", f.From, wantFrom)
	}
	// date-only 'to' covers the whole day
	if !f.To.After(time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)) {
		t.Errorf("to = %v, want end of Aug 31", f.To)
	}
}

func TestListBrews_BadDates(t *testing.T) {
	r := newTestRouter(&service.Service{
		Authorization: authOK(service.TokenClaims{UserID: 1}),
		Brews:         &mockBrews{},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/brews/?from=notadate", nil)
	authHeader(req, "tok")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", w.Code)
	}
}

func TestExportBrews_CSV(t *testing.T) {
	tds := 1.35
	ey := 18.75
	brews := &mockBrews{listResp: []models.Brew{{
		ID:              7,
		CoffeeBeanID:    2,
		DoseG:           18,
		WaterG:          270,
		YieldG:          250,
		TempC:           93,
		BrewTime:        "02:30",
		TDS:             &tds,
		ExtractionYield: &ey,
		Rating:          4,
		Comment:         "juicy, a bit fast",
		BrewedAt:        time.Date(2026, 8, 20, 7, 30, 0, 0, time.UTC),
	}}}
	r := newTestRouter(&service.Service{
		Authorization: authOK(service.TokenClaims{UserID: 1}),
		Brews:         brews,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/brews/export", nil)
	authHeader(req, "tok")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}

	records, err := csv.NewReader(w.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(records))
	}
	row := records[1]
	if row[0] != "7" || row[10] != "1.35" || row[11] != "18.75" {
		t.Errorf("row = %v", row)
	}
	if row[13] != "juicy, a bit fast" {
		t.Errorf("comment cell = %q", row[13])
	}
}

func TestUpdateBrewEvaluation(t *testing.T) {
	brews := &mockBrews{evalResp: models.Brew{ID: 3, Rating: 5}}
	r := newTestRouter(&service.Service{
		Authorization: authOK(service.TokenClaims{UserID: 1}),
		Brews:         brews,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/brews/3/evaluation",
		strings.NewReader(`{"rating":5,"comment":"best so far","tds":1.4}`))
	req.Header.Set("Content-Type", "application/json")
	authHeader(req, "tok")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if brews.lastEval.Rating != 5 || brews.lastEval.TDS == nil || *brews.lastEval.TDS != 1.4 {
		t.Errorf("service saw params %+v", brews.lastEval)
	}
}

func TestDeleteBrew_NotFound(t *testing.T) {
	brews := &mockBrews{deleteErr: repository.ErrNotFound}
	r := newTestRouter(&service.Service{
		Authorization: authOK(service.TokenClaims{UserID: 1}),
		Brews:         brews,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/brews/99", nil)
	authHeader(req, "tok")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", w.Code)
	}
}
