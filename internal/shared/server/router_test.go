package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"practice-backend/internal/papers"
	"practice-backend/internal/profiles"
	"practice-backend/internal/shared/config"
)

func testRouterDeps() RouterDeps {
	profileSvc := profiles.NewService(profiles.NewMemoryRepo())
	paperSvc := &papers.Service{Repo: papers.NewMemoryRepo()}

	return RouterDeps{
		Config: config.Config{
			CORSAllowOrigin: []string{"http://localhost:5173"},
		},
		PaperHandler:   papers.NewHandler(paperSvc),
		ProfileHandler: profiles.NewHandler(profileSvc),
	}
}

func TestHealthNeedsNoIdentity(t *testing.T) {
	r := NewRouter(testRouterDeps())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestMetricsNeedsNoIdentity(t *testing.T) {
	r := NewRouter(testRouterDeps())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestAPIRequiresIdentity(t *testing.T) {
	r := NewRouter(testRouterDeps())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tests", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestGuestHeaderGrantsAccess(t *testing.T) {
	r := NewRouter(testRouterDeps())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tests", nil)
	req.Header.Set("X-Guest-Id", "abc123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body []any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body) != 0 {
		t.Fatalf("expected empty list, got %d", len(body))
	}
}

func TestAddr(t *testing.T) {
	cases := map[string]string{
		"":      ":8080",
		"9090":  ":9090",
		":7070": ":7070",
	}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
