package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/david/grant-tracker/internal/auth"
	"github.com/david/grant-tracker/internal/config"
	"github.com/david/grant-tracker/internal/ingest"
	"github.com/david/grant-tracker/internal/models"
)

func newTestServer(t *testing.T, grants []models.Grant) *Server {
	t.Helper()

	authService, err := auth.NewService()
	if err != nil {
		t.Fatalf("auth init failed: %v", err)
	}

	cfg := config.Config{DocsDir: t.TempDir(), BaseURL: "http://localhost:8081"}
	s := NewServer(cfg, &ingest.Registry{}, authService, nil)
	s.setSnapshot(grants)
	return s
}

type grantsResponse struct {
	Total  int            `json:"total"`
	Grants []models.Grant `json:"grants"`
}

func listGrants(t *testing.T, s *Server, query string) (int, grantsResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/grants"+query, nil)
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)

	var resp grantsResponse
	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode failed: %v", err)
		}
	}
	return rec.Code, resp
}

func testGrants(now time.Time) []models.Grant {
	return []models.Grant{
		{Title: "a", Agency: "NIH", Deadlines: []time.Time{now.AddDate(0, 0, 10)}, LastUpdated: now},
		{Title: "b", Agency: "NIH", Deadlines: []time.Time{now.AddDate(0, 0, 120)}, LastUpdated: now},
		{Title: "c", Agency: "NSF", Deadlines: []time.Time{now.AddDate(0, 0, 400)}, LastUpdated: now},
	}
}

func TestListGrants_TotalReportsFullSetWhenLimited(t *testing.T) {
	s := newTestServer(t, testGrants(time.Now()))

	code, resp := listGrants(t, s, "?limit=1")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if len(resp.Grants) != 1 {
		t.Fatalf("expected limit applied, got %d grants", len(resp.Grants))
	}
	if resp.Total != 3 {
		t.Fatalf("total must reflect the full result set, got %d", resp.Total)
	}
}

func TestListGrants_BucketFilter(t *testing.T) {
	s := newTestServer(t, testGrants(time.Now()))

	code, resp := listGrants(t, s, "?bucket=urgent")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if resp.Total != 1 || len(resp.Grants) != 1 || resp.Grants[0].Title != "a" {
		t.Fatalf("expected only the urgent grant, got %+v", resp)
	}

	if code, _ := listGrants(t, s, "?bucket=bogus"); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown bucket, got %d", code)
	}
}

func TestListGrants_InvalidLimitRejected(t *testing.T) {
	s := newTestServer(t, testGrants(time.Now()))

	if code, _ := listGrants(t, s, "?limit=nope"); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid limit, got %d", code)
	}
}

func TestRefresh_RequiresAuth(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil)
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}
