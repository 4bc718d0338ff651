package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/beanbridge/pkg/httpx"
)

type stubChecker struct{ err error }

func (s *stubChecker) Ping(_ context.Context) error { return s.err }

func healthResponse(t *testing.T, rr *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		db, rd, eb error
		wantStatus int
		wantBody   map[string]string
	}{
		{
			name:       "all healthy",
			wantStatus: http.StatusOK,
			wantBody:   map[string]string{"status": "ok"},
		},
		{
			name:       "database down",
			db:         errors.New("conn refused"),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   map[string]string{"status": "degraded", "database": "unreachable"},
		},
		{
			name:       "redis down",
			rd:         errors.New("timeout"),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   map[string]string{"status": "degraded", "redis": "unreachable"},
		},
		{
			name:       "event bus down",
			eb:         errors.New("timeout"),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   map[string]string{"status": "degraded", "event_bus": "unreachable"},
		},
		{
			name:       "everything down",
			db:         errors.New("down"),
			rd:         errors.New("down"),
			eb:         errors.New("down"),
			wantStatus: http.StatusServiceUnavailable,
			wantBody: map[string]string{
				"status": "degraded", "database": "unreachable",
				"redis": "unreachable", "event_bus": "unreachable",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := httpx.HealthHandler(httpx.HealthChecks{
				Database: &stubChecker{err: tt.db},
				Redis:    &stubChecker{err: tt.rd},
				EventBus: &stubChecker{err: tt.eb},
			})
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

			if rr.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rr.Code)
			}
			resp := healthResponse(t, rr)
			for k, v := range tt.wantBody {
				if resp[k] != v {
					t.Errorf("%s: got %q, want %q", k, resp[k], v)
				}
			}
		})
	}
}

func TestHealthHandler_ContentType(t *testing.T) {
	h := httpx.HealthHandler(httpx.HealthChecks{
		Database: &stubChecker{},
		Redis:    &stubChecker{},
		EventBus: &stubChecker{},
	})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

	if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type: got %q", ct)
	}
}
