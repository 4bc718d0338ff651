package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ghuser/beanbridge/pkg/httpx"
)

func TestCORSMiddleware_AllowedOrigin(t *testing.T) {
	h := httpx.CORSMiddleware("https://beanbridge.example")(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	r := httptest.NewRequest(http.MethodOptions, "/api/rfq", http.NoBody)
	r.Header.Set("Origin", "https://beanbridge.example")
	r.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, r)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://beanbridge.example" {
		t.Fatalf("Access-Control-Allow-Origin = %q", got)
	}
	methods := rr.Header().Get("Access-Control-Allow-Methods")
	if !strings.Contains(methods, http.MethodPatch) {
		t.Errorf("PATCH missing from allowed methods: %q", methods)
	}
}

func TestCORSMiddleware_DisallowedOrigin(t *testing.T) {
	h := httpx.CORSMiddleware("https://beanbridge.example")(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	r := httptest.NewRequest(http.MethodGet, "/api/rfq", http.NoBody)
	r.Header.Set("Origin", "https://evil.example")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, r)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected Access-Control-Allow-Origin %q for foreign origin", got)
	}
}

func TestRequestBodyLimit(t *testing.T) {
	const limit int64 = 64

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, limit+16)
		n, err := r.Body.Read(buf)
		if err != nil && err.Error() == "http: request body too large" {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		_ = n
		w.WriteHeader(http.StatusOK)
	})
	h := httpx.RequestBodyLimit(limit)(inner)

	t.Run("within limit", func(t *testing.T) {
		rr := httptest.NewRecorder()
		body := strings.NewReader(strings.Repeat("a", int(limit)/2))
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", body))
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
	})

	t.Run("over limit", func(t *testing.T) {
		rr := httptest.NewRecorder()
		body := strings.NewReader(strings.Repeat("x", int(limit)+1))
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", body))
		if rr.Code != http.StatusRequestEntityTooLarge {
			t.Fatalf("expected 413, got %d", rr.Code)
		}
	})
}
