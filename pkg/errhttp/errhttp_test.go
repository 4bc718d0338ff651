package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	contentdomain "github.com/ghuser/beanbridge/services/content/domain"
	rfqdomain "github.com/ghuser/beanbridge/services/rfq/domain"
)

func TestWriteError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ErrRFQNotFound", rfqdomain.ErrRFQNotFound, http.StatusNotFound},
		{"ErrInvalidListQuery", rfqdomain.ErrInvalidListQuery, http.StatusBadRequest},
		{"ErrMissingField", rfqdomain.ErrMissingField, http.StatusUnprocessableEntity},
		{"ErrInvalidEmail", rfqdomain.ErrInvalidEmail, http.StatusUnprocessableEntity},
		{"ErrInvalidQuantity", rfqdomain.ErrInvalidQuantity, http.StatusUnprocessableEntity},
		{"ErrInvalidStatus", rfqdomain.ErrInvalidStatus, http.StatusUnprocessableEntity},
		{"ErrDuplicateRFQNumber", rfqdomain.ErrDuplicateRFQNumber, http.StatusConflict},
		{"ErrMissingSlug", contentdomain.ErrMissingSlug, http.StatusBadRequest},
		{"wrapped ErrRFQNotFound", fmt.Errorf("get rfq: %w", rfqdomain.ErrRFQNotFound), http.StatusNotFound},
		{"wrapped ErrMissingField", fmt.Errorf("%w: companyName", rfqdomain.ErrMissingField), http.StatusUnprocessableEntity},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError},
		{"generic wrapped error", fmt.Errorf("context: %w", errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestWriteError_JSONBody(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, rfqdomain.ErrRFQNotFound)

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if _, ok := body["error"]; !ok {
		t.Fatal("response body missing 'error' key")
	}
}

func TestWriteError_ContentType(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, rfqdomain.ErrRFQNotFound)

	ct := w.Header().Get("Content-Type")
	if ct == "" {
		t.Fatal("Content-Type header not set")
	}
}
