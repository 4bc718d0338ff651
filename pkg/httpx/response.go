package httpx

import (
	"encoding/json"
	"net/http"
)

type errorBody struct {
	Error string `json:"error"`
}

// JSON encodes v as the response body with the given status code.
// Content-Type and X-Content-Type-Options are set before the status line is
// written. Intended for handler responses; encode failures after WriteHeader
// cannot be reported to the client and are dropped.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError writes the project-wide `{"error": message}` envelope.
func JSONError(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errorBody{Error: message})
}

// SafeError decides what error text reaches the client. 5xx detail is
// replaced with the generic status text when isProduction is true; 4xx
// messages always pass through since they describe the caller's input.
func SafeError(err error, status int, isProduction bool) string {
	if isProduction && status >= http.StatusInternalServerError {
		return http.StatusText(status)
	}
	return err.Error()
}
