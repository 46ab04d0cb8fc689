package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"finbook/internal/apierr"
)

// Pagination is the collection-envelope metadata block.
type Pagination struct {
	TotalItems  int `json:"total_items"`
	TotalPages  int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
}

type contextKey string

const startTimeKey contextKey = "request_start"

// slowThreshold is the response time above which a performance warning
// header is attached.
const slowThreshold = 2 * time.Second

// Timing records the request start time so responses can carry
// X-Response-Time and X-Performance-Warning headers.
func Timing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), startTimeKey, time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Data writes a success envelope {"data": payload}.
func Data(w http.ResponseWriter, r *http.Request, status int, payload any) {
	writeJSON(w, r, status, map[string]any{"data": payload}, false)
}

// DataCached is Data with a public cache policy, used for the currency list.
func DataCached(w http.ResponseWriter, r *http.Request, status int, payload any) {
	writeJSON(w, r, status, map[string]any{"data": payload}, true)
}

// Collection writes a paginated success envelope.
func Collection(w http.ResponseWriter, r *http.Request, status int, items any, pagination Pagination) {
	writeJSON(w, r, status, map[string]any{"data": items, "pagination": pagination}, false)
}

// Error writes the error envelope {"error": {code, message, details?}}.
func Error(w http.ResponseWriter, r *http.Request, apiErr *apierr.Error) {
	writeJSON(w, r, apiErr.Status, map[string]any{"error": apiErr}, false)
}

// NoContent writes a body-less 204 with the standard header set.
func NoContent(w http.ResponseWriter, r *http.Request) {
	setHeaders(w, r, false)
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any, cacheable bool) {
	setHeaders(w, r, cacheable)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func setHeaders(w http.ResponseWriter, r *http.Request, cacheable bool) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	if cacheable {
		w.Header().Set("Cache-Control", "public, max-age=300")
	} else {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	}
	if start, ok := r.Context().Value(startTimeKey).(time.Time); ok {
		elapsed := time.Since(start)
		w.Header().Set("X-Response-Time", fmt.Sprintf("%dms", elapsed.Milliseconds()))
		if elapsed > slowThreshold {
			w.Header().Set("X-Performance-Warning", "response exceeded 2000ms")
		}
	}
}
