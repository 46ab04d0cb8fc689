package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"finbook/internal/apierr"
	"finbook/internal/httpx"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// RequestLogger writes one structured line per completed request.
func RequestLogger(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.WithFields(logrus.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      ww.Status(),
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
				"request_id":  chimiddleware.GetReqID(r.Context()),
			}).Info("request")
		})
	}
}

// Recover converts handler panics into the INTERNAL_ERROR envelope so
// clients always receive structured JSON.
func Recover(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.WithFields(logrus.Fields{
						"panic": fmt.Sprintf("%v", rec),
						"path":  r.URL.Path,
						"stack": string(debug.Stack()),
					}).Error("panic recovered")
					httpx.Error(w, r, apierr.Internal())
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
