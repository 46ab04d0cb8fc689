package handlers

import (
	"net/http"
	"strconv"
	"time"

	"finbook/internal/apierr"
	"finbook/internal/httpx"
	"finbook/internal/middleware"
	"finbook/internal/schema"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// requireUser extracts the authenticated user id. The auth middleware
// normally guarantees its presence; absence means a route was wired wrong.
func requireUser(w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		httpx.Error(w, r, apierr.Unauthenticated())
		return 0, false
	}
	return userID, true
}

func idParam(r *http.Request, name string) (int, *apierr.Error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, apierr.Validation([]apierr.FieldError{{Field: name, Message: "Must be a positive integer"}})
	}
	return id, nil
}

// fail classifies a service error and writes the error envelope. The cause
// of 5xx responses is logged server-side; the client sees only the
// classified code and message.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, classify func(error) *apierr.Error, err error) {
	apiErr := classify(err)
	if apiErr.Status >= http.StatusInternalServerError {
		h.logger.WithFields(logrus.Fields{
			"path":  r.URL.Path,
			"code":  apiErr.Code,
			"cause": err.Error(),
		}).Error("request failed")
	}
	httpx.Error(w, r, apiErr)
}

// Optional-field accessors for PATCH bodies: absent keys become nil
// pointers so the store's COALESCE updates leave those columns alone.

func optString(values map[string]any, key string) *string {
	if v, ok := schema.GetString(values, key); ok {
		return &v
	}
	return nil
}

func optInt(values map[string]any, key string) *int {
	if v, ok := schema.GetInt(values, key); ok {
		return &v
	}
	return nil
}

func optAmount(values map[string]any, key string) *decimal.Decimal {
	if v, ok := schema.GetAmount(values, key); ok {
		return &v
	}
	return nil
}

func optTime(values map[string]any, key string) *time.Time {
	if v, ok := schema.GetTime(values, key); ok {
		return &v
	}
	return nil
}
