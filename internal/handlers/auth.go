package handlers

import (
	"net/http"

	"finbook/internal/apierr"
	"finbook/internal/httpx"
	"finbook/internal/schema"
	"finbook/internal/services"
)

var loginSchema = schema.NewObject(
	schema.Field{Name: "email", Required: true, Coerce: schema.String(3, 255)},
	schema.Field{Name: "password", Required: true, Coerce: schema.String(1, 255)},
)

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	body, apiErr := httpx.DecodeBody(r)
	if apiErr != nil {
		httpx.Error(w, r, apiErr)
		return
	}
	values, details := loginSchema.Validate(body)
	if len(details) > 0 {
		httpx.Error(w, r, apierr.Validation(details))
		return
	}
	email, _ := schema.GetString(values, "email")
	password, _ := schema.GetString(values, "password")
	token, user, err := h.auth.Login(r.Context(), email, password, services.LoginContext{
		RemoteAddr: r.RemoteAddr,
		UserAgent:  r.UserAgent(),
	})
	if err != nil {
		h.fail(w, r, apierr.Classify, err)
		return
	}
	httpx.Data(w, r, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
}
