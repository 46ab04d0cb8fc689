package handlers

import (
	"net/http"
	"strings"

	"finbook/internal/apierr"
	"finbook/internal/auth"
	"finbook/internal/httpx"
	"finbook/internal/websocket"
)

// WSBalances upgrades to a websocket that streams balance updates for the
// authenticated user. Browsers cannot set headers on websocket handshakes,
// so the token is also accepted as a query parameter.
func (h *Handler) WSBalances(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		header := r.Header.Get("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token = strings.TrimPrefix(header, "Bearer ")
		}
	}
	if token == "" {
		httpx.Error(w, r, apierr.Unauthenticated())
		return
	}
	claims, err := auth.ParseToken(h.cfg.JWTSecret, token)
	if err != nil {
		httpx.Error(w, r, apierr.Unauthenticated())
		return
	}
	websocket.ServeWS(w, r, h.hub, claims.UserID)
}
