package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finbook/internal/apierr"
	"finbook/internal/auth"
)

func TestAuthMissingHeader(t *testing.T) {
	handler := Auth("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without credentials")
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Error.Code != apierr.CodeUnauthenticated || body.Error.Message != "Authentication required" {
		t.Fatalf("unexpected error envelope: %#v", body.Error)
	}
}

func TestAuthMalformedHeader(t *testing.T) {
	handler := Auth("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with malformed credentials")
	}))
	for _, header := range []string{"Basic abc", "Bearer", "token-without-scheme"} {
		req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
		req.Header.Set("Authorization", header)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%q: expected 401, got %d", header, rr.Code)
		}
	}
}

func TestAuthValidToken(t *testing.T) {
	token, err := auth.GenerateToken("secret", 7, time.Minute)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	var seenUserID int
	handler := Auth("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if seenUserID != 7 {
		t.Fatalf("expected user 7 in context, got %d", seenUserID)
	}
}
