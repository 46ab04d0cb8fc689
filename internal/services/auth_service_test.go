package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"finbook/internal/apierr"
	"finbook/internal/auth"
	"finbook/internal/store"
)

func TestLoginIssuesTokenAndAudits(t *testing.T) {
	hash, err := auth.HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	users := &stubUsers{
		getByEmailFn: func(ctx context.Context, email string) (store.User, error) {
			if email != "amy@example.com" {
				t.Fatalf("unexpected email %q", email)
			}
			return store.User{ID: 7, Username: "amy", Email: email, PasswordHash: hash, Active: true}, nil
		},
	}
	audit := &stubAudit{}
	svc := NewAuthService(&fakeTxRunner{}, users, audit, "test-secret", time.Hour)

	token, user, err := svc.Login(context.Background(), "amy@example.com", "hunter2", LoginContext{RemoteAddr: "10.0.0.1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 7 || user.Username != "amy" {
		t.Fatalf("unexpected user: %+v", user)
	}
	claims, err := auth.ParseToken("test-secret", token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.UserID != 7 {
		t.Fatalf("token user = %d, want 7", claims.UserID)
	}
	if len(audit.entries) != 1 || audit.entries[0].action != "auth.login" {
		t.Fatalf("expected auth.login audit entry, got %+v", audit.entries)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	users := &stubUsers{
		getByEmailFn: func(ctx context.Context, email string) (store.User, error) {
			return store.User{}, sql.ErrNoRows
		},
	}
	svc := NewAuthService(&fakeTxRunner{}, users, &stubAudit{}, "test-secret", time.Hour)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "hunter2", LoginContext{})
	if code := apiCode(t, err); code != apierr.CodeInvalidCredentials {
		t.Fatalf("expected INVALID_CREDENTIALS, got %s", code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	users := &stubUsers{
		getByEmailFn: func(ctx context.Context, email string) (store.User, error) {
			return store.User{ID: 7, Email: email, PasswordHash: hash, Active: true}, nil
		},
	}
	audit := &stubAudit{}
	svc := NewAuthService(&fakeTxRunner{}, users, audit, "test-secret", time.Hour)

	_, _, err = svc.Login(context.Background(), "amy@example.com", "wrong", LoginContext{})
	if code := apiCode(t, err); code != apierr.CodeInvalidCredentials {
		t.Fatalf("expected INVALID_CREDENTIALS, got %s", code)
	}
	if len(audit.entries) != 0 {
		t.Fatalf("failed login must not produce an audit entry, got %+v", audit.entries)
	}
}
