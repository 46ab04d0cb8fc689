package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"finbook/internal/apierr"
	"finbook/internal/auth"
	"finbook/internal/db"
	"finbook/internal/models"

	"github.com/jmoiron/sqlx"
)

type AuthService struct {
	txRunner  db.TxRunner
	users     UserStore
	audit     AuditStore
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(txRunner db.TxRunner, users UserStore, audit AuditStore, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		txRunner:  txRunner,
		users:     users,
		audit:     audit,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

var errInvalidCredentials = apierr.New(http.StatusUnauthorized, apierr.CodeInvalidCredentials, "Invalid email or password")

type LoginContext struct {
	RemoteAddr string
	UserAgent  string
}

// Login checks credentials, records an audit entry and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string, loginCtx LoginContext) (string, models.UserDTO, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", models.UserDTO{}, errInvalidCredentials
		}
		return "", models.UserDTO{}, fmt.Errorf("Failed to fetch user: %w", err)
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", models.UserDTO{}, errInvalidCredentials
	}
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		data, _ := json.Marshal(map[string]string{
			"ip":         loginCtx.RemoteAddr,
			"user_agent": loginCtx.UserAgent,
		})
		return s.audit.Log(ctx, tx, user.ID, "auth.login", "user", user.ID, string(data))
	})
	if err != nil {
		return "", models.UserDTO{}, fmt.Errorf("Failed to create audit entry: %w", err)
	}
	token, err := auth.GenerateToken(s.jwtSecret, user.ID, s.tokenTTL)
	if err != nil {
		return "", models.UserDTO{}, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, models.UserDTO{ID: user.ID, Username: user.Username, Email: user.Email}, nil
}
