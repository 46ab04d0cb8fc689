package store

import (
	"context"
	"time"
)

type UserStore struct {
	db DB
}

type User struct {
	ID           int       `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Active       bool      `db:"active"`
	CreatedAt    time.Time `db:"created_at"`
}

func NewUserStore(db DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (User, error) {
	var row User
	err := s.db.GetContext(ctx, &row, `
		SELECT id, username, email, password_hash, active, created_at
		FROM users
		WHERE email = $1 AND active = TRUE
	`, email)
	if err != nil {
		return User{}, err
	}
	return row, nil
}

func (s *UserStore) GetByID(ctx context.Context, userID int) (User, error) {
	var row User
	err := s.db.GetContext(ctx, &row, `
		SELECT id, username, email, password_hash, active, created_at
		FROM users
		WHERE id = $1 AND active = TRUE
	`, userID)
	if err != nil {
		return User{}, err
	}
	return row, nil
}
