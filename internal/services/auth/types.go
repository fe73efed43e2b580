package auth

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAlreadyExists       = errors.New("user already exists")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshExpired      = errors.New("refresh token expired")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailTaken          = errors.New("email already taken")
)

// UserRecord is the credential-store view of an account. PasswordHash never
// leaves this package: handlers only ever see UserSummary.
type UserRecord struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
}

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (UserRecord, error)
	FindByID(ctx context.Context, id string) (UserRecord, error)
	CreateUser(ctx context.Context, user UserRecord) (UserRecord, error)
}

// RefreshRecord is the single persisted refresh-token row per identity.
// Only the SHA-256 of the raw token is stored; the raw token is
// reconstructable from (UserID, IssuedAt, ExpiresAt) under the same secret.
type RefreshRecord struct {
	UserID    string
	TokenHash string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type RefreshStore interface {
	Upsert(ctx context.Context, record RefreshRecord) error
	GetByUser(ctx context.Context, userID string) (RefreshRecord, error)
	GetByTokenHash(ctx context.Context, tokenHash string) (RefreshRecord, error)
	DeleteByUser(ctx context.Context, userID string) error
}

var ErrRefreshNotFound = errors.New("refresh token not found")

type UserSummary struct {
	ID    string
	Email string
	Name  string
	Role  string
}

type AccessClaims struct {
	UserID    string
	Email     string
	Role      string
	ExpiresAt time.Time
}

type AuthResult struct {
	AccessToken    string
	RefreshToken   string
	AccessExpires  time.Time
	RefreshExpires time.Time
	User           UserSummary
}

type RefreshResult struct {
	AccessToken   string
	AccessExpires time.Time
	User          UserSummary
}

func summaryOf(user UserRecord) UserSummary {
	return UserSummary{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}
}
