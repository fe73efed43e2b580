package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ysfmrbt/skillwise/internal/domain/enums"
	"github.com/ysfmrbt/skillwise/internal/pkg/validate"
)

const (
	MinPasswordLen = 6
	MinNameLen     = 2
)

type Service struct {
	users      UserStore
	refresh    RefreshStore
	jwt        *JWTManager
	hasher     *PasswordHasher
	refreshTTL time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

func NewService(users UserStore, refresh RefreshStore, jwtManager *JWTManager, hasher *PasswordHasher, refreshTTL time.Duration, logger *zap.Logger) *Service {
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		users:      users,
		refresh:    refresh,
		jwt:        jwtManager,
		hasher:     hasher,
		refreshTTL: refreshTTL,
		logger:     logger,
		now:        time.Now,
	}
}

// SignIn verifies credentials and issues an access token plus a refresh
// token. An unexpired refresh record is reused as-is so the refresh lifetime
// stays bounded by its first issuance no matter how often the user logs in.
func (s *Service) SignIn(ctx context.Context, email, password string) (AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return AuthResult{}, ErrInvalidInput
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Burn a bcrypt round anyway so a missing account is not
			// distinguishable by response time.
			s.hasher.CheckDummy(password)
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, fmt.Errorf("find user by email: %w", err)
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		return AuthResult{}, ErrInvalidCredentials
	}

	return s.issueForUser(ctx, user)
}

// Register creates a new account with role STUDENT and signs it in.
func (s *Service) Register(ctx context.Context, email, password, name string) (AuthResult, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if !validate.Email(email) {
		return AuthResult{}, ErrInvalidInput
	}
	if len(password) < MinPasswordLen || len(name) < MinNameLen {
		return AuthResult{}, ErrInvalidInput
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return AuthResult{}, ErrAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return AuthResult{}, fmt.Errorf("check existing user: %w", err)
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, UserRecord{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         string(enums.RoleStudent),
	})
	if err != nil {
		// The email unique index closes the find-then-create race.
		if errors.Is(err, ErrEmailTaken) {
			return AuthResult{}, ErrAlreadyExists
		}
		return AuthResult{}, fmt.Errorf("create user: %w", err)
	}

	return s.issueForUser(ctx, user)
}

// Refresh exchanges a raw refresh token for a new access token. The refresh
// token itself is not rotated; the identity is re-read so role changes take
// effect on the next access token.
func (s *Service) Refresh(ctx context.Context, rawRefreshToken string) (RefreshResult, error) {
	if strings.TrimSpace(rawRefreshToken) == "" {
		return RefreshResult{}, ErrInvalidInput
	}

	record, err := s.refresh.GetByTokenHash(ctx, HashRefreshToken(rawRefreshToken))
	if err != nil {
		if errors.Is(err, ErrRefreshNotFound) {
			return RefreshResult{}, ErrInvalidRefreshToken
		}
		return RefreshResult{}, fmt.Errorf("get refresh record: %w", err)
	}

	if s.now().After(record.ExpiresAt) {
		if err := s.refresh.DeleteByUser(ctx, record.UserID); err != nil {
			s.logger.Warn("delete expired refresh record", zap.Error(err))
		}
		return RefreshResult{}, ErrRefreshExpired
	}

	user, err := s.users.FindByID(ctx, record.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return RefreshResult{}, ErrInvalidRefreshToken
		}
		return RefreshResult{}, fmt.Errorf("find refresh owner: %w", err)
	}

	accessToken, accessExpires, err := s.jwt.GenerateAccessToken(user)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("generate access token: %w", err)
	}

	return RefreshResult{
		AccessToken:   accessToken,
		AccessExpires: accessExpires,
		User:          summaryOf(user),
	}, nil
}

// Logout drops the identity's refresh record. Deletion failures are logged
// and swallowed: the caller still clears the cookies, which is the
// user-visible effect.
func (s *Service) Logout(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidInput
	}
	if err := s.refresh.DeleteByUser(ctx, userID); err != nil {
		s.logger.Warn("delete refresh record on logout", zap.String("user_id", userID), zap.Error(err))
	}
	return nil
}

func (s *Service) ValidateAccessToken(raw string) (AccessClaims, error) {
	claims, err := s.jwt.ParseAccessToken(raw)
	if err != nil {
		return AccessClaims{}, ErrUnauthorized
	}
	return claims, nil
}

func (s *Service) issueForUser(ctx context.Context, user UserRecord) (AuthResult, error) {
	accessToken, accessExpires, err := s.jwt.GenerateAccessToken(user)
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, refreshExpires, err := s.currentOrNewRefreshToken(ctx, user.ID)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{
		AccessToken:    accessToken,
		RefreshToken:   refreshToken,
		AccessExpires:  accessExpires,
		RefreshExpires: refreshExpires,
		User:           summaryOf(user),
	}, nil
}

// currentOrNewRefreshToken reuses the stored refresh record while it is
// unexpired. The raw token is re-derived from the persisted timestamps
// (HMAC signing is deterministic) and cross-checked against the stored hash;
// a mismatch means the signing secret changed, in which case the record is
// replaced like an expired one.
func (s *Service) currentOrNewRefreshToken(ctx context.Context, userID string) (string, time.Time, error) {
	record, err := s.refresh.GetByUser(ctx, userID)
	if err == nil && s.now().Before(record.ExpiresAt) {
		token, genErr := s.jwt.GenerateRefreshToken(userID, record.IssuedAt, record.ExpiresAt)
		if genErr == nil && HashRefreshToken(token) == record.TokenHash {
			return token, record.ExpiresAt, nil
		}
		s.logger.Warn("stored refresh hash mismatch, reissuing", zap.String("user_id", userID))
	} else if err != nil && !errors.Is(err, ErrRefreshNotFound) {
		return "", time.Time{}, fmt.Errorf("get refresh record: %w", err)
	}

	issuedAt := s.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(s.refreshTTL)

	token, err := s.jwt.GenerateRefreshToken(userID, issuedAt, expiresAt)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.refresh.Upsert(ctx, RefreshRecord{
		UserID:    userID,
		TokenHash: HashRefreshToken(token),
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}); err != nil {
		return "", time.Time{}, fmt.Errorf("upsert refresh record: %w", err)
	}

	return token, expiresAt, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
