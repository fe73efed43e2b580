package auth_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	redrepo "github.com/ysfmrbt/skillwise/internal/repo/redis"
	authsvc "github.com/ysfmrbt/skillwise/internal/services/auth"
)

func TestSignInIssuesValidTokens(t *testing.T) {
	svc, _, cleanup := newAuthServiceForTest(t, 7*24*time.Hour)
	defer cleanup()

	ctx := context.Background()
	if _, err := svc.Register(ctx, "alice@example.com", "secret123", "Alice"); err != nil {
		t.Fatalf("register: %v", err)
	}

	res, err := svc.SignIn(ctx, "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	claims, err := svc.ValidateAccessToken(res.AccessToken)
	if err != nil {
		t.Fatalf("validate access token: %v", err)
	}
	if claims.UserID != res.User.ID {
		t.Fatalf("claims user mismatch: got %q want %q", claims.UserID, res.User.ID)
	}
	if claims.Email != "alice@example.com" {
		t.Fatalf("claims email mismatch: %q", claims.Email)
	}
	if claims.Role != "STUDENT" {
		t.Fatalf("claims role mismatch: %q", claims.Role)
	}
	if res.RefreshToken == "" {
		t.Fatalf("refresh token is empty")
	}
}

func TestSignInErrorIsUniform(t *testing.T) {
	svc, _, cleanup := newAuthServiceForTest(t, 7*24*time.Hour)
	defer cleanup()

	ctx := context.Background()
	if _, err := svc.Register(ctx, "bob@example.com", "secret123", "Bob"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.SignIn(ctx, "nobody@example.com", "secret123"); !errors.Is(err, authsvc.ErrInvalidCredentials) {
		t.Fatalf("unknown account: got err=%v want ErrInvalidCredentials", err)
	}
	if _, err := svc.SignIn(ctx, "bob@example.com", "wrong-password"); !errors.Is(err, authsvc.ErrInvalidCredentials) {
		t.Fatalf("wrong password: got err=%v want ErrInvalidCredentials", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, cleanup := newAuthServiceForTest(t, 7*24*time.Hour)
	defer cleanup()

	ctx := context.Background()
	if _, err := svc.Register(ctx, "carol@example.com", "secret123", "Carol"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, "Carol@Example.com", "secret123", "Carol"); !errors.Is(err, authsvc.ErrAlreadyExists) {
		t.Fatalf("duplicate register: got err=%v want ErrAlreadyExists", err)
	}
}

func TestRepeatSignInReusesRefreshToken(t *testing.T) {
	svc, _, cleanup := newAuthServiceForTest(t, 7*24*time.Hour)
	defer cleanup()

	ctx := context.Background()
	first, err := svc.Register(ctx, "dave@example.com", "secret123", "Dave")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	second, err := svc.SignIn(ctx, "dave@example.com", "secret123")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if second.RefreshToken != first.RefreshToken {
		t.Fatalf("refresh token changed across sign-ins")
	}
	if !second.RefreshExpires.Equal(first.RefreshExpires) {
		t.Fatalf("refresh expiry changed across sign-ins: %v vs %v", second.RefreshExpires, first.RefreshExpires)
	}
}

func TestRefreshDoesNotRotate(t *testing.T) {
	svc, _, cleanup := newAuthServiceForTest(t, 7*24*time.Hour)
	defer cleanup()

	ctx := context.Background()
	login, err := svc.Register(ctx, "erin@example.com", "secret123", "Erin")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	refreshRes, err := svc.Refresh(ctx, login.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if _, err := svc.ValidateAccessToken(refreshRes.AccessToken); err != nil {
		t.Fatalf("validate refreshed access token: %v", err)
	}

	// The same refresh token keeps working until it expires.
	if _, err := svc.Refresh(ctx, login.RefreshToken); err != nil {
		t.Fatalf("second refresh with same token: %v", err)
	}
}

func TestRefreshRejectsUnknownToken(t *testing.T) {
	svc, _, cleanup := newAuthServiceForTest(t, 7*24*time.Hour)
	defer cleanup()

	if _, err := svc.Refresh(context.Background(), "not-a-real-token"); !errors.Is(err, authsvc.ErrInvalidRefreshToken) {
		t.Fatalf("unknown refresh token: got err=%v want ErrInvalidRefreshToken", err)
	}
}

func TestRefreshExpired(t *testing.T) {
	svc, _, cleanup := newAuthServiceForTest(t, time.Second)
	defer cleanup()

	ctx := context.Background()
	login, err := svc.Register(ctx, "frank@example.com", "secret123", "Frank")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	time.Sleep(1100 * time.Millisecond)

	if _, err := svc.Refresh(ctx, login.RefreshToken); !errors.Is(err, authsvc.ErrRefreshExpired) {
		t.Fatalf("expired refresh: got err=%v want ErrRefreshExpired", err)
	}

	// The record was dropped, so the next attempt sees an unknown token.
	if _, err := svc.Refresh(ctx, login.RefreshToken); !errors.Is(err, authsvc.ErrInvalidRefreshToken) {
		t.Fatalf("refresh after purge: got err=%v want ErrInvalidRefreshToken", err)
	}
}

func TestLogoutInvalidatesRefresh(t *testing.T) {
	svc, _, cleanup := newAuthServiceForTest(t, 7*24*time.Hour)
	defer cleanup()

	ctx := context.Background()
	login, err := svc.Register(ctx, "grace@example.com", "secret123", "Grace")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.Logout(ctx, login.User.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.Refresh(ctx, login.RefreshToken); !errors.Is(err, authsvc.ErrInvalidRefreshToken) {
		t.Fatalf("refresh after logout: got err=%v want ErrInvalidRefreshToken", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _, cleanup := newAuthServiceForTest(t, 7*24*time.Hour)
	defer cleanup()

	ctx := context.Background()
	cases := []struct {
		name     string
		email    string
		password string
		userName string
	}{
		{"bad email", "not-an-email", "secret123", "Heidi"},
		{"short password", "heidi@example.com", "12345", "Heidi"},
		{"short name", "heidi@example.com", "secret123", "H"},
	}
	for _, tc := range cases {
		if _, err := svc.Register(ctx, tc.email, tc.password, tc.userName); !errors.Is(err, authsvc.ErrInvalidInput) {
			t.Fatalf("%s: got err=%v want ErrInvalidInput", tc.name, err)
		}
	}
}

func newAuthServiceForTest(t *testing.T, refreshTTL time.Duration) (*authsvc.Service, *fakeUserStore, func()) {
	t.Helper()

	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}

	client := goredis.NewClient(&goredis.Options{Addr: mini.Addr()})
	refreshRepo := redrepo.NewRefreshRepo(client)
	users := newFakeUserStore()
	jwtManager := authsvc.NewJWTManager("test-secret", 15*time.Minute)
	hasher := authsvc.NewPasswordHasher(4)
	svc := authsvc.NewService(users, refreshRepo, jwtManager, hasher, refreshTTL, zap.NewNop())

	cleanup := func() {
		_ = client.Close()
		mini.Close()
	}

	return svc, users, cleanup
}

type fakeUserStore struct {
	mu      sync.Mutex
	byEmail map[string]authsvc.UserRecord
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]authsvc.UserRecord)}
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (authsvc.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return authsvc.UserRecord{}, authsvc.ErrUserNotFound
	}
	return user, nil
}

func (s *fakeUserStore) FindByID(_ context.Context, id string) (authsvc.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return authsvc.UserRecord{}, authsvc.ErrUserNotFound
}

func (s *fakeUserStore) CreateUser(_ context.Context, user authsvc.UserRecord) (authsvc.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(user.Email)
	if _, ok := s.byEmail[key]; ok {
		return authsvc.UserRecord{}, authsvc.ErrEmailTaken
	}
	user.ID = uuid.NewString()
	s.byEmail[key] = user
	return user, nil
}
