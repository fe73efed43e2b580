package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
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
	"github.com/ysfmrbt/skillwise/internal/transport/http/handlers"
)

func TestRegisterSetsBothCookies(t *testing.T) {
	h, cleanup := newAuthHandlerForTest(t)
	defer cleanup()

	rr := httptest.NewRecorder()
	h.Register(rr, jsonRequest(t, http.MethodPost, "/auth/register", map[string]string{
		"email":    "alice@example.com",
		"password": "secret123",
		"name":     "Alice",
	}))

	if rr.Code != http.StatusCreated {
		t.Fatalf("status=%d want %d body=%s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	access := cookieByName(t, rr, handlers.AccessCookieName)
	refresh := cookieByName(t, rr, handlers.RefreshCookieName)
	for _, c := range []*http.Cookie{access, refresh} {
		if !c.HttpOnly {
			t.Fatalf("cookie %q is not HttpOnly", c.Name)
		}
		if c.SameSite != http.SameSiteStrictMode {
			t.Fatalf("cookie %q SameSite=%v want Strict", c.Name, c.SameSite)
		}
		if c.Path != "/" {
			t.Fatalf("cookie %q path=%q want /", c.Name, c.Path)
		}
		if c.MaxAge <= 0 {
			t.Fatalf("cookie %q max-age=%d want positive", c.Name, c.MaxAge)
		}
	}
	if refresh.MaxAge <= access.MaxAge {
		t.Fatalf("refresh cookie should outlive access cookie: %d vs %d", refresh.MaxAge, access.MaxAge)
	}
}

func TestSignInWrongPassword(t *testing.T) {
	h, cleanup := newAuthHandlerForTest(t)
	defer cleanup()

	rr := httptest.NewRecorder()
	h.Register(rr, jsonRequest(t, http.MethodPost, "/auth/register", map[string]string{
		"email":    "bob@example.com",
		"password": "secret123",
		"name":     "Bob",
	}))
	if rr.Code != http.StatusCreated {
		t.Fatalf("register status=%d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.SignIn(rr, jsonRequest(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "bob@example.com",
		"password": "wrong",
	}))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d want %d", rr.Code, http.StatusUnauthorized)
	}
	if len(rr.Result().Cookies()) != 0 {
		t.Fatalf("failed sign-in must not set cookies")
	}
}

func TestRefreshRewritesOnlyAccessCookie(t *testing.T) {
	h, cleanup := newAuthHandlerForTest(t)
	defer cleanup()

	rr := httptest.NewRecorder()
	h.Register(rr, jsonRequest(t, http.MethodPost, "/auth/register", map[string]string{
		"email":    "carol@example.com",
		"password": "secret123",
		"name":     "Carol",
	}))
	refresh := cookieByName(t, rr, handlers.RefreshCookieName)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: handlers.RefreshCookieName, Value: refresh.Value})
	rr = httptest.NewRecorder()
	h.Refresh(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d want %d body=%s", rr.Code, http.StatusOK, rr.Body.String())
	}

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != handlers.AccessCookieName {
		t.Fatalf("refresh must rewrite only the access cookie, got %v", cookieNames(cookies))
	}
}

func TestRefreshWithoutCookie(t *testing.T) {
	h, cleanup := newAuthHandlerForTest(t)
	defer cleanup()

	rr := httptest.NewRecorder()
	h.Refresh(rr, httptest.NewRequest(http.MethodPost, "/auth/refresh", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestLogoutClearsCookies(t *testing.T) {
	h, cleanup := newAuthHandlerForTest(t)
	defer cleanup()

	rr := httptest.NewRecorder()
	h.Register(rr, jsonRequest(t, http.MethodPost, "/auth/register", map[string]string{
		"email":    "dave@example.com",
		"password": "secret123",
		"name":     "Dave",
	}))

	var created struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode register response: %v", err)
	}

	ctx := authsvc.WithIdentity(context.Background(), authsvc.Identity{
		UserID: created.User.ID,
		Email:  "dave@example.com",
		Role:   "STUDENT",
	})
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil).WithContext(ctx)
	rr = httptest.NewRecorder()
	h.Logout(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d want %d", rr.Code, http.StatusOK)
	}
	for _, name := range []string{handlers.AccessCookieName, handlers.RefreshCookieName} {
		c := cookieByName(t, rr, name)
		if c.MaxAge != -1 {
			t.Fatalf("cookie %q max-age=%d want -1", name, c.MaxAge)
		}
		if c.Value != "" {
			t.Fatalf("cookie %q still has a value", name)
		}
	}
}

func TestProfileWithoutIdentity(t *testing.T) {
	h, cleanup := newAuthHandlerForTest(t)
	defer cleanup()

	rr := httptest.NewRecorder()
	h.Profile(rr, httptest.NewRequest(http.MethodGet, "/auth/profile", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestSignInRejectsUnknownFields(t *testing.T) {
	h, cleanup := newAuthHandlerForTest(t)
	defer cleanup()

	rr := httptest.NewRecorder()
	h.SignIn(rr, jsonRequest(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "x@example.com",
		"password": "secret123",
		"extra":    "nope",
	}))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want %d", rr.Code, http.StatusBadRequest)
	}
}

func newAuthHandlerForTest(t *testing.T) (*handlers.AuthHandler, func()) {
	t.Helper()

	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	client := goredis.NewClient(&goredis.Options{Addr: mini.Addr()})

	svc := authsvc.NewService(
		newMemoryUserStore(),
		redrepo.NewRefreshRepo(client),
		authsvc.NewJWTManager("test-secret", 15*time.Minute),
		authsvc.NewPasswordHasher(4),
		7*24*time.Hour,
		zap.NewNop(),
	)
	h := handlers.NewAuthHandler(svc, handlers.CookieSettings{Secure: false})

	cleanup := func() {
		_ = client.Close()
		mini.Close()
	}
	return h, cleanup
}

func jsonRequest(t *testing.T, method, target string, body map[string]string) *http.Request {
	t.Helper()

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	req := httptest.NewRequest(method, target, strings.NewReader(string(raw)))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func cookieByName(t *testing.T, rr *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()

	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set, got %v", name, cookieNames(rr.Result().Cookies()))
	return nil
}

func cookieNames(cookies []*http.Cookie) []string {
	names := make([]string, 0, len(cookies))
	for _, c := range cookies {
		names = append(names, c.Name)
	}
	return names
}

type memoryUserStore struct {
	mu      sync.Mutex
	byEmail map[string]authsvc.UserRecord
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{byEmail: make(map[string]authsvc.UserRecord)}
}

func (s *memoryUserStore) FindByEmail(_ context.Context, email string) (authsvc.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return authsvc.UserRecord{}, authsvc.ErrUserNotFound
	}
	return user, nil
}

func (s *memoryUserStore) FindByID(_ context.Context, id string) (authsvc.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return authsvc.UserRecord{}, authsvc.ErrUserNotFound
}

func (s *memoryUserStore) CreateUser(_ context.Context, user authsvc.UserRecord) (authsvc.UserRecord, error) {
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
