package users_test

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/ysfmrbt/skillwise/internal/services/users"
)

func TestCreateDefaultsToStudent(t *testing.T) {
	svc, _ := newUserServiceForTest(t)

	user, err := svc.Create(context.Background(), users.CreateInput{
		Email:    "Alice@Example.com",
		Password: "long-enough",
		Name:     "Alice",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.Role != "STUDENT" {
		t.Fatalf("role=%q want STUDENT", user.Role)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
}

func TestCreateWithExplicitRole(t *testing.T) {
	svc, _ := newUserServiceForTest(t)

	user, err := svc.Create(context.Background(), users.CreateInput{
		Email:    "bob@example.com",
		Password: "long-enough",
		Name:     "Bob",
		Role:     "instructor",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.Role != "INSTRUCTOR" {
		t.Fatalf("role=%q want INSTRUCTOR", user.Role)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newUserServiceForTest(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input users.CreateInput
	}{
		{"bad email", users.CreateInput{Email: "nope", Password: "long-enough", Name: "X Y"}},
		{"short password", users.CreateInput{Email: "x@example.com", Password: "1234567", Name: "X Y"}},
		{"empty name", users.CreateInput{Email: "x@example.com", Password: "long-enough", Name: "  "}},
		{"bad role", users.CreateInput{Email: "x@example.com", Password: "long-enough", Name: "X Y", Role: "WIZARD"}},
	}
	for _, tc := range cases {
		if _, err := svc.Create(ctx, tc.input); !errors.Is(err, users.ErrValidation) {
			t.Fatalf("%s: got err=%v want ErrValidation", tc.name, err)
		}
	}
}

func TestUpdateHashesNewPassword(t *testing.T) {
	svc, store := newUserServiceForTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, users.CreateInput{
		Email:    "carol@example.com",
		Password: "long-enough",
		Name:     "Carol",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	password := "another-secret"
	if _, err := svc.Update(ctx, created.ID, users.UpdateInput{Password: &password}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if store.lastPasswordHash != "hashed:another-secret" {
		t.Fatalf("password was not hashed: %q", store.lastPasswordHash)
	}
}

func TestUpdateRoleRejectsUnknown(t *testing.T) {
	svc, _ := newUserServiceForTest(t)

	if _, err := svc.UpdateRole(context.Background(), "user-1", "WIZARD"); !errors.Is(err, users.ErrValidation) {
		t.Fatalf("got err=%v want ErrValidation", err)
	}
}

func TestListRejectsUnknownRoleFilter(t *testing.T) {
	svc, _ := newUserServiceForTest(t)

	if _, err := svc.List(context.Background(), "WIZARD", ""); !errors.Is(err, users.ErrValidation) {
		t.Fatalf("got err=%v want ErrValidation", err)
	}
}

func TestListByRoleNormalizesCase(t *testing.T) {
	svc, store := newUserServiceForTest(t)

	if _, err := svc.ListByRole(context.Background(), "admin"); err != nil {
		t.Fatalf("list by role: %v", err)
	}
	if store.lastRoleQuery != "ADMIN" {
		t.Fatalf("role query=%q want ADMIN", store.lastRoleQuery)
	}
}

func newUserServiceForTest(t *testing.T) (*users.Service, *fakeUserStore) {
	t.Helper()

	store := &fakeUserStore{}
	return users.NewService(store, fakeHasher{}), store
}

type fakeUserStore struct {
	items            []users.User
	lastPasswordHash string
	lastRoleQuery    string
	nextID           int
}

func (s *fakeUserStore) List(_ context.Context, filter users.Filter) ([]users.User, error) {
	var out []users.User
	for _, u := range s.items {
		if filter.Role != "" && u.Role != string(filter.Role) {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(u.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (s *fakeUserStore) Get(_ context.Context, id string) (users.User, error) {
	for _, u := range s.items {
		if u.ID == id {
			return u, nil
		}
	}
	return users.User{}, users.ErrNotFound
}

func (s *fakeUserStore) Create(_ context.Context, email, name, passwordHash, role string) (users.User, error) {
	for _, u := range s.items {
		if u.Email == email {
			return users.User{}, users.ErrEmailTaken
		}
	}
	s.nextID++
	s.lastPasswordHash = passwordHash
	u := users.User{ID: "user-" + strconv.Itoa(s.nextID), Email: email, Name: name, Role: role}
	s.items = append(s.items, u)
	return u, nil
}

func (s *fakeUserStore) Update(_ context.Context, id string, update users.Update) (users.User, error) {
	for i, u := range s.items {
		if u.ID != id {
			continue
		}
		if update.Email != nil {
			u.Email = *update.Email
		}
		if update.Name != nil {
			u.Name = *update.Name
		}
		if update.PasswordHash != nil {
			s.lastPasswordHash = *update.PasswordHash
		}
		s.items[i] = u
		return u, nil
	}
	return users.User{}, users.ErrNotFound
}

func (s *fakeUserStore) UpdateRole(_ context.Context, id, role string) (users.User, error) {
	for i, u := range s.items {
		if u.ID == id {
			u.Role = role
			s.items[i] = u
			return u, nil
		}
	}
	return users.User{}, users.ErrNotFound
}

func (s *fakeUserStore) Delete(_ context.Context, id string) error {
	for i, u := range s.items {
		if u.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return users.ErrNotFound
}

func (s *fakeUserStore) ListByRole(_ context.Context, role string) ([]users.User, error) {
	s.lastRoleQuery = role
	var out []users.User
	for _, u := range s.items {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}
