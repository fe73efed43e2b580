package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ysfmrbt/skillwise/internal/domain/enums"
	"github.com/ysfmrbt/skillwise/internal/pkg/validate"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already taken")
	ErrInUse      = errors.New("user is referenced by other records")
)

// User is the redacted account view; the password hash never appears here.
type User struct {
	ID        string
	Email     string
	Name      string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Filter struct {
	Role   enums.UserRole
	Search string
}

// Update carries optional fields; nil means "leave unchanged".
type Update struct {
	Email        *string
	Name         *string
	PasswordHash *string
}

type Store interface {
	List(ctx context.Context, filter Filter) ([]User, error)
	Get(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, email, name, passwordHash, role string) (User, error)
	Update(ctx context.Context, id string, update Update) (User, error)
	UpdateRole(ctx context.Context, id, role string) (User, error)
	Delete(ctx context.Context, id string) error
	ListByRole(ctx context.Context, role string) ([]User, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
}

type Service struct {
	store  Store
	hasher PasswordHasher
}

func NewService(store Store, hasher PasswordHasher) *Service {
	return &Service{store: store, hasher: hasher}
}

func (s *Service) List(ctx context.Context, roleFilter, search string) ([]User, error) {
	filter := Filter{Search: strings.TrimSpace(search)}
	if roleFilter != "" {
		role, ok := enums.ParseUserRole(roleFilter)
		if !ok {
			return nil, ErrValidation
		}
		filter.Role = role
	}

	users, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *Service) Get(ctx context.Context, id string) (User, error) {
	if strings.TrimSpace(id) == "" {
		return User{}, ErrValidation
	}
	return s.store.Get(ctx, id)
}

type CreateInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

func (s *Service) Create(ctx context.Context, input CreateInput) (User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	name := strings.TrimSpace(input.Name)
	if !validate.Email(email) || name == "" {
		return User{}, ErrValidation
	}
	if len(input.Password) < 8 {
		return User{}, ErrValidation
	}

	role := enums.RoleStudent
	if input.Role != "" {
		parsed, ok := enums.ParseUserRole(input.Role)
		if !ok {
			return User{}, ErrValidation
		}
		role = parsed
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	return s.store.Create(ctx, email, name, passwordHash, string(role))
}

type UpdateInput struct {
	Email    *string
	Name     *string
	Password *string
}

func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (User, error) {
	if strings.TrimSpace(id) == "" {
		return User{}, ErrValidation
	}

	update := Update{}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if !validate.Email(email) {
			return User{}, ErrValidation
		}
		update.Email = &email
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return User{}, ErrValidation
		}
		update.Name = &name
	}
	if input.Password != nil {
		if len(*input.Password) < 8 {
			return User{}, ErrValidation
		}
		passwordHash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return User{}, fmt.Errorf("hash password: %w", err)
		}
		update.PasswordHash = &passwordHash
	}

	return s.store.Update(ctx, id, update)
}

func (s *Service) UpdateRole(ctx context.Context, id, roleValue string) (User, error) {
	if strings.TrimSpace(id) == "" {
		return User{}, ErrValidation
	}
	role, ok := enums.ParseUserRole(roleValue)
	if !ok {
		return User{}, ErrValidation
	}

	return s.store.UpdateRole(ctx, id, string(role))
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrValidation
	}
	return s.store.Delete(ctx, id)
}

func (s *Service) ListByRole(ctx context.Context, roleValue string) ([]User, error) {
	role, ok := enums.ParseUserRole(roleValue)
	if !ok {
		return nil, ErrValidation
	}
	return s.store.ListByRole(ctx, string(role))
}
