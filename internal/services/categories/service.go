package categories

import (
	"context"
	"errors"
	"strings"
	"time"
)

const (
	minNameLen = 2
	maxNameLen = 50
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("category not found")
	ErrNameTaken  = errors.New("category name already exists")
	ErrInUse      = errors.New("category has courses attached")
)

type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Store interface {
	List(ctx context.Context) ([]Category, error)
	Get(ctx context.Context, id string) (Category, error)
	Create(ctx context.Context, name string) (Category, error)
	Update(ctx context.Context, id, name string) (Category, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context) ([]Category, error) {
	return s.store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (Category, error) {
	if strings.TrimSpace(id) == "" {
		return Category{}, ErrValidation
	}
	return s.store.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, name string) (Category, error) {
	name, ok := normalizeName(name)
	if !ok {
		return Category{}, ErrValidation
	}
	return s.store.Create(ctx, name)
}

func (s *Service) Update(ctx context.Context, id, name string) (Category, error) {
	if strings.TrimSpace(id) == "" {
		return Category{}, ErrValidation
	}
	name, ok := normalizeName(name)
	if !ok {
		return Category{}, ErrValidation
	}
	return s.store.Update(ctx, id, name)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrValidation
	}
	return s.store.Delete(ctx, id)
}

func normalizeName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if len(name) < minNameLen || len(name) > maxNameLen {
		return "", false
	}
	return name, true
}
