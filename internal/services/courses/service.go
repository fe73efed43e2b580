package courses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ysfmrbt/skillwise/internal/domain/enums"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("course not found")
	ErrInstructorNotFound = errors.New("instructor not found")
	ErrNotAnInstructor    = errors.New("user is not authorized to be an instructor")
	ErrCategoryNotFound   = errors.New("category not found")
)

type UserRef struct {
	ID    string
	Name  string
	Email string
	Role  string
}

type CategoryRef struct {
	ID   string
	Name string
}

type Course struct {
	ID              string
	Title           string
	Description     string
	Status          enums.CourseStatus
	Instructor      UserRef
	Category        CategoryRef
	LessonCount     int
	EnrollmentCount int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Record struct {
	Title        string
	Description  string
	Status       enums.CourseStatus
	InstructorID string
	CategoryID   string
}

// Update carries optional fields; nil means "leave unchanged".
type Update struct {
	Title        *string
	Description  *string
	Status       *enums.CourseStatus
	InstructorID *string
	CategoryID   *string
}

type Store interface {
	List(ctx context.Context) ([]Course, error)
	Get(ctx context.Context, id string) (Course, error)
	Create(ctx context.Context, record Record) (Course, error)
	Update(ctx context.Context, id string, update Update) (Course, error)
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}

// InstructorStore reports the role of a prospective instructor; the courses
// service decides whether that role may own a course.
type InstructorStore interface {
	FindRole(ctx context.Context, id string) (role string, found bool, err error)
}

type CategoryStore interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type Service struct {
	store       Store
	instructors InstructorStore
	categories  CategoryStore
}

func NewService(store Store, instructors InstructorStore, categories CategoryStore) *Service {
	return &Service{
		store:       store,
		instructors: instructors,
		categories:  categories,
	}
}

func (s *Service) List(ctx context.Context) ([]Course, error) {
	return s.store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (Course, error) {
	if strings.TrimSpace(id) == "" {
		return Course{}, ErrValidation
	}
	return s.store.Get(ctx, id)
}

type CreateInput struct {
	Title        string
	Description  string
	Status       string
	InstructorID string
	CategoryID   string
}

func (s *Service) Create(ctx context.Context, input CreateInput) (Course, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || strings.TrimSpace(input.InstructorID) == "" || strings.TrimSpace(input.CategoryID) == "" {
		return Course{}, ErrValidation
	}

	status := enums.CourseStatusDraft
	if input.Status != "" {
		parsed, ok := enums.ParseCourseStatus(input.Status)
		if !ok {
			return Course{}, ErrValidation
		}
		status = parsed
	}

	if err := s.validateReferences(ctx, &input.InstructorID, &input.CategoryID); err != nil {
		return Course{}, err
	}

	return s.store.Create(ctx, Record{
		Title:        title,
		Description:  strings.TrimSpace(input.Description),
		Status:       status,
		InstructorID: input.InstructorID,
		CategoryID:   input.CategoryID,
	})
}

type UpdateInput struct {
	Title        *string
	Description  *string
	Status       *string
	InstructorID *string
	CategoryID   *string
}

func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (Course, error) {
	if strings.TrimSpace(id) == "" {
		return Course{}, ErrValidation
	}

	update := Update{
		Description:  input.Description,
		InstructorID: input.InstructorID,
		CategoryID:   input.CategoryID,
	}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return Course{}, ErrValidation
		}
		update.Title = &title
	}
	if input.Status != nil {
		status, ok := enums.ParseCourseStatus(*input.Status)
		if !ok {
			return Course{}, ErrValidation
		}
		update.Status = &status
	}

	if err := s.validateReferences(ctx, input.InstructorID, input.CategoryID); err != nil {
		return Course{}, err
	}

	return s.store.Update(ctx, id, update)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrValidation
	}
	return s.store.Delete(ctx, id)
}

func (s *Service) validateReferences(ctx context.Context, instructorID, categoryID *string) error {
	if instructorID != nil && *instructorID != "" {
		role, found, err := s.instructors.FindRole(ctx, *instructorID)
		if err != nil {
			return fmt.Errorf("check instructor: %w", err)
		}
		if !found {
			return ErrInstructorNotFound
		}
		if !roleMayInstruct(role) {
			return ErrNotAnInstructor
		}
	}

	if categoryID != nil && *categoryID != "" {
		exists, err := s.categories.Exists(ctx, *categoryID)
		if err != nil {
			return fmt.Errorf("check category: %w", err)
		}
		if !exists {
			return ErrCategoryNotFound
		}
	}

	return nil
}

func roleMayInstruct(role string) bool {
	for _, allowed := range enums.InstructorRoles() {
		if strings.EqualFold(role, string(allowed)) {
			return true
		}
	}
	return false
}
