package enrollments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ysfmrbt/skillwise/internal/domain/enums"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("enrollment not found")
	ErrStudentNotFound = errors.New("student not found")
	ErrNotAStudent     = errors.New("user is not a student")
	ErrCourseNotFound  = errors.New("course not found")
	ErrAlreadyEnrolled = errors.New("student is already enrolled in this course")
)

type StudentRef struct {
	ID    string
	Name  string
	Email string
	Role  string
}

type CourseRef struct {
	ID     string
	Title  string
	Status string
}

type Enrollment struct {
	ID        string
	Student   StudentRef
	Course    CourseRef
	CreatedAt time.Time
}

type Store interface {
	List(ctx context.Context) ([]Enrollment, error)
	ListByStudent(ctx context.Context, studentID string) ([]Enrollment, error)
	ListByCourse(ctx context.Context, courseID string) ([]Enrollment, error)
	Get(ctx context.Context, id string) (Enrollment, error)
	Create(ctx context.Context, studentID, courseID string) (Enrollment, error)
	Delete(ctx context.Context, id string) error
}

type StudentStore interface {
	FindRole(ctx context.Context, id string) (role string, found bool, err error)
}

type CourseStore interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type Service struct {
	store    Store
	students StudentStore
	courses  CourseStore
}

func NewService(store Store, students StudentStore, courses CourseStore) *Service {
	return &Service{
		store:    store,
		students: students,
		courses:  courses,
	}
}

func (s *Service) List(ctx context.Context) ([]Enrollment, error) {
	return s.store.List(ctx)
}

func (s *Service) ListByStudent(ctx context.Context, studentID string) ([]Enrollment, error) {
	if strings.TrimSpace(studentID) == "" {
		return nil, ErrValidation
	}
	return s.store.ListByStudent(ctx, studentID)
}

func (s *Service) ListByCourse(ctx context.Context, courseID string) ([]Enrollment, error) {
	if strings.TrimSpace(courseID) == "" {
		return nil, ErrValidation
	}
	return s.store.ListByCourse(ctx, courseID)
}

func (s *Service) Get(ctx context.Context, id string) (Enrollment, error) {
	if strings.TrimSpace(id) == "" {
		return Enrollment{}, ErrValidation
	}
	return s.store.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, studentID, courseID string) (Enrollment, error) {
	if strings.TrimSpace(studentID) == "" || strings.TrimSpace(courseID) == "" {
		return Enrollment{}, ErrValidation
	}

	role, found, err := s.students.FindRole(ctx, studentID)
	if err != nil {
		return Enrollment{}, fmt.Errorf("check student: %w", err)
	}
	if !found {
		return Enrollment{}, ErrStudentNotFound
	}
	if !strings.EqualFold(role, string(enums.RoleStudent)) {
		return Enrollment{}, ErrNotAStudent
	}

	exists, err := s.courses.Exists(ctx, courseID)
	if err != nil {
		return Enrollment{}, fmt.Errorf("check course: %w", err)
	}
	if !exists {
		return Enrollment{}, ErrCourseNotFound
	}

	return s.store.Create(ctx, studentID, courseID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrValidation
	}
	return s.store.Delete(ctx, id)
}
