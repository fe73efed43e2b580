package lessons

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ysfmrbt/skillwise/internal/domain/enums"
)

const (
	minTitleLen   = 2
	maxTitleLen   = 200
	minContentLen = 10
	maxContentLen = 5000
)

var (
	ErrValidation     = errors.New("validation error")
	ErrNotFound       = errors.New("lesson not found")
	ErrCourseNotFound = errors.New("course not found")
)

type CourseRef struct {
	ID    string
	Title string
}

type Lesson struct {
	ID        string
	Title     string
	Content   string
	Type      enums.LessonType
	Course    CourseRef
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Record struct {
	Title    string
	Content  string
	Type     enums.LessonType
	CourseID string
}

// Update carries optional fields; nil means "leave unchanged".
type Update struct {
	Title   *string
	Content *string
	Type    *enums.LessonType
}

type Store interface {
	List(ctx context.Context) ([]Lesson, error)
	ListByCourse(ctx context.Context, courseID string) ([]Lesson, error)
	Get(ctx context.Context, id string) (Lesson, error)
	Create(ctx context.Context, record Record) (Lesson, error)
	Update(ctx context.Context, id string, update Update) (Lesson, error)
	Delete(ctx context.Context, id string) error
}

type CourseStore interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type Service struct {
	store   Store
	courses CourseStore
}

func NewService(store Store, courses CourseStore) *Service {
	return &Service{store: store, courses: courses}
}

func (s *Service) List(ctx context.Context) ([]Lesson, error) {
	return s.store.List(ctx)
}

func (s *Service) ListByCourse(ctx context.Context, courseID string) ([]Lesson, error) {
	if strings.TrimSpace(courseID) == "" {
		return nil, ErrValidation
	}
	return s.store.ListByCourse(ctx, courseID)
}

func (s *Service) Get(ctx context.Context, id string) (Lesson, error) {
	if strings.TrimSpace(id) == "" {
		return Lesson{}, ErrValidation
	}
	return s.store.Get(ctx, id)
}

type CreateInput struct {
	Title    string
	Content  string
	Type     string
	CourseID string
}

func (s *Service) Create(ctx context.Context, input CreateInput) (Lesson, error) {
	title := strings.TrimSpace(input.Title)
	if !validTitle(title) || strings.TrimSpace(input.CourseID) == "" {
		return Lesson{}, ErrValidation
	}

	content := strings.TrimSpace(input.Content)
	if content != "" && !validContent(content) {
		return Lesson{}, ErrValidation
	}

	lessonType := enums.LessonTypeVideo
	if input.Type != "" {
		parsed, ok := enums.ParseLessonType(input.Type)
		if !ok {
			return Lesson{}, ErrValidation
		}
		lessonType = parsed
	}

	exists, err := s.courses.Exists(ctx, input.CourseID)
	if err != nil {
		return Lesson{}, fmt.Errorf("check course: %w", err)
	}
	if !exists {
		return Lesson{}, ErrCourseNotFound
	}

	return s.store.Create(ctx, Record{
		Title:    title,
		Content:  content,
		Type:     lessonType,
		CourseID: input.CourseID,
	})
}

type UpdateInput struct {
	Title   *string
	Content *string
	Type    *string
}

func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (Lesson, error) {
	if strings.TrimSpace(id) == "" {
		return Lesson{}, ErrValidation
	}

	update := Update{}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if !validTitle(title) {
			return Lesson{}, ErrValidation
		}
		update.Title = &title
	}
	if input.Content != nil {
		content := strings.TrimSpace(*input.Content)
		if content != "" && !validContent(content) {
			return Lesson{}, ErrValidation
		}
		update.Content = &content
	}
	if input.Type != nil {
		lessonType, ok := enums.ParseLessonType(*input.Type)
		if !ok {
			return Lesson{}, ErrValidation
		}
		update.Type = &lessonType
	}

	return s.store.Update(ctx, id, update)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrValidation
	}
	return s.store.Delete(ctx, id)
}

func validTitle(title string) bool {
	return len(title) >= minTitleLen && len(title) <= maxTitleLen
}

func validContent(content string) bool {
	return len(content) >= minContentLen && len(content) <= maxContentLen
}
