package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	minRating     = 1
	maxRating     = 5
	minCommentLen = 10
	maxCommentLen = 1000
)

var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("feedback not found")
	ErrStudentNotFound = errors.New("student not found")
	ErrCourseNotFound  = errors.New("course not found")
	ErrAlreadyLeft     = errors.New("student already left feedback for this course")
)

type StudentRef struct {
	ID    string
	Name  string
	Email string
}

type CourseRef struct {
	ID    string
	Title string
}

type Feedback struct {
	ID        string
	Rating    int
	Comment   string
	Student   StudentRef
	Course    CourseRef
	CreatedAt time.Time
	UpdatedAt time.Time
}

type RatingStats struct {
	AverageRating  float64
	TotalFeedbacks int
	Distribution   map[int]int
}

// Update carries optional fields; nil means "leave unchanged".
type Update struct {
	Rating  *int
	Comment *string
}

type Store interface {
	List(ctx context.Context) ([]Feedback, error)
	ListByStudent(ctx context.Context, studentID string) ([]Feedback, error)
	ListByCourse(ctx context.Context, courseID string) ([]Feedback, error)
	Get(ctx context.Context, id string) (Feedback, error)
	Create(ctx context.Context, studentID, courseID string, rating int, comment string) (Feedback, error)
	Update(ctx context.Context, id string, update Update) (Feedback, error)
	Delete(ctx context.Context, id string) error
	RatingsByCourse(ctx context.Context, courseID string) ([]int, error)
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

func (s *Service) List(ctx context.Context) ([]Feedback, error) {
	return s.store.List(ctx)
}

func (s *Service) ListByStudent(ctx context.Context, studentID string) ([]Feedback, error) {
	if strings.TrimSpace(studentID) == "" {
		return nil, ErrValidation
	}
	return s.store.ListByStudent(ctx, studentID)
}

func (s *Service) ListByCourse(ctx context.Context, courseID string) ([]Feedback, error) {
	if strings.TrimSpace(courseID) == "" {
		return nil, ErrValidation
	}
	return s.store.ListByCourse(ctx, courseID)
}

func (s *Service) Get(ctx context.Context, id string) (Feedback, error) {
	if strings.TrimSpace(id) == "" {
		return Feedback{}, ErrValidation
	}
	return s.store.Get(ctx, id)
}

type CreateInput struct {
	StudentID string
	CourseID  string
	Rating    int
	Comment   string
}

func (s *Service) Create(ctx context.Context, input CreateInput) (Feedback, error) {
	if strings.TrimSpace(input.StudentID) == "" || strings.TrimSpace(input.CourseID) == "" {
		return Feedback{}, ErrValidation
	}
	if !validRating(input.Rating) {
		return Feedback{}, ErrValidation
	}
	comment := strings.TrimSpace(input.Comment)
	if comment != "" && !validComment(comment) {
		return Feedback{}, ErrValidation
	}

	if _, found, err := s.students.FindRole(ctx, input.StudentID); err != nil {
		return Feedback{}, fmt.Errorf("check student: %w", err)
	} else if !found {
		return Feedback{}, ErrStudentNotFound
	}

	exists, err := s.courses.Exists(ctx, input.CourseID)
	if err != nil {
		return Feedback{}, fmt.Errorf("check course: %w", err)
	}
	if !exists {
		return Feedback{}, ErrCourseNotFound
	}

	return s.store.Create(ctx, input.StudentID, input.CourseID, input.Rating, comment)
}

type UpdateInput struct {
	Rating  *int
	Comment *string
}

func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (Feedback, error) {
	if strings.TrimSpace(id) == "" {
		return Feedback{}, ErrValidation
	}

	update := Update{}
	if input.Rating != nil {
		if !validRating(*input.Rating) {
			return Feedback{}, ErrValidation
		}
		update.Rating = input.Rating
	}
	if input.Comment != nil {
		comment := strings.TrimSpace(*input.Comment)
		if comment != "" && !validComment(comment) {
			return Feedback{}, ErrValidation
		}
		update.Comment = &comment
	}

	return s.store.Update(ctx, id, update)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrValidation
	}
	return s.store.Delete(ctx, id)
}

// CourseStats aggregates ratings into the average / total / per-star
// distribution shape the dashboard consumes.
func (s *Service) CourseStats(ctx context.Context, courseID string) (RatingStats, error) {
	if strings.TrimSpace(courseID) == "" {
		return RatingStats{}, ErrValidation
	}

	ratings, err := s.store.RatingsByCourse(ctx, courseID)
	if err != nil {
		return RatingStats{}, fmt.Errorf("load course ratings: %w", err)
	}

	stats := RatingStats{
		Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	if len(ratings) == 0 {
		return stats, nil
	}

	total := 0
	for _, rating := range ratings {
		total += rating
		if rating >= minRating && rating <= maxRating {
			stats.Distribution[rating]++
		}
	}
	stats.TotalFeedbacks = len(ratings)
	stats.AverageRating = float64(total) / float64(len(ratings))

	return stats, nil
}

func validRating(rating int) bool {
	return rating >= minRating && rating <= maxRating
}

func validComment(comment string) bool {
	return len(comment) >= minCommentLen && len(comment) <= maxCommentLen
}
