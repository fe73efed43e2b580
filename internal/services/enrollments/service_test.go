package enrollments_test

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/ysfmrbt/skillwise/internal/services/enrollments"
)

func TestCreateEnrollment(t *testing.T) {
	svc, store := newEnrollmentServiceForTest(t)

	enrollment, err := svc.Create(context.Background(), "student-1", "course-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if enrollment.Student.ID != "student-1" || enrollment.Course.ID != "course-1" {
		t.Fatalf("unexpected enrollment: %+v", enrollment)
	}
	if len(store.items) != 1 {
		t.Fatalf("stored=%d want 1", len(store.items))
	}
}

func TestCreateOnlyStudentsEnroll(t *testing.T) {
	svc, _ := newEnrollmentServiceForTest(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "instructor-1", "course-1"); !errors.Is(err, enrollments.ErrNotAStudent) {
		t.Fatalf("instructor: got err=%v want ErrNotAStudent", err)
	}
	if _, err := svc.Create(ctx, "ghost", "course-1"); !errors.Is(err, enrollments.ErrStudentNotFound) {
		t.Fatalf("unknown user: got err=%v want ErrStudentNotFound", err)
	}
}

func TestCreateRoleCheckIsCaseInsensitive(t *testing.T) {
	svc, _ := newEnrollmentServiceForTest(t)

	if _, err := svc.Create(context.Background(), "student-lower", "course-1"); err != nil {
		t.Fatalf("lowercase role: %v", err)
	}
}

func TestCreateUnknownCourse(t *testing.T) {
	svc, _ := newEnrollmentServiceForTest(t)

	if _, err := svc.Create(context.Background(), "student-1", "course-404"); !errors.Is(err, enrollments.ErrCourseNotFound) {
		t.Fatalf("got err=%v want ErrCourseNotFound", err)
	}
}

func TestCreateDuplicate(t *testing.T) {
	svc, _ := newEnrollmentServiceForTest(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "student-1", "course-1"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(ctx, "student-1", "course-1"); !errors.Is(err, enrollments.ErrAlreadyEnrolled) {
		t.Fatalf("duplicate: got err=%v want ErrAlreadyEnrolled", err)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newEnrollmentServiceForTest(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "", "course-1"); !errors.Is(err, enrollments.ErrValidation) {
		t.Fatalf("empty student: got err=%v want ErrValidation", err)
	}
	if _, err := svc.Create(ctx, "student-1", " "); !errors.Is(err, enrollments.ErrValidation) {
		t.Fatalf("empty course: got err=%v want ErrValidation", err)
	}
}

func newEnrollmentServiceForTest(t *testing.T) (*enrollments.Service, *fakeEnrollmentStore) {
	t.Helper()

	store := &fakeEnrollmentStore{}
	students := fakeStudentStore{
		"student-1":     "STUDENT",
		"student-lower": "student",
		"instructor-1":  "INSTRUCTOR",
	}
	courses := fakeCourseStore{"course-1": true}
	return enrollments.NewService(store, students, courses), store
}

type fakeEnrollmentStore struct {
	items  []enrollments.Enrollment
	nextID int
}

func (s *fakeEnrollmentStore) List(context.Context) ([]enrollments.Enrollment, error) {
	return s.items, nil
}

func (s *fakeEnrollmentStore) ListByStudent(_ context.Context, studentID string) ([]enrollments.Enrollment, error) {
	var out []enrollments.Enrollment
	for _, e := range s.items {
		if e.Student.ID == studentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeEnrollmentStore) ListByCourse(_ context.Context, courseID string) ([]enrollments.Enrollment, error) {
	var out []enrollments.Enrollment
	for _, e := range s.items {
		if e.Course.ID == courseID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeEnrollmentStore) Get(_ context.Context, id string) (enrollments.Enrollment, error) {
	for _, e := range s.items {
		if e.ID == id {
			return e, nil
		}
	}
	return enrollments.Enrollment{}, enrollments.ErrNotFound
}

func (s *fakeEnrollmentStore) Create(_ context.Context, studentID, courseID string) (enrollments.Enrollment, error) {
	for _, e := range s.items {
		if e.Student.ID == studentID && e.Course.ID == courseID {
			return enrollments.Enrollment{}, enrollments.ErrAlreadyEnrolled
		}
	}
	s.nextID++
	e := enrollments.Enrollment{
		ID:      "enrollment-" + strconv.Itoa(s.nextID),
		Student: enrollments.StudentRef{ID: studentID},
		Course:  enrollments.CourseRef{ID: courseID},
	}
	s.items = append(s.items, e)
	return e, nil
}

func (s *fakeEnrollmentStore) Delete(_ context.Context, id string) error {
	for i, e := range s.items {
		if e.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return enrollments.ErrNotFound
}

type fakeStudentStore map[string]string

func (s fakeStudentStore) FindRole(_ context.Context, id string) (string, bool, error) {
	role, ok := s[id]
	return role, ok, nil
}

type fakeCourseStore map[string]bool

func (s fakeCourseStore) Exists(_ context.Context, id string) (bool, error) {
	return s[id], nil
}
