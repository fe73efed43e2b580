package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	enrollmentssvc "github.com/ysfmrbt/skillwise/internal/services/enrollments"
)

type EnrollmentRepo struct {
	pool *pgxpool.Pool
}

func NewEnrollmentRepo(pool *pgxpool.Pool) *EnrollmentRepo {
	return &EnrollmentRepo{pool: pool}
}

const enrollmentSelect = `
SELECT e.id,
	u.id, u.name, u.email, u.role,
	c.id, c.title, c.status,
	e.created_at
FROM enrollments e
JOIN users u ON u.id = e.student_id
JOIN courses c ON c.id = e.course_id
`

func (r *EnrollmentRepo) List(ctx context.Context) ([]enrollmentssvc.Enrollment, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, enrollmentSelect+`ORDER BY e.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	defer rows.Close()

	return collectEnrollments(rows)
}

func (r *EnrollmentRepo) ListByStudent(ctx context.Context, studentID string) ([]enrollmentssvc.Enrollment, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, enrollmentSelect+`WHERE e.student_id = $1 ORDER BY e.created_at DESC`, studentID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments by student: %w", err)
	}
	defer rows.Close()

	return collectEnrollments(rows)
}

func (r *EnrollmentRepo) ListByCourse(ctx context.Context, courseID string) ([]enrollmentssvc.Enrollment, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, enrollmentSelect+`WHERE e.course_id = $1 ORDER BY e.created_at DESC`, courseID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments by course: %w", err)
	}
	defer rows.Close()

	return collectEnrollments(rows)
}

func (r *EnrollmentRepo) Get(ctx context.Context, id string) (enrollmentssvc.Enrollment, error) {
	if r.pool == nil {
		return enrollmentssvc.Enrollment{}, fmt.Errorf("postgres pool is nil")
	}

	enrollment, err := scanEnrollment(r.pool.QueryRow(ctx, enrollmentSelect+`WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return enrollmentssvc.Enrollment{}, enrollmentssvc.ErrNotFound
		}
		return enrollmentssvc.Enrollment{}, fmt.Errorf("get enrollment: %w", err)
	}

	return enrollment, nil
}

func (r *EnrollmentRepo) Create(ctx context.Context, studentID, courseID string) (enrollmentssvc.Enrollment, error) {
	if r.pool == nil {
		return enrollmentssvc.Enrollment{}, fmt.Errorf("postgres pool is nil")
	}

	id := uuid.NewString()
	_, err := r.pool.Exec(ctx, `
INSERT INTO enrollments (id, student_id, course_id, created_at)
VALUES ($1, $2, $3, NOW())
`, id, studentID, courseID)
	if err != nil {
		if isUniqueViolation(err) {
			return enrollmentssvc.Enrollment{}, enrollmentssvc.ErrAlreadyEnrolled
		}
		if isForeignKeyViolation(err) {
			return enrollmentssvc.Enrollment{}, enrollmentssvc.ErrValidation
		}
		return enrollmentssvc.Enrollment{}, fmt.Errorf("create enrollment: %w", err)
	}

	return r.Get(ctx, id)
}

func (r *EnrollmentRepo) Delete(ctx context.Context, id string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return enrollmentssvc.ErrNotFound
	}

	return nil
}

func collectEnrollments(rows pgx.Rows) ([]enrollmentssvc.Enrollment, error) {
	enrollments := make([]enrollmentssvc.Enrollment, 0)
	for rows.Next() {
		enrollment, err := scanEnrollment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan enrollment row: %w", err)
		}
		enrollments = append(enrollments, enrollment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate enrollment rows: %w", err)
	}

	return enrollments, nil
}

func scanEnrollment(row pgx.Row) (enrollmentssvc.Enrollment, error) {
	var enrollment enrollmentssvc.Enrollment
	err := row.Scan(
		&enrollment.ID,
		&enrollment.Student.ID, &enrollment.Student.Name, &enrollment.Student.Email, &enrollment.Student.Role,
		&enrollment.Course.ID, &enrollment.Course.Title, &enrollment.Course.Status,
		&enrollment.CreatedAt,
	)
	if err != nil {
		return enrollmentssvc.Enrollment{}, err
	}

	return enrollment, nil
}
