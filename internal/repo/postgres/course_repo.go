package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ysfmrbt/skillwise/internal/domain/enums"
	coursessvc "github.com/ysfmrbt/skillwise/internal/services/courses"
)

type CourseRepo struct {
	pool *pgxpool.Pool
}

func NewCourseRepo(pool *pgxpool.Pool) *CourseRepo {
	return &CourseRepo{pool: pool}
}

const courseSelect = `
SELECT c.id, c.title, c.description, c.status,
	u.id, u.name, u.email, u.role,
	cat.id, cat.name,
	(SELECT COUNT(*) FROM lessons l WHERE l.course_id = c.id),
	(SELECT COUNT(*) FROM enrollments e WHERE e.course_id = c.id),
	c.created_at, c.updated_at
FROM courses c
JOIN users u ON u.id = c.instructor_id
JOIN categories cat ON cat.id = c.category_id
`

func (r *CourseRepo) List(ctx context.Context) ([]coursessvc.Course, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, courseSelect+`ORDER BY c.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	courses := make([]coursessvc.Course, 0)
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan course row: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate course rows: %w", err)
	}

	return courses, nil
}

func (r *CourseRepo) Get(ctx context.Context, id string) (coursessvc.Course, error) {
	if r.pool == nil {
		return coursessvc.Course{}, fmt.Errorf("postgres pool is nil")
	}

	row := r.pool.QueryRow(ctx, courseSelect+`WHERE c.id = $1`, id)
	course, err := scanCourse(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return coursessvc.Course{}, coursessvc.ErrNotFound
		}
		return coursessvc.Course{}, fmt.Errorf("get course: %w", err)
	}

	return course, nil
}

func (r *CourseRepo) Create(ctx context.Context, record coursessvc.Record) (coursessvc.Course, error) {
	if r.pool == nil {
		return coursessvc.Course{}, fmt.Errorf("postgres pool is nil")
	}

	id := uuid.NewString()
	_, err := r.pool.Exec(ctx, `
INSERT INTO courses (id, title, description, status, instructor_id, category_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
`, id, record.Title, record.Description, string(record.Status), record.InstructorID, record.CategoryID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return coursessvc.Course{}, coursessvc.ErrValidation
		}
		return coursessvc.Course{}, fmt.Errorf("create course: %w", err)
	}

	return r.Get(ctx, id)
}

func (r *CourseRepo) Update(ctx context.Context, id string, update coursessvc.Update) (coursessvc.Course, error) {
	if r.pool == nil {
		return coursessvc.Course{}, fmt.Errorf("postgres pool is nil")
	}

	var status *string
	if update.Status != nil {
		value := string(*update.Status)
		status = &value
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE courses
SET title = COALESCE($2, title),
	description = COALESCE($3, description),
	status = COALESCE($4, status),
	instructor_id = COALESCE($5, instructor_id),
	category_id = COALESCE($6, category_id),
	updated_at = NOW()
WHERE id = $1
`, id, update.Title, update.Description, status, update.InstructorID, update.CategoryID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return coursessvc.Course{}, coursessvc.ErrValidation
		}
		return coursessvc.Course{}, fmt.Errorf("update course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return coursessvc.Course{}, coursessvc.ErrNotFound
	}

	return r.Get(ctx, id)
}

func (r *CourseRepo) Delete(ctx context.Context, id string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return coursessvc.ErrNotFound
	}

	return nil
}

func (r *CourseRepo) Exists(ctx context.Context, id string) (bool, error) {
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}

	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM courses WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check course exists: %w", err)
	}

	return exists, nil
}

func scanCourse(row pgx.Row) (coursessvc.Course, error) {
	var course coursessvc.Course
	var status string
	err := row.Scan(
		&course.ID, &course.Title, &course.Description, &status,
		&course.Instructor.ID, &course.Instructor.Name, &course.Instructor.Email, &course.Instructor.Role,
		&course.Category.ID, &course.Category.Name,
		&course.LessonCount, &course.EnrollmentCount,
		&course.CreatedAt, &course.UpdatedAt,
	)
	if err != nil {
		return coursessvc.Course{}, err
	}
	if parsed, ok := enums.ParseCourseStatus(status); ok {
		course.Status = parsed
	}

	return course, nil
}
