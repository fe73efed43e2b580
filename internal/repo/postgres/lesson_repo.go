package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ysfmrbt/skillwise/internal/domain/enums"
	lessonssvc "github.com/ysfmrbt/skillwise/internal/services/lessons"
)

type LessonRepo struct {
	pool *pgxpool.Pool
}

func NewLessonRepo(pool *pgxpool.Pool) *LessonRepo {
	return &LessonRepo{pool: pool}
}

const lessonSelect = `
SELECT l.id, l.title, l.content, l.type, c.id, c.title, l.created_at, l.updated_at
FROM lessons l
JOIN courses c ON c.id = l.course_id
`

func (r *LessonRepo) List(ctx context.Context) ([]lessonssvc.Lesson, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, lessonSelect+`ORDER BY l.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	defer rows.Close()

	return collectLessons(rows)
}

func (r *LessonRepo) ListByCourse(ctx context.Context, courseID string) ([]lessonssvc.Lesson, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, lessonSelect+`WHERE l.course_id = $1 ORDER BY l.created_at`, courseID)
	if err != nil {
		return nil, fmt.Errorf("list lessons by course: %w", err)
	}
	defer rows.Close()

	return collectLessons(rows)
}

func (r *LessonRepo) Get(ctx context.Context, id string) (lessonssvc.Lesson, error) {
	if r.pool == nil {
		return lessonssvc.Lesson{}, fmt.Errorf("postgres pool is nil")
	}

	lesson, err := scanLesson(r.pool.QueryRow(ctx, lessonSelect+`WHERE l.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return lessonssvc.Lesson{}, lessonssvc.ErrNotFound
		}
		return lessonssvc.Lesson{}, fmt.Errorf("get lesson: %w", err)
	}

	return lesson, nil
}

func (r *LessonRepo) Create(ctx context.Context, record lessonssvc.Record) (lessonssvc.Lesson, error) {
	if r.pool == nil {
		return lessonssvc.Lesson{}, fmt.Errorf("postgres pool is nil")
	}

	id := uuid.NewString()
	_, err := r.pool.Exec(ctx, `
INSERT INTO lessons (id, title, content, type, course_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
`, id, record.Title, record.Content, string(record.Type), record.CourseID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return lessonssvc.Lesson{}, lessonssvc.ErrCourseNotFound
		}
		return lessonssvc.Lesson{}, fmt.Errorf("create lesson: %w", err)
	}

	return r.Get(ctx, id)
}

func (r *LessonRepo) Update(ctx context.Context, id string, update lessonssvc.Update) (lessonssvc.Lesson, error) {
	if r.pool == nil {
		return lessonssvc.Lesson{}, fmt.Errorf("postgres pool is nil")
	}

	var lessonType *string
	if update.Type != nil {
		value := string(*update.Type)
		lessonType = &value
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE lessons
SET title = COALESCE($2, title),
	content = COALESCE($3, content),
	type = COALESCE($4, type),
	updated_at = NOW()
WHERE id = $1
`, id, update.Title, update.Content, lessonType)
	if err != nil {
		return lessonssvc.Lesson{}, fmt.Errorf("update lesson: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return lessonssvc.Lesson{}, lessonssvc.ErrNotFound
	}

	return r.Get(ctx, id)
}

func (r *LessonRepo) Delete(ctx context.Context, id string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return lessonssvc.ErrNotFound
	}

	return nil
}

func collectLessons(rows pgx.Rows) ([]lessonssvc.Lesson, error) {
	lessons := make([]lessonssvc.Lesson, 0)
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lesson row: %w", err)
		}
		lessons = append(lessons, lesson)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lesson rows: %w", err)
	}

	return lessons, nil
}

func scanLesson(row pgx.Row) (lessonssvc.Lesson, error) {
	var lesson lessonssvc.Lesson
	var lessonType string
	err := row.Scan(
		&lesson.ID, &lesson.Title, &lesson.Content, &lessonType,
		&lesson.Course.ID, &lesson.Course.Title,
		&lesson.CreatedAt, &lesson.UpdatedAt,
	)
	if err != nil {
		return lessonssvc.Lesson{}, err
	}
	if parsed, ok := enums.ParseLessonType(lessonType); ok {
		lesson.Type = parsed
	}

	return lesson, nil
}
