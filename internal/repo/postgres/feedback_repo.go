package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	feedbacksvc "github.com/ysfmrbt/skillwise/internal/services/feedback"
)

type FeedbackRepo struct {
	pool *pgxpool.Pool
}

func NewFeedbackRepo(pool *pgxpool.Pool) *FeedbackRepo {
	return &FeedbackRepo{pool: pool}
}

const feedbackSelect = `
SELECT f.id, f.rating, f.comment,
	u.id, u.name, u.email,
	c.id, c.title,
	f.created_at, f.updated_at
FROM feedback f
JOIN users u ON u.id = f.student_id
JOIN courses c ON c.id = f.course_id
`

func (r *FeedbackRepo) List(ctx context.Context) ([]feedbacksvc.Feedback, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, feedbackSelect+`ORDER BY f.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	return collectFeedback(rows)
}

func (r *FeedbackRepo) ListByStudent(ctx context.Context, studentID string) ([]feedbacksvc.Feedback, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, feedbackSelect+`WHERE f.student_id = $1 ORDER BY f.created_at DESC`, studentID)
	if err != nil {
		return nil, fmt.Errorf("list feedback by student: %w", err)
	}
	defer rows.Close()

	return collectFeedback(rows)
}

func (r *FeedbackRepo) ListByCourse(ctx context.Context, courseID string) ([]feedbacksvc.Feedback, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, feedbackSelect+`WHERE f.course_id = $1 ORDER BY f.created_at DESC`, courseID)
	if err != nil {
		return nil, fmt.Errorf("list feedback by course: %w", err)
	}
	defer rows.Close()

	return collectFeedback(rows)
}

func (r *FeedbackRepo) Get(ctx context.Context, id string) (feedbacksvc.Feedback, error) {
	if r.pool == nil {
		return feedbacksvc.Feedback{}, fmt.Errorf("postgres pool is nil")
	}

	feedback, err := scanFeedback(r.pool.QueryRow(ctx, feedbackSelect+`WHERE f.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return feedbacksvc.Feedback{}, feedbacksvc.ErrNotFound
		}
		return feedbacksvc.Feedback{}, fmt.Errorf("get feedback: %w", err)
	}

	return feedback, nil
}

func (r *FeedbackRepo) Create(ctx context.Context, studentID, courseID string, rating int, comment string) (feedbacksvc.Feedback, error) {
	if r.pool == nil {
		return feedbacksvc.Feedback{}, fmt.Errorf("postgres pool is nil")
	}

	id := uuid.NewString()
	_, err := r.pool.Exec(ctx, `
INSERT INTO feedback (id, student_id, course_id, rating, comment, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
`, id, studentID, courseID, rating, comment)
	if err != nil {
		if isUniqueViolation(err) {
			return feedbacksvc.Feedback{}, feedbacksvc.ErrAlreadyLeft
		}
		if isForeignKeyViolation(err) {
			return feedbacksvc.Feedback{}, feedbacksvc.ErrValidation
		}
		return feedbacksvc.Feedback{}, fmt.Errorf("create feedback: %w", err)
	}

	return r.Get(ctx, id)
}

func (r *FeedbackRepo) Update(ctx context.Context, id string, update feedbacksvc.Update) (feedbacksvc.Feedback, error) {
	if r.pool == nil {
		return feedbacksvc.Feedback{}, fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE feedback
SET rating = COALESCE($2, rating),
	comment = COALESCE($3, comment),
	updated_at = NOW()
WHERE id = $1
`, id, update.Rating, update.Comment)
	if err != nil {
		return feedbacksvc.Feedback{}, fmt.Errorf("update feedback: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return feedbacksvc.Feedback{}, feedbacksvc.ErrNotFound
	}

	return r.Get(ctx, id)
}

func (r *FeedbackRepo) Delete(ctx context.Context, id string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM feedback WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete feedback: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return feedbacksvc.ErrNotFound
	}

	return nil
}

func (r *FeedbackRepo) RatingsByCourse(ctx context.Context, courseID string) ([]int, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `SELECT rating FROM feedback WHERE course_id = $1`, courseID)
	if err != nil {
		return nil, fmt.Errorf("list course ratings: %w", err)
	}
	defer rows.Close()

	ratings := make([]int, 0)
	for rows.Next() {
		var rating int
		if err := rows.Scan(&rating); err != nil {
			return nil, fmt.Errorf("scan rating row: %w", err)
		}
		ratings = append(ratings, rating)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rating rows: %w", err)
	}

	return ratings, nil
}

func collectFeedback(rows pgx.Rows) ([]feedbacksvc.Feedback, error) {
	items := make([]feedbacksvc.Feedback, 0)
	for rows.Next() {
		feedback, err := scanFeedback(rows)
		if err != nil {
			return nil, fmt.Errorf("scan feedback row: %w", err)
		}
		items = append(items, feedback)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feedback rows: %w", err)
	}

	return items, nil
}

func scanFeedback(row pgx.Row) (feedbacksvc.Feedback, error) {
	var feedback feedbacksvc.Feedback
	err := row.Scan(
		&feedback.ID, &feedback.Rating, &feedback.Comment,
		&feedback.Student.ID, &feedback.Student.Name, &feedback.Student.Email,
		&feedback.Course.ID, &feedback.Course.Title,
		&feedback.CreatedAt, &feedback.UpdatedAt,
	)
	if err != nil {
		return feedbacksvc.Feedback{}, err
	}

	return feedback, nil
}
