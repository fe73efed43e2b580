package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	mediasvc "github.com/ysfmrbt/skillwise/internal/services/media"
)

type MaterialRepo struct {
	pool *pgxpool.Pool
}

func NewMaterialRepo(pool *pgxpool.Pool) *MaterialRepo {
	return &MaterialRepo{pool: pool}
}

func (r *MaterialRepo) CreateMaterial(ctx context.Context, courseID, fileName, objectKey string) (mediasvc.MaterialRecord, error) {
	if r.pool == nil {
		return mediasvc.MaterialRecord{}, fmt.Errorf("postgres pool is nil")
	}

	var record mediasvc.MaterialRecord
	err := r.pool.QueryRow(ctx, `
INSERT INTO course_materials (id, course_id, file_name, object_key, created_at)
VALUES ($1, $2, $3, $4, NOW())
RETURNING id, course_id, file_name, object_key, created_at
`, uuid.NewString(), courseID, fileName, objectKey).
		Scan(&record.ID, &record.CourseID, &record.FileName, &record.ObjectKey, &record.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return mediasvc.MaterialRecord{}, mediasvc.ErrCourseNotFound
		}
		return mediasvc.MaterialRecord{}, fmt.Errorf("create material: %w", err)
	}

	return record, nil
}

func (r *MaterialRepo) ListMaterials(ctx context.Context, courseID string) ([]mediasvc.MaterialRecord, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, course_id, file_name, object_key, created_at
FROM course_materials
WHERE course_id = $1
ORDER BY created_at DESC
`, courseID)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()

	records := make([]mediasvc.MaterialRecord, 0)
	for rows.Next() {
		var record mediasvc.MaterialRecord
		if err := rows.Scan(&record.ID, &record.CourseID, &record.FileName, &record.ObjectKey, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan material row: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate material rows: %w", err)
	}

	return records, nil
}

func (r *MaterialRepo) GetMaterial(ctx context.Context, id string) (mediasvc.MaterialRecord, error) {
	if r.pool == nil {
		return mediasvc.MaterialRecord{}, fmt.Errorf("postgres pool is nil")
	}

	var record mediasvc.MaterialRecord
	err := r.pool.QueryRow(ctx, `
SELECT id, course_id, file_name, object_key, created_at
FROM course_materials
WHERE id = $1
`, id).Scan(&record.ID, &record.CourseID, &record.FileName, &record.ObjectKey, &record.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return mediasvc.MaterialRecord{}, mediasvc.ErrNotFound
		}
		return mediasvc.MaterialRecord{}, fmt.Errorf("get material: %w", err)
	}

	return record, nil
}

func (r *MaterialRepo) DeleteMaterial(ctx context.Context, id string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM course_materials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return mediasvc.ErrNotFound
	}

	return nil
}
