package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	categoriessvc "github.com/ysfmrbt/skillwise/internal/services/categories"
)

type CategoryRepo struct {
	pool *pgxpool.Pool
}

func NewCategoryRepo(pool *pgxpool.Pool) *CategoryRepo {
	return &CategoryRepo{pool: pool}
}

func (r *CategoryRepo) List(ctx context.Context) ([]categoriessvc.Category, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, name, created_at, updated_at
FROM categories
ORDER BY name
`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]categoriessvc.Category, 0)
	for rows.Next() {
		var category categoriessvc.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.CreatedAt, &category.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category rows: %w", err)
	}

	return categories, nil
}

func (r *CategoryRepo) Get(ctx context.Context, id string) (categoriessvc.Category, error) {
	if r.pool == nil {
		return categoriessvc.Category{}, fmt.Errorf("postgres pool is nil")
	}

	var category categoriessvc.Category
	err := r.pool.QueryRow(ctx, `
SELECT id, name, created_at, updated_at
FROM categories
WHERE id = $1
`, id).Scan(&category.ID, &category.Name, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return categoriessvc.Category{}, categoriessvc.ErrNotFound
		}
		return categoriessvc.Category{}, fmt.Errorf("get category: %w", err)
	}

	return category, nil
}

func (r *CategoryRepo) Create(ctx context.Context, name string) (categoriessvc.Category, error) {
	if r.pool == nil {
		return categoriessvc.Category{}, fmt.Errorf("postgres pool is nil")
	}

	var category categoriessvc.Category
	err := r.pool.QueryRow(ctx, `
INSERT INTO categories (id, name, created_at, updated_at)
VALUES ($1, $2, NOW(), NOW())
RETURNING id, name, created_at, updated_at
`, uuid.NewString(), name).
		Scan(&category.ID, &category.Name, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return categoriessvc.Category{}, categoriessvc.ErrNameTaken
		}
		return categoriessvc.Category{}, fmt.Errorf("create category: %w", err)
	}

	return category, nil
}

func (r *CategoryRepo) Update(ctx context.Context, id, name string) (categoriessvc.Category, error) {
	if r.pool == nil {
		return categoriessvc.Category{}, fmt.Errorf("postgres pool is nil")
	}

	var category categoriessvc.Category
	err := r.pool.QueryRow(ctx, `
UPDATE categories
SET name = $2, updated_at = NOW()
WHERE id = $1
RETURNING id, name, created_at, updated_at
`, id, name).Scan(&category.ID, &category.Name, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return categoriessvc.Category{}, categoriessvc.ErrNotFound
		}
		if isUniqueViolation(err) {
			return categoriessvc.Category{}, categoriessvc.ErrNameTaken
		}
		return categoriessvc.Category{}, fmt.Errorf("update category: %w", err)
	}

	return category, nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return categoriessvc.ErrInUse
		}
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return categoriessvc.ErrNotFound
	}

	return nil
}

// Exists backs category reference checks in the courses service.
func (r *CategoryRepo) Exists(ctx context.Context, id string) (bool, error) {
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}

	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check category exists: %w", err)
	}

	return exists, nil
}
