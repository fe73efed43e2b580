package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	authsvc "github.com/ysfmrbt/skillwise/internal/services/auth"
	userssvc "github.com/ysfmrbt/skillwise/internal/services/users"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// FindByEmail implements the credential-store side used by the auth service.
// It is the only read that surfaces the password hash.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (authsvc.UserRecord, error) {
	if r.pool == nil {
		return authsvc.UserRecord{}, fmt.Errorf("postgres pool is nil")
	}

	var user authsvc.UserRecord
	err := r.pool.QueryRow(ctx, `
SELECT id, email, name, password_hash, role
FROM users
WHERE email = $1
`, email).Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return authsvc.UserRecord{}, authsvc.ErrUserNotFound
		}
		return authsvc.UserRecord{}, fmt.Errorf("find user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (authsvc.UserRecord, error) {
	if r.pool == nil {
		return authsvc.UserRecord{}, fmt.Errorf("postgres pool is nil")
	}

	var user authsvc.UserRecord
	err := r.pool.QueryRow(ctx, `
SELECT id, email, name, password_hash, role
FROM users
WHERE id = $1
`, id).Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return authsvc.UserRecord{}, authsvc.ErrUserNotFound
		}
		return authsvc.UserRecord{}, fmt.Errorf("find user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepo) CreateUser(ctx context.Context, user authsvc.UserRecord) (authsvc.UserRecord, error) {
	if r.pool == nil {
		return authsvc.UserRecord{}, fmt.Errorf("postgres pool is nil")
	}

	created := user
	created.ID = uuid.NewString()

	_, err := r.pool.Exec(ctx, `
INSERT INTO users (id, email, name, password_hash, role, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
`, created.ID, created.Email, created.Name, created.PasswordHash, created.Role)
	if err != nil {
		if isUniqueViolation(err) {
			return authsvc.UserRecord{}, authsvc.ErrEmailTaken
		}
		return authsvc.UserRecord{}, fmt.Errorf("create user: %w", err)
	}

	return created, nil
}

// The remaining methods serve the admin users service and never expose the
// password hash.

func (r *UserRepo) List(ctx context.Context, filter userssvc.Filter) ([]userssvc.User, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	query := `
SELECT id, email, name, role, created_at, updated_at
FROM users
`
	var (
		conds []string
		args  []interface{}
	)
	if filter.Role != "" {
		args = append(args, string(filter.Role))
		conds = append(conds, fmt.Sprintf("role = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d)", len(args), len(args)))
	}
	if len(conds) > 0 {
		query += "WHERE " + strings.Join(conds, " AND ") + "\n"
	}
	query += "ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

func (r *UserRepo) Get(ctx context.Context, id string) (userssvc.User, error) {
	if r.pool == nil {
		return userssvc.User{}, fmt.Errorf("postgres pool is nil")
	}

	var user userssvc.User
	err := r.pool.QueryRow(ctx, `
SELECT id, email, name, role, created_at, updated_at
FROM users
WHERE id = $1
`, id).Scan(&user.ID, &user.Email, &user.Name, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return userssvc.User{}, userssvc.ErrNotFound
		}
		return userssvc.User{}, fmt.Errorf("get user: %w", err)
	}

	return user, nil
}

func (r *UserRepo) Create(ctx context.Context, email, name, passwordHash, role string) (userssvc.User, error) {
	if r.pool == nil {
		return userssvc.User{}, fmt.Errorf("postgres pool is nil")
	}

	var user userssvc.User
	err := r.pool.QueryRow(ctx, `
INSERT INTO users (id, email, name, password_hash, role, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
RETURNING id, email, name, role, created_at, updated_at
`, uuid.NewString(), email, name, passwordHash, role).
		Scan(&user.ID, &user.Email, &user.Name, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return userssvc.User{}, userssvc.ErrEmailTaken
		}
		return userssvc.User{}, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (r *UserRepo) Update(ctx context.Context, id string, update userssvc.Update) (userssvc.User, error) {
	if r.pool == nil {
		return userssvc.User{}, fmt.Errorf("postgres pool is nil")
	}

	var user userssvc.User
	err := r.pool.QueryRow(ctx, `
UPDATE users
SET email = COALESCE($2, email),
	name = COALESCE($3, name),
	password_hash = COALESCE($4, password_hash),
	updated_at = NOW()
WHERE id = $1
RETURNING id, email, name, role, created_at, updated_at
`, id, update.Email, update.Name, update.PasswordHash).
		Scan(&user.ID, &user.Email, &user.Name, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return userssvc.User{}, userssvc.ErrNotFound
		}
		if isUniqueViolation(err) {
			return userssvc.User{}, userssvc.ErrEmailTaken
		}
		return userssvc.User{}, fmt.Errorf("update user: %w", err)
	}

	return user, nil
}

func (r *UserRepo) UpdateRole(ctx context.Context, id, role string) (userssvc.User, error) {
	if r.pool == nil {
		return userssvc.User{}, fmt.Errorf("postgres pool is nil")
	}

	var user userssvc.User
	err := r.pool.QueryRow(ctx, `
UPDATE users
SET role = $2, updated_at = NOW()
WHERE id = $1
RETURNING id, email, name, role, created_at, updated_at
`, id, role).Scan(&user.ID, &user.Email, &user.Name, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return userssvc.User{}, userssvc.ErrNotFound
		}
		return userssvc.User{}, fmt.Errorf("update user role: %w", err)
	}

	return user, nil
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return userssvc.ErrInUse
		}
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return userssvc.ErrNotFound
	}

	return nil
}

func (r *UserRepo) ListByRole(ctx context.Context, role string) ([]userssvc.User, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, email, name, role, created_at, updated_at
FROM users
WHERE role = $1
ORDER BY created_at DESC
`, role)
	if err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

// FindRole backs instructor checks in the courses service.
func (r *UserRepo) FindRole(ctx context.Context, id string) (string, bool, error) {
	if r.pool == nil {
		return "", false, fmt.Errorf("postgres pool is nil")
	}

	var role string
	err := r.pool.QueryRow(ctx, `SELECT role FROM users WHERE id = $1`, id).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get user role: %w", err)
	}

	return role, true, nil
}

func scanUsers(rows pgx.Rows) ([]userssvc.User, error) {
	users := make([]userssvc.User, 0)
	for rows.Next() {
		var user userssvc.User
		if err := rows.Scan(&user.ID, &user.Email, &user.Name, &user.Role, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}

	return users, nil
}
