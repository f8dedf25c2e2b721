package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mmeshcher/markethub-system/internal/model"
)

// CreateUser создаёт нового пользователя и возвращает его идентификатор.
func (r *PostgresRepository) CreateUser(ctx context.Context, u *model.User) (string, error) {
	id := uuid.NewString()

	details := u.ProfileDetails
	if details == nil {
		details = map[string]string{}
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, role, is_verified, status, profile_details)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, u.Name, u.Email, u.PasswordHash, string(u.Role), u.IsVerified, string(u.Status), details,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return "", fmt.Errorf("%w: %s", ErrEmailTaken, u.Email)
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	return id, nil
}

const userColumns = `id, name, email, password_hash, role, is_verified, status, profile_details, created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	var role, status string

	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.IsVerified, &status, &u.ProfileDetails, &u.CreatedAt)
	if err != nil {
		return nil, err
	}

	u.Role = model.Role(role)
	u.Status = model.AccountStatus(status)
	return &u, nil
}

// GetUserByEmail возвращает пользователя по email.
func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email,
	)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return u, nil
}

// GetUserByID возвращает пользователя по идентификатору.
func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id,
	)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return u, nil
}

// ListUsers возвращает всех пользователей.
func (r *PostgresRepository) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	var res []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		res = append(res, *u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

// UpdateProfile обновляет имя и детали профиля пользователя.
func (r *PostgresRepository) UpdateProfile(ctx context.Context, id, name string, details map[string]string) error {
	if details == nil {
		details = map[string]string{}
	}

	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE users SET name = $2, profile_details = $3 WHERE id = $1`,
		id, name, details,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdateUser обновляет изменяемые администратором поля пользователя.
func (r *PostgresRepository) UpdateUser(ctx context.Context, id, name, email string, role model.Role, isVerified bool) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE users SET name = $2, email = $3, role = $4, is_verified = $5 WHERE id = $1`,
		id, name, email, string(role), isVerified,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%w: %s", ErrEmailTaken, email)
		}
		return fmt.Errorf("update user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// DeleteUser удаляет пользователя.
func (r *PostgresRepository) DeleteUser(ctx context.Context, id string) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// SetUserVerified отмечает email пользователя подтверждённым.
func (r *PostgresRepository) SetUserVerified(ctx context.Context, id string) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE users SET is_verified = TRUE WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("set user verified: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// SetUserModeration устанавливает флаг подтверждения и статус модерации пользователя.
func (r *PostgresRepository) SetUserModeration(ctx context.Context, id string, isVerified bool, status model.AccountStatus) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE users SET is_verified = $2, status = $3 WHERE id = $1`,
		id, isVerified, string(status),
	)
	if err != nil {
		return fmt.Errorf("set user moderation: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}
