package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/clothing-shop/internal/domain"
)

// ErrUsernameTaken reports a violated uniqueness guarantee on the login name.
var ErrUsernameTaken = errors.New("username already taken")

// UserRepository defines persistence access for shop accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `u.id, u.username, u.password_hash, u.full_name, u.gender,
        u.date_of_birth, u.address, u.phone, u.email, u.avatar,
        u.role_id, r.name, u.deactivated, u.created_at, u.updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (username, password_hash, full_name, gender, date_of_birth,
                           address, phone, email, avatar, role_id, deactivated)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		user.Username,
		user.PasswordHash,
		user.FullName,
		user.Gender,
		user.DateOfBirth,
		user.Address,
		user.Phone,
		user.Email,
		user.Avatar,
		user.RoleID,
		user.Deactivated,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET password_hash=$1, full_name=$2, gender=$3, date_of_birth=$4,
               address=$5, phone=$6, email=$7, avatar=$8, deactivated=$9, updated_at=NOW()
        WHERE id=$10`

	cmd, err := r.pool.Exec(ctx, query,
		user.PasswordHash,
		user.FullName,
		user.Gender,
		user.DateOfBirth,
		user.Address,
		user.Phone,
		user.Email,
		user.Avatar,
		user.Deactivated,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users u JOIN roles r ON r.id = u.role_id
        WHERE u.id=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users u JOIN roles r ON r.id = u.role_id
        WHERE u.username=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, username))
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users u JOIN roles r ON r.id = u.role_id
        ORDER BY u.id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var user domain.User
		if err := scanUser(rows.Scan, &user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *userRepository) scanOne(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := scanUser(row.Scan, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func scanUser(scan func(...any) error, user *domain.User) error {
	return scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.FullName,
		&user.Gender,
		&user.DateOfBirth,
		&user.Address,
		&user.Phone,
		&user.Email,
		&user.Avatar,
		&user.RoleID,
		&user.RoleName,
		&user.Deactivated,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}
