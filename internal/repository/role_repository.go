package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/clothing-shop/internal/domain"
	"github.com/spec-kit/clothing-shop/internal/query"
)

// RoleSortFields maps external sort-field names to role table columns.
var RoleSortFields = map[string]string{
	"roleId":   "id",
	"roleName": "name",
}

// RoleRepository provides read access to the fixed role set.
type RoleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Role, error)
	List(ctx context.Context, spec query.Spec) ([]domain.Role, error)
}

type roleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository returns a Postgres-backed implementation.
func NewRoleRepository(pool *pgxpool.Pool) RoleRepository {
	return &roleRepository{pool: pool}
}

func (r *roleRepository) GetByID(ctx context.Context, id int64) (*domain.Role, error) {
	const q = `SELECT id, name FROM roles WHERE id=$1`

	var role domain.Role
	if err := r.pool.QueryRow(ctx, q, id).Scan(&role.ID, &role.Name); err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) List(ctx context.Context, spec query.Spec) ([]domain.Role, error) {
	builder := sq.Select("id", "name").
		From("roles").
		PlaceholderFormat(sq.Dollar)

	// stable page boundaries when no sort is requested
	if spec.SortField == "" {
		builder = builder.OrderBy("id ASC")
	}

	builder, err := query.ApplyToSelect(builder, spec, "name", RoleSortFields)
	if err != nil {
		return nil, err
	}

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := make([]domain.Role, 0)
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}
