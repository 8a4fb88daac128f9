package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pixelfeedhq/pixelfeed/internal/api/domain"
)

type rolesRepo struct {
	db dbtx
}

func (r *rolesRepo) GetRoleByName(ctx context.Context, name string) (domain.Role, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM roles WHERE name = ?`, name)
	return scanRole(row)
}

func (r *rolesRepo) CreateRole(ctx context.Context, role domain.Role) error {
	createdAt := role.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO roles (id, name, created_at) VALUES (?, ?, ?)`,
		role.ID, role.Name, formatTime(createdAt))
	return mapConstraint(err)
}

func scanRole(row *sql.Row) (domain.Role, error) {
	var role domain.Role
	var createdAt string
	if err := row.Scan(&role.ID, &role.Name, &createdAt); err != nil {
		return domain.Role{}, mapNotFound(err)
	}
	role.CreatedAt = parseTime(createdAt)
	return role, nil
}
