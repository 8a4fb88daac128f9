package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/pixelfeedhq/pixelfeed/internal/api/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, email, username, password_hash, avatar_url, role_id, created_at, updated_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM users WHERE email = ?`, email).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *usersRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM users WHERE username = ?`, username).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := formatTime(time.Now())
	createdAt := now
	if !u.CreatedAt.IsZero() {
		createdAt = formatTime(u.CreatedAt)
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, username, password_hash, avatar_url, role_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID,
		u.Email,
		u.Username,
		u.PasswordHash,
		mapOptionalString(u.AvatarURL),
		mapOptionalString(u.RoleID),
		createdAt,
		now,
	)
	return mapConstraint(err)
}

func (r *usersRepo) GetAuthorsByIDs(ctx context.Context, ids []string) (map[string]domain.Author, error) {
	authors := make(map[string]domain.Author, len(ids))
	if len(ids) == 0 {
		return authors, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, username, avatar_url FROM users WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var a domain.Author
		var avatar sql.NullString
		if err := rows.Scan(&a.ID, &a.Username, &avatar); err != nil {
			return nil, err
		}
		a.AvatarURL = mapNullStringPtr(avatar)
		authors[a.ID] = a
	}
	return authors, rows.Err()
}

func scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	var avatar, roleID sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.PasswordHash,
		&avatar,
		&roleID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.AvatarURL = mapNullStringPtr(avatar)
	u.RoleID = mapNullStringPtr(roleID)
	u.CreatedAt = parseTime(createdAt)
	u.UpdatedAt = parseTime(updatedAt)
	return u, nil
}
