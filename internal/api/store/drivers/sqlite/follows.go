package sqlite

import (
	"context"
	"time"

	"github.com/pixelfeedhq/pixelfeed/internal/api/domain"
)

type followsRepo struct {
	db dbtx
}

func (r *followsRepo) CreateFollow(ctx context.Context, f domain.Follow) error {
	createdAt := f.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO follows (follower_id, followee_id, created_at) VALUES (?, ?, ?)`,
		f.FollowerID, f.FolloweeID, formatTime(createdAt))
	return mapConstraint(err)
}

func (r *followsRepo) DeleteFollow(ctx context.Context, followerID, followeeID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = ? AND followee_id = ?`,
		followerID, followeeID)
	return err
}

func (r *followsRepo) ListFolloweeIDs(ctx context.Context, followerID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT followee_id FROM follows WHERE follower_id = ?`, followerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
