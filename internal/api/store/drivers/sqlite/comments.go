package sqlite

import (
	"context"
	"time"

	"github.com/pixelfeedhq/pixelfeed/internal/api/domain"
)

type commentsRepo struct {
	db dbtx
}

func (r *commentsRepo) CreateComment(ctx context.Context, c domain.Comment) error {
	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	disabled := 0
	if c.Disabled {
		disabled = 1
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (id, post_id, author_id, body, disabled, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID,
		c.PostID,
		c.AuthorID,
		c.Body,
		disabled,
		formatTime(createdAt),
	)
	return mapConstraint(err)
}

func (r *commentsRepo) ListCommentsByPost(
	ctx context.Context,
	postID string,
	limit, offset int,
) ([]domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, post_id, author_id, body, disabled, created_at
		 FROM comments
		 WHERE post_id = ? AND disabled = 0
		 ORDER BY created_at ASC, id ASC
		 LIMIT ? OFFSET ?`,
		postID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		var c domain.Comment
		var disabled int
		var createdAt string
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Body, &disabled, &createdAt); err != nil {
			return nil, err
		}
		c.Disabled = disabled != 0
		c.CreatedAt = parseTime(createdAt)
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
