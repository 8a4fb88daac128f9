package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/pixelfeedhq/pixelfeed/internal/api/domain"
)

type postsRepo struct {
	db dbtx
}

func (r *postsRepo) CreatePost(ctx context.Context, p domain.Post) error {
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (id, author_id, body, media_url, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		p.ID,
		p.AuthorID,
		mapOptionalString(p.Body),
		p.MediaURL,
		formatTime(createdAt),
	)
	return mapConstraint(err)
}

func (r *postsRepo) GetPostByID(ctx context.Context, id string) (domain.Post, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, author_id, body, media_url, created_at FROM posts WHERE id = ?`, id)

	var p domain.Post
	var body sql.NullString
	var createdAt string
	if err := row.Scan(&p.ID, &p.AuthorID, &body, &p.MediaURL, &createdAt); err != nil {
		return domain.Post{}, mapNotFound(err)
	}
	p.Body = mapNullStringPtr(body)
	p.CreatedAt = parseTime(createdAt)
	return p, nil
}

func (r *postsRepo) ListPostsByAuthors(
	ctx context.Context,
	authorIDs []string,
	limit, offset int,
) ([]domain.Post, error) {
	if len(authorIDs) == 0 {
		return []domain.Post{}, nil
	}

	args := make([]any, 0, len(authorIDs)+2)
	for _, id := range authorIDs {
		args = append(args, id)
	}
	args = append(args, limit, offset)
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(authorIDs)), ",")

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, author_id, body, media_url, created_at
		 FROM posts
		 WHERE author_id IN (`+placeholders+`)
		 ORDER BY created_at DESC, id DESC
		 LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		var p domain.Post
		var body sql.NullString
		var createdAt string
		if err := rows.Scan(&p.ID, &p.AuthorID, &body, &p.MediaURL, &createdAt); err != nil {
			return nil, err
		}
		p.Body = mapNullStringPtr(body)
		p.CreatedAt = parseTime(createdAt)
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
