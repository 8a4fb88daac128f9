package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pixelfeedhq/pixelfeed/internal/api/domain"
	"github.com/pixelfeedhq/pixelfeed/internal/api/media"
	"github.com/pixelfeedhq/pixelfeed/internal/api/store"
	"github.com/pixelfeedhq/pixelfeed/pkg/idx"
)

const (
	// FeedPageSize is the fixed number of posts per feed page.
	FeedPageSize = 10

	// MaxMediaBytes caps uploaded images at 5 MiB.
	MaxMediaBytes = 5 * 1024 * 1024

	// Comment pagination bounds for post detail.
	DefaultCommentsLimit = 20
	MaxCommentsLimit     = 50
)

var allowedMediaTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
}

var allowedMediaExts = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
}

// PostService owns post creation, the home feed and post detail.
type PostService struct {
	Store store.Store
	Media media.Store
}

// CreatePostInput is one upload: the image bytes plus an optional caption.
type CreatePostInput struct {
	AuthorID    string
	Body        *string
	Filename    string
	ContentType string
	Data        []byte
}

// CreatePost validates the upload, stores the image in the bucket and
// inserts the post row. Upload validation failures happen before any
// bucket call.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (domain.Post, error) {
	author, err := s.Store.Users().GetUserByID(ctx, in.AuthorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Post{}, ErrUserNotFound
		}
		return domain.Post{}, err
	}

	if _, ok := allowedMediaTypes[strings.ToLower(in.ContentType)]; !ok {
		return domain.Post{}, ErrUnsupportedMedia
	}

	// An extension-less filename is rejected, not defaulted from the
	// content type.
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(in.Filename), "."))
	if _, ok := allowedMediaExts[ext]; !ok {
		return domain.Post{}, ErrUnsupportedMedia
	}

	if len(in.Data) == 0 {
		return domain.Post{}, ErrUnsupportedMedia
	}
	if len(in.Data) > MaxMediaBytes {
		return domain.Post{}, ErrMediaTooLarge
	}

	// Object key: <authorID>/<random>.<ext>, so one user's uploads share a
	// prefix and names never collide.
	key := fmt.Sprintf("%s/%s.%s", in.AuthorID, strings.ReplaceAll(uuid.NewString(), "-", ""), ext)

	url, err := s.Media.Upload(ctx, key, in.ContentType, in.Data)
	if err != nil {
		return domain.Post{}, fmt.Errorf("upload media: %w", err)
	}

	post := domain.Post{
		ID:       idx.New().String(),
		AuthorID: in.AuthorID,
		Body:     in.Body,
		MediaURL: url,
	}
	if err := s.Store.Posts().CreatePost(ctx, post); err != nil {
		return domain.Post{}, err
	}

	created, err := s.Store.Posts().GetPostByID(ctx, post.ID)
	if err != nil {
		return domain.Post{}, err
	}
	a := author.Author()
	created.Author = &a
	return created, nil
}

// Feed returns one page of posts by the user and everyone they follow,
// newest first, with authors attached.
func (s *PostService) Feed(ctx context.Context, userID string, offset int) ([]domain.Post, error) {
	if offset < 0 {
		offset = 0
	}

	followeeIDs, err := s.Store.Follows().ListFolloweeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Own posts always appear in the feed; dedupe in case of self-follow.
	authorIDs := append([]string{userID}, followeeIDs...)
	authorIDs = dedupe(authorIDs)

	posts, err := s.Store.Posts().ListPostsByAuthors(ctx, authorIDs, FeedPageSize, offset)
	if err != nil {
		return nil, err
	}

	if err := s.attachAuthors(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// PostDetail returns the post, its author, and one page of its comments
// (oldest first, disabled ones filtered out by the store).
func (s *PostService) PostDetail(
	ctx context.Context,
	postID string,
	commentsLimit, commentsOffset int,
) (domain.Post, []domain.Comment, error) {
	if commentsLimit < 1 {
		commentsLimit = DefaultCommentsLimit
	}
	if commentsLimit > MaxCommentsLimit {
		commentsLimit = MaxCommentsLimit
	}
	if commentsOffset < 0 {
		commentsOffset = 0
	}

	post, err := s.Store.Posts().GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Post{}, nil, ErrPostNotFound
		}
		return domain.Post{}, nil, err
	}

	comments, err := s.Store.Comments().ListCommentsByPost(ctx, postID, commentsLimit, commentsOffset)
	if err != nil {
		return domain.Post{}, nil, err
	}

	// Batch-load authors for the post and all comments in one query.
	ids := make([]string, 0, len(comments)+1)
	ids = append(ids, post.AuthorID)
	for _, c := range comments {
		ids = append(ids, c.AuthorID)
	}
	authors, err := s.Store.Users().GetAuthorsByIDs(ctx, dedupe(ids))
	if err != nil {
		return domain.Post{}, nil, err
	}

	if a, ok := authors[post.AuthorID]; ok {
		post.Author = &a
	}
	for i := range comments {
		if a, ok := authors[comments[i].AuthorID]; ok {
			comments[i].Author = &a
		}
	}

	return post, comments, nil
}

// AddComment inserts a comment on an existing post.
func (s *PostService) AddComment(ctx context.Context, postID, authorID, body string) (domain.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return domain.Comment{}, &ValidationError{Fields: map[string]string{"body": "cannot be blank"}}
	}

	author, err := s.Store.Users().GetUserByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Comment{}, ErrUserNotFound
		}
		return domain.Comment{}, err
	}

	comment := domain.Comment{
		ID:        idx.New().String(),
		PostID:    postID,
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}

	// Existence check and insert share a transaction so the comment cannot
	// land on a post deleted in between.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Posts().GetPostByID(ctx, postID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrPostNotFound
			}
			return err
		}
		return tx.Comments().CreateComment(ctx, comment)
	})
	if err != nil {
		return domain.Comment{}, err
	}

	a := author.Author()
	comment.Author = &a
	return comment, nil
}

func (s *PostService) attachAuthors(ctx context.Context, posts []domain.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.AuthorID)
	}

	authors, err := s.Store.Users().GetAuthorsByIDs(ctx, dedupe(ids))
	if err != nil {
		return err
	}

	for i := range posts {
		if a, ok := authors[posts[i].AuthorID]; ok {
			posts[i].Author = &a
		}
	}
	return nil
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
