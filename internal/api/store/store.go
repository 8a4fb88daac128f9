package store

import (
	"context"
	"errors"

	"github.com/pixelfeedhq/pixelfeed/internal/api/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable.
type Store interface {
	Users() Users
	Posts() Posts
	Comments() Comments
	Follows() Follows
	Roles() Roles

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// ExistsByEmail reports whether a user with the email exists. It is a
	// fast pre-filter only; the users.email unique constraint is the
	// authoritative guarantee.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ExistsByUsername reports whether a user with the username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// A unique-constraint violation on email or username surfaces as
	// ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// GetAuthorsByIDs returns public author projections for the given ids,
	// keyed by user id. Missing ids are simply absent from the map.
	GetAuthorsByIDs(ctx context.Context, ids []string) (map[string]domain.Author, error)
}

type Posts interface {
	// CreatePost inserts a new post (id is ULID).
	CreatePost(ctx context.Context, p domain.Post) error

	// GetPostByID returns a post by id, without the author attached.
	GetPostByID(ctx context.Context, id string) (domain.Post, error)

	// ListPostsByAuthors returns posts by any of the given authors, newest
	// first, using limit/offset pagination.
	ListPostsByAuthors(ctx context.Context, authorIDs []string, limit, offset int) ([]domain.Post, error)
}

type Comments interface {
	// CreateComment inserts a new comment (id is ULID).
	CreateComment(ctx context.Context, c domain.Comment) error

	// ListCommentsByPost returns non-disabled comments for a post, oldest
	// first, using limit/offset pagination.
	ListCommentsByPost(ctx context.Context, postID string, limit, offset int) ([]domain.Comment, error)
}

type Follows interface {
	// CreateFollow records follower -> followee. Duplicate pairs surface
	// as ErrAlreadyExists.
	CreateFollow(ctx context.Context, f domain.Follow) error

	// DeleteFollow removes follower -> followee if present.
	DeleteFollow(ctx context.Context, followerID, followeeID string) error

	// ListFolloweeIDs returns the ids of everyone the follower watches.
	ListFolloweeIDs(ctx context.Context, followerID string) ([]string, error)
}

type Roles interface {
	// GetRoleByName returns a role by its unique name.
	GetRoleByName(ctx context.Context, name string) (domain.Role, error)

	// CreateRole inserts a new role (id is ULID).
	CreateRole(ctx context.Context, r domain.Role) error
}
