package service

import (
	"context"
	"errors"

	"github.com/pixelfeedhq/pixelfeed/internal/api/domain"
	"github.com/pixelfeedhq/pixelfeed/internal/api/store"
)

// UserService covers profile lookup and the follow graph.
type UserService struct {
	Store store.Store
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// Follow records follower watching followee. Following yourself is
// rejected; following someone twice is idempotent.
func (s *UserService) Follow(ctx context.Context, followerID, followeeID string) error {
	if followerID == followeeID {
		return &ValidationError{Fields: map[string]string{"user_id": "cannot follow yourself"}}
	}

	if _, err := s.Store.Users().GetUserByID(ctx, followeeID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	err := s.Store.Follows().CreateFollow(ctx, domain.Follow{
		FollowerID: followerID,
		FolloweeID: followeeID,
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		return nil
	}
	return err
}

// Unfollow removes the follow edge if present.
func (s *UserService) Unfollow(ctx context.Context, followerID, followeeID string) error {
	return s.Store.Follows().DeleteFollow(ctx, followerID, followeeID)
}
