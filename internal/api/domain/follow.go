package domain

import "time"

// Follow records that follower watches followee's posts. The pair is the
// primary key; following someone twice is a no-op at the store level.
type Follow struct {
	FollowerID string
	FolloweeID string
	CreatedAt  time.Time
}
