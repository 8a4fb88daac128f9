package domain

import "time"

// Role is a passthrough identifier only. The API does not interpret role
// names beyond returning them on the identity projection.
type Role struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
