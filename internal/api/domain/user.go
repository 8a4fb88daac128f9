package domain

import "time"

type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string  // bcrypt encoded
	AvatarURL    *string // nullable profile image
	RoleID       *string // Foreign key to roles table, nullable until assigned
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Author is the public projection of a user attached to posts and
// comments. It never carries credential material.
type Author struct {
	ID        string
	Username  string
	AvatarURL *string
}

func (u User) Author() Author {
	return Author{ID: u.ID, Username: u.Username, AvatarURL: u.AvatarURL}
}
