package domain

import "time"

type Post struct {
	ID        string
	AuthorID  string
	Body      *string // optional caption
	MediaURL  string  // public URL of the uploaded image
	CreatedAt time.Time

	// Author is populated by list queries that join the users table.
	Author *Author
}

type Comment struct {
	ID        string
	PostID    string
	AuthorID  string
	Body      string
	Disabled  bool
	CreatedAt time.Time

	Author *Author
}
