package model

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID        int64         `json:"id"`
	PostID    uuid.UUID     `json:"post_id"`
	Comment   string        `json:"comment"`
	Author    CommentAuthor `json:"author"`
	CreatedAt time.Time     `json:"created_at"`
}

// CommentAuthor is an owned snapshot of the author captured when the
// comment is written, not a reference into the users table. A comment
// keeps its author's name even after the account is gone.
type CommentAuthor struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
}
