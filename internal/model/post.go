package model

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        uuid.UUID   `json:"id"`
	AuthorID  uuid.UUID   `json:"author_id"`
	Message   string      `json:"message"`
	Like      int64       `json:"like"`
	LikedBy   []uuid.UUID `json:"liked_by"`
	Comments  []*Comment  `json:"comments"`
	CreatedAt time.Time   `json:"created_at"`
}

// IsLikedBy reports whether userID is in the post's liker set. The set
// invariant itself is enforced by the store's conditional update; this
// helper is for reads only.
func (p *Post) IsLikedBy(userID uuid.UUID) bool {
	for _, id := range p.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}
