package postgres

import (
	"context"

	"github.com/acebook/feed-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type User interface {
	Create(ctx context.Context, user model.User) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	// Delete removes the user and cascades to every post and comment the
	// user authored, in a single transaction. Returns the ids of the
	// deleted posts so callers can drop their cache keys, and
	// pgx.ErrNoRows when the user row is already gone.
	Delete(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)
}

type Post interface {
	Create(ctx context.Context, post model.Post) (*model.Post, error)
	FindAll(ctx context.Context) ([]*model.Post, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	// AddLike atomically appends userID to the liker set and increments the
	// like count iff userID is not already a member. liked reports whether
	// the row was updated; a false result with an existing post means the
	// user had already liked it.
	AddLike(ctx context.Context, postID uuid.UUID, userID uuid.UUID) (liked bool, err error)
	// RemoveLike is the converse: decrement and remove iff member. A false
	// result with an existing post is a no-op unlike.
	RemoveLike(ctx context.Context, postID uuid.UUID, userID uuid.UUID) (removed bool, err error)
	AddComment(ctx context.Context, comment model.Comment) (*model.Comment, error)
}

type PostgresRepository struct {
	User
	Post
}

func New(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		User: newUserRepo(db),
		Post: newPostRepo(db),
	}
}
