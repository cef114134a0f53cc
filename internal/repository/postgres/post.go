package postgres

import (
	"context"
	"time"

	"github.com/acebook/feed-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postRepo struct {
	db *pgxpool.Pool
}

func newPostRepo(db *pgxpool.Pool) Post {
	return &postRepo{
		db: db,
	}
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	post.ID = uuid.New()
	post.Like = 0
	post.LikedBy = []uuid.UUID{}
	post.CreatedAt = time.Now()
	if _, err := r.db.Exec(
		ctx,
		"INSERT INTO posts(id, author_id, message, likes, liked_by, created_at) VALUES($1, $2, $3, $4, $5, $6)",
		post.ID,
		post.AuthorID,
		post.Message,
		post.Like,
		post.LikedBy,
		post.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &post, nil
}

const postColumns = `
	p.id, p.author_id, p.message, p.likes, p.liked_by, p.created_at,
	c.id, c.comment, c.author_id, c.author_name, c.author_first_name, c.author_last_name, c.created_at`

func (r *postRepo) FindAll(ctx context.Context) ([]*model.Post, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT`+postColumns+`
		FROM posts p
		LEFT JOIN comments c ON p.id = c.post_id
		ORDER BY p.created_at DESC, c.created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

func (r *postRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT`+postColumns+`
		FROM posts p
		LEFT JOIN comments c ON p.id = c.post_id
		WHERE p.id = $1
		ORDER BY c.created_at ASC`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts, err := scanPosts(rows)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, pgx.ErrNoRows
	}

	return posts[0], nil
}

// scanPosts folds the post-comment join back into posts with embedded
// comments, preserving the row order of the first occurrence of each post.
func scanPosts(rows pgx.Rows) ([]*model.Post, error) {
	postMap := make(map[uuid.UUID]*model.Post)
	posts := []*model.Post{}

	for rows.Next() {
		var (
			p               model.Post
			commentID       *int64
			commentText     *string
			authorID        *uuid.UUID
			authorName      *string
			authorFirstName *string
			authorLastName  *string
			commentedAt     *time.Time
		)
		if err := rows.Scan(
			&p.ID,
			&p.AuthorID,
			&p.Message,
			&p.Like,
			&p.LikedBy,
			&p.CreatedAt,
			&commentID,
			&commentText,
			&authorID,
			&authorName,
			&authorFirstName,
			&authorLastName,
			&commentedAt,
		); err != nil {
			return nil, err
		}

		post, exists := postMap[p.ID]
		if !exists {
			if p.LikedBy == nil {
				p.LikedBy = []uuid.UUID{}
			}
			p.Comments = []*model.Comment{}
			post = &p
			postMap[post.ID] = post
			posts = append(posts, post)
		}

		if commentID != nil {
			post.Comments = append(post.Comments, &model.Comment{
				ID:      *commentID,
				PostID:  post.ID,
				Comment: *commentText,
				Author: model.CommentAuthor{
					ID:        *authorID,
					Name:      *authorName,
					FirstName: *authorFirstName,
					LastName:  *authorLastName,
				},
				CreatedAt: *commentedAt,
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

// AddLike is the single arbitrating statement for the at-most-one-like-per-
// user invariant: the membership check and the increment happen in one row
// update, so two concurrent likes from the same user cannot both pass.
func (r *postRepo) AddLike(ctx context.Context, postID uuid.UUID, userID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE posts
		SET likes = likes + 1, liked_by = array_append(liked_by, $2)
		WHERE id = $1 AND NOT ($2 = ANY(liked_by))`,
		postID,
		userID,
	)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func (r *postRepo) RemoveLike(ctx context.Context, postID uuid.UUID, userID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE posts
		SET likes = GREATEST(likes - 1, 0), liked_by = array_remove(liked_by, $2)
		WHERE id = $1 AND $2 = ANY(liked_by)`,
		postID,
		userID,
	)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func (r *postRepo) AddComment(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	comment.CreatedAt = time.Now()
	if err := r.db.QueryRow(
		ctx,
		`INSERT INTO comments(post_id, comment, author_id, author_name, author_first_name, author_last_name, created_at)
		VALUES($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		comment.PostID,
		comment.Comment,
		comment.Author.ID,
		comment.Author.Name,
		comment.Author.FirstName,
		comment.Author.LastName,
		comment.CreatedAt,
	).Scan(&comment.ID); err != nil {
		return nil, err
	}

	return &comment, nil
}
