package service

import (
	"context"
	"time"

	"github.com/acebook/feed-service/internal/dto"
	"github.com/acebook/feed-service/internal/model"
	"github.com/acebook/feed-service/internal/repository"
	"github.com/acebook/feed-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const feedCacheTTL = time.Hour

type postService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newPostService(logger *zap.Logger, repo *repository.Repository) Post {
	return &postService{
		logger: logger,
		repo:   repo,
	}
}

func (s *postService) Create(ctx context.Context, authorID uuid.UUID, input dto.CreatePostRequest) (*model.Post, error) {
	post := model.Post{
		AuthorID: authorID,
		Message:  input.Message,
	}

	createdPost, err := s.repo.Postgres.Post.Create(ctx, post)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) post: %s", authorID.String(), err.Error())
		return nil, ErrInternal
	}

	s.invalidateFeed(ctx)

	return createdPost, nil
}

func (s *postService) FindAll(ctx context.Context) ([]*model.Post, error) {
	cachedPosts, err := redisrepo.GetMany[model.Post](s.repo.Redis.Default, ctx, redisrepo.FeedKey())
	if err == nil {
		return cachedPosts, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get feed from redis: %s", err.Error())
	}

	posts, err := s.repo.Postgres.Post.FindAll(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find posts from postgres: %s", err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.FeedKey(), posts, feedCacheTTL); err != nil {
		s.logger.Sugar().Errorf("failed to set feed in redis: %s", err.Error())
	}

	return posts, nil
}

func (s *postService) findByID(ctx context.Context, postID uuid.UUID) (*model.Post, error) {
	cachedPost, err := redisrepo.Get[model.Post](s.repo.Redis.Default, ctx, redisrepo.PostKey(postID.String()))
	if err == nil && cachedPost != nil {
		return cachedPost, nil
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get post(%s) from redis: %s", postID.String(), err.Error())
	}

	post, err := s.repo.Postgres.Post.FindByID(ctx, postID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%s) from postgres: %s", postID.String(), err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.PostKey(postID.String()), post, feedCacheTTL); err != nil {
		s.logger.Sugar().Errorf("failed to set post(%s) in redis: %s", postID.String(), err.Error())
	}

	return post, nil
}

// AddLike relies on the store's atomic conditional update for the
// at-most-one-like-per-user invariant; the follow-up read only classifies
// why an update was refused.
func (s *postService) AddLike(ctx context.Context, postID uuid.UUID, userID uuid.UUID) (*model.Post, error) {
	liked, err := s.repo.Postgres.Post.AddLike(ctx, postID, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to like post(%s) by user(%s): %s", postID.String(), userID.String(), err.Error())
		return nil, ErrInternal
	}

	if !liked {
		if _, err := s.findByID(ctx, postID); err != nil {
			return nil, err
		}
		return nil, ErrAlreadyLiked
	}

	s.invalidatePost(ctx, postID)

	return s.findByID(ctx, postID)
}

// RemoveLike is a no-op when the user never liked the post; the like count
// never goes below zero.
func (s *postService) RemoveLike(ctx context.Context, postID uuid.UUID, userID uuid.UUID) (*model.Post, error) {
	removed, err := s.repo.Postgres.Post.RemoveLike(ctx, postID, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to unlike post(%s) by user(%s): %s", postID.String(), userID.String(), err.Error())
		return nil, ErrInternal
	}

	if removed {
		s.invalidatePost(ctx, postID)
	}

	return s.findByID(ctx, postID)
}

func (s *postService) AddComment(ctx context.Context, postID uuid.UUID, input dto.CreateCommentRequest) (*model.Post, error) {
	if _, err := s.findByID(ctx, postID); err != nil {
		return nil, err
	}

	authorID, err := uuid.Parse(input.Author.ID)
	if err != nil {
		return nil, ErrBadActorID
	}

	comment := model.Comment{
		PostID:  postID,
		Comment: input.Comment,
		Author: model.CommentAuthor{
			ID:        authorID,
			Name:      input.Author.Name,
			FirstName: input.Author.FirstName,
			LastName:  input.Author.LastName,
		},
	}

	if _, err := s.repo.Postgres.Post.AddComment(ctx, comment); err != nil {
		s.logger.Sugar().Errorf("failed to comment on post(%s): %s", postID.String(), err.Error())
		return nil, ErrInternal
	}

	s.invalidatePost(ctx, postID)

	return s.findByID(ctx, postID)
}

func (s *postService) invalidateFeed(ctx context.Context) {
	if err := s.repo.Redis.Default.Del(ctx, redisrepo.FeedKey()).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate feed cache: %s", err.Error())
	}
}

func (s *postService) invalidatePost(ctx context.Context, postID uuid.UUID) {
	if err := s.repo.Redis.Default.Del(ctx, redisrepo.FeedKey(), redisrepo.PostKey(postID.String())).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate post(%s) cache: %s", postID.String(), err.Error())
	}
}
