package service

import (
	"context"

	"github.com/acebook/feed-service/internal/dto"
	"github.com/acebook/feed-service/internal/model"
	"github.com/acebook/feed-service/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Post interface {
	Create(ctx context.Context, authorID uuid.UUID, input dto.CreatePostRequest) (*model.Post, error)
	FindAll(ctx context.Context) ([]*model.Post, error)
	AddLike(ctx context.Context, postID uuid.UUID, userID uuid.UUID) (*model.Post, error)
	RemoveLike(ctx context.Context, postID uuid.UUID, userID uuid.UUID) (*model.Post, error)
	AddComment(ctx context.Context, postID uuid.UUID, input dto.CreateCommentRequest) (*model.Post, error)
}

type User interface {
	Register(ctx context.Context, input dto.SignupRequest) (*model.User, error)
	Login(ctx context.Context, input dto.LoginRequest) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	Update(ctx context.Context, actorID string, input dto.UpdateUserRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	Post
	User
}

func New(logger *zap.Logger, repo *repository.Repository) *Service {
	return &Service{
		Post: newPostService(logger, repo),
		User: newUserService(logger, repo),
	}
}
