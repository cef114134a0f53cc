package service

import (
	"context"

	"github.com/acebook/feed-service/internal/dto"
	"github.com/acebook/feed-service/internal/model"
	"github.com/acebook/feed-service/internal/repository"
	"github.com/acebook/feed-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type userService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newUserService(logger *zap.Logger, repo *repository.Repository) User {
	return &userService{
		logger: logger,
		repo:   repo,
	}
}

func (s *userService) Register(ctx context.Context, input dto.SignupRequest) (*model.User, error) {
	_, err := s.repo.Postgres.User.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to find user by email from postgres: %s", err.Error())
		return nil, ErrInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Sugar().Errorf("failed to hash password: %s", err.Error())
		return nil, ErrInternal
	}

	user := model.User{
		Email:     input.Email,
		Password:  string(hash),
		FirstName: input.FirstName,
		LastName:  input.LastName,
	}

	createdUser, err := s.repo.Postgres.User.Create(ctx, user)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user: %s", err.Error())
		return nil, ErrInternal
	}

	return createdUser, nil
}

func (s *userService) Login(ctx context.Context, input dto.LoginRequest) (*model.User, error) {
	user, err := s.repo.Postgres.User.FindByEmail(ctx, input.Email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrInvalidCredentials
		}
		s.logger.Sugar().Errorf("failed to find user by email from postgres: %s", err.Error())
		return nil, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *userService) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.Postgres.User.FindByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}
		s.logger.Sugar().Errorf("failed to find user(%s) from postgres: %s", id.String(), err.Error())
		return nil, ErrInternal
	}
	return user, nil
}

// Update applies only the provided fields. The actor id arrives as the raw
// token subject; a subject that is not a valid user id is a bad request,
// not a missing user.
func (s *userService) Update(ctx context.Context, actorID string, input dto.UpdateUserRequest) error {
	id, err := uuid.Parse(actorID)
	if err != nil {
		return ErrBadActorID
	}

	updates := make(map[string]interface{})
	if input.Email != nil {
		updates["email"] = *input.Email
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Sugar().Errorf("failed to hash password: %s", err.Error())
			return ErrInternal
		}
		updates["password"] = string(hash)
	}
	if input.FirstName != nil {
		updates["first_name"] = *input.FirstName
	}
	if input.LastName != nil {
		updates["last_name"] = *input.LastName
	}

	if err := s.repo.Postgres.User.Update(ctx, id, updates); err != nil {
		if err == pgx.ErrNoRows {
			return ErrUserNotFound
		}
		s.logger.Sugar().Errorf("failed to update user(%s): %s", id.String(), err.Error())
		return ErrInternal
	}

	return nil
}

// Delete removes the account and cascades to every post and comment the
// user authored. Comment snapshots on other authors' surviving posts keep
// their denormalized names; only content the user wrote is removed.
func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	deletedPostIDs, err := s.repo.Postgres.User.Delete(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrUserNotFound
		}
		s.logger.Sugar().Errorf("failed to delete user(%s): %s", id.String(), err.Error())
		return ErrInternal
	}

	// The cascaded posts must leave the cache with the rows, or a stale
	// post:<id> entry would keep answering reads for a post that is gone.
	keys := []string{redisrepo.FeedKey()}
	for _, postID := range deletedPostIDs {
		keys = append(keys, redisrepo.PostKey(postID.String()))
	}
	if err := s.repo.Redis.Default.Del(ctx, keys...).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate cache after deleting user(%s): %s", id.String(), err.Error())
	}

	return nil
}
