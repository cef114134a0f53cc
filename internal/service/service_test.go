package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/acebook/feed-service/internal/model"
	"github.com/acebook/feed-service/internal/repository"
	"github.com/acebook/feed-service/internal/repository/postgres"
	"github.com/acebook/feed-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// In-memory fakes for the postgres repos and the redis cache. Plain fakes,
// no mock framework: the behavior under test is visible in this file.

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
	posts *fakePostRepo // for cascade on Delete
}

func newFakeUserRepo(posts *fakePostRepo) *fakeUserRepo {
	return &fakeUserRepo{
		users: make(map[uuid.UUID]*model.User),
		posts: posts,
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, user model.User) (*model.User, error) {
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	stored := user
	f.users[user.ID] = &stored
	return &user, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	user, ok := f.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	for column, value := range updates {
		switch column {
		case "email":
			user.Email = value.(string)
		case "password":
			user.Password = value.(string)
		case "first_name":
			user.FirstName = value.(string)
		case "last_name":
			user.LastName = value.(string)
		}
	}
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	if _, ok := f.users[id]; !ok {
		return nil, pgx.ErrNoRows
	}
	delete(f.users, id)

	// Mirror the SQL cascade: authored comments, then authored posts.
	for _, post := range f.posts.posts {
		kept := post.Comments[:0]
		for _, comment := range post.Comments {
			if comment.Author.ID != id {
				kept = append(kept, comment)
			}
		}
		post.Comments = kept
	}
	var deletedPostIDs []uuid.UUID
	for postID, post := range f.posts.posts {
		if post.AuthorID == id {
			delete(f.posts.posts, postID)
			deletedPostIDs = append(deletedPostIDs, postID)
		}
	}
	return deletedPostIDs, nil
}

type fakePostRepo struct {
	posts map[uuid.UUID]*model.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[uuid.UUID]*model.Post)}
}

func (f *fakePostRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	post.ID = uuid.New()
	post.Like = 0
	post.LikedBy = []uuid.UUID{}
	post.Comments = []*model.Comment{}
	post.CreatedAt = time.Now()
	stored := post
	f.posts[post.ID] = &stored
	return &post, nil
}

func (f *fakePostRepo) FindAll(ctx context.Context) ([]*model.Post, error) {
	posts := []*model.Post{}
	for _, post := range f.posts {
		copied := *post
		posts = append(posts, &copied)
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (f *fakePostRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *post
	return &copied, nil
}

func (f *fakePostRepo) AddLike(ctx context.Context, postID uuid.UUID, userID uuid.UUID) (bool, error) {
	post, ok := f.posts[postID]
	if !ok {
		return false, nil
	}
	if post.IsLikedBy(userID) {
		return false, nil
	}
	post.LikedBy = append(post.LikedBy, userID)
	post.Like++
	return true, nil
}

func (f *fakePostRepo) RemoveLike(ctx context.Context, postID uuid.UUID, userID uuid.UUID) (bool, error) {
	post, ok := f.posts[postID]
	if !ok || !post.IsLikedBy(userID) {
		return false, nil
	}
	kept := post.LikedBy[:0]
	for _, id := range post.LikedBy {
		if id != userID {
			kept = append(kept, id)
		}
	}
	post.LikedBy = kept
	if post.Like > 0 {
		post.Like--
	}
	return true, nil
}

func (f *fakePostRepo) AddComment(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	post, ok := f.posts[comment.PostID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	comment.ID = int64(len(post.Comments) + 1)
	comment.CreatedAt = time.Now()
	post.Comments = append(post.Comments, &comment)
	return &comment, nil
}

type fakeCache struct {
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (f *fakeCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	valueJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = string(valueJSON)
	return nil
}

func (f *fakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx)
	value, ok := f.data[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(value)
	return cmd
}

func (f *fakeCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	var deleted int64
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			delete(f.data, key)
			deleted++
		}
	}
	cmd.SetVal(deleted)
	return cmd
}

type testEnv struct {
	services *Service
	users    *fakeUserRepo
	posts    *fakePostRepo
	cache    *fakeCache
}

func newTestEnv() *testEnv {
	posts := newFakePostRepo()
	users := newFakeUserRepo(posts)
	cache := newFakeCache()

	repo := &repository.Repository{
		Postgres: &postgres.PostgresRepository{
			User: users,
			Post: posts,
		},
		Redis: &redisrepo.RedisRepository{
			Default: cache,
		},
	}

	return &testEnv{
		services: New(zap.NewNop(), repo),
		users:    users,
		posts:    posts,
		cache:    cache,
	}
}
