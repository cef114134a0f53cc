package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/acebook/feed-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepo struct {
	db *pgxpool.Pool
}

func newUserRepo(db *pgxpool.Pool) User {
	return &userRepo{
		db: db,
	}
}

func (r *userRepo) Create(ctx context.Context, user model.User) (*model.User, error) {
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	if _, err := r.db.Exec(
		ctx,
		"INSERT INTO users(id, email, password, first_name, last_name, created_at) VALUES($1, $2, $3, $4, $5, $6)",
		user.ID,
		user.Email,
		user.Password,
		user.FirstName,
		user.LastName,
		user.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.findBy(ctx, "id", id)
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findBy(ctx, "email", email)
}

func (r *userRepo) findBy(ctx context.Context, column string, value interface{}) (*model.User, error) {
	var user model.User
	query := fmt.Sprintf(
		"SELECT id, email, password, first_name, last_name, created_at FROM users WHERE %s = $1",
		column,
	)
	if err := r.db.QueryRow(ctx, query, value).Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.FirstName,
		&user.LastName,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	setClauses := make([]string, 0, len(updates))
	args := make([]interface{}, 0, len(updates)+1)
	i := 1
	for column, value := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, i))
		args = append(args, value)
		i++
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(setClauses, ", "), i)
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

func (r *userRepo) Delete(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Comments the user left on other people's posts go first, then the
	// user's own posts (their embedded comments go with them via FK), then
	// the user row itself.
	if _, err := tx.Exec(ctx, "DELETE FROM comments WHERE author_id = $1", id); err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, "DELETE FROM posts WHERE author_id = $1 RETURNING id", id)
	if err != nil {
		return nil, err
	}
	var deletedPostIDs []uuid.UUID
	for rows.Next() {
		var postID uuid.UUID
		if err := rows.Scan(&postID); err != nil {
			rows.Close()
			return nil, err
		}
		deletedPostIDs = append(deletedPostIDs, postID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tag, err := tx.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return deletedPostIDs, nil
}
