package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ayush/inkpress/internal/common"
	"github.com/ayush/inkpress/internal/models"
)

// PostgresStore is an alternative user store backed by PostgreSQL. Articles
// always live in MongoDB.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the users table if it doesn't exist. Usernames are not
// unique, matching the document store.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			username   VARCHAR(255) NOT NULL,
			email      VARCHAR(255) NOT NULL,
			password   VARCHAR(255) NOT NULL,
			avatar     TEXT,
			created_at TIMESTAMPTZ  DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS users_username_idx ON users (username);
	`)
	if err != nil {
		return common.StorageError("postgres migrate", err)
	}
	return nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, u *models.User) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (username, email, password, avatar) VALUES ($1, $2, $3, $4)`,
		u.Username, u.Email, u.Password, u.Avatar,
	)
	if err != nil {
		return common.StorageError("postgres create user", err)
	}
	return nil
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx,
		`SELECT username, email, password, avatar FROM users
		 WHERE username = $1 ORDER BY created_at LIMIT 1`, username,
	).Scan(&u.Username, &u.Email, &u.Password, &u.Avatar)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %q: %w", username, common.ErrNotFound)
	}
	if err != nil {
		return nil, common.StorageError("postgres find user", err)
	}
	return &u, nil
}
