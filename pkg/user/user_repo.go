package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	GetByUid(ctx context.Context, uid string) (User, error)
	Upsert(ctx context.Context, u User) (User, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) GetByUid(ctx context.Context, uid string) (User, error) {
	query := `SELECT uid, display_name, email, photo_url, created_at FROM users WHERE uid = $1`

	row := r.db.QueryRowContext(ctx, query, uid)
	var u User
	err := row.Scan(&u.Uid, &u.DisplayName, &u.Email, &u.PhotoUrl, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not query user: %w", err)
		log.Error(err)
		return User{}, err
	}
	return u, nil
}

// Upsert inserts the profile on first login and refreshes the mutable
// fields on every subsequent one.
func (r *RepositoryImpl) Upsert(ctx context.Context, u User) (User, error) {
	query := `INSERT INTO users (uid, display_name, email, photo_url)
              VALUES ($1, $2, $3, $4)
              ON CONFLICT (uid) DO UPDATE
                SET display_name = EXCLUDED.display_name,
                    email = EXCLUDED.email,
                    photo_url = EXCLUDED.photo_url
              RETURNING uid, display_name, email, photo_url, created_at`

	row := r.db.QueryRowContext(ctx, query, u.Uid, u.DisplayName, u.Email, u.PhotoUrl)
	var stored User
	if err := row.Scan(&stored.Uid, &stored.DisplayName, &stored.Email, &stored.PhotoUrl, &stored.CreatedAt); err != nil {
		err := fmt.Errorf("could not upsert user: %w", err)
		log.Error(err)
		return User{}, err
	}
	return stored, nil
}
