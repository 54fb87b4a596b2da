package space

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var ErrSpaceNotFound = errors.New("space not found")

type Repository interface {
	FindPersonalSpace(ctx context.Context, ownerUid string) (Space, error)
	FindAnyOwnedSpace(ctx context.Context, ownerUid string) (Space, error)
	CreateSpace(ctx context.Context, s Space) (Space, error)
	AddMember(ctx context.Context, spaceId string, userUid string, role Role) error
	DeleteSpace(ctx context.Context, spaceId string) error
	ListForUser(ctx context.Context, userUid string) ([]Space, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const spaceColumns = `id, name, COALESCE(description, ''), space_type, owner_uid, created_at`

func scanSpace(row interface{ Scan(...any) error }) (Space, error) {
	var s Space
	err := row.Scan(&s.Id, &s.Name, &s.Description, &s.Type, &s.OwnerUid, &s.CreatedAt)
	return s, err
}

func (r *RepositoryImpl) FindPersonalSpace(ctx context.Context, ownerUid string) (Space, error) {
	query := `SELECT ` + spaceColumns + ` FROM spaces WHERE owner_uid = $1 AND space_type = 'personal' LIMIT 1`

	s, err := scanSpace(r.db.QueryRowContext(ctx, query, ownerUid))
	if errors.Is(err, sql.ErrNoRows) {
		return Space{}, ErrSpaceNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not query personal space: %w", err)
		log.Error(err)
		return Space{}, err
	}
	return s, nil
}

func (r *RepositoryImpl) FindAnyOwnedSpace(ctx context.Context, ownerUid string) (Space, error) {
	query := `SELECT ` + spaceColumns + ` FROM spaces WHERE owner_uid = $1 ORDER BY created_at LIMIT 1`

	s, err := scanSpace(r.db.QueryRowContext(ctx, query, ownerUid))
	if errors.Is(err, sql.ErrNoRows) {
		return Space{}, ErrSpaceNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not query owned space: %w", err)
		log.Error(err)
		return Space{}, err
	}
	return s, nil
}

func (r *RepositoryImpl) CreateSpace(ctx context.Context, s Space) (Space, error) {
	query := `INSERT INTO spaces (id, name, description, space_type, owner_uid)
              VALUES ($1, $2, $3, $4, $5)
              RETURNING ` + spaceColumns

	id := uuid.New().String()
	stored, err := scanSpace(r.db.QueryRowContext(ctx, query, id, s.Name, s.Description, s.Type, s.OwnerUid))
	if err != nil {
		err := fmt.Errorf("could not insert space: %w", err)
		log.Error(err)
		return Space{}, err
	}
	return stored, nil
}

func (r *RepositoryImpl) AddMember(ctx context.Context, spaceId string, userUid string, role Role) error {
	query := `INSERT INTO space_members (space_id, user_uid, role) VALUES ($1, $2, $3)
              ON CONFLICT (space_id, user_uid) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, spaceId, userUid, role); err != nil {
		err := fmt.Errorf("could not insert space member: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) DeleteSpace(ctx context.Context, spaceId string) error {
	query := `DELETE FROM spaces WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, spaceId); err != nil {
		err := fmt.Errorf("could not delete space: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) ListForUser(ctx context.Context, userUid string) ([]Space, error) {
	query := `SELECT s.id, s.name, COALESCE(s.description, ''), s.space_type, s.owner_uid, s.created_at
              FROM spaces s
              JOIN space_members m ON m.space_id = s.id
              WHERE m.user_uid = $1
              ORDER BY s.created_at`

	rows, err := r.db.QueryContext(ctx, query, userUid)
	if err != nil {
		err := fmt.Errorf("could not query user spaces: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	spaces := make([]Space, 0, 4)
	for rows.Next() {
		s, err := scanSpace(rows)
		if err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		spaces = append(spaces, s)
	}
	return spaces, rows.Err()
}
