package user

import (
	"context"
	"database/sql"
	"errors"

	"finlight-auth/internal/db"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PGStore is the Postgres-backed user store.
type PGStore struct {
	db *db.DB
}

func NewPGStore(db *db.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) FindByExternalKey(ctx context.Context, key string) (*User, error) {
	return s.findOne(ctx, `
		SELECT id, email, nickname, password_hash, external_key, created_at
		FROM users
		WHERE external_key = $1
	`, key)
}

func (s *PGStore) FindByID(ctx context.Context, id string) (*User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	return s.findOne(ctx, `
		SELECT id, email, nickname, password_hash, external_key, created_at
		FROM users
		WHERE id = $1
	`, id)
}

func (s *PGStore) findOne(ctx context.Context, query string, arg any) (*User, error) {
	var (
		u  User
		id uuid.UUID
	)
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&id, &u.Email, &u.Nickname, &u.PasswordHash, &u.ExternalKey, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.ID = id.String()
	return &u, nil
}

func (s *PGStore) ExistsByNickname(ctx context.Context, nickname string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM users WHERE nickname = $1
		)
	`, nickname).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (s *PGStore) Save(ctx context.Context, u *User) (*User, error) {
	var (
		id        uuid.UUID
		createdAt sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (email, nickname, password_hash, external_key)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, u.Email, u.Nickname, u.PasswordHash, u.ExternalKey).Scan(&id, &createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}
	saved := *u
	saved.ID = id.String()
	if createdAt.Valid {
		saved.CreatedAt = createdAt.Time
	}
	return &saved, nil
}
