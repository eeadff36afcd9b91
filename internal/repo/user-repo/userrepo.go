package userrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/mbtipay/internal/domain"
	"github.com/GlebRadaev/mbtipay/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (repo *Repository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	query := `
        SELECT phone, pin_hash, credits, created_at, updated_at
        FROM users
        WHERE phone = $1
    `
	var user domain.User
	err := repo.db.QueryRow(ctx, query, phone).Scan(&user.Phone, &user.PinHash, &user.Credits, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// Create inserts the user unless the phone is taken. created is false when a
// concurrent request got there first.
func (repo *Repository) Create(ctx context.Context, user *domain.User) (created bool, err error) {
	query := `
        INSERT INTO users (phone, pin_hash, credits, created_at, updated_at)
        VALUES ($1, $2, 0, $3, $3)
        ON CONFLICT (phone) DO NOTHING
    `
	tag, err := repo.db.Exec(ctx, query, user.Phone, user.PinHash, user.CreatedAt)
	if err != nil {
		zap.L().Error("can't save user", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// SetPIN stores the PIN hash only if the user has none yet.
func (repo *Repository) SetPIN(ctx context.Context, phone, pinHash string, now time.Time) (bool, error) {
	query := `
        UPDATE users
        SET pin_hash = $2, updated_at = $3
        WHERE phone = $1 AND pin_hash = ''
    `
	tag, err := repo.db.Exec(ctx, query, phone, pinHash, now)
	if err != nil {
		zap.L().Error("can't set pin", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (repo *Repository) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	query := `
        SELECT phone, pin_hash, credits, created_at, updated_at
        FROM users
        ORDER BY updated_at DESC
        LIMIT $1 OFFSET $2
    `
	rows, err := repo.db.Query(ctx, query, limit, offset)
	if err != nil {
		zap.L().Error("can't list users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.Phone, &user.PinHash, &user.Credits, &user.CreatedAt, &user.UpdatedAt); err != nil {
			zap.L().Error("can't scan user row", zap.Error(err))
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
