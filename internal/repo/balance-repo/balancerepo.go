package balancerepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/mbtipay/internal/pg"
)

// Repository holds the credit balance primitives. Every change is a single
// statement; none of them read a balance and write it back.
type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetCredits(ctx context.Context, phone string) (credits int, found bool, err error) {
	query := `
        SELECT credits
        FROM users
        WHERE phone = $1
    `
	err = r.db.QueryRow(ctx, query, phone).Scan(&credits)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		zap.L().Error("failed to get credits", zap.Error(err))
		return 0, false, err
	}
	return credits, true, nil
}

// AddCredits upserts the user and adds delta, returning the new balance.
func (r *Repository) AddCredits(ctx context.Context, phone string, delta int, now time.Time) (int, error) {
	query := `
        INSERT INTO users (phone, pin_hash, credits, created_at, updated_at)
        VALUES ($1, '', $2, $3, $3)
        ON CONFLICT (phone) DO UPDATE
        SET credits = users.credits + EXCLUDED.credits, updated_at = EXCLUDED.updated_at
        RETURNING credits
    `
	var credits int
	err := r.db.QueryRow(ctx, query, phone, delta, now).Scan(&credits)
	if err != nil {
		zap.L().Error("failed to add credits", zap.String("phone", phone), zap.Error(err))
		return 0, err
	}
	return credits, nil
}

// DecrementCredit takes one credit if the balance is positive. ok is false
// when there was nothing to take.
func (r *Repository) DecrementCredit(ctx context.Context, phone string, now time.Time) (credits int, ok bool, err error) {
	query := `
        UPDATE users
        SET credits = credits - 1, updated_at = $2
        WHERE phone = $1 AND credits > 0
        RETURNING credits
    `
	err = r.db.QueryRow(ctx, query, phone, now).Scan(&credits)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		zap.L().Error("failed to decrement credit", zap.String("phone", phone), zap.Error(err))
		return 0, false, err
	}
	return credits, true, nil
}
