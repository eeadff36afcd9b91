package orderrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/mbtipay/internal/domain"
	"github.com/GlebRadaev/mbtipay/internal/pg"
)

// Repository owns the orders table, the idempotency gate for credit
// application. Rows are written once and never updated.
type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) FindByTradeNo(ctx context.Context, outTradeNo string) (*domain.Order, error) {
	query := `
        SELECT out_trade_no, phone, credits_delta, is_recharge, processed, created_at
        FROM orders
        WHERE out_trade_no = $1
    `
	var order domain.Order
	err := r.db.QueryRow(ctx, query, outTradeNo).
		Scan(&order.OutTradeNo, &order.Phone, &order.CreditsDelta, &order.IsRecharge, &order.Processed, &order.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find order", zap.Error(err))
		return nil, err
	}
	return &order, nil
}

// Insert claims out_trade_no. inserted is false when the trade number was
// already claimed, by an earlier delivery or a concurrent one.
func (r *Repository) Insert(ctx context.Context, order *domain.Order) (inserted bool, err error) {
	query := `
        INSERT INTO orders (out_trade_no, phone, credits_delta, is_recharge, processed, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (out_trade_no) DO NOTHING
    `
	tag, err := r.db.Exec(ctx, query, order.OutTradeNo, order.Phone, order.CreditsDelta, order.IsRecharge, order.Processed, order.CreatedAt)
	if err != nil {
		if pg.IsUniqueViolation(err) {
			return false, nil
		}
		zap.L().Error("can't insert order", zap.String("out_trade_no", order.OutTradeNo), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
