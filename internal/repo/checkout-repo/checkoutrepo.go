package checkoutrepo

import (
	"context"
	"time"

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

func (r *Repository) Save(ctx context.Context, c *domain.Checkout) error {
	query := `
        INSERT INTO checkouts (out_trade_no, phone, param, money, created_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (out_trade_no) DO NOTHING
    `
	_, err := r.db.Exec(ctx, query, c.OutTradeNo, c.Phone, c.Param, c.Money, c.CreatedAt)
	if err != nil {
		zap.L().Error("can't save checkout", zap.String("out_trade_no", c.OutTradeNo), zap.Error(err))
		return err
	}
	return nil
}

// MaxChecks is how many unpaid answers a checkout gets before the sweep
// stops asking about it.
const MaxChecks = 20

// FindUnsettled returns checkouts created in [from, to) that have no order
// row yet. Never-checked ones come first, then the least recently checked,
// so abandoned checkouts rotate instead of hiding newer ones.
func (r *Repository) FindUnsettled(ctx context.Context, from, to time.Time, limit int) ([]domain.Checkout, error) {
	query := `
        SELECT c.out_trade_no, c.phone, c.param, c.money, c.created_at, c.checks
        FROM checkouts c
        LEFT JOIN orders o ON o.out_trade_no = c.out_trade_no
        WHERE o.out_trade_no IS NULL
          AND c.created_at >= $1 AND c.created_at < $2
          AND c.checks < $3
        ORDER BY c.checked_at NULLS FIRST, c.created_at
        LIMIT $4
    `
	rows, err := r.db.Query(ctx, query, from, to, MaxChecks, limit)
	if err != nil {
		zap.L().Error("can't get unsettled checkouts", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var checkouts []domain.Checkout
	for rows.Next() {
		var c domain.Checkout
		if err := rows.Scan(&c.OutTradeNo, &c.Phone, &c.Param, &c.Money, &c.CreatedAt, &c.Checks); err != nil {
			zap.L().Error("can't scan checkout row", zap.Error(err))
			return nil, err
		}
		checkouts = append(checkouts, c)
	}
	return checkouts, rows.Err()
}

// MarkChecked records that the gateway reported the checkout unpaid at now.
func (r *Repository) MarkChecked(ctx context.Context, outTradeNo string, now time.Time) error {
	query := `
        UPDATE checkouts
        SET checked_at = $2, checks = checks + 1
        WHERE out_trade_no = $1
    `
	_, err := r.db.Exec(ctx, query, outTradeNo, now)
	if err != nil {
		zap.L().Error("can't mark checkout checked", zap.String("out_trade_no", outTradeNo), zap.Error(err))
		return err
	}
	return nil
}
