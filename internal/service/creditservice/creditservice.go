package creditservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/mbtipay/internal/domain"
	"github.com/GlebRadaev/mbtipay/internal/pg"
)

type OrderRepo interface {
	Insert(ctx context.Context, order *domain.Order) (bool, error)
	FindByTradeNo(ctx context.Context, outTradeNo string) (*domain.Order, error)
}

type BalanceRepo interface {
	GetCredits(ctx context.Context, phone string) (int, bool, error)
	AddCredits(ctx context.Context, phone string, delta int, now time.Time) (int, error)
	DecrementCredit(ctx context.Context, phone string, now time.Time) (int, bool, error)
}

type RecordRepo interface {
	FindByTS(ctx context.Context, phone string, ts int64) (*domain.Record, error)
	MarkViewed(ctx context.Context, id int64) (bool, error)
	MarkLatestUnviewed(ctx context.Context, phone string) (int64, bool, error)
}

type Service struct {
	orderRepo   OrderRepo
	balanceRepo BalanceRepo
	recordRepo  RecordRepo
	txManager   pg.TXManager
	now         func() time.Time
}

func New(orderRepo OrderRepo, balanceRepo BalanceRepo, recordRepo RecordRepo, txManager pg.TXManager) *Service {
	return &Service{
		orderRepo:   orderRepo,
		balanceRepo: balanceRepo,
		recordRepo:  recordRepo,
		txManager:   txManager,
		now:         time.Now,
	}
}

// ApplyPayment credits a confirmed payment at most once per out_trade_no.
// The gate row, the credit increment and the unlock of the latest record
// commit together, so a failure anywhere lets the next delivery retry.
func (s *Service) ApplyPayment(ctx context.Context, outTradeNo, param string) (domain.ApplyOutcome, error) {
	phone, ok := domain.PhoneFromTradeNo(outTradeNo)
	if !ok {
		zap.L().Info("ignoring foreign trade number", zap.String("out_trade_no", outTradeNo))
		return domain.ApplyForeign, nil
	}

	payment := domain.Payment{OutTradeNo: outTradeNo, Phone: phone, Intent: domain.ParseIntent(param)}
	now := s.now()
	outcome := domain.ApplyDuplicate

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		inserted, err := s.orderRepo.Insert(ctx, payment.Order(now))
		if err != nil {
			return fmt.Errorf("claim order: %w", err)
		}
		if !inserted {
			return nil
		}

		if _, err := s.balanceRepo.AddCredits(ctx, phone, payment.Intent.Credits, now); err != nil {
			return fmt.Errorf("add credits: %w", err)
		}

		if !payment.Intent.Recharge {
			_, flipped, err := s.recordRepo.MarkLatestUnviewed(ctx, phone)
			if err != nil {
				return fmt.Errorf("unlock latest record: %w", err)
			}
			if flipped {
				if _, _, err := s.balanceRepo.DecrementCredit(ctx, phone, now); err != nil {
					return fmt.Errorf("consume unlock credit: %w", err)
				}
			}
		}

		outcome = domain.ApplyApplied
		return nil
	})
	if err != nil {
		zap.L().Error("failed to apply payment", zap.String("out_trade_no", outTradeNo), zap.Error(err))
		return 0, err
	}

	zap.L().Info("payment processed",
		zap.String("out_trade_no", outTradeNo),
		zap.String("outcome", outcome.String()),
		zap.Int("credits", payment.Intent.Credits),
		zap.Bool("recharge", payment.Intent.Recharge),
	)
	return outcome, nil
}

// IsProcessed reports whether out_trade_no already passed the gate.
func (s *Service) IsProcessed(ctx context.Context, outTradeNo string) (bool, error) {
	order, err := s.orderRepo.FindByTradeNo(ctx, outTradeNo)
	if err != nil {
		return false, err
	}
	return order != nil, nil
}

var errNothingToSpend = errors.New("nothing to spend")

// UseCredit spends one credit to unlock the record identified by ts.
func (s *Service) UseCredit(ctx context.Context, phone string, ts int64) (*domain.CreditResult, error) {
	credits, found, err := s.balanceRepo.GetCredits(ctx, phone)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrUserNotFound
	}

	record, err := s.recordRepo.FindByTS(ctx, phone, ts)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrRecordNotFound
	}
	if record.Viewed {
		return &domain.CreditResult{Outcome: domain.CreditAlreadyViewed, Credits: credits}, nil
	}

	result := &domain.CreditResult{}
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		flipped, err := s.recordRepo.MarkViewed(ctx, record.ID)
		if err != nil {
			return err
		}
		if !flipped {
			current, _, err := s.balanceRepo.GetCredits(ctx, phone)
			if err != nil {
				return err
			}
			result.Outcome, result.Credits = domain.CreditAlreadyViewed, current
			return nil
		}

		left, ok, err := s.balanceRepo.DecrementCredit(ctx, phone, s.now())
		if err != nil {
			return err
		}
		if !ok {
			return errNothingToSpend
		}
		result.Outcome, result.Credits = domain.CreditUsed, left
		return nil
	})
	if errors.Is(err, errNothingToSpend) {
		return &domain.CreditResult{Outcome: domain.CreditInsufficient}, nil
	}
	if err != nil {
		zap.L().Error("failed to use credit", zap.String("phone", phone), zap.Error(err))
		return nil, err
	}
	return result, nil
}

// AddCredits grants n credits outside of any payment, creating the user when
// needed. It returns the new balance.
func (s *Service) AddCredits(ctx context.Context, phone string, n int) (int, error) {
	if n <= 0 {
		return 0, domain.ValidationErrorf("credits must be positive")
	}
	credits, err := s.balanceRepo.AddCredits(ctx, phone, n, s.now())
	if err != nil {
		zap.L().Error("failed to add credits", zap.String("phone", phone), zap.Error(err))
		return 0, err
	}
	return credits, nil
}
