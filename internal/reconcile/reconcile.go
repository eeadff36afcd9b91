package reconcile

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/mbtipay/internal/config"
	"github.com/GlebRadaev/mbtipay/internal/domain"
	"github.com/GlebRadaev/mbtipay/pkg/retry"
)

const (
	defaultLimit   = 200
	defaultWorkers = 4
)

// Settler asks the gateway about a checkout and credits it once paid.
type Settler interface {
	Settle(ctx context.Context, c domain.Checkout) (done bool, err error)
	Unsettled(ctx context.Context, from, to time.Time, limit int) ([]domain.Checkout, error)
}

type Service struct {
	settler    Settler
	workerPool WorkerPoolI
	inFlight   sync.Map
	interval   time.Duration
	grace      time.Duration
	window     time.Duration
	limit      int
	policy     retry.Policy
	now        func() time.Time
}

func New(cfg *config.Config, settler Settler) *Service {
	return &Service{
		settler:    settler,
		workerPool: NewWorkerPool(defaultWorkers),
		interval:   cfg.ReconcileInterval,
		grace:      cfg.ReconcileGrace,
		window:     cfg.ReconcileWindow,
		limit:      defaultLimit,
		policy:     retry.Policy{Attempts: 3, Backoff: time.Second, MaxBackoff: 5 * time.Second},
		now:        time.Now,
	}
}

// Start runs the sweep in the background until ctx ends. A non-positive
// interval disables it.
func (s *Service) Start(ctx context.Context) {
	if s.interval <= 0 {
		zap.L().Info("Reconcile sweep disabled")
		return
	}
	zap.L().Info("Reconcile sweep started", zap.Duration("interval", s.interval))
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	defer s.workerPool.Close()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping reconcile sweep")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Service) sweep(ctx context.Context) {
	now := s.now()
	checkouts, err := s.settler.Unsettled(ctx, now.Add(-s.window), now.Add(-s.grace), s.limit)
	if err != nil {
		zap.L().Error("Failed to load unsettled checkouts", zap.Error(err))
		return
	}
	if len(checkouts) == 0 {
		return
	}

	var g errgroup.Group
	for _, c := range checkouts {
		c := c

		if _, loaded := s.inFlight.LoadOrStore(c.OutTradeNo, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer s.inFlight.Delete(c.OutTradeNo)
				return s.settle(ctx, c)
			})
			if err != nil {
				s.inFlight.Delete(c.OutTradeNo)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error scheduling checkouts", zap.Error(err))
	}
}

// settle checks one checkout, retrying transport and storage errors.
// An unpaid checkout is left for the next sweep.
func (s *Service) settle(ctx context.Context, c domain.Checkout) error {
	var paid bool
	outcome, err := retry.Poll(ctx, s.policy, func(ctx context.Context, attempt int) (bool, error) {
		done, err := s.settler.Settle(ctx, c)
		if err != nil {
			zap.L().Warn("Settle attempt failed",
				zap.String("out_trade_no", c.OutTradeNo),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			return false, err
		}
		paid = done
		return true, nil
	})
	if outcome != retry.Done {
		return fmt.Errorf("checkout %s: %s: %w", c.OutTradeNo, outcome, err)
	}
	if paid {
		zap.L().Debug("Checkout settled", zap.String("out_trade_no", c.OutTradeNo))
	}
	return nil
}
