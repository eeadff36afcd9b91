package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/GlebRadaev/mbtipay/internal/config"
	"github.com/GlebRadaev/mbtipay/internal/domain"
	"github.com/GlebRadaev/mbtipay/pkg/retry"
)

var errGateway = errors.New("connection reset")

func newTestService(settler Settler, pool WorkerPoolI, now time.Time) *Service {
	return &Service{
		settler:    settler,
		workerPool: pool,
		grace:      time.Minute,
		window:     24 * time.Hour,
		limit:      10,
		policy:     retry.Policy{Attempts: 3},
		now:        func() time.Time { return now },
	}
}

// inline runs each task on the calling goroutine.
func inline(ctx context.Context, task Task) error {
	return task()
}

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	cfg := &config.Config{
		ReconcileInterval: 30 * time.Second,
		ReconcileGrace:    time.Minute,
		ReconcileWindow:   24 * time.Hour,
	}

	s := New(cfg, NewMockSettler(ctrl))
	defer s.workerPool.Close()

	assert.Equal(t, 30*time.Second, s.interval)
	assert.Equal(t, time.Minute, s.grace)
	assert.Equal(t, 24*time.Hour, s.window)
	assert.Equal(t, defaultLimit, s.limit)
}

func TestService_StartDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := New(&config.Config{}, NewMockSettler(ctrl))
	defer s.workerPool.Close()

	s.Start(context.Background())
}

func TestService_StartStopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	settler := NewMockSettler(ctrl)
	settler.EXPECT().Unsettled(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	s := New(&config.Config{ReconcileInterval: 5 * time.Millisecond}, settler)

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	time.Sleep(20 * time.Millisecond)
	cancel()
	time.Sleep(10 * time.Millisecond)
}

func TestService_sweep(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	paid := domain.Checkout{OutTradeNo: "MBTI_13800138000_1714564800000_1", Phone: "13800138000", Param: "RECHARGE_10"}
	unpaid := domain.Checkout{OutTradeNo: "MBTI_13800138000_1714564800000_2", Phone: "13800138000", Param: "INTJ"}

	tests := []struct {
		name     string
		setup    func(settler *MockSettler, pool *MockWorkerPoolI)
		inFlight []string
	}{
		{
			name: "settles every unsettled checkout in the window",
			setup: func(settler *MockSettler, pool *MockWorkerPoolI) {
				settler.EXPECT().Unsettled(gomock.Any(), now.Add(-24*time.Hour), now.Add(-time.Minute), 10).
					Return([]domain.Checkout{paid, unpaid}, nil)
				pool.EXPECT().AddTask(gomock.Any(), gomock.Any()).DoAndReturn(inline).Times(2)
				settler.EXPECT().Settle(gomock.Any(), paid).Return(true, nil)
				settler.EXPECT().Settle(gomock.Any(), unpaid).Return(false, nil)
			},
		},
		{
			name: "load failure schedules nothing",
			setup: func(settler *MockSettler, pool *MockWorkerPoolI) {
				settler.EXPECT().Unsettled(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("db down"))
			},
		},
		{
			name: "skips checkouts already in flight",
			setup: func(settler *MockSettler, pool *MockWorkerPoolI) {
				settler.EXPECT().Unsettled(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]domain.Checkout{paid, unpaid}, nil)
				pool.EXPECT().AddTask(gomock.Any(), gomock.Any()).DoAndReturn(inline).Times(1)
				settler.EXPECT().Settle(gomock.Any(), unpaid).Return(false, nil)
			},
			inFlight: []string{paid.OutTradeNo},
		},
		{
			name: "pool rejection releases the checkout",
			setup: func(settler *MockSettler, pool *MockWorkerPoolI) {
				settler.EXPECT().Unsettled(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]domain.Checkout{paid}, nil)
				pool.EXPECT().AddTask(gomock.Any(), gomock.Any()).Return(context.Canceled)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			settler := NewMockSettler(ctrl)
			pool := NewMockWorkerPoolI(ctrl)
			tt.setup(settler, pool)

			s := newTestService(settler, pool, now)
			for _, no := range tt.inFlight {
				s.inFlight.Store(no, struct{}{})
			}

			s.sweep(context.Background())

			_, stillPaid := s.inFlight.Load(paid.OutTradeNo)
			assert.Equal(t, len(tt.inFlight) > 0, stillPaid)
			_, stillUnpaid := s.inFlight.Load(unpaid.OutTradeNo)
			assert.False(t, stillUnpaid)
		})
	}
}

func TestService_settle(t *testing.T) {
	c := domain.Checkout{OutTradeNo: "MBTI_13800138000_1714564800000_7", Param: "INTJ"}

	t.Run("retries transient errors", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		settler := NewMockSettler(ctrl)
		gomock.InOrder(
			settler.EXPECT().Settle(gomock.Any(), c).Return(false, errGateway),
			settler.EXPECT().Settle(gomock.Any(), c).Return(true, nil),
		)

		s := newTestService(settler, nil, time.Now())
		require.NoError(t, s.settle(context.Background(), c))
	})

	t.Run("gives up after the attempts run out", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		settler := NewMockSettler(ctrl)
		settler.EXPECT().Settle(gomock.Any(), c).Return(false, errGateway).Times(3)

		s := newTestService(settler, nil, time.Now())
		err := s.settle(context.Background(), c)
		require.Error(t, err)
		assert.ErrorIs(t, err, errGateway)
		assert.Contains(t, err.Error(), c.OutTradeNo)
	})

	t.Run("permanent error is not retried", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		settler := NewMockSettler(ctrl)
		settler.EXPECT().Settle(gomock.Any(), c).
			Return(false, fmt.Errorf("%w: %w", retry.ErrPermanent, domain.ErrConfiguration)).
			Times(1)

		s := newTestService(settler, nil, time.Now())
		err := s.settle(context.Background(), c)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})

	t.Run("unpaid is not an error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		settler := NewMockSettler(ctrl)
		settler.EXPECT().Settle(gomock.Any(), c).Return(false, nil).Times(1)

		s := newTestService(settler, nil, time.Now())
		assert.NoError(t, s.settle(context.Background(), c))
	})
}

func TestService_sweepWithPool(t *testing.T) {
	ctrl := gomock.NewController(t)
	settler := NewMockSettler(ctrl)

	var checkouts []domain.Checkout
	for _, no := range []string{"a", "b", "c", "d", "e"} {
		checkouts = append(checkouts, domain.Checkout{OutTradeNo: "MBTI_13800138000_1714564800000_" + no})
	}

	var mu sync.Mutex
	settled := map[string]bool{}
	settler.EXPECT().Unsettled(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(checkouts, nil)
	settler.EXPECT().Settle(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c domain.Checkout) (bool, error) {
		mu.Lock()
		settled[c.OutTradeNo] = true
		mu.Unlock()
		return true, nil
	}).Times(len(checkouts))

	pool := NewWorkerPool(2)
	s := newTestService(settler, pool, time.Now())
	s.sweep(context.Background())
	pool.Close()

	assert.Len(t, settled, len(checkouts))
}
