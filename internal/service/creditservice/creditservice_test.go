package creditservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/mbtipay/internal/domain"
	"github.com/GlebRadaev/mbtipay/internal/pg"
)

const (
	phone   = "13800138000"
	tradeNo = "MBTI_13800138000_1714564800000_42"
)

type mocks struct {
	orderRepo   *MockOrderRepo
	balanceRepo *MockBalanceRepo
	recordRepo  *MockRecordRepo
	txManager   *pg.MockTXManager
}

func NewMock(t *testing.T) (*Service, *mocks, time.Time) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		orderRepo:   NewMockOrderRepo(ctrl),
		balanceRepo: NewMockBalanceRepo(ctrl),
		recordRepo:  NewMockRecordRepo(ctrl),
		txManager:   pg.NewMockTXManager(ctrl),
	}
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	service := New(m.orderRepo, m.balanceRepo, m.recordRepo, m.txManager)
	service.now = func() time.Time { return now }
	return service, m, now
}

func runInTx(m *mocks) {
	m.txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func TestApplyPayment(t *testing.T) {
	tests := []struct {
		name            string
		outTradeNo      string
		param           string
		prepareMock     func(m *mocks, now time.Time)
		expectedOutcome domain.ApplyOutcome
		expectErr       bool
	}{
		{
			name:            "Foreign trade number",
			outTradeNo:      "OTHER_123",
			prepareMock:     func(m *mocks, now time.Time) {},
			expectedOutcome: domain.ApplyForeign,
		},
		{
			name:            "Legacy trade number without phone",
			outTradeNo:      "MBTI_1714564800000_42",
			prepareMock:     func(m *mocks, now time.Time) {},
			expectedOutcome: domain.ApplyForeign,
		},
		{
			name:       "Unlock applies credits and consumes one",
			outTradeNo: tradeNo,
			param:      "INTJ",
			prepareMock: func(m *mocks, now time.Time) {
				runInTx(m)
				m.orderRepo.EXPECT().Insert(gomock.Any(), &domain.Order{
					OutTradeNo: tradeNo, Phone: phone, CreditsDelta: 3, Processed: true, CreatedAt: now,
				}).Return(true, nil)
				m.balanceRepo.EXPECT().AddCredits(gomock.Any(), phone, 3, now).Return(3, nil)
				m.recordRepo.EXPECT().MarkLatestUnviewed(gomock.Any(), phone).Return(int64(5), true, nil)
				m.balanceRepo.EXPECT().DecrementCredit(gomock.Any(), phone, now).Return(2, true, nil)
			},
			expectedOutcome: domain.ApplyApplied,
		},
		{
			name:       "Unlock without an unviewed record keeps all credits",
			outTradeNo: tradeNo,
			prepareMock: func(m *mocks, now time.Time) {
				runInTx(m)
				m.orderRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(true, nil)
				m.balanceRepo.EXPECT().AddCredits(gomock.Any(), phone, 3, now).Return(3, nil)
				m.recordRepo.EXPECT().MarkLatestUnviewed(gomock.Any(), phone).Return(int64(0), false, nil)
			},
			expectedOutcome: domain.ApplyApplied,
		},
		{
			name:       "Recharge adds exactly n",
			outTradeNo: tradeNo,
			param:      "RECHARGE_10",
			prepareMock: func(m *mocks, now time.Time) {
				runInTx(m)
				m.orderRepo.EXPECT().Insert(gomock.Any(), &domain.Order{
					OutTradeNo: tradeNo, Phone: phone, CreditsDelta: 10, IsRecharge: true, Processed: true, CreatedAt: now,
				}).Return(true, nil)
				m.balanceRepo.EXPECT().AddCredits(gomock.Any(), phone, 10, now).Return(10, nil)
			},
			expectedOutcome: domain.ApplyApplied,
		},
		{
			name:       "Duplicate delivery has no effect",
			outTradeNo: tradeNo,
			param:      "RECHARGE_10",
			prepareMock: func(m *mocks, now time.Time) {
				runInTx(m)
				m.orderRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			expectedOutcome: domain.ApplyDuplicate,
		},
		{
			name:       "Gate failure",
			outTradeNo: tradeNo,
			prepareMock: func(m *mocks, now time.Time) {
				runInTx(m)
				m.orderRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(false, errors.New("db down"))
			},
			expectErr: true,
		},
		{
			name:       "Increment failure rolls back",
			outTradeNo: tradeNo,
			param:      "RECHARGE_3",
			prepareMock: func(m *mocks, now time.Time) {
				runInTx(m)
				m.orderRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(true, nil)
				m.balanceRepo.EXPECT().AddCredits(gomock.Any(), phone, 3, now).Return(0, errors.New("db down"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m, now := NewMock(t)
			tt.prepareMock(m, now)

			outcome, err := service.ApplyPayment(context.Background(), tt.outTradeNo, tt.param)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedOutcome, outcome)
		})
	}
}

func TestUseCredit(t *testing.T) {
	record := &domain.Record{ID: 7, Phone: phone, Result: "INTJ", TS: 100}

	tests := []struct {
		name           string
		prepareMock    func(m *mocks, now time.Time)
		expectedResult *domain.CreditResult
		expectedError  error
	}{
		{
			name: "Unknown user",
			prepareMock: func(m *mocks, now time.Time) {
				m.balanceRepo.EXPECT().GetCredits(gomock.Any(), phone).Return(0, false, nil)
			},
			expectedError: domain.ErrUserNotFound,
		},
		{
			name: "Unknown record",
			prepareMock: func(m *mocks, now time.Time) {
				m.balanceRepo.EXPECT().GetCredits(gomock.Any(), phone).Return(2, true, nil)
				m.recordRepo.EXPECT().FindByTS(gomock.Any(), phone, int64(100)).Return(nil, nil)
			},
			expectedError: domain.ErrRecordNotFound,
		},
		{
			name: "Already viewed leaves balance alone",
			prepareMock: func(m *mocks, now time.Time) {
				m.balanceRepo.EXPECT().GetCredits(gomock.Any(), phone).Return(2, true, nil)
				m.recordRepo.EXPECT().FindByTS(gomock.Any(), phone, int64(100)).
					Return(&domain.Record{ID: 7, Phone: phone, TS: 100, Viewed: true}, nil)
			},
			expectedResult: &domain.CreditResult{Outcome: domain.CreditAlreadyViewed, Credits: 2},
		},
		{
			name: "Spends one credit",
			prepareMock: func(m *mocks, now time.Time) {
				m.balanceRepo.EXPECT().GetCredits(gomock.Any(), phone).Return(3, true, nil)
				m.recordRepo.EXPECT().FindByTS(gomock.Any(), phone, int64(100)).Return(record, nil)
				runInTx(m)
				m.recordRepo.EXPECT().MarkViewed(gomock.Any(), int64(7)).Return(true, nil)
				m.balanceRepo.EXPECT().DecrementCredit(gomock.Any(), phone, now).Return(2, true, nil)
			},
			expectedResult: &domain.CreditResult{Outcome: domain.CreditUsed, Credits: 2},
		},
		{
			name: "Lost the flip to a concurrent request",
			prepareMock: func(m *mocks, now time.Time) {
				m.balanceRepo.EXPECT().GetCredits(gomock.Any(), phone).Return(3, true, nil)
				m.recordRepo.EXPECT().FindByTS(gomock.Any(), phone, int64(100)).Return(record, nil)
				runInTx(m)
				m.recordRepo.EXPECT().MarkViewed(gomock.Any(), int64(7)).Return(false, nil)
				m.balanceRepo.EXPECT().GetCredits(gomock.Any(), phone).Return(2, true, nil)
			},
			expectedResult: &domain.CreditResult{Outcome: domain.CreditAlreadyViewed, Credits: 2},
		},
		{
			name: "Empty balance",
			prepareMock: func(m *mocks, now time.Time) {
				m.balanceRepo.EXPECT().GetCredits(gomock.Any(), phone).Return(0, true, nil)
				m.recordRepo.EXPECT().FindByTS(gomock.Any(), phone, int64(100)).Return(record, nil)
				runInTx(m)
				m.recordRepo.EXPECT().MarkViewed(gomock.Any(), int64(7)).Return(true, nil)
				m.balanceRepo.EXPECT().DecrementCredit(gomock.Any(), phone, now).Return(0, false, nil)
			},
			expectedResult: &domain.CreditResult{Outcome: domain.CreditInsufficient},
		},
		{
			name: "Storage error",
			prepareMock: func(m *mocks, now time.Time) {
				m.balanceRepo.EXPECT().GetCredits(gomock.Any(), phone).Return(0, false, errors.New("db down"))
			},
			expectedError: errors.New("db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m, now := NewMock(t)
			tt.prepareMock(m, now)

			result, err := service.UseCredit(context.Background(), phone, 100)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedResult, result)
		})
	}
}

func TestAddCredits(t *testing.T) {
	service, m, now := NewMock(t)

	m.balanceRepo.EXPECT().AddCredits(gomock.Any(), phone, 5, now).Return(8, nil)
	credits, err := service.AddCredits(context.Background(), phone, 5)
	assert.NoError(t, err)
	assert.Equal(t, 8, credits)

	_, err = service.AddCredits(context.Background(), phone, 0)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestIsProcessed(t *testing.T) {
	service, m, _ := NewMock(t)

	m.orderRepo.EXPECT().FindByTradeNo(gomock.Any(), tradeNo).Return(&domain.Order{OutTradeNo: tradeNo}, nil)
	processed, err := service.IsProcessed(context.Background(), tradeNo)
	assert.NoError(t, err)
	assert.True(t, processed)

	m.orderRepo.EXPECT().FindByTradeNo(gomock.Any(), tradeNo).Return(nil, nil)
	processed, err = service.IsProcessed(context.Background(), tradeNo)
	assert.NoError(t, err)
	assert.False(t, processed)
}
