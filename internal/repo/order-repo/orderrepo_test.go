package orderrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/GlebRadaev/mbtipay/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	t.Cleanup(mockDB.Close)

	return repo, mockDB
}

func TestRepository_Insert(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	order := &domain.Order{
		OutTradeNo:   "MBTI_13800138000_1714564800000_7",
		Phone:        "13800138000",
		CreditsDelta: 3,
		Processed:    true,
		CreatedAt:    now,
	}
	args := []any{order.OutTradeNo, order.Phone, 3, false, true, now}

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		inserted  bool
	}{
		{
			name: "First delivery",
			mockSetup: func() {
				mock.ExpectExec("INSERT INTO orders").WithArgs(args...).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
			inserted: true,
		},
		{
			name: "Duplicate via conflict clause",
			mockSetup: func() {
				mock.ExpectExec("INSERT INTO orders").WithArgs(args...).
					WillReturnResult(pgxmock.NewResult("INSERT", 0))
			},
			inserted: false,
		},
		{
			name: "Duplicate via unique violation",
			mockSetup: func() {
				mock.ExpectExec("INSERT INTO orders").WithArgs(args...).
					WillReturnError(&pgconn.PgError{Code: "23505"})
			},
			inserted: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec("INSERT INTO orders").WithArgs(args...).
					WillReturnError(errors.New("connection reset"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			inserted, err := repo.Insert(context.Background(), order)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.inserted, inserted)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FindByTradeNo(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	columns := []string{"out_trade_no", "phone", "credits_delta", "is_recharge", "processed", "created_at"}

	mock.ExpectQuery("FROM orders").WithArgs("MBTI_1").
		WillReturnRows(pgxmock.NewRows(columns).AddRow("MBTI_1", "13800138000", 10, true, true, now))
	order, err := repo.FindByTradeNo(context.Background(), "MBTI_1")
	assert.NoError(t, err)
	assert.Equal(t, &domain.Order{OutTradeNo: "MBTI_1", Phone: "13800138000", CreditsDelta: 10, IsRecharge: true, Processed: true, CreatedAt: now}, order)

	mock.ExpectQuery("FROM orders").WithArgs("MBTI_2").WillReturnError(pgx.ErrNoRows)
	order, err = repo.FindByTradeNo(context.Background(), "MBTI_2")
	assert.NoError(t, err)
	assert.Nil(t, order)

	mock.ExpectQuery("FROM orders").WithArgs("MBTI_3").WillReturnError(errors.New("boom"))
	_, err = repo.FindByTradeNo(context.Background(), "MBTI_3")
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
