package domain

import "time"

type User struct {
	Phone     string    `db:"phone"`
	PinHash   string    `db:"pin_hash"`
	Credits   int       `db:"credits"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// HasPIN reports whether the user already chose a PIN.
func (u *User) HasPIN() bool {
	return u.PinHash != ""
}

type Record struct {
	ID          int64  `db:"id"`
	Phone       string `db:"phone"`
	Result      string `db:"result"`
	QuestionSet string `db:"question_set"`
	// TS is the creation time in unix milliseconds and identifies the record
	// within one phone's history.
	TS     int64 `db:"ts"`
	Viewed bool  `db:"viewed"`
}

// Order is the write-once idempotency entry for a paid out_trade_no.
type Order struct {
	OutTradeNo   string    `db:"out_trade_no"`
	Phone        string    `db:"phone"`
	CreditsDelta int       `db:"credits_delta"`
	IsRecharge   bool      `db:"is_recharge"`
	Processed    bool      `db:"processed"`
	CreatedAt    time.Time `db:"created_at"`
}

// Checkout logs an outbound create-order call so the reconciliation sweep
// knows which trade numbers may still settle.
type Checkout struct {
	OutTradeNo string    `db:"out_trade_no"`
	Phone      string    `db:"phone"`
	Param      string    `db:"param"`
	Money      string    `db:"money"`
	CreatedAt  time.Time `db:"created_at"`
	// Checks counts gateway answers that found the order unpaid.
	Checks int `db:"checks"`
}

// Payment is a confirmed gateway payment ready for credit application.
type Payment struct {
	OutTradeNo string
	Phone      string
	Intent     Intent
}

func (p Payment) Order(now time.Time) *Order {
	return &Order{
		OutTradeNo:   p.OutTradeNo,
		Phone:        p.Phone,
		CreditsDelta: p.Intent.Credits,
		IsRecharge:   p.Intent.Recharge,
		Processed:    true,
		CreatedAt:    now,
	}
}

// SaveRequest is one finished quiz submitted under a phone and PIN.
type SaveRequest struct {
	Phone       string
	PIN         string
	Result      string
	QuestionSet string
}

type SaveResult struct {
	RecordCount int
	Credits     int
	TS          int64
	IsNewUser   bool
}

type History struct {
	Found   bool
	Credits int
	Records []Record
}
