package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewTradeNo(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	assert.Equal(t, "MBTI_13800000000_1700000000000_42", NewTradeNo("13800000000", now, 42))
}

func TestPhoneFromTradeNo(t *testing.T) {
	tests := []struct {
		name    string
		tradeNo string
		phone   string
		ok      bool
	}{
		{name: "canonical", tradeNo: "MBTI_13800000000_1700000000000_42", phone: "13800000000", ok: true},
		{name: "round trip", tradeNo: NewTradeNo("19912345678", time.Now(), 7), phone: "19912345678", ok: true},
		{name: "phoneless legacy format", tradeNo: "MBTI_1700000000000_42"},
		{name: "bad phone", tradeNo: "MBTI_12800000000_1700000000000_42"},
		{name: "foreign prefix", tradeNo: "SHOP_13800000000_1700000000000_42"},
		{name: "non numeric suffix", tradeNo: "MBTI_13800000000_1700000000000_x"},
		{name: "empty", tradeNo: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phone, ok := PhoneFromTradeNo(tt.tradeNo)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.phone, phone)
		})
	}
}

func TestParseIntent(t *testing.T) {
	tests := []struct {
		param  string
		intent Intent
	}{
		{param: "INTJ", intent: Intent{Credits: 3}},
		{param: "", intent: Intent{Credits: 3}},
		{param: "RECHARGE_10", intent: Intent{Credits: 10, Recharge: true}},
		{param: "RECHARGE_30", intent: Intent{Credits: 30, Recharge: true}},
		{param: "RECHARGE_0", intent: Intent{Credits: 3, Recharge: true}},
		{param: "RECHARGE_abc", intent: Intent{Credits: 3, Recharge: true}},
		{param: "recharge_10", intent: Intent{Credits: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			assert.Equal(t, tt.intent, ParseIntent(tt.param))
		})
	}
}

func TestProviderError(t *testing.T) {
	err := &ProviderError{Code: -1, Msg: "签名错误"}
	assert.ErrorIs(t, err, ErrProvider)
	assert.Equal(t, "provider error: 签名错误", err.Error())
	assert.Equal(t, "provider error: code 2", (&ProviderError{Code: 2}).Error())
}
