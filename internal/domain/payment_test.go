package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		product string
		want    string
	}{
		{"INTJ", "1.00"},
		{"", "1.00"},
		{"RECHARGE_3", "1.00"},
		{"RECHARGE_10", "3.00"},
		{"RECHARGE_30", "8.00"},
		{"RECHARGE_1000", "1.00"},
	}
	for _, tt := range tests {
		t.Run(tt.product, func(t *testing.T) {
			assert.Equal(t, tt.want, Price(tt.product))
		})
	}
}
