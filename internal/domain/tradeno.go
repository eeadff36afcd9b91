package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/GlebRadaev/mbtipay/pkg/validate"
)

const (
	TradeNoPrefix = "MBTI"
	// DefaultCredits is granted by a single-report unlock and by a recharge
	// whose size can't be read.
	DefaultCredits = 3
	RechargePrefix = "RECHARGE_"
)

// NewTradeNo builds MBTI_<phone>_<unix millis>_<disambiguator>.
func NewTradeNo(phone string, now time.Time, disambiguator int) string {
	return fmt.Sprintf("%s_%s_%d_%d", TradeNoPrefix, phone, now.UnixMilli(), disambiguator)
}

// PhoneFromTradeNo recovers the phone segment. ok is false for trade numbers
// this system did not issue.
func PhoneFromTradeNo(tradeNo string) (phone string, ok bool) {
	parts := strings.Split(tradeNo, "_")
	if len(parts) != 4 || parts[0] != TradeNoPrefix {
		return "", false
	}
	if !validate.IsPhone(parts[1]) {
		return "", false
	}
	for _, p := range parts[2:] {
		if _, err := strconv.ParseUint(p, 10, 64); err != nil {
			return "", false
		}
	}
	return parts[1], true
}

// Intent is what a payment buys, decoded from the gateway's opaque param.
type Intent struct {
	Credits  int
	Recharge bool
}

func ParseIntent(param string) Intent {
	if !strings.HasPrefix(param, RechargePrefix) {
		return Intent{Credits: DefaultCredits}
	}
	n, err := strconv.Atoi(strings.TrimPrefix(param, RechargePrefix))
	if err != nil || n <= 0 {
		return Intent{Credits: DefaultCredits, Recharge: true}
	}
	return Intent{Credits: n, Recharge: true}
}
