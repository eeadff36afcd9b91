package domain

import "fmt"

const (
	DefaultMethod  = "web"
	DefaultPayType = "alipay"
	ProductName    = "MBTI报告解锁"
	defaultProduct = "default"
	// FallbackIP is sent to the gateway when the client address is not IPv4.
	FallbackIP = "127.0.0.1"
)

// prices in fen, keyed by product code. Clients never send an amount.
var prices = map[string]int{
	defaultProduct: 100,
	"RECHARGE_3":   100,
	"RECHARGE_10":  300,
	"RECHARGE_30":  800,
}

// Price returns the yuan amount for product with two decimals. Unknown codes
// cost the default price.
func Price(product string) string {
	fen, ok := prices[product]
	if !ok {
		fen = prices[defaultProduct]
	}
	return fmt.Sprintf("%d.%02d", fen/100, fen%100)
}

type CheckoutRequest struct {
	Product  string
	Phone    string
	Method   string
	PayType  string
	ClientIP string
	Device   string
	// SiteURL is the scheme and host the request reached us on; the
	// configured public URL wins over it.
	SiteURL string
}

type CheckoutResult struct {
	OutTradeNo string
	TradeNo    string
	PayType    string
	PayInfo    string
	Money      string
}

// PaymentStatus is what a status poll reports back to the client.
type PaymentStatus struct {
	OutTradeNo string
	Paid       bool
	Status     int
	TradeNo    string
	Money      string
	// Credited is true once the trade number passed the ledger gate.
	Credited bool
	// Error holds the gateway's message when it refused the query.
	Error string
}
