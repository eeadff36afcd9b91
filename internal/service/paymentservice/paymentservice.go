package paymentservice

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/mbtipay/internal/config"
	"github.com/GlebRadaev/mbtipay/internal/domain"
	"github.com/GlebRadaev/mbtipay/internal/gateway"
	"github.com/GlebRadaev/mbtipay/pkg/retry"
	"github.com/GlebRadaev/mbtipay/pkg/signature"
	"github.com/GlebRadaev/mbtipay/pkg/validate"
)

const (
	notifyPath = "/api/zy/notify"
	returnPath = "/payment"
)

type Gateway interface {
	CreateOrder(ctx context.Context, req gateway.CreateRequest) (*gateway.CreateResponse, error)
	QueryOrder(ctx context.Context, outTradeNo string) (*gateway.QueryResponse, error)
}

type Verifier interface {
	Verify(params signature.Params) bool
}

type CheckoutRepo interface {
	Save(ctx context.Context, c *domain.Checkout) error
	FindUnsettled(ctx context.Context, from, to time.Time, limit int) ([]domain.Checkout, error)
	MarkChecked(ctx context.Context, outTradeNo string, now time.Time) error
}

type Ledger interface {
	ApplyPayment(ctx context.Context, outTradeNo, param string) (domain.ApplyOutcome, error)
	IsProcessed(ctx context.Context, outTradeNo string) (bool, error)
}

type Service struct {
	gateway      Gateway
	verifier     Verifier
	checkoutRepo CheckoutRepo
	ledger       Ledger
	publicURL    string
	now          func() time.Time
	rand         func(n int) int
}

// New wires the payment flows. verifier is nil when no gateway public key is
// configured; notifications then fail with domain.ErrConfiguration.
func New(cfg *config.Config, gw Gateway, verifier Verifier, checkoutRepo CheckoutRepo, ledger Ledger) *Service {
	return &Service{
		gateway:      gw,
		verifier:     verifier,
		checkoutRepo: checkoutRepo,
		ledger:       ledger,
		publicURL:    cfg.PublicURL,
		now:          time.Now,
		rand:         rand.Intn,
	}
}

func (s *Service) CreateOrder(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutResult, error) {
	if req.Product == "" {
		return nil, domain.ValidationErrorf("mbtiResult required")
	}
	if !validate.IsPhone(req.Phone) {
		return nil, domain.ValidationErrorf("valid phone required")
	}

	now := s.now()
	outTradeNo := domain.NewTradeNo(req.Phone, now, s.rand(1000))
	money := domain.Price(req.Product)
	base := s.siteURL(req.SiteURL)

	resp, err := s.gateway.CreateOrder(ctx, gateway.CreateRequest{
		Method:     orDefault(req.Method, domain.DefaultMethod),
		Device:     orDefault(req.Device, "pc"),
		Type:       orDefault(req.PayType, domain.DefaultPayType),
		OutTradeNo: outTradeNo,
		NotifyURL:  base + notifyPath,
		ReturnURL:  base + returnPath,
		Name:       domain.ProductName,
		Money:      money,
		ClientIP:   clientIP(req.ClientIP),
		Param:      req.Product,
	})
	if err != nil {
		zap.L().Error("failed to create order", zap.String("out_trade_no", outTradeNo), zap.Error(err))
		return nil, err
	}

	checkout := &domain.Checkout{
		OutTradeNo: outTradeNo,
		Phone:      req.Phone,
		Param:      req.Product,
		Money:      money,
		CreatedAt:  now,
	}
	if err := s.checkoutRepo.Save(ctx, checkout); err != nil {
		zap.L().Warn("checkout not recorded, sweep will miss it", zap.String("out_trade_no", outTradeNo), zap.Error(err))
	}

	zap.L().Info("order created", zap.String("out_trade_no", outTradeNo), zap.String("money", money))
	return &domain.CheckoutResult{
		OutTradeNo: outTradeNo,
		TradeNo:    string(resp.TradeNo),
		PayType:    resp.PayType,
		PayInfo:    resp.PayInfo,
		Money:      money,
	}, nil
}

// HandleNotify authenticates a gateway notification and applies it.
func (s *Service) HandleNotify(ctx context.Context, params signature.Params) (domain.ApplyOutcome, error) {
	if s.verifier == nil {
		return 0, domain.ErrConfiguration
	}
	if !s.verifier.Verify(params) {
		zap.L().Warn("notification with bad signature", zap.String("out_trade_no", params["out_trade_no"]))
		return 0, domain.ErrSignature
	}
	if params["trade_status"] != gateway.TradeSuccess {
		return 0, domain.ErrTradeStatus
	}
	return s.ledger.ApplyPayment(ctx, params["out_trade_no"], params["param"])
}

// QueryOrder asks the gateway for the trade status and, when paid, applies it
// through the same gate as the webhook.
func (s *Service) QueryOrder(ctx context.Context, outTradeNo string) (*domain.PaymentStatus, error) {
	if outTradeNo == "" {
		return nil, domain.ValidationErrorf("outTradeNo required")
	}

	resp, err := s.gateway.QueryOrder(ctx, outTradeNo)
	var providerErr *domain.ProviderError
	if errors.As(err, &providerErr) {
		return &domain.PaymentStatus{OutTradeNo: outTradeNo, Error: providerErr.Msg}, nil
	}
	if err != nil {
		return nil, err
	}

	paid := resp.Paid()
	credited := false
	if paid {
		if _, err := s.ledger.ApplyPayment(ctx, outTradeNo, resp.Param); err != nil {
			zap.L().Error("paid order not applied on poll", zap.String("out_trade_no", outTradeNo), zap.Error(err))
		}
		credited, err = s.ledger.IsProcessed(ctx, outTradeNo)
		if err != nil {
			zap.L().Error("can't check order gate", zap.String("out_trade_no", outTradeNo), zap.Error(err))
		}
	}

	return &domain.PaymentStatus{
		OutTradeNo: outTradeNo,
		Paid:       paid,
		Credited:   credited,
		Status:     int(resp.Status),
		TradeNo:    string(resp.TradeNo),
		Money:      string(resp.Money),
	}, nil
}

// Settle polls one recorded checkout. done is true once the payment is known
// paid and applied. A gateway refusal is not an error; the order may simply
// not exist on its side yet. A missing gateway configuration is permanent.
func (s *Service) Settle(ctx context.Context, c domain.Checkout) (done bool, err error) {
	resp, err := s.gateway.QueryOrder(ctx, c.OutTradeNo)
	if errors.Is(err, domain.ErrProvider) {
		s.markChecked(ctx, c)
		return false, nil
	}
	if errors.Is(err, domain.ErrConfiguration) {
		return false, fmt.Errorf("%w: %w", retry.ErrPermanent, err)
	}
	if err != nil {
		return false, err
	}
	if !resp.Paid() {
		s.markChecked(ctx, c)
		return false, nil
	}

	param := resp.Param
	if param == "" {
		param = c.Param
	}
	outcome, err := s.ledger.ApplyPayment(ctx, c.OutTradeNo, param)
	if err != nil {
		return false, err
	}
	if outcome == domain.ApplyApplied {
		zap.L().Info("sweep recovered payment", zap.String("out_trade_no", c.OutTradeNo))
	}
	return true, nil
}

func (s *Service) markChecked(ctx context.Context, c domain.Checkout) {
	if err := s.checkoutRepo.MarkChecked(ctx, c.OutTradeNo, s.now()); err != nil {
		zap.L().Warn("checkout check not recorded", zap.String("out_trade_no", c.OutTradeNo), zap.Error(err))
	}
}

func (s *Service) Unsettled(ctx context.Context, from, to time.Time, limit int) ([]domain.Checkout, error) {
	return s.checkoutRepo.FindUnsettled(ctx, from, to, limit)
}

func (s *Service) siteURL(requestURL string) string {
	if s.publicURL != "" {
		return s.publicURL
	}
	return strings.TrimRight(requestURL, "/")
}

func clientIP(ip string) string {
	if validate.IsIPv4(ip) {
		return ip
	}
	return domain.FallbackIP
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
