package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/mbtipay/internal/config"
	"github.com/GlebRadaev/mbtipay/internal/domain"
	"github.com/GlebRadaev/mbtipay/pkg/clients"
	"github.com/GlebRadaev/mbtipay/pkg/signature"
)

const (
	createPath = "/api/pay/create"
	queryPath  = "/api/pay/query"

	// TradeSuccess is the trade_status of a paid notification.
	TradeSuccess = "TRADE_SUCCESS"
	statusPaid   = 1
)

type Signer interface {
	SignParams(params signature.Params) error
}

type CreateRequest struct {
	Method     string
	Device     string
	Type       string
	OutTradeNo string
	NotifyURL  string
	ReturnURL  string
	Name       string
	Money      string
	ClientIP   string
	Param      string
}

type CreateResponse struct {
	Code    FlexInt    `json:"code"`
	Msg     string     `json:"msg"`
	TradeNo FlexString `json:"trade_no"`
	PayType string     `json:"pay_type"`
	PayInfo string     `json:"pay_info"`
}

type QueryResponse struct {
	Code       FlexInt    `json:"code"`
	Msg        string     `json:"msg"`
	Status     FlexInt    `json:"status"`
	TradeNo    FlexString `json:"trade_no"`
	OutTradeNo string     `json:"out_trade_no"`
	Money      FlexString `json:"money"`
	Param      string     `json:"param"`
}

func (r *QueryResponse) Paid() bool {
	return int(r.Status) == statusPaid
}

type Client struct {
	baseURL    string
	merchantID string
	signer     Signer
	client     clients.HTTPClientI
	now        func() time.Time
}

// New returns a client for the gateway. signer may be nil when no private key
// is configured; every call then fails with domain.ErrConfiguration.
func New(cfg *config.Config, signer Signer, client clients.HTTPClientI) *Client {
	return &Client{
		baseURL:    cfg.GatewayAddress,
		merchantID: cfg.MerchantID,
		signer:     signer,
		client:     client,
		now:        time.Now,
	}
}

func (c *Client) CreateOrder(ctx context.Context, req CreateRequest) (*CreateResponse, error) {
	params := signature.Params{
		"method":       req.Method,
		"device":       req.Device,
		"type":         req.Type,
		"out_trade_no": req.OutTradeNo,
		"notify_url":   req.NotifyURL,
		"return_url":   req.ReturnURL,
		"name":         req.Name,
		"money":        req.Money,
		"clientip":     req.ClientIP,
		"param":        req.Param,
	}

	var resp CreateResponse
	if err := c.call(ctx, createPath, params, &resp); err != nil {
		return nil, err
	}
	if resp.Code != 0 {
		zap.L().Warn("gateway rejected order", zap.String("out_trade_no", req.OutTradeNo), zap.Int("code", int(resp.Code)), zap.String("msg", resp.Msg))
		return nil, &domain.ProviderError{Code: int(resp.Code), Msg: resp.Msg}
	}
	return &resp, nil
}

func (c *Client) QueryOrder(ctx context.Context, outTradeNo string) (*QueryResponse, error) {
	params := signature.Params{
		"out_trade_no": outTradeNo,
	}

	var resp QueryResponse
	if err := c.call(ctx, queryPath, params, &resp); err != nil {
		return nil, err
	}
	if resp.Code != 0 {
		return nil, &domain.ProviderError{Code: int(resp.Code), Msg: resp.Msg}
	}
	return &resp, nil
}

func (c *Client) call(ctx context.Context, path string, params signature.Params, out interface{}) error {
	if c.merchantID == "" || c.signer == nil {
		return domain.ErrConfiguration
	}
	params["pid"] = c.merchantID
	params["timestamp"] = strconv.FormatInt(c.now().Unix(), 10)

	if err := c.signer.SignParams(params); err != nil {
		return fmt.Errorf("can't sign %s request: %w", path, err)
	}

	status, body, err := c.client.PostForm(ctx, c.baseURL+path, params.Values())
	if err != nil {
		return fmt.Errorf("gateway %s request failed: %w", path, err)
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return fmt.Errorf("gateway %s returned http %d", path, status)
	}
	if err := json.Unmarshal(body, out); err != nil {
		zap.L().Error("unexpected gateway response", zap.String("path", path), zap.ByteString("body", truncate(body)))
		return fmt.Errorf("gateway %s returned non-json body: %w", path, err)
	}
	return nil
}

func truncate(b []byte) []byte {
	const max = 512
	if len(b) > max {
		return b[:max]
	}
	return b
}
