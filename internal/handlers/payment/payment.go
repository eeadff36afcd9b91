package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/GlebRadaev/mbtipay/internal/domain"
	"github.com/GlebRadaev/mbtipay/internal/dto"
	"github.com/GlebRadaev/mbtipay/pkg/signature"
	"github.com/GlebRadaev/mbtipay/pkg/utils"
)

const (
	ackSuccess       = "success"
	ackError         = "error"
	ackInvalidSign   = "invalid sign"
	ackInvalidStatus = "invalid status"
)

type Service interface {
	CreateOrder(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutResult, error)
	HandleNotify(ctx context.Context, params signature.Params) (domain.ApplyOutcome, error)
	QueryOrder(ctx context.Context, outTradeNo string) (*domain.PaymentStatus, error)
}

type PaymentHandler struct {
	paymentService Service
}

func New(paymentService Service) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// CreateOrder godoc
//
//	@Summary		Create a gateway order
//	@Description	Prices the product server-side, signs the order and forwards it to the payment gateway.
//	@Tags			Payment
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateOrderRequestDTO	true	"Order request"
//	@Success		200		{object}	dto.CreateOrderResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid input or gateway rejection"
//	@Failure		500		{object}	utils.Response	"Gateway not configured or unreachable"
//	@Router			/api/zy/create-order [post]
func (h *PaymentHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.paymentService.CreateOrder(r.Context(), domain.CheckoutRequest{
		Product:  req.MbtiResult,
		Phone:    req.Phone,
		Method:   req.Method,
		PayType:  req.Type,
		ClientIP: clientIP(r),
		Device:   device(r),
		SiteURL:  siteURL(r),
	})
	if err != nil {
		var providerErr *domain.ProviderError
		switch {
		case errors.Is(err, domain.ErrValidation):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.As(err, &providerErr):
			msg := providerErr.Msg
			if msg == "" {
				msg = "Create failed"
			}
			utils.RespondWithError(w, http.StatusBadRequest, msg)
		case errors.Is(err, domain.ErrConfiguration):
			utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.CreateOrderResponseDTO{
		OutTradeNo: result.OutTradeNo,
		TradeNo:    result.TradeNo,
		PayType:    result.PayType,
		PayInfo:    result.PayInfo,
		Money:      result.Money,
	})
}

// Notify godoc
//
//	@Summary		Gateway payment notification
//	@Description	Verifies the signed notification and applies the payment once. Answers the literal text "success" when the gateway must stop retrying.
//	@Tags			Payment
//	@Accept			x-www-form-urlencoded
//	@Produce		plain
//	@Success		200	{string}	string	"success"
//	@Failure		400	{string}	string	"invalid sign | invalid status"
//	@Failure		500	{string}	string	"error"
//	@Router			/api/zy/notify [post]
func (h *PaymentHandler) Notify(w http.ResponseWriter, r *http.Request) {
	params, err := notifyParams(r)
	if err != nil {
		utils.RespondWithText(w, http.StatusBadRequest, ackInvalidSign)
		return
	}

	outcome, err := h.paymentService.HandleNotify(r.Context(), params)
	switch {
	case err == nil:
		zap.L().Info("notification acknowledged", zap.String("out_trade_no", params["out_trade_no"]), zap.String("outcome", outcome.String()))
		utils.RespondWithText(w, http.StatusOK, ackSuccess)
	case errors.Is(err, domain.ErrSignature):
		utils.RespondWithText(w, http.StatusBadRequest, ackInvalidSign)
	case errors.Is(err, domain.ErrTradeStatus):
		utils.RespondWithText(w, http.StatusBadRequest, ackInvalidStatus)
	default:
		zap.L().Error("notification failed", zap.String("out_trade_no", params["out_trade_no"]), zap.Error(err))
		utils.RespondWithText(w, http.StatusInternalServerError, ackError)
	}
}

// QueryOrder godoc
//
//	@Summary		Poll a gateway order
//	@Description	Queries the gateway for the trade status and applies the payment once if it is paid.
//	@Tags			Payment
//	@Produce		json
//	@Param			outTradeNo	query		string	true	"Merchant trade number"
//	@Success		200			{object}	dto.QueryOrderResponseDTO
//	@Failure		400			{object}	utils.Response	"Missing trade number"
//	@Failure		500			{object}	utils.Response	"Gateway not configured or unreachable"
//	@Router			/api/zy/query-order [get]
func (h *PaymentHandler) QueryOrder(w http.ResponseWriter, r *http.Request) {
	status, err := h.paymentService.QueryOrder(r.Context(), r.URL.Query().Get("outTradeNo"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrConfiguration):
			utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.QueryOrderResponseDTO{
		OutTradeNo: status.OutTradeNo,
		Paid:       status.Paid,
		Status:     status.Status,
		TradeNo:    status.TradeNo,
		Money:      status.Money,
		Credited:   status.Credited,
		Error:      status.Error,
	})
}

// notifyParams merges query and form body; body values win.
func notifyParams(r *http.Request) (signature.Params, error) {
	params := signature.FromValues(r.URL.Query())
	if r.Method != http.MethodPost {
		return params, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	for k, v := range signature.FromValues(r.PostForm) {
		params[k] = v
	}
	return params, nil
}

func clientIP(r *http.Request) string {
	raw := r.Header.Get("CF-Connecting-IP")
	if raw == "" {
		raw = r.Header.Get("X-Forwarded-For")
	}
	first, _, _ := strings.Cut(raw, ",")
	return strings.TrimSpace(first)
}

func device(r *http.Request) string {
	if strings.Contains(r.UserAgent(), "Mobile") {
		return "mobile"
	}
	return "pc"
}

func siteURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
