package payment

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/mbtipay/internal/domain"
	"github.com/GlebRadaev/mbtipay/internal/dto"
	"github.com/GlebRadaev/mbtipay/pkg/signature"
)

const tradeNo = "MBTI_13800138000_1714564800000_42"

func NewMock(t *testing.T) (*PaymentHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	return handler, service
}

func TestCreateOrderHandler(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		headers      map[string]string
		prepareMock  func(service *MockService)
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Invalid body",
			body:         "{",
			prepareMock:  func(*MockService) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Created",
			body: `{"mbtiResult":"RECHARGE_10","phone":"13800138000"}`,
			headers: map[string]string{
				"X-Forwarded-For": "8.8.8.8, 10.0.0.1",
				"User-Agent":      "Mozilla/5.0 (iPhone) Mobile/15E148",
			},
			prepareMock: func(service *MockService) {
				service.EXPECT().CreateOrder(gomock.Any(), domain.CheckoutRequest{
					Product:  "RECHARGE_10",
					Phone:    "13800138000",
					ClientIP: "8.8.8.8",
					Device:   "mobile",
					SiteURL:  "http://mbti.example",
				}).Return(&domain.CheckoutResult{OutTradeNo: tradeNo, TradeNo: "T1", PayType: "qrcode", PayInfo: "https://qr", Money: "3.00"}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"outTradeNo":"` + tradeNo + `","tradeNo":"T1","payType":"qrcode","payInfo":"https://qr","money":"3.00"}`,
		},
		{
			name:    "CF header wins",
			body:    `{"mbtiResult":"INTJ","phone":"13800138000","type":"wxpay","method":"jump"}`,
			headers: map[string]string{"CF-Connecting-IP": "1.1.1.1", "X-Forwarded-For": "8.8.8.8"},
			prepareMock: func(service *MockService) {
				service.EXPECT().CreateOrder(gomock.Any(), domain.CheckoutRequest{
					Product: "INTJ", Phone: "13800138000", Method: "jump", PayType: "wxpay",
					ClientIP: "1.1.1.1", Device: "pc", SiteURL: "http://mbti.example",
				}).Return(&domain.CheckoutResult{OutTradeNo: tradeNo}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Validation error",
			body: `{"mbtiResult":"INTJ","phone":"1"}`,
			prepareMock: func(service *MockService) {
				service.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(nil, domain.ValidationErrorf("valid phone required"))
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"validation failed: valid phone required"}`,
		},
		{
			name: "Provider rejection carries its message",
			body: `{"mbtiResult":"INTJ","phone":"13800138000"}`,
			prepareMock: func(service *MockService) {
				service.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(nil, &domain.ProviderError{Code: -1, Msg: "merchant disabled"})
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"merchant disabled"}`,
		},
		{
			name: "Not configured",
			body: `{"mbtiResult":"INTJ","phone":"13800138000"}`,
			prepareMock: func(service *MockService) {
				service.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(nil, domain.ErrConfiguration)
			},
			expectedCode: http.StatusInternalServerError,
		},
		{
			name: "Unexpected error",
			body: `{"mbtiResult":"INTJ","phone":"13800138000"}`,
			prepareMock: func(service *MockService) {
				service.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := NewMock(t)
			tt.prepareMock(service)

			r := httptest.NewRequest(http.MethodPost, "http://mbti.example/api/zy/create-order", bytes.NewBufferString(tt.body))
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			handler.CreateOrder(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestNotifyHandler(t *testing.T) {
	tests := []struct {
		name         string
		method       string
		query        string
		form         url.Values
		prepareMock  func(service *MockService)
		expectedCode int
		expectedBody string
	}{
		{
			name:   "GET notification applied",
			method: http.MethodGet,
			query:  "out_trade_no=" + tradeNo + "&trade_status=TRADE_SUCCESS&sign=abc",
			prepareMock: func(service *MockService) {
				service.EXPECT().HandleNotify(gomock.Any(), signature.Params{
					"out_trade_no": tradeNo, "trade_status": "TRADE_SUCCESS", "sign": "abc",
				}).Return(domain.ApplyApplied, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: "success",
		},
		{
			name:   "POST body wins over query",
			method: http.MethodPost,
			query:  "out_trade_no=spoofed&param=INTJ",
			form:   url.Values{"out_trade_no": {tradeNo}, "trade_status": {"TRADE_SUCCESS"}, "sign": {"a+b/c="}},
			prepareMock: func(service *MockService) {
				service.EXPECT().HandleNotify(gomock.Any(), signature.Params{
					"out_trade_no": tradeNo, "trade_status": "TRADE_SUCCESS", "sign": "a+b/c=", "param": "INTJ",
				}).Return(domain.ApplyDuplicate, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: "success",
		},
		{
			name:   "Foreign trade acknowledged",
			method: http.MethodGet,
			query:  "out_trade_no=OTHER_1",
			prepareMock: func(service *MockService) {
				service.EXPECT().HandleNotify(gomock.Any(), gomock.Any()).Return(domain.ApplyForeign, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: "success",
		},
		{
			name:   "Bad signature",
			method: http.MethodGet,
			query:  "out_trade_no=" + tradeNo,
			prepareMock: func(service *MockService) {
				service.EXPECT().HandleNotify(gomock.Any(), gomock.Any()).Return(domain.ApplyOutcome(0), domain.ErrSignature)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: "invalid sign",
		},
		{
			name:   "Trade not successful",
			method: http.MethodGet,
			query:  "out_trade_no=" + tradeNo,
			prepareMock: func(service *MockService) {
				service.EXPECT().HandleNotify(gomock.Any(), gomock.Any()).Return(domain.ApplyOutcome(0), domain.ErrTradeStatus)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: "invalid status",
		},
		{
			name:   "Missing public key",
			method: http.MethodGet,
			query:  "out_trade_no=" + tradeNo,
			prepareMock: func(service *MockService) {
				service.EXPECT().HandleNotify(gomock.Any(), gomock.Any()).Return(domain.ApplyOutcome(0), domain.ErrConfiguration)
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: "error",
		},
		{
			name:   "Storage failure asks for a retry",
			method: http.MethodGet,
			query:  "out_trade_no=" + tradeNo,
			prepareMock: func(service *MockService) {
				service.EXPECT().HandleNotify(gomock.Any(), gomock.Any()).Return(domain.ApplyOutcome(0), errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := NewMock(t)
			tt.prepareMock(service)

			var body *strings.Reader
			if tt.form != nil {
				body = strings.NewReader(tt.form.Encode())
			} else {
				body = strings.NewReader("")
			}
			r := httptest.NewRequest(tt.method, "/api/zy/notify?"+tt.query, body)
			if tt.form != nil {
				r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			}
			w := httptest.NewRecorder()
			handler.Notify(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestQueryOrderHandler(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		prepareMock  func(service *MockService)
		expectedCode int
		expectedBody dto.QueryOrderResponseDTO
	}{
		{
			name:  "Paid",
			query: "?outTradeNo=" + tradeNo,
			prepareMock: func(service *MockService) {
				service.EXPECT().QueryOrder(gomock.Any(), tradeNo).
					Return(&domain.PaymentStatus{OutTradeNo: tradeNo, Paid: true, Credited: true, Status: 1, TradeNo: "T1", Money: "1.00"}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.QueryOrderResponseDTO{OutTradeNo: tradeNo, Paid: true, Credited: true, Status: 1, TradeNo: "T1", Money: "1.00"},
		},
		{
			name:  "Provider refusal is still 200",
			query: "?outTradeNo=" + tradeNo,
			prepareMock: func(service *MockService) {
				service.EXPECT().QueryOrder(gomock.Any(), tradeNo).
					Return(&domain.PaymentStatus{OutTradeNo: tradeNo, Error: "order not found"}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.QueryOrderResponseDTO{OutTradeNo: tradeNo, Error: "order not found"},
		},
		{
			name:  "Missing trade number",
			query: "",
			prepareMock: func(service *MockService) {
				service.EXPECT().QueryOrder(gomock.Any(), "").Return(nil, domain.ValidationErrorf("outTradeNo required"))
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:  "Gateway down",
			query: "?outTradeNo=" + tradeNo,
			prepareMock: func(service *MockService) {
				service.EXPECT().QueryOrder(gomock.Any(), tradeNo).Return(nil, errors.New("timeout"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := NewMock(t)
			tt.prepareMock(service)

			r := httptest.NewRequest(http.MethodGet, "/api/zy/query-order"+tt.query, nil)
			w := httptest.NewRecorder()
			handler.QueryOrder(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
			if tt.expectedCode == http.StatusOK {
				var body dto.QueryOrderResponseDTO
				assert.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Equal(t, tt.expectedBody, body)
			}
		})
	}
}
