package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	_ "github.com/GlebRadaev/mbtipay/docs"
	"github.com/GlebRadaev/mbtipay/internal/service"
	"github.com/GlebRadaev/mbtipay/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := New(&service.Services{}, auth.NewMockJWTServiceInterface(ctrl))
	assert.NotNil(t, h, "Handlers should not be nil")
	assert.NotNil(t, h.PaymentHandler)
	assert.NotNil(t, h.UserHandler)
	assert.NotNil(t, h.AdminHandler)
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPaymentHandler := NewMockPaymentHandler(ctrl)
	mockUserHandler := NewMockUserHandler(ctrl)
	mockAdminHandler := NewMockAdminHandler(ctrl)
	mockJWT := auth.NewMockJWTServiceInterface(ctrl)

	mockPaymentHandler.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).AnyTimes()
	mockPaymentHandler.EXPECT().Notify(gomock.Any(), gomock.Any()).AnyTimes()
	mockPaymentHandler.EXPECT().QueryOrder(gomock.Any(), gomock.Any()).AnyTimes()
	mockUserHandler.EXPECT().Save(gomock.Any(), gomock.Any()).AnyTimes()
	mockUserHandler.EXPECT().Query(gomock.Any(), gomock.Any()).AnyTimes()
	mockUserHandler.EXPECT().UseCredit(gomock.Any(), gomock.Any()).AnyTimes()
	mockAdminHandler.EXPECT().Login(gomock.Any(), gomock.Any()).AnyTimes()
	mockAdminHandler.EXPECT().Users(gomock.Any(), gomock.Any()).AnyTimes()
	mockAdminHandler.EXPECT().AddCredits(gomock.Any(), gomock.Any()).AnyTimes()
	mockJWT.EXPECT().ValidateToken("admin-token").Return(&auth.Claims{Role: auth.RoleAdmin}, nil).AnyTimes()
	mockJWT.EXPECT().ValidateToken("stale-token").Return(nil, jwt.ErrSignatureInvalid).AnyTimes()

	h := &Handlers{
		PaymentHandler: mockPaymentHandler,
		UserHandler:    mockUserHandler,
		AdminHandler:   mockAdminHandler,
		JWTService:     mockJWT,
	}

	router := chi.NewRouter()
	h.InitRoutes(router)

	tests := []struct {
		method string
		url    string
		token  string
		status int
	}{
		{"POST", "/api/zy/create-order", "", http.StatusOK},
		{"GET", "/api/zy/notify", "", http.StatusOK},
		{"POST", "/api/zy/notify", "", http.StatusOK},
		{"GET", "/api/zy/query-order", "", http.StatusOK},
		{"POST", "/api/user/save", "", http.StatusOK},
		{"GET", "/api/user/query", "", http.StatusOK},
		{"POST", "/api/user/use-credit", "", http.StatusOK},
		{"POST", "/api/admin/login", "", http.StatusOK},
		{"GET", "/api/admin/users", "", http.StatusUnauthorized},
		{"POST", "/api/admin/add-credits", "", http.StatusUnauthorized},
		{"GET", "/api/admin/users", "stale-token", http.StatusUnauthorized},
		{"GET", "/api/admin/users", "admin-token", http.StatusOK},
		{"POST", "/api/admin/add-credits", "admin-token", http.StatusOK},
		{"GET", "/api/zy/create-order", "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
