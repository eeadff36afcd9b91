package service

import (
	"github.com/GlebRadaev/mbtipay/internal/config"
	"github.com/GlebRadaev/mbtipay/internal/handlers/admin"
	"github.com/GlebRadaev/mbtipay/internal/handlers/payment"
	"github.com/GlebRadaev/mbtipay/internal/handlers/user"
	"github.com/GlebRadaev/mbtipay/internal/reconcile"
	"github.com/GlebRadaev/mbtipay/internal/repo"
	"github.com/GlebRadaev/mbtipay/internal/service/authservice"
	"github.com/GlebRadaev/mbtipay/internal/service/creditservice"
	"github.com/GlebRadaev/mbtipay/internal/service/paymentservice"
	"github.com/GlebRadaev/mbtipay/internal/service/userservice"
	pkgauth "github.com/GlebRadaev/mbtipay/pkg/auth"
)

type PaymentService interface {
	payment.Service
	reconcile.Settler
}

type UserService interface {
	user.Service
	admin.UserService
}

type CreditService interface {
	user.CreditService
	admin.CreditService
	paymentservice.Ledger
}

// External holds the collaborators built from configuration at start-up.
type External struct {
	Gateway  paymentservice.Gateway
	Verifier paymentservice.Verifier
	JWT      pkgauth.JWTServiceInterface
}

type Services struct {
	AuthService    admin.AuthService
	PaymentService PaymentService
	UserService    UserService
	CreditService  CreditService
}

func New(cfg *config.Config, repo *repo.Repositories, ext External) *Services {
	creditService := creditservice.New(repo.OrderRepo, repo.BalanceRepo, repo.ViewRepo, repo.TXManager)
	paymentService := paymentservice.New(cfg, ext.Gateway, ext.Verifier, repo.CheckoutRepo, creditService)
	userService := userservice.New(repo.UserRepo, repo.RecordRepo, &pkgauth.HashService{})
	authService := authservice.New(cfg, ext.JWT)

	return &Services{
		AuthService:    authService,
		PaymentService: paymentService,
		UserService:    userService,
		CreditService:  creditService,
	}
}
