package repo

import (
	"github.com/GlebRadaev/mbtipay/internal/pg"
	balancerepo "github.com/GlebRadaev/mbtipay/internal/repo/balance-repo"
	checkoutrepo "github.com/GlebRadaev/mbtipay/internal/repo/checkout-repo"
	orderrepo "github.com/GlebRadaev/mbtipay/internal/repo/order-repo"
	recordrepo "github.com/GlebRadaev/mbtipay/internal/repo/record-repo"
	userrepo "github.com/GlebRadaev/mbtipay/internal/repo/user-repo"
	"github.com/GlebRadaev/mbtipay/internal/service/creditservice"
	"github.com/GlebRadaev/mbtipay/internal/service/paymentservice"
	"github.com/GlebRadaev/mbtipay/internal/service/userservice"
)

type Repositories struct {
	UserRepo     userservice.Repo
	RecordRepo   userservice.RecordRepo
	ViewRepo     creditservice.RecordRepo
	BalanceRepo  creditservice.BalanceRepo
	OrderRepo    creditservice.OrderRepo
	CheckoutRepo paymentservice.CheckoutRepo
	TXManager    pg.TXManager
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	recordRepo := recordrepo.New(conn)

	return &Repositories{
		UserRepo:     userrepo.New(conn),
		RecordRepo:   recordRepo,
		ViewRepo:     recordRepo,
		BalanceRepo:  balancerepo.New(conn),
		OrderRepo:    orderrepo.New(conn),
		CheckoutRepo: checkoutrepo.New(conn),
		TXManager:    txManager,
	}
}
