package handlers

import (
	"net/http"

	_ "github.com/GlebRadaev/mbtipay/docs"
	adminhandlers "github.com/GlebRadaev/mbtipay/internal/handlers/admin"
	paymenthandlers "github.com/GlebRadaev/mbtipay/internal/handlers/payment"
	userhandlers "github.com/GlebRadaev/mbtipay/internal/handlers/user"
	"github.com/GlebRadaev/mbtipay/internal/service"
	"github.com/GlebRadaev/mbtipay/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type PaymentHandler interface {
	CreateOrder(w http.ResponseWriter, r *http.Request)
	Notify(w http.ResponseWriter, r *http.Request)
	QueryOrder(w http.ResponseWriter, r *http.Request)
}

type UserHandler interface {
	Save(w http.ResponseWriter, r *http.Request)
	Query(w http.ResponseWriter, r *http.Request)
	UseCredit(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Users(w http.ResponseWriter, r *http.Request)
	AddCredits(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	PaymentHandler PaymentHandler
	UserHandler    UserHandler
	AdminHandler   AdminHandler
	JWTService     auth.JWTServiceInterface
}

func New(s *service.Services, jwtService auth.JWTServiceInterface) *Handlers {
	return &Handlers{
		PaymentHandler: paymenthandlers.New(s.PaymentService),
		UserHandler:    userhandlers.New(s.UserService, s.CreditService),
		AdminHandler:   adminhandlers.New(s.AuthService, s.UserService, s.CreditService),
		JWTService:     jwtService,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api/zy", func(r chi.Router) {
		r.Post("/create-order", h.PaymentHandler.CreateOrder)
		r.Get("/notify", h.PaymentHandler.Notify)
		r.Post("/notify", h.PaymentHandler.Notify)
		r.Get("/query-order", h.PaymentHandler.QueryOrder)
	})
	r.Route("/api/user", func(r chi.Router) {
		r.Post("/save", h.UserHandler.Save)
		r.Get("/query", h.UserHandler.Query)
		r.Post("/use-credit", h.UserHandler.UseCredit)
	})
	r.Route("/api/admin", func(r chi.Router) {
		r.Post("/login", h.AdminHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(h.JWTService, auth.RoleAdmin))
			r.Get("/users", h.AdminHandler.Users)
			r.Post("/add-credits", h.AdminHandler.AddCredits)
		})
	})

	return r
}
