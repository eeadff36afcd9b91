package app

import (
	"context"
	"crypto/rand"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/GlebRadaev/mbtipay/internal/config"
	"github.com/GlebRadaev/mbtipay/internal/gateway"
	"github.com/GlebRadaev/mbtipay/internal/handlers"
	"github.com/GlebRadaev/mbtipay/internal/pg"
	"github.com/GlebRadaev/mbtipay/internal/reconcile"
	"github.com/GlebRadaev/mbtipay/internal/repo"
	"github.com/GlebRadaev/mbtipay/internal/service"
	"github.com/GlebRadaev/mbtipay/pkg/auth"
	"github.com/GlebRadaev/mbtipay/pkg/clients"
	"github.com/GlebRadaev/mbtipay/pkg/logger"
	"github.com/GlebRadaev/mbtipay/pkg/signature"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg  *config.Config
	api  *handlers.Handlers
	srv  *service.Services
	repo *repo.Repositories
	ext  *reconcile.Service

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	ext, jwtService, err := buildExternal(cfg)
	if err != nil {
		zap.L().Error("gateway keys rejected: ", zap.Error(err))
		return fmt.Errorf("can't load gateway keys: %w", err)
	}

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(ctx, pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool)

	conn := pg.New(pool)
	a.cfg = cfg
	a.repo = repo.New(conn, txManager)
	a.srv = service.New(cfg, a.repo, ext)
	a.api = handlers.New(a.srv, jwtService)
	a.ext = reconcile.New(cfg, a.srv.PaymentService)

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.startReconciler(ctx)

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

// buildExternal parses the gateway keys once. An unset key leaves its
// collaborator nil so requests fail with a configuration error; a malformed
// one stops start-up.
func buildExternal(cfg *config.Config) (service.External, auth.JWTServiceInterface, error) {
	var ext service.External

	var signer gateway.Signer
	if strings.TrimSpace(cfg.PrivateKey) != "" {
		s, err := signature.NewSigner(cfg.PrivateKey)
		if err != nil {
			return ext, nil, fmt.Errorf("private key: %w", err)
		}
		signer = s
	} else {
		zap.L().Warn("ZY_PRIVATE_KEY is not set, payment calls will fail")
	}

	if strings.TrimSpace(cfg.PublicKey) != "" {
		v, err := signature.NewVerifier(cfg.PublicKey)
		if err != nil {
			return ext, nil, fmt.Errorf("public key: %w", err)
		}
		ext.Verifier = v
	} else {
		zap.L().Warn("ZY_PUBLIC_KEY is not set, notifications will be rejected")
	}
	if cfg.MerchantID == "" {
		zap.L().Warn("ZY_PID is not set")
	}

	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return ext, nil, fmt.Errorf("jwt secret: %w", err)
		}
		zap.L().Info("JWT_SECRET is not set, admin tokens will not survive a restart")
	}
	jwtService := auth.NewJWTService(secret)

	ext.Gateway = gateway.New(cfg, signer, clients.NewHTTPClient())
	ext.JWT = jwtService
	return ext, jwtService, nil
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:              a.cfg.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) startReconciler(ctx context.Context) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.ext.Start(ctx)
	}()
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}
