package authservice

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/mbtipay/internal/config"
	"github.com/GlebRadaev/mbtipay/internal/domain"
	"github.com/GlebRadaev/mbtipay/pkg/auth"
)

const tokenTTL = 12 * time.Hour

var ErrInvalidCredentials = errors.New("invalid credentials")

type Service struct {
	adminKey   string
	jwtService auth.JWTServiceInterface
	now        func() time.Time
}

func New(cfg *config.Config, jwtService auth.JWTServiceInterface) *Service {
	return &Service{
		adminKey:   cfg.AdminKey,
		jwtService: jwtService,
		now:        time.Now,
	}
}

// Login exchanges the shared admin key for a bearer token.
func (s *Service) Login(_ context.Context, adminKey string) (string, error) {
	if s.adminKey == "" {
		zap.L().Warn("admin login attempted but ADMIN_KEY is not set")
		return "", domain.ErrConfiguration
	}
	if subtle.ConstantTimeCompare([]byte(adminKey), []byte(s.adminKey)) != 1 {
		zap.L().Info("admin login rejected")
		return "", ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateJWT(auth.RoleAdmin, s.now().Add(tokenTTL))
	if err != nil {
		zap.L().Error("can't generate token", zap.Error(err))
		return "", err
	}
	zap.L().Info("admin logged in")
	return token, nil
}
