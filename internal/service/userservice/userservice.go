package userservice

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/mbtipay/internal/domain"
	"github.com/GlebRadaev/mbtipay/internal/pg"
	"github.com/GlebRadaev/mbtipay/pkg/auth"
	"github.com/GlebRadaev/mbtipay/pkg/validate"
)

const (
	// HistoryLimit is how many records a phone keeps.
	HistoryLimit = 20

	DefaultListLimit = 50
	MaxListLimit     = 200

	saveAttempts = 3
)

type Repo interface {
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (bool, error)
	SetPIN(ctx context.Context, phone, pinHash string, now time.Time) (bool, error)
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}

type RecordRepo interface {
	Create(ctx context.Context, rec *domain.Record) (*domain.Record, error)
	FindByPhone(ctx context.Context, phone string) ([]domain.Record, error)
	Trim(ctx context.Context, phone string, keep int) (int64, error)
}

type Service struct {
	userRepo    Repo
	recordRepo  RecordRepo
	hashService auth.HashServiceInterface
	now         func() time.Time
}

func New(userRepo Repo, recordRepo RecordRepo, hashService auth.HashServiceInterface) *Service {
	return &Service{
		userRepo:    userRepo,
		recordRepo:  recordRepo,
		hashService: hashService,
		now:         time.Now,
	}
}

// Save stores a quiz result. The first save of a phone sets its PIN; later
// saves must present the same PIN.
func (s *Service) Save(ctx context.Context, req domain.SaveRequest) (*domain.SaveResult, error) {
	switch {
	case !validate.IsPhone(req.Phone):
		return nil, domain.ValidationErrorf("invalid phone")
	case !validate.IsPIN(req.PIN):
		return nil, domain.ValidationErrorf("pin must be 4 digits")
	case !validate.IsResultCode(req.Result):
		return nil, domain.ValidationErrorf("invalid result")
	}

	user, isNew, err := s.authenticate(ctx, req.Phone, req.PIN)
	if err != nil {
		return nil, err
	}

	rec, err := s.createRecord(ctx, req)
	if err != nil {
		return nil, err
	}

	if _, err := s.recordRepo.Trim(ctx, req.Phone, HistoryLimit); err != nil {
		zap.L().Warn("can't trim history", zap.String("phone", req.Phone), zap.Error(err))
	}
	records, err := s.recordRepo.FindByPhone(ctx, req.Phone)
	if err != nil {
		return nil, err
	}

	zap.L().Info("record saved", zap.String("phone", req.Phone), zap.Bool("new_user", isNew))
	return &domain.SaveResult{
		RecordCount: len(records),
		Credits:     user.Credits,
		TS:          rec.TS,
		IsNewUser:   isNew,
	}, nil
}

// authenticate loads or creates the user and checks the PIN.
func (s *Service) authenticate(ctx context.Context, phone, pin string) (*domain.User, bool, error) {
	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, false, err
	}

	if user == nil {
		hash, err := s.hashService.HashPIN(pin)
		if err != nil {
			return nil, false, fmt.Errorf("hash pin: %w", err)
		}
		now := s.now()
		user = &domain.User{Phone: phone, PinHash: hash, CreatedAt: now, UpdatedAt: now}
		created, err := s.userRepo.Create(ctx, user)
		if err != nil {
			return nil, false, err
		}
		if created {
			return user, true, nil
		}
		// lost a race with another first save; check against the winner
		if user, err = s.userRepo.FindByPhone(ctx, phone); err != nil {
			return nil, false, err
		}
		if user == nil {
			return nil, false, domain.ErrUserNotFound
		}
	}

	if user.HasPIN() {
		if !s.hashService.ComparePIN(user.PinHash, pin) {
			return nil, false, domain.ErrInvalidPIN
		}
		return user, false, nil
	}

	hash, err := s.hashService.HashPIN(pin)
	if err != nil {
		return nil, false, fmt.Errorf("hash pin: %w", err)
	}
	set, err := s.userRepo.SetPIN(ctx, phone, hash, s.now())
	if err != nil {
		return nil, false, err
	}
	if !set {
		return s.authenticate(ctx, phone, pin)
	}
	user.PinHash = hash
	return user, false, nil
}

func (s *Service) createRecord(ctx context.Context, req domain.SaveRequest) (*domain.Record, error) {
	ts := s.now().UnixMilli()
	var lastErr error
	for i := 0; i < saveAttempts; i++ {
		rec, err := s.recordRepo.Create(ctx, &domain.Record{
			Phone:       req.Phone,
			Result:      req.Result,
			QuestionSet: req.QuestionSet,
			TS:          ts + int64(i),
		})
		if err == nil {
			return rec, nil
		}
		if !pg.IsUniqueViolation(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func (s *Service) History(ctx context.Context, phone string) (*domain.History, error) {
	if !validate.IsPhone(phone) {
		return nil, domain.ValidationErrorf("invalid phone")
	}

	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return &domain.History{Records: []domain.Record{}}, nil
	}

	records, err := s.recordRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []domain.Record{}
	}
	return &domain.History{Found: true, Credits: user.Credits, Records: records}, nil
}

// ListUsers returns one user when phone is set, otherwise a page ordered by
// last update. limit is clamped to [1, MaxListLimit].
func (s *Service) ListUsers(ctx context.Context, phone string, limit, offset int) ([]domain.User, error) {
	if phone != "" {
		user, err := s.userRepo.FindByPhone(ctx, phone)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return []domain.User{}, nil
		}
		return []domain.User{*user}, nil
	}

	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	users, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		zap.L().Error("failed to list users", zap.Error(err))
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}
