package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/easemart/easemart-backend/internal/users"
	pkgauth "github.com/easemart/easemart-backend/pkg/auth"
	"github.com/easemart/easemart-backend/pkg/config"
	"github.com/easemart/easemart-backend/pkg/db"
	"github.com/easemart/easemart-backend/pkg/db/models"
	pkgerrors "github.com/easemart/easemart-backend/pkg/errors"
	"github.com/easemart/easemart-backend/pkg/logger"
	"github.com/easemart/easemart-backend/pkg/security"
	"gorm.io/gorm"
)

// Service handles account registration and credential exchange.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
}

// UserStore is the slice of the users repo the auth flows need.
type UserStore interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type service struct {
	store  UserStore
	jwtCfg config.JWTConfig
	pwCfg  config.PasswordConfig
	logg   *logger.Logger
	now    func() time.Time
}

// NewService wires the auth service. The clock is injectable for tests.
func NewService(store UserStore, jwtCfg config.JWTConfig, pwCfg config.PasswordConfig, logg *logger.Logger) Service {
	return &service{
		store:  store,
		jwtCfg: jwtCfg,
		pwCfg:  pwCfg,
		logg:   logg,
		now:    time.Now,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	if len(req.LogonKey) < s.pwCfg.MinLogonKeyLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("logon_key must be at least %d characters", s.pwCfg.MinLogonKeyLength))
	}

	encoded, err := security.HashLogonKey(req.LogonKey, s.pwCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash logon key")
	}

	created, err := s.store.Create(ctx, users.CreateUserDTO{
		Email:        req.Email,
		FullName:     req.FullName,
		LogonKeyHash: encoded,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}

	s.logg.Info(s.logg.WithUserID(ctx, created.ID.String()), "auth.registered")
	return &RegisterResponse{ID: created.ID}, nil
}

// Login verifies the credential pair and mints a token pair. Unknown emails
// and wrong logon keys produce the same error so callers cannot probe for
// registered addresses.
func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	invalid := func() error {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	user, err := s.store.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	match, err := security.VerifyLogonKey(req.LogonKey, user.LogonKeyHash)
	if err != nil {
		if errors.Is(err, security.ErrInvalidHash) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "stored credential is unreadable")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify logon key")
	}
	if !match {
		return nil, invalid()
	}

	now := s.now()
	access, err := pkgauth.MintAccessToken(s.jwtCfg, now, user.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	refresh, err := pkgauth.MintRefreshToken(s.jwtCfg, now, user.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint refresh token")
	}

	s.logg.Info(s.logg.WithUserID(ctx, user.ID.String()), "auth.logged_in")
	return &LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		LoggedInAs:   user.Email,
	}, nil
}
