package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/easemart/easemart-backend/pkg/config"
	"github.com/easemart/easemart-backend/pkg/db"
	"github.com/easemart/easemart-backend/pkg/db/models"
	pkgerrors "github.com/easemart/easemart-backend/pkg/errors"
	"github.com/easemart/easemart-backend/pkg/logger"
	"github.com/easemart/easemart-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UpdateUserInput carries the mutable user fields. Nil pointers mean "leave
// unchanged".
type UpdateUserInput struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	FullName *string `json:"full_name,omitempty"`
	LogonKey *string `json:"logon_key,omitempty"`
}

// Service exposes the account management operations. Update and Delete
// surface the raw row counts because the API returns them to clients as-is.
type Service interface {
	List(ctx context.Context, limit int) ([]UserDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*UserDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

// Repo is the persistence surface the service depends on.
type Repo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, limit int) ([]models.User, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type service struct {
	repo   Repo
	pwCfg  config.PasswordConfig
	rehash bool
	logg   *logger.Logger
}

// NewService wires the users service.
func NewService(repo Repo, pwCfg config.PasswordConfig, logg *logger.Logger) Service {
	return &service{
		repo:   repo,
		pwCfg:  pwCfg,
		rehash: pwCfg.RehashOnEveryUpdate,
		logg:   logg,
	}
}

func (s *service) List(ctx context.Context, limit int) ([]UserDTO, error) {
	rows, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	out := make([]UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return FromModel(user), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (int64, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	fields := map[string]any{}
	if input.Email != nil {
		fields["email"] = *input.Email
	}
	if input.FullName != nil {
		fields["full_name"] = *input.FullName
	}

	switch {
	case input.LogonKey != nil:
		if len(*input.LogonKey) < s.pwCfg.MinLogonKeyLength {
			return 0, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("logon_key must be at least %d characters", s.pwCfg.MinLogonKeyLength))
		}
		encoded, err := security.HashLogonKey(*input.LogonKey, s.pwCfg)
		if err != nil {
			return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash logon key")
		}
		fields["logon_key_hash"] = encoded
	case s.rehash:
		// Legacy behavior carried from the earlier system: an update that
		// omits the logon key still re-hashes the stored value, so the
		// original credential stops verifying. Controlled by
		// EASEMART_REHASH_ON_EVERY_UPDATE.
		encoded, err := security.HashLogonKey(current.LogonKeyHash, s.pwCfg)
		if err != nil {
			return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rehash stored logon key")
		}
		fields["logon_key_hash"] = encoded
	}

	if len(fields) == 0 {
		return 0, nil
	}

	count, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return 0, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	return count, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	count, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user")
	}
	if count == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return count, nil
}
