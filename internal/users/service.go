package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fieldopshq/fieldops-backend/pkg/config"
	"github.com/fieldopshq/fieldops-backend/pkg/db"
	"github.com/fieldopshq/fieldops-backend/pkg/db/models"
	pkgerrors "github.com/fieldopshq/fieldops-backend/pkg/errors"
	"github.com/fieldopshq/fieldops-backend/pkg/security"
	"gorm.io/gorm"
)

const minPasswordLength = 8

type userRepository interface {
	List(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, record *models.User) error
	Update(ctx context.Context, id int64, updates map[string]any) (int64, error)
	SoftDelete(ctx context.Context, id int64) (int64, error)
}

// Service exposes account administration operations.
type Service interface {
	List(ctx context.Context) ([]UserDTO, error)
	GetByID(ctx context.Context, id int64) (*UserDTO, error)
	Create(ctx context.Context, input CreateUserInput) (*UserDTO, error)
	Update(ctx context.Context, id int64, input UpdateUserInput) (*UserDTO, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo        userRepository
	passwordCfg config.PasswordConfig
}

// ServiceParams bundles the service dependencies.
type ServiceParams struct {
	Repo        userRepository
	PasswordCfg config.PasswordConfig
}

// NewService builds a user administration service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{repo: params.Repo, passwordCfg: params.PasswordCfg}, nil
}

func (s *service) List(ctx context.Context) ([]UserDTO, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	dtos := make([]UserDTO, len(records))
	for i := range records {
		dtos[i] = *FromModel(&records[i])
	}
	return dtos, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*UserDTO, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return FromModel(record), nil
}

func (s *service) Create(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	record := &models.User{
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      input.IsAdmin,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("username %s is already taken", username))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	return FromModel(record), nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateUserInput) (*UserDTO, error) {
	updates := map[string]any{}
	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "username cannot be empty")
		}
		updates["username"] = username
	}
	if input.Password != nil {
		if len(*input.Password) < minPasswordLength {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("password must be at least %d characters", minPasswordLength))
		}
		hash, err := security.HashPassword(*input.Password, s.passwordCfg)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		updates["password_hash"] = hash
	}
	if input.IsAdmin != nil {
		updates["is_admin"] = *input.IsAdmin
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nothing to update")
	}

	rows, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "username is already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	if rows == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return s.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	rows, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return nil
}
