package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	pkgauth "github.com/fieldopshq/fieldops-backend/pkg/auth"
	"github.com/fieldopshq/fieldops-backend/pkg/config"
	"github.com/fieldopshq/fieldops-backend/pkg/db"
	"github.com/fieldopshq/fieldops-backend/pkg/db/models"
	pkgerrors "github.com/fieldopshq/fieldops-backend/pkg/errors"
	"github.com/fieldopshq/fieldops-backend/pkg/security"
	"gorm.io/gorm"
)

// The same message covers unknown users and wrong passwords so the
// endpoint cannot be used to probe for usernames.
const invalidCredentialsMessage = "invalid credentials"

const minPasswordLength = 8

type userRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, record *models.User) error
}

// RegisterInput carries the fields for a self-service signup.
type RegisterInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginInput carries the login credentials.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionDTO is returned on successful registration or login.
type SessionDTO struct {
	Token    string `json:"token"`
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Service exposes account signup and login.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*SessionDTO, error)
	Login(ctx context.Context, input LoginInput) (*SessionDTO, error)
}

// ServiceParams bundles the service dependencies.
type ServiceParams struct {
	Repo        userRepository
	JWTCfg      config.JWTConfig
	PasswordCfg config.PasswordConfig
	Now         func() time.Time
}

type service struct {
	repo        userRepository
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	now         func() time.Time
}

// NewService builds the auth service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:        params.Repo,
		jwtCfg:      params.JWTCfg,
		passwordCfg: params.PasswordCfg,
		now:         now,
	}, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*SessionDTO, error) {
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
	}
	if err := s.repo.Create(ctx, record); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("username %s is already taken", username))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	return s.mintSession(record)
}

func (s *service) Login(ctx context.Context, input LoginInput) (*SessionDTO, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username and password are required")
	}

	user, err := s.authenticate(ctx, username, input.Password)
	if err != nil {
		return nil, err
	}
	return s.mintSession(user)
}

func (s *service) authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return user, nil
}

func (s *service) mintSession(user *models.User) (*SessionDTO, error) {
	token, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), pkgauth.AccessTokenPayload{
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	return &SessionDTO{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	}, nil
}
