package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fitgear/storefront-backend/internal/authz"
	"github.com/fitgear/storefront-backend/internal/mail"
	"github.com/fitgear/storefront-backend/internal/users"
	pkgauth "github.com/fitgear/storefront-backend/pkg/auth"
	"github.com/fitgear/storefront-backend/pkg/config"
	"github.com/fitgear/storefront-backend/pkg/db"
	"github.com/fitgear/storefront-backend/pkg/db/models"
	"github.com/fitgear/storefront-backend/pkg/enums"
	pkgerrors "github.com/fitgear/storefront-backend/pkg/errors"
	"github.com/fitgear/storefront-backend/pkg/logger"
	"github.com/fitgear/storefront-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the credential flows exposed through the API.
type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*Session, error)
	Signin(ctx context.Context, req SigninRequest) (*Session, error)
	RequestReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) (*Session, error)
	UpdatePermissions(ctx context.Context, actor *models.User, req UpdatePermissionsRequest) (*users.UserDTO, error)
}

type userRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByResetToken(ctx context.Context, token string) (*models.User, error)
	SetResetToken(ctx context.Context, id uuid.UUID, token string, expiry time.Time) error
	UpdatePasswordAndClearReset(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdatePermissions(ctx context.Context, id uuid.UUID, permissions []string) error
}

type service struct {
	users       userRepository
	mailer      mail.Sender
	logg        *logger.Logger
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	frontendURL string
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	Mailer         mail.Sender
	Logger         *logger.Logger
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
	FrontendURL    string
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.Mailer == nil {
		return nil, fmt.Errorf("mail sender is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if params.FrontendURL == "" {
		return nil, fmt.Errorf("frontend url is required")
	}
	return &service{
		users:       params.UserRepo,
		mailer:      params.Mailer,
		logg:        params.Logger,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
		frontendURL: params.FrontendURL,
	}, nil
}

func (s *service) Signup(ctx context.Context, req SignupRequest) (*Session, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password is required")
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.users.Create(ctx, users.CreateUserDTO{
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
		Permissions:  enums.DefaultSignupPermissions(),
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "an account with that email already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}

	return s.startSession(user)
}

func (s *service) Signin(ctx context.Context, req SigninRequest) (*Session, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return s.startSession(user)
}

// RequestReset issues a one-time token and mails a reset link. Unknown
// emails succeed silently so the endpoint cannot be used to probe accounts,
// and mail failures never roll back the token that was already stored.
func (s *service) RequestReset(ctx context.Context, email string) error {
	normalized := normalizeEmail(email)
	if normalized == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	user, err := s.users.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logg.Info(s.logg.WithField(ctx, "email", normalized), "reset requested for unknown email")
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	token, err := security.GenerateResetToken(s.passwordCfg.ResetTokenBytes)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate reset token")
	}

	expiry := time.Now().UTC().Add(s.passwordCfg.ResetTokenTTL)
	if err := s.users.SetResetToken(ctx, user.ID, token, expiry); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store reset token")
	}

	msg := mail.ComposeResetEmail(s.frontendURL, user.Email, token)
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.logg.Error(s.logg.WithUserID(ctx, user.ID.String()), "reset email delivery failed", err)
	}
	return nil
}

func (s *service) ResetPassword(ctx context.Context, req ResetPasswordRequest) (*Session, error) {
	if req.ResetToken == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reset token is required")
	}
	if req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password is required")
	}
	if req.Password != req.ConfirmPassword {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "passwords do not match")
	}

	user, err := s.users.FindByResetToken(ctx, req.ResetToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeTokenInvalid, "reset token is invalid")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup reset token")
	}

	now := time.Now().UTC()
	if user.ResetTokenExpiry == nil || now.After(*user.ResetTokenExpiry) {
		return nil, pkgerrors.New(pkgerrors.CodeTokenExpired, "reset token is expired")
	}
	if !security.IsResetTokenValid(user.ResetToken, user.ResetTokenExpiry, req.ResetToken, now) {
		return nil, pkgerrors.New(pkgerrors.CodeTokenInvalid, "reset token is invalid")
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	if err := s.users.UpdatePasswordAndClearReset(ctx, user.ID, hash); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update password")
	}

	user.PasswordHash = hash
	user.ResetToken = nil
	user.ResetTokenExpiry = nil

	return s.startSession(user)
}

func (s *service) UpdatePermissions(ctx context.Context, actor *models.User, req UpdatePermissionsRequest) (*users.UserDTO, error) {
	if actor == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthenticated, "you must be signed in")
	}
	if !authz.CanUpdatePermissions(actor) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient permissions")
	}

	perms, err := enums.ParsePermissions(req.Permissions)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid permission set")
	}

	target, err := s.users.FindByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	stored := enums.Strings(perms)
	if err := s.users.UpdatePermissions(ctx, target.ID, stored); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update permissions")
	}

	target.Permissions = stored
	return users.FromModel(target), nil
}

func (s *service) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	normalized := normalizeEmail(email)
	if normalized == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidCredentials, invalidCredentialsMessage)
	}

	user, err := s.users.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeInvalidCredentials, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	valid, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidCredentials, invalidCredentialsMessage)
	}
	return user, nil
}

func (s *service) startSession(user *models.User) (*Session, error) {
	token, err := pkgauth.MintSessionToken(s.jwtCfg, time.Now().UTC(), user.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	return &Session{Token: token, User: users.FromModel(user)}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
