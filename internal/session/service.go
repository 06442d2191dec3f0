package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/fitgear/storefront-backend/pkg/db/models"
	pkgerrors "github.com/fitgear/storefront-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service resolves the full user record behind the session cookie.
type Service interface {
	// CurrentUser returns the signed-in user, or nil for anonymous requests.
	// A stale session pointing at a deleted user is treated as anonymous.
	CurrentUser(ctx context.Context) (*models.User, error)

	// RequireUser returns the signed-in user or an unauthenticated error.
	RequireUser(ctx context.Context) (*models.User, error)
}

type userRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type service struct {
	users userRepository
}

// ServiceParams bundles the dependencies required to build a session service.
type ServiceParams struct {
	UserRepo userRepository
}

// NewService constructs a session service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &service{users: params.UserRepo}, nil
}

func (s *service) CurrentUser(ctx context.Context) (*models.User, error) {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return nil, nil
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load session user")
	}
	return user, nil
}

func (s *service) RequireUser(ctx context.Context) (*models.User, error) {
	user, err := s.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthenticated, "you must be signed in")
	}
	return user, nil
}
