package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/fitgear/storefront-backend/internal/authz"
	"github.com/fitgear/storefront-backend/pkg/db/models"
	pkgerrors "github.com/fitgear/storefront-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines the cart operations exposed through the API.
type Service interface {
	AddToCart(ctx context.Context, actor *models.User, itemID uuid.UUID) (*models.CartItem, error)
	RemoveFromCart(ctx context.Context, actor *models.User, cartItemID uuid.UUID) (*models.CartItem, error)
	ListCart(ctx context.Context, actor *models.User) ([]models.CartItem, error)
}

type cartRepository interface {
	AddOne(ctx context.Context, userID, itemID uuid.UUID) (*models.CartItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.CartItem, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type itemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
}

type service struct {
	cart  cartRepository
	items itemRepository
}

// ServiceParams bundles the dependencies required to build a cart service.
type ServiceParams struct {
	CartRepo cartRepository
	ItemRepo itemRepository
}

// NewService constructs a cart service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CartRepo == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	if params.ItemRepo == nil {
		return nil, fmt.Errorf("item repository is required")
	}
	return &service{cart: params.CartRepo, items: params.ItemRepo}, nil
}

func (s *service) AddToCart(ctx context.Context, actor *models.User, itemID uuid.UUID) (*models.CartItem, error) {
	if actor == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthenticated, "you must be signed in")
	}

	if _, err := s.items.FindByID(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load item")
	}

	entry, err := s.cart.AddOne(ctx, actor.ID, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add to cart")
	}
	return entry, nil
}

func (s *service) RemoveFromCart(ctx context.Context, actor *models.User, cartItemID uuid.UUID) (*models.CartItem, error) {
	if actor == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthenticated, "you must be signed in")
	}

	entry, err := s.cart.FindByID(ctx, cartItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart item")
	}
	if !authz.Owns(actor, entry.UserID) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "this cart item isn't yours")
	}

	if err := s.cart.DeleteByID(ctx, entry.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove from cart")
	}
	return entry, nil
}

func (s *service) ListCart(ctx context.Context, actor *models.User) ([]models.CartItem, error) {
	if actor == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthenticated, "you must be signed in")
	}

	entries, err := s.cart.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cart")
	}
	return entries, nil
}
