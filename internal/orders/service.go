package orders

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

// Service defines the order read operations exposed through the API.
type Service interface {
	Get(ctx context.Context, actor *models.User, orderID uuid.UUID) (*models.Order, error)
	ListMine(ctx context.Context, actor *models.User) ([]models.Order, error)
}

type orderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
}

type service struct {
	orders orderRepository
}

// ServiceParams bundles the dependencies required to build an orders service.
type ServiceParams struct {
	OrderRepo orderRepository
}

// NewService constructs an orders service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.OrderRepo == nil {
		return nil, fmt.Errorf("order repository is required")
	}
	return &service{orders: params.OrderRepo}, nil
}

func (s *service) Get(ctx context.Context, actor *models.User, orderID uuid.UUID) (*models.Order, error) {
	if actor == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthenticated, "you must be signed in")
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}

	if !authz.CanViewOrder(actor, order.UserID) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "you can't see this order")
	}
	return order, nil
}

func (s *service) ListMine(ctx context.Context, actor *models.User) ([]models.Order, error) {
	if actor == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthenticated, "you must be signed in")
	}

	orders, err := s.orders.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	return orders, nil
}
