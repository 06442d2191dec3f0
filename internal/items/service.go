package items

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fitgear/storefront-backend/internal/authz"
	"github.com/fitgear/storefront-backend/pkg/db/models"
	"github.com/fitgear/storefront-backend/pkg/enums"
	pkgerrors "github.com/fitgear/storefront-backend/pkg/errors"
	"github.com/fitgear/storefront-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines the item catalog operations exposed through the API.
type Service interface {
	Create(ctx context.Context, actor *models.User, req CreateItemRequest) (*models.Item, error)
	Update(ctx context.Context, actor *models.User, itemID uuid.UUID, req UpdateItemRequest) (*models.Item, error)
	Delete(ctx context.Context, actor *models.User, itemID uuid.UUID) (*models.Item, error)
	FindByID(ctx context.Context, itemID uuid.UUID) (*models.Item, error)
	List(ctx context.Context, params pagination.Params) ([]models.Item, error)
	Count(ctx context.Context) (int64, error)
}

type itemRepository interface {
	Create(ctx context.Context, item *models.Item) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*models.Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params pagination.Params) ([]models.Item, error)
	Count(ctx context.Context) (int64, error)
}

type service struct {
	items itemRepository
}

// ServiceParams bundles the dependencies required to build an items service.
type ServiceParams struct {
	ItemRepo itemRepository
}

// NewService constructs an items service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.ItemRepo == nil {
		return nil, fmt.Errorf("item repository is required")
	}
	return &service{items: params.ItemRepo}, nil
}

func (s *service) Create(ctx context.Context, actor *models.User, req CreateItemRequest) (*models.Item, error) {
	if actor == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthenticated, "you must be signed in")
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if req.PriceCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}

	item := &models.Item{
		Title:       title,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Image:       req.Image,
		LargeImage:  req.LargeImage,
		UserID:      actor.ID,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create item")
	}
	return item, nil
}

func (s *service) Update(ctx context.Context, actor *models.User, itemID uuid.UUID, req UpdateItemRequest) (*models.Item, error) {
	if actor == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthenticated, "you must be signed in")
	}
	if req.PriceCents != nil && *req.PriceCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}

	item, err := s.loadItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !authz.CanModifyItem(actor, item.UserID, enums.PermissionAdmin, enums.PermissionItemUpdate) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "you don't have permission to update this item")
	}

	updated, err := s.items.Update(ctx, item.ID, req.changes())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update item")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, actor *models.User, itemID uuid.UUID) (*models.Item, error) {
	if actor == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthenticated, "you must be signed in")
	}

	item, err := s.loadItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !authz.CanModifyItem(actor, item.UserID, enums.PermissionAdmin, enums.PermissionItemDelete) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "you don't have permission to delete this item")
	}

	if err := s.items.Delete(ctx, item.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete item")
	}
	return item, nil
}

func (s *service) FindByID(ctx context.Context, itemID uuid.UUID) (*models.Item, error) {
	return s.loadItem(ctx, itemID)
}

func (s *service) List(ctx context.Context, params pagination.Params) ([]models.Item, error) {
	items, err := s.items.List(ctx, pagination.Normalize(params))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list items")
	}
	return items, nil
}

func (s *service) Count(ctx context.Context) (int64, error) {
	count, err := s.items.Count(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count items")
	}
	return count, nil
}

func (s *service) loadItem(ctx context.Context, itemID uuid.UUID) (*models.Item, error) {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load item")
	}
	return item, nil
}
