package checkout

import (
	"context"
	"fmt"

	"github.com/fitgear/storefront-backend/internal/cart"
	"github.com/fitgear/storefront-backend/internal/orders"
	"github.com/fitgear/storefront-backend/pkg/db"
	"github.com/fitgear/storefront-backend/pkg/db/models"
	pkgerrors "github.com/fitgear/storefront-backend/pkg/errors"
	"github.com/fitgear/storefront-backend/pkg/logger"
	"github.com/fitgear/storefront-backend/pkg/stripe"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service turns a cart into an immutable order. The ordering is strict:
// the gateway charge must succeed before any order row is written, and cart
// rows are only cleared after the order commit.
type Service interface {
	Execute(ctx context.Context, actor *models.User, paymentToken string) (*models.Order, error)
}

type paymentGateway interface {
	Charge(ctx context.Context, req stripe.ChargeRequest) (*stripe.ChargeResult, error)
}

type cartRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) error
}

type orderRepository interface {
	WithTx(tx *gorm.DB) *orders.Repository
}

type service struct {
	cart     cartRepository
	orders   orderRepository
	db       *db.Client
	gateway  paymentGateway
	logg     *logger.Logger
	currency string
}

// ServiceParams bundles the dependencies required to build a checkout service.
type ServiceParams struct {
	CartRepo  cartRepository
	OrderRepo orderRepository
	DB        *db.Client
	Gateway   paymentGateway
	Logger    *logger.Logger
	Currency  string
}

// NewService constructs a checkout service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CartRepo == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	if params.OrderRepo == nil {
		return nil, fmt.Errorf("order repository is required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db client is required")
	}
	if params.Gateway == nil {
		return nil, fmt.Errorf("payment gateway is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if params.Currency == "" {
		return nil, fmt.Errorf("currency is required")
	}
	return &service{
		cart:     params.CartRepo,
		orders:   params.OrderRepo,
		db:       params.DB,
		gateway:  params.Gateway,
		logg:     params.Logger,
		currency: params.Currency,
	}, nil
}

func (s *service) Execute(ctx context.Context, actor *models.User, paymentToken string) (*models.Order, error) {
	if actor == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthenticated, "you must be signed in to complete this order")
	}
	if paymentToken == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment token is required")
	}

	entries, err := s.cart.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	if len(entries) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "your cart is empty")
	}

	// The amount is always recomputed from stored prices at charge time.
	total := cart.ComputeTotal(entries)
	if total <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order total must be positive")
	}

	charge, err := s.gateway.Charge(ctx, stripe.ChargeRequest{
		AmountCents: total,
		Currency:    s.currency,
		SourceToken: paymentToken,
		Description: fmt.Sprintf("storefront order for %s", actor.Email),
	})
	if err != nil {
		return nil, err
	}

	order := buildOrder(actor.ID, charge, entries)

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		return s.orders.WithTx(tx).Create(ctx, order)
	})
	if err != nil {
		// The charge has been captured but the order write failed. Surface
		// the charge id so support can refund or replay.
		s.logg.Error(
			s.logg.WithFields(ctx, map[string]any{"charge_id": charge.ID, "user_id": actor.ID.String()}),
			"order persist failed after charge", err,
		)
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist order")
	}

	entryIDs := make([]uuid.UUID, 0, len(entries))
	for _, entry := range entries {
		entryIDs = append(entryIDs, entry.ID)
	}
	if err := s.cart.DeleteByIDs(ctx, entryIDs); err != nil {
		// The order is committed; a lingering cart is reconciled out of band.
		s.logg.Error(
			s.logg.WithFields(ctx, map[string]any{"order_id": order.ID.String(), "user_id": actor.ID.String()}),
			"checkout cart clear failed", err,
		)
	}

	return order, nil
}

// buildOrder snapshots every cart entry into a line item so later item edits
// never alter the order. The stored total is the amount the gateway actually
// captured.
func buildOrder(userID uuid.UUID, charge *stripe.ChargeResult, entries []models.CartItem) *models.Order {
	lines := make([]models.OrderItem, 0, len(entries))
	for _, entry := range entries {
		if entry.Item == nil {
			continue
		}
		itemID := entry.ItemID
		lines = append(lines, models.OrderItem{
			ItemID:      &itemID,
			Title:       entry.Item.Title,
			Description: entry.Item.Description,
			PriceCents:  entry.Item.PriceCents,
			Image:       entry.Item.Image,
			LargeImage:  entry.Item.LargeImage,
			Quantity:    entry.Quantity,
		})
	}
	return &models.Order{
		TotalCents: charge.AmountCents,
		ChargeID:   charge.ID,
		UserID:     userID,
		Items:      lines,
	}
}
