package checkout

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/fitgear/storefront-backend/internal/cart"
	"github.com/fitgear/storefront-backend/internal/orders"
	"github.com/fitgear/storefront-backend/pkg/db"
	"github.com/fitgear/storefront-backend/pkg/db/models"
	pkgerrors "github.com/fitgear/storefront-backend/pkg/errors"
	"github.com/fitgear/storefront-backend/pkg/logger"
	"github.com/fitgear/storefront-backend/pkg/stripe"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCheckoutTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS items (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT NOT NULL,
  price_cents INTEGER NOT NULL,
  image TEXT,
  large_image TEXT,
  user_id TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  item_id TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (user_id, item_id)
);`,
		`CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  total_cents INTEGER NOT NULL,
  charge_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  item_id TEXT,
  title TEXT NOT NULL,
  description TEXT NOT NULL,
  price_cents INTEGER NOT NULL,
  image TEXT,
  large_image TEXT,
  quantity INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

type stubGateway struct {
	result  *stripe.ChargeResult
	err     error
	lastReq stripe.ChargeRequest
	calls   int
}

func (g *stubGateway) Charge(_ context.Context, req stripe.ChargeRequest) (*stripe.ChargeResult, error) {
	g.calls++
	g.lastReq = req
	if g.err != nil {
		return nil, g.err
	}
	if g.result != nil {
		return g.result, nil
	}
	return &stripe.ChargeResult{ID: "ch_test_ok", AmountCents: req.AmountCents}, nil
}

type failingCartRepo struct {
	*cart.Repository
}

func (f failingCartRepo) DeleteByIDs(_ context.Context, _ []uuid.UUID) error {
	return fmt.Errorf("redis on fire")
}

type checkoutFixture struct {
	conn    *gorm.DB
	cart    *cart.Repository
	orders  *orders.Repository
	gateway *stubGateway
	svc     Service
	actor   *models.User
}

func newCheckoutFixture(t *testing.T, gateway *stubGateway) *checkoutFixture {
	t.Helper()

	conn := setupCheckoutTestDB(t)
	cartRepo := cart.NewRepository(conn)
	orderRepo := orders.NewRepository(conn)

	svc, err := NewService(ServiceParams{
		CartRepo:  cartRepo,
		OrderRepo: orderRepo,
		DB:        db.NewWithConn(conn),
		Gateway:   gateway,
		Logger:    logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		Currency:  "usd",
	})
	require.NoError(t, err)

	return &checkoutFixture{
		conn:    conn,
		cart:    cartRepo,
		orders:  orderRepo,
		gateway: gateway,
		svc:     svc,
		actor:   &models.User{ID: uuid.New(), Email: "jo@example.com"},
	}
}

func (f *checkoutFixture) seedCart(t *testing.T, priceCents, quantity int) *models.Item {
	t.Helper()
	item := &models.Item{
		ID:          uuid.New(),
		Title:       fmt.Sprintf("Item %d", priceCents),
		Description: "desc",
		PriceCents:  priceCents,
		UserID:      uuid.New(),
	}
	require.NoError(t, f.conn.Create(item).Error)
	for i := 0; i < quantity; i++ {
		_, err := f.cart.AddOne(context.Background(), f.actor.ID, item.ID)
		require.NoError(t, err)
	}
	return item
}

func (f *checkoutFixture) orderCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.conn.Model(&models.Order{}).Count(&count).Error)
	return count
}

func TestExecute_RequiresIdentity(t *testing.T) {
	f := newCheckoutFixture(t, &stubGateway{})

	_, err := f.svc.Execute(context.Background(), nil, "tok_visa")

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthenticated, typed.Code())
}

func TestExecute_EmptyCartRejected(t *testing.T) {
	f := newCheckoutFixture(t, &stubGateway{})

	_, err := f.svc.Execute(context.Background(), f.actor, "tok_visa")

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Zero(t, f.gateway.calls)
}

func TestExecute_GatewayFailureWritesNothing(t *testing.T) {
	gateway := &stubGateway{err: pkgerrors.New(pkgerrors.CodePaymentDeclined, "payment was declined")}
	f := newCheckoutFixture(t, gateway)
	f.seedCart(t, 1000, 2)

	_, err := f.svc.Execute(context.Background(), f.actor, "tok_chargeDeclined")

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodePaymentDeclined, typed.Code())

	assert.Zero(t, f.orderCount(t))
	entries, err := f.cart.ListByUser(context.Background(), f.actor.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestExecute_ChargesRecomputedTotalAndSnapshots(t *testing.T) {
	f := newCheckoutFixture(t, &stubGateway{})
	mat := f.seedCart(t, 1000, 2)
	band := f.seedCart(t, 250, 1)

	order, err := f.svc.Execute(context.Background(), f.actor, "tok_visa")
	require.NoError(t, err)

	assert.Equal(t, 2250, f.gateway.lastReq.AmountCents)
	assert.Equal(t, "tok_visa", f.gateway.lastReq.SourceToken)
	assert.Equal(t, 2250, order.TotalCents)
	assert.Equal(t, "ch_test_ok", order.ChargeID)

	loaded, err := f.orders.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 2)

	byTitle := map[string]models.OrderItem{}
	for _, line := range loaded.Items {
		byTitle[line.Title] = line
	}
	assert.Equal(t, 1000, byTitle[mat.Title].PriceCents)
	assert.Equal(t, 2, byTitle[mat.Title].Quantity)
	assert.Equal(t, 250, byTitle[band.Title].PriceCents)
	assert.Equal(t, 1, byTitle[band.Title].Quantity)

	entries, err := f.cart.ListByUser(context.Background(), f.actor.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExecute_SnapshotSurvivesItemEdit(t *testing.T) {
	f := newCheckoutFixture(t, &stubGateway{})
	item := f.seedCart(t, 1000, 1)

	order, err := f.svc.Execute(context.Background(), f.actor, "tok_visa")
	require.NoError(t, err)

	require.NoError(t, f.conn.Model(&models.Item{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{"title": "Renamed", "price_cents": 9999}).Error)

	loaded, err := f.orders.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, item.Title, loaded.Items[0].Title)
	assert.Equal(t, 1000, loaded.Items[0].PriceCents)
}

func TestExecute_CartClearFailureStillReturnsOrder(t *testing.T) {
	f := newCheckoutFixture(t, &stubGateway{})
	f.seedCart(t, 1000, 1)

	svc, err := NewService(ServiceParams{
		CartRepo:  failingCartRepo{f.cart},
		OrderRepo: f.orders,
		DB:        db.NewWithConn(f.conn),
		Gateway:   f.gateway,
		Logger:    logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		Currency:  "usd",
	})
	require.NoError(t, err)

	order, err := svc.Execute(context.Background(), f.actor, "tok_visa")
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.EqualValues(t, 1, f.orderCount(t))
}
