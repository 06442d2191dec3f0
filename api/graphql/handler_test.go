package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fitgear/storefront-backend/api/middleware"
	"github.com/fitgear/storefront-backend/internal/auth"
	"github.com/fitgear/storefront-backend/internal/cart"
	"github.com/fitgear/storefront-backend/internal/checkout"
	"github.com/fitgear/storefront-backend/internal/items"
	"github.com/fitgear/storefront-backend/internal/mail"
	"github.com/fitgear/storefront-backend/internal/orders"
	"github.com/fitgear/storefront-backend/internal/session"
	"github.com/fitgear/storefront-backend/internal/users"
	"github.com/fitgear/storefront-backend/pkg/config"
	"github.com/fitgear/storefront-backend/pkg/db"
	"github.com/fitgear/storefront-backend/pkg/logger"
	"github.com/fitgear/storefront-backend/pkg/stripe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type nopMailer struct{}

func (nopMailer) Send(_ context.Context, _ mail.Message) error { return nil }

type okGateway struct{}

func (okGateway) Charge(_ context.Context, req stripe.ChargeRequest) (*stripe.ChargeResult, error) {
	return &stripe.ChargeResult{ID: "ch_test_ok", AmountCents: req.AmountCents}, nil
}

func setupGraphQLTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  permissions TEXT NOT NULL DEFAULT '{USER}',
  reset_token TEXT,
  reset_token_expiry DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
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

func graphqlTestJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "storefront-test",
		ExpirationMinutes: 60,
		CookieName:        "token",
	}
}

func setupGraphQLHandler(t *testing.T) http.Handler {
	t.Helper()

	conn := setupGraphQLTestDB(t)
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	jwtCfg := graphqlTestJWTConfig()
	passwordCfg := config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
		ResetTokenBytes:  20,
		ResetTokenTTL:    time.Hour,
	}

	userRepo := users.NewRepository(conn)
	itemRepo := items.NewRepository(conn)
	cartRepo := cart.NewRepository(conn)
	orderRepo := orders.NewRepository(conn)

	sessionSvc, err := session.NewService(session.ServiceParams{UserRepo: userRepo})
	require.NoError(t, err)

	authSvc, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		Mailer:         nopMailer{},
		Logger:         logg,
		JWTConfig:      jwtCfg,
		PasswordConfig: passwordCfg,
		FrontendURL:    "http://localhost:7777",
	})
	require.NoError(t, err)

	itemsSvc, err := items.NewService(items.ServiceParams{ItemRepo: itemRepo})
	require.NoError(t, err)

	cartSvc, err := cart.NewService(cart.ServiceParams{CartRepo: cartRepo, ItemRepo: itemRepo})
	require.NoError(t, err)

	ordersSvc, err := orders.NewService(orders.ServiceParams{OrderRepo: orderRepo})
	require.NoError(t, err)

	checkoutSvc, err := checkout.NewService(checkout.ServiceParams{
		CartRepo:  cartRepo,
		OrderRepo: orderRepo,
		DB:        db.NewWithConn(conn),
		Gateway:   okGateway{},
		Logger:    logg,
		Currency:  "usd",
	})
	require.NoError(t, err)

	schema, err := NewSchema(&Resolver{
		Sessions: sessionSvc,
		Auth:     authSvc,
		Items:    itemsSvc,
		Cart:     cartSvc,
		Orders:   ordersSvc,
		Checkout: checkoutSvc,
		JWT:      jwtCfg,
		Logger:   logg,
	})
	require.NoError(t, err)

	return middleware.Session(jwtCfg, logg)(Handler(schema, logg))
}

func doGraphQL(t *testing.T, handler http.Handler, query string, variables map[string]interface{}, cookies []*http.Cookie) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	payload, err := json.Marshal(map[string]interface{}{
		"query":     query,
		"variables": variables,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func errorCode(t *testing.T, body map[string]interface{}) string {
	t.Helper()
	errs, ok := body["errors"].([]interface{})
	require.True(t, ok, "expected errors in response: %v", body)
	require.NotEmpty(t, errs)
	first, ok := errs[0].(map[string]interface{})
	require.True(t, ok)
	ext, ok := first["extensions"].(map[string]interface{})
	require.True(t, ok, "expected extensions on error: %v", first)
	code, _ := ext["code"].(string)
	return code
}

const signupMutation = `
mutation Signup($email: String!, $name: String!, $password: String!) {
  signup(email: $email, name: $name, password: $password) {
    id
    email
    permissions
  }
}`

func signupAndGetCookie(t *testing.T, handler http.Handler, email string) *http.Cookie {
	t.Helper()

	rec, body := doGraphQL(t, handler, signupMutation, map[string]interface{}{
		"email":    email,
		"name":     "Jo",
		"password": "hunter2hunter2",
	}, nil)
	require.Nil(t, body["errors"], "signup failed: %v", body)

	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" && c.Value != "" {
			return c
		}
	}
	t.Fatal("signup did not set a session cookie")
	return nil
}

func TestSignup_SetsHTTPOnlyCookie(t *testing.T) {
	handler := setupGraphQLHandler(t)

	rec, body := doGraphQL(t, handler, signupMutation, map[string]interface{}{
		"email":    "Jo@Example.com",
		"name":     "Jo",
		"password": "hunter2hunter2",
	}, nil)
	require.Nil(t, body["errors"], "unexpected errors: %v", body)

	data := body["data"].(map[string]interface{})
	user := data["signup"].(map[string]interface{})
	assert.Equal(t, "jo@example.com", user["email"])

	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	assert.True(t, sessionCookie.HttpOnly)
	assert.NotEmpty(t, sessionCookie.Value)
}

func TestMe_AnonymousReturnsNull(t *testing.T) {
	handler := setupGraphQLHandler(t)

	_, body := doGraphQL(t, handler, `{ me { id } }`, nil, nil)

	require.Nil(t, body["errors"])
	data := body["data"].(map[string]interface{})
	assert.Nil(t, data["me"])
}

func TestMe_WithSessionCookie(t *testing.T) {
	handler := setupGraphQLHandler(t)
	cookie := signupAndGetCookie(t, handler, "jo@example.com")

	_, body := doGraphQL(t, handler, `{ me { id email } }`, nil, []*http.Cookie{cookie})

	require.Nil(t, body["errors"])
	data := body["data"].(map[string]interface{})
	me := data["me"].(map[string]interface{})
	assert.Equal(t, "jo@example.com", me["email"])
}

func TestSignin_WrongPasswordSurfacesCode(t *testing.T) {
	handler := setupGraphQLHandler(t)
	signupAndGetCookie(t, handler, "jo@example.com")

	rec, body := doGraphQL(t, handler, `
mutation { signin(email: "jo@example.com", password: "wrong-password") { id } }`, nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, body))
}

func TestCreateItem_AnonymousRejected(t *testing.T) {
	handler := setupGraphQLHandler(t)

	_, body := doGraphQL(t, handler, `
mutation { createItem(title: "Tee", description: "soft", price: 1500) { id } }`, nil, nil)

	assert.Equal(t, "UNAUTHENTICATED", errorCode(t, body))
}

func TestCheckoutFlow_EndToEnd(t *testing.T) {
	handler := setupGraphQLHandler(t)
	cookie := signupAndGetCookie(t, handler, "jo@example.com")
	authed := []*http.Cookie{cookie}

	_, body := doGraphQL(t, handler, `
mutation { createItem(title: "Yoga Mat", description: "grippy", price: 1000) { id } }`, nil, authed)
	require.Nil(t, body["errors"], "createItem failed: %v", body)
	itemID := body["data"].(map[string]interface{})["createItem"].(map[string]interface{})["id"].(string)

	for i := 0; i < 2; i++ {
		_, body = doGraphQL(t, handler, `
mutation AddToCart($id: ID!) { addToCart(id: $id) { id quantity } }`, map[string]interface{}{"id": itemID}, authed)
		require.Nil(t, body["errors"], "addToCart failed: %v", body)
	}
	entry := body["data"].(map[string]interface{})["addToCart"].(map[string]interface{})
	assert.EqualValues(t, 2, entry["quantity"])

	_, body = doGraphQL(t, handler, `
mutation { createOrder(token: "tok_visa") { id total chargeId items { title quantity price } } }`, nil, authed)
	require.Nil(t, body["errors"], "createOrder failed: %v", body)

	order := body["data"].(map[string]interface{})["createOrder"].(map[string]interface{})
	assert.EqualValues(t, 2000, order["total"])
	assert.Equal(t, "ch_test_ok", order["chargeId"])

	lines := order["items"].([]interface{})
	require.Len(t, lines, 1)
	line := lines[0].(map[string]interface{})
	assert.Equal(t, "Yoga Mat", line["title"])
	assert.EqualValues(t, 2, line["quantity"])

	_, body = doGraphQL(t, handler, `{ me { cart { id } } }`, nil, authed)
	require.Nil(t, body["errors"])
	cartEntries := body["data"].(map[string]interface{})["me"].(map[string]interface{})["cart"]
	if cartEntries != nil {
		assert.Empty(t, cartEntries.([]interface{}))
	}
}

func TestCreateOrder_EmptyCartRejected(t *testing.T) {
	handler := setupGraphQLHandler(t)
	cookie := signupAndGetCookie(t, handler, "jo@example.com")

	_, body := doGraphQL(t, handler, `
mutation { createOrder(token: "tok_visa") { id } }`, nil, []*http.Cookie{cookie})

	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, body))
}

func TestUpdatePermissions_RequiresElevatedTag(t *testing.T) {
	handler := setupGraphQLHandler(t)
	cookie := signupAndGetCookie(t, handler, "jo@example.com")

	_, body := doGraphQL(t, handler, `
mutation { updatePermissions(userId: "11111111-1111-1111-1111-111111111111", permissions: ["ADMIN"]) { id } }`, nil, []*http.Cookie{cookie})

	assert.Equal(t, "FORBIDDEN", errorCode(t, body))
}

func TestSignout_ClearsCookie(t *testing.T) {
	handler := setupGraphQLHandler(t)
	cookie := signupAndGetCookie(t, handler, "jo@example.com")

	rec, body := doGraphQL(t, handler, `mutation { signout { message } }`, nil, []*http.Cookie{cookie})
	require.Nil(t, body["errors"])

	var cleared *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}
