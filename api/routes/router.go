package routes

import (
	"net/http"

	"github.com/fitgear/storefront-backend/api/controllers"
	gql "github.com/fitgear/storefront-backend/api/graphql"
	"github.com/fitgear/storefront-backend/api/middleware"
	"github.com/fitgear/storefront-backend/pkg/config"
	"github.com/fitgear/storefront-backend/pkg/db"
	"github.com/fitgear/storefront-backend/pkg/logger"
	"github.com/fitgear/storefront-backend/pkg/redis"
	"github.com/go-chi/chi/v5"
	"github.com/graphql-go/graphql"
)

// Deps carries everything the router needs to mount the API surface.
type Deps struct {
	Config *config.Config
	Logger *logger.Logger
	DB     *db.Client
	Redis  *redis.Client
	Schema graphql.Schema
}

// New assembles the HTTP router: health probes plus the GraphQL endpoint,
// wrapped in the shared middleware chain.
func New(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()

	r.Use(middleware.Recoverer(logg))
	r.Use(middleware.RequestID(logg))
	r.Use(middleware.Logging(logg))
	r.Use(middleware.CORS(cfg.Frontend.URL))

	r.Get("/health/live", controllers.HealthLive(cfg))
	r.Get("/health/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))

	signinPolicy := middleware.NewAuthRateLimitPolicy(
		"signin",
		cfg.AuthRateLimit.SigninWindow,
		cfg.AuthRateLimit.SigninIPLimit,
		cfg.AuthRateLimit.SigninEmailLimit,
	).ForOperations("signin", "resetpassword")

	signupPolicy := middleware.NewAuthRateLimitPolicy(
		"signup",
		cfg.AuthRateLimit.SignupWindow,
		cfg.AuthRateLimit.SignupIPLimit,
		cfg.AuthRateLimit.SignupEmailLimit,
	).ForOperations("signup", "requestreset")

	r.Route("/graphql", func(gr chi.Router) {
		gr.Use(middleware.Session(cfg.JWT, logg))
		gr.Use(middleware.AuthRateLimit(signinPolicy, deps.Redis, logg))
		gr.Use(middleware.AuthRateLimit(signupPolicy, deps.Redis, logg))
		gr.Post("/", gql.Handler(deps.Schema, logg))
	})

	return r
}
