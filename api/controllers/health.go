package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fitgear/storefront-backend/api/responses"
	"github.com/fitgear/storefront-backend/pkg/config"
	"github.com/fitgear/storefront-backend/pkg/db"
	pkgerrors "github.com/fitgear/storefront-backend/pkg/errors"
	"github.com/fitgear/storefront-backend/pkg/logger"
	"go.uber.org/multierr"
)

const envHeader = "X-Storefront-Env"

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every hard dependency and aggregates failures so a
// single probe shows everything that is down.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var combined error
		if dbP != nil {
			if err := dbP.Ping(ctx); err != nil {
				combined = multierr.Append(combined, fmt.Errorf("database: %w", err))
			}
		}
		if redisP != nil {
			if err := redisP.Ping(ctx); err != nil {
				combined = multierr.Append(combined, fmt.Errorf("redis: %w", err))
			}
		}

		if combined != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "readiness check failed"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
