package middleware

import (
	"net/http"

	"github.com/fitgear/storefront-backend/internal/session"
	pkgauth "github.com/fitgear/storefront-backend/pkg/auth"
	"github.com/fitgear/storefront-backend/pkg/config"
	"github.com/fitgear/storefront-backend/pkg/logger"
)

// Session parses the JWT session cookie and stamps the user id onto the
// request context. Requests with no cookie, or with an invalid or expired
// token, continue as anonymous; operations that need an identity reject
// them downstream.
func Session(jwtCfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(jwtCfg.CookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := pkgauth.ParseSessionToken(jwtCfg, cookie.Value)
			if err != nil {
				if logg != nil {
					ctx := logg.WithField(r.Context(), "reason", err.Error())
					logg.Warn(ctx, "session.cookie_rejected")
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := session.WithUserID(r.Context(), claims.UserID)
			if logg != nil {
				ctx = logg.WithUserID(ctx, claims.UserID.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
