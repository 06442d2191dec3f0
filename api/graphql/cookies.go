package graphql

import (
	"context"
	"net/http"

	"github.com/fitgear/storefront-backend/pkg/config"
)

// setSessionCookie installs the signed JWT as an httpOnly cookie so browser
// scripts can never read it.
func setSessionCookie(ctx context.Context, cfg config.JWTConfig, token string) {
	w, ok := responseWriterFrom(ctx)
	if !ok {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     "/",
		Domain:   cfg.CookieDomain,
		MaxAge:   int(cfg.TokenTTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(ctx context.Context, cfg config.JWTConfig) {
	w, ok := responseWriterFrom(ctx)
	if !ok {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		Domain:   cfg.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
