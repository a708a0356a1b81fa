package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// visitorTTL is the lifetime of the visitor cookie.
const visitorTTL = 365 * 24 * time.Hour

// Visitor identifies the browser with a random id kept in cookie name. Every
// persisted list is namespaced by this id.
func Visitor(name string, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(name); err == nil {
				if parsed, err := uuid.Parse(c.Value); err == nil {
					id = parsed.String()
				}
			}
			if id == "" {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     name,
					Value:    id,
					Path:     "/",
					MaxAge:   int(visitorTTL.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			zerolog.Ctx(r.Context()).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("visitor", id)
			})
			next.ServeHTTP(w, r.WithContext(WithVisitor(r.Context(), id)))
		})
	}
}

// WithVisitor stores a visitor id in ctx.
func WithVisitor(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, visitorKey, id)
}

func VisitorFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(visitorKey).(string); ok {
		return v
	}
	return ""
}
