package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const (
	ctxUserID ctxKey = "usuarioID"
	ctxEmail  ctxKey = "email"
)

// Middleware rejects requests without a valid Bearer token and stores the
// user id in the request context
func (i *Issuer) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			http.Error(w, "Token ausente", http.StatusUnauthorized)
			return
		}
		claims, err := i.Parse(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			http.Error(w, "Token inválido", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), claims.Subject, claims.Email)))
	})
}

// WithUser returns ctx carrying the authenticated user
func WithUser(ctx context.Context, userID, email string) context.Context {
	ctx = context.WithValue(ctx, ctxUserID, userID)
	return context.WithValue(ctx, ctxEmail, email)
}

// UserID returns the authenticated user id, if any
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxUserID).(string)
	return id, ok && id != ""
}

// Email returns the authenticated user's e-mail, if the token carried one
func Email(ctx context.Context) string {
	email, _ := ctx.Value(ctxEmail).(string)
	return email
}
