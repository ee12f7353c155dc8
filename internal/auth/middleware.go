package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/saulo-duarte/mindpop-lambda/internal/apperr"
	"github.com/saulo-duarte/mindpop-lambda/internal/config"
	"github.com/sirupsen/logrus"
)

const (
	RoleAdmin   = "admin"
	RoleStudent = "student"

	cookieName = "jwt"
)

type claimsKey struct{}

var ErrNoClaims = errors.New("no user claims in context")

func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

func GetUserClaimsFromContext(ctx context.Context) (*Claims, error) {
	c, ok := ctx.Value(claimsKey{}).(*Claims)
	if !ok || c == nil {
		return nil, ErrNoClaims
	}
	return c, nil
}

func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}
	return ""
}

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := config.WithContext(r.Context())

		tok := tokenFromRequest(r)
		if tok == "" {
			config.Fail(w, apperr.ErrUnauthorized)
			return
		}
		claims, err := ValidateJWT(tok)
		if err != nil {
			log.WithError(err).Warn("Token inválido rejeitado")
			config.Fail(w, apperr.ErrUnauthorized)
			return
		}

		ctx := WithClaims(r.Context(), claims)
		ctx = config.WithFields(ctx, logrus.Fields{"user_id": claims.UserID})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole must run after AuthMiddleware.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := GetUserClaimsFromContext(r.Context())
			if err != nil {
				config.Fail(w, apperr.ErrUnauthorized)
				return
			}
			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			config.WithContext(r.Context()).WithField("role", claims.Role).Warn("Perfil sem permissão para a rota")
			config.Fail(w, apperr.ErrForbidden)
		})
	}
}
