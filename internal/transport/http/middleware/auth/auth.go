package auth

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/workhub/workplace-backend/internal/service/models/identity"
)

type ctxKey struct{}

// Middleware validates the bearer token issued by the identity provider and
// places the resolved actor into the request context.
func Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				http.Error(w, "authorization header required", http.StatusUnauthorized)

				return
			}

			secret := []byte(os.Getenv("WORKPLACE_JWT_SECRET"))
			if len(secret) == 0 {
				http.Error(w, "server misconfigured", http.StatusInternalServerError)

				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}

				return secret, nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "invalid token", http.StatusUnauthorized)

				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				http.Error(w, "invalid claims", http.StatusUnauthorized)

				return
			}

			actor, err := actorFromClaims(claims)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)

				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

func actorFromClaims(claims jwt.MapClaims) (identity.Actor, error) {
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return identity.Actor{}, errors.New("subject claim missing")
	}

	name, _ := claims["name"].(string)

	var roles []string
	if raw, ok := claims["roles"].([]any); ok {
		for _, r := range raw {
			if role, ok := r.(string); ok {
				roles = append(roles, role)
			}
		}
	}

	return identity.Actor{
		ID:          sub,
		DisplayName: name,
		Roles:       roles,
	}, nil
}

// RequireRole rejects callers whose token does not carry the given role.
func RequireRole(role string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				http.Error(w, "authorization required", http.StatusUnauthorized)

				return
			}
			if !actor.HasRole(role) {
				http.Error(w, "insufficient role", http.StatusForbidden)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// WithActor returns a context carrying the actor.
func WithActor(ctx context.Context, actor identity.Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, actor)
}

// ActorFromContext extracts the authenticated actor set by Middleware.
func ActorFromContext(ctx context.Context) (identity.Actor, bool) {
	actor, ok := ctx.Value(ctxKey{}).(identity.Actor)

	return actor, ok
}
