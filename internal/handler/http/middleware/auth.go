package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/audit"
	"github.com/cmlabs-hris/payroll-engine/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

type actorKey struct{}

type principal struct {
	actor audit.Actor
	role  audit.Role
}

// AuthRequired rejects requests without a valid access token and stores the
// token's actor in the request context.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.HandleError(w, audit.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != "access" {
				response.HandleError(w, audit.ErrInvalidToken)
				return
			}

			userID, _ := claims["user_id"].(string)
			if userID == "" {
				response.HandleError(w, audit.ErrInvalidToken)
				return
			}
			name, _ := claims["name"].(string)
			role, _ := claims["role"].(string)

			p := principal{actor: audit.Actor{ID: userID, Name: name}, role: audit.Role(role)}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey{}, p)))
		}
		return http.HandlerFunc(hfn)
	}
}

// RequireMutator lets only admin and HR roles through.
func RequireMutator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := r.Context().Value(actorKey{}).(principal)
		if !ok || !p.role.CanMutate() {
			response.HandleError(w, audit.ErrInsufficientRole)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ActorFromContext returns the actor stored by AuthRequired.
func ActorFromContext(ctx context.Context) (audit.Actor, error) {
	p, ok := ctx.Value(actorKey{}).(principal)
	if !ok {
		return audit.Actor{}, audit.ErrActorNotInContext
	}
	return p.actor, nil
}

// CanMutate reports whether the authenticated role may perform writes.
func CanMutate(ctx context.Context) bool {
	p, ok := ctx.Value(actorKey{}).(principal)
	return ok && p.role.CanMutate()
}
