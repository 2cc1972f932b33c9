package middleware

import (
	"errors"
	"net/http"

	"github.com/SandeDesign/alloon-sub000/internal/domain/auth"
	"github.com/SandeDesign/alloon-sub000/internal/domain/payroll"
	"github.com/SandeDesign/alloon-sub000/internal/domain/user"
	"github.com/SandeDesign/alloon-sub000/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RequireAccessToken runs after jwtauth.Verifier. Every payroll route is scoped to
// a company, so tokens without a company_id claim are rejected here.
func RequireAccessToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		switch {
		case errors.Is(err, jwtauth.ErrExpired):
			response.HandleError(w, auth.ErrTokenExpired)
			return
		case err != nil:
			response.Unauthorized(w, err.Error())
			return
		case token == nil:
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if tokenType, _ := claims["type"].(string); tokenType != "access" {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}
		if companyID, _ := claims["company_id"].(string); companyID == "" {
			response.HandleError(w, payroll.ErrMissingCompanyContext)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequirePermission rejects requests whose role lacks permission with denied.
func RequirePermission(permission user.Permission, denied error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, _ := jwtauth.FromContext(r.Context())
			role, _ := claims["role"].(string)
			if !user.HasPermission(user.Role(role), permission) {
				response.HandleError(w, denied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
