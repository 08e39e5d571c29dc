package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/staffly/hr-backend-go/internal/handler/http/response"
)

// Identity is the caller extracted from a verified access token.
type Identity struct {
	EmployeeID string
	IsAdmin    bool
}

// AuthRequired rejects requests without a verified access token.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.Unauthorized(w, "Missing access token")
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.Unauthorized(w, "Invalid access token")
				return
			}
			if tokenType, ok := claims["type"].(string); !ok || tokenType != "access" {
				response.Unauthorized(w, "Invalid access token")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// CallerIdentity reads the caller's identity claims from the request token.
func CallerIdentity(r *http.Request) (Identity, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return Identity{}, false
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return Identity{}, false
	}

	isAdmin, _ := claims["is_admin"].(bool)

	return Identity{EmployeeID: employeeID, IsAdmin: isAdmin}, true
}
