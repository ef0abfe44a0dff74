package controllers

import (
	"context"
	"net/http"

	"github.com/cglawson/Senior-Project-API/models"
	"github.com/cglawson/Senior-Project-API/services"

	"github.com/gorilla/mux"
)

type contextKey string

const userContextKey contextKey = "authenticatedUser"

// UserFromContext returns the authenticated user the middleware resolved.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}

// APIKeyMiddleware resolves the Authorization header to a user and rejects
// requests that do not carry a valid key.
func APIKeyMiddleware(userService *services.UserService) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get("Authorization")
			if apiKey == "" {
				http.Error(w, "API key missing", http.StatusBadRequest)
				return
			}

			user, err := userService.AuthenticateAPIKey(r.Context(), apiKey)
			if err != nil {
				http.Error(w, "Invalid API key. Access denied.", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
