package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harshithareddy888/HackConnect/logging"
	"github.com/harshithareddy888/HackConnect/services"
)

type contextKey string

const userIDKey contextKey = "userID"

// JWTAuth resolves the bearer access token into the acting user's ID
// and stores it on the request context. Requests without a valid
// token are rejected with 401.
func JWTAuth(tokens *services.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "authorization header missing")
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenStr == authHeader {
				unauthorized(w, "bearer token required")
				return
			}

			userID, err := tokens.VerifyAccessToken(tokenStr)
			if err != nil {
				logging.Logger.Warnf("Rejected token for %s %s: %v", r.Method, r.URL.Path, err)
				unauthorized(w, "invalid token")
				return
			}
			objectID, err := primitive.ObjectIDFromHex(userID)
			if err != nil {
				unauthorized(w, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, objectID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user's ID from the request context.
func UserID(r *http.Request) (primitive.ObjectID, bool) {
	id, ok := r.Context().Value(userIDKey).(primitive.ObjectID)
	return id, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}
