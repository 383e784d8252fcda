package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/huddlehq/huddle/internal/domain"
	"github.com/huddlehq/huddle/internal/repository"
)

// UserLookup resolves a token hash to its owning user.
type UserLookup interface {
	FindUser(ctx context.Context, tokenHash []byte) (*domain.User, error)
}

// Middleware authenticates requests with a bearer token and attaches the
// resolved Identity to the request context. Requests without a valid token
// are rejected with 401.
func Middleware(lookup UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok || !ValidTokenFormat(token) {
				unauthorized(w, "missing or malformed bearer token")
				return
			}

			user, err := lookup.FindUser(r.Context(), HashToken(token))
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					unauthorized(w, "unknown token")
					return
				}
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}

			ctx := WithIdentity(r.Context(), &Identity{User: user})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]map[string]string{
		"error": {"code": "unauthorized", "message": msg},
	})
}
