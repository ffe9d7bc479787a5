package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fkhayef/foodmate/pkg/apperr"
	"github.com/fkhayef/foodmate/pkg/response"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// MemberIDKey is the context key for the authenticated member ID
	MemberIDKey ContextKey = "member_id"
)

// Auth returns middleware that validates the Bearer token and stores the
// resolved member ID in the request context. Every core operation receives
// that ID explicitly; nothing below this layer touches the token.
func Auth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Error(w, apperr.ErrLoginRequired.Status, apperr.ErrLoginRequired.Code, apperr.ErrLoginRequired.Message)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.Error(w, apperr.ErrTokenInvalid.Status, apperr.ErrTokenInvalid.Code, "invalid authorization header format")
				return
			}

			memberID, err := parseToken(parts[1], secret)
			if err != nil {
				response.Error(w, apperr.ErrTokenInvalid.Status, apperr.ErrTokenInvalid.Code, apperr.ErrTokenInvalid.Message)
				return
			}

			ctx := context.WithValue(r.Context(), MemberIDKey, memberID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// parseToken validates an HS256 token and extracts the member_id claim.
func parseToken(tokenString string, secret []byte) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, jwt.ErrTokenInvalidClaims
	}

	// JSON numbers decode as float64
	id, ok := claims["member_id"].(float64)
	if !ok || id <= 0 {
		return 0, jwt.ErrTokenInvalidClaims
	}

	return int64(id), nil
}

// GetMemberID extracts the authenticated member ID from the request context
func GetMemberID(ctx context.Context) (int64, bool) {
	memberID, ok := ctx.Value(MemberIDKey).(int64)
	return memberID, ok
}
