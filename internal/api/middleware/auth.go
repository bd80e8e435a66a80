package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/travel-backoffice/internal/api/handlers"
)

const (
	msgNoToken      = "Access denied. No token provided."
	msgInvalidToken = "Invalid token."
	msgTokenExpired = "Token expired."
)

type contextKey string

const userIDKey contextKey = "userID"

// Claims данные JWT токена
type Claims struct {
	UserID int64 `json:"userId"`
	jwt.RegisteredClaims
}

// Auth проверяет Bearer токен, подписанный HS256 секретом
// и кладёт ID пользователя в контекст запроса.
func Auth(secret []byte) func(http.Handler) http.Handler {
	keyFunc := func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				handlers.RespondUnauthorized(w, msgNoToken)
				return
			}

			claims := &Claims{}
			token, err := parser.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), claims, keyFunc)
			if err != nil || !token.Valid || claims.UserID <= 0 {
				if errors.Is(err, jwt.ErrTokenExpired) {
					handlers.RespondUnauthorized(w, msgTokenExpired)
					return
				}
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// WithUserID кладёт ID пользователя в контекст
func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}
