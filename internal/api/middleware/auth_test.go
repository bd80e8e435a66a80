package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, claims Claims, method jwt.SigningMethod, key interface{}) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func protected() (http.Handler, *int64) {
	var got int64
	h := Auth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetUserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))
	return h, &got
}

func TestAuth(t *testing.T) {
	valid := signToken(t, Claims{
		UserID:           42,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}, jwt.SigningMethodHS256, testSecret)

	expired := signToken(t, Claims{
		UserID:           42,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))},
	}, jwt.SigningMethodHS256, testSecret)

	wrongKey := signToken(t, Claims{UserID: 42}, jwt.SigningMethodHS256, []byte("other"))
	noUser := signToken(t, Claims{}, jwt.SigningMethodHS256, testSecret)

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantBody string
	}{
		{name: "valid", header: "Bearer " + valid, wantCode: http.StatusNoContent},
		{name: "missing", header: "", wantCode: http.StatusUnauthorized, wantBody: msgNoToken},
		{name: "not bearer", header: "Basic abc", wantCode: http.StatusUnauthorized, wantBody: msgNoToken},
		{name: "expired", header: "Bearer " + expired, wantCode: http.StatusUnauthorized, wantBody: msgTokenExpired},
		{name: "wrong key", header: "Bearer " + wrongKey, wantCode: http.StatusUnauthorized, wantBody: msgInvalidToken},
		{name: "no user id", header: "Bearer " + noUser, wantCode: http.StatusUnauthorized, wantBody: msgInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, got := protected()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
				assert.Contains(t, rec.Body.String(), strconv.Itoa(tt.wantCode))
			} else {
				assert.Equal(t, int64(42), *got)
			}
		})
	}
}

func TestRateLimiter_PerIP(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	h := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/import", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:5000"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1:5001"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:5002"))
	assert.Equal(t, http.StatusOK, call("10.0.0.2:5000"))
}
