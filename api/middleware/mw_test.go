package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hagbad-hub/ayuuto-services/internal/authn"
)

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("Expected request to be blocked by JWTMiddleware")
	})

	req := httptest.NewRequest(http.MethodGet, "/groups", nil)
	w := httptest.NewRecorder()

	JWTMiddleware(next).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTMiddleware_BadHeaderFormat(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("Expected request to be blocked by JWTMiddleware")
	})

	req := httptest.NewRequest(http.MethodGet, "/groups", nil)
	req.Header.Add("Authorization", "token-without-bearer-prefix")
	w := httptest.NewRecorder()

	JWTMiddleware(next).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTMiddleware_InvalidBearerToken_ClaimsNotPopulated(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := r.Context().Value(ClaimsKey).(authn.Claims)
		assert.Equal(t, "", claims.Subject)
		if claims.Subject == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/groups", nil)
	req.Header.Add("Authorization", "Bearer invalid-token")

	w := httptest.NewRecorder()
	JWTMiddleware(next).ServeHTTP(w, req)
}

func TestWithMetrics_PassesThrough(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/groups", nil)
	w := httptest.NewRecorder()

	WithMetrics(next).ServeHTTP(w, req)

	assert.Equal(t, http.StatusTeapot, w.Code)
}
