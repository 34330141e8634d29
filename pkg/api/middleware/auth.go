package middleware

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

// APIKeyHeader is the header carrying the client API key
const APIKeyHeader = "X-API-Key"

// APIKeyAuth creates middleware that requires a valid API key. The expected
// key is configured as a bcrypt hash so the plaintext never lives in config
// files. An empty hash disables authentication.
func APIKeyAuth(keyHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if keyHash == "" {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get(APIKeyHeader)
			if key == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(key)); err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
