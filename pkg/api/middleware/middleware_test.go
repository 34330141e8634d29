package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/dd0wney/cluso-segmenter/pkg/logging"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// TestRequestID_Generated tests that a UUID is assigned when absent
func TestRequestID_Generated(t *testing.T) {
	var captured string
	handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetRequestID(r)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if captured == "" {
		t.Error("Expected generated request ID in context")
	}
	if rec.Header().Get(RequestIDHeader) != captured {
		t.Error("Expected request ID echoed in response header")
	}
}

// TestRequestID_ClientProvided tests sanitization of client-supplied IDs
func TestRequestID_ClientProvided(t *testing.T) {
	var captured string
	handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetRequestID(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123<script>")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if captured != "abc-123script" {
		t.Errorf("Expected sanitized ID abc-123script, got %q", captured)
	}
}

// TestAPIKeyAuth tests key checking against a bcrypt hash
func TestAPIKeyAuth(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-key"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("GenerateFromPassword failed: %v", err)
	}
	handler := APIKeyAuth(string(hash))(okHandler())

	tests := []struct {
		name   string
		key    string
		status int
	}{
		{"valid key", "secret-key", http.StatusOK},
		{"wrong key", "wrong", http.StatusUnauthorized},
		{"missing key", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.key != "" {
				req.Header.Set(APIKeyHeader, tt.key)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, rec.Code)
			}
		})
	}
}

// TestAPIKeyAuth_Disabled tests passthrough with no hash configured
func TestAPIKeyAuth_Disabled(t *testing.T) {
	handler := APIKeyAuth("")(okHandler())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("Expected passthrough, got %d", rec.Code)
	}
}

// TestPanicRecovery tests that panics turn into 500 responses
func TestPanicRecovery(t *testing.T) {
	handler := PanicRecovery(logging.NewNopLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500 after panic, got %d", rec.Code)
	}
}

// TestCORS_Preflight tests OPTIONS short-circuit
func TestCORS_Preflight(t *testing.T) {
	handler := CORS()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Preflight should not reach the handler")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Expected CORS headers set")
	}
}
