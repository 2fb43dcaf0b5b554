package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/lenshub-dev/lenshub/internal/backend"
	"github.com/lenshub-dev/lenshub/internal/capability"
	"github.com/lenshub-dev/lenshub/internal/config"
	"github.com/lenshub-dev/lenshub/internal/session"
)

// memStore is an in-memory token store standing in for the cookie store
type memStore struct {
	token string
	ok    bool
}

func (m *memStore) Create(_ *gin.Context, token string) {
	m.token = token
	m.ok = true
}

func (m *memStore) Read(_ *gin.Context) (string, bool) {
	return m.token, m.ok
}

func (m *memStore) Destroy(_ *gin.Context) {
	m.token = ""
	m.ok = false
}

// memCache is an in-memory capability cache
type memCache struct {
	entries map[string]string
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]string)}
}

func (m *memCache) Get(_ context.Context, key string) (string, error) {
	value, ok := m.entries[key]
	if !ok {
		return "", capability.ErrCacheMiss
	}
	return value, nil
}

func (m *memCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	m.entries[key] = value
	return nil
}

func (m *memCache) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.entries, key)
	}
	return nil
}

// signToken builds a backend-style access token for the given identity
func signToken(t *testing.T, id, role string) string {
	t.Helper()

	claims := session.TokenClaims{
		UserID: id,
		Role:   role,
		Name:   "Test User",
		Email:  "test@lenshub.dev",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

// signExpiredToken builds a well-formed token whose expiry has passed
func signExpiredToken(t *testing.T, id, role string) string {
	t.Helper()

	claims := session.TokenClaims{
		UserID: id,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

// mockMarketplace is a mock marketplace backend covering the endpoints
// the gateway proxies to. vendorFetches counts /vendor/me hits so tests
// can assert the capability set is fetched once per session.
type mockMarketplace struct {
	*httptest.Server
	vendorFetches int
}

func newMockMarketplace(t *testing.T, vendorCategories []string, issuedToken string) *mockMarketplace {
	t.Helper()

	m := &mockMarketplace{}
	mux := http.NewServeMux()

	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if issuedToken == "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"message":"Invalid credentials"}`))
			return
		}
		w.Write([]byte(`{"success":true,"message":"Login successful","data":{"accessToken":"` + issuedToken + `"}}`))
	})

	mux.HandleFunc("/vendor/me", func(w http.ResponseWriter, r *http.Request) {
		m.vendorFetches++
		w.Header().Set("Content-Type", "application/json")
		body := `{"success":true,"data":{"id":"vendor-1","name":"Optic World","categories":[`
		for i, c := range vendorCategories {
			if i > 0 {
				body += ","
			}
			body += `"` + c + `"`
		}
		body += `]}}`
		w.Write([]byte(body))
	})

	for _, path := range []string{"/products", "/lens-solutions", "/accessories", "/orders", "/coupons"} {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"success":true,"data":[]}`))
		})
	}

	m.Server = httptest.NewServer(mux)
	t.Cleanup(m.Close)
	return m
}

// newTestServer wires a Server with in-memory fakes around a mock backend
func newTestServer(t *testing.T, backendURL string) (*Server, *memStore) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	registerValidators()

	store := &memStore{}
	client := backend.New(backendURL)
	// Fail fast in tests instead of the production 30s timeout
	client.SetHTTPClient(&http.Client{Timeout: 5 * time.Second})

	s := &Server{
		config: &config.Config{
			Server: config.ServerConfig{
				CORSOrigins: []string{"http://localhost:3000"},
			},
		},
		logger:       zerolog.Nop(),
		backend:      client,
		store:        store,
		resolver:     session.NewResolver(store),
		capabilities: capability.NewService(client, newMemCache(), zerolog.Nop()),
		version:      "test",
	}
	s.setupRouter()

	return s, store
}
