package capability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lenshub-dev/lenshub/internal/session"
)

// fakeSource counts backend fetches so tests can assert fetch-once
type fakeSource struct {
	categories []string
	err        error
	calls      int
}

func (f *fakeSource) VendorCategories(_ context.Context, _ string) ([]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.categories, nil
}

// memCache is an in-memory Cache for testing
type memCache struct {
	entries map[string]string
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]string)}
}

func (m *memCache) Get(_ context.Context, key string) (string, error) {
	value, ok := m.entries[key]
	if !ok {
		return "", ErrCacheMiss
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

func TestService_CategoriesFetchesOnce(t *testing.T) {
	source := &fakeSource{categories: []string{"Reader", "LensSolution"}}
	svc := NewService(source, newMemCache(), zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		categories, err := svc.Categories(ctx, "vendor-1", "token")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(categories) != 2 {
			t.Fatalf("expected 2 categories, got %v", categories)
		}
	}

	if source.calls != 1 {
		t.Errorf("expected a single backend fetch, got %d", source.calls)
	}
}

func TestService_RefreshReplacesSet(t *testing.T) {
	source := &fakeSource{categories: []string{"Reader"}}
	svc := NewService(source, newMemCache(), zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.Categories(ctx, "vendor-1", "token"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Backend grants a new category; only an explicit refresh sees it
	source.categories = []string{"Reader", "Accessory"}

	cached, err := svc.Categories(ctx, "vendor-1", "token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cached) != 1 {
		t.Errorf("expected cached set of 1 before refresh, got %v", cached)
	}

	refreshed, err := svc.Refresh(ctx, "vendor-1", "token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(refreshed) != 2 {
		t.Errorf("expected refreshed set of 2, got %v", refreshed)
	}

	// Subsequent reads observe the replaced set
	cached, err = svc.Categories(ctx, "vendor-1", "token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cached) != 2 {
		t.Errorf("expected cached set of 2 after refresh, got %v", cached)
	}
}

func TestService_InvalidateForcesRefetch(t *testing.T) {
	source := &fakeSource{categories: []string{"Product"}}
	svc := NewService(source, newMemCache(), zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.Categories(ctx, "vendor-1", "token"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc.Invalidate(ctx, "vendor-1")
	if _, err := svc.Categories(ctx, "vendor-1", "token"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if source.calls != 2 {
		t.Errorf("expected refetch after invalidate, got %d calls", source.calls)
	}
}

func TestService_CorruptCacheEntryRefetches(t *testing.T) {
	source := &fakeSource{categories: []string{"Product"}}
	cache := newMemCache()
	svc := NewService(source, cache, zerolog.Nop())
	ctx := context.Background()

	cache.entries[cacheKey("vendor-1")] = "{not json"

	categories, err := svc.Categories(ctx, "vendor-1", "token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(categories) != 1 || categories[0] != "Product" {
		t.Errorf("expected fresh fetch, got %v", categories)
	}
}

func TestService_SourceError(t *testing.T) {
	source := &fakeSource{err: errors.New("backend unavailable")}
	svc := NewService(source, newMemCache(), zerolog.Nop())

	if _, err := svc.Categories(context.Background(), "vendor-1", "token"); err == nil {
		t.Error("expected error when backend fetch fails on cache miss")
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name     string
		required []string
		granted  []string
		expected bool
	}{
		{
			name:     "single overlap authorizes",
			required: []string{"LensSolution", "Reader"},
			granted:  []string{"Reader"},
			expected: true,
		},
		{
			name:     "no overlap denies",
			required: []string{"LensSolution"},
			granted:  []string{"Reader"},
			expected: false,
		},
		{
			name:     "empty granted set denies",
			required: []string{"Product"},
			granted:  []string{},
			expected: false,
		},
		{
			name:     "no requirement authorizes",
			required: nil,
			granted:  nil,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Match(tt.required, tt.granted); got != tt.expected {
				t.Errorf("Match(%v, %v) = %v, expected %v", tt.required, tt.granted, got, tt.expected)
			}
		})
	}
}

func TestAuthorized(t *testing.T) {
	tests := []struct {
		name     string
		role     session.Role
		required []string
		granted  []string
		expected bool
	}{
		{
			name:     "admin bypasses empty capability set",
			role:     session.RoleAdmin,
			required: []string{"LensSolution"},
			granted:  []string{},
			expected: true,
		},
		{
			name:     "super admin bypasses capability set",
			role:     session.RoleSuperAdmin,
			required: []string{"LensSolution"},
			granted:  []string{},
			expected: true,
		},
		{
			name:     "vendor with one matching category is authorized",
			role:     session.RoleVendor,
			required: []string{"LensSolution", "Reader"},
			granted:  []string{"Reader"},
			expected: true,
		},
		{
			name:     "vendor without matching category is denied",
			role:     session.RoleVendor,
			required: []string{"LensSolution"},
			granted:  []string{"Reader"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Authorized(tt.role, tt.required, tt.granted); got != tt.expected {
				t.Errorf("Authorized(%v, %v, %v) = %v, expected %v", tt.role, tt.required, tt.granted, got, tt.expected)
			}
		})
	}
}
