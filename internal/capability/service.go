// Package capability gates vendor-facing features behind the vendor's
// enabled-category set. Admins bypass the set entirely; vendors are
// authorized when at least one required category is enabled for them.
package capability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lenshub-dev/lenshub/internal/session"
)

// DefaultTTL bounds how stale a cached capability set may get before the
// next guard evaluation re-fetches it.
const DefaultTTL = 15 * time.Minute

// CategorySource fetches the enabled categories for the vendor the token
// belongs to. Implemented by the backend API client.
type CategorySource interface {
	VendorCategories(ctx context.Context, token string) ([]string, error)
}

// Service caches the per-vendor capability set for the lifetime of a
// session. Guard evaluations hit the cache; only the first evaluation of
// a session (or an explicit Refresh) reaches the backend.
type Service struct {
	source CategorySource
	cache  Cache
	logger zerolog.Logger
	ttl    time.Duration
}

// NewService creates a capability service.
func NewService(source CategorySource, cache Cache, logger zerolog.Logger) *Service {
	return &Service{
		source: source,
		cache:  cache,
		logger: logger,
		ttl:    DefaultTTL,
	}
}

func cacheKey(vendorID string) string {
	return fmt.Sprintf("vendor:categories:%s", vendorID)
}

// Categories returns the vendor's enabled categories, fetching from the
// backend only on a cache miss.
func (s *Service) Categories(ctx context.Context, vendorID, token string) ([]string, error) {
	cached, err := s.cache.Get(ctx, cacheKey(vendorID))
	if err == nil {
		var categories []string
		if jsonErr := json.Unmarshal([]byte(cached), &categories); jsonErr == nil {
			return categories, nil
		}
		// Unreadable entry: drop it and re-fetch
		_ = s.cache.Del(ctx, cacheKey(vendorID))
	} else if !errors.Is(err, ErrCacheMiss) {
		s.logger.Warn().Err(err).Str("vendor_id", vendorID).Msg("Capability cache read failed, fetching from backend")
	}

	return s.Refresh(ctx, vendorID, token)
}

// Refresh re-fetches the capability set from the backend and atomically
// replaces the cached entry. There is no partial merge.
func (s *Service) Refresh(ctx context.Context, vendorID, token string) ([]string, error) {
	categories, err := s.source.VendorCategories(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vendor categories: %w", err)
	}

	encoded, err := json.Marshal(categories)
	if err != nil {
		return nil, fmt.Errorf("failed to encode vendor categories: %w", err)
	}

	if err := s.cache.Set(ctx, cacheKey(vendorID), string(encoded), s.ttl); err != nil {
		// A dead cache degrades to a fetch per evaluation, not an outage
		s.logger.Warn().Err(err).Str("vendor_id", vendorID).Msg("Failed to cache vendor categories")
	}

	return categories, nil
}

// Invalidate drops the cached set, e.g. on logout.
func (s *Service) Invalidate(ctx context.Context, vendorID string) {
	if err := s.cache.Del(ctx, cacheKey(vendorID)); err != nil {
		s.logger.Warn().Err(err).Str("vendor_id", vendorID).Msg("Failed to invalidate vendor categories")
	}
}

// Match reports whether at least one required category is granted. OR
// semantics: a single overlap authorizes.
func Match(required, granted []string) bool {
	if len(required) == 0 {
		return true
	}
	grantedSet := make(map[string]struct{}, len(granted))
	for _, g := range granted {
		grantedSet[g] = struct{}{}
	}
	for _, r := range required {
		if _, ok := grantedSet[r]; ok {
			return true
		}
	}
	return false
}

// Authorized decides capability access for a resolved identity. Admin
// roles are always authorized regardless of the granted set.
func Authorized(role session.Role, required, granted []string) bool {
	if role.Elevated() {
		return true
	}
	return Match(required, granted)
}
