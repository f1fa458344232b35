package state

import (
	"time"

	"github.com/llehouerou/tunematch/internal/metadata"
)

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	SaveNavigation(state NavigationState)
	GetNavigation() (*NavigationState, error)
	LoadSearch(provider, key string, maxAge time.Duration) ([]metadata.ProviderResult, bool, error)
	SaveSearch(provider, key string, results []metadata.ProviderResult) error
	PruneSearchCache(maxAge time.Duration) (int64, error)
	SearchCacheStats() (CacheStats, error)
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
