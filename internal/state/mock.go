package state

import (
	"sync"
	"time"

	"github.com/llehouerou/tunematch/internal/metadata"
)

// Mock is a test double for Manager.
type Mock struct {
	mu       sync.Mutex
	navState *NavigationState
	saved    []NavigationState
	searches map[string][]metadata.ProviderResult
	closed   bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{searches: map[string][]metadata.ProviderResult{}}
}

func (m *Mock) SaveNavigation(state NavigationState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, state)
}

func (m *Mock) GetNavigation() (*NavigationState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.navState, nil
}

func (m *Mock) LoadSearch(provider, key string, _ time.Duration) ([]metadata.ProviderResult, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rs, ok := m.searches[provider+"|"+key]
	return rs, ok, nil
}

func (m *Mock) SaveSearch(provider, key string, results []metadata.ProviderResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searches[provider+"|"+key] = results
	return nil
}

func (m *Mock) PruneSearchCache(time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.searches))
	m.searches = map[string][]metadata.ProviderResult{}
	return n, nil
}

func (m *Mock) SearchCacheStats() (CacheStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return CacheStats{Entries: len(m.searches)}, nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetNavigation(state *NavigationState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.navState = state
}

// SavedNavigation returns every state passed to SaveNavigation.
func (m *Mock) SavedNavigation() []NavigationState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]NavigationState(nil), m.saved...)
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
