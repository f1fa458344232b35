package state

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	dbutil "github.com/llehouerou/tunematch/internal/db"
	"github.com/llehouerou/tunematch/internal/metadata"
)

// CacheStats summarizes the search cache.
type CacheStats struct {
	Entries int
	Results int
	Oldest  time.Time // Zero when the cache is empty
	Newest  time.Time
}

// LoadSearch returns cached provider results younger than maxAge.
// A non-positive maxAge disables the cache.
func (m *Manager) LoadSearch(provider, key string, maxAge time.Duration) ([]metadata.ProviderResult, bool, error) {
	if maxAge <= 0 {
		return nil, false, nil
	}

	var payload string
	var fetchedAt int64
	err := m.db.QueryRow(`
		SELECT payload, fetched_at FROM search_cache
		WHERE provider = ? AND query_key = ?
	`, provider, key).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if m.now().Sub(time.Unix(fetchedAt, 0)) > maxAge {
		return nil, false, nil
	}

	var results []metadata.ProviderResult
	if err := json.Unmarshal([]byte(payload), &results); err != nil {
		return nil, false, fmt.Errorf("decode cached results: %w", err)
	}
	return results, true, nil
}

// SaveSearch stores provider results, replacing any previous answer.
func (m *Manager) SaveSearch(provider, key string, results []metadata.ProviderResult) error {
	if results == nil {
		results = []metadata.ProviderResult{}
	}
	payload, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}

	_, err = m.db.Exec(`
		INSERT INTO search_cache (provider, query_key, payload, result_count, fetched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(provider, query_key) DO UPDATE SET
			payload = excluded.payload,
			result_count = excluded.result_count,
			fetched_at = excluded.fetched_at
	`, provider, key, string(payload), len(results), m.now().Unix())
	return err
}

// PruneSearchCache deletes entries older than maxAge and returns how many
// were removed. A non-positive maxAge clears the whole cache.
func (m *Manager) PruneSearchCache(maxAge time.Duration) (int64, error) {
	var removed int64
	err := dbutil.WithTx(m.db, func(tx *sql.Tx) error {
		var res sql.Result
		var err error
		if maxAge <= 0 {
			res, err = tx.Exec(`DELETE FROM search_cache`)
		} else {
			cutoff := m.now().Add(-maxAge).Unix()
			res, err = tx.Exec(`DELETE FROM search_cache WHERE fetched_at < ?`, cutoff)
		}
		if err != nil {
			return err
		}
		removed, err = res.RowsAffected()
		return err
	})
	return removed, err
}

// SearchCacheStats reports the size and age of the search cache.
func (m *Manager) SearchCacheStats() (CacheStats, error) {
	var stats CacheStats
	var results, oldest, newest sql.NullInt64
	err := m.db.QueryRow(`
		SELECT COUNT(*), SUM(result_count), MIN(fetched_at), MAX(fetched_at)
		FROM search_cache
	`).Scan(&stats.Entries, &results, &oldest, &newest)
	if err != nil {
		return CacheStats{}, err
	}

	stats.Results = int(dbutil.NullInt64Value(results))
	stats.Oldest = dbutil.NullUnixTime(oldest)
	stats.Newest = dbutil.NullUnixTime(newest)
	return stats, nil
}
