package osrm

import (
	"testing"
	"time"

	"smartdelivery/internal/core/domain/model/kernel"
	"smartdelivery/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cachePoint(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return point
}

func TestTableCache_PutThenGet_ReturnsSameResult(t *testing.T) {
	cache := newTableCache(tableCacheTTL)
	result := &ports.TableResult{Durations: [][]float64{{0, 60}, {60, 0}}}

	cache.put("table:a", result)

	assert.Same(t, result, cache.get("table:a"))
}

func TestTableCache_MissingKey_ReturnsNil(t *testing.T) {
	cache := newTableCache(tableCacheTTL)

	assert.Nil(t, cache.get("table:missing"))
}

func TestTableCache_ExpiredEntry_ReturnsNil(t *testing.T) {
	cache := newTableCache(tableCacheTTL)
	current := time.Now()
	cache.now = func() time.Time { return current }

	cache.put("table:a", &ports.TableResult{})

	current = current.Add(tableCacheTTL + time.Second)

	assert.Nil(t, cache.get("table:a"))
}

func TestTableCache_EntryWithinTTL_StaysCached(t *testing.T) {
	cache := newTableCache(tableCacheTTL)
	current := time.Now()
	cache.now = func() time.Time { return current }

	result := &ports.TableResult{}
	cache.put("table:a", result)

	current = current.Add(tableCacheTTL - time.Second)

	assert.Same(t, result, cache.get("table:a"))
}

func TestTableCache_SweepExpired_RemovesOnlyExpiredEntries(t *testing.T) {
	cache := newTableCache(tableCacheTTL)
	current := time.Now()
	cache.now = func() time.Time { return current }

	cache.put("table:old", &ports.TableResult{})

	current = current.Add(3 * time.Minute)
	cache.put("table:fresh", &ports.TableResult{})

	current = current.Add(3 * time.Minute)

	removed := cache.sweepExpired()

	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, cache.len())
	assert.Nil(t, cache.get("table:old"))
	assert.NotNil(t, cache.get("table:fresh"))
}

func TestTableCacheKey_RoundsCoordinatesToSixDecimals(t *testing.T) {
	a := []kernel.GeoPoint{cachePoint(t, 34.7500004, 10.8000004)}
	b := []kernel.GeoPoint{cachePoint(t, 34.7500001, 10.8000001)}

	assert.Equal(t, tableCacheKey(a, nil, nil), tableCacheKey(b, nil, nil))
}

func TestTableCacheKey_DistinguishesSubsets(t *testing.T) {
	points := []kernel.GeoPoint{
		cachePoint(t, 34.75, 10.80),
		cachePoint(t, 34.80, 10.85),
	}

	full := tableCacheKey(points, nil, nil)
	subset := tableCacheKey(points, []int{0}, []int{1})

	assert.NotEqual(t, full, subset)
}

func TestTableCacheKey_DistinguishesCoordinateOrder(t *testing.T) {
	a := cachePoint(t, 34.75, 10.80)
	b := cachePoint(t, 34.80, 10.85)

	assert.NotEqual(t,
		tableCacheKey([]kernel.GeoPoint{a, b}, nil, nil),
		tableCacheKey([]kernel.GeoPoint{b, a}, nil, nil),
	)
}
