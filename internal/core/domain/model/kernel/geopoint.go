package kernel

import (
	"errors"
	"fmt"
	"math"

	"smartdelivery/internal/pkg/errs"
	"smartdelivery/internal/pkg/guard"
)

const (
	// MinLatitude is the minimum valid latitude in degrees.
	MinLatitude = -90.0
	// MaxLatitude is the maximum valid latitude in degrees.
	MaxLatitude = 90.0
	// MinLongitude is the minimum valid longitude in degrees.
	MinLongitude = -180.0
	// MaxLongitude is the maximum valid longitude in degrees.
	MaxLongitude = 180.0

	// earthRadiusKm is the mean Earth radius used by the haversine formula.
	earthRadiusKm = 6371.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an
// improperly initialized GeoPoint. GeoPoints must be created via NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint is an immutable value object representing a WGS84 coordinate pair.
// The zero value is invalid; use NewGeoPoint to create instances.
//
// Example:
//
//	p, err := kernel.NewGeoPoint(34.740, 10.760)
//	if err != nil {
//	    // handle validation error
//	}
//	fmt.Println(p) // GeoPoint(34.740000,10.760000)
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lon   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint with the given latitude and longitude in
// degrees. Latitude must be within [-90, 90] and longitude within [-180, 180].
func NewGeoPoint(lat, lon float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLat(lat), p.setLon(lon)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate checks that the GeoPoint was created through its constructor.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Lat returns the latitude in degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Lon returns the longitude in degrees.
func (p GeoPoint) Lon() float64 {
	return p.lon
}

// String implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%f,%f)", p.lat, p.lon)
}

// IsEqual compares two points for coordinate equality.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.lat == other.lat && p.lon == other.lon
}

// DistanceKm returns the great-circle distance to other in kilometers using
// the haversine formula with a mean Earth radius of 6371 km.
func (p GeoPoint) DistanceKm(other GeoPoint) float64 {
	return HaversineKm(p.lat, p.lon, other.lat, other.lon)
}

// HaversineKm returns the great-circle distance in kilometers between two
// coordinate pairs given in degrees.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// NearestNeighborOrder returns the indices of points in greedy
// nearest-neighbor visiting order starting from start. At each step the
// unvisited point closest to the current position is chosen; ties are broken
// by the first-encountered index. The result always contains every index of
// points exactly once.
func NearestNeighborOrder(start GeoPoint, points []GeoPoint) []int {
	order := make([]int, 0, len(points))
	visited := make([]bool, len(points))
	current := start

	for range points {
		nearest := -1
		minDist := math.MaxFloat64
		for i, p := range points {
			if visited[i] {
				continue
			}
			if d := current.DistanceKm(p); d < minDist {
				minDist = d
				nearest = i
			}
		}
		if nearest < 0 {
			break
		}
		visited[nearest] = true
		order = append(order, nearest)
		current = points[nearest]
	}

	return order
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func (p *GeoPoint) setLat(lat float64) error {
	if lat < MinLatitude || lat > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", lat, MinLatitude, MaxLatitude)
	}

	p.lat = lat
	return nil
}

func (p *GeoPoint) setLon(lon float64) error {
	if lon < MinLongitude || lon > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", lon, MinLongitude, MaxLongitude)
	}

	p.lon = lon
	return nil
}
