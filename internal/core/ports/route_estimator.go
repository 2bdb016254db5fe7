package ports

import (
	"context"

	"smartdelivery/internal/core/domain/model/kernel"
)

// TableResult is a duration/distance matrix between coordinate sets.
// Durations are seconds, distances meters. Durations[i][j] is the travel
// time from the i-th source to the j-th destination.
type TableResult struct {
	Durations [][]float64
	Distances [][]float64
}

// TripResult is the solution of a trip (traveling-salesman) request.
// WaypointOrder[i] is the visiting position assigned to the i-th input
// coordinate. Duration is seconds, Distance meters, for the whole trip.
type TripResult struct {
	WaypointOrder []int
	Duration      float64
	Distance      float64
}

// RouteResult is the cost of traversing a fixed coordinate sequence.
// Duration is seconds, Distance meters.
type RouteResult struct {
	Duration float64
	Distance float64
}

// RouteEstimator is the routing provider behind plan sequencing and courier
// scoring. Every method returns nil when the provider is unreachable,
// times out, or answers with anything other than a success code; callers
// must degrade to the haversine path and never treat nil as an error.
type RouteEstimator interface {
	// GetTable requests the full duration/distance matrix between all
	// given points.
	GetTable(ctx context.Context, points []kernel.GeoPoint) *TableResult

	// GetTableSubset requests the matrix restricted to the given source
	// and destination indices into points.
	GetTableSubset(ctx context.Context, points []kernel.GeoPoint, sources, destinations []int) *TableResult

	// GetTrip solves the visiting order over the given points. The first
	// point is fixed as the start; the trip does not return to it.
	GetTrip(ctx context.Context, points []kernel.GeoPoint) *TripResult

	// GetRoute prices the exact coordinate sequence as given.
	GetRoute(ctx context.Context, points []kernel.GeoPoint) *RouteResult

	// IsAvailable reports whether the provider answered a recent probe.
	// Informational only; callers still handle nil results.
	IsAvailable(ctx context.Context) bool
}
