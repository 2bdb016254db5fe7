package services

import (
	"context"
	"math"
	"sort"

	"smartdelivery/internal/core/domain/model/courier"
	"smartdelivery/internal/core/domain/model/kernel"
	"smartdelivery/internal/core/domain/model/order"
	"smartdelivery/internal/core/ports"
)

const (
	// fallbackSpeedKmh converts haversine distance to travel time when the
	// route estimator is unavailable.
	fallbackSpeedKmh = 30.0

	// DefaultOrderPenaltyMinutes is the per-active-order score penalty used
	// when no override is configured.
	DefaultOrderPenaltyMinutes = 5.0
)

// Recommendation is one courier's scored position in the ranking.
// DistanceKm is rounded to two decimals, EstimatedMinutes and Score to one.
type Recommendation struct {
	CourierID        kernel.UUID
	CourierName      string
	DistanceKm       float64
	EstimatedMinutes float64
	ActiveOrders     int
	Score            float64
	Rank             int
	Recommended      bool
}

// CourierRecommender ranks couriers by estimated effort to fulfill an
// order's collection plan.
//
// For each courier the route courier → collection depots (in plan order) →
// delivery point is priced through the route estimator; when the estimator
// is unavailable the same legs are summed by haversine distance and
// converted to time at a fixed average speed. The composite score adds a
// per-active-order penalty so that busy couriers rank below idle ones at
// equal travel time.
type CourierRecommender struct {
	estimator      ports.RouteEstimator
	penaltyMinutes float64
}

// NewCourierRecommender creates a recommender. A non-positive penalty
// selects DefaultOrderPenaltyMinutes.
func NewCourierRecommender(estimator ports.RouteEstimator, penaltyMinutes float64) CourierRecommender {
	if penaltyMinutes <= 0 {
		penaltyMinutes = DefaultOrderPenaltyMinutes
	}
	return CourierRecommender{estimator: estimator, penaltyMinutes: penaltyMinutes}
}

// Recommend scores the couriers against the plan's depot waypoints and the
// delivery point, and returns them sorted ascending by score with ranks
// assigned from 1. The rank-1 entry is flagged as recommended. The sort is
// stable, so ties keep the input order. Couriers without a known position
// are skipped. Legs with unknown coordinates are omitted from the route.
func (r CourierRecommender) Recommend(
	ctx context.Context,
	couriers []*courier.Courier,
	steps []order.CollectionStep,
	delivery *kernel.GeoPoint,
) []Recommendation {
	recommendations := make([]Recommendation, 0, len(couriers))

	for _, c := range couriers {
		if c == nil || c.Position() == nil {
			continue
		}

		points := routePoints(*c.Position(), steps, delivery)
		minutes, distanceKm := r.routeCost(ctx, points)
		score := minutes + float64(c.ActiveOrders())*r.penaltyMinutes

		recommendations = append(recommendations, Recommendation{
			CourierID:        c.ID(),
			CourierName:      c.Name(),
			DistanceKm:       round(distanceKm, 2),
			EstimatedMinutes: round(minutes, 1),
			ActiveOrders:     c.ActiveOrders(),
			Score:            round(score, 1),
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score < recommendations[j].Score
	})
	for i := range recommendations {
		recommendations[i].Rank = i + 1
		recommendations[i].Recommended = i == 0
	}

	return recommendations
}

// routePoints builds the coordinate sequence courier → depots in plan order
// → delivery, omitting legs with unknown coordinates.
func routePoints(position kernel.GeoPoint, steps []order.CollectionStep, delivery *kernel.GeoPoint) []kernel.GeoPoint {
	points := make([]kernel.GeoPoint, 0, len(steps)+2)
	points = append(points, position)
	for _, step := range steps {
		if step.Location != nil {
			points = append(points, *step.Location)
		}
	}
	if delivery != nil {
		points = append(points, *delivery)
	}
	return points
}

// routeCost prices the exact coordinate sequence: estimator first, haversine
// legs at the fallback speed otherwise. Returns minutes and kilometers.
func (r CourierRecommender) routeCost(ctx context.Context, points []kernel.GeoPoint) (float64, float64) {
	if len(points) < 2 {
		return 0, 0
	}

	if r.estimator != nil {
		if route := r.estimator.GetRoute(ctx, points); route != nil {
			return route.Duration / 60, route.Distance / 1000
		}
	}

	km := 0.0
	for i := 1; i < len(points); i++ {
		km += points[i-1].DistanceKm(points[i])
	}
	return km / fallbackSpeedKmh * 60, km
}

func round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
