// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"smartdelivery/internal/core/domain/model/kernel"
	"smartdelivery/internal/pkg/guard"
)

var ErrRecommendCouriersQueryIsNotConstructed = errors.New(
	"RecommendCouriersQuery must be created via NewRecommendCouriersQuery constructor",
)

// RecommendCouriersQuery ranks the tenant's eligible couriers for one order.
type RecommendCouriersQuery struct {
	tenantID kernel.UUID
	orderID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewRecommendCouriersQuery creates a validated query.
func NewRecommendCouriersQuery(tenantID, orderID kernel.UUID) (RecommendCouriersQuery, error) {
	q := RecommendCouriersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := tenantID.Validate(); err != nil {
		return RecommendCouriersQuery{}, err
	}
	if err := orderID.Validate(); err != nil {
		return RecommendCouriersQuery{}, err
	}

	q.tenantID = tenantID
	q.orderID = orderID
	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q RecommendCouriersQuery) Validate() error {
	return q.guard.Validate(ErrRecommendCouriersQueryIsNotConstructed)
}

// TenantID returns the tenant scope of the request.
func (q RecommendCouriersQuery) TenantID() kernel.UUID {
	return q.tenantID
}

// OrderID returns the order to recommend couriers for.
func (q RecommendCouriersQuery) OrderID() kernel.UUID {
	return q.orderID
}

// CourierRecommendationResponse is one courier's position in the ranking.
type CourierRecommendationResponse struct {
	CourierID        kernel.UUID
	CourierName      string
	DistanceKm       float64
	EstimatedMinutes float64
	ActiveOrders     int
	Score            float64
	Rank             int
	Recommended      bool
}
