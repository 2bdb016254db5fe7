package queries

import (
	"context"

	"smartdelivery/internal/core/domain/model/kernel"
	"smartdelivery/internal/core/domain/model/order"
	"smartdelivery/internal/core/domain/services"
	"smartdelivery/internal/core/ports"
)

// CollectionPlanProvider yields the collection steps used as the order's
// depot waypoints, generating a plan when the order has none. Implemented by
// an adapter over the plan generation command so that recommendation reuses
// the exact optimizer output.
type CollectionPlanProvider interface {
	PlanForOrder(ctx context.Context, tenantID, orderID kernel.UUID) ([]order.CollectionStep, error)
}

// RecommendCouriersQueryHandler ranks eligible couriers by estimated effort
// to fulfill the order: travel courier → plan depots → delivery point, plus
// a per-active-order penalty. Ranks start at 1; the rank-1 courier is
// flagged as recommended.
type RecommendCouriersQueryHandler struct {
	uowFactory   ports.UnitOfWorkFactory
	planProvider CollectionPlanProvider
	recommender  services.CourierRecommender
}

// NewRecommendCouriersQueryHandler creates the handler. The estimator may be
// unavailable; scoring then runs on the haversine fallback.
func NewRecommendCouriersQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
	planProvider CollectionPlanProvider,
	estimator ports.RouteEstimator,
	penaltyMinutes float64,
) RecommendCouriersQueryHandler {
	return RecommendCouriersQueryHandler{
		uowFactory:   uowFactory,
		planProvider: planProvider,
		recommender:  services.NewCourierRecommender(estimator, penaltyMinutes),
	}
}

// Handle scores and ranks the tenant's active, locatable couriers.
func (h RecommendCouriersQueryHandler) Handle(
	ctx context.Context,
	query RecommendCouriersQuery,
) ([]CourierRecommendationResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetWithItems(ctx, query.TenantID(), query.OrderID())
	if err != nil {
		return nil, err
	}

	steps := o.Plan().Steps()
	if o.Plan().IsAbsent() {
		steps, err = h.planProvider.PlanForOrder(ctx, query.TenantID(), query.OrderID())
		if err != nil {
			return nil, err
		}
	}

	couriers, err := uow.CourierRepository().GetActiveWithPosition(ctx, query.TenantID())
	if err != nil {
		return nil, err
	}

	recommendations := h.recommender.Recommend(ctx, couriers, steps, o.Delivery())

	responses := make([]CourierRecommendationResponse, 0, len(recommendations))
	for _, rec := range recommendations {
		responses = append(responses, CourierRecommendationResponse{
			CourierID:        rec.CourierID,
			CourierName:      rec.CourierName,
			DistanceKm:       rec.DistanceKm,
			EstimatedMinutes: rec.EstimatedMinutes,
			ActiveOrders:     rec.ActiveOrders,
			Score:            rec.Score,
			Rank:             rec.Rank,
			Recommended:      rec.Recommended,
		})
	}

	return responses, nil
}
