package services

import (
	"context"

	"smartdelivery/internal/core/domain/model/kernel"
	"smartdelivery/internal/core/domain/model/order"
	"smartdelivery/internal/core/ports"
)

// PlanAssembler merges per-order collection steps into a single plan and
// orders the merged steps into a visiting sequence.
type PlanAssembler struct {
	estimator ports.RouteEstimator
}

// NewPlanAssembler creates an assembler. The estimator is consulted for an
// optimal trip ordering and may be unavailable; sequencing then falls back
// to the nearest-neighbor heuristic.
func NewPlanAssembler(estimator ports.RouteEstimator) PlanAssembler {
	return PlanAssembler{estimator: estimator}
}

// MergeSteps combines step lists from several sources (manual plans and
// auto-generated batches) into one list with a single step per depot.
// Duplicate depot steps concatenate their item lists and union their
// order-ID sets. Steps keep the order in which their depot first appeared.
// Steps without a depot identifier are keyed by depot name so that legacy
// manual plans still merge.
func (a PlanAssembler) MergeSteps(groups ...[]order.CollectionStep) []order.CollectionStep {
	merged := make([]order.CollectionStep, 0)
	index := make(map[string]int)

	for _, group := range groups {
		for _, step := range group {
			key := step.DepotID.String()
			if step.DepotID.IsZero() {
				key = "name:" + step.DepotName
			}

			i, ok := index[key]
			if !ok {
				index[key] = len(merged)
				merged = append(merged, order.CollectionStep{
					DepotID:   step.DepotID,
					DepotName: step.DepotName,
					Location:  step.Location,
					Items:     append([]order.StepItem(nil), step.Items...),
					OrderIDs:  append([]kernel.UUID(nil), step.OrderIDs...),
				})
				continue
			}

			merged[i].Items = append(merged[i].Items, step.Items...)
			for _, orderID := range step.OrderIDs {
				if !merged[i].ContainsOrder(orderID) {
					merged[i].OrderIDs = append(merged[i].OrderIDs, orderID)
				}
			}
			if merged[i].Location == nil && step.Location != nil {
				merged[i].Location = step.Location
			}
		}
	}

	return merged
}

// SequenceSteps orders the steps into a visiting sequence from the courier's
// start position and re-indexes them 0..n-1.
//
// With more than one step and a known start, the estimator's trip solver is
// tried first over the start plus every located step; its ordering is used
// only if it covers every step completely. Otherwise, and whenever the
// estimator is unavailable, steps are ordered by nearest-neighbor from the
// start. Steps without coordinates are appended after the located ones in
// their merged order.
func (a PlanAssembler) SequenceSteps(
	ctx context.Context,
	start *kernel.GeoPoint,
	steps []order.CollectionStep,
) []order.CollectionStep {
	if len(steps) <= 1 || start == nil {
		return reindex(steps)
	}

	located := make([]int, 0, len(steps))
	unlocated := make([]int, 0)
	points := make([]kernel.GeoPoint, 0, len(steps))
	for i, step := range steps {
		if step.Location != nil {
			located = append(located, i)
			points = append(points, *step.Location)
		} else {
			unlocated = append(unlocated, i)
		}
	}
	if len(located) <= 1 {
		return reindex(append(pick(steps, located), pick(steps, unlocated)...))
	}

	visit := a.tripOrder(ctx, *start, points)
	if visit == nil {
		visit = kernel.NearestNeighborOrder(*start, points)
	}

	ordered := make([]order.CollectionStep, 0, len(steps))
	for _, p := range visit {
		ordered = append(ordered, steps[located[p]])
	}
	ordered = append(ordered, pick(steps, unlocated)...)

	return reindex(ordered)
}

// tripOrder asks the estimator to solve the visiting order over start plus
// the step coordinates. Returns indices into points, or nil when the
// estimator fails or its answer does not cover every point.
func (a PlanAssembler) tripOrder(ctx context.Context, start kernel.GeoPoint, points []kernel.GeoPoint) []int {
	if a.estimator == nil {
		return nil
	}

	trip := a.estimator.GetTrip(ctx, append([]kernel.GeoPoint{start}, points...))
	if trip == nil || len(trip.WaypointOrder) != len(points)+1 {
		return nil
	}

	// WaypointOrder[i] is the visiting position of input point i; input 0 is
	// the start. Invert into visiting order and drop the start.
	byPosition := make([]int, len(trip.WaypointOrder))
	for i := range byPosition {
		byPosition[i] = -1
	}
	for input, position := range trip.WaypointOrder {
		if position < 0 || position >= len(byPosition) || byPosition[position] != -1 {
			return nil
		}
		byPosition[position] = input
	}

	visit := make([]int, 0, len(points))
	for _, input := range byPosition {
		if input == 0 {
			continue
		}
		visit = append(visit, input-1)
	}
	if len(visit) != len(points) {
		return nil
	}
	return visit
}

// FilterStepsForOrder projects a merged plan down to a single order: only
// steps carrying that order survive, their items are narrowed to the order's
// allocations, and the result is re-indexed. This is the per-order snapshot
// persisted back onto the order.
func (a PlanAssembler) FilterStepsForOrder(steps []order.CollectionStep, orderID kernel.UUID) []order.CollectionStep {
	filtered := make([]order.CollectionStep, 0)
	for _, step := range steps {
		if !step.ContainsOrder(orderID) {
			continue
		}
		items := step.ItemsForOrder(orderID)
		if len(items) == 0 {
			continue
		}
		filtered = append(filtered, order.CollectionStep{
			DepotID:   step.DepotID,
			DepotName: step.DepotName,
			Location:  step.Location,
			Items:     items,
			OrderIDs:  []kernel.UUID{orderID},
		})
	}
	return reindex(filtered)
}

func pick(steps []order.CollectionStep, indices []int) []order.CollectionStep {
	out := make([]order.CollectionStep, 0, len(indices))
	for _, i := range indices {
		out = append(out, steps[i])
	}
	return out
}

func reindex(steps []order.CollectionStep) []order.CollectionStep {
	for i := range steps {
		steps[i].Index = i
	}
	return steps
}
