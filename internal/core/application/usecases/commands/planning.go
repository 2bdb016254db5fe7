package commands

import (
	"context"

	"smartdelivery/internal/core/domain/model/depot"
	"smartdelivery/internal/core/domain/model/kernel"
	"smartdelivery/internal/core/domain/model/order"
	"smartdelivery/internal/core/domain/services"
)

// planningInputs bundles everything the cover solver and allocator need for
// one optimization run.
type planningInputs struct {
	entries   []services.DemandEntry
	totals    map[kernel.UUID]int
	stock     []depot.StockLevel
	depots    map[kernel.UUID]services.DepotInfo
	locations map[kernel.UUID]kernel.GeoPoint
}

// loadPlanningInputs resolves demand, candidate stock, and depot display
// data for the given orders. Product names are resolved from the stock
// entries themselves; a demanded product nobody stocks is unresolvable and
// contributes no demand.
func loadPlanningInputs(
	ctx context.Context,
	uow PlanningUoW,
	tenantID kernel.UUID,
	orders []*order.Order,
) (planningInputs, error) {
	inputs := planningInputs{
		totals:    map[kernel.UUID]int{},
		depots:    map[kernel.UUID]services.DepotInfo{},
		locations: map[kernel.UUID]kernel.GeoPoint{},
	}

	productIDs := make([]kernel.UUID, 0)
	seenProduct := make(map[kernel.UUID]bool)
	for _, o := range orders {
		for _, item := range o.Items() {
			if !seenProduct[item.ProductID()] {
				seenProduct[item.ProductID()] = true
				productIDs = append(productIDs, item.ProductID())
			}
		}
	}
	if len(productIDs) == 0 {
		return inputs, nil
	}

	stock, err := uow.DepotRepository().FindAvailableStock(ctx, tenantID, productIDs)
	if err != nil {
		return planningInputs{}, err
	}
	inputs.stock = stock

	names := make(map[kernel.UUID]string, len(stock))
	depotIDs := make([]kernel.UUID, 0)
	seenDepot := make(map[kernel.UUID]bool)
	for _, entry := range stock {
		if _, ok := names[entry.ProductID()]; !ok {
			names[entry.ProductID()] = entry.ProductName()
		}
		if !seenDepot[entry.DepotID()] {
			seenDepot[entry.DepotID()] = true
			depotIDs = append(depotIDs, entry.DepotID())
		}
	}

	inputs.entries, inputs.totals = services.AggregateDemand(orders, names)

	if len(depotIDs) > 0 {
		depots, err := uow.DepotRepository().GetByIDs(ctx, tenantID, depotIDs)
		if err != nil {
			return planningInputs{}, err
		}
		for _, d := range depots {
			inputs.depots[d.ID()] = services.DepotInfo{Name: d.Name(), Location: d.Location()}
			if d.Location() != nil {
				inputs.locations[d.ID()] = *d.Location()
			}
		}
	}

	return inputs, nil
}
