package services

import (
	"sort"

	"smartdelivery/internal/core/domain/model/depot"
	"smartdelivery/internal/core/domain/model/kernel"
	"smartdelivery/internal/core/domain/model/order"
)

// DepotInfo carries the display data stamped onto collection steps.
type DepotInfo struct {
	Name     string
	Location *kernel.GeoPoint
}

// AllocateSteps distributes demand across the chosen depots and builds one
// collection step per depot that received an allocation.
//
// For each demand entry, in aggregation order, the entry's quantity is split
// greedily across the chosen depots sorted by remaining stock for that
// product descending; each depot contributes min(needed, remaining). A
// per-(depot, product) remaining counter is shared across all entries in the
// batch so no depot is over-allocated. An entry whose demand cannot be met in
// full is allocated partially; the shortfall carries no explicit marker.
//
// Steps appear in the order depots first received an allocation and are not
// yet sequenced or indexed; that is the plan assembler's job.
func AllocateSteps(
	demand []DemandEntry,
	chosen []kernel.UUID,
	stock []depot.StockLevel,
	depots map[kernel.UUID]DepotInfo,
) []order.CollectionStep {
	remaining := remainingStock(chosen, stock)

	steps := make([]order.CollectionStep, 0, len(chosen))
	stepIdx := make(map[kernel.UUID]int)

	for _, entry := range demand {
		needed := entry.Quantity

		// depots with remaining stock for this product, best-supplied first;
		// equal depots keep the chosen order
		ranked := make([]kernel.UUID, 0, len(chosen))
		for _, depotID := range chosen {
			if remaining[depotID][entry.ProductID] > 0 {
				ranked = append(ranked, depotID)
			}
		}
		sort.SliceStable(ranked, func(i, j int) bool {
			return remaining[ranked[i]][entry.ProductID] > remaining[ranked[j]][entry.ProductID]
		})

		for _, depotID := range ranked {
			if needed <= 0 {
				break
			}
			take := min(needed, remaining[depotID][entry.ProductID])
			if take <= 0 {
				continue
			}
			remaining[depotID][entry.ProductID] -= take
			needed -= take

			idx, ok := stepIdx[depotID]
			if !ok {
				idx = len(steps)
				stepIdx[depotID] = idx
				info := depots[depotID]
				steps = append(steps, order.CollectionStep{
					DepotID:   depotID,
					DepotName: info.Name,
					Location:  info.Location,
				})
			}

			steps[idx].Items = append(steps[idx].Items, order.StepItem{
				ProductID:   entry.ProductID,
				ProductName: entry.ProductName,
				Quantity:    take,
				OrderID:     entry.OrderID,
			})
			if !steps[idx].ContainsOrder(entry.OrderID) {
				steps[idx].OrderIDs = append(steps[idx].OrderIDs, entry.OrderID)
			}
		}
	}

	return steps
}

// remainingStock seeds the shared allocation counters from the chosen
// depots' stock entries.
func remainingStock(chosen []kernel.UUID, stock []depot.StockLevel) map[kernel.UUID]map[kernel.UUID]int {
	isChosen := make(map[kernel.UUID]bool, len(chosen))
	for _, id := range chosen {
		isChosen[id] = true
	}

	remaining := make(map[kernel.UUID]map[kernel.UUID]int, len(chosen))
	for _, id := range chosen {
		remaining[id] = make(map[kernel.UUID]int)
	}
	for _, entry := range stock {
		if !isChosen[entry.DepotID()] {
			continue
		}
		remaining[entry.DepotID()][entry.ProductID()] += entry.Quantity()
	}
	return remaining
}
