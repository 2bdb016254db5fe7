package services

import (
	"smartdelivery/internal/core/domain/model/kernel"
	"smartdelivery/internal/core/domain/model/order"
)

// DemandEntry is one order's requirement for one product, derived fresh per
// optimization run. Quantities are always positive.
type DemandEntry struct {
	OrderID     kernel.UUID
	ProductID   kernel.UUID
	ProductName string
	Quantity    int
}

// AggregateDemand flattens the orders' product lines into per-order demand
// entries and a per-product total. Product display names are resolved through
// productNames; items referencing a product absent from the map are skipped
// silently and contribute no demand. Empty input yields empty outputs.
//
// Entries preserve the input order of orders and of items within each order,
// which downstream allocation relies on for deterministic results.
func AggregateDemand(orders []*order.Order, productNames map[kernel.UUID]string) ([]DemandEntry, map[kernel.UUID]int) {
	entries := make([]DemandEntry, 0)
	totals := make(map[kernel.UUID]int)

	for _, o := range orders {
		if o == nil {
			continue
		}
		for _, item := range o.Items() {
			name, ok := productNames[item.ProductID()]
			if !ok {
				continue
			}
			entries = append(entries, DemandEntry{
				OrderID:     o.ID(),
				ProductID:   item.ProductID(),
				ProductName: name,
				Quantity:    item.Quantity(),
			})
			totals[item.ProductID()] += item.Quantity()
		}
	}

	return entries, totals
}
