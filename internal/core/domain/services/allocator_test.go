package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartdelivery/internal/core/domain/model/depot"
	"smartdelivery/internal/core/domain/model/kernel"
	"smartdelivery/internal/core/domain/services"
)

func TestAllocateSteps(t *testing.T) {
	bolts := kernel.NewUUID()
	nuts := kernel.NewUUID()
	orderA := kernel.NewUUID()
	orderB := kernel.NewUUID()
	depot1 := kernel.NewUUID()
	depot2 := kernel.NewUUID()

	loc1 := geo(t, 34.74, 10.76)
	depots := map[kernel.UUID]services.DepotInfo{
		depot1: {Name: "Central", Location: &loc1},
		depot2: {Name: "North"},
	}

	t.Run("splits a demand entry across depots by remaining stock descending", func(t *testing.T) {
		demand := []services.DemandEntry{
			{OrderID: orderA, ProductID: bolts, ProductName: "bolts", Quantity: 8},
		}
		stock := []depot.StockLevel{
			stockEntry(t, bolts, depot1, 3),
			stockEntry(t, bolts, depot2, 6),
		}

		steps := services.AllocateSteps(demand, []kernel.UUID{depot1, depot2}, stock, depots)

		require.Len(t, steps, 2)
		// depot2 holds more, so it is drained first
		assert.True(t, steps[0].DepotID.IsEqual(depot2))
		assert.Equal(t, 6, steps[0].Items[0].Quantity)
		assert.True(t, steps[1].DepotID.IsEqual(depot1))
		assert.Equal(t, 2, steps[1].Items[0].Quantity)
		assert.Equal(t, "Central", steps[1].DepotName)
		require.NotNil(t, steps[1].Location)
	})

	t.Run("remaining counters are shared across demand entries", func(t *testing.T) {
		demand := []services.DemandEntry{
			{OrderID: orderA, ProductID: bolts, ProductName: "bolts", Quantity: 4},
			{OrderID: orderB, ProductID: bolts, ProductName: "bolts", Quantity: 4},
		}
		stock := []depot.StockLevel{
			stockEntry(t, bolts, depot1, 5),
			stockEntry(t, bolts, depot2, 3),
		}

		steps := services.AllocateSteps(demand, []kernel.UUID{depot1, depot2}, stock, depots)

		// total taken per depot never exceeds its stock
		taken := map[string]int{}
		for _, step := range steps {
			for _, item := range step.Items {
				taken[step.DepotID.String()] += item.Quantity
			}
		}
		assert.Equal(t, 5, taken[depot1.String()])
		assert.Equal(t, 3, taken[depot2.String()])

		// both orders appear on the depot that served both
		for _, step := range steps {
			if step.DepotID.IsEqual(depot1) {
				assert.Len(t, step.OrderIDs, 2)
			}
		}
	})

	t.Run("partial allocation when stock runs out", func(t *testing.T) {
		demand := []services.DemandEntry{
			{OrderID: orderA, ProductID: nuts, ProductName: "nuts", Quantity: 10},
		}
		stock := []depot.StockLevel{stockEntry(t, nuts, depot1, 4)}

		steps := services.AllocateSteps(demand, []kernel.UUID{depot1}, stock, depots)

		require.Len(t, steps, 1)
		assert.Equal(t, 4, steps[0].Items[0].Quantity)
	})

	t.Run("depots outside the chosen set are never touched", func(t *testing.T) {
		demand := []services.DemandEntry{
			{OrderID: orderA, ProductID: bolts, ProductName: "bolts", Quantity: 2},
		}
		stock := []depot.StockLevel{
			stockEntry(t, bolts, depot1, 5),
			stockEntry(t, bolts, depot2, 5),
		}

		steps := services.AllocateSteps(demand, []kernel.UUID{depot1}, stock, depots)

		require.Len(t, steps, 1)
		assert.True(t, steps[0].DepotID.IsEqual(depot1))
	})

	t.Run("no demand yields no steps", func(t *testing.T) {
		steps := services.AllocateSteps(nil, []kernel.UUID{depot1}, nil, depots)
		assert.Empty(t, steps)
	})

	t.Run("each item carries its order id", func(t *testing.T) {
		demand := []services.DemandEntry{
			{OrderID: orderA, ProductID: bolts, ProductName: "bolts", Quantity: 1},
			{OrderID: orderB, ProductID: nuts, ProductName: "nuts", Quantity: 1},
		}
		stock := []depot.StockLevel{
			stockEntry(t, bolts, depot1, 1),
			stockEntry(t, nuts, depot1, 1),
		}

		steps := services.AllocateSteps(demand, []kernel.UUID{depot1}, stock, depots)

		require.Len(t, steps, 1)
		require.Len(t, steps[0].Items, 2)
		assert.True(t, steps[0].Items[0].OrderID.IsEqual(orderA))
		assert.True(t, steps[0].Items[1].OrderID.IsEqual(orderB))
	})
}
