package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartdelivery/internal/core/domain/model/kernel"
	"smartdelivery/internal/core/domain/model/order"
	"smartdelivery/internal/core/domain/services"
	"smartdelivery/internal/core/ports"
)

func TestPlanAssemblerMergeSteps(t *testing.T) {
	assembler := services.NewPlanAssembler(nil)

	depotID := kernel.NewUUID()
	orderA := kernel.NewUUID()
	orderB := kernel.NewUUID()

	t.Run("duplicate depot steps merge into one", func(t *testing.T) {
		a := []order.CollectionStep{{
			DepotID:   depotID,
			DepotName: "Central",
			Items:     []order.StepItem{{ProductName: "bolts", Quantity: 2, OrderID: orderA}},
			OrderIDs:  []kernel.UUID{orderA},
		}}
		b := []order.CollectionStep{{
			DepotID:   depotID,
			DepotName: "Central",
			Items:     []order.StepItem{{ProductName: "nuts", Quantity: 1, OrderID: orderB}},
			OrderIDs:  []kernel.UUID{orderB},
		}}

		merged := assembler.MergeSteps(a, b)

		require.Len(t, merged, 1)
		assert.Len(t, merged[0].Items, 2, "item lists concatenate")
		assert.Len(t, merged[0].OrderIDs, 2, "order ids union")
	})

	t.Run("shared order ids are not duplicated", func(t *testing.T) {
		a := []order.CollectionStep{{DepotID: depotID, OrderIDs: []kernel.UUID{orderA}}}
		b := []order.CollectionStep{{DepotID: depotID, OrderIDs: []kernel.UUID{orderA}}}

		merged := assembler.MergeSteps(a, b)

		require.Len(t, merged, 1)
		assert.Len(t, merged[0].OrderIDs, 1)
	})

	t.Run("distinct depots stay separate in first-seen order", func(t *testing.T) {
		other := kernel.NewUUID()
		merged := assembler.MergeSteps(
			[]order.CollectionStep{{DepotID: depotID, DepotName: "Central"}},
			[]order.CollectionStep{{DepotID: other, DepotName: "North"}},
		)

		require.Len(t, merged, 2)
		assert.Equal(t, "Central", merged[0].DepotName)
		assert.Equal(t, "North", merged[1].DepotName)
	})

	t.Run("legacy steps without depot id merge by name", func(t *testing.T) {
		merged := assembler.MergeSteps(
			[]order.CollectionStep{{DepotName: "Old Depot", Items: []order.StepItem{{Quantity: 1}}}},
			[]order.CollectionStep{{DepotName: "Old Depot", Items: []order.StepItem{{Quantity: 2}}}},
		)

		require.Len(t, merged, 1)
		assert.Len(t, merged[0].Items, 2)
	})

	t.Run("location fills in from the first step that has one", func(t *testing.T) {
		loc := geo(t, 34.74, 10.76)
		merged := assembler.MergeSteps(
			[]order.CollectionStep{{DepotID: depotID}},
			[]order.CollectionStep{{DepotID: depotID, Location: &loc}},
		)

		require.Len(t, merged, 1)
		require.NotNil(t, merged[0].Location)
	})
}

func TestPlanAssemblerSequenceSteps(t *testing.T) {
	ctx := context.Background()
	start := geo(t, 0, 0)

	locNear := geo(t, 0, 1)
	locMid := geo(t, 0, 2)
	locFar := geo(t, 0, 3)

	steps := func() []order.CollectionStep {
		return []order.CollectionStep{
			{DepotName: "far", Location: &locFar},
			{DepotName: "near", Location: &locNear},
			{DepotName: "mid", Location: &locMid},
		}
	}

	t.Run("nearest neighbor when the trip solver is unavailable", func(t *testing.T) {
		assembler := services.NewPlanAssembler(&stubEstimator{})

		ordered := assembler.SequenceSteps(ctx, &start, steps())

		require.Len(t, ordered, 3)
		assert.Equal(t, []string{"near", "mid", "far"},
			[]string{ordered[0].DepotName, ordered[1].DepotName, ordered[2].DepotName})
		assert.Equal(t, []int{0, 1, 2},
			[]int{ordered[0].Index, ordered[1].Index, ordered[2].Index})
	})

	t.Run("complete trip ordering wins over nearest neighbor", func(t *testing.T) {
		// inputs: start, far, near, mid; solver says visit far first
		est := &stubEstimator{trip: &ports.TripResult{WaypointOrder: []int{0, 1, 3, 2}}}
		assembler := services.NewPlanAssembler(est)

		ordered := assembler.SequenceSteps(ctx, &start, steps())

		require.Len(t, ordered, 3)
		assert.Equal(t, "far", ordered[0].DepotName)
		assert.Equal(t, "mid", ordered[1].DepotName)
		assert.Equal(t, "near", ordered[2].DepotName)
	})

	t.Run("incomplete trip answer falls back to nearest neighbor", func(t *testing.T) {
		est := &stubEstimator{trip: &ports.TripResult{WaypointOrder: []int{0, 1}}}
		assembler := services.NewPlanAssembler(est)

		ordered := assembler.SequenceSteps(ctx, &start, steps())

		assert.Equal(t, "near", ordered[0].DepotName)
	})

	t.Run("single step and nil start short-circuit", func(t *testing.T) {
		assembler := services.NewPlanAssembler(nil)

		one := assembler.SequenceSteps(ctx, &start, steps()[:1])
		require.Len(t, one, 1)
		assert.Equal(t, 0, one[0].Index)

		noStart := assembler.SequenceSteps(ctx, nil, steps())
		require.Len(t, noStart, 3)
		assert.Equal(t, "far", noStart[0].DepotName, "order preserved without a start")
		assert.Equal(t, 2, noStart[2].Index)
	})

	t.Run("steps without coordinates go to the end", func(t *testing.T) {
		assembler := services.NewPlanAssembler(nil)
		withUnknown := append(steps(), order.CollectionStep{DepotName: "mystery"})

		ordered := assembler.SequenceSteps(ctx, &start, withUnknown)

		require.Len(t, ordered, 4)
		assert.Equal(t, "mystery", ordered[3].DepotName)
		assert.Equal(t, 3, ordered[3].Index)
	})
}

func TestPlanAssemblerFilterStepsForOrder(t *testing.T) {
	assembler := services.NewPlanAssembler(nil)

	orderA := kernel.NewUUID()
	orderB := kernel.NewUUID()
	depot1 := kernel.NewUUID()
	depot2 := kernel.NewUUID()

	steps := []order.CollectionStep{
		{
			DepotID:  depot1,
			Items:    []order.StepItem{{ProductName: "bolts", Quantity: 2, OrderID: orderA}, {ProductName: "nuts", Quantity: 1, OrderID: orderB}},
			OrderIDs: []kernel.UUID{orderA, orderB},
			Index:    0,
		},
		{
			DepotID:  depot2,
			Items:    []order.StepItem{{ProductName: "screws", Quantity: 3, OrderID: orderB}},
			OrderIDs: []kernel.UUID{orderB},
			Index:    1,
		},
	}

	filtered := assembler.FilterStepsForOrder(steps, orderA)

	require.Len(t, filtered, 1)
	assert.True(t, filtered[0].DepotID.IsEqual(depot1))
	require.Len(t, filtered[0].Items, 1)
	assert.Equal(t, "bolts", filtered[0].Items[0].ProductName)
	require.Len(t, filtered[0].OrderIDs, 1)
	assert.True(t, filtered[0].OrderIDs[0].IsEqual(orderA))
	assert.Equal(t, 0, filtered[0].Index)

	// the source steps are untouched
	assert.Len(t, steps[0].Items, 2)
}
