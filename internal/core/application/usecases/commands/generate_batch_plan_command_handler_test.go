package commands_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"smartdelivery/internal/core/application/usecases/commands"
	"smartdelivery/internal/core/domain/model/depot"
	"smartdelivery/internal/core/domain/model/kernel"
	"smartdelivery/internal/core/domain/model/order"
)

func TestGenerateBatchPlanCommand(t *testing.T) {
	tenantID := kernel.NewUUID()

	t.Run("valid command", func(t *testing.T) {
		ids := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}
		cmd, err := commands.NewGenerateBatchPlanCommand(tenantID, ids, nil)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Len(t, cmd.OrderIDs(), 2)
	})

	t.Run("empty order ids are rejected", func(t *testing.T) {
		_, err := commands.NewGenerateBatchPlanCommand(tenantID, nil, nil)
		require.ErrorIs(t, err, commands.ErrOrderIDsAreRequired)
	})

	t.Run("invalid order id is rejected", func(t *testing.T) {
		_, err := commands.NewGenerateBatchPlanCommand(tenantID, []kernel.UUID{{}}, nil)
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.GenerateBatchPlanCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrGenerateBatchPlanCommandIsNotConstructed)
	})
}

func TestGenerateBatchPlanCommandHandler_Handle(t *testing.T) {
	tenantID := kernel.NewUUID()
	bolts := kernel.NewUUID()

	t.Run("merges manual and generated plans by depot", func(t *testing.T) {
		ctx := t.Context()

		sharedDepot := kernel.NewUUID()
		depotLoc := geoPtr(t, 34.74, 10.76)
		d, err := depot.NewDepot(sharedDepot, tenantID, "Central", depotLoc)
		require.NoError(t, err)

		manualSteps := []order.CollectionStep{{
			DepotID:   sharedDepot,
			DepotName: "Central",
			Location:  depotLoc,
			Items:     []order.StepItem{{ProductName: "manual widgets", Quantity: 1}},
		}}
		manualOrder := planOrder(t, tenantID, order.ManualPlan(manualSteps))
		autoOrder := planOrder(t, tenantID, order.AbsentPlan(), orderItem(t, bolts, 2))

		stock, err := depot.NewStockLevel(bolts, "bolts", sharedDepot, 5)
		require.NoError(t, err)

		cmd, err := commands.NewGenerateBatchPlanCommand(
			tenantID, []kernel.UUID{manualOrder.ID(), autoOrder.ID()}, geoPtr(t, 34.70, 10.70))
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		depotRepo := new(MockDepotRepository)
		uow := new(MockPlanningUoW)
		factory := new(MockPlanningUoWFactory)

		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(orderRepo)
		uow.On("DepotRepository").Return(depotRepo)
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		orderRepo.On("GetByIDsWithItems", ctx, tenantID, cmd.OrderIDs()).
			Return([]*order.Order{manualOrder, autoOrder}, nil).Once()
		depotRepo.On("FindAvailableStock", ctx, tenantID, []kernel.UUID{bolts}).
			Return([]depot.StockLevel{stock}, nil).Once()
		depotRepo.On("GetByIDs", ctx, tenantID, mock.Anything).
			Return([]*depot.Depot{d}, nil).Once()
		orderRepo.On("UpdateCollectionPlan", ctx, autoOrder).Return(nil).Once()

		h := commands.NewGenerateBatchPlanCommandHandler(factory, nil, nil)
		result, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, 2, result.TotalOrders)
		assert.Equal(t, 1, result.ManualCount)
		assert.Equal(t, 1, result.AutoCount)
		require.Len(t, result.MergedSteps, 1, "same depot merges into one step")
		assert.Equal(t, 1, result.TotalDepots)

		merged := result.MergedSteps[0]
		assert.Len(t, merged.Items, 2, "items concatenate")
		assert.Len(t, merged.OrderIDs, 2, "order ids union")
		assert.Equal(t, 0, merged.Index, "batch steps are indexed from 0")

		// only the generated order was persisted; the manual plan is untouched
		orderRepo.AssertNumberOfCalls(t, "UpdateCollectionPlan", 1)
		assert.True(t, manualOrder.Plan().IsManual())
		require.Equal(t, order.PlanAuto, autoOrder.Plan().Kind())

		// the cached snapshot holds only the auto order's allocations
		snapshot := autoOrder.Plan().Steps()
		require.Len(t, snapshot, 1)
		require.Len(t, snapshot[0].Items, 1)
		assert.Equal(t, "bolts", snapshot[0].Items[0].ProductName)

		orderRepo.AssertExpectations(t)
		depotRepo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("all-manual batch skips stock lookups entirely", func(t *testing.T) {
		ctx := t.Context()

		manualOrder := planOrder(t, tenantID, order.ManualPlan([]order.CollectionStep{
			{DepotName: "Hand Picked", Items: []order.StepItem{{Quantity: 1}}},
		}))

		cmd, err := commands.NewGenerateBatchPlanCommand(tenantID, []kernel.UUID{manualOrder.ID()}, nil)
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		depotRepo := new(MockDepotRepository)
		uow := new(MockPlanningUoW)
		factory := new(MockPlanningUoWFactory)

		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(orderRepo)
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		orderRepo.On("GetByIDsWithItems", ctx, tenantID, cmd.OrderIDs()).
			Return([]*order.Order{manualOrder}, nil).Once()

		h := commands.NewGenerateBatchPlanCommandHandler(factory, nil, nil)
		result, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, 1, result.ManualCount)
		assert.Equal(t, 0, result.AutoCount)
		depotRepo.AssertNotCalled(t, "FindAvailableStock", mock.Anything, mock.Anything, mock.Anything)
		orderRepo.AssertNotCalled(t, "UpdateCollectionPlan", mock.Anything, mock.Anything)
	})

	t.Run("repository failure propagates", func(t *testing.T) {
		ctx := t.Context()

		cmd, err := commands.NewGenerateBatchPlanCommand(tenantID, []kernel.UUID{kernel.NewUUID()}, nil)
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		uow := new(MockPlanningUoW)
		factory := new(MockPlanningUoWFactory)

		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(orderRepo)
		uow.On("Rollback", ctx).Return(nil).Once()
		orderRepo.On("GetByIDsWithItems", ctx, tenantID, cmd.OrderIDs()).
			Return(nil, errors.New("connection refused")).Once()

		h := commands.NewGenerateBatchPlanCommandHandler(factory, nil, nil)
		_, err = h.Handle(ctx, cmd)
		require.Error(t, err)
	})

	t.Run("begin failure propagates", func(t *testing.T) {
		ctx := t.Context()

		cmd, err := commands.NewGenerateBatchPlanCommand(tenantID, []kernel.UUID{kernel.NewUUID()}, nil)
		require.NoError(t, err)

		uow := new(MockPlanningUoW)
		factory := new(MockPlanningUoWFactory)
		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once()

		h := commands.NewGenerateBatchPlanCommandHandler(factory, nil, nil)
		_, err = h.Handle(ctx, cmd)
		require.Error(t, err)
	})
}
