package commands

import (
	"context"
	"log/slog"

	"smartdelivery/internal/core/domain/model/order"
	"smartdelivery/internal/core/domain/services"
	"smartdelivery/internal/core/ports"
)

// GenerateBatchPlanResult is the outcome of planning an order batch.
// MergedSteps are indexed 0..n-1 in visiting order.
type GenerateBatchPlanResult struct {
	TotalDepots int
	TotalOrders int
	MergedSteps []order.CollectionStep
	ManualCount int
	AutoCount   int
}

// GenerateBatchPlanCommandHandler produces one merged collection plan for a
// batch of orders.
//
// Orders carrying a manual plan contribute their steps verbatim, tagged with
// the order's id where attribution is missing. Plans are generated for the
// remaining orders as a single joint optimization: their combined demand is
// covered together so depot visits are shared. Manual and generated steps
// merge by depot and the merged list is sequenced from the start position.
//
// Each generated order receives a filtered per-order snapshot of the merged
// plan, persisted best-effort; manual plans are never rewritten.
type GenerateBatchPlanCommandHandler struct {
	uowFactory PlanningUoWFactory
	solver     services.DepotCoverSolver
	assembler  services.PlanAssembler
	log        *slog.Logger
}

// NewGenerateBatchPlanCommandHandler creates the handler.
func NewGenerateBatchPlanCommandHandler(
	uowFactory PlanningUoWFactory,
	estimator ports.RouteEstimator,
	log *slog.Logger,
) GenerateBatchPlanCommandHandler {
	if log == nil {
		log = slog.Default()
	}
	return GenerateBatchPlanCommandHandler{
		uowFactory: uowFactory,
		solver:     services.NewDepotCoverSolver(estimator),
		assembler:  services.NewPlanAssembler(estimator),
		log:        log,
	}
}

// Handle plans the batch and returns the merged, sequenced step list.
func (h *GenerateBatchPlanCommandHandler) Handle(
	ctx context.Context,
	cmd GenerateBatchPlanCommand,
) (GenerateBatchPlanResult, error) {
	if err := cmd.Validate(); err != nil {
		return GenerateBatchPlanResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return GenerateBatchPlanResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, err := uow.OrderRepository().GetByIDsWithItems(ctx, cmd.TenantID(), cmd.OrderIDs())
	if err != nil {
		return GenerateBatchPlanResult{}, err
	}

	manualGroups := make([][]order.CollectionStep, 0)
	autoOrders := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if !o.Plan().IsManual() {
			autoOrders = append(autoOrders, o)
			continue
		}
		steps := make([]order.CollectionStep, len(o.Plan().Steps()))
		copy(steps, o.Plan().Steps())
		for i := range steps {
			steps[i].TagOrder(o.ID())
		}
		manualGroups = append(manualGroups, steps)
	}

	var autoSteps []order.CollectionStep
	if len(autoOrders) > 0 {
		inputs, err := loadPlanningInputs(ctx, uow, cmd.TenantID(), autoOrders)
		if err != nil {
			return GenerateBatchPlanResult{}, err
		}

		chosen := h.solver.Solve(ctx, inputs.totals, inputs.stock, inputs.locations, cmd.Start())
		autoSteps = services.AllocateSteps(inputs.entries, chosen, inputs.stock, inputs.depots)
	}

	merged := h.assembler.MergeSteps(append(manualGroups, autoSteps)...)
	merged = h.assembler.SequenceSteps(ctx, cmd.Start(), merged)

	for _, o := range autoOrders {
		snapshot := h.assembler.FilterStepsForOrder(merged, o.ID())
		h.persistSnapshot(ctx, uow, o, snapshot)
	}

	if err := uow.Commit(ctx); err != nil {
		return GenerateBatchPlanResult{}, err
	}

	return GenerateBatchPlanResult{
		TotalDepots: len(merged),
		TotalOrders: len(orders),
		MergedSteps: merged,
		ManualCount: len(manualGroups),
		AutoCount:   len(autoOrders),
	}, nil
}

func (h *GenerateBatchPlanCommandHandler) persistSnapshot(
	ctx context.Context,
	uow PlanningUoW,
	o *order.Order,
	snapshot []order.CollectionStep,
) {
	if err := o.AttachAutoPlan(snapshot); err != nil {
		h.log.Warn("skipping collection plan cache", "orderId", o.ID(), "error", err)
		return
	}
	if err := uow.OrderRepository().UpdateCollectionPlan(ctx, o); err != nil {
		h.log.Warn("failed to cache collection plan", "orderId", o.ID(), "error", err)
	}
}
