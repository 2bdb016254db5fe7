package commands

import (
	"context"
	"log/slog"

	"smartdelivery/internal/core/domain/model/kernel"
	"smartdelivery/internal/core/domain/model/order"
	"smartdelivery/internal/core/domain/services"
	"smartdelivery/internal/core/ports"
)

// GenerateCollectionPlanResult is the outcome of planning a single order.
// Steps are indexed from 1 in visiting order. ManualPlan marks that the
// order carried a human-authored plan which was returned as-is.
type GenerateCollectionPlanResult struct {
	OrderID     kernel.UUID
	TotalDepots int
	Steps       []order.CollectionStep
	ManualPlan  bool
}

// GenerateCollectionPlanCommandHandler produces a collection plan for one
// order: demand aggregation, depot cover solving, item allocation, and
// sequencing. An order with a manual plan short-circuits: its steps are
// returned unchanged and nothing is regenerated or persisted.
//
// The generated plan is persisted back onto the order as a best-effort
// cache; a persistence failure is logged and the result is still returned.
type GenerateCollectionPlanCommandHandler struct {
	uowFactory PlanningUoWFactory
	solver     services.DepotCoverSolver
	assembler  services.PlanAssembler
	log        *slog.Logger
}

// NewGenerateCollectionPlanCommandHandler creates the handler. The estimator
// may be nil or unavailable; planning then runs on the haversine path.
func NewGenerateCollectionPlanCommandHandler(
	uowFactory PlanningUoWFactory,
	estimator ports.RouteEstimator,
	log *slog.Logger,
) GenerateCollectionPlanCommandHandler {
	if log == nil {
		log = slog.Default()
	}
	return GenerateCollectionPlanCommandHandler{
		uowFactory: uowFactory,
		solver:     services.NewDepotCoverSolver(estimator),
		assembler:  services.NewPlanAssembler(estimator),
		log:        log,
	}
}

// Handle plans the order's collection steps.
func (h *GenerateCollectionPlanCommandHandler) Handle(
	ctx context.Context,
	cmd GenerateCollectionPlanCommand,
) (GenerateCollectionPlanResult, error) {
	if err := cmd.Validate(); err != nil {
		return GenerateCollectionPlanResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return GenerateCollectionPlanResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetWithItems(ctx, cmd.TenantID(), cmd.OrderID())
	if err != nil {
		return GenerateCollectionPlanResult{}, err
	}

	if o.Plan().IsManual() {
		steps := make([]order.CollectionStep, len(o.Plan().Steps()))
		copy(steps, o.Plan().Steps())
		for i := range steps {
			steps[i].TagOrder(o.ID())
		}
		return GenerateCollectionPlanResult{
			OrderID:     o.ID(),
			TotalDepots: len(steps),
			Steps:       indexFromOne(steps),
			ManualPlan:  true,
		}, nil
	}

	inputs, err := loadPlanningInputs(ctx, uow, cmd.TenantID(), []*order.Order{o})
	if err != nil {
		return GenerateCollectionPlanResult{}, err
	}

	chosen := h.solver.Solve(ctx, inputs.totals, inputs.stock, inputs.locations, cmd.Start())
	steps := services.AllocateSteps(inputs.entries, chosen, inputs.stock, inputs.depots)
	steps = h.assembler.SequenceSteps(ctx, cmd.Start(), steps)

	h.persistPlan(ctx, uow, o, steps)

	if err := uow.Commit(ctx); err != nil {
		return GenerateCollectionPlanResult{}, err
	}

	return GenerateCollectionPlanResult{
		OrderID:     o.ID(),
		TotalDepots: len(steps),
		Steps:       indexFromOne(steps),
	}, nil
}

// persistPlan caches the generated steps on the order. Best effort: failure
// must not fail the optimization response.
func (h *GenerateCollectionPlanCommandHandler) persistPlan(
	ctx context.Context,
	uow PlanningUoW,
	o *order.Order,
	steps []order.CollectionStep,
) {
	if err := o.AttachAutoPlan(steps); err != nil {
		h.log.Warn("skipping collection plan cache", "orderId", o.ID(), "error", err)
		return
	}
	if err := uow.OrderRepository().UpdateCollectionPlan(ctx, o); err != nil {
		h.log.Warn("failed to cache collection plan", "orderId", o.ID(), "error", err)
	}
}

// indexFromOne renumbers steps 1..n for single-order responses.
func indexFromOne(steps []order.CollectionStep) []order.CollectionStep {
	for i := range steps {
		steps[i].Index = i + 1
	}
	return steps
}
