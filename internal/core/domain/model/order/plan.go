package order

import (
	"smartdelivery/internal/core/domain/model/kernel"
)

// PlanKind distinguishes how an order's collection plan came to exist.
type PlanKind int

const (
	// PlanAbsent means the order has no collection plan yet.
	PlanAbsent PlanKind = iota

	// PlanManual means the plan was authored by a human and is authoritative.
	// The optimizer must never regenerate or rewrite it.
	PlanManual

	// PlanAuto means the plan was generated by the optimizer and may be
	// replaced wholesale on the next optimization run.
	PlanAuto
)

// String returns a human-readable name for the plan kind.
func (k PlanKind) String() string {
	switch k {
	case PlanManual:
		return "manual"
	case PlanAuto:
		return "auto"
	default:
		return "absent"
	}
}

// StepItem is a single product allocation within a collection step. OrderID
// identifies the order the allocation belongs to; it may be the zero UUID in
// manual plans authored before per-item tagging, in which case the merger
// fills it in from the owning order.
type StepItem struct {
	ProductID   kernel.UUID
	ProductName string
	Quantity    int
	OrderID     kernel.UUID
}

// CollectionStep is one depot visit within a collection plan. It carries the
// depot identity, the items to pick up there, and the set of orders the items
// belong to. Index is the position in the final visiting sequence.
//
// Location is nil when the depot's coordinates are unknown; such steps are
// excluded from distance-based decisions but still appear in the plan.
type CollectionStep struct {
	DepotID   kernel.UUID
	DepotName string
	Location  *kernel.GeoPoint
	Items     []StepItem
	OrderIDs  []kernel.UUID
	Index     int
}

// ContainsOrder reports whether the step already lists the given order.
func (s CollectionStep) ContainsOrder(orderID kernel.UUID) bool {
	for _, id := range s.OrderIDs {
		if id.IsEqual(orderID) {
			return true
		}
	}
	return false
}

// TagOrder attributes the step to the given order wherever attribution is
// missing: the order is added to OrderIDs if absent, and every item with a
// zero OrderID is stamped with it. Items already attributed to another order
// are left untouched.
func (s *CollectionStep) TagOrder(orderID kernel.UUID) {
	if !s.ContainsOrder(orderID) {
		s.OrderIDs = append(s.OrderIDs, orderID)
	}
	for i := range s.Items {
		if s.Items[i].OrderID.IsZero() {
			s.Items[i].OrderID = orderID
		}
	}
}

// ItemsForOrder returns the subset of items attributed to the given order.
func (s CollectionStep) ItemsForOrder(orderID kernel.UUID) []StepItem {
	var items []StepItem
	for _, item := range s.Items {
		if item.OrderID.IsEqual(orderID) {
			items = append(items, item)
		}
	}
	return items
}

// Plan is the collection plan attached to an order. It is a tagged variant:
// absent, manual, or auto. The zero value is the absent plan.
type Plan struct {
	kind  PlanKind
	steps []CollectionStep
}

// AbsentPlan returns the plan of an order that has no collection plan.
func AbsentPlan() Plan {
	return Plan{kind: PlanAbsent}
}

// ManualPlan wraps human-authored steps. Manual plans are read-only to the
// optimizer.
func ManualPlan(steps []CollectionStep) Plan {
	return Plan{kind: PlanManual, steps: steps}
}

// AutoPlan wraps optimizer-generated steps.
func AutoPlan(steps []CollectionStep) Plan {
	return Plan{kind: PlanAuto, steps: steps}
}

// Kind returns whether the plan is absent, manual, or auto.
func (p Plan) Kind() PlanKind {
	return p.kind
}

// IsManual reports whether the plan was authored by a human.
func (p Plan) IsManual() bool {
	return p.kind == PlanManual
}

// IsAbsent reports whether the order has no plan.
func (p Plan) IsAbsent() bool {
	return p.kind == PlanAbsent
}

// Steps returns the plan's collection steps in visiting order.
// Absent plans have no steps.
func (p Plan) Steps() []CollectionStep {
	return p.steps
}
