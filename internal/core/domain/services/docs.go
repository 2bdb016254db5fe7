// Package services provides the domain services behind collection plan
// optimization and courier recommendation. It implements the business
// workflows that span multiple aggregates and don't naturally belong to a
// single aggregate root.
//
// The package includes:
//   - AggregateDemand: flattens order items into per-order demand entries
//     and per-product totals
//   - DepotCoverSolver: exact minimum-cardinality depot set cover with a
//     greedy fallback
//   - AllocateSteps: splits demand across chosen depots into collection steps
//   - PlanAssembler: merges manual and auto steps and sequences the visits
//   - CourierRecommender: ranks couriers by estimated fulfillment effort
package services
