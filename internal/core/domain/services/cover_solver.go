package services

import (
	"context"
	"math"

	"smartdelivery/internal/core/domain/model/depot"
	"smartdelivery/internal/core/domain/model/kernel"
	"smartdelivery/internal/core/ports"
)

// maxCoverCardinality caps the exact set-cover search. Beyond this many
// depots per plan the exact search is abandoned in favor of the greedy
// heuristic.
const maxCoverCardinality = 6

// DepotCoverSolver selects the smallest set of depots whose combined stock
// satisfies total demand.
//
// Selection algorithm:
//   - Enumerate depot combinations of size k = 1..min(n, 6) in lexicographic
//     order; stop at the first k where any combination covers demand.
//   - Among covering combinations of that minimal size, pick the one with the
//     lowest estimated route cost from the courier's start position.
//     Minimizing depot count is the primary objective; cost only breaks ties
//     among equally-sized covers.
//   - If no combination within the cardinality cap covers demand, fall back
//     to a greedy heuristic that may leave residual unmet demand.
type DepotCoverSolver struct {
	estimator ports.RouteEstimator
}

// NewDepotCoverSolver creates a solver using the given route estimator for
// cost tie-breaking. The estimator may be unavailable at call time; the
// solver then prices routes by haversine distance instead.
func NewDepotCoverSolver(estimator ports.RouteEstimator) DepotCoverSolver {
	return DepotCoverSolver{estimator: estimator}
}

// Solve picks depot IDs covering the demand. Candidate depots and their
// per-product stock come from the stock entries; candidates keep the order
// in which they first appear so that results are deterministic. Locations
// maps depot IDs to known coordinates; depots missing from it are still
// selectable but priced as unreachable. Start is the courier's position and
// may be nil.
//
// The returned slice is empty only when demand is empty or no depot holds
// any demanded product.
func (s DepotCoverSolver) Solve(
	ctx context.Context,
	demand map[kernel.UUID]int,
	stock []depot.StockLevel,
	locations map[kernel.UUID]kernel.GeoPoint,
	start *kernel.GeoPoint,
) []kernel.UUID {
	if len(demand) == 0 {
		return nil
	}

	depotStock, candidates := indexStock(demand, stock)
	if len(candidates) == 0 {
		return nil
	}

	maxK := min(len(candidates), maxCoverCardinality)
	for k := 1; k <= maxK; k++ {
		if best := s.bestCoverOfSize(ctx, k, candidates, depotStock, demand, locations, start); best != nil {
			return best
		}
	}

	return greedyCover(candidates, depotStock, demand, locations, start)
}

// indexStock builds per-depot stock for demanded products and the candidate
// list in first-seen order. Depots holding none of the demanded products are
// not candidates.
func indexStock(
	demand map[kernel.UUID]int,
	stock []depot.StockLevel,
) (map[kernel.UUID]map[kernel.UUID]int, []kernel.UUID) {
	depotStock := make(map[kernel.UUID]map[kernel.UUID]int)
	candidates := make([]kernel.UUID, 0)

	for _, entry := range stock {
		if _, demanded := demand[entry.ProductID()]; !demanded {
			continue
		}
		byProduct, ok := depotStock[entry.DepotID()]
		if !ok {
			byProduct = make(map[kernel.UUID]int)
			depotStock[entry.DepotID()] = byProduct
			candidates = append(candidates, entry.DepotID())
		}
		byProduct[entry.ProductID()] += entry.Quantity()
	}

	return depotStock, candidates
}

// bestCoverOfSize enumerates all C(n, k) combinations and returns the
// covering combination with the lowest estimated route cost, or nil when no
// combination of this size covers demand.
func (s DepotCoverSolver) bestCoverOfSize(
	ctx context.Context,
	k int,
	candidates []kernel.UUID,
	depotStock map[kernel.UUID]map[kernel.UUID]int,
	demand map[kernel.UUID]int,
	locations map[kernel.UUID]kernel.GeoPoint,
	start *kernel.GeoPoint,
) []kernel.UUID {
	var best []kernel.UUID
	bestCost := math.MaxFloat64

	gen := newCombinationGenerator(len(candidates), k)
	for indices, ok := gen.next(); ok; indices, ok = gen.next() {
		combo := make([]kernel.UUID, k)
		for i, idx := range indices {
			combo[i] = candidates[idx]
		}

		if !covers(combo, depotStock, demand) {
			continue
		}

		cost := s.estimateRouteCost(ctx, combo, locations, start)
		if cost < bestCost {
			bestCost = cost
			best = combo
		}
	}

	return best
}

// covers reports whether the combined stock of the given depots satisfies
// every demanded product in full.
func covers(combo []kernel.UUID, depotStock map[kernel.UUID]map[kernel.UUID]int, demand map[kernel.UUID]int) bool {
	for productID, required := range demand {
		available := 0
		for _, depotID := range combo {
			available += depotStock[depotID][productID]
			if available >= required {
				break
			}
		}
		if available < required {
			return false
		}
	}
	return true
}

// estimateRouteCost prices visiting the given depots from start using the
// nearest-neighbor heuristic. Leg costs come from the route estimator's
// duration matrix when available, otherwise from haversine distances. With
// no start position the route cannot be priced, so the depot count itself
// is the cost. Depots without known coordinates are skipped.
func (s DepotCoverSolver) estimateRouteCost(
	ctx context.Context,
	depotIDs []kernel.UUID,
	locations map[kernel.UUID]kernel.GeoPoint,
	start *kernel.GeoPoint,
) float64 {
	if start == nil {
		return float64(len(depotIDs))
	}

	waypoints := make([]kernel.GeoPoint, 0, len(depotIDs))
	for _, id := range depotIDs {
		if loc, ok := locations[id]; ok {
			waypoints = append(waypoints, loc)
		}
	}
	if len(waypoints) == 0 {
		return float64(len(depotIDs))
	}

	if s.estimator != nil {
		points := append([]kernel.GeoPoint{*start}, waypoints...)
		if table := s.estimator.GetTable(ctx, points); table != nil && len(table.Durations) == len(points) {
			return nearestNeighborMatrixCost(table.Durations)
		}
	}

	cost := 0.0
	current := *start
	for _, idx := range kernel.NearestNeighborOrder(*start, waypoints) {
		cost += current.DistanceKm(waypoints[idx])
		current = waypoints[idx]
	}
	return cost
}

// nearestNeighborMatrixCost walks the duration matrix greedily from row 0
// (the start point) and sums the chosen legs.
func nearestNeighborMatrixCost(durations [][]float64) float64 {
	n := len(durations)
	visited := make([]bool, n)
	visited[0] = true
	current := 0
	total := 0.0

	for range n - 1 {
		next := -1
		minCost := math.MaxFloat64
		for j := 1; j < n; j++ {
			if visited[j] || current >= len(durations) || j >= len(durations[current]) {
				continue
			}
			if d := durations[current][j]; d < minCost {
				minCost = d
				next = j
			}
		}
		if next < 0 {
			break
		}
		visited[next] = true
		total += minCost
		current = next
	}

	return total
}

// greedyCover repeatedly selects the depot covering the most remaining
// demand, breaking ties by proximity to start. It stops when demand is met
// or no depot contributes further coverage; residual unmet demand is
// possible.
func greedyCover(
	candidates []kernel.UUID,
	depotStock map[kernel.UUID]map[kernel.UUID]int,
	demand map[kernel.UUID]int,
	locations map[kernel.UUID]kernel.GeoPoint,
	start *kernel.GeoPoint,
) []kernel.UUID {
	remaining := make(map[kernel.UUID]int, len(demand))
	for productID, qty := range demand {
		remaining[productID] = qty
	}

	chosen := make([]kernel.UUID, 0)
	used := make(map[kernel.UUID]bool)

	for {
		met := true
		for _, qty := range remaining {
			if qty > 0 {
				met = false
				break
			}
		}
		if met {
			break
		}

		best := kernel.UUID{}
		bestCoverage := 0
		bestDistance := math.MaxFloat64

		for _, depotID := range candidates {
			if used[depotID] {
				continue
			}
			coverage := 0
			for productID, qty := range remaining {
				if qty <= 0 {
					continue
				}
				coverage += min(qty, depotStock[depotID][productID])
			}
			if coverage == 0 {
				continue
			}

			distance := math.MaxFloat64
			if start != nil {
				if loc, ok := locations[depotID]; ok {
					distance = start.DistanceKm(loc)
				}
			}

			if coverage > bestCoverage || (coverage == bestCoverage && distance < bestDistance) {
				best = depotID
				bestCoverage = coverage
				bestDistance = distance
			}
		}

		if bestCoverage == 0 {
			break
		}

		used[best] = true
		chosen = append(chosen, best)
		for productID := range remaining {
			if remaining[productID] <= 0 {
				continue
			}
			remaining[productID] -= min(remaining[productID], depotStock[best][productID])
		}
	}

	return chosen
}

// combinationGenerator enumerates k-subsets of {0..n-1} in lexicographic
// order without recursion.
type combinationGenerator struct {
	n, k    int
	indices []int
	done    bool
}

func newCombinationGenerator(n, k int) *combinationGenerator {
	g := &combinationGenerator{n: n, k: k}
	if k <= 0 || k > n {
		g.done = true
		return g
	}
	g.indices = make([]int, k)
	for i := range g.indices {
		g.indices[i] = i
	}
	return g
}

// next returns the current combination and advances the generator. The
// returned slice is only valid until the following call.
func (g *combinationGenerator) next() ([]int, bool) {
	if g.done {
		return nil, false
	}

	current := g.indices

	// advance to the successor in lexicographic order
	i := g.k - 1
	for i >= 0 && g.indices[i] == g.n-g.k+i {
		i--
	}
	if i < 0 {
		g.done = true
		return current, true
	}

	next := make([]int, g.k)
	copy(next, g.indices)
	next[i]++
	for j := i + 1; j < g.k; j++ {
		next[j] = next[j-1] + 1
	}
	g.indices = next

	return current, true
}
