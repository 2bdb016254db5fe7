// Package depot models stock-holding locations and their per-product
// availability. Depots and stock levels are read-only inputs to the
// collection plan optimizer.
package depot
