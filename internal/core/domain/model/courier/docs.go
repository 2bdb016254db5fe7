// Package courier models the couriers ranked by the recommender. Couriers
// are read-only inputs: the recommendation flow scores them but never
// mutates them.
package courier
