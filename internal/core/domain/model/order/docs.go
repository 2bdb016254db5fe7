// Package order implements the Order aggregate and the collection plan
// attached to it.
//
// An order is a tenant-scoped set of product lines with an optional delivery
// point. Its collection plan is an explicit tagged variant (absent, manual,
// auto): manual plans are human-authored and authoritative, auto plans are
// optimizer output that may be regenerated at any time. Plans are persisted
// as JSON snapshots; the codec in snapshot.go tolerates the looser shapes of
// older manual plans (missing coordinates, untagged items).
package order
