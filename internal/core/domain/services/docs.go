// Package services holds the domain services that change a slot and an order
// together. They are the only code that writes the order↔slot relationship.
//
// The package includes:
//   - SlotAssigner: assigns an order to a slot and releases it again
//   - AssignmentReconciler: repairs drift between slot occupancy and order state
//
// Services mutate the aggregates they are given; persisting them is the caller's job.
package services
