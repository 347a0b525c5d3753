// Package slot provides the Slot aggregate: a finite-capacity cooking resource
// (oven or pit) that holds up to capacity orders at once.
//
// The package includes:
//   - Slot: the aggregate root tracking capacity, occupants, status and history
//   - HistoryEntry: one cooking session of an order inside a slot
//   - Event: a change notification recorded by the aggregate and published after commit
//
// Key business rules:
//   - 0 <= occupancy <= capacity for every change made through Assign
//   - for available/occupied slots, status is occupied iff occupancy >= capacity
//   - maintenance and out_of_order are operator states the assignment path never touches
//   - at most one open history entry per order; entries are never removed or reordered
//
// Slots reference orders only by id.
package slot
