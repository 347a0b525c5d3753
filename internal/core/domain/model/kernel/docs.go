// Package kernel provides the shared primitives of the lechon domain model.
//
// The package includes:
//   - UUID: the identifier value object used by slots, orders and history entries
//   - Clock: the source of "now" used to stamp cooking sessions
//
// Slots and orders reference each other only through UUIDs; nothing in the
// domain model embeds another aggregate.
package kernel
