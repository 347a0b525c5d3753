// Package order provides the Order aggregate: a customer's lechon cooking job.
//
// The package includes:
//   - Order: identity, descriptive fields, lifecycle status and the optional slot
//     reference maintained by the slot assignment service
//   - Status: the order lifecycle enumeration
//
// Key business rules:
//   - An order is attached to at most one slot at a time
//   - AssignToSlot moves the order to Cooking and stamps the cooking date
//   - ReleaseFromSlot moves the order to Cooked and stamps the cooked date
//   - Cooked is part of the enumeration; it is the state an order lands in when it
//     leaves a slot
package order
