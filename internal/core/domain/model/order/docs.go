// Package order provides the Order aggregate root and its lifecycle state machine.
//
// The package includes:
//   - Order: identity, customer snapshot, symbology, quantity, monetary amounts and status
//   - Status: the processing state machine pending -> processing -> completed | failed
//   - PaymentStatus: payment state reserved for a payment-capture collaborator
//   - Customer: the immutable customer details attached to an order
//   - StatusChanged: the domain event recorded on every status change
//
// Key business rules:
//   - Quantity is positive and amounts are non-negative with final = base + tax
//   - Pending is the only initial state; completed and failed are terminal
//   - updated_at never moves backwards and never precedes created_at
//   - Payment status is carried but never transitioned by order processing
package order
