// Package services provides the stateless domain services used by the order processing
// pipeline. None of them perform I/O.
//
// The package includes:
//   - TaxCalculator: prices a symbology and quantity and applies region-aware GST
//   - CodeGenerator: produces the unique code records of an order batch
//   - InvoiceComposer: builds the invoice document for an order
package services
