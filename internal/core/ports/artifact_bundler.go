package ports

import (
	"codeorders/internal/core/domain/model/code"
	"codeorders/internal/core/domain/model/invoice"
	"codeorders/internal/pkg/errs"
)

// Artifacts is everything produced for one processed order.
//
// Images holds the PNG of each successfully rendered record keyed by record id.
// Failures lists the records that could not be rendered, in generation order.
type Artifacts struct {
	Records  []code.Record
	Images   map[string][]byte
	Failures []*errs.RenderFailedError
	Invoice  invoice.Invoice
}

// ArtifactBundler packs artifacts into a single zip archive held in memory.
type ArtifactBundler interface {
	Bundle(artifacts Artifacts) ([]byte, error)
}
