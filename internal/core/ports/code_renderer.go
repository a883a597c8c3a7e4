package ports

import (
	"codeorders/internal/core/domain/model/catalog"
)

// CodeRenderer turns a payload into a PNG image of the given symbology.
// Payloads the symbology cannot encode yield errs.RenderFailedError.
type CodeRenderer interface {
	Render(payload string, symbology catalog.Symbology) ([]byte, error)
}
