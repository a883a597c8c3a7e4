package services

import (
	"time"

	"codeorders/internal/core/domain/model/catalog"
	"codeorders/internal/core/domain/model/code"
	"codeorders/internal/core/domain/model/order"
	"codeorders/internal/pkg/errs"

	"github.com/google/uuid"
)

// tokenLength is the number of characters taken from a random UUID for each record id.
const tokenLength = 8

// CodeGenerator produces the records of an order batch. Each id is the symbology tag
// followed by the first 8 characters of a random UUID, and the payload equals the id.
// Ids are distinct within a batch; a colliding token is redrawn.
type CodeGenerator struct {
	now   func() time.Time
	token func() string
}

// NewCodeGenerator creates a generator stamping records with now. A nil clock uses time.Now.
func NewCodeGenerator(now func() time.Time) CodeGenerator {
	if now == nil {
		now = time.Now
	}
	return CodeGenerator{now: now, token: uuid.NewString}
}

// WithTokenSource replaces the random token source. Tokens shorter than 8 characters
// are not supported.
func (g CodeGenerator) WithTokenSource(token func() string) CodeGenerator {
	if token != nil {
		g.token = token
	}
	return g
}

// Generate returns exactly quantity records in generation order.
func (g CodeGenerator) Generate(symbology catalog.Symbology, quantity int) ([]code.Record, error) {
	if err := symbology.Validate(); err != nil {
		return nil, err
	}
	if quantity <= 0 || quantity > order.MaxQuantity {
		return nil, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, order.MaxQuantity)
	}

	records := make([]code.Record, 0, quantity)
	seen := make(map[string]struct{}, quantity)
	for range quantity {
		id := g.uniqueID(symbology.Tag(), seen)
		r, err := code.NewRecord(id, symbology, id, g.now())
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

func (g CodeGenerator) uniqueID(tag string, seen map[string]struct{}) string {
	for {
		id := tag + g.token()[:tokenLength]
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			return id
		}
	}
}
