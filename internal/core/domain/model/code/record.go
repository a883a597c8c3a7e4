// Package code defines Record, a single generated machine-readable code belonging to an
// order batch. Records are ephemeral: they exist only while an order is processed and end
// up in the manifest and the rendered images of the artifact bundle.
package code

import (
	"errors"
	"time"

	"codeorders/internal/core/domain/model/catalog"
	"codeorders/internal/pkg/errs"
	"codeorders/internal/pkg/guard"
)

// ErrRecordIsNotConstructed is returned when a Record was not built by NewRecord.
var ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord constructor")

// Record is one generated code. Payload is the content encoded in the image and currently
// always equals ID.
type Record struct {
	id          string
	symbology   catalog.Symbology
	payload     string
	generatedAt time.Time
	guard       guard.ConstructorGuard
}

// NewRecord validates and builds a Record. generatedAt is normalized to UTC.
func NewRecord(id string, symbology catalog.Symbology, payload string, generatedAt time.Time) (Record, error) {
	var required []error
	if id == "" {
		required = append(required, errs.NewValueIsRequiredError("record id"))
	}
	if payload == "" {
		required = append(required, errs.NewValueIsRequiredError("payload"))
	}
	if generatedAt.IsZero() {
		required = append(required, errs.NewValueIsRequiredError("generated at"))
	}
	if err := errors.Join(append(required, symbology.Validate())...); err != nil {
		return Record{}, err
	}

	return Record{
		id:          id,
		symbology:   symbology,
		payload:     payload,
		generatedAt: generatedAt.UTC(),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (r Record) ID() string { return r.id }
func (r Record) Symbology() catalog.Symbology { return r.symbology }
func (r Record) Payload() string { return r.payload }
func (r Record) GeneratedAt() time.Time { return r.generatedAt }

// Validate ensures the record was created through NewRecord.
func (r Record) Validate() error {
	return r.guard.Validate(ErrRecordIsNotConstructed)
}
