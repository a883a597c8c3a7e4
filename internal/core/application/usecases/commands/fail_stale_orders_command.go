package commands

import (
	"errors"
	"time"

	"codeorders/internal/pkg/errs"
	"codeorders/internal/pkg/guard"
)

const maxStaleBatch = 1000

var (
	ErrFailStaleOrdersCommandIsNotConstructed = errors.New(
		"FailStaleOrdersCommand must be created via NewFailStaleOrdersCommand constructor",
	)
)

// FailStaleOrdersCommand fails orders left in processing since before a cutoff,
// typically because the process handling them stopped mid-pipeline.
type FailStaleOrdersCommand struct {
	updatedBefore time.Time
	limit         int

	guard guard.ConstructorGuard
}

// NewFailStaleOrdersCommand creates a command for at most limit orders last updated
// before updatedBefore.
func NewFailStaleOrdersCommand(updatedBefore time.Time, limit int) (FailStaleOrdersCommand, error) {
	var problems []error
	if updatedBefore.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("updated before"))
	}
	if limit <= 0 || limit > maxStaleBatch {
		problems = append(problems, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxStaleBatch))
	}
	if err := errors.Join(problems...); err != nil {
		return FailStaleOrdersCommand{}, err
	}

	return FailStaleOrdersCommand{
		updatedBefore: updatedBefore,
		limit:         limit,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c FailStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrFailStaleOrdersCommandIsNotConstructed)
}

func (c FailStaleOrdersCommand) UpdatedBefore() time.Time {
	return c.updatedBefore
}

func (c FailStaleOrdersCommand) Limit() int {
	return c.limit
}
