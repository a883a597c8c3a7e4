package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"codeorders/internal/core/domain/model/order"
	"codeorders/internal/pkg/errs"
)

// FailStaleOrdersCommandHandler moves stale processing orders to failed using the same
// conditional update as regular processing. An order that finished in the meantime is
// skipped.
type FailStaleOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *slog.Logger
}

// NewFailStaleOrdersCommandHandler creates the handler.
func NewFailStaleOrdersCommandHandler(uowFactory OrderUoWFactory, logger *slog.Logger) FailStaleOrdersCommandHandler {
	return FailStaleOrdersCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "FailStaleOrdersCommandHandler"),
	}
}

// Handle returns the number of orders moved to failed.
func (h *FailStaleOrdersCommandHandler) Handle(ctx context.Context, cmd FailStaleOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	stale, err := repo.ListStale(ctx, order.Processing, cmd.UpdatedBefore(), cmd.Limit())
	if err != nil {
		return 0, err
	}

	failed := 0
	for _, o := range stale {
		if err = o.Fail(time.Now()); err != nil {
			return 0, err
		}

		err = repo.Update(ctx, o, order.Processing)
		if errors.Is(err, errs.ErrStatusConflict) {
			h.logger.DebugContext(ctx, "order left processing concurrently", "order_id", o.ID().String())
			continue
		}
		if err != nil {
			return 0, err
		}

		failed++
		h.logger.WarnContext(ctx, "stale order failed",
			"order_id", o.ID().String(),
			"updated_at", o.UpdatedAt(),
		)
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return failed, nil
}
