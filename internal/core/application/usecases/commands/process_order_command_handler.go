package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"codeorders/internal/core/domain/model/code"
	"codeorders/internal/core/domain/model/invoice"
	"codeorders/internal/core/domain/model/kernel"
	"codeorders/internal/core/domain/model/order"
	"codeorders/internal/core/domain/model/tax"
	"codeorders/internal/core/domain/services"
	"codeorders/internal/core/ports"
	"codeorders/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

// InvoiceComposer builds the invoice of an order.
type InvoiceComposer interface {
	Compose(o *order.Order, breakdown tax.Breakdown) (invoice.Invoice, error)
}

// ProcessOrderResult is the outcome of a completed order.
type ProcessOrderResult struct {
	OrderID        kernel.UUID
	Archive        []byte
	Filename       string
	RenderFailures []*errs.RenderFailedError
}

// ProcessOrderDeps groups the collaborators of the processing pipeline.
type ProcessOrderDeps struct {
	UoWFactory OrderUoWFactory
	Calculator services.TaxCalculator
	Generator  services.CodeGenerator
	Renderer   ports.CodeRenderer
	Composer   InvoiceComposer
	Bundler    ports.ArtifactBundler
	Policy     RenderPolicy
	Workers    int
	Logger     *slog.Logger
}

// ProcessOrderCommandHandler runs the order processing pipeline.
//
// Workflow:
//   - Load the order and move it pending -> processing with a conditional update, so
//     a repeated or concurrent call gets a status conflict and never renders twice
//   - Generate records, render them on a bounded worker pool, compose the invoice
//     and bundle everything into one zip archive
//   - Persist completed and return the archive, or persist failed and return the
//     pipeline error
//
// Once the order is claimed, the pipeline and the final transition run on a context
// detached from the caller, so a client that disconnects neither fails the order nor
// leaves it in processing. If completed cannot be persisted, failed is attempted
// instead; a stuck order is left to the stale order job.
type ProcessOrderCommandHandler struct {
	deps   ProcessOrderDeps
	logger *slog.Logger
}

// NewProcessOrderCommandHandler creates the handler. Workers below 1 are treated as 1.
func NewProcessOrderCommandHandler(deps ProcessOrderDeps) *ProcessOrderCommandHandler {
	if deps.Workers < 1 {
		deps.Workers = 1
	}
	if deps.Policy == "" {
		deps.Policy = RenderPolicyCollect
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ProcessOrderCommandHandler{
		deps:   deps,
		logger: logger.With("component", "ProcessOrderCommandHandler"),
	}
}

// Handle processes the order named by cmd.
func (h *ProcessOrderCommandHandler) Handle(ctx context.Context, cmd ProcessOrderCommand) (ProcessOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return ProcessOrderResult{}, err
	}

	o, err := h.startProcessing(ctx, cmd.OrderID())
	if err != nil {
		return ProcessOrderResult{}, err
	}

	detached := context.WithoutCancel(ctx)

	result, pipelineErr := h.runPipeline(detached, o)
	if pipelineErr != nil {
		h.logger.ErrorContext(detached, "order processing failed",
			"order_id", o.ID().String(),
			"error", pipelineErr,
		)
		h.fail(detached, o)
		return ProcessOrderResult{}, pipelineErr
	}

	if err = h.finish(detached, o, (*order.Order).Complete); err != nil {
		h.logger.ErrorContext(detached, "failed to persist completed status",
			"order_id", o.ID().String(),
			"error", err,
		)
		h.fail(detached, o)
		return ProcessOrderResult{}, err
	}

	h.logger.InfoContext(detached, "order processed",
		"order_id", o.ID().String(),
		"quantity", o.Quantity(),
		"render_failures", len(result.RenderFailures),
	)
	return result, nil
}

func (h *ProcessOrderCommandHandler) startProcessing(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	uow := h.deps.UoWFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = o.StartProcessing(time.Now()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, o, order.Pending); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

func (h *ProcessOrderCommandHandler) fail(ctx context.Context, o *order.Order) {
	if err := h.finish(ctx, o, (*order.Order).Fail); err != nil {
		h.logger.ErrorContext(ctx, "failed to persist failed status",
			"order_id", o.ID().String(),
			"error", err,
		)
	}
}

// finish applies transition and persists it against processing. When the write does
// not go through, o is reset to its processing state.
func (h *ProcessOrderCommandHandler) finish(
	ctx context.Context,
	o *order.Order,
	transition func(*order.Order, time.Time) error,
) (err error) {
	before := o.Snapshot()
	if err = transition(o, time.Now()); err != nil {
		return err
	}

	defer func() {
		if err == nil {
			return
		}
		if restored, restoreErr := order.RestoreOrder(before); restoreErr == nil {
			*o = *restored
		}
	}()

	uow := h.deps.UoWFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Update(ctx, o, order.Processing); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *ProcessOrderCommandHandler) runPipeline(ctx context.Context, o *order.Order) (ProcessOrderResult, error) {
	records, err := h.deps.Generator.Generate(o.Symbology(), o.Quantity())
	if err != nil {
		return ProcessOrderResult{}, fmt.Errorf("generate codes: %w", err)
	}

	images, failures, err := h.render(ctx, records)
	if err != nil {
		return ProcessOrderResult{}, err
	}

	breakdown := h.deps.Calculator.ComputeTax(o.BaseAmount(), o.Customer().Region())
	inv, err := h.deps.Composer.Compose(o, breakdown)
	if err != nil {
		return ProcessOrderResult{}, fmt.Errorf("compose invoice: %w", err)
	}

	archive, err := h.deps.Bundler.Bundle(ports.Artifacts{
		Records:  records,
		Images:   images,
		Failures: failures,
		Invoice:  inv,
	})
	if err != nil {
		return ProcessOrderResult{}, fmt.Errorf("bundle artifacts: %w", err)
	}

	return ProcessOrderResult{
		OrderID:        o.ID(),
		Archive:        archive,
		Filename:       fmt.Sprintf("orders_%s.zip", o.ID().String()),
		RenderFailures: failures,
	}, nil
}

// render encodes every record on at most Workers goroutines. Results are stored by
// index so the generation order survives. Under fail_fast, records after the first
// failed index are skipped but every earlier one is still rendered, so the reported
// failure is the first in generation order.
func (h *ProcessOrderCommandHandler) render(
	ctx context.Context,
	records []code.Record,
) (map[string][]byte, []*errs.RenderFailedError, error) {
	images := make([][]byte, len(records))
	failed := make([]*errs.RenderFailedError, len(records))

	var firstFailure atomic.Int64
	firstFailure.Store(math.MaxInt64)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.deps.Workers)

	for i, r := range records {
		if h.deps.Policy == RenderPolicyFailFast && int64(i) > firstFailure.Load() {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if h.deps.Policy == RenderPolicyFailFast && int64(i) > firstFailure.Load() {
				return nil
			}

			img, err := h.deps.Renderer.Render(r.Payload(), r.Symbology())
			if err != nil {
				failed[i] = attributeRenderFailure(r, err)
				lowerTo(&firstFailure, int64(i))
				return nil
			}
			images[i] = img
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var failures []*errs.RenderFailedError
	byID := make(map[string][]byte, len(records))
	for i, r := range records {
		if failed[i] != nil {
			if h.deps.Policy == RenderPolicyFailFast {
				return nil, nil, failed[i]
			}
			failures = append(failures, failed[i])
			continue
		}
		if images[i] != nil {
			byID[r.ID()] = images[i]
		}
	}

	return byID, failures, nil
}

func attributeRenderFailure(r code.Record, err error) *errs.RenderFailedError {
	var renderErr *errs.RenderFailedError
	if errors.As(err, &renderErr) {
		return renderErr.ForRecord(r.ID())
	}
	return errs.NewRenderFailedErrorWithCause(r.Symbology().Key(), r.Payload(), err).ForRecord(r.ID())
}

func lowerTo(v *atomic.Int64, candidate int64) {
	for {
		current := v.Load()
		if candidate >= current || v.CompareAndSwap(current, candidate) {
			return
		}
	}
}
