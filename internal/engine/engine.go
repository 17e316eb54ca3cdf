// Package engine implements the governance and treasury state machine.
// Every instruction is one atomic transition: resolve derived
// addresses, load the named records, validate authorization and
// invariants, then persist, all inside a single store transaction.
// The engine keeps no state between requests beyond the records.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pritamp20/socialchain-ledger/internal/address"
	"github.com/pritamp20/socialchain-ledger/internal/domain/model"
	"github.com/pritamp20/socialchain-ledger/internal/metrics"
	"github.com/pritamp20/socialchain-ledger/internal/store"
	"github.com/pritamp20/socialchain-ledger/internal/stream"
)

type Engine struct {
	store     store.Store
	addr      *address.Deriver
	logger    *slog.Logger
	publisher stream.Publisher
	nowFn     func() time.Time
}

type Option func(*Engine)

// WithClock overrides the engine clock. Tests pin it to make deadline
// behavior deterministic.
func WithClock(nowFn func() time.Time) Option {
	return func(e *Engine) { e.nowFn = nowFn }
}

// WithPublisher attaches an applied-instruction publisher. Publish
// failures are logged, never surfaced: the transition has already
// committed by the time the event goes out.
func WithPublisher(p stream.Publisher) Option {
	return func(e *Engine) { e.publisher = p }
}

func New(st store.Store, deriver *address.Deriver, logger *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:  st,
		addr:   deriver,
		logger: logger.With("component", "engine"),
		nowFn:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Deriver exposes the address scheme to transport layers.
func (e *Engine) Deriver() *address.Deriver { return e.addr }

// Store exposes the read-only record surface.
func (e *Engine) Store() store.Reader { return e.store }

// exec wraps one instruction in a store transaction, records metrics,
// and publishes the applied event. fn returns the primary record
// address the instruction touched.
func (e *Engine) exec(ctx context.Context, instruction string, fn func(tx store.Tx) (string, error)) error {
	start := time.Now()
	var primary string
	err := e.store.WithinTx(ctx, func(tx store.Tx) error {
		addr, err := fn(tx)
		primary = addr
		return err
	})
	metrics.InstructionLatency.WithLabelValues(instruction).Observe(time.Since(start).Seconds())

	if err != nil {
		kind := model.KindOf(err)
		if kind == "" {
			metrics.InstructionsTotal.WithLabelValues(instruction, "internal_error").Inc()
			e.logger.Error("instruction failed", "instruction", instruction, "error", err)
			return err
		}
		metrics.InstructionsTotal.WithLabelValues(instruction, string(kind)).Inc()
		e.logger.Warn("instruction rejected", "instruction", instruction, "kind", string(kind), "error", err)
		return err
	}

	metrics.InstructionsTotal.WithLabelValues(instruction, "applied").Inc()
	e.logger.Info("instruction applied", "instruction", instruction, "address", primary)

	if e.publisher != nil {
		evt := stream.AppliedInstruction{
			Instruction: instruction,
			Address:     primary,
			AppliedAt:   e.nowFn(),
		}
		if perr := e.publisher.Publish(ctx, evt); perr != nil {
			e.logger.Error("publish applied instruction", "instruction", instruction, "error", perr)
		}
	}
	return nil
}

// loadCommunity resolves a community by name and fails typed when it
// does not exist.
func (e *Engine) loadCommunity(ctx context.Context, tx store.Tx, name string) (*model.Community, error) {
	community, err := tx.GetCommunity(ctx, e.addr.Community(name))
	if err != nil {
		return nil, fmt.Errorf("load community: %w", err)
	}
	if community == nil {
		return nil, model.ErrNotFound("community %q not registered", name)
	}
	return community, nil
}

// loadMember resolves the member record for a wallet inside a community.
func (e *Engine) loadMember(ctx context.Context, tx store.Tx, community *model.Community, wallet string) (*model.Member, error) {
	member, err := tx.GetMember(ctx, e.addr.Member(community.Address, wallet))
	if err != nil {
		return nil, fmt.Errorf("load member: %w", err)
	}
	if member == nil {
		return nil, model.ErrNotFound("wallet %s is not a member of %q", wallet, community.Name)
	}
	return member, nil
}

// requireAdmin re-reads the admin from the loaded community row; there
// is no cached authority anywhere.
func requireAdmin(community *model.Community, caller string) error {
	if community.Admin != caller {
		return model.ErrUnauthorized("caller is not the community admin")
	}
	return nil
}
