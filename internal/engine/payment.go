package engine

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/pritamp20/socialchain-ledger/internal/domain/model"
	"github.com/pritamp20/socialchain-ledger/internal/store"
)

type CreatePaymentRequestParams struct {
	Community   string
	From        string // payer wallet
	To          string // payee wallet
	Amount      uint64
	Description string
	ExpiresIn   time.Duration
	Timestamp   int64 // unix seconds; 0 means the engine clock
}

// timestampSkewMax bounds how far ahead of the engine clock a supplied
// request timestamp may run.
const timestampSkewMax = 5 * time.Minute

// CreatePaymentRequest opens a request for the From member to pay the
// To member. The caller must be one of the two parties. The address
// folds in a caller-supplied timestamp so concurrent requests between
// the same pair stay distinct; reusing a timestamp is a duplicate.
func (e *Engine) CreatePaymentRequest(ctx context.Context, caller string, p CreatePaymentRequestParams) (*model.PaymentRequest, error) {
	if p.Amount == 0 {
		return nil, model.ErrInvalidArgument("payment amount must be positive")
	}
	if l := len(p.Description); l < model.PaymentDescriptionMinLen || l > model.PaymentDescriptionMaxLen {
		return nil, model.ErrInvalidArgument("payment description must be %d-%d characters", model.PaymentDescriptionMinLen, model.PaymentDescriptionMaxLen)
	}
	if p.ExpiresIn <= 0 || p.ExpiresIn > model.PaymentExpiryMax {
		return nil, model.ErrInvalidArgument("payment expiry must be positive and at most %s", model.PaymentExpiryMax)
	}
	if p.From == p.To {
		return nil, model.ErrInvalidArgument("payer and payee must differ")
	}
	if caller != p.From && caller != p.To {
		return nil, model.ErrUnauthorized("caller must be the payer or the payee")
	}
	var out *model.PaymentRequest
	err := e.exec(ctx, "createPaymentRequest", func(tx store.Tx) (string, error) {
		community, err := e.loadCommunity(ctx, tx, p.Community)
		if err != nil {
			return "", err
		}
		payer, err := e.loadMember(ctx, tx, community, p.From)
		if err != nil {
			return "", err
		}
		payee, err := e.loadMember(ctx, tx, community, p.To)
		if err != nil {
			return "", err
		}

		now := e.nowFn()
		ts := p.Timestamp
		if ts == 0 {
			ts = now.Unix()
		}
		if ts < 0 || ts > now.Add(timestampSkewMax).Unix() {
			return "", model.ErrInvalidArgument("request timestamp %d is outside the accepted range", ts)
		}
		addr := e.addr.PaymentRequest(community.Address, payer.Address, payee.Address, strconv.FormatInt(ts, 10))
		existing, err := tx.GetPaymentRequest(ctx, addr)
		if err != nil {
			return "", fmt.Errorf("check payment request: %w", err)
		}
		if existing != nil {
			return "", model.ErrDuplicate("payment request between %s and %s already exists at timestamp %d", p.From, p.To, ts)
		}

		req := &model.PaymentRequest{
			Address:     addr,
			Community:   community.Address,
			From:        p.From,
			To:          p.To,
			Amount:      p.Amount,
			Description: p.Description,
			Status:      model.PaymentPending,
			CreatedAt:   now,
			ExpiresAt:   now.Add(p.ExpiresIn),
		}
		if err := tx.PutPaymentRequest(ctx, req); err != nil {
			return "", fmt.Errorf("persist payment request: %w", err)
		}
		out = req
		return addr, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SettlePaymentRequest pays a pending request in full. Only the payer
// may settle; the movement is fee-free and journaled against the
// request address.
func (e *Engine) SettlePaymentRequest(ctx context.Context, caller, communityName, requestAddr string) error {
	return e.exec(ctx, "settlePaymentRequest", func(tx store.Tx) (string, error) {
		community, err := e.loadCommunity(ctx, tx, communityName)
		if err != nil {
			return "", err
		}
		req, err := e.loadPaymentRequest(ctx, tx, community, requestAddr)
		if err != nil {
			return "", err
		}
		if caller != req.From {
			return "", model.ErrUnauthorized("only the payer may settle the request")
		}
		switch req.EffectiveStatus(e.nowFn()) {
		case model.PaymentPending:
		case model.PaymentExpired:
			return "", model.ErrExpired("payment request expired at %s", req.ExpiresAt.UTC().Format(time.RFC3339))
		default:
			return "", model.ErrInvalidState("payment request is %s", req.Status)
		}

		payer, err := e.loadMember(ctx, tx, community, req.From)
		if err != nil {
			return "", err
		}
		payee, err := e.loadMember(ctx, tx, community, req.To)
		if err != nil {
			return "", err
		}
		if err := e.move(ctx, tx, community.TokenMint, req.From, req.To, req.Amount, model.TokenEntryTransfer, req.Description, req.Address); err != nil {
			return "", err
		}

		now := e.nowFn()
		req.Status = model.PaymentCompleted
		req.SettledAt = &now
		if err := tx.PutPaymentRequest(ctx, req); err != nil {
			return "", fmt.Errorf("persist payment request: %w", err)
		}

		payer.TotalTransactions++
		payee.TotalTransactions++
		if err := tx.PutMember(ctx, payer); err != nil {
			return "", fmt.Errorf("persist payer: %w", err)
		}
		if err := tx.PutMember(ctx, payee); err != nil {
			return "", fmt.Errorf("persist payee: %w", err)
		}
		return req.Address, nil
	})
}

// CancelPaymentRequest withdraws a pending request. Either party may
// cancel; settled or already-cancelled requests reject.
func (e *Engine) CancelPaymentRequest(ctx context.Context, caller, communityName, requestAddr string) error {
	return e.exec(ctx, "cancelPaymentRequest", func(tx store.Tx) (string, error) {
		community, err := e.loadCommunity(ctx, tx, communityName)
		if err != nil {
			return "", err
		}
		req, err := e.loadPaymentRequest(ctx, tx, community, requestAddr)
		if err != nil {
			return "", err
		}
		if caller != req.From && caller != req.To {
			return "", model.ErrUnauthorized("caller is not a party to the request")
		}
		if req.Status != model.PaymentPending {
			return "", model.ErrInvalidState("payment request is %s", req.Status)
		}

		req.Status = model.PaymentCancelled
		if err := tx.PutPaymentRequest(ctx, req); err != nil {
			return "", fmt.Errorf("persist payment request: %w", err)
		}
		return req.Address, nil
	})
}

func (e *Engine) loadPaymentRequest(ctx context.Context, tx store.Tx, community *model.Community, addr string) (*model.PaymentRequest, error) {
	req, err := tx.GetPaymentRequest(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("load payment request: %w", err)
	}
	if req == nil || req.Community != community.Address {
		return nil, model.ErrNotFound("payment request %s not found in %q", addr, community.Name)
	}
	return req, nil
}
