package engine

import (
	"context"
	"fmt"

	"github.com/pritamp20/socialchain-ledger/internal/domain/model"
	"github.com/pritamp20/socialchain-ledger/internal/store"
)

type CreateConnectionParams struct {
	Community string
	Other     string // other member's wallet
	Kind      model.ConnectionKind
	Metadata  *string
}

// CreateConnection links the caller to another member. The pair is
// unordered: a second creation in either direction is a duplicate.
func (e *Engine) CreateConnection(ctx context.Context, caller string, p CreateConnectionParams) (*model.Connection, error) {
	if !p.Kind.Valid() {
		return nil, model.ErrInvalidArgument("unknown connection kind %q", p.Kind)
	}
	if err := model.ValidateConnectionMetadata(p.Metadata); err != nil {
		return nil, err
	}
	if caller == p.Other {
		return nil, model.ErrInvalidArgument("cannot connect a member to itself")
	}
	var out *model.Connection
	err := e.exec(ctx, "createConnection", func(tx store.Tx) (string, error) {
		community, err := e.loadCommunity(ctx, tx, p.Community)
		if err != nil {
			return "", err
		}
		self, err := e.loadMember(ctx, tx, community, caller)
		if err != nil {
			return "", err
		}
		other, err := e.loadMember(ctx, tx, community, p.Other)
		if err != nil {
			return "", err
		}

		addr := e.addr.Connection(community.Address, self.Address, other.Address)
		existing, err := tx.GetConnection(ctx, addr)
		if err != nil {
			return "", fmt.Errorf("check connection: %w", err)
		}
		if existing != nil {
			return "", model.ErrDuplicate("connection between %s and %s already exists", caller, p.Other)
		}

		a, b := model.CanonicalPair(self.Address, other.Address)
		conn := &model.Connection{
			Address:   addr,
			Community: community.Address,
			MemberA:   a,
			MemberB:   b,
			Kind:      p.Kind,
			Metadata:  p.Metadata,
			CreatedAt: e.nowFn(),
		}
		if err := tx.PutConnection(ctx, conn); err != nil {
			return "", fmt.Errorf("persist connection: %w", err)
		}

		self.TotalConnections++
		other.TotalConnections++
		if err := tx.PutMember(ctx, self); err != nil {
			return "", fmt.Errorf("persist member: %w", err)
		}
		if err := tx.PutMember(ctx, other); err != nil {
			return "", fmt.Errorf("persist member: %w", err)
		}
		out = conn
		return addr, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RecordInteraction bumps the interaction counter on an existing
// connection. Either party may record.
func (e *Engine) RecordInteraction(ctx context.Context, caller, communityName, otherWallet string, kind model.InteractionKind) error {
	if !kind.Valid() {
		return model.ErrInvalidArgument("unknown interaction kind %q", kind)
	}
	return e.exec(ctx, "recordInteraction", func(tx store.Tx) (string, error) {
		conn, _, _, err := e.loadConnection(ctx, tx, communityName, caller, otherWallet)
		if err != nil {
			return "", err
		}
		conn.InteractionCount++
		conn.LastInteractionAt = e.nowFn()
		if err := tx.PutConnection(ctx, conn); err != nil {
			return "", fmt.Errorf("persist connection: %w", err)
		}
		return conn.Address, nil
	})
}

// UpdateConnectionMetadata replaces the free-form note on a connection.
// Either party may update; nil clears it.
func (e *Engine) UpdateConnectionMetadata(ctx context.Context, caller, communityName, otherWallet string, metadata *string) error {
	if err := model.ValidateConnectionMetadata(metadata); err != nil {
		return err
	}
	return e.exec(ctx, "updateConnectionMetadata", func(tx store.Tx) (string, error) {
		conn, _, _, err := e.loadConnection(ctx, tx, communityName, caller, otherWallet)
		if err != nil {
			return "", err
		}
		conn.Metadata = metadata
		if err := tx.PutConnection(ctx, conn); err != nil {
			return "", fmt.Errorf("persist connection: %w", err)
		}
		return conn.Address, nil
	})
}

// RemoveConnection deletes the link and decrements both members'
// connection counters. Either party may remove.
func (e *Engine) RemoveConnection(ctx context.Context, caller, communityName, otherWallet string) error {
	return e.exec(ctx, "removeConnection", func(tx store.Tx) (string, error) {
		conn, self, other, err := e.loadConnection(ctx, tx, communityName, caller, otherWallet)
		if err != nil {
			return "", err
		}
		if err := tx.DeleteConnection(ctx, conn.Address); err != nil {
			return "", fmt.Errorf("delete connection: %w", err)
		}
		if self.TotalConnections > 0 {
			self.TotalConnections--
		}
		if other.TotalConnections > 0 {
			other.TotalConnections--
		}
		if err := tx.PutMember(ctx, self); err != nil {
			return "", fmt.Errorf("persist member: %w", err)
		}
		if err := tx.PutMember(ctx, other); err != nil {
			return "", fmt.Errorf("persist member: %w", err)
		}
		return conn.Address, nil
	})
}

type UpdateReputationParams struct {
	Community string
	Member    string // member wallet
	Delta     int64
	Reason    string
}

// UpdateReputation adjusts a member's score by a bounded signed delta.
// Admin-signed only; the running score itself is unbounded.
func (e *Engine) UpdateReputation(ctx context.Context, caller string, p UpdateReputationParams) error {
	if p.Delta > model.ReputationDeltaMax || p.Delta < -model.ReputationDeltaMax {
		return model.ErrInvalidArgument("reputation delta must be within ±%d", model.ReputationDeltaMax)
	}
	if len(p.Reason) < model.ReputationReasonMinLen || len(p.Reason) > model.ReputationReasonMaxLen {
		return model.ErrInvalidArgument("reputation reason must be %d-%d characters", model.ReputationReasonMinLen, model.ReputationReasonMaxLen)
	}
	return e.exec(ctx, "updateReputation", func(tx store.Tx) (string, error) {
		community, err := e.loadCommunity(ctx, tx, p.Community)
		if err != nil {
			return "", err
		}
		if err := requireAdmin(community, caller); err != nil {
			return "", err
		}
		member, err := e.loadMember(ctx, tx, community, p.Member)
		if err != nil {
			return "", err
		}
		member.ReputationScore += p.Delta
		if err := tx.PutMember(ctx, member); err != nil {
			return "", fmt.Errorf("persist member: %w", err)
		}
		e.logger.Info("reputation adjusted",
			"community", community.Name, "member", p.Member,
			"delta", p.Delta, "score", member.ReputationScore, "reason", p.Reason)
		return member.Address, nil
	})
}

// loadConnection resolves the connection between the caller and another
// wallet in one community, returning both member records alongside.
func (e *Engine) loadConnection(ctx context.Context, tx store.Tx, communityName, callerWallet, otherWallet string) (*model.Connection, *model.Member, *model.Member, error) {
	community, err := e.loadCommunity(ctx, tx, communityName)
	if err != nil {
		return nil, nil, nil, err
	}
	self, err := e.loadMember(ctx, tx, community, callerWallet)
	if err != nil {
		return nil, nil, nil, err
	}
	other, err := e.loadMember(ctx, tx, community, otherWallet)
	if err != nil {
		return nil, nil, nil, err
	}
	conn, err := tx.GetConnection(ctx, e.addr.Connection(community.Address, self.Address, other.Address))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load connection: %w", err)
	}
	if conn == nil {
		return nil, nil, nil, model.ErrNotFound("no connection between %s and %s", callerWallet, otherWallet)
	}
	return conn, self, other, nil
}
