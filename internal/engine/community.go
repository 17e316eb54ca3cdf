package engine

import (
	"context"
	"fmt"

	"github.com/pritamp20/socialchain-ledger/internal/domain/model"
	"github.com/pritamp20/socialchain-ledger/internal/store"
)

type InitializeCommunityParams struct {
	Name                string
	TokenSymbol         string
	TokenDecimals       uint8
	GovernanceThreshold uint8
}

// InitializeCommunity creates a community, its token mint, and its
// treasury shell in one transition. The caller becomes admin. Exactly
// one community may exist per name.
func (e *Engine) InitializeCommunity(ctx context.Context, caller string, p InitializeCommunityParams) (*model.Community, error) {
	if len(p.Name) < model.CommunityNameMinLen || len(p.Name) > model.CommunityNameMaxLen {
		return nil, model.ErrInvalidArgument("community name must be %d-%d characters", model.CommunityNameMinLen, model.CommunityNameMaxLen)
	}
	if len(p.TokenSymbol) < model.TokenSymbolMinLen || len(p.TokenSymbol) > model.TokenSymbolMaxLen {
		return nil, model.ErrInvalidArgument("token symbol must be %d-%d characters", model.TokenSymbolMinLen, model.TokenSymbolMaxLen)
	}
	if p.TokenDecimals > model.TokenDecimalsMax {
		return nil, model.ErrInvalidConfig("token decimals %d exceeds max %d", p.TokenDecimals, model.TokenDecimalsMax)
	}
	if err := model.ValidateGovernanceThreshold(p.GovernanceThreshold); err != nil {
		return nil, err
	}

	var out *model.Community
	err := e.exec(ctx, "initializeCommunity", func(tx store.Tx) (string, error) {
		communityAddr := e.addr.Community(p.Name)
		existing, err := tx.GetCommunity(ctx, communityAddr)
		if err != nil {
			return "", fmt.Errorf("check community: %w", err)
		}
		if existing != nil {
			return "", model.ErrDuplicate("community %q already exists", p.Name)
		}

		now := e.nowFn()
		mintAddr := e.addr.TokenMint(p.Name)
		community := &model.Community{
			Address:             communityAddr,
			Name:                p.Name,
			Admin:               caller,
			TokenMint:           mintAddr,
			TokenSymbol:         p.TokenSymbol,
			TokenDecimals:       p.TokenDecimals,
			GovernanceThreshold: p.GovernanceThreshold,
			TransferFeeBps:      0,
			MemberCount:         0,
			Treasury:            e.addr.Treasury(communityAddr),
			CollectionMint:      e.addr.CollectionMint(p.Name),
			CreatedAt:           now,
		}
		if err := tx.PutCommunity(ctx, community); err != nil {
			return "", fmt.Errorf("persist community: %w", err)
		}

		mint := &model.TokenMint{
			Address:   mintAddr,
			Community: communityAddr,
			Symbol:    p.TokenSymbol,
			Decimals:  p.TokenDecimals,
			Supply:    0,
			CreatedAt: now,
		}
		if err := tx.PutTokenMint(ctx, mint); err != nil {
			return "", fmt.Errorf("persist token mint: %w", err)
		}

		out = community
		return communityAddr, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type UpdateCommunityConfigParams struct {
	Community    string
	NewAdmin     *string
	NewThreshold *uint8
	NewFeeBps    *uint16
}

// UpdateCommunityConfig changes admin, threshold, or fee. Absent fields
// keep their current value. Admin-signed only.
func (e *Engine) UpdateCommunityConfig(ctx context.Context, caller string, p UpdateCommunityConfigParams) (*model.Community, error) {
	if p.NewThreshold != nil {
		if err := model.ValidateGovernanceThreshold(*p.NewThreshold); err != nil {
			return nil, err
		}
	}
	if p.NewFeeBps != nil {
		if err := model.ValidateTransferFeeBps(*p.NewFeeBps); err != nil {
			return nil, err
		}
	}

	var out *model.Community
	err := e.exec(ctx, "updateCommunityConfig", func(tx store.Tx) (string, error) {
		community, err := e.loadCommunity(ctx, tx, p.Community)
		if err != nil {
			return "", err
		}
		if err := requireAdmin(community, caller); err != nil {
			return "", err
		}

		if p.NewAdmin != nil {
			community.Admin = *p.NewAdmin
		}
		if p.NewThreshold != nil {
			community.GovernanceThreshold = *p.NewThreshold
		}
		if p.NewFeeBps != nil {
			community.TransferFeeBps = *p.NewFeeBps
		}

		if err := tx.PutCommunity(ctx, community); err != nil {
			return "", fmt.Errorf("persist community: %w", err)
		}
		out = community
		return community.Address, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
