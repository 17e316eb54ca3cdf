package engine

import (
	"context"
	"fmt"

	"github.com/pritamp20/socialchain-ledger/internal/domain/model"
	"github.com/pritamp20/socialchain-ledger/internal/store"
)

type RegisterMemberParams struct {
	Community   string
	Name        string
	MetadataURI string
}

// RegisterMember creates the caller's member record in a community.
// One registration per wallet per community; the member count moves by
// exactly one per unique success.
func (e *Engine) RegisterMember(ctx context.Context, caller string, p RegisterMemberParams) (*model.Member, error) {
	if err := model.ValidateMemberName(p.Name); err != nil {
		return nil, err
	}
	if err := model.ValidateMetadataURI(p.MetadataURI); err != nil {
		return nil, err
	}

	var out *model.Member
	err := e.exec(ctx, "registerMember", func(tx store.Tx) (string, error) {
		community, err := e.loadCommunity(ctx, tx, p.Community)
		if err != nil {
			return "", err
		}

		memberAddr := e.addr.Member(community.Address, caller)
		existing, err := tx.GetMember(ctx, memberAddr)
		if err != nil {
			return "", fmt.Errorf("check member: %w", err)
		}
		if existing != nil {
			return "", model.ErrDuplicate("wallet %s already registered in %q", caller, community.Name)
		}

		member := &model.Member{
			Address:     memberAddr,
			Community:   community.Address,
			Wallet:      caller,
			Name:        p.Name,
			MetadataURI: p.MetadataURI,
			JoinedAt:    e.nowFn(),
		}
		if err := tx.PutMember(ctx, member); err != nil {
			return "", fmt.Errorf("persist member: %w", err)
		}

		community.MemberCount++
		if err := tx.PutCommunity(ctx, community); err != nil {
			return "", fmt.Errorf("bump member count: %w", err)
		}

		out = member
		return memberAddr, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type UpdateMemberProfileParams struct {
	Community      string
	NewName        *string
	NewMetadataURI *string
}

// UpdateMemberProfile lets a member change their own display name or
// metadata URI. Absent fields keep their current value.
func (e *Engine) UpdateMemberProfile(ctx context.Context, caller string, p UpdateMemberProfileParams) (*model.Member, error) {
	if p.NewName != nil {
		if err := model.ValidateMemberName(*p.NewName); err != nil {
			return nil, err
		}
	}
	if p.NewMetadataURI != nil {
		if err := model.ValidateMetadataURI(*p.NewMetadataURI); err != nil {
			return nil, err
		}
	}

	var out *model.Member
	err := e.exec(ctx, "updateMemberMetadata", func(tx store.Tx) (string, error) {
		community, err := e.loadCommunity(ctx, tx, p.Community)
		if err != nil {
			return "", err
		}
		member, err := e.loadMember(ctx, tx, community, caller)
		if err != nil {
			return "", err
		}

		if p.NewName != nil {
			member.Name = *p.NewName
		}
		if p.NewMetadataURI != nil {
			member.MetadataURI = *p.NewMetadataURI
		}

		if err := tx.PutMember(ctx, member); err != nil {
			return "", fmt.Errorf("persist member: %w", err)
		}
		out = member
		return member.Address, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
