package engine

import (
	"context"
	"fmt"

	"github.com/pritamp20/socialchain-ledger/internal/domain/model"
	"github.com/pritamp20/socialchain-ledger/internal/store"
)

// CreateNfcCard binds a physical card to the calling member. One card
// per member, one member per card.
func (e *Engine) CreateNfcCard(ctx context.Context, caller, communityName, cardID, metadataURI string) (*model.NfcCard, error) {
	if err := model.ValidateCardID(cardID); err != nil {
		return nil, err
	}
	if err := model.ValidateMetadataURI(metadataURI); err != nil {
		return nil, err
	}
	var out *model.NfcCard
	err := e.exec(ctx, "createNfcCard", func(tx store.Tx) (string, error) {
		community, err := e.loadCommunity(ctx, tx, communityName)
		if err != nil {
			return "", err
		}
		member, err := e.loadMember(ctx, tx, community, caller)
		if err != nil {
			return "", err
		}
		if member.NfcCard != nil {
			return "", model.ErrInvalidState("member %s already holds card %s", member.Wallet, *member.NfcCard)
		}

		addr := e.addr.NfcCard(community.Address, cardID)
		existing, err := tx.GetNfcCard(ctx, addr)
		if err != nil {
			return "", fmt.Errorf("check card: %w", err)
		}
		if existing != nil {
			return "", model.ErrDuplicate("card %s already registered", cardID)
		}

		card := &model.NfcCard{
			Address:     addr,
			Community:   community.Address,
			CardID:      cardID,
			Owner:       member.Address,
			AssetID:     e.addr.NfcAsset(community.CollectionMint, cardID),
			IsActive:    true,
			MetadataURI: metadataURI,
			CreatedAt:   e.nowFn(),
		}
		if err := tx.PutNfcCard(ctx, card); err != nil {
			return "", fmt.Errorf("persist card: %w", err)
		}

		member.NfcCard = &addr
		if err := tx.PutMember(ctx, member); err != nil {
			return "", fmt.Errorf("persist member: %w", err)
		}
		out = card
		return addr, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AuthenticateNfc records a successful tap. Only the owning member may
// authenticate, and only while the card is active.
func (e *Engine) AuthenticateNfc(ctx context.Context, caller, communityName, cardID string) error {
	return e.exec(ctx, "authenticateNfc", func(tx store.Tx) (string, error) {
		community, err := e.loadCommunity(ctx, tx, communityName)
		if err != nil {
			return "", err
		}
		member, err := e.loadMember(ctx, tx, community, caller)
		if err != nil {
			return "", err
		}
		card, err := e.loadNfcCard(ctx, tx, community, cardID)
		if err != nil {
			return "", err
		}
		if card.Owner != member.Address {
			return "", model.ErrUnauthorized("card %s is not held by %s", cardID, caller)
		}
		if !card.IsActive {
			return "", model.ErrInvalidState("card %s is revoked", cardID)
		}

		card.TotalUses++
		card.LastUsedAt = e.nowFn()
		if err := tx.PutNfcCard(ctx, card); err != nil {
			return "", fmt.Errorf("persist card: %w", err)
		}
		return card.Address, nil
	})
}

// TransferNfcCard hands an active card to another member of the same
// community. The recipient must not already hold a card.
func (e *Engine) TransferNfcCard(ctx context.Context, caller, communityName, cardID, newOwnerWallet string) error {
	return e.exec(ctx, "transferNfcCard", func(tx store.Tx) (string, error) {
		community, err := e.loadCommunity(ctx, tx, communityName)
		if err != nil {
			return "", err
		}
		owner, err := e.loadMember(ctx, tx, community, caller)
		if err != nil {
			return "", err
		}
		card, err := e.loadNfcCard(ctx, tx, community, cardID)
		if err != nil {
			return "", err
		}
		if card.Owner != owner.Address {
			return "", model.ErrUnauthorized("card %s is not held by %s", cardID, caller)
		}
		if !card.IsActive {
			return "", model.ErrInvalidState("card %s is revoked", cardID)
		}
		newOwner, err := e.loadMember(ctx, tx, community, newOwnerWallet)
		if err != nil {
			return "", err
		}
		if newOwner.NfcCard != nil {
			return "", model.ErrInvalidState("member %s already holds card %s", newOwner.Wallet, *newOwner.NfcCard)
		}

		card.Owner = newOwner.Address
		if err := tx.PutNfcCard(ctx, card); err != nil {
			return "", fmt.Errorf("persist card: %w", err)
		}
		owner.NfcCard = nil
		newOwner.NfcCard = &card.Address
		if err := tx.PutMember(ctx, owner); err != nil {
			return "", fmt.Errorf("persist previous owner: %w", err)
		}
		if err := tx.PutMember(ctx, newOwner); err != nil {
			return "", fmt.Errorf("persist new owner: %w", err)
		}
		return card.Address, nil
	})
}

// RevokeNfcCard deactivates a card for good. The owner or the community
// admin may revoke. The owner's card slot frees up.
func (e *Engine) RevokeNfcCard(ctx context.Context, caller, communityName, cardID string) error {
	return e.exec(ctx, "revokeNfcCard", func(tx store.Tx) (string, error) {
		community, err := e.loadCommunity(ctx, tx, communityName)
		if err != nil {
			return "", err
		}
		card, err := e.loadNfcCard(ctx, tx, community, cardID)
		if err != nil {
			return "", err
		}
		owner, err := tx.GetMember(ctx, card.Owner)
		if err != nil {
			return "", fmt.Errorf("load owner: %w", err)
		}
		if owner == nil {
			return "", model.ErrNotFound("owner of card %s not found", cardID)
		}
		if caller != owner.Wallet && caller != community.Admin {
			return "", model.ErrUnauthorized("%s may not revoke card %s", caller, cardID)
		}
		if !card.IsActive {
			return "", model.ErrInvalidState("card %s is already revoked", cardID)
		}

		card.IsActive = false
		if err := tx.PutNfcCard(ctx, card); err != nil {
			return "", fmt.Errorf("persist card: %w", err)
		}
		owner.NfcCard = nil
		if err := tx.PutMember(ctx, owner); err != nil {
			return "", fmt.Errorf("persist owner: %w", err)
		}
		return card.Address, nil
	})
}

func (e *Engine) loadNfcCard(ctx context.Context, tx store.Tx, community *model.Community, cardID string) (*model.NfcCard, error) {
	card, err := tx.GetNfcCard(ctx, e.addr.NfcCard(community.Address, cardID))
	if err != nil {
		return nil, fmt.Errorf("load card: %w", err)
	}
	if card == nil {
		return nil, model.ErrNotFound("card %s not found in %q", cardID, community.Name)
	}
	return card, nil
}
