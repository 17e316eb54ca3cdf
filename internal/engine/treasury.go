package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pritamp20/socialchain-ledger/internal/domain/model"
	"github.com/pritamp20/socialchain-ledger/internal/metrics"
	"github.com/pritamp20/socialchain-ledger/internal/store"
)

// CreateCommunityToken performs the one-time initial mint into treasury
// custody. Admin-signed only.
func (e *Engine) CreateCommunityToken(ctx context.Context, caller, communityName string, initialSupply uint64) (*model.TokenMint, error) {
	var out *model.TokenMint
	err := e.exec(ctx, "createCommunityToken", func(tx store.Tx) (string, error) {
		community, err := e.loadCommunity(ctx, tx, communityName)
		if err != nil {
			return "", err
		}
		if err := requireAdmin(community, caller); err != nil {
			return "", err
		}

		mint, err := e.loadTokenMint(ctx, tx, community)
		if err != nil {
			return "", err
		}
		if mint.Initialized {
			return "", model.ErrInvalidState("community token for %q already created", community.Name)
		}

		mint.Initialized = true
		if initialSupply > 0 {
			if err := e.mintTo(ctx, tx, mint, community.Treasury, initialSupply, model.TokenEntryMint, community.Address); err != nil {
				return "", err
			}
		}
		if err := tx.PutTokenMint(ctx, mint); err != nil {
			return "", fmt.Errorf("persist mint: %w", err)
		}

		out = mint
		return mint.Address, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MintTokensToMember mints new supply directly to a member's wallet.
// Admin-signed only.
func (e *Engine) MintTokensToMember(ctx context.Context, caller, communityName, memberWallet string, amount uint64) error {
	if amount == 0 {
		return model.ErrInvalidArgument("mint amount must be positive")
	}
	return e.exec(ctx, "mintTokensToMember", func(tx store.Tx) (string, error) {
		community, err := e.loadCommunity(ctx, tx, communityName)
		if err != nil {
			return "", err
		}
		if err := requireAdmin(community, caller); err != nil {
			return "", err
		}
		member, err := e.loadMember(ctx, tx, community, memberWallet)
		if err != nil {
			return "", err
		}
		mint, err := e.loadTokenMint(ctx, tx, community)
		if err != nil {
			return "", err
		}

		if err := e.mintTo(ctx, tx, mint, member.Wallet, amount, model.TokenEntryMint, member.Address); err != nil {
			return "", err
		}
		if err := tx.PutTokenMint(ctx, mint); err != nil {
			return "", fmt.Errorf("persist mint: %w", err)
		}
		return mint.Address, nil
	})
}

type TransferTokensParams struct {
	Community string
	Recipient string // recipient wallet
	Amount    uint64
	Memo      string
}

// TransferTokens moves tokens between two members. The configured fee
// share goes to treasury custody, the remainder to the recipient, so
// the total debited equals exactly Amount.
func (e *Engine) TransferTokens(ctx context.Context, caller string, p TransferTokensParams) error {
	if p.Amount == 0 {
		return model.ErrInvalidArgument("transfer amount must be positive")
	}
	if p.Recipient == caller {
		return model.ErrInvalidArgument("cannot transfer to self")
	}
	if len(p.Memo) > model.TransferMemoMaxLen {
		return model.ErrInvalidArgument("memo exceeds %d characters", model.TransferMemoMaxLen)
	}
	return e.exec(ctx, "transferTokens", func(tx store.Tx) (string, error) {
		community, err := e.loadCommunity(ctx, tx, p.Community)
		if err != nil {
			return "", err
		}
		sender, err := e.loadMember(ctx, tx, community, caller)
		if err != nil {
			return "", err
		}
		recipient, err := e.loadMember(ctx, tx, community, p.Recipient)
		if err != nil {
			return "", err
		}

		fee := model.TransferFee(p.Amount, community.TransferFeeBps)

		if err := e.move(ctx, tx, community.TokenMint, sender.Wallet, recipient.Wallet, p.Amount-fee, model.TokenEntryTransfer, p.Memo, ""); err != nil {
			return "", err
		}
		if fee > 0 {
			if err := e.move(ctx, tx, community.TokenMint, sender.Wallet, community.Treasury, fee, model.TokenEntryFee, "", ""); err != nil {
				return "", err
			}
		}

		sender.TotalTransactions++
		recipient.TotalTransactions++
		if err := tx.PutMember(ctx, sender); err != nil {
			return "", fmt.Errorf("persist sender: %w", err)
		}
		if err := tx.PutMember(ctx, recipient); err != nil {
			return "", fmt.Errorf("persist recipient: %w", err)
		}
		return community.TokenMint, nil
	})
}

// DepositToTreasury moves tokens from the calling member into treasury
// custody. No fee.
func (e *Engine) DepositToTreasury(ctx context.Context, caller, communityName string, amount uint64) error {
	if amount == 0 {
		return model.ErrInvalidArgument("deposit amount must be positive")
	}
	return e.exec(ctx, "depositToTreasury", func(tx store.Tx) (string, error) {
		community, err := e.loadCommunity(ctx, tx, communityName)
		if err != nil {
			return "", err
		}
		member, err := e.loadMember(ctx, tx, community, caller)
		if err != nil {
			return "", err
		}
		if err := e.move(ctx, tx, community.TokenMint, member.Wallet, community.Treasury, amount, model.TokenEntryDeposit, "", ""); err != nil {
			return "", err
		}
		return community.Treasury, nil
	})
}

type WithdrawFromTreasuryParams struct {
	Community     string
	ProposalTitle string
	Recipient     string
	Amount        uint64
}

// WithdrawFromTreasury pays out treasury custody under an executed
// transfer proposal. The proposal address is journaled as the reference.
func (e *Engine) WithdrawFromTreasury(ctx context.Context, caller string, p WithdrawFromTreasuryParams) error {
	if p.Amount == 0 {
		return model.ErrInvalidArgument("withdrawal amount must be positive")
	}
	return e.exec(ctx, "withdrawFromTreasury", func(tx store.Tx) (string, error) {
		community, err := e.loadCommunity(ctx, tx, p.Community)
		if err != nil {
			return "", err
		}
		proposal, err := e.loadProposal(ctx, tx, community, p.ProposalTitle)
		if err != nil {
			return "", err
		}
		if proposal.Status != model.ProposalExecuted {
			return "", model.ErrInvalidState("withdrawal requires an executed proposal, %q is %s", proposal.Title, proposal.Status)
		}
		if proposal.Kind != model.ProposalKindTransfer {
			return "", model.ErrInvalidState("proposal %q is %s, not a transfer proposal", proposal.Title, proposal.Kind)
		}
		if err := e.move(ctx, tx, community.TokenMint, community.Treasury, p.Recipient, p.Amount, model.TokenEntryWithdraw, "", proposal.Address); err != nil {
			return "", err
		}
		return community.Treasury, nil
	})
}

// BurnTokens destroys tokens from the caller's balance and shrinks
// supply. Admin-signed only.
func (e *Engine) BurnTokens(ctx context.Context, caller, communityName string, amount uint64) error {
	if amount == 0 {
		return model.ErrInvalidArgument("burn amount must be positive")
	}
	return e.exec(ctx, "burnTokens", func(tx store.Tx) (string, error) {
		community, err := e.loadCommunity(ctx, tx, communityName)
		if err != nil {
			return "", err
		}
		if err := requireAdmin(community, caller); err != nil {
			return "", err
		}
		mint, err := e.loadTokenMint(ctx, tx, community)
		if err != nil {
			return "", err
		}

		balance, err := tx.GetBalance(ctx, mint.Address, caller)
		if err != nil {
			return "", fmt.Errorf("read balance: %w", err)
		}
		if balance < amount {
			return "", model.ErrInsufficientBalance("balance %d is less than burn amount %d", balance, amount)
		}

		if err := tx.SetBalance(ctx, mint.Address, caller, balance-amount); err != nil {
			return "", fmt.Errorf("debit balance: %w", err)
		}
		mint.Supply -= amount
		if err := tx.PutTokenMint(ctx, mint); err != nil {
			return "", fmt.Errorf("persist mint: %w", err)
		}
		if err := e.journal(ctx, tx, mint.Address, model.TokenEntryBurn, caller, "", amount, "", ""); err != nil {
			return "", err
		}
		return mint.Address, nil
	})
}

func (e *Engine) loadTokenMint(ctx context.Context, tx store.Tx, community *model.Community) (*model.TokenMint, error) {
	mint, err := tx.GetTokenMint(ctx, community.TokenMint)
	if err != nil {
		return nil, fmt.Errorf("load token mint: %w", err)
	}
	if mint == nil {
		return nil, model.ErrNotFound("token mint for %q not found", community.Name)
	}
	return mint, nil
}

// move debits from and credits to within the transaction, preserving
// total supply. Fails typed when the source balance is short.
func (e *Engine) move(ctx context.Context, tx store.Tx, mint, from, to string, amount uint64, kind model.TokenEntryKind, memo, reference string) error {
	if amount == 0 {
		return nil
	}
	if from == to {
		return model.ErrInvalidArgument("transfer endpoints must differ")
	}
	fromBal, err := tx.GetBalance(ctx, mint, from)
	if err != nil {
		return fmt.Errorf("read source balance: %w", err)
	}
	if fromBal < amount {
		return model.ErrInsufficientBalance("balance %d is less than required %d", fromBal, amount)
	}
	toBal, err := tx.GetBalance(ctx, mint, to)
	if err != nil {
		return fmt.Errorf("read destination balance: %w", err)
	}

	if err := tx.SetBalance(ctx, mint, from, fromBal-amount); err != nil {
		return fmt.Errorf("debit %s: %w", from, err)
	}
	if err := tx.SetBalance(ctx, mint, to, toBal+amount); err != nil {
		return fmt.Errorf("credit %s: %w", to, err)
	}
	return e.journal(ctx, tx, mint, kind, from, to, amount, memo, reference)
}

// mintTo credits new supply to a holder. Caller persists the mint row.
func (e *Engine) mintTo(ctx context.Context, tx store.Tx, mint *model.TokenMint, to string, amount uint64, kind model.TokenEntryKind, reference string) error {
	bal, err := tx.GetBalance(ctx, mint.Address, to)
	if err != nil {
		return fmt.Errorf("read balance: %w", err)
	}
	if err := tx.SetBalance(ctx, mint.Address, to, bal+amount); err != nil {
		return fmt.Errorf("credit %s: %w", to, err)
	}
	mint.Supply += amount
	return e.journal(ctx, tx, mint.Address, kind, "", to, amount, "", reference)
}

func (e *Engine) journal(ctx context.Context, tx store.Tx, mint string, kind model.TokenEntryKind, from, to string, amount uint64, memo, reference string) error {
	entry := &model.TokenEntry{
		ID:        uuid.New(),
		Mint:      mint,
		Kind:      kind,
		From:      from,
		To:        to,
		Amount:    amount,
		Memo:      memo,
		Reference: reference,
		CreatedAt: e.nowFn(),
	}
	if err := tx.AppendTokenEntry(ctx, entry); err != nil {
		return fmt.Errorf("journal %s: %w", kind, err)
	}
	metrics.TokensMoved.WithLabelValues(string(kind)).Add(float64(amount))
	return nil
}
