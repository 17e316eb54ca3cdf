// Package memory is an in-process implementation of the store contract,
// used by unit tests and dev mode. Transactions stage copies and apply
// them on commit under one mutex, so a failed transition leaves no
// partial mutation behind, matching the postgres backend's semantics.
package memory

import (
	"context"
	"sync"

	"github.com/pritamp20/socialchain-ledger/internal/domain/model"
	"github.com/pritamp20/socialchain-ledger/internal/store"
)

type Store struct {
	mu sync.Mutex

	communities     map[string]*model.Community
	members         map[string]*model.Member
	proposals       map[string]*model.Proposal
	votes           map[string]*model.Vote
	mints           map[string]*model.TokenMint
	cards           map[string]*model.NfcCard
	connections     map[string]*model.Connection
	paymentRequests map[string]*model.PaymentRequest
	events          map[string]*model.Event
	attendances     map[string]*model.Attendance
	balances        map[balanceKey]uint64
	entries         []model.TokenEntry
}

type balanceKey struct {
	mint   string
	holder string
}

func New() *Store {
	return &Store{
		communities:     make(map[string]*model.Community),
		members:         make(map[string]*model.Member),
		proposals:       make(map[string]*model.Proposal),
		votes:           make(map[string]*model.Vote),
		mints:           make(map[string]*model.TokenMint),
		cards:           make(map[string]*model.NfcCard),
		connections:     make(map[string]*model.Connection),
		paymentRequests: make(map[string]*model.PaymentRequest),
		events:          make(map[string]*model.Event),
		attendances:     make(map[string]*model.Attendance),
		balances:        make(map[balanceKey]uint64),
	}
}

var _ store.Store = (*Store)(nil)

// WithinTx serializes all transitions behind the store mutex. fn's
// writes stage into the Tx and apply only when fn returns nil.
func (s *Store) WithinTx(ctx context.Context, fn func(tx store.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := newTx(s)
	if err := fn(tx); err != nil {
		return err
	}
	tx.apply()
	return nil
}

func (s *Store) GetCommunity(ctx context.Context, address string) (*model.Community, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneCommunity(s.communities[address]), nil
}

func (s *Store) GetMember(ctx context.Context, address string) (*model.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneMember(s.members[address]), nil
}

func (s *Store) GetProposal(ctx context.Context, address string) (*model.Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneProposal(s.proposals[address]), nil
}

func (s *Store) GetVote(ctx context.Context, address string) (*model.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneVote(s.votes[address]), nil
}

func (s *Store) GetTokenMint(ctx context.Context, address string) (*model.TokenMint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTokenMint(s.mints[address]), nil
}

func (s *Store) GetNfcCard(ctx context.Context, address string) (*model.NfcCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneNfcCard(s.cards[address]), nil
}

func (s *Store) GetConnection(ctx context.Context, address string) (*model.Connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneConnection(s.connections[address]), nil
}

func (s *Store) GetPaymentRequest(ctx context.Context, address string) (*model.PaymentRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonePaymentRequest(s.paymentRequests[address]), nil
}

func (s *Store) GetEvent(ctx context.Context, address string) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneEvent(s.events[address]), nil
}

func (s *Store) GetAttendance(ctx context.Context, address string) (*model.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAttendance(s.attendances[address]), nil
}

func (s *Store) GetBalance(ctx context.Context, mint, holder string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balances[balanceKey{mint, holder}], nil
}

// ListTokenEntries walks the journal backwards so ties on CreatedAt
// still come out newest-first.
func (s *Store) ListTokenEntries(ctx context.Context, mint string, limit int) ([]model.TokenEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.TokenEntry
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].Mint != mint {
			continue
		}
		out = append(out, s.entries[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// TotalHeld sums every balance of a mint. Test helper for the supply
// conservation invariant.
func (s *Store) TotalHeld(mint string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total uint64
	for k, v := range s.balances {
		if k.mint == mint {
			total += v
		}
	}
	return total
}
