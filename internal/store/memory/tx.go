package memory

import (
	"context"

	"github.com/pritamp20/socialchain-ledger/internal/domain/model"
	"github.com/pritamp20/socialchain-ledger/internal/store"
)

// tx stages writes against the base maps. Reads see staged state first
// so a transition observes its own earlier writes. The store mutex is
// held for the whole transaction, so base state cannot shift under it.
type tx struct {
	s *Store

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

	deletedConnections map[string]bool
}

var _ store.Tx = (*tx)(nil)

func newTx(s *Store) *tx {
	return &tx{
		s:                  s,
		communities:        make(map[string]*model.Community),
		members:            make(map[string]*model.Member),
		proposals:          make(map[string]*model.Proposal),
		votes:              make(map[string]*model.Vote),
		mints:              make(map[string]*model.TokenMint),
		cards:              make(map[string]*model.NfcCard),
		connections:        make(map[string]*model.Connection),
		paymentRequests:    make(map[string]*model.PaymentRequest),
		events:             make(map[string]*model.Event),
		attendances:        make(map[string]*model.Attendance),
		balances:           make(map[balanceKey]uint64),
		deletedConnections: make(map[string]bool),
	}
}

func (t *tx) apply() {
	for k, v := range t.communities {
		t.s.communities[k] = v
	}
	for k, v := range t.members {
		t.s.members[k] = v
	}
	for k, v := range t.proposals {
		t.s.proposals[k] = v
	}
	for k, v := range t.votes {
		t.s.votes[k] = v
	}
	for k, v := range t.mints {
		t.s.mints[k] = v
	}
	for k, v := range t.cards {
		t.s.cards[k] = v
	}
	for k := range t.deletedConnections {
		delete(t.s.connections, k)
	}
	for k, v := range t.connections {
		t.s.connections[k] = v
	}
	for k, v := range t.paymentRequests {
		t.s.paymentRequests[k] = v
	}
	for k, v := range t.events {
		t.s.events[k] = v
	}
	for k, v := range t.attendances {
		t.s.attendances[k] = v
	}
	for k, v := range t.balances {
		t.s.balances[k] = v
	}
	t.s.entries = append(t.s.entries, t.entries...)
}

func (t *tx) GetCommunity(ctx context.Context, address string) (*model.Community, error) {
	if c, ok := t.communities[address]; ok {
		return cloneCommunity(c), nil
	}
	return cloneCommunity(t.s.communities[address]), nil
}

func (t *tx) GetMember(ctx context.Context, address string) (*model.Member, error) {
	if m, ok := t.members[address]; ok {
		return cloneMember(m), nil
	}
	return cloneMember(t.s.members[address]), nil
}

func (t *tx) GetProposal(ctx context.Context, address string) (*model.Proposal, error) {
	if p, ok := t.proposals[address]; ok {
		return cloneProposal(p), nil
	}
	return cloneProposal(t.s.proposals[address]), nil
}

func (t *tx) GetVote(ctx context.Context, address string) (*model.Vote, error) {
	if v, ok := t.votes[address]; ok {
		return cloneVote(v), nil
	}
	return cloneVote(t.s.votes[address]), nil
}

func (t *tx) GetTokenMint(ctx context.Context, address string) (*model.TokenMint, error) {
	if tm, ok := t.mints[address]; ok {
		return cloneTokenMint(tm), nil
	}
	return cloneTokenMint(t.s.mints[address]), nil
}

func (t *tx) GetNfcCard(ctx context.Context, address string) (*model.NfcCard, error) {
	if c, ok := t.cards[address]; ok {
		return cloneNfcCard(c), nil
	}
	return cloneNfcCard(t.s.cards[address]), nil
}

func (t *tx) GetConnection(ctx context.Context, address string) (*model.Connection, error) {
	if t.deletedConnections[address] {
		return nil, nil
	}
	if c, ok := t.connections[address]; ok {
		return cloneConnection(c), nil
	}
	return cloneConnection(t.s.connections[address]), nil
}

func (t *tx) GetPaymentRequest(ctx context.Context, address string) (*model.PaymentRequest, error) {
	if pr, ok := t.paymentRequests[address]; ok {
		return clonePaymentRequest(pr), nil
	}
	return clonePaymentRequest(t.s.paymentRequests[address]), nil
}

func (t *tx) GetEvent(ctx context.Context, address string) (*model.Event, error) {
	if e, ok := t.events[address]; ok {
		return cloneEvent(e), nil
	}
	return cloneEvent(t.s.events[address]), nil
}

func (t *tx) GetAttendance(ctx context.Context, address string) (*model.Attendance, error) {
	if a, ok := t.attendances[address]; ok {
		return cloneAttendance(a), nil
	}
	return cloneAttendance(t.s.attendances[address]), nil
}

func (t *tx) GetBalance(ctx context.Context, mint, holder string) (uint64, error) {
	if amt, ok := t.balances[balanceKey{mint, holder}]; ok {
		return amt, nil
	}
	return t.s.balances[balanceKey{mint, holder}], nil
}

func (t *tx) ListTokenEntries(ctx context.Context, mint string, limit int) ([]model.TokenEntry, error) {
	// This transaction's own appends are newest, then the base journal
	// backwards. The store mutex is already held by WithinTx, so the
	// base slice is read directly.
	var out []model.TokenEntry
	for i := len(t.entries) - 1; i >= 0; i-- {
		if t.entries[i].Mint == mint {
			out = append(out, t.entries[i])
		}
	}
	for i := len(t.s.entries) - 1; i >= 0; i-- {
		if t.s.entries[i].Mint == mint {
			out = append(out, t.s.entries[i])
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (t *tx) PutCommunity(ctx context.Context, c *model.Community) error {
	t.communities[c.Address] = cloneCommunity(c)
	return nil
}

func (t *tx) PutMember(ctx context.Context, m *model.Member) error {
	t.members[m.Address] = cloneMember(m)
	return nil
}

func (t *tx) PutProposal(ctx context.Context, p *model.Proposal) error {
	t.proposals[p.Address] = cloneProposal(p)
	return nil
}

func (t *tx) PutVote(ctx context.Context, v *model.Vote) error {
	t.votes[v.Address] = cloneVote(v)
	return nil
}

func (t *tx) PutTokenMint(ctx context.Context, tm *model.TokenMint) error {
	t.mints[tm.Address] = cloneTokenMint(tm)
	return nil
}

func (t *tx) PutNfcCard(ctx context.Context, c *model.NfcCard) error {
	t.cards[c.Address] = cloneNfcCard(c)
	return nil
}

func (t *tx) PutConnection(ctx context.Context, c *model.Connection) error {
	delete(t.deletedConnections, c.Address)
	t.connections[c.Address] = cloneConnection(c)
	return nil
}

func (t *tx) PutPaymentRequest(ctx context.Context, pr *model.PaymentRequest) error {
	t.paymentRequests[pr.Address] = clonePaymentRequest(pr)
	return nil
}

func (t *tx) PutEvent(ctx context.Context, e *model.Event) error {
	t.events[e.Address] = cloneEvent(e)
	return nil
}

func (t *tx) PutAttendance(ctx context.Context, a *model.Attendance) error {
	t.attendances[a.Address] = cloneAttendance(a)
	return nil
}

func (t *tx) DeleteConnection(ctx context.Context, address string) error {
	delete(t.connections, address)
	t.deletedConnections[address] = true
	return nil
}

func (t *tx) SetBalance(ctx context.Context, mint, holder string, amount uint64) error {
	t.balances[balanceKey{mint, holder}] = amount
	return nil
}

func (t *tx) AppendTokenEntry(ctx context.Context, entry *model.TokenEntry) error {
	t.entries = append(t.entries, *entry)
	return nil
}
