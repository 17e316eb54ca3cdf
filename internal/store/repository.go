// Package store defines the persistence contract of the ledger engine.
// Records are keyed by derived address only; there is no secondary
// lookup path. Every state transition runs inside a single Tx so that
// no transition observes a partially applied mutation from another.
package store

import (
	"context"

	"github.com/pritamp20/socialchain-ledger/internal/domain/model"
)

// Reader is the fetch-by-derived-address surface. Lookups return
// (nil, nil) when the record does not exist; the engine turns that into
// a typed NotFound or, on create paths, the absence it requires.
type Reader interface {
	GetCommunity(ctx context.Context, address string) (*model.Community, error)
	GetMember(ctx context.Context, address string) (*model.Member, error)
	GetProposal(ctx context.Context, address string) (*model.Proposal, error)
	GetVote(ctx context.Context, address string) (*model.Vote, error)
	GetTokenMint(ctx context.Context, address string) (*model.TokenMint, error)
	GetNfcCard(ctx context.Context, address string) (*model.NfcCard, error)
	GetConnection(ctx context.Context, address string) (*model.Connection, error)
	GetPaymentRequest(ctx context.Context, address string) (*model.PaymentRequest, error)
	GetEvent(ctx context.Context, address string) (*model.Event, error)
	GetAttendance(ctx context.Context, address string) (*model.Attendance, error)

	// GetBalance returns the holder's balance in the mint; missing rows
	// read as zero, matching never-held semantics.
	GetBalance(ctx context.Context, mint, holder string) (uint64, error)

	// ListTokenEntries returns the most recent journal rows for a mint.
	ListTokenEntries(ctx context.Context, mint string, limit int) ([]model.TokenEntry, error)
}

// Writer mutates records. Put is insert-or-update by address; the
// engine decides create-vs-update by reading first inside the same Tx.
type Writer interface {
	PutCommunity(ctx context.Context, c *model.Community) error
	PutMember(ctx context.Context, m *model.Member) error
	PutProposal(ctx context.Context, p *model.Proposal) error
	PutVote(ctx context.Context, v *model.Vote) error
	PutTokenMint(ctx context.Context, tm *model.TokenMint) error
	PutNfcCard(ctx context.Context, card *model.NfcCard) error
	PutConnection(ctx context.Context, c *model.Connection) error
	PutPaymentRequest(ctx context.Context, pr *model.PaymentRequest) error
	PutEvent(ctx context.Context, e *model.Event) error
	PutAttendance(ctx context.Context, a *model.Attendance) error

	DeleteConnection(ctx context.Context, address string) error

	SetBalance(ctx context.Context, mint, holder string, amount uint64) error
	AppendTokenEntry(ctx context.Context, entry *model.TokenEntry) error
}

// Tx is one atomic unit. Reads within a Tx lock the rows they touch so
// concurrent transitions naming the same records serialize; the loser
// observes committed state and fails its own validation deterministically.
type Tx interface {
	Reader
	Writer
}

// Store is the engine's persistence dependency. Reads outside WithinTx
// are plain snapshots for the read API; all mutation goes through
// WithinTx and commits only if fn returns nil.
type Store interface {
	Reader
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
}
