package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/pritamp20/socialchain-ledger/internal/domain/model"
)

// handleGetRecord resolves a record from its namespace and logical key
// tuple. Derivation is pure, so no directory lookup happens; a missing
// record is a plain 404.
func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	namespace := r.PathValue("namespace")
	q := r.URL.Query()
	ctx := r.Context()
	d := s.engine.Deriver()
	st := s.engine.Store()

	communityAddr := func() string {
		return d.Community(q.Get("community"))
	}

	var (
		resp  any
		found bool
		err   error
	)

	switch namespace {
	case "community":
		addr := orDerived(q.Get("address"), func() string { return d.Community(q.Get("name")) })
		var c *model.Community
		if c, err = st.GetCommunity(ctx, addr); c != nil {
			resp, found = communityResponseFrom(c), true
		}
	case "token_mint":
		addr := orDerived(q.Get("address"), func() string { return d.TokenMint(q.Get("community")) })
		var tm *model.TokenMint
		if tm, err = st.GetTokenMint(ctx, addr); tm != nil {
			resp, found = tokenMintResponseFrom(tm), true
		}
	case "member":
		addr := orDerived(q.Get("address"), func() string { return d.Member(communityAddr(), q.Get("wallet")) })
		var m *model.Member
		if m, err = st.GetMember(ctx, addr); m != nil {
			resp, found = memberResponseFrom(m), true
		}
	case "proposal":
		addr := orDerived(q.Get("address"), func() string { return d.Proposal(communityAddr(), q.Get("title")) })
		var p *model.Proposal
		if p, err = st.GetProposal(ctx, addr); p != nil {
			out := proposalResponseFrom(p)
			out.EffectiveStatus = string(p.EffectiveStatus(time.Now()))
			resp, found = out, true
		}
	case "vote":
		addr := orDerived(q.Get("address"), func() string {
			return d.Vote(d.Proposal(communityAddr(), q.Get("title")), q.Get("voter"))
		})
		var v *model.Vote
		if v, err = st.GetVote(ctx, addr); v != nil {
			resp, found = voteResponseFrom(v), true
		}
	case "nfc_card":
		addr := orDerived(q.Get("address"), func() string { return d.NfcCard(communityAddr(), q.Get("card_id")) })
		var card *model.NfcCard
		if card, err = st.GetNfcCard(ctx, addr); card != nil {
			resp, found = nfcCardResponseFrom(card), true
		}
	case "connection":
		addr := orDerived(q.Get("address"), func() string {
			ca := communityAddr()
			return d.Connection(ca, d.Member(ca, q.Get("a")), d.Member(ca, q.Get("b")))
		})
		var c *model.Connection
		if c, err = st.GetConnection(ctx, addr); c != nil {
			resp, found = connectionResponseFrom(c), true
		}
	case "payment_request":
		var pr *model.PaymentRequest
		if pr, err = st.GetPaymentRequest(ctx, q.Get("address")); pr != nil {
			out := paymentRequestResponseFrom(pr)
			out.EffectiveStatus = string(pr.EffectiveStatus(time.Now()))
			resp, found = out, true
		}
	case "event":
		addr := orDerived(q.Get("address"), func() string { return d.Event(communityAddr(), q.Get("name")) })
		var e *model.Event
		if e, err = st.GetEvent(ctx, addr); e != nil {
			resp, found = eventResponseFrom(e), true
		}
	case "attendance":
		addr := orDerived(q.Get("address"), func() string {
			ca := communityAddr()
			return d.Attendance(d.Event(ca, q.Get("event")), d.Member(ca, q.Get("wallet")))
		})
		var a *model.Attendance
		if a, err = st.GetAttendance(ctx, addr); a != nil {
			resp, found = attendanceResponseFrom(a), true
		}
	case "balance":
		mint := orDerived(q.Get("mint"), func() string { return d.TokenMint(q.Get("community")) })
		holder := q.Get("holder")
		if holder == "treasury" {
			holder = d.Treasury(communityAddr())
		}
		var amount uint64
		if amount, err = st.GetBalance(ctx, mint, holder); err == nil {
			resp, found = balanceResponse{Mint: mint, Holder: holder, Amount: amount}, true
		}
	case "token_entries":
		mint := orDerived(q.Get("mint"), func() string { return d.TokenMint(q.Get("community")) })
		limit, _ := strconv.Atoi(q.Get("limit"))
		var entries []model.TokenEntry
		if entries, err = st.ListTokenEntries(ctx, mint, limit); err == nil {
			out := make([]tokenEntryResponse, len(entries))
			for i := range entries {
				out[i] = tokenEntryResponseFrom(&entries[i])
			}
			resp, found = out, true
		}
	default:
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown namespace " + namespace})
		return
	}

	if err != nil {
		s.observeRead(namespace, false)
		s.writeEngineError(w, err)
		return
	}
	s.observeRead(namespace, found)
	if !found {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "record not found", Kind: string(model.KindNotFound)})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleDeriveAddress exposes pure address derivation so clients can
// precompute record locations.
func (s *Server) handleDeriveAddress(w http.ResponseWriter, r *http.Request) {
	namespace := r.PathValue("namespace")
	q := r.URL.Query()
	d := s.engine.Deriver()

	communityAddr := func() string { return d.Community(q.Get("community")) }

	var addr string
	switch namespace {
	case "community":
		addr = d.Community(q.Get("name"))
	case "token_mint":
		addr = d.TokenMint(q.Get("community"))
	case "collection_mint":
		addr = d.CollectionMint(q.Get("community"))
	case "treasury":
		addr = d.Treasury(communityAddr())
	case "member":
		addr = d.Member(communityAddr(), q.Get("wallet"))
	case "proposal":
		addr = d.Proposal(communityAddr(), q.Get("title"))
	case "vote":
		addr = d.Vote(d.Proposal(communityAddr(), q.Get("title")), q.Get("voter"))
	case "event":
		addr = d.Event(communityAddr(), q.Get("name"))
	case "nfc_card":
		addr = d.NfcCard(communityAddr(), q.Get("card_id"))
	case "connection":
		ca := communityAddr()
		addr = d.Connection(ca, d.Member(ca, q.Get("a")), d.Member(ca, q.Get("b")))
	default:
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown namespace " + namespace})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"namespace": namespace, "address": addr})
}

func orDerived(address string, derive func() string) string {
	if address != "" {
		return address
	}
	return derive()
}
