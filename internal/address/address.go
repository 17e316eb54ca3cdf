// Package address implements the ledger's content-addressed identifier
// scheme. Every record address is a pure function of a namespace tag and
// the record's logical key tuple, so callers can locate any record
// without a directory lookup and creation collisions surface as
// duplicate-address conflicts.
package address

import (
	"crypto/sha256"
	"strings"

	"github.com/mr-tron/base58"

	"github.com/pritamp20/socialchain-ledger/internal/cache"
)

// Namespace tags. The tuple layout per namespace is fixed; transport
// layers must reproduce it exactly.
const (
	NamespaceCommunity      = "community"       // (name)
	NamespaceTokenMint      = "token_mint"      // (community name)
	NamespaceCollectionMint = "collection_mint" // (community name)
	NamespaceTreasury       = "treasury"        // (community address)
	NamespaceMember         = "member"          // (community address, wallet)
	NamespaceProposal       = "proposal"        // (community address, title)
	NamespaceVote           = "vote"            // (proposal address, voter wallet)
	NamespaceEvent          = "event"           // (community address, event name)
	NamespaceAttendance     = "attendance"      // (event address, member address)
	NamespaceConnection     = "connection"      // (community address, member A, member B) canonical order
	NamespacePaymentRequest = "payment_request" // (community address, from member, to member, unix timestamp)
	NamespaceNfcCard        = "nfc_card"        // (community address, card id)
	NamespaceNfcAsset       = "nfc_asset"       // (collection mint address, card id)
)

// sep keeps tuple parts from running together: ("ab","c") and ("a","bc")
// must not derive the same address.
const sep = "\x00"

// Deriver computes derived addresses, memoizing through a bounded LRU.
// Derivation is pure, so cached entries never go stale.
type Deriver struct {
	memo *cache.LRU[string, string]
}

func NewDeriver(cacheSize int) *Deriver {
	return &Deriver{memo: cache.NewLRU[string, string](cacheSize)}
}

// Derive returns the address for (namespace, parts...):
// base58(sha256(namespace || 0x00 || part1 || 0x00 || ...)).
func (d *Deriver) Derive(namespace string, parts ...string) string {
	key := namespace + sep + strings.Join(parts, sep)
	if addr, ok := d.memo.Get(key); ok {
		return addr
	}
	sum := sha256.Sum256([]byte(key))
	addr := base58.Encode(sum[:])
	d.memo.Put(key, addr)
	return addr
}

func (d *Deriver) Community(name string) string {
	return d.Derive(NamespaceCommunity, name)
}

func (d *Deriver) TokenMint(communityName string) string {
	return d.Derive(NamespaceTokenMint, communityName)
}

func (d *Deriver) CollectionMint(communityName string) string {
	return d.Derive(NamespaceCollectionMint, communityName)
}

func (d *Deriver) Treasury(community string) string {
	return d.Derive(NamespaceTreasury, community)
}

func (d *Deriver) Member(community, wallet string) string {
	return d.Derive(NamespaceMember, community, wallet)
}

func (d *Deriver) Proposal(community, title string) string {
	return d.Derive(NamespaceProposal, community, title)
}

func (d *Deriver) Vote(proposal, voter string) string {
	return d.Derive(NamespaceVote, proposal, voter)
}

func (d *Deriver) Event(community, name string) string {
	return d.Derive(NamespaceEvent, community, name)
}

func (d *Deriver) Attendance(event, member string) string {
	return d.Derive(NamespaceAttendance, event, member)
}

// Connection canonicalizes the pair so either argument order derives
// the same address.
func (d *Deriver) Connection(community, memberA, memberB string) string {
	if memberB < memberA {
		memberA, memberB = memberB, memberA
	}
	return d.Derive(NamespaceConnection, community, memberA, memberB)
}

func (d *Deriver) PaymentRequest(community, fromMember, toMember, timestamp string) string {
	return d.Derive(NamespacePaymentRequest, community, fromMember, toMember, timestamp)
}

func (d *Deriver) NfcCard(community, cardID string) string {
	return d.Derive(NamespaceNfcCard, community, cardID)
}

// NfcAsset identifies the card's collectible under the community
// collection mint.
func (d *Deriver) NfcAsset(collectionMint, cardID string) string {
	return d.Derive(NamespaceNfcAsset, collectionMint, cardID)
}
