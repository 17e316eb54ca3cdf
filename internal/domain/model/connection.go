package model

import "time"

type ConnectionKind string

const (
	ConnectionFriend    ConnectionKind = "friend"
	ConnectionColleague ConnectionKind = "colleague"
	ConnectionVendor    ConnectionKind = "vendor"
	ConnectionCustom    ConnectionKind = "custom"
)

func (k ConnectionKind) Valid() bool {
	switch k {
	case ConnectionFriend, ConnectionColleague, ConnectionVendor, ConnectionCustom:
		return true
	}
	return false
}

type InteractionKind string

const (
	InteractionPayment       InteractionKind = "payment"
	InteractionEventMeetup   InteractionKind = "event_meetup"
	InteractionMessage       InteractionKind = "message"
	InteractionCollaboration InteractionKind = "collaboration"
)

func (k InteractionKind) Valid() bool {
	switch k {
	case InteractionPayment, InteractionEventMeetup, InteractionMessage, InteractionCollaboration:
		return true
	}
	return false
}

// Connection links two members of one community. The pair is unordered
// for lookup but stored in canonical order so creation in either
// direction derives the same address and collides.
type Connection struct {
	Address           string         `db:"address"`
	Community         string         `db:"community"`
	MemberA           string         `db:"member_a"`
	MemberB           string         `db:"member_b"`
	Kind              ConnectionKind `db:"kind"`
	Metadata          *string        `db:"metadata"`
	InteractionCount  uint32         `db:"interaction_count"`
	LastInteractionAt time.Time      `db:"last_interaction_at"`
	CreatedAt         time.Time      `db:"created_at"`
}

const ConnectionMetadataMaxLen = 200

// CanonicalPair orders two member addresses so that (a,b) and (b,a)
// name the same connection.
func CanonicalPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

func ValidateConnectionMetadata(metadata *string) error {
	if metadata != nil && len(*metadata) > ConnectionMetadataMaxLen {
		return ErrInvalidArgument("connection metadata exceeds %d characters", ConnectionMetadataMaxLen)
	}
	return nil
}

// Involves reports whether the member address is one side of the pair.
func (c *Connection) Involves(member string) bool {
	return c.MemberA == member || c.MemberB == member
}
