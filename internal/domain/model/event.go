package model

import "time"

type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventActive    EventStatus = "active"
	EventClosed    EventStatus = "closed"
	EventCancelled EventStatus = "cancelled"
)

// Event is a community gathering members check in to with their NFC
// card. An optional per-attendee token reward is minted on check-in.
type Event struct {
	Address          string      `db:"address"`
	Community        string      `db:"community"`
	Organizer        string      `db:"organizer"`
	Name             string      `db:"name"`
	Description      string      `db:"description"`
	StartTime        time.Time   `db:"start_time"`
	EndTime          time.Time   `db:"end_time"`
	MaxAttendees     *uint32     `db:"max_attendees"`
	CurrentAttendees uint32      `db:"current_attendees"`
	TokenReward      *uint64     `db:"token_reward"`
	Status           EventStatus `db:"status"`
	CreatedAt        time.Time   `db:"created_at"`
}

const (
	EventNameMinLen        = 3
	EventNameMaxLen        = 100
	EventDescriptionMaxLen = 500
)

// Attendance records one member's check-in at one event, at most once.
type Attendance struct {
	Address       string    `db:"address"`
	Event         string    `db:"event"`
	Member        string    `db:"member"`
	NfcCard       string    `db:"nfc_card"`
	CheckedInAt   time.Time `db:"checked_in_at"`
	RewardClaimed bool      `db:"reward_claimed"`
}
