package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/pritamp20/socialchain-ledger/internal/domain/model"
	"github.com/pritamp20/socialchain-ledger/internal/store"
)

type CreateEventParams struct {
	Community    string
	Name         string
	Description  string
	StartTime    time.Time
	EndTime      time.Time
	MaxAttendees *uint32
	TokenReward  *uint64
}

// CreateEvent registers a gathering. Any member may organize; the event
// name is unique within the community.
func (e *Engine) CreateEvent(ctx context.Context, caller string, p CreateEventParams) (*model.Event, error) {
	if l := len(p.Name); l < model.EventNameMinLen || l > model.EventNameMaxLen {
		return nil, model.ErrInvalidArgument("event name must be %d-%d characters", model.EventNameMinLen, model.EventNameMaxLen)
	}
	if len(p.Description) > model.EventDescriptionMaxLen {
		return nil, model.ErrInvalidArgument("event description exceeds %d characters", model.EventDescriptionMaxLen)
	}
	if !p.EndTime.After(p.StartTime) {
		return nil, model.ErrInvalidArgument("event end must be after start")
	}
	if p.MaxAttendees != nil && *p.MaxAttendees == 0 {
		return nil, model.ErrInvalidArgument("attendee cap must be positive when set")
	}
	var out *model.Event
	err := e.exec(ctx, "createEvent", func(tx store.Tx) (string, error) {
		community, err := e.loadCommunity(ctx, tx, p.Community)
		if err != nil {
			return "", err
		}
		organizer, err := e.loadMember(ctx, tx, community, caller)
		if err != nil {
			return "", err
		}

		addr := e.addr.Event(community.Address, p.Name)
		existing, err := tx.GetEvent(ctx, addr)
		if err != nil {
			return "", fmt.Errorf("check event: %w", err)
		}
		if existing != nil {
			return "", model.ErrDuplicate("event %q already exists in %q", p.Name, community.Name)
		}

		evt := &model.Event{
			Address:      addr,
			Community:    community.Address,
			Organizer:    organizer.Address,
			Name:         p.Name,
			Description:  p.Description,
			StartTime:    p.StartTime,
			EndTime:      p.EndTime,
			MaxAttendees: p.MaxAttendees,
			TokenReward:  p.TokenReward,
			Status:       model.EventUpcoming,
			CreatedAt:    e.nowFn(),
		}
		if err := tx.PutEvent(ctx, evt); err != nil {
			return "", fmt.Errorf("persist event: %w", err)
		}
		out = evt
		return addr, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RecordAttendance checks the calling member in with their active NFC
// card, once per event, inside the event window and under the cap. A
// configured token reward mints to the member on check-in.
func (e *Engine) RecordAttendance(ctx context.Context, caller, communityName, eventName string) (*model.Attendance, error) {
	var out *model.Attendance
	err := e.exec(ctx, "recordAttendance", func(tx store.Tx) (string, error) {
		community, err := e.loadCommunity(ctx, tx, communityName)
		if err != nil {
			return "", err
		}
		member, err := e.loadMember(ctx, tx, community, caller)
		if err != nil {
			return "", err
		}
		evt, err := e.loadEvent(ctx, tx, community, eventName)
		if err != nil {
			return "", err
		}

		if evt.Status == model.EventClosed || evt.Status == model.EventCancelled {
			return "", model.ErrInvalidState("event %q is %s", evt.Name, evt.Status)
		}
		now := e.nowFn()
		if now.Before(evt.StartTime) {
			return "", model.ErrInvalidState("event %q has not started", evt.Name)
		}
		if now.After(evt.EndTime) {
			return "", model.ErrExpired("event %q ended at %s", evt.Name, evt.EndTime.UTC().Format(time.RFC3339))
		}
		if evt.MaxAttendees != nil && evt.CurrentAttendees >= *evt.MaxAttendees {
			return "", model.ErrInvalidState("event %q is at capacity", evt.Name)
		}

		if member.NfcCard == nil {
			return "", model.ErrInvalidState("member %s holds no card", caller)
		}
		card, err := tx.GetNfcCard(ctx, *member.NfcCard)
		if err != nil {
			return "", fmt.Errorf("load card: %w", err)
		}
		if card == nil {
			return "", model.ErrNotFound("card %s not found", *member.NfcCard)
		}
		if !card.IsActive {
			return "", model.ErrInvalidState("card %s is revoked", card.CardID)
		}

		attAddr := e.addr.Attendance(evt.Address, member.Address)
		existing, err := tx.GetAttendance(ctx, attAddr)
		if err != nil {
			return "", fmt.Errorf("check attendance: %w", err)
		}
		if existing != nil {
			return "", model.ErrDuplicate("%s already checked in to %q", caller, evt.Name)
		}

		att := &model.Attendance{
			Address:     attAddr,
			Event:       evt.Address,
			Member:      member.Address,
			NfcCard:     card.Address,
			CheckedInAt: now,
		}

		if evt.TokenReward != nil && *evt.TokenReward > 0 {
			mint, err := e.loadTokenMint(ctx, tx, community)
			if err != nil {
				return "", err
			}
			if err := e.mintTo(ctx, tx, mint, member.Wallet, *evt.TokenReward, model.TokenEntryReward, evt.Address); err != nil {
				return "", err
			}
			if err := tx.PutTokenMint(ctx, mint); err != nil {
				return "", fmt.Errorf("persist mint: %w", err)
			}
			att.RewardClaimed = true
		}

		if err := tx.PutAttendance(ctx, att); err != nil {
			return "", fmt.Errorf("persist attendance: %w", err)
		}

		evt.CurrentAttendees++
		if evt.Status == model.EventUpcoming {
			evt.Status = model.EventActive
		}
		if err := tx.PutEvent(ctx, evt); err != nil {
			return "", fmt.Errorf("persist event: %w", err)
		}

		member.TotalEventsAttended++
		if err := tx.PutMember(ctx, member); err != nil {
			return "", fmt.Errorf("persist member: %w", err)
		}

		card.TotalUses++
		card.LastUsedAt = now
		if err := tx.PutNfcCard(ctx, card); err != nil {
			return "", fmt.Errorf("persist card: %w", err)
		}
		out = att
		return attAddr, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CloseEvent ends check-in. The organizer or the community admin may
// close; closing is terminal.
func (e *Engine) CloseEvent(ctx context.Context, caller, communityName, eventName string) error {
	return e.exec(ctx, "closeEvent", func(tx store.Tx) (string, error) {
		community, err := e.loadCommunity(ctx, tx, communityName)
		if err != nil {
			return "", err
		}
		evt, err := e.loadEvent(ctx, tx, community, eventName)
		if err != nil {
			return "", err
		}
		if evt.Status == model.EventClosed || evt.Status == model.EventCancelled {
			return "", model.ErrInvalidState("event %q is already %s", evt.Name, evt.Status)
		}

		if caller != community.Admin {
			member, err := e.loadMember(ctx, tx, community, caller)
			if err != nil {
				return "", err
			}
			if member.Address != evt.Organizer {
				return "", model.ErrUnauthorized("only the organizer or admin may close the event")
			}
		}

		evt.Status = model.EventClosed
		if err := tx.PutEvent(ctx, evt); err != nil {
			return "", fmt.Errorf("persist event: %w", err)
		}
		return evt.Address, nil
	})
}

func (e *Engine) loadEvent(ctx context.Context, tx store.Tx, community *model.Community, name string) (*model.Event, error) {
	evt, err := tx.GetEvent(ctx, e.addr.Event(community.Address, name))
	if err != nil {
		return nil, fmt.Errorf("load event: %w", err)
	}
	if evt == nil {
		return nil, model.ErrNotFound("event %q not found in %q", name, community.Name)
	}
	return evt, nil
}
