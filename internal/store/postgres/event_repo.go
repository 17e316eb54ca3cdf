package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pritamp20/socialchain-ledger/internal/domain/model"
)

func (s session) GetEvent(ctx context.Context, address string) (*model.Event, error) {
	var (
		e      model.Event
		maxAtt sql.NullInt64
		reward sql.NullString
	)
	err := s.q.QueryRowContext(ctx, `
		SELECT address, community, organizer, name, description, start_time, end_time,
		       max_attendees, current_attendees, token_reward::text, status, created_at
		FROM events
		WHERE address = $1`+s.forUpdate(),
		address,
	).Scan(
		&e.Address, &e.Community, &e.Organizer, &e.Name, &e.Description, &e.StartTime, &e.EndTime,
		&maxAtt, &e.CurrentAttendees, &reward, &e.Status, &e.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if maxAtt.Valid {
		v := uint32(maxAtt.Int64)
		e.MaxAttendees = &v
	}
	if reward.Valid {
		v, err := uintColumn(reward.String)
		if err != nil {
			return nil, fmt.Errorf("get event: %w", err)
		}
		e.TokenReward = &v
	}
	return &e, nil
}

func (s session) PutEvent(ctx context.Context, e *model.Event) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO events (address, community, organizer, name, description, start_time, end_time,
		                    max_attendees, current_attendees, token_reward, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::numeric, $11, $12)
		ON CONFLICT (address) DO UPDATE SET
			current_attendees = EXCLUDED.current_attendees,
			status = EXCLUDED.status`,
		e.Address, e.Community, e.Organizer, e.Name, e.Description, e.StartTime, e.EndTime,
		e.MaxAttendees, e.CurrentAttendees, uintPtrParam(e.TokenReward), e.Status, e.CreatedAt,
	)
	return mapError("put event", err)
}

func (s session) GetAttendance(ctx context.Context, address string) (*model.Attendance, error) {
	var a model.Attendance
	err := s.q.QueryRowContext(ctx, `
		SELECT address, event, member, nfc_card, checked_in_at, reward_claimed
		FROM attendances
		WHERE address = $1`+s.forUpdate(),
		address,
	).Scan(&a.Address, &a.Event, &a.Member, &a.NfcCard, &a.CheckedInAt, &a.RewardClaimed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get attendance: %w", err)
	}
	return &a, nil
}

// PutAttendance inserts only. A member checks in at most once per event.
func (s session) PutAttendance(ctx context.Context, a *model.Attendance) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO attendances (address, event, member, nfc_card, checked_in_at, reward_claimed)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		a.Address, a.Event, a.Member, a.NfcCard, a.CheckedInAt, a.RewardClaimed,
	)
	return mapError("put attendance", err)
}
