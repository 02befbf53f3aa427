package rooms

import (
	"context"
	"time"

	"hotelier/internal/app/commands"
	"hotelier/internal/app/uow"
	domainroom "hotelier/internal/domain/room"
	"hotelier/internal/domain/shared/fault"
	"hotelier/internal/domain/shared/money"
)

const registerRoomKey = "room.register"

type RegisterRoomCommand struct {
	Number           int
	Category         string
	NightlyRateCents int64
}

func (c RegisterRoomCommand) Key() string { return registerRoomKey }

type RegisterRoomResult struct {
	Number int `json:"number"`
}

// RegisterRoomHandler adds a room to the inventory. Room numbers are the
// identity and may not be reused.
type RegisterRoomHandler struct {
	UoWFactory uow.UoWFactory
	Clock      func() time.Time
}

func (h *RegisterRoomHandler) Handle(ctx context.Context, cmd RegisterRoomCommand) (*RegisterRoomResult, error) {
	now := nowFrom(h.Clock)
	rate, err := money.New(cmd.NightlyRateCents)
	if err != nil {
		return nil, fault.Validationf("rooms: %v", err)
	}

	var result *RegisterRoomResult
	err = uow.Run(ctx, h.UoWFactory, func(ctx context.Context, unit uow.UnitOfWork) error {
		number := domainroom.Number(cmd.Number)
		if _, err := unit.Rooms().ByNumber(ctx, number); err == nil {
			return fault.Conflictf("rooms: room %d already registered", cmd.Number)
		}
		rm, err := domainroom.New(number, cmd.Category, rate, now)
		if err != nil {
			return err
		}
		if err := unit.Rooms().Save(ctx, rm); err != nil {
			return err
		}
		result = &RegisterRoomResult{Number: int(rm.Number)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func nowFrom(clock func() time.Time) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock().UTC()
}

var _ commands.Handler[RegisterRoomCommand, *RegisterRoomResult] = (*RegisterRoomHandler)(nil)
