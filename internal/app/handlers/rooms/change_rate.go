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

const changeRoomRateKey = "room.change_rate"

type ChangeRoomRateCommand struct {
	Number           int
	NightlyRateCents int64
}

func (c ChangeRoomRateCommand) Key() string { return changeRoomRateKey }

type ChangeRoomRateResult struct {
	Number           int   `json:"number"`
	NightlyRateCents int64 `json:"nightly_rate_cents"`
}

type ChangeRoomRateHandler struct {
	UoWFactory uow.UoWFactory
	Clock      func() time.Time
}

func (h *ChangeRoomRateHandler) Handle(ctx context.Context, cmd ChangeRoomRateCommand) (*ChangeRoomRateResult, error) {
	now := nowFrom(h.Clock)
	rate, err := money.New(cmd.NightlyRateCents)
	if err != nil {
		return nil, fault.Validationf("rooms: %v", err)
	}

	var result *ChangeRoomRateResult
	err = uow.Run(ctx, h.UoWFactory, func(ctx context.Context, unit uow.UnitOfWork) error {
		rm, err := unit.Rooms().ByNumber(ctx, domainroom.Number(cmd.Number))
		if err != nil {
			return err
		}
		if err := rm.ChangeRate(rate, now); err != nil {
			return err
		}
		if err := unit.Rooms().Save(ctx, rm); err != nil {
			return err
		}
		result = &ChangeRoomRateResult{Number: int(rm.Number), NightlyRateCents: rm.NightlyRate.Cents}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

var _ commands.Handler[ChangeRoomRateCommand, *ChangeRoomRateResult] = (*ChangeRoomRateHandler)(nil)
